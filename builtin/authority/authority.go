// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package authority implements the privilege registry of the economic
// contracts. Two roles exist: Admin (configuration and treasury) and
// Announcer (starting reward campaigns). Admin implicitly holds the
// Announcer capability.
package authority

import (
	"github.com/aurumchain/aurum/aurum"
	"github.com/aurumchain/aurum/builtin/reverts"
	"github.com/aurumchain/aurum/builtin/solidity"
	"github.com/aurumchain/aurum/log"
	"github.com/aurumchain/aurum/state"
	"github.com/aurumchain/aurum/xenv"
)

var (
	logger = log.WithContext("pkg", "authority")

	slotAdmin     = aurum.BytesToBytes32([]byte("admin"))
	slotAnnouncer = aurum.BytesToBytes32([]byte("announcer"))
)

// Authority implements native methods of the `Authority` contract.
type Authority struct {
	addr      aurum.Address
	admin     *solidity.Address
	announcer *solidity.Address
}

// New create a new instance.
func New(addr aurum.Address, state *state.State) *Authority {
	sctx := solidity.NewContext(addr, state)
	return &Authority{
		addr:      addr,
		admin:     solidity.NewAddress(sctx, slotAdmin),
		announcer: solidity.NewAddress(sctx, slotAnnouncer),
	}
}

// Initialize sets the initial admin and announcer. One-time.
func (a *Authority) Initialize(env *xenv.Environment, admin, announcer aurum.Address) error {
	if admin.IsZero() {
		return reverts.Precondition("admin must not be zero")
	}
	current, err := a.admin.Get()
	if err != nil {
		return err
	}
	if !current.IsZero() {
		return reverts.Conflict("already initialized")
	}
	a.admin.Set(admin)
	a.announcer.Set(announcer)
	logger.Info("initialized", "admin", admin, "announcer", announcer)
	return nil
}

// Admin returns the current admin address.
func (a *Authority) Admin() (aurum.Address, error) {
	return a.admin.Get()
}

// Announcer returns the current announcer address.
func (a *Authority) Announcer() (aurum.Address, error) {
	return a.announcer.Get()
}

// SetAdmin transfers the admin role. Admin only.
func (a *Authority) SetAdmin(env *xenv.Environment, admin aurum.Address) error {
	if err := a.RequireAdmin(env.Caller()); err != nil {
		return err
	}
	if admin.IsZero() {
		return reverts.Precondition("admin must not be zero")
	}
	a.admin.Set(admin)
	logger.Info("admin transferred", "admin", admin)
	return nil
}

// SetAnnouncer replaces the announcer. Admin only.
func (a *Authority) SetAnnouncer(env *xenv.Environment, announcer aurum.Address) error {
	if err := a.RequireAdmin(env.Caller()); err != nil {
		return err
	}
	a.announcer.Set(announcer)
	logger.Info("announcer replaced", "announcer", announcer)
	return nil
}

// IsAdmin checks whether addr holds the admin role.
func (a *Authority) IsAdmin(addr aurum.Address) (bool, error) {
	admin, err := a.admin.Get()
	if err != nil {
		return false, err
	}
	return !admin.IsZero() && admin == addr, nil
}

// IsAnnouncer checks whether addr may announce campaigns.
// The admin implicitly may.
func (a *Authority) IsAnnouncer(addr aurum.Address) (bool, error) {
	if ok, err := a.IsAdmin(addr); err != nil || ok {
		return ok, err
	}
	announcer, err := a.announcer.Get()
	if err != nil {
		return false, err
	}
	return !announcer.IsZero() && announcer == addr, nil
}

// RequireAdmin fails with a precondition violation unless addr is the admin.
func (a *Authority) RequireAdmin(addr aurum.Address) error {
	ok, err := a.IsAdmin(addr)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.Precondition("caller is not admin")
	}
	return nil
}

// RequireAnnouncer fails with a precondition violation unless addr may announce.
func (a *Authority) RequireAnnouncer(addr aurum.Address) error {
	ok, err := a.IsAnnouncer(addr)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.Precondition("caller is not announcer")
	}
	return nil
}
