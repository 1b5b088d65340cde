// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurumchain/aurum/aurum"
	"github.com/aurumchain/aurum/builtin/authority"
	"github.com/aurumchain/aurum/builtin/reverts"
	"github.com/aurumchain/aurum/builtin/token"
	"github.com/aurumchain/aurum/lvldb"
	"github.com/aurumchain/aurum/state"
	"github.com/aurumchain/aurum/xenv"
)

// fakeAsset is an in-memory asset taking an optional transfer fee and
// firing an optional hook during TransferFrom.
type fakeAsset struct {
	balances       map[aurum.Address]*big.Int
	feeBps         uint64
	onTransferFrom func()
}

func newFakeAsset() *fakeAsset {
	return &fakeAsset{balances: make(map[aurum.Address]*big.Int)}
}

func (f *fakeAsset) credit(addr aurum.Address, amount *big.Int) {
	balance, ok := f.balances[addr]
	if !ok {
		balance = new(big.Int)
		f.balances[addr] = balance
	}
	balance.Add(balance, amount)
}

func (f *fakeAsset) BalanceOf(addr aurum.Address) (*big.Int, error) {
	if balance, ok := f.balances[addr]; ok {
		return new(big.Int).Set(balance), nil
	}
	return new(big.Int), nil
}

func (f *fakeAsset) Transfer(from, to aurum.Address, amount *big.Int) error {
	balance := f.balances[from]
	if balance == nil || balance.Cmp(amount) < 0 {
		return reverts.Exhausted("insufficient balance")
	}
	balance.Sub(balance, amount)
	received := new(big.Int).Set(amount)
	if f.feeBps > 0 {
		fee := new(big.Int).Mul(amount, new(big.Int).SetUint64(f.feeBps))
		fee.Div(fee, big.NewInt(10_000))
		received.Sub(received, fee)
	}
	f.credit(to, received)
	return nil
}

func (f *fakeAsset) TransferFrom(_, from, to aurum.Address, amount *big.Int) error {
	if f.onTransferFrom != nil {
		f.onTransferFrom()
	}
	return f.Transfer(from, to, amount)
}

// newFakeHarness wires a fakeAsset as the staking asset and an AUR-style
// token as the reward asset.
func newFakeHarness(t *testing.T) (*Staking, *fakeAsset, *token.Token, *state.State) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	st := state.New(db)

	fake := newFakeAsset()
	fakeAddr := aurum.BytesToAddress([]byte("fake-asset"))
	gldAddr := aurum.BytesToAddress([]byte("gold-token"))
	gld := token.New(gldAddr, st)
	require.NoError(t, gld.InitializeSupply(aurum.TotalTokenSupply))

	assets := map[aurum.Address]Asset{fakeAddr: fake, gldAddr: gld}
	auth := authority.New(aurum.BytesToAddress([]byte("authority")), st)
	stk := New(aurum.BytesToAddress([]byte("staking")), st, auth, func(addr aurum.Address) Asset {
		return assets[addr]
	})

	adminEnv := xenv.New(st, adminAddr, 0)
	require.NoError(t, stk.Initialize(adminEnv, adminAddr, announcerAddr))
	require.NoError(t, stk.SetTokenAddresses(adminEnv, fakeAddr, gldAddr))
	return stk, fake, gld, st
}

func TestFeeOnTransferStake(t *testing.T) {
	stk, fake, _, st := newFakeHarness(t)
	fake.feeBps = 1000 // 10%
	fake.credit(alice, ToWei(1000))

	require.NoError(t, stk.Stake(xenv.New(st, alice, 0), ToWei(1000)))

	// only the 900 actually received count as stake
	stats, err := stk.GetUserStats(alice, 0)
	require.NoError(t, err)
	assert.Equal(t, ToWei(900), stats.Staked)

	global, err := stk.GlobalStake()
	require.NoError(t, err)
	assert.Equal(t, ToWei(900), global)

	// the credited amount is what matures, the nominal 1000 never existed
	unlockable, err := stk.GetUnlockableAmount(alice, 14*day)
	require.NoError(t, err)
	assert.Equal(t, ToWei(900), unlockable)
}

func TestFullFeeTransferRejected(t *testing.T) {
	stk, fake, _, st := newFakeHarness(t)
	fake.feeBps = 10_000 // everything is burned in transit
	fake.credit(alice, ToWei(100))

	err := stk.Stake(xenv.New(st, alice, 0), ToWei(100))
	assert.True(t, reverts.IsTransferFailure(err))

	global, err := stk.GlobalStake()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(0), global)
}

func TestReentrantCallRejected(t *testing.T) {
	stk, fake, gld, st := newFakeHarness(t)
	fake.credit(alice, ToWei(1000))
	require.NoError(t, gld.Mint(announcerAddr, ToWei(5000)))
	require.NoError(t, gld.Approve(xenv.New(st, announcerAddr, 0), stk.Address(), ToWei(5000)))
	require.NoError(t, stk.DepositAndAnnounce(xenv.New(st, announcerAddr, 0), ToWei(5000)))

	var nestedErr error
	fake.onTransferFrom = func() {
		_, nestedErr = stk.ClaimRewards(xenv.New(st, alice, 0))
	}
	require.NoError(t, stk.Stake(xenv.New(st, alice, 0), ToWei(1000)))

	// the callback ran mid-stake and was turned away
	require.Error(t, nestedErr)
	assert.True(t, reverts.IsConflict(nestedErr))

	// the outer stake itself landed intact
	stats, err := stk.GetUserStats(alice, 0)
	require.NoError(t, err)
	assert.Equal(t, ToWei(1000), stats.Staked)
}
