// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staking exposes the staking contract's read-only aggregate views
// over HTTP. No endpoint mutates state.
package staking

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/aurumchain/aurum/api/utils"
	"github.com/aurumchain/aurum/aurum"
	"github.com/aurumchain/aurum/builtin/reverts"
	stk "github.com/aurumchain/aurum/builtin/staking"
)

// Staking is the HTTP binding of the staking contract's views.
type Staking struct {
	contract *stk.Staking
	now      func() uint64
}

// New creates the handler set. now supplies the projection clock.
func New(contract *stk.Staking, now func() uint64) *Staking {
	return &Staking{contract: contract, now: now}
}

func (s *Staking) handleGetStats(w http.ResponseWriter, _ *http.Request) error {
	stats, err := s.contract.GetGlobalStats(s.now())
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertStats(stats))
}

func (s *Staking) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := aurum.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	stats, err := s.contract.GetUserStats(addr, s.now())
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertAccount(addr, stats))
}

func (s *Staking) handleGetRewards(w http.ResponseWriter, req *http.Request) error {
	offset, err := parseUintQuery(req, "offset", 0)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "offset"))
	}
	size, err := parseUintQuery(req, "size", 100)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "size"))
	}
	batch, err := s.contract.GetStakersRewardsBatch(s.now(), offset, size)
	if err != nil {
		if reverts.IsRevert(err) {
			return utils.BadRequest(err)
		}
		return err
	}
	return utils.WriteJSON(w, convertRewards(batch))
}

func (s *Staking) handlePostRewardsByAddress(w http.ResponseWriter, req *http.Request) error {
	var body AddressListJSON
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	addrs := make([]aurum.Address, 0, len(body.Addresses))
	for _, s := range body.Addresses {
		addr, err := aurum.ParseAddress(s)
		if err != nil {
			return utils.BadRequest(errors.WithMessage(err, "addresses"))
		}
		addrs = append(addrs, addr)
	}
	rewards, err := s.contract.GetRewardsByAddresses(s.now(), addrs)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertRewards(rewards))
}

func parseUintQuery(req *http.Request, name string, def uint64) (uint64, error) {
	raw := req.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.ParseUint(raw, 10, 64)
}

// Mount attaches the handlers under the given path prefix.
func (s *Staking) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("/stats").
		Methods(http.MethodGet).
		Name("GET /staking/stats").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetStats))
	sub.Path("/accounts/{address}").
		Methods(http.MethodGet).
		Name("GET /staking/accounts/{address}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetAccount))
	sub.Path("/rewards").
		Methods(http.MethodGet).
		Name("GET /staking/rewards").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetRewards))
	sub.Path("/rewards-by-address").
		Methods(http.MethodPost).
		Name("POST /staking/rewards-by-address").
		HandlerFunc(utils.WrapHandlerFunc(s.handlePostRewardsByAddress))
}
