// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package builtin binds the native contracts to their well-known addresses.
package builtin

import (
	"github.com/aurumchain/aurum/aurum"
	"github.com/aurumchain/aurum/builtin/authority"
	"github.com/aurumchain/aurum/builtin/params"
	"github.com/aurumchain/aurum/builtin/staking"
	"github.com/aurumchain/aurum/builtin/swap"
	"github.com/aurumchain/aurum/builtin/token"
	"github.com/aurumchain/aurum/state"
)

// Well-known addresses of the native contracts.
var (
	AuthorityAddress   = aurum.BytesToAddress([]byte("aurum-authority"))
	ParamsAddress      = aurum.BytesToAddress([]byte("aurum-params"))
	TokenAddress       = aurum.BytesToAddress([]byte("aurum-token"))
	RewardTokenAddress = aurum.BytesToAddress([]byte("aurum-reward-token"))
	SwapAddress        = aurum.BytesToAddress([]byte("aurum-swap"))
	StakingAddress     = aurum.BytesToAddress([]byte("aurum-staking"))
)

// Builtin is the set of native contract facades bound to one state.
type Builtin struct {
	Authority *authority.Authority
	Params    *params.Params
	Token     *token.Token
	Reward    *token.Token
	Swap      *swap.Swap
	Staking   *staking.Staking
}

// New binds every native contract to the given state.
func New(st *state.State) *Builtin {
	b := &Builtin{
		Authority: authority.New(AuthorityAddress, st),
		Params:    params.New(ParamsAddress, st),
		Token:     token.New(TokenAddress, st),
		Reward:    token.New(RewardTokenAddress, st),
	}
	// a typed nil must not leak into the interface values
	b.Swap = swap.New(SwapAddress, st, b.Authority, func(addr aurum.Address) swap.Asset {
		if t := b.asset(addr); t != nil {
			return t
		}
		return nil
	})
	b.Staking = staking.New(StakingAddress, st, b.Authority, func(addr aurum.Address) staking.Asset {
		if t := b.asset(addr); t != nil {
			return t
		}
		return nil
	})
	return b
}

// asset resolves a token contract address to its facade. The two native
// tokens are the only transferable assets.
func (b *Builtin) asset(addr aurum.Address) *token.Token {
	switch addr {
	case TokenAddress:
		return b.Token
	case RewardTokenAddress:
		return b.Reward
	default:
		return nil
	}
}
