// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package params implements the governance key/value store.
package params

import (
	"math/big"

	"github.com/aurumchain/aurum/aurum"
	"github.com/aurumchain/aurum/builtin/solidity"
	"github.com/aurumchain/aurum/state"
)

// Params binder of the `Params` contract.
type Params struct {
	sctx *solidity.Context
}

// New create a new instance.
func New(addr aurum.Address, state *state.State) *Params {
	return &Params{solidity.NewContext(addr, state)}
}

// Get native way to get param.
func (p *Params) Get(key aurum.Bytes32) (*big.Int, error) {
	return solidity.NewUint256(p.sctx, key).Get()
}

// Set native way to set param.
func (p *Params) Set(key aurum.Bytes32, value *big.Int) {
	solidity.NewUint256(p.sctx, key).Set(value)
}
