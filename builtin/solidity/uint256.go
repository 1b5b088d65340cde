// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/aurumchain/aurum/aurum"
)

// Uint256 is a wrapper for storage and retrieval of an uint256,
// similar to storing an uint256 in a smart contract.
// If the stored value exceeds 256 bits it is truncated to fit aurum.Bytes32.
type Uint256 struct {
	context *Context
	pos     aurum.Bytes32
}

// NewUint256 creates an uint256 accessor at the given slot.
func NewUint256(context *Context, slot aurum.Bytes32) *Uint256 {
	return &Uint256{context: context, pos: slot}
}

// Get returns the stored value, zero if never set.
func (u *Uint256) Get() (*big.Int, error) {
	storage, err := u.context.state.GetStorage(u.context.address, u.pos)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(storage.Bytes()), nil
}

// Set stores the given value.
func (u *Uint256) Set(value *big.Int) {
	u.context.state.SetStorage(u.context.address, u.pos, aurum.BytesToBytes32(value.Bytes()))
}

// Add increases the stored value by delta.
func (u *Uint256) Add(delta *big.Int) error {
	value, err := u.Get()
	if err != nil {
		return err
	}
	value.Add(value, delta)
	u.Set(value)
	return nil
}

// Sub decreases the stored value by delta.
// It fails if the result would be negative.
func (u *Uint256) Sub(delta *big.Int) error {
	value, err := u.Get()
	if err != nil {
		return err
	}
	value.Sub(value, delta)
	if value.Sign() < 0 {
		return errors.New("uint256 underflow")
	}
	u.Set(value)
	return nil
}
