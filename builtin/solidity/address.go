// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import "github.com/aurumchain/aurum/aurum"

// Address is a wrapper for storage and retrieval of an address,
// similar to storing an address in a smart contract.
type Address struct {
	context *Context
	pos     aurum.Bytes32
}

// NewAddress creates an address accessor at the given slot.
func NewAddress(context *Context, pos aurum.Bytes32) *Address {
	return &Address{context: context, pos: pos}
}

// Get returns the stored address, zero address if never set.
func (a *Address) Get() (aurum.Address, error) {
	storage, err := a.context.state.GetStorage(a.context.address, a.pos)
	if err != nil {
		return aurum.Address{}, err
	}
	return aurum.BytesToAddress(storage.Bytes()), nil
}

// Set stores the given address.
func (a *Address) Set(addr aurum.Address) {
	a.context.state.SetStorage(a.context.address, a.pos, aurum.BytesToBytes32(addr.Bytes()))
}
