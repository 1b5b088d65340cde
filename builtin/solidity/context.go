// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package solidity offers storage-slot abstractions for builtin contracts,
// mirroring how state variables are laid out in a Solidity contract.
package solidity

import (
	"github.com/aurumchain/aurum/aurum"
	"github.com/aurumchain/aurum/state"
)

// Context binds a builtin contract address to the world state.
type Context struct {
	address aurum.Address
	state   *state.State
}

// NewContext creates a storage context for the contract at address.
func NewContext(address aurum.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

// Address returns the contract address the context is bound to.
func (c *Context) Address() aurum.Address {
	return c.address
}

// State returns the world state.
func (c *Context) State() *state.State {
	return c.state
}
