// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package xenv provides the execution environment of one contract call:
// the caller, the clock value read once per operation, and the event log.
package xenv

import (
	"github.com/aurumchain/aurum/aurum"
	"github.com/aurumchain/aurum/state"
)

// Event is a structured record emitted by a contract entry point.
// The ordered stream of events forms the system's audit log.
type Event struct {
	Address aurum.Address
	Topics  []aurum.Bytes32
	Data    []byte
}

// Environment the execution environment of one logical operation.
type Environment struct {
	state  *state.State
	caller aurum.Address
	now    uint64
	events []*Event
}

// New creates an environment for a call made by caller at wall-clock time now (unix seconds).
func New(st *state.State, caller aurum.Address, now uint64) *Environment {
	return &Environment{
		state:  st,
		caller: caller,
		now:    now,
	}
}

// State returns the backing state.
func (env *Environment) State() *state.State { return env.state }

// Caller returns the address on whose behalf the operation runs.
func (env *Environment) Caller() aurum.Address { return env.caller }

// Now returns the operation's clock value. It is read once per operation
// and never changes mid-operation.
func (env *Environment) Now() uint64 { return env.now }

// Log appends an event to the audit log.
func (env *Environment) Log(ev *Event) {
	env.events = append(env.events, ev)
}

// Events returns all events emitted so far.
func (env *Environment) Events() []*Event {
	return env.events
}

// Apply runs fn as one atomic operation. If fn returns an error, all storage
// writes and emitted events of the operation are rolled back, so no partial
// effect ever persists.
func (env *Environment) Apply(fn func() error) error {
	checkpoint := env.state.NewCheckpoint()
	eventMark := len(env.events)
	if err := fn(); err != nil {
		env.state.RevertTo(checkpoint)
		env.events = env.events[:eventMark]
		return err
	}
	return nil
}
