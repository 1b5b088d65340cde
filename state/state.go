// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages contract storage with checkpoint/revert semantics.
//
// Values are kept in a stacked map journal until committed to the underlying
// kv store, so a failed operation can be rolled back without partial writes.
package state

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/aurumchain/aurum/aurum"
	"github.com/aurumchain/aurum/kv"
	"github.com/aurumchain/aurum/stackedmap"
)

const storageKeyPrefix = "s"

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.cause }

type storageKey struct {
	addr aurum.Address
	key  aurum.Bytes32
}

func (k storageKey) persistKey() []byte {
	b := make([]byte, 0, len(storageKeyPrefix)+aurum.AddressLength+32)
	b = append(b, storageKeyPrefix...)
	b = append(b, k.addr.Bytes()...)
	return append(b, k.key.Bytes()...)
}

// State manages contract storage.
type State struct {
	store kv.GetPutter
	sm    *stackedmap.StackedMap
}

// New create a state object backed by the given kv store.
func New(store kv.GetPutter) *State {
	state := &State{store: store}
	state.sm = stackedmap.New(func(key any) (any, bool, error) {
		k, ok := key.(storageKey)
		if !ok {
			panic(fmt.Errorf("unexpected key type %+v", key))
		}
		raw, err := store.Get(k.persistKey())
		if err != nil {
			if store.IsNotFound(err) {
				return rlp.RawValue(nil), true, nil
			}
			return nil, false, &Error{err}
		}
		return rlp.RawValue(raw), true, nil
	})
	// base level, never popped
	state.sm.Push()
	return state
}

// GetRawStorage returns storage value in rlp raw form for the given key.
func (s *State) GetRawStorage(addr aurum.Address, key aurum.Bytes32) (rlp.RawValue, error) {
	v, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, err
	}
	return v.(rlp.RawValue), nil
}

// SetRawStorage set storage value in rlp raw form.
func (s *State) SetRawStorage(addr aurum.Address, key aurum.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage set storage value encoded by given enc func.
// An empty encoded value is treated as a deletion.
func (s *State) EncodeStorage(addr aurum.Address, key aurum.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value via given dec func.
// The dec func receives nil for an absent value.
func (s *State) DecodeStorage(addr aurum.Address, key aurum.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// GetStorage returns 32-byte storage value for the given key.
func (s *State) GetStorage(addr aurum.Address, key aurum.Bytes32) (aurum.Bytes32, error) {
	var value aurum.Bytes32
	err := s.DecodeStorage(addr, key, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		_, content, _, err := rlp.Split(raw)
		if err != nil {
			return err
		}
		value = aurum.BytesToBytes32(content)
		return nil
	})
	return value, err
}

// SetStorage set 32-byte storage value for the given key.
// Zero value is stored as a deletion.
func (s *State) SetStorage(addr aurum.Address, key, value aurum.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	trimmed, _ := rlp.EncodeToBytes(trimLeadingZeros(value.Bytes()))
	s.SetRawStorage(addr, key, trimmed)
}

// NewCheckpoint makes a checkpoint of current state.
// It returns the checkpoint to be passed to RevertTo.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo reverts the state to the given checkpoint.
func (s *State) RevertTo(checkpoint int) {
	s.sm.PopTo(checkpoint)
}

// Commit writes all journaled changes into the underlying kv store in one batch.
func (s *State) Commit() error {
	batch := s.store.NewBatch()
	var err error
	s.sm.Journal(func(key, value any) bool {
		k, ok := key.(storageKey)
		if !ok {
			return true
		}
		raw := value.(rlp.RawValue)
		if len(raw) == 0 {
			err = batch.Delete(k.persistKey())
		} else {
			err = batch.Put(k.persistKey(), raw)
		}
		return err == nil
	})
	if err != nil {
		return &Error{err}
	}
	if err := batch.Write(); err != nil {
		return &Error{err}
	}
	return nil
}

func trimLeadingZeros(b []byte) []byte {
	for len(b) > 0 && b[0] == 0 {
		b = b[1:]
	}
	return b
}
