// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/aurumchain/aurum/aurum"
)

// Key is anything usable as a mapping key.
type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction for builtin contracts,
// similar to the mapping type in Solidity. Values are RLP encoded; the
// value slot is derived from the key hashed with the mapping's base slot.
type Mapping[K Key, V any] struct {
	context *Context
	basePos aurum.Bytes32
}

// NewMapping creates a mapping rooted at the given slot.
func NewMapping[K Key, V any](context *Context, pos aurum.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

// Get returns the value stored under key; the zero value if absent.
func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	position := aurum.Blake2b(key.Bytes(), m.basePos.Bytes())
	err = m.context.state.DecodeStorage(m.context.address, position, func(raw []byte) error {
		if reflect.ValueOf(value).Kind() == reflect.Ptr {
			value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
		}
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

// Set stores value under key.
func (m *Mapping[K, V]) Set(key K, value V) error {
	position := aurum.Blake2b(key.Bytes(), m.basePos.Bytes())
	return m.context.state.EncodeStorage(m.context.address, position, func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}
