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

// Value is a single RLP-encoded struct stored at a fixed slot,
// like a struct state variable in a smart contract.
type Value[V any] struct {
	context *Context
	pos     aurum.Bytes32
}

// NewValue creates a struct accessor at the given slot.
func NewValue[V any](context *Context, pos aurum.Bytes32) *Value[V] {
	return &Value[V]{context: context, pos: pos}
}

// Get returns the stored struct; the zero value if never set.
func (v *Value[V]) Get() (value V, err error) {
	err = v.context.state.DecodeStorage(v.context.address, v.pos, func(raw []byte) error {
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

// Set stores the struct.
func (v *Value[V]) Set(value V) error {
	return v.context.state.EncodeStorage(v.context.address, v.pos, func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}
