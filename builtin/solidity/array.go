// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"encoding/binary"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/aurumchain/aurum/aurum"
)

// Array is an append-only indexed list, similar to a dynamic array in a
// smart contract. The length lives at the base slot; element i lives at
// a slot derived from the base slot and i. Elements are never removed.
type Array[V any] struct {
	context *Context
	basePos aurum.Bytes32
	length  *Uint256
}

// NewArray creates an array rooted at the given slot.
func NewArray[V any](context *Context, pos aurum.Bytes32) *Array[V] {
	return &Array[V]{
		context: context,
		basePos: pos,
		length:  NewUint256(context, pos),
	}
}

// Len returns the number of elements.
func (a *Array[V]) Len() (uint64, error) {
	n, err := a.length.Get()
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

// Append adds a new element at the end of the array.
func (a *Array[V]) Append(value V) error {
	n, err := a.Len()
	if err != nil {
		return err
	}
	if err := a.context.state.EncodeStorage(a.context.address, a.elementPos(n), func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	}); err != nil {
		return err
	}
	a.length.Set(new(big.Int).SetUint64(n + 1))
	return nil
}

// Get returns the element at index i. It fails if i is out of range.
func (a *Array[V]) Get(i uint64) (value V, err error) {
	n, err := a.Len()
	if err != nil {
		return value, err
	}
	if i >= n {
		return value, errors.Errorf("array index %d out of range %d", i, n)
	}
	err = a.context.state.DecodeStorage(a.context.address, a.elementPos(i), func(raw []byte) error {
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

func (a *Array[V]) elementPos(i uint64) aurum.Bytes32 {
	var index [8]byte
	binary.BigEndian.PutUint64(index[:], i)
	return aurum.Blake2b(a.basePos.Bytes(), index[:])
}
