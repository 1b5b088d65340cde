// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurumchain/aurum/aurum"
	"github.com/aurumchain/aurum/lvldb"
	"github.com/aurumchain/aurum/state"
)

func newContext(t *testing.T) *Context {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	st := state.New(db)
	return NewContext(aurum.BytesToAddress([]byte("contract")), st)
}

func slot(name string) aurum.Bytes32 {
	return aurum.BytesToBytes32([]byte(name))
}

func TestUint256(t *testing.T) {
	sctx := newContext(t)
	counter := NewUint256(sctx, slot("counter"))

	v, err := counter.Get()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(0), v)

	counter.Set(big.NewInt(42))
	require.NoError(t, counter.Add(big.NewInt(8)))
	v, err = counter.Get()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(50), v)

	require.NoError(t, counter.Sub(big.NewInt(50)))
	err = counter.Sub(big.NewInt(1))
	assert.Error(t, err)
}

func TestAddressSlot(t *testing.T) {
	sctx := newContext(t)
	owner := NewAddress(sctx, slot("owner"))

	addr, err := owner.Get()
	require.NoError(t, err)
	assert.True(t, addr.IsZero())

	want := aurum.BytesToAddress([]byte("somebody"))
	owner.Set(want)
	addr, err = owner.Get()
	require.NoError(t, err)
	assert.Equal(t, want, addr)
}

type record struct {
	Amount *big.Int
	Time   uint64
}

func TestMapping(t *testing.T) {
	sctx := newContext(t)
	m := NewMapping[aurum.Address, *record](sctx, slot("records"))

	key := aurum.BytesToAddress([]byte("key"))

	// zero value for a never-written key
	r, err := m.Get(key)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Nil(t, r.Amount)

	require.NoError(t, m.Set(key, &record{Amount: big.NewInt(7), Time: 99}))
	r, err = m.Get(key)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(7), r.Amount)
	assert.Equal(t, uint64(99), r.Time)

	// neighbouring keys do not collide
	other, err := m.Get(aurum.BytesToAddress([]byte("key2")))
	require.NoError(t, err)
	assert.Nil(t, other.Amount)
}

func TestMappingBoolValue(t *testing.T) {
	sctx := newContext(t)
	m := NewMapping[aurum.Address, bool](sctx, slot("flags"))

	key := aurum.BytesToAddress([]byte("key"))
	seen, err := m.Get(key)
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, m.Set(key, true))
	seen, err = m.Get(key)
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestArray(t *testing.T) {
	sctx := newContext(t)
	arr := NewArray[aurum.Address](sctx, slot("members"))

	n, err := arr.Len()
	require.NoError(t, err)
	assert.Zero(t, n)

	first := aurum.BytesToAddress([]byte("first"))
	second := aurum.BytesToAddress([]byte("second"))
	require.NoError(t, arr.Append(first))
	require.NoError(t, arr.Append(second))

	n, err = arr.Len()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n)

	got, err := arr.Get(0)
	require.NoError(t, err)
	assert.Equal(t, first, got)
	got, err = arr.Get(1)
	require.NoError(t, err)
	assert.Equal(t, second, got)

	_, err = arr.Get(2)
	assert.Error(t, err)
}

func TestValue(t *testing.T) {
	sctx := newContext(t)
	v := NewValue[*record](sctx, slot("singleton"))

	r, err := v.Get()
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Nil(t, r.Amount)

	require.NoError(t, v.Set(&record{Amount: big.NewInt(3), Time: 7}))
	r, err = v.Get()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(3), r.Amount)
}
