// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurumchain/aurum/aurum"
	"github.com/aurumchain/aurum/lvldb"
)

func newTestState(t *testing.T) (*State, *lvldb.LevelDB) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	return New(db), db
}

func TestStorageRoundTrip(t *testing.T) {
	st, _ := newTestState(t)

	addr := aurum.BytesToAddress([]byte("account1"))
	key := aurum.Blake2b([]byte("key"))
	value := aurum.Blake2b([]byte("value"))

	got, err := st.GetStorage(addr, key)
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	st.SetStorage(addr, key, value)
	got, err = st.GetStorage(addr, key)
	require.NoError(t, err)
	assert.Equal(t, value, got)

	// same key under a different address is independent
	other := aurum.BytesToAddress([]byte("account2"))
	got, err = st.GetStorage(other, key)
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	// setting zero deletes
	st.SetStorage(addr, key, aurum.Bytes32{})
	got, err = st.GetStorage(addr, key)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
	raw, err := st.GetRawStorage(addr, key)
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestEncodeDecodeStorage(t *testing.T) {
	st, _ := newTestState(t)

	addr := aurum.BytesToAddress([]byte("account1"))
	key := aurum.Blake2b([]byte("key"))

	require.NoError(t, st.EncodeStorage(addr, key, func() ([]byte, error) {
		return rlp.EncodeToBytes([]uint64{1, 2, 3})
	}))

	var decoded []uint64
	require.NoError(t, st.DecodeStorage(addr, key, func(raw []byte) error {
		return rlp.DecodeBytes(raw, &decoded)
	}))
	assert.Equal(t, []uint64{1, 2, 3}, decoded)

	// absent value decodes as nil raw
	missing := aurum.Blake2b([]byte("missing"))
	require.NoError(t, st.DecodeStorage(addr, missing, func(raw []byte) error {
		assert.Nil(t, raw)
		return nil
	}))
}

func TestCheckpointRevert(t *testing.T) {
	st, _ := newTestState(t)

	addr := aurum.BytesToAddress([]byte("account1"))
	k1 := aurum.Blake2b([]byte("k1"))
	k2 := aurum.Blake2b([]byte("k2"))
	v1 := aurum.Blake2b([]byte("v1"))
	v2 := aurum.Blake2b([]byte("v2"))

	st.SetStorage(addr, k1, v1)

	cp := st.NewCheckpoint()
	st.SetStorage(addr, k1, v2)
	st.SetStorage(addr, k2, v2)

	st.RevertTo(cp)

	got, err := st.GetStorage(addr, k1)
	require.NoError(t, err)
	assert.Equal(t, v1, got)
	got, err = st.GetStorage(addr, k2)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestCommit(t *testing.T) {
	st, db := newTestState(t)

	addr := aurum.BytesToAddress([]byte("account1"))
	k1 := aurum.Blake2b([]byte("k1"))
	k2 := aurum.Blake2b([]byte("k2"))
	v1 := aurum.Blake2b([]byte("v1"))

	st.SetStorage(addr, k1, v1)
	st.SetStorage(addr, k2, v1)
	st.SetStorage(addr, k2, aurum.Bytes32{})
	require.NoError(t, st.Commit())

	// a fresh state over the same store sees committed values
	fresh := New(db)
	got, err := fresh.GetStorage(addr, k1)
	require.NoError(t, err)
	assert.Equal(t, v1, got)
	got, err = fresh.GetStorage(addr, k2)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestRevertedWritesNotCommitted(t *testing.T) {
	st, db := newTestState(t)

	addr := aurum.BytesToAddress([]byte("account1"))
	key := aurum.Blake2b([]byte("key"))
	value := aurum.Blake2b([]byte("value"))

	cp := st.NewCheckpoint()
	st.SetStorage(addr, key, value)
	st.RevertTo(cp)
	require.NoError(t, st.Commit())

	fresh := New(db)
	got, err := fresh.GetStorage(addr, key)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}
