// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurumchain/aurum/aurum"
	"github.com/aurumchain/aurum/builtin/reverts"
	"github.com/aurumchain/aurum/lvldb"
	"github.com/aurumchain/aurum/state"
	"github.com/aurumchain/aurum/xenv"
)

var (
	alice = aurum.BytesToAddress([]byte("alice"))
	bob   = aurum.BytesToAddress([]byte("bob"))
)

func newToken(t *testing.T) (*Token, *state.State) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	st := state.New(db)
	token := New(aurum.BytesToAddress([]byte("aur-token")), st)
	require.NoError(t, token.InitializeSupply(big.NewInt(1_000_000)))
	return token, st
}

func TestSupplyInitialization(t *testing.T) {
	token, _ := newToken(t)

	supply, err := token.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1_000_000), supply)

	err = token.InitializeSupply(big.NewInt(5))
	assert.True(t, reverts.IsConflict(err))
}

func TestMintCappedBySupply(t *testing.T) {
	token, _ := newToken(t)

	require.NoError(t, token.Mint(alice, big.NewInt(600_000)))
	err := token.Mint(bob, big.NewInt(400_001))
	assert.True(t, reverts.IsExhausted(err))
	require.NoError(t, token.Mint(bob, big.NewInt(400_000)))

	balance, err := token.BalanceOf(bob)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(400_000), balance)
}

func TestTransfer(t *testing.T) {
	token, _ := newToken(t)
	require.NoError(t, token.Mint(alice, big.NewInt(100)))

	require.NoError(t, token.Transfer(alice, bob, big.NewInt(40)))
	err := token.Transfer(alice, bob, big.NewInt(61))
	assert.True(t, reverts.IsExhausted(err))

	balance, err := token.BalanceOf(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(60), balance)
	balance, err = token.BalanceOf(bob)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(40), balance)
}

func TestApproveAndTransferFrom(t *testing.T) {
	token, st := newToken(t)
	require.NoError(t, token.Mint(alice, big.NewInt(100)))

	spender := aurum.BytesToAddress([]byte("spender"))
	require.NoError(t, token.Approve(xenv.New(st, alice, 0), spender, big.NewInt(50)))

	remaining, err := token.Allowance(alice, spender)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(50), remaining)

	require.NoError(t, token.TransferFrom(spender, alice, bob, big.NewInt(30)))
	err = token.TransferFrom(spender, alice, bob, big.NewInt(21))
	assert.True(t, reverts.IsExhausted(err))

	remaining, err = token.Allowance(alice, spender)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(20), remaining)
}

func TestVestingLinearUnlock(t *testing.T) {
	bucket := &vestingBucket{
		Total:    big.NewInt(1000),
		Claimed:  new(big.Int),
		Start:    100,
		Cliff:    50,
		Duration: 200,
	}

	// nothing before the cliff
	assert.Equal(t, big.NewInt(0), bucket.Unlocked(0))
	assert.Equal(t, big.NewInt(0), bucket.Unlocked(149))
	// at the cliff the elapsed-since-start share is unlocked at once
	assert.Equal(t, big.NewInt(250), bucket.Unlocked(150))
	// linear afterwards, full total at start+duration
	assert.Equal(t, big.NewInt(500), bucket.Unlocked(200))
	assert.Equal(t, big.NewInt(1000), bucket.Unlocked(300))
	assert.Equal(t, big.NewInt(1000), bucket.Unlocked(10_000))

	bucket.Claimed = big.NewInt(400)
	assert.Equal(t, big.NewInt(100), bucket.Claimable(200))
	assert.Equal(t, big.NewInt(0), bucket.Claimable(150))
}

func TestGrantAndClaimVesting(t *testing.T) {
	token, st := newToken(t)
	require.NoError(t, token.GrantVesting(alice, big.NewInt(1000), 0, 0, 200))

	// one bucket per beneficiary
	err := token.GrantVesting(alice, big.NewInt(1), 0, 0, 100)
	assert.True(t, reverts.IsConflict(err))

	// grants count against the fixed supply
	err = token.GrantVesting(bob, big.NewInt(1_000_000), 0, 0, 100)
	assert.True(t, reverts.IsExhausted(err))

	_, err = token.ClaimVested(xenv.New(st, bob, 100))
	assert.True(t, reverts.IsPrecondition(err))

	env := xenv.New(st, alice, 100)
	claimed, err := token.ClaimVested(env)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(500), claimed)
	assert.Len(t, env.Events(), 1)

	balance, err := token.BalanceOf(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(500), balance)

	// immediately claiming again yields nothing
	_, err = token.ClaimVested(xenv.New(st, alice, 100))
	assert.True(t, reverts.IsExhausted(err))

	// the rest trickles out over the remaining duration
	claimed, err = token.ClaimVested(xenv.New(st, alice, 200))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(500), claimed)

	total, claimedTotal, claimable, err := token.VestingBucket(alice, 200)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), total)
	assert.Equal(t, big.NewInt(1000), claimedTotal)
	assert.Equal(t, big.NewInt(0), claimable)
}
