// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurumchain/aurum/aurum"
	"github.com/aurumchain/aurum/lvldb"
	"github.com/aurumchain/aurum/state"
)

const testConfig = `
admin: "0x0000000000000000000000000000000000616d01"
announcer: "0x0000000000000000000000000000000000616e02"
campaignDuration: 86280
unstakePeriod: 1209600
swapReserve: "1000000000000000000000"
allocations:
  - beneficiary: "0x0000000000000000000000000000000000000a01"
    amount: "5000000000000000000000"
  - beneficiary: "0x0000000000000000000000000000000000000a02"
    amount: "2000000000000000000000"
    vesting:
      start: 0
      cliff: 31536000
      duration: 126144000
`

func newState(t *testing.T) *state.State {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	return state.New(db)
}

func TestParseAndApply(t *testing.T) {
	config, err := Parse([]byte(testConfig))
	require.NoError(t, err)
	assert.Equal(t, uint64(86280), config.CampaignDuration)
	require.Len(t, config.Allocations, 2)

	st := newState(t)
	b, err := config.Apply(st)
	require.NoError(t, err)

	liquid := aurum.MustParseAddress("0x0000000000000000000000000000000000000a01")
	balance, err := b.Token.BalanceOf(liquid)
	require.NoError(t, err)
	want, _ := new(big.Int).SetString("5000000000000000000000", 10)
	assert.Equal(t, want, balance)

	// the vested allocation is locked behind its cliff
	vested := aurum.MustParseAddress("0x0000000000000000000000000000000000000a02")
	_, _, claimable, err := b.Token.VestingBucket(vested, 0)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(0), claimable)

	duration, err := b.Staking.CampaignDuration()
	require.NoError(t, err)
	assert.Equal(t, uint64(86280), duration)

	param, err := b.Params.Get(aurum.KeyCampaignDuration)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(86280), param)
}

func TestApplyRejectsBadInput(t *testing.T) {
	config, err := Parse([]byte(`admin: "not-an-address"`))
	require.NoError(t, err)
	_, err = config.Apply(newState(t))
	assert.Error(t, err)

	config, err = Parse([]byte(`
admin: "0x0000000000000000000000000000000000616d01"
allocations:
  - beneficiary: "0x0000000000000000000000000000000000000a01"
    amount: "-5"
`))
	require.NoError(t, err)
	_, err = config.Apply(newState(t))
	assert.Error(t, err)
}

func TestParseRejectsBadYaml(t *testing.T) {
	_, err := Parse([]byte("allocations: {not a list"))
	assert.Error(t, err)
}

func TestApplyIsIdempotentOverSameStore(t *testing.T) {
	config, err := Parse([]byte(testConfig))
	require.NoError(t, err)

	db, err := lvldb.NewMem()
	require.NoError(t, err)

	_, err = config.Apply(state.New(db))
	require.NoError(t, err)

	// a restart opens the same store and applies genesis again
	b, err := config.Apply(state.New(db))
	require.NoError(t, err)

	liquid := aurum.MustParseAddress("0x0000000000000000000000000000000000000a01")
	balance, err := b.Token.BalanceOf(liquid)
	require.NoError(t, err)
	want, _ := new(big.Int).SetString("5000000000000000000000", 10)
	assert.Equal(t, want, balance)
}
