// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurumchain/aurum/aurum"
	"github.com/aurumchain/aurum/builtin"
	"github.com/aurumchain/aurum/lvldb"
	"github.com/aurumchain/aurum/state"
	"github.com/aurumchain/aurum/xenv"
)

var (
	adminAddr = aurum.BytesToAddress([]byte("admin"))
	alice     = aurum.BytesToAddress([]byte("alice"))
)

func wei(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), aurum.E18)
}

// newServer stands up a staking contract with one staker and an active
// campaign announced at t=0, served at a fixed clock.
func newServer(t *testing.T, now uint64) *httptest.Server {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	st := state.New(db)
	b := builtin.New(st)

	require.NoError(t, b.Token.InitializeSupply(aurum.TotalTokenSupply))
	require.NoError(t, b.Reward.InitializeSupply(aurum.TotalTokenSupply))

	adminEnv := xenv.New(st, adminAddr, 0)
	require.NoError(t, b.Authority.Initialize(adminEnv, adminAddr, adminAddr))
	require.NoError(t, b.Staking.SetTokenAddresses(adminEnv, builtin.TokenAddress, builtin.RewardTokenAddress))

	require.NoError(t, b.Token.Mint(alice, wei(1000)))
	require.NoError(t, b.Token.Approve(xenv.New(st, alice, 0), builtin.StakingAddress, wei(1000)))
	require.NoError(t, b.Staking.Stake(xenv.New(st, alice, 0), wei(1000)))

	require.NoError(t, b.Reward.Mint(adminAddr, wei(5000)))
	require.NoError(t, b.Reward.Approve(adminEnv, builtin.StakingAddress, wei(5000)))
	require.NoError(t, b.Staking.DepositAndAnnounce(adminEnv, wei(5000)))

	router := mux.NewRouter()
	New(b.Staking, func() uint64 { return now }).Mount(router, "/staking")
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func get(t *testing.T, server *httptest.Server, path string, out any) int {
	res, err := http.Get(server.URL + path)
	require.NoError(t, err)
	defer res.Body.Close()
	if res.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	} else {
		io.Copy(io.Discard, res.Body)
	}
	return res.StatusCode
}

func TestGetStats(t *testing.T) {
	server := newServer(t, 86280)

	var stats StatsJSON
	require.Equal(t, http.StatusOK, get(t, server, "/staking/stats", &stats))
	assert.Equal(t, wei(1000).String(), stats.GlobalStake)
	assert.Equal(t, uint64(1), stats.StakerCount)
	assert.Equal(t, wei(5000).String(), stats.TotalPending)
	require.NotNil(t, stats.Campaign)
	assert.Equal(t, uint64(86280), stats.Campaign.Finish)
}

func TestGetAccount(t *testing.T) {
	server := newServer(t, 86280/2)

	var account AccountJSON
	status := get(t, server, "/staking/accounts/"+alice.String(), &account)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, wei(1000).String(), account.Staked)
	assert.Equal(t, wei(2500).String(), account.Pending)

	assert.Equal(t, http.StatusBadRequest, get(t, server, "/staking/accounts/xyz", nil))
}

func TestGetRewards(t *testing.T) {
	server := newServer(t, 86280)

	var rewards []*RewardJSON
	require.Equal(t, http.StatusOK, get(t, server, "/staking/rewards", &rewards))
	require.Len(t, rewards, 1)
	assert.Equal(t, alice, rewards[0].Address)
	assert.Equal(t, wei(5000).String(), rewards[0].Pending)

	// out-of-range pagination surfaces as a client error
	assert.Equal(t, http.StatusBadRequest, get(t, server, "/staking/rewards?offset=9", nil))
	assert.Equal(t, http.StatusBadRequest, get(t, server, "/staking/rewards?size=bogus", nil))
}

func TestPostRewardsByAddress(t *testing.T) {
	server := newServer(t, 86280)

	body := `{"addresses": ["` + alice.String() + `", "0x0000000000000000000000000000000000000123"]}`
	res, err := http.Post(server.URL+"/staking/rewards-by-address", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var rewards []*RewardJSON
	require.NoError(t, json.NewDecoder(res.Body).Decode(&rewards))
	require.Len(t, rewards, 2)
	assert.Equal(t, wei(5000).String(), rewards[0].Pending)
	assert.Equal(t, "0", rewards[1].Pending)

	res, err = http.Post(server.URL+"/staking/rewards-by-address", "application/json", strings.NewReader(`{"addresses": ["nope"]}`))
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}
