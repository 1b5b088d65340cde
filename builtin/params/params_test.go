// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package params

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurumchain/aurum/aurum"
	"github.com/aurumchain/aurum/lvldb"
	"github.com/aurumchain/aurum/state"
)

func TestGetSet(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	st := state.New(db)

	p := New(aurum.BytesToAddress([]byte("params")), st)

	// unset key reads as zero
	v, err := p.Get(aurum.KeyCampaignDuration)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v.Int64())

	p.Set(aurum.KeyCampaignDuration, big.NewInt(86280))
	v, err = p.Get(aurum.KeyCampaignDuration)
	require.NoError(t, err)
	assert.Equal(t, int64(86280), v.Int64())

	// keys are independent
	v, err = p.Get(aurum.KeyUnstakePeriod)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v.Int64())

	p.Set(aurum.KeyCampaignDuration, big.NewInt(7200))
	v, err = p.Get(aurum.KeyCampaignDuration)
	require.NoError(t, err)
	assert.Equal(t, int64(7200), v.Int64())
}
