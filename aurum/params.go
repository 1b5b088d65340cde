// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package aurum

import "math/big"

// Constants of the Aurum economic layer.
const (
	// TokenDecimals decimal places of the AUR token and all 1e18-scaled math.
	TokenDecimals = 18

	// MinCampaignDuration lower bound for a reward campaign window (seconds).
	MinCampaignDuration uint64 = 3600
	// MaxCampaignDuration upper bound for a reward campaign window (seconds).
	MaxCampaignDuration uint64 = 365 * 24 * 3600

	// MaxUnstakePeriod upper bound of the principal time lock (seconds).
	MaxUnstakePeriod uint64 = 365 * 24 * 3600
)

// Keys of governance params.
var (
	KeyCampaignDuration = BytesToBytes32([]byte("campaign-duration"))
	KeyUnstakePeriod    = BytesToBytes32([]byte("unstake-period"))

	InitialCampaignDuration = big.NewInt(86280)          // 23h58m, just short of a day
	InitialUnstakePeriod    = big.NewInt(14 * 24 * 3600) // 14 days
)

// E18 is the fixed-point scale shared by rate and index math.
var E18 = big.NewInt(1e18)

// TotalTokenSupply is the fixed AUR supply, minted once at genesis.
var TotalTokenSupply = new(big.Int).Mul(big.NewInt(1e9), E18)
