// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/aurumchain/aurum/aurum"
	stk "github.com/aurumchain/aurum/builtin/staking"
)

// amounts travel as decimal strings, json numbers cannot hold 256-bit values
func amountString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

// CampaignJSON is the wire shape of a reward campaign.
type CampaignJSON struct {
	Start  uint64 `json:"start"`
	Finish uint64 `json:"finish"`
	Reward string `json:"reward"`
}

// StatsJSON is the wire shape of the pool-wide counters.
type StatsJSON struct {
	GlobalStake  string        `json:"globalStake"`
	StakerCount  uint64        `json:"stakerCount"`
	RewardIndex  string        `json:"rewardIndex"`
	Campaign     *CampaignJSON `json:"campaign,omitempty"`
	Deposited    string        `json:"deposited"`
	Distributed  string        `json:"distributed"`
	Committed    string        `json:"committed"`
	TotalPending string        `json:"totalPending"`
}

// AccountJSON is the wire shape of one staker's aggregate view.
type AccountJSON struct {
	Address    aurum.Address `json:"address"`
	Staked     string        `json:"staked"`
	Pending    string        `json:"pending"`
	Claimed    string        `json:"claimed"`
	Unlockable string        `json:"unlockable"`
}

// RewardJSON is one entry of a rewards listing.
type RewardJSON struct {
	Address aurum.Address `json:"address"`
	Pending string        `json:"pending"`
}

// AddressListJSON is the body of the rewards-by-address lookup.
type AddressListJSON struct {
	Addresses []string `json:"addresses"`
}

func convertStats(stats *stk.GlobalStats) *StatsJSON {
	out := &StatsJSON{
		GlobalStake:  amountString(stats.GlobalStake),
		StakerCount:  stats.StakerCount,
		RewardIndex:  amountString(stats.RewardIndex),
		Deposited:    amountString(stats.Deposited),
		Distributed:  amountString(stats.Distributed),
		Committed:    amountString(stats.Committed),
		TotalPending: amountString(stats.TotalPending),
	}
	if stats.Campaign != nil && !stats.Campaign.IsZero() {
		out.Campaign = &CampaignJSON{
			Start:  stats.Campaign.Start,
			Finish: stats.Campaign.Finish,
			Reward: amountString(stats.Campaign.Reward),
		}
	}
	return out
}

func convertAccount(addr aurum.Address, stats *stk.UserStats) *AccountJSON {
	return &AccountJSON{
		Address:    addr,
		Staked:     amountString(stats.Staked),
		Pending:    amountString(stats.Pending),
		Claimed:    amountString(stats.Claimed),
		Unlockable: amountString(stats.Unlockable),
	}
}

func convertRewards(rewards []*stk.AccountReward) []*RewardJSON {
	out := make([]*RewardJSON, 0, len(rewards))
	for _, r := range rewards {
		out = append(out, &RewardJSON{Address: r.Address, Pending: amountString(r.Pending)})
	}
	return out
}
