// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/aurumchain/aurum/aurum"
)

// Campaign is a reward distribution window. Reward is released linearly
// from Start to Finish over the stake present at each instant.
type Campaign struct {
	Start  uint64
	Finish uint64
	Reward *big.Int
}

// IsZero reports whether no campaign has ever been announced.
func (c *Campaign) IsZero() bool {
	return c.Start == 0 && c.Finish == 0 && (c.Reward == nil || c.Reward.Sign() == 0)
}

// Duration returns the campaign length in seconds.
func (c *Campaign) Duration() uint64 {
	return c.Finish - c.Start
}

// Active reports whether the campaign is releasing rewards at the given time.
func (c *Campaign) Active(now uint64) bool {
	return !c.IsZero() && now >= c.Start && now < c.Finish
}

func (c *Campaign) normalize() *Campaign {
	if c.Reward == nil {
		c.Reward = new(big.Int)
	}
	return c
}

// ledgerEntry holds one staker's position and reward bookkeeping.
// Snapshot is the global reward index last synced into Unclaimed;
// Unstaked is the cumulative amount ever withdrawn from the position.
type ledgerEntry struct {
	Stake     *big.Int
	Snapshot  *big.Int
	Unclaimed *big.Int
	Claimed   *big.Int
	Unstaked  *big.Int
}

func (e *ledgerEntry) normalize() *ledgerEntry {
	if e.Stake == nil {
		e.Stake = new(big.Int)
	}
	if e.Snapshot == nil {
		e.Snapshot = new(big.Int)
	}
	if e.Unclaimed == nil {
		e.Unclaimed = new(big.Int)
	}
	if e.Claimed == nil {
		e.Claimed = new(big.Int)
	}
	if e.Unstaked == nil {
		e.Unstaked = new(big.Int)
	}
	return e
}

// pendingAt projects the entry's claimable reward against the given index.
func (e *ledgerEntry) pendingAt(index *big.Int) *big.Int {
	pending := new(big.Int).Sub(index, e.Snapshot)
	pending.Mul(pending, e.Stake)
	pending.Div(pending, bigE18)
	return pending.Add(pending, e.Unclaimed)
}

// deposit is a single time-locked stake lot.
type deposit struct {
	Amount *big.Int
	Time   uint64
}

// depositList is the append-only lot history of one staker.
type depositList struct {
	Items []deposit
}

// maturedAt sums the lots whose lock has elapsed by now.
func (l *depositList) maturedAt(now, unstakePeriod uint64) *big.Int {
	matured := new(big.Int)
	for _, d := range l.Items {
		if d.Time+unstakePeriod <= now {
			matured.Add(matured, d.Amount)
		}
	}
	return matured
}

// UserStats is the per-staker view returned by GetUserStats.
type UserStats struct {
	Staked     *big.Int
	Pending    *big.Int
	Claimed    *big.Int
	Unlockable *big.Int
}

// GlobalStats is the pool-wide view returned by GetGlobalStats.
type GlobalStats struct {
	GlobalStake  *big.Int
	StakerCount  uint64
	RewardIndex  *big.Int
	Campaign     *Campaign
	Deposited    *big.Int
	Distributed  *big.Int
	Committed    *big.Int
	TotalPending *big.Int
}

// AccountReward pairs a staker with their projected claimable reward.
type AccountReward struct {
	Address aurum.Address
	Pending *big.Int
}
