// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/aurumchain/aurum/aurum"
)

// accrualDelta computes the reward-index increase and the matching distributed
// amount for the window (lastUpdate, now], clamped to the campaign bounds.
// The index increase is computed with a single division so rounding dust does
// not compound across calls that span the same window.
func accrualDelta(c *Campaign, lastUpdate, now uint64, globalStake *big.Int) (indexDelta, distributedDelta *big.Int) {
	indexDelta = new(big.Int)
	distributedDelta = new(big.Int)

	if c.IsZero() || globalStake.Sign() == 0 {
		return
	}
	from := lastUpdate
	if from < c.Start {
		from = c.Start
	}
	to := now
	if to > c.Finish {
		to = c.Finish
	}
	if to <= from {
		return
	}

	// elapsed * reward * 1e18 / (duration * globalStake)
	elapsed := new(big.Int).SetUint64(to - from)
	indexDelta.Mul(elapsed, c.Reward)
	indexDelta.Mul(indexDelta, bigE18)
	den := new(big.Int).SetUint64(c.Duration())
	den.Mul(den, globalStake)
	indexDelta.Div(indexDelta, den)

	distributedDelta.Mul(indexDelta, globalStake)
	distributedDelta.Div(distributedDelta, bigE18)
	return
}

// advance folds the accrual since the last update into the stored index and
// the distributed counter, then moves the update clock forward. Every state
// mutation must call this first so stake changes never rewrite history.
func (s *Staking) advance(now uint64) error {
	c, err := s.storage.GetCampaign()
	if err != nil {
		return err
	}
	last, err := s.storage.lastUpdate.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get last update")
	}
	stake, err := s.storage.globalStake.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get global stake")
	}

	indexDelta, distributedDelta := accrualDelta(c, last.Uint64(), now, stake)
	if indexDelta.Sign() > 0 {
		if err := s.storage.rewardIndex.Add(indexDelta); err != nil {
			return errors.Wrap(err, "failed to advance reward index")
		}
		if err := s.storage.distributed.Add(distributedDelta); err != nil {
			return errors.Wrap(err, "failed to advance distributed counter")
		}
	}
	// a backwards clock must not rewind the update marker, or the
	// already-accrued window would be distributed a second time
	if now > last.Uint64() {
		s.storage.lastUpdate.Set(new(big.Int).SetUint64(now))
	}
	return nil
}

// projectedIndex returns the reward index as it would stand after advance(now),
// without touching storage.
func (s *Staking) projectedIndex(now uint64) (*big.Int, error) {
	c, err := s.storage.GetCampaign()
	if err != nil {
		return nil, err
	}
	last, err := s.storage.lastUpdate.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get last update")
	}
	stake, err := s.storage.globalStake.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get global stake")
	}
	index, err := s.storage.rewardIndex.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get reward index")
	}

	indexDelta, _ := accrualDelta(c, last.Uint64(), now, stake)
	return index.Add(index, indexDelta), nil
}

// syncLedger folds the stored index into the given account's unclaimed
// balance. Must run after advance(now) within the same mutation.
func (s *Staking) syncLedger(addr aurum.Address) (*ledgerEntry, error) {
	index, err := s.storage.rewardIndex.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get reward index")
	}
	entry, err := s.storage.GetLedger(addr)
	if err != nil {
		return nil, err
	}
	entry.Unclaimed = entry.pendingAt(index)
	entry.Snapshot = index
	if err := s.storage.SetLedger(addr, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
