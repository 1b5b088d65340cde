// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/aurumchain/aurum/aurum"
	"github.com/aurumchain/aurum/builtin/reverts"
)

// MaxBatchSize caps one page of GetStakersRewardsBatch.
const MaxBatchSize = 1000

// PendingReward projects the claimable reward of addr at the given time
// without mutating state.
func (s *Staking) PendingReward(addr aurum.Address, now uint64) (*big.Int, error) {
	index, err := s.projectedIndex(now)
	if err != nil {
		return nil, err
	}
	entry, err := s.storage.GetLedger(addr)
	if err != nil {
		return nil, err
	}
	return entry.pendingAt(index), nil
}

// GetUnlockableAmount returns the matured, not yet withdrawn principal of addr.
func (s *Staking) GetUnlockableAmount(addr aurum.Address, now uint64) (*big.Int, error) {
	entry, err := s.storage.GetLedger(addr)
	if err != nil {
		return nil, err
	}
	return s.unlockableOf(addr, entry, now)
}

// GetUserStats aggregates one staker's position.
func (s *Staking) GetUserStats(addr aurum.Address, now uint64) (*UserStats, error) {
	index, err := s.projectedIndex(now)
	if err != nil {
		return nil, err
	}
	entry, err := s.storage.GetLedger(addr)
	if err != nil {
		return nil, err
	}
	unlockable, err := s.unlockableOf(addr, entry, now)
	if err != nil {
		return nil, err
	}
	return &UserStats{
		Staked:     entry.Stake,
		Pending:    entry.pendingAt(index),
		Claimed:    entry.Claimed,
		Unlockable: unlockable,
	}, nil
}

// GetGlobalStats aggregates the pool-wide counters. TotalPending walks the
// full staker set and is meant for off-chain callers only.
func (s *Staking) GetGlobalStats(now uint64) (*GlobalStats, error) {
	index, err := s.projectedIndex(now)
	if err != nil {
		return nil, err
	}
	stake, err := s.storage.globalStake.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get global stake")
	}
	campaign, err := s.storage.GetCampaign()
	if err != nil {
		return nil, err
	}
	deposited, err := s.storage.deposited.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get deposited")
	}
	distributed, err := s.storage.distributed.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get distributed")
	}
	committed, err := s.storage.committed.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get committed")
	}
	count, err := s.storage.stakers.Len()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get staker count")
	}

	totalPending := new(big.Int)
	for i := uint64(0); i < count; i++ {
		addr, err := s.storage.stakers.Get(i)
		if err != nil {
			return nil, errors.Wrap(err, "failed to get staker")
		}
		entry, err := s.storage.GetLedger(addr)
		if err != nil {
			return nil, err
		}
		totalPending.Add(totalPending, entry.pendingAt(index))
	}

	return &GlobalStats{
		GlobalStake:  stake,
		StakerCount:  count,
		RewardIndex:  index,
		Campaign:     campaign,
		Deposited:    deposited,
		Distributed:  distributed,
		Committed:    committed,
		TotalPending: totalPending,
	}, nil
}

// GetStakersRewardsBatch pages over the staker set in registration order,
// returning each staker's projected reward at now.
func (s *Staking) GetStakersRewardsBatch(now, offset, limit uint64) ([]*AccountReward, error) {
	if limit == 0 || limit > MaxBatchSize {
		return nil, reverts.Precondition("batch limit %d out of bounds (0, %d]", limit, MaxBatchSize)
	}
	count, err := s.storage.stakers.Len()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get staker count")
	}
	if offset > count {
		return nil, reverts.Precondition("batch offset %d beyond staker count %d", offset, count)
	}
	end := offset + limit
	if end > count {
		end = count
	}
	index, err := s.projectedIndex(now)
	if err != nil {
		return nil, err
	}
	batch := make([]*AccountReward, 0, end-offset)
	for i := offset; i < end; i++ {
		addr, err := s.storage.stakers.Get(i)
		if err != nil {
			return nil, errors.Wrap(err, "failed to get staker")
		}
		entry, err := s.storage.GetLedger(addr)
		if err != nil {
			return nil, err
		}
		batch = append(batch, &AccountReward{Address: addr, Pending: entry.pendingAt(index)})
	}
	return batch, nil
}

// GetRewardsByAddresses returns the projected reward of each given address.
// Unknown addresses report zero.
func (s *Staking) GetRewardsByAddresses(now uint64, addrs []aurum.Address) ([]*AccountReward, error) {
	index, err := s.projectedIndex(now)
	if err != nil {
		return nil, err
	}
	out := make([]*AccountReward, 0, len(addrs))
	for _, addr := range addrs {
		entry, err := s.storage.GetLedger(addr)
		if err != nil {
			return nil, err
		}
		out = append(out, &AccountReward{Address: addr, Pending: entry.pendingAt(index)})
	}
	return out, nil
}

// Campaign returns the current campaign, the zero campaign if none announced.
func (s *Staking) Campaign() (*Campaign, error) {
	return s.storage.GetCampaign()
}

// CampaignDuration returns the duration applied to future campaigns.
func (s *Staking) CampaignDuration() (uint64, error) {
	return s.storage.GetCampaignDuration()
}

// UnstakePeriod returns the principal time lock.
func (s *Staking) UnstakePeriod() (uint64, error) {
	return s.storage.GetUnstakePeriod()
}

// Assets returns the configured staking and reward asset addresses.
func (s *Staking) Assets() (stakingAsset, rewardAsset aurum.Address, err error) {
	if stakingAsset, err = s.storage.stakingAsset.Get(); err != nil {
		return
	}
	rewardAsset, err = s.storage.rewardAsset.Get()
	return
}

// GlobalStake returns the total principal currently staked.
func (s *Staking) GlobalStake() (*big.Int, error) {
	return s.storage.globalStake.Get()
}
