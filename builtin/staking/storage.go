// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/aurumchain/aurum/aurum"
	"github.com/aurumchain/aurum/builtin/solidity"
	"github.com/aurumchain/aurum/state"
)

var (
	slotStakingAsset = nameToSlot("staking-asset")
	slotRewardAsset  = nameToSlot("reward-asset")
	// governance knobs, seeded from aurum.Initial* on first read
	slotCampaignDuration = nameToSlot("campaign-duration")
	slotUnstakePeriod    = nameToSlot("unstake-period")
	// accrual engine
	slotCampaign    = nameToSlot("campaign")
	slotRewardIndex = nameToSlot("reward-index")
	slotLastUpdate  = nameToSlot("last-update")
	slotGlobalStake = nameToSlot("global-stake")
	// treasury counters
	slotDeposited   = nameToSlot("treasury-deposited")
	slotDistributed = nameToSlot("rewards-distributed")
	slotCommitted   = nameToSlot("rewards-committed")
	slotClaimed     = nameToSlot("rewards-claimed")
	// per-account state
	slotLedgers    = nameToSlot("ledgers")
	slotDeposits   = nameToSlot("deposits")
	slotStakers    = nameToSlot("stakers")
	slotEverStaked = nameToSlot("ever-staked")
	// mutation-in-progress flag
	slotBusy = nameToSlot("busy")
)

func nameToSlot(name string) aurum.Bytes32 {
	return aurum.BytesToBytes32([]byte(name))
}

// storage represents the root storage for the Staking contract.
type storage struct {
	context          *solidity.Context
	ledgers          *solidity.Mapping[aurum.Address, *ledgerEntry]
	deposits         *solidity.Mapping[aurum.Address, *depositList]
	stakers          *solidity.Array[aurum.Address]
	everStaked       *solidity.Mapping[aurum.Address, bool]
	campaign         *solidity.Value[*Campaign]
	rewardIndex      *solidity.Uint256
	lastUpdate       *solidity.Uint256
	globalStake      *solidity.Uint256
	deposited        *solidity.Uint256
	distributed      *solidity.Uint256
	committed        *solidity.Uint256
	claimed          *solidity.Uint256
	busy             *solidity.Uint256
	stakingAsset     *solidity.Address
	rewardAsset      *solidity.Address
	campaignDuration *solidity.Uint256
	unstakePeriod    *solidity.Uint256
}

// newStorage creates a new instance of storage.
func newStorage(addr aurum.Address, state *state.State) *storage {
	context := solidity.NewContext(addr, state)
	return &storage{
		context:          context,
		ledgers:          solidity.NewMapping[aurum.Address, *ledgerEntry](context, slotLedgers),
		deposits:         solidity.NewMapping[aurum.Address, *depositList](context, slotDeposits),
		stakers:          solidity.NewArray[aurum.Address](context, slotStakers),
		everStaked:       solidity.NewMapping[aurum.Address, bool](context, slotEverStaked),
		campaign:         solidity.NewValue[*Campaign](context, slotCampaign),
		rewardIndex:      solidity.NewUint256(context, slotRewardIndex),
		lastUpdate:       solidity.NewUint256(context, slotLastUpdate),
		globalStake:      solidity.NewUint256(context, slotGlobalStake),
		deposited:        solidity.NewUint256(context, slotDeposited),
		distributed:      solidity.NewUint256(context, slotDistributed),
		committed:        solidity.NewUint256(context, slotCommitted),
		claimed:          solidity.NewUint256(context, slotClaimed),
		busy:             solidity.NewUint256(context, slotBusy),
		stakingAsset:     solidity.NewAddress(context, slotStakingAsset),
		rewardAsset:      solidity.NewAddress(context, slotRewardAsset),
		campaignDuration: solidity.NewUint256(context, slotCampaignDuration),
		unstakePeriod:    solidity.NewUint256(context, slotUnstakePeriod),
	}
}

func (s *storage) GetLedger(addr aurum.Address) (*ledgerEntry, error) {
	entry, err := s.ledgers.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get ledger entry")
	}
	return entry.normalize(), nil
}

func (s *storage) SetLedger(addr aurum.Address, entry *ledgerEntry) error {
	if err := s.ledgers.Set(addr, entry); err != nil {
		return errors.Wrap(err, "failed to set ledger entry")
	}
	return nil
}

func (s *storage) GetDeposits(addr aurum.Address) (*depositList, error) {
	list, err := s.deposits.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get deposit list")
	}
	return list, nil
}

func (s *storage) AppendDeposit(addr aurum.Address, amount *big.Int, now uint64) error {
	list, err := s.GetDeposits(addr)
	if err != nil {
		return err
	}
	list.Items = append(list.Items, deposit{Amount: amount, Time: now})
	if err := s.deposits.Set(addr, list); err != nil {
		return errors.Wrap(err, "failed to append deposit")
	}
	return nil
}

func (s *storage) GetCampaign() (*Campaign, error) {
	c, err := s.campaign.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get campaign")
	}
	return c.normalize(), nil
}

func (s *storage) SetCampaign(c *Campaign) error {
	if err := s.campaign.Set(c); err != nil {
		return errors.Wrap(err, "failed to set campaign")
	}
	return nil
}

// RegisterStaker records a first-time staker in the enumeration set.
func (s *storage) RegisterStaker(addr aurum.Address) error {
	seen, err := s.everStaked.Get(addr)
	if err != nil {
		return errors.Wrap(err, "failed to get staker membership")
	}
	if seen {
		return nil
	}
	if err := s.stakers.Append(addr); err != nil {
		return errors.Wrap(err, "failed to append staker")
	}
	if err := s.everStaked.Set(addr, true); err != nil {
		return errors.Wrap(err, "failed to set staker membership")
	}
	return nil
}

// GetCampaignDuration returns the configured campaign length,
// falling back to the protocol default when unset.
func (s *storage) GetCampaignDuration() (uint64, error) {
	v, err := s.campaignDuration.Get()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get campaign duration")
	}
	if v.Sign() == 0 {
		return aurum.InitialCampaignDuration.Uint64(), nil
	}
	return v.Uint64(), nil
}

// GetUnstakePeriod returns the configured unstake time lock,
// falling back to the protocol default when unset.
func (s *storage) GetUnstakePeriod() (uint64, error) {
	v, err := s.unstakePeriod.Get()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get unstake period")
	}
	if v.Sign() == 0 {
		return aurum.InitialUnstakePeriod.Uint64(), nil
	}
	return v.Uint64(), nil
}
