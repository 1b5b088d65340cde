// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staking implements the native staking contract: time-locked
// principal, campaign-based reward release and an O(1) accrual index
// shared by every staker.
package staking

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/aurumchain/aurum/aurum"
	"github.com/aurumchain/aurum/builtin/authority"
	"github.com/aurumchain/aurum/builtin/reverts"
	"github.com/aurumchain/aurum/log"
	"github.com/aurumchain/aurum/metrics"
	"github.com/aurumchain/aurum/state"
	"github.com/aurumchain/aurum/xenv"
)

var logger = log.WithContext("pkg", "staking")

// Staking is the facade over the staking contract's storage.
type Staking struct {
	addr    aurum.Address
	storage *storage
	auth    *authority.Authority
	resolve AssetResolver
}

// New creates the staking facade bound to the given contract address.
func New(addr aurum.Address, state *state.State, auth *authority.Authority, resolve AssetResolver) *Staking {
	return &Staking{
		addr:    addr,
		storage: newStorage(addr, state),
		auth:    auth,
		resolve: resolve,
	}
}

// Address returns the contract's own address.
func (s *Staking) Address() aurum.Address { return s.addr }

// run wraps a mutation: one checkpoint, the in-progress flag held for the
// whole call, full rollback of state and events on any error.
func (s *Staking) run(env *xenv.Environment, op string, fn func(now uint64) error) error {
	metrics.CounterVec("staking_operation_count", []string{"op"}).
		AddWithLabel(1, map[string]string{"op": op})
	return env.Apply(func() error {
		busy, err := s.storage.busy.Get()
		if err != nil {
			return errors.Wrap(err, "failed to get busy flag")
		}
		if busy.Sign() != 0 {
			return reverts.Conflict("reentrant call")
		}
		s.storage.busy.Set(big.NewInt(1))
		if err := fn(env.Now()); err != nil {
			return err
		}
		s.storage.busy.Set(new(big.Int))
		return nil
	})
}

func (s *Staking) stakingAsset() (aurum.Address, Asset, error) {
	addr, err := s.storage.stakingAsset.Get()
	if err != nil {
		return aurum.Address{}, nil, errors.Wrap(err, "failed to get staking asset")
	}
	if addr.IsZero() {
		return aurum.Address{}, nil, reverts.Precondition("staking asset not configured")
	}
	return addr, s.resolve(addr), nil
}

func (s *Staking) rewardAsset() (aurum.Address, Asset, error) {
	addr, err := s.storage.rewardAsset.Get()
	if err != nil {
		return aurum.Address{}, nil, errors.Wrap(err, "failed to get reward asset")
	}
	if addr.IsZero() {
		return aurum.Address{}, nil, reverts.Precondition("reward asset not configured")
	}
	return addr, s.resolve(addr), nil
}

// pullIn transfers amount from the payer into the contract and returns the
// balance actually received, which may be less for fee-on-transfer assets.
func (s *Staking) pullIn(asset Asset, payer aurum.Address, amount *big.Int) (*big.Int, error) {
	before, err := asset.BalanceOf(s.addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get contract balance")
	}
	if err := asset.TransferFrom(s.addr, payer, s.addr, amount); err != nil {
		if reverts.IsRevert(err) {
			return nil, err
		}
		return nil, reverts.TransferFailed("transfer in failed: %v", err)
	}
	after, err := asset.BalanceOf(s.addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get contract balance")
	}
	credited := new(big.Int).Sub(after, before)
	if credited.Sign() <= 0 {
		return nil, reverts.TransferFailed("no value received")
	}
	return credited, nil
}

func (s *Staking) payOut(asset Asset, to aurum.Address, amount *big.Int) error {
	if err := asset.Transfer(s.addr, to, amount); err != nil {
		if reverts.IsRevert(err) {
			return err
		}
		return reverts.TransferFailed("transfer out failed: %v", err)
	}
	return nil
}

// Initialize sets the admin and announcer roles, once.
func (s *Staking) Initialize(env *xenv.Environment, admin, announcer aurum.Address) error {
	return s.auth.Initialize(env, admin, announcer)
}

// SetTokenAddresses binds the staking and reward asset contracts. One-time, admin only.
func (s *Staking) SetTokenAddresses(env *xenv.Environment, stakingAsset, rewardAsset aurum.Address) error {
	return s.run(env, "set_token_addresses", func(_ uint64) error {
		if err := s.auth.RequireAdmin(env.Caller()); err != nil {
			return err
		}
		if stakingAsset.IsZero() || rewardAsset.IsZero() {
			return reverts.Precondition("asset address must not be zero")
		}
		if stakingAsset == rewardAsset {
			return reverts.Precondition("staking and reward asset must differ")
		}
		current, err := s.storage.stakingAsset.Get()
		if err != nil {
			return errors.Wrap(err, "failed to get staking asset")
		}
		if !current.IsZero() {
			return reverts.Conflict("assets already configured")
		}
		s.storage.stakingAsset.Set(stakingAsset)
		s.storage.rewardAsset.Set(rewardAsset)
		logger.Info("assets configured", "staking", stakingAsset, "reward", rewardAsset)
		return nil
	})
}

// SetCampaignDuration updates the length applied to future campaigns. Admin only.
func (s *Staking) SetCampaignDuration(env *xenv.Environment, seconds uint64) error {
	return s.run(env, "set_campaign_duration", func(_ uint64) error {
		if err := s.auth.RequireAdmin(env.Caller()); err != nil {
			return err
		}
		if seconds < aurum.MinCampaignDuration || seconds > aurum.MaxCampaignDuration {
			return reverts.Precondition("campaign duration %d out of bounds [%d, %d]",
				seconds, aurum.MinCampaignDuration, aurum.MaxCampaignDuration)
		}
		s.storage.campaignDuration.Set(new(big.Int).SetUint64(seconds))
		s.emitConfig(env, aurum.KeyCampaignDuration, seconds)
		return nil
	})
}

// SetUnstakePeriod updates the principal time lock applied to future stake
// lots. Admin only.
func (s *Staking) SetUnstakePeriod(env *xenv.Environment, seconds uint64) error {
	return s.run(env, "set_unstake_period", func(_ uint64) error {
		if err := s.auth.RequireAdmin(env.Caller()); err != nil {
			return err
		}
		if seconds == 0 || seconds > aurum.MaxUnstakePeriod {
			return reverts.Precondition("unstake period %d out of bounds (0, %d]",
				seconds, aurum.MaxUnstakePeriod)
		}
		s.storage.unstakePeriod.Set(new(big.Int).SetUint64(seconds))
		s.emitConfig(env, aurum.KeyUnstakePeriod, seconds)
		return nil
	})
}

// Deposit moves reward funds from the caller into the treasury.
func (s *Staking) Deposit(env *xenv.Environment, amount *big.Int) error {
	return s.run(env, "deposit", func(now uint64) error {
		if err := s.advance(now); err != nil {
			return err
		}
		_, err := s.depositLocked(env, amount)
		return err
	})
}

func (s *Staking) depositLocked(env *xenv.Environment, amount *big.Int) (*big.Int, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, reverts.Precondition("deposit amount must be positive")
	}
	_, asset, err := s.rewardAsset()
	if err != nil {
		return nil, err
	}
	credited, err := s.pullIn(asset, env.Caller(), amount)
	if err != nil {
		return nil, err
	}
	if err := s.storage.deposited.Add(credited); err != nil {
		return nil, errors.Wrap(err, "failed to credit treasury")
	}
	s.emitAmount(env, topicTreasuryDeposit, env.Caller(), credited)
	logger.Debug("treasury deposit", "from", env.Caller(), "credited", credited)
	return credited, nil
}

// Withdraw moves treasury funds out, bounded so that committed rewards and
// staked principal can never leave the contract. Admin only.
func (s *Staking) Withdraw(env *xenv.Environment, assetAddr, to aurum.Address, amount *big.Int) error {
	return s.run(env, "withdraw", func(now uint64) error {
		if err := s.auth.RequireAdmin(env.Caller()); err != nil {
			return err
		}
		if amount == nil || amount.Sign() <= 0 {
			return reverts.Precondition("withdraw amount must be positive")
		}
		if err := s.advance(now); err != nil {
			return err
		}
		asset := s.resolve(assetAddr)
		if asset == nil {
			return reverts.Precondition("unknown asset %v", assetAddr)
		}
		limit, err := s.withdrawLimit(assetAddr, asset)
		if err != nil {
			return err
		}
		if amount.Cmp(limit) > 0 {
			return reverts.Exhausted("withdraw %v exceeds limit %v", amount, limit)
		}
		rewardAddr, err := s.storage.rewardAsset.Get()
		if err != nil {
			return errors.Wrap(err, "failed to get reward asset")
		}
		if assetAddr == rewardAddr {
			if err := s.storage.deposited.Sub(amount); err != nil {
				return errors.Wrap(err, "failed to debit treasury")
			}
		}
		if err := s.payOut(asset, to, amount); err != nil {
			return err
		}
		s.emitWithdraw(env, assetAddr, to, amount)
		logger.Info("treasury withdraw", "asset", assetAddr, "to", to, "amount", amount)
		return nil
	})
}

// withdrawLimit computes the admin-withdrawable balance of the given asset.
// Reward funds are bounded by deposits not yet committed to a campaign,
// staked principal is untouchable, anything else is free excess.
func (s *Staking) withdrawLimit(assetAddr aurum.Address, asset Asset) (*big.Int, error) {
	rewardAddr, err := s.storage.rewardAsset.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get reward asset")
	}
	if assetAddr == rewardAddr {
		deposited, err := s.storage.deposited.Get()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get deposited")
		}
		committed, err := s.storage.committed.Get()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get committed")
		}
		limit := deposited.Sub(deposited, committed)
		if limit.Sign() < 0 {
			limit.SetInt64(0)
		}
		return limit, nil
	}
	balance, err := asset.BalanceOf(s.addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get contract balance")
	}
	stakingAddr, err := s.storage.stakingAsset.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get staking asset")
	}
	if assetAddr == stakingAddr {
		staked, err := s.storage.globalStake.Get()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get global stake")
		}
		balance.Sub(balance, staked)
		if balance.Sign() < 0 {
			balance.SetInt64(0)
		}
	}
	return balance, nil
}

// Announce starts a new reward campaign releasing rewardAmount linearly over
// the configured duration. Announcer only.
func (s *Staking) Announce(env *xenv.Environment, rewardAmount *big.Int) error {
	return s.run(env, "announce", func(now uint64) error {
		if err := s.advance(now); err != nil {
			return err
		}
		return s.announceLocked(env, now, rewardAmount)
	})
}

func (s *Staking) announceLocked(env *xenv.Environment, now uint64, rewardAmount *big.Int) error {
	if err := s.auth.RequireAnnouncer(env.Caller()); err != nil {
		return err
	}
	if rewardAmount == nil || rewardAmount.Sign() <= 0 {
		return reverts.Precondition("reward amount must be positive")
	}
	current, err := s.storage.GetCampaign()
	if err != nil {
		return err
	}
	if !current.IsZero() && now < current.Finish {
		return reverts.Conflict("campaign active until %d", current.Finish)
	}
	deposited, err := s.storage.deposited.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get deposited")
	}
	distributed, err := s.storage.distributed.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get distributed")
	}
	available := deposited.Sub(deposited, distributed)
	if available.Cmp(rewardAmount) < 0 {
		return reverts.Exhausted("treasury %v cannot fund reward %v", available, rewardAmount)
	}
	if err := s.storage.committed.Add(rewardAmount); err != nil {
		return errors.Wrap(err, "failed to commit reward")
	}
	duration, err := s.storage.GetCampaignDuration()
	if err != nil {
		return err
	}
	campaign := &Campaign{Start: now, Finish: now + duration, Reward: rewardAmount}
	if err := s.storage.SetCampaign(campaign); err != nil {
		return err
	}
	s.emitCampaign(env, campaign)
	logger.Info("campaign announced",
		"start", campaign.Start, "finish", campaign.Finish, "reward", rewardAmount)
	return nil
}

// DepositAndAnnounce funds the treasury and starts a campaign over the
// received amount in a single atomic step.
func (s *Staking) DepositAndAnnounce(env *xenv.Environment, amount *big.Int) error {
	return s.run(env, "deposit_and_announce", func(now uint64) error {
		if err := s.advance(now); err != nil {
			return err
		}
		credited, err := s.depositLocked(env, amount)
		if err != nil {
			return err
		}
		return s.announceLocked(env, now, credited)
	})
}

// Stake locks the caller's funds into the pool. The credited amount is the
// balance actually received by the contract.
func (s *Staking) Stake(env *xenv.Environment, amount *big.Int) error {
	return s.run(env, "stake", func(now uint64) error {
		if amount == nil || amount.Sign() <= 0 {
			return reverts.Precondition("stake amount must be positive")
		}
		if err := s.advance(now); err != nil {
			return err
		}
		entry, err := s.syncLedger(env.Caller())
		if err != nil {
			return err
		}
		_, asset, err := s.stakingAsset()
		if err != nil {
			return err
		}
		credited, err := s.pullIn(asset, env.Caller(), amount)
		if err != nil {
			return err
		}
		if err := s.storage.RegisterStaker(env.Caller()); err != nil {
			return err
		}
		if err := s.storage.AppendDeposit(env.Caller(), credited, now); err != nil {
			return err
		}
		entry.Stake.Add(entry.Stake, credited)
		if err := s.storage.SetLedger(env.Caller(), entry); err != nil {
			return err
		}
		if err := s.storage.globalStake.Add(credited); err != nil {
			return errors.Wrap(err, "failed to grow global stake")
		}
		s.emitAmount(env, topicStaked, env.Caller(), credited)
		s.gaugeGlobalStake()
		logger.Debug("staked", "staker", env.Caller(), "credited", credited)
		return nil
	})
}

// Unstake withdraws matured principal back to the caller.
func (s *Staking) Unstake(env *xenv.Environment, amount *big.Int) error {
	return s.run(env, "unstake", func(now uint64) error {
		if amount == nil || amount.Sign() <= 0 {
			return reverts.Precondition("unstake amount must be positive")
		}
		if err := s.advance(now); err != nil {
			return err
		}
		entry, err := s.syncLedger(env.Caller())
		if err != nil {
			return err
		}
		unlockable, err := s.unlockableOf(env.Caller(), entry, now)
		if err != nil {
			return err
		}
		if amount.Cmp(unlockable) > 0 {
			return reverts.Exhausted("unstake %v exceeds unlockable %v", amount, unlockable)
		}
		entry.Stake.Sub(entry.Stake, amount)
		entry.Unstaked.Add(entry.Unstaked, amount)
		if err := s.storage.SetLedger(env.Caller(), entry); err != nil {
			return err
		}
		if err := s.storage.globalStake.Sub(amount); err != nil {
			return errors.Wrap(err, "failed to shrink global stake")
		}
		_, asset, err := s.stakingAsset()
		if err != nil {
			return err
		}
		if err := s.payOut(asset, env.Caller(), amount); err != nil {
			return err
		}
		s.emitAmount(env, topicUnstaked, env.Caller(), amount)
		s.gaugeGlobalStake()
		logger.Debug("unstaked", "staker", env.Caller(), "amount", amount)
		return nil
	})
}

// ClaimRewards pays out the caller's accrued rewards.
func (s *Staking) ClaimRewards(env *xenv.Environment) (*big.Int, error) {
	var claimed *big.Int
	err := s.run(env, "claim_rewards", func(now uint64) error {
		if err := s.advance(now); err != nil {
			return err
		}
		entry, err := s.syncLedger(env.Caller())
		if err != nil {
			return err
		}
		if entry.Unclaimed.Sign() == 0 {
			return reverts.Exhausted("no rewards available")
		}
		amount := entry.Unclaimed
		entry.Unclaimed = new(big.Int)
		entry.Claimed = new(big.Int).Add(entry.Claimed, amount)
		if err := s.storage.SetLedger(env.Caller(), entry); err != nil {
			return err
		}
		if err := s.storage.claimed.Add(amount); err != nil {
			return errors.Wrap(err, "failed to grow claimed counter")
		}
		_, asset, err := s.rewardAsset()
		if err != nil {
			return err
		}
		if err := s.payOut(asset, env.Caller(), amount); err != nil {
			return err
		}
		s.emitAmount(env, topicRewardsClaimed, env.Caller(), amount)
		logger.Debug("rewards claimed", "staker", env.Caller(), "amount", amount)
		claimed = amount
		return nil
	})
	return claimed, err
}

// unlockableOf computes the matured, not yet withdrawn principal.
func (s *Staking) unlockableOf(addr aurum.Address, entry *ledgerEntry, now uint64) (*big.Int, error) {
	list, err := s.storage.GetDeposits(addr)
	if err != nil {
		return nil, err
	}
	period, err := s.storage.GetUnstakePeriod()
	if err != nil {
		return nil, err
	}
	unlockable := list.maturedAt(now, period)
	unlockable.Sub(unlockable, entry.Unstaked)
	if unlockable.Sign() < 0 {
		unlockable.SetInt64(0)
	}
	return unlockable, nil
}

func (s *Staking) gaugeGlobalStake() {
	stake, err := s.storage.globalStake.Get()
	if err != nil {
		return
	}
	metrics.Gauge("staking_global_stake_aur").Set(int64(ToAUR(stake)))
}
