// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis applies a yaml allocation file to a fresh state: token
// supply, vesting buckets, roles and initial staking configuration.
package genesis

import (
	"math/big"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/aurumchain/aurum/aurum"
	"github.com/aurumchain/aurum/builtin"
	"github.com/aurumchain/aurum/log"
	"github.com/aurumchain/aurum/state"
	"github.com/aurumchain/aurum/xenv"
)

var logger = log.WithContext("pkg", "genesis")

// Vesting is the linear-unlock schedule of one allocation.
type Vesting struct {
	Start    uint64 `yaml:"start"`
	Cliff    uint64 `yaml:"cliff"`
	Duration uint64 `yaml:"duration"`
}

// Allocation is one beneficiary's share of the fixed supply, in wei.
// A nil Vesting means the amount is liquid from the start.
type Allocation struct {
	Beneficiary string   `yaml:"beneficiary"`
	Amount      string   `yaml:"amount"`
	Vesting     *Vesting `yaml:"vesting,omitempty"`
}

// Config is the genesis allocation file.
type Config struct {
	Admin            string       `yaml:"admin"`
	Announcer        string       `yaml:"announcer"`
	CampaignDuration uint64       `yaml:"campaignDuration,omitempty"`
	UnstakePeriod    uint64       `yaml:"unstakePeriod,omitempty"`
	SwapReserve      string       `yaml:"swapReserve,omitempty"`
	Allocations      []Allocation `yaml:"allocations"`
}

// Load parses a yaml genesis file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read genesis file")
	}
	return Parse(data)
}

// Parse parses yaml genesis content.
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(err, "failed to parse genesis file")
	}
	return &config, nil
}

func parseAmount(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	amount, ok := new(big.Int).SetString(s, 10)
	if !ok || amount.Sign() < 0 {
		return nil, errors.Errorf("invalid amount %q", s)
	}
	return amount, nil
}

// Apply builds the native contracts on top of a fresh state and commits it.
func (c *Config) Apply(st *state.State) (*builtin.Builtin, error) {
	admin, err := aurum.ParseAddress(c.Admin)
	if err != nil {
		return nil, errors.Wrap(err, "invalid admin address")
	}
	announcer := admin
	if c.Announcer != "" {
		if announcer, err = aurum.ParseAddress(c.Announcer); err != nil {
			return nil, errors.Wrap(err, "invalid announcer address")
		}
	}

	b := builtin.New(st)

	// a non-zero supply means this store already went through genesis,
	// so a restart over an existing data dir reuses the state as is
	supply, err := b.Token.TotalSupply()
	if err != nil {
		return nil, err
	}
	if supply.Sign() > 0 {
		logger.Info("genesis already applied, reusing existing state")
		return b, nil
	}

	if err := b.Token.InitializeSupply(aurum.TotalTokenSupply); err != nil {
		return nil, err
	}
	if err := b.Reward.InitializeSupply(aurum.TotalTokenSupply); err != nil {
		return nil, err
	}

	env := xenv.New(st, admin, 0)
	if err := b.Authority.Initialize(env, admin, announcer); err != nil {
		return nil, err
	}
	if err := b.Staking.SetTokenAddresses(env, builtin.TokenAddress, builtin.RewardTokenAddress); err != nil {
		return nil, err
	}
	if err := b.Swap.SetMainToken(env, builtin.TokenAddress); err != nil {
		return nil, err
	}
	if c.CampaignDuration > 0 {
		if err := b.Staking.SetCampaignDuration(env, c.CampaignDuration); err != nil {
			return nil, err
		}
		b.Params.Set(aurum.KeyCampaignDuration, new(big.Int).SetUint64(c.CampaignDuration))
	}
	if c.UnstakePeriod > 0 {
		if err := b.Staking.SetUnstakePeriod(env, c.UnstakePeriod); err != nil {
			return nil, err
		}
		b.Params.Set(aurum.KeyUnstakePeriod, new(big.Int).SetUint64(c.UnstakePeriod))
	}

	for _, alloc := range c.Allocations {
		beneficiary, err := aurum.ParseAddress(alloc.Beneficiary)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid beneficiary %q", alloc.Beneficiary)
		}
		amount, err := parseAmount(alloc.Amount)
		if err != nil {
			return nil, err
		}
		if alloc.Vesting != nil {
			v := alloc.Vesting
			if err := b.Token.GrantVesting(beneficiary, amount, v.Start, v.Cliff, v.Duration); err != nil {
				return nil, err
			}
		} else if err := b.Token.Mint(beneficiary, amount); err != nil {
			return nil, err
		}
	}

	if c.SwapReserve != "" {
		reserve, err := parseAmount(c.SwapReserve)
		if err != nil {
			return nil, err
		}
		if err := b.Token.Mint(builtin.SwapAddress, reserve); err != nil {
			return nil, err
		}
	}

	if err := st.Commit(); err != nil {
		return nil, errors.Wrap(err, "failed to commit genesis state")
	}
	logger.Info("genesis applied",
		"admin", admin, "announcer", announcer, "allocations", len(c.Allocations))
	return b, nil
}
