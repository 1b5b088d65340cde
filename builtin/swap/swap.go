// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package swap implements the native swap contract converting external
// payment assets into AUR at an admin-set per-asset price.
package swap

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/aurumchain/aurum/aurum"
	"github.com/aurumchain/aurum/builtin/authority"
	"github.com/aurumchain/aurum/builtin/reverts"
	"github.com/aurumchain/aurum/builtin/solidity"
	"github.com/aurumchain/aurum/log"
	"github.com/aurumchain/aurum/metrics"
	"github.com/aurumchain/aurum/state"
	"github.com/aurumchain/aurum/xenv"
)

var logger = log.WithContext("pkg", "swap")

var bigE18 = big.NewInt(1e18)

// MaxAssetDecimals bounds the accepted payment-asset precision.
const MaxAssetDecimals = 30

var (
	slotMainToken = aurum.BytesToBytes32([]byte("main-token"))
	slotPaused    = aurum.BytesToBytes32([]byte("paused"))
	slotBusy      = aurum.BytesToBytes32([]byte("busy"))
	slotPrices    = aurum.BytesToBytes32([]byte("asset-prices"))
)

// Asset is the fungible-asset interface consumed on both swap legs.
type Asset interface {
	BalanceOf(addr aurum.Address) (*big.Int, error)
	Transfer(from, to aurum.Address, amount *big.Int) error
	TransferFrom(spender, from, to aurum.Address, amount *big.Int) error
}

// AssetResolver binds an asset contract address to its implementation.
type AssetResolver func(addr aurum.Address) Asset

// assetPrice is the listing of one payment asset: AUR wei per whole unit,
// 1e18-scaled, plus the asset's own decimal precision.
type assetPrice struct {
	Price    *big.Int
	Decimals uint8
}

func (p *assetPrice) listed() bool {
	return p.Price != nil && p.Price.Sign() > 0
}

// Swap is the facade over the swap contract's storage.
type Swap struct {
	addr      aurum.Address
	auth      *authority.Authority
	resolve   AssetResolver
	mainToken *solidity.Address
	paused    *solidity.Uint256
	busy      *solidity.Uint256
	prices    *solidity.Mapping[aurum.Address, *assetPrice]
}

// New creates the swap facade bound to the given contract address.
func New(addr aurum.Address, st *state.State, auth *authority.Authority, resolve AssetResolver) *Swap {
	sctx := solidity.NewContext(addr, st)
	return &Swap{
		addr:      addr,
		auth:      auth,
		resolve:   resolve,
		mainToken: solidity.NewAddress(sctx, slotMainToken),
		paused:    solidity.NewUint256(sctx, slotPaused),
		busy:      solidity.NewUint256(sctx, slotBusy),
		prices:    solidity.NewMapping[aurum.Address, *assetPrice](sctx, slotPrices),
	}
}

// Address returns the contract's own address.
func (s *Swap) Address() aurum.Address { return s.addr }

func (s *Swap) run(env *xenv.Environment, op string, fn func(now uint64) error) error {
	metrics.CounterVec("swap_operation_count", []string{"op"}).
		AddWithLabel(1, map[string]string{"op": op})
	return env.Apply(func() error {
		busy, err := s.busy.Get()
		if err != nil {
			return errors.Wrap(err, "failed to get busy flag")
		}
		if busy.Sign() != 0 {
			return reverts.Conflict("reentrant call")
		}
		s.busy.Set(big.NewInt(1))
		if err := fn(env.Now()); err != nil {
			return err
		}
		s.busy.Set(new(big.Int))
		return nil
	})
}

// SetMainToken binds the AUR token contract. One-time, admin only.
func (s *Swap) SetMainToken(env *xenv.Environment, token aurum.Address) error {
	return s.run(env, "set_main_token", func(_ uint64) error {
		if err := s.auth.RequireAdmin(env.Caller()); err != nil {
			return err
		}
		if token.IsZero() {
			return reverts.Precondition("token address must not be zero")
		}
		current, err := s.mainToken.Get()
		if err != nil {
			return errors.Wrap(err, "failed to get main token")
		}
		if !current.IsZero() {
			return reverts.Conflict("main token already configured")
		}
		s.mainToken.Set(token)
		return nil
	})
}

// SetAssetPrice lists a payment asset at the given price, expressed as
// 1e18-scaled AUR wei per whole asset unit. A zero price delists. Admin only.
func (s *Swap) SetAssetPrice(env *xenv.Environment, asset aurum.Address, price *big.Int, decimals uint8) error {
	return s.run(env, "set_asset_price", func(_ uint64) error {
		if err := s.auth.RequireAdmin(env.Caller()); err != nil {
			return err
		}
		if asset.IsZero() {
			return reverts.Precondition("asset address must not be zero")
		}
		if price == nil || price.Sign() < 0 {
			return reverts.Precondition("price must not be negative")
		}
		if decimals > MaxAssetDecimals {
			return reverts.Precondition("decimals %d out of bounds [0, %d]", decimals, MaxAssetDecimals)
		}
		if err := s.prices.Set(asset, &assetPrice{Price: price, Decimals: decimals}); err != nil {
			return errors.Wrap(err, "failed to set asset price")
		}
		s.emitPrice(env, asset, price, decimals)
		logger.Info("asset price set", "asset", asset, "price", price, "decimals", decimals)
		return nil
	})
}

// SetPaused halts or resumes swapping. Admin only.
func (s *Swap) SetPaused(env *xenv.Environment, paused bool) error {
	return s.run(env, "set_paused", func(_ uint64) error {
		if err := s.auth.RequireAdmin(env.Caller()); err != nil {
			return err
		}
		value := new(big.Int)
		if paused {
			value.SetInt64(1)
		}
		s.paused.Set(value)
		s.emitPaused(env, paused)
		return nil
	})
}

// Paused reports whether swapping is halted.
func (s *Swap) Paused() (bool, error) {
	v, err := s.paused.Get()
	if err != nil {
		return false, errors.Wrap(err, "failed to get paused flag")
	}
	return v.Sign() != 0, nil
}

// Quote returns the AUR amount a swap of amountIn base units of the given
// asset would yield at the current price.
func (s *Swap) Quote(asset aurum.Address, amountIn *big.Int) (*big.Int, error) {
	if amountIn == nil || amountIn.Sign() <= 0 {
		return nil, reverts.Precondition("swap amount must be positive")
	}
	listing, err := s.prices.Get(asset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get asset price")
	}
	if !listing.listed() {
		return nil, reverts.Precondition("asset %v not listed", asset)
	}
	return quote(listing, amountIn), nil
}

// quote normalizes amountIn from the asset's own precision and applies the
// 1e18-scaled price: amountIn * price / 10^decimals.
func quote(listing *assetPrice, amountIn *big.Int) *big.Int {
	out := new(big.Int).Mul(amountIn, listing.Price)
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(listing.Decimals)), nil)
	return out.Div(out, scale)
}

// SwapTokens pulls amountIn of the payment asset from the caller and pays
// out AUR at the listed price. The payment leg is measured so fee-on-transfer
// assets are credited for what actually arrived.
func (s *Swap) SwapTokens(env *xenv.Environment, assetAddr aurum.Address, amountIn *big.Int) (*big.Int, error) {
	var out *big.Int
	err := s.run(env, "swap_tokens", func(_ uint64) error {
		if paused, err := s.Paused(); err != nil {
			return err
		} else if paused {
			return reverts.Conflict("swapping is paused")
		}
		if amountIn == nil || amountIn.Sign() <= 0 {
			return reverts.Precondition("swap amount must be positive")
		}
		listing, err := s.prices.Get(assetAddr)
		if err != nil {
			return errors.Wrap(err, "failed to get asset price")
		}
		if !listing.listed() {
			return reverts.Precondition("asset %v not listed", assetAddr)
		}
		payment := s.resolve(assetAddr)
		if payment == nil {
			return reverts.Precondition("unknown asset %v", assetAddr)
		}
		mainAddr, err := s.mainToken.Get()
		if err != nil {
			return errors.Wrap(err, "failed to get main token")
		}
		if mainAddr.IsZero() {
			return reverts.Precondition("main token not configured")
		}
		main := s.resolve(mainAddr)

		before, err := payment.BalanceOf(s.addr)
		if err != nil {
			return errors.Wrap(err, "failed to get contract balance")
		}
		if err := payment.TransferFrom(s.addr, env.Caller(), s.addr, amountIn); err != nil {
			if reverts.IsRevert(err) {
				return err
			}
			return reverts.TransferFailed("payment transfer failed: %v", err)
		}
		after, err := payment.BalanceOf(s.addr)
		if err != nil {
			return errors.Wrap(err, "failed to get contract balance")
		}
		credited := new(big.Int).Sub(after, before)
		if credited.Sign() <= 0 {
			return reverts.TransferFailed("no payment received")
		}

		out = quote(listing, credited)
		if out.Sign() == 0 {
			return reverts.Precondition("swap amount too small")
		}
		reserve, err := main.BalanceOf(s.addr)
		if err != nil {
			return errors.Wrap(err, "failed to get reserve balance")
		}
		if reserve.Cmp(out) < 0 {
			return reverts.Exhausted("reserve %v cannot cover swap %v", reserve, out)
		}
		if err := main.Transfer(s.addr, env.Caller(), out); err != nil {
			if reverts.IsRevert(err) {
				return err
			}
			return reverts.TransferFailed("payout transfer failed: %v", err)
		}
		s.emitSwap(env, assetAddr, credited, out)
		logger.Debug("swapped", "caller", env.Caller(), "asset", assetAddr, "in", credited, "out", out)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Withdraw moves collected funds out of the swap treasury. Admin only.
func (s *Swap) Withdraw(env *xenv.Environment, assetAddr, to aurum.Address, amount *big.Int) error {
	return s.run(env, "withdraw", func(_ uint64) error {
		if err := s.auth.RequireAdmin(env.Caller()); err != nil {
			return err
		}
		if amount == nil || amount.Sign() <= 0 {
			return reverts.Precondition("withdraw amount must be positive")
		}
		asset := s.resolve(assetAddr)
		if asset == nil {
			return reverts.Precondition("unknown asset %v", assetAddr)
		}
		balance, err := asset.BalanceOf(s.addr)
		if err != nil {
			return errors.Wrap(err, "failed to get contract balance")
		}
		if balance.Cmp(amount) < 0 {
			return reverts.Exhausted("withdraw %v exceeds balance %v", amount, balance)
		}
		if err := asset.Transfer(s.addr, to, amount); err != nil {
			if reverts.IsRevert(err) {
				return err
			}
			return reverts.TransferFailed("transfer out failed: %v", err)
		}
		s.emitWithdraw(env, assetAddr, to, amount)
		logger.Info("treasury withdraw", "asset", assetAddr, "to", to, "amount", amount)
		return nil
	})
}
