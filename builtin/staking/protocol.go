// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/aurumchain/aurum/aurum"
)

var bigE18 = big.NewInt(1e18)

// ToAUR converts a wei amount to whole AUR, for logging.
func ToAUR(wei *big.Int) uint64 {
	return new(big.Int).Div(wei, bigE18).Uint64()
}

// ToWei converts whole AUR to wei.
func ToWei(aur uint64) *big.Int {
	return new(big.Int).Mul(new(big.Int).SetUint64(aur), bigE18)
}

// Asset is the fungible-asset interface the staking contract consumes for
// both the staking asset and the reward asset. Implementations may take a
// fee on transfer; callers must measure balance deltas rather than trust
// the nominal amount.
type Asset interface {
	BalanceOf(addr aurum.Address) (*big.Int, error)
	Transfer(from, to aurum.Address, amount *big.Int) error
	TransferFrom(spender, from, to aurum.Address, amount *big.Int) error
}

// AssetResolver binds an asset contract address to its implementation.
type AssetResolver func(addr aurum.Address) Asset
