// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import "math/big"

type (
	// account is the stored balance record of one address.
	account struct {
		Balance *big.Int
	}

	// vestingBucket is one time-vested allocation: Total unlocks linearly
	// over Duration seconds starting at Start, nothing before Start+Cliff.
	vestingBucket struct {
		Total    *big.Int
		Claimed  *big.Int
		Start    uint64
		Cliff    uint64
		Duration uint64
	}
)

// IsEmpty returns whether the bucket was ever granted.
func (b *vestingBucket) IsEmpty() bool {
	return b.Total == nil || b.Total.Sign() == 0
}

// Unlocked computes the cumulative unlocked amount at the given time,
// before subtracting what was already claimed.
func (b *vestingBucket) Unlocked(now uint64) *big.Int {
	if b.IsEmpty() || now < b.Start+b.Cliff {
		return &big.Int{}
	}
	elapsed := now - b.Start
	if elapsed >= b.Duration || b.Duration == 0 {
		return new(big.Int).Set(b.Total)
	}
	x := new(big.Int).SetUint64(elapsed)
	x.Mul(x, b.Total)
	return x.Div(x, new(big.Int).SetUint64(b.Duration))
}

// Claimable computes what the beneficiary may claim at the given time.
func (b *vestingBucket) Claimable(now uint64) *big.Int {
	unlocked := b.Unlocked(now)
	if b.Claimed != nil {
		unlocked.Sub(unlocked, b.Claimed)
	}
	if unlocked.Sign() < 0 {
		return &big.Int{}
	}
	return unlocked
}
