// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements the AUR token: fixed supply minted once at
// genesis, partly into time-vested allocation buckets.
package token

import (
	"math/big"

	"github.com/aurumchain/aurum/aurum"
	"github.com/aurumchain/aurum/builtin/reverts"
	"github.com/aurumchain/aurum/builtin/solidity"
	"github.com/aurumchain/aurum/log"
	"github.com/aurumchain/aurum/state"
	"github.com/aurumchain/aurum/xenv"
)

var (
	logger = log.WithContext("pkg", "token")

	slotSupply   = aurum.BytesToBytes32([]byte("total-supply"))
	slotMinted   = aurum.BytesToBytes32([]byte("total-minted"))
	slotAccounts = aurum.BytesToBytes32([]byte("accounts"))
	slotAllowed  = aurum.BytesToBytes32([]byte("allowances"))
	slotVesting  = aurum.BytesToBytes32([]byte("vesting-buckets"))
)

// Token implements native methods of the `Token` contract.
type Token struct {
	addr aurum.Address

	supply   *solidity.Uint256
	minted   *solidity.Uint256
	accounts *solidity.Mapping[aurum.Address, *account]
	allowed  *solidity.Mapping[aurum.Bytes32, *big.Int]
	vesting  *solidity.Mapping[aurum.Address, *vestingBucket]
}

// New create a new instance.
func New(addr aurum.Address, state *state.State) *Token {
	sctx := solidity.NewContext(addr, state)
	return &Token{
		addr:     addr,
		supply:   solidity.NewUint256(sctx, slotSupply),
		minted:   solidity.NewUint256(sctx, slotMinted),
		accounts: solidity.NewMapping[aurum.Address, *account](sctx, slotAccounts),
		allowed:  solidity.NewMapping[aurum.Bytes32, *big.Int](sctx, slotAllowed),
		vesting:  solidity.NewMapping[aurum.Address, *vestingBucket](sctx, slotVesting),
	}
}

func allowanceKey(owner, spender aurum.Address) aurum.Bytes32 {
	return aurum.Blake2b(owner.Bytes(), spender.Bytes())
}

// InitializeSupply fixes the total supply. One-time, called at genesis.
func (t *Token) InitializeSupply(supply *big.Int) error {
	current, err := t.supply.Get()
	if err != nil {
		return err
	}
	if current.Sign() != 0 {
		return reverts.Conflict("supply already initialized")
	}
	if supply.Sign() <= 0 {
		return reverts.Precondition("supply must be positive")
	}
	t.supply.Set(supply)
	return nil
}

// TotalSupply returns the fixed token supply.
func (t *Token) TotalSupply() (*big.Int, error) {
	return t.supply.Get()
}

// Mint credits a liquid balance at genesis. The sum of all mints and
// vesting grants can never exceed the fixed supply.
func (t *Token) Mint(addr aurum.Address, amount *big.Int) error {
	if err := t.trackMinted(amount); err != nil {
		return err
	}
	return t.addBalance(addr, amount)
}

// GrantVesting assigns a time-vested allocation bucket at genesis.
// A beneficiary can hold at most one bucket.
func (t *Token) GrantVesting(beneficiary aurum.Address, total *big.Int, start, cliff, duration uint64) error {
	if total.Sign() <= 0 {
		return reverts.Precondition("vesting total must be positive")
	}
	existing, err := t.vesting.Get(beneficiary)
	if err != nil {
		return err
	}
	if !existing.IsEmpty() {
		return reverts.Conflict("vesting bucket already granted")
	}
	if err := t.trackMinted(total); err != nil {
		return err
	}
	return t.vesting.Set(beneficiary, &vestingBucket{
		Total:    total,
		Claimed:  &big.Int{},
		Start:    start,
		Cliff:    cliff,
		Duration: duration,
	})
}

func (t *Token) trackMinted(amount *big.Int) error {
	supply, err := t.supply.Get()
	if err != nil {
		return err
	}
	minted, err := t.minted.Get()
	if err != nil {
		return err
	}
	minted.Add(minted, amount)
	if minted.Cmp(supply) > 0 {
		return reverts.Exhausted("mint exceeds fixed supply")
	}
	t.minted.Set(minted)
	return nil
}

// BalanceOf returns the liquid balance of an account.
func (t *Token) BalanceOf(addr aurum.Address) (*big.Int, error) {
	acc, err := t.accounts.Get(addr)
	if err != nil {
		return nil, err
	}
	if acc.Balance == nil {
		return &big.Int{}, nil
	}
	return acc.Balance, nil
}

func (t *Token) addBalance(addr aurum.Address, amount *big.Int) error {
	bal, err := t.BalanceOf(addr)
	if err != nil {
		return err
	}
	return t.accounts.Set(addr, &account{Balance: new(big.Int).Add(bal, amount)})
}

func (t *Token) subBalance(addr aurum.Address, amount *big.Int) error {
	bal, err := t.BalanceOf(addr)
	if err != nil {
		return err
	}
	if bal.Cmp(amount) < 0 {
		return reverts.Exhausted("insufficient token balance")
	}
	return t.accounts.Set(addr, &account{Balance: new(big.Int).Sub(bal, amount)})
}

// Transfer moves amount from one account to another on behalf of native code.
func (t *Token) Transfer(from, to aurum.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return reverts.Precondition("negative amount")
	}
	if err := t.subBalance(from, amount); err != nil {
		return err
	}
	return t.addBalance(to, amount)
}

// Approve lets spender move up to amount from the caller's balance.
func (t *Token) Approve(env *xenv.Environment, spender aurum.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return reverts.Precondition("negative amount")
	}
	return t.allowed.Set(allowanceKey(env.Caller(), spender), amount)
}

// Allowance returns the remaining approved amount.
func (t *Token) Allowance(owner, spender aurum.Address) (*big.Int, error) {
	remaining, err := t.allowed.Get(allowanceKey(owner, spender))
	if err != nil {
		return nil, err
	}
	if remaining == nil {
		return &big.Int{}, nil
	}
	return remaining, nil
}

// TransferFrom moves amount from one account to another, consuming the
// spender's allowance granted by from.
func (t *Token) TransferFrom(spender, from, to aurum.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return reverts.Precondition("negative amount")
	}
	remaining, err := t.Allowance(from, spender)
	if err != nil {
		return err
	}
	if remaining.Cmp(amount) < 0 {
		return reverts.Exhausted("insufficient allowance")
	}
	if err := t.allowed.Set(allowanceKey(from, spender), new(big.Int).Sub(remaining, amount)); err != nil {
		return err
	}
	return t.Transfer(from, to, amount)
}

// VestingBucket returns the bucket of a beneficiary: total, claimed and
// the amount claimable at the given time.
func (t *Token) VestingBucket(beneficiary aurum.Address, now uint64) (total, claimed, claimable *big.Int, err error) {
	bucket, err := t.vesting.Get(beneficiary)
	if err != nil {
		return nil, nil, nil, err
	}
	if bucket.IsEmpty() {
		return &big.Int{}, &big.Int{}, &big.Int{}, nil
	}
	return bucket.Total, bucket.Claimed, bucket.Claimable(now), nil
}

// ClaimVested releases the caller's linearly unlocked allocation into
// their liquid balance.
func (t *Token) ClaimVested(env *xenv.Environment) (*big.Int, error) {
	caller := env.Caller()
	bucket, err := t.vesting.Get(caller)
	if err != nil {
		return nil, err
	}
	if bucket.IsEmpty() {
		return nil, reverts.Precondition("no vesting bucket")
	}
	claimable := bucket.Claimable(env.Now())
	if claimable.Sign() == 0 {
		return nil, reverts.Exhausted("nothing vested yet")
	}
	bucket.Claimed = new(big.Int).Add(bucket.Claimed, claimable)
	if err := t.vesting.Set(caller, bucket); err != nil {
		return nil, err
	}
	if err := t.addBalance(caller, claimable); err != nil {
		return nil, err
	}
	env.Log(newVestedClaimEvent(t.addr, caller, claimable))
	logger.Info("vested claim", "beneficiary", caller, "amount", claimable)
	return claimable, nil
}
