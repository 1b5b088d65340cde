// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/aurumchain/aurum/aurum"
	"github.com/aurumchain/aurum/xenv"
)

var topicVestedClaim = aurum.Blake2b([]byte("VestedClaim(address,uint256)"))

func newVestedClaimEvent(contract, beneficiary aurum.Address, amount *big.Int) *xenv.Event {
	data, _ := rlp.EncodeToBytes(amount)
	return &xenv.Event{
		Address: contract,
		Topics:  []aurum.Bytes32{topicVestedClaim, aurum.BytesToBytes32(beneficiary.Bytes())},
		Data:    data,
	}
}
