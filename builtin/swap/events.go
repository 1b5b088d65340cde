// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package swap

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/aurumchain/aurum/aurum"
	"github.com/aurumchain/aurum/xenv"
)

var (
	topicSwapped  = aurum.Blake2b([]byte("Swapped(address,address,uint256,uint256)"))
	topicPriceSet = aurum.Blake2b([]byte("PriceSet(address,uint256,uint8)"))
	topicPaused   = aurum.Blake2b([]byte("PausedSet(bool)"))
	topicWithdraw = aurum.Blake2b([]byte("TreasuryWithdraw(address,address,uint256)"))
)

func (s *Swap) emitSwap(env *xenv.Environment, asset aurum.Address, amountIn, amountOut *big.Int) {
	data, _ := rlp.EncodeToBytes([]*big.Int{amountIn, amountOut})
	env.Log(&xenv.Event{
		Address: s.addr,
		Topics: []aurum.Bytes32{
			topicSwapped,
			aurum.BytesToBytes32(env.Caller().Bytes()),
			aurum.BytesToBytes32(asset.Bytes()),
		},
		Data: data,
	})
}

func (s *Swap) emitPrice(env *xenv.Environment, asset aurum.Address, price *big.Int, decimals uint8) {
	data, _ := rlp.EncodeToBytes(&assetPrice{Price: price, Decimals: decimals})
	env.Log(&xenv.Event{
		Address: s.addr,
		Topics:  []aurum.Bytes32{topicPriceSet, aurum.BytesToBytes32(asset.Bytes())},
		Data:    data,
	})
}

func (s *Swap) emitPaused(env *xenv.Environment, paused bool) {
	data, _ := rlp.EncodeToBytes(paused)
	env.Log(&xenv.Event{
		Address: s.addr,
		Topics:  []aurum.Bytes32{topicPaused},
		Data:    data,
	})
}

func (s *Swap) emitWithdraw(env *xenv.Environment, asset, to aurum.Address, amount *big.Int) {
	data, _ := rlp.EncodeToBytes(amount)
	env.Log(&xenv.Event{
		Address: s.addr,
		Topics: []aurum.Bytes32{
			topicWithdraw,
			aurum.BytesToBytes32(asset.Bytes()),
			aurum.BytesToBytes32(to.Bytes()),
		},
		Data: data,
	})
}
