// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/aurumchain/aurum/aurum"
	"github.com/aurumchain/aurum/xenv"
)

var (
	topicStaked            = aurum.Blake2b([]byte("Staked(address,uint256)"))
	topicUnstaked          = aurum.Blake2b([]byte("Unstaked(address,uint256)"))
	topicRewardsClaimed    = aurum.Blake2b([]byte("RewardsClaimed(address,uint256)"))
	topicTreasuryDeposit   = aurum.Blake2b([]byte("TreasuryDeposit(address,uint256)"))
	topicTreasuryWithdraw  = aurum.Blake2b([]byte("TreasuryWithdraw(address,address,uint256)"))
	topicCampaignAnnounced = aurum.Blake2b([]byte("CampaignAnnounced(uint64,uint64,uint256)"))
	topicConfigChanged     = aurum.Blake2b([]byte("ConfigChanged(bytes32,uint256)"))
)

func (s *Staking) emitAmount(env *xenv.Environment, topic aurum.Bytes32, who aurum.Address, amount *big.Int) {
	data, _ := rlp.EncodeToBytes(amount)
	env.Log(&xenv.Event{
		Address: s.addr,
		Topics:  []aurum.Bytes32{topic, aurum.BytesToBytes32(who.Bytes())},
		Data:    data,
	})
}

func (s *Staking) emitCampaign(env *xenv.Environment, c *Campaign) {
	data, _ := rlp.EncodeToBytes(c)
	env.Log(&xenv.Event{
		Address: s.addr,
		Topics:  []aurum.Bytes32{topicCampaignAnnounced},
		Data:    data,
	})
}

func (s *Staking) emitWithdraw(env *xenv.Environment, asset, to aurum.Address, amount *big.Int) {
	data, _ := rlp.EncodeToBytes(amount)
	env.Log(&xenv.Event{
		Address: s.addr,
		Topics: []aurum.Bytes32{
			topicTreasuryWithdraw,
			aurum.BytesToBytes32(asset.Bytes()),
			aurum.BytesToBytes32(to.Bytes()),
		},
		Data: data,
	})
}

func (s *Staking) emitConfig(env *xenv.Environment, key aurum.Bytes32, value uint64) {
	data, _ := rlp.EncodeToBytes(new(big.Int).SetUint64(value))
	env.Log(&xenv.Event{
		Address: s.addr,
		Topics:  []aurum.Bytes32{topicConfigChanged, key},
		Data:    data,
	})
}
