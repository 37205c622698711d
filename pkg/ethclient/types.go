// Copyright © 2025 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ethclient

import (
	"strings"

	"github.com/Confidential-Secret-Vault/app/pkg/rpcclient"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

type EthTXVersion string

const (
	LEGACY_ORIGINAL EthTXVersion = "legacy_original"
	LEGACY_EIP155   EthTXVersion = "legacy_eip155"
	EIP1559         EthTXVersion = "eip1559"
)

type BlockRef string

const (
	LATEST  BlockRef = "latest"
	PENDING BlockRef = "pending"
)

type TXReceiptJSONRPC struct {
	BlockHash        ethtypes.HexBytes0xPrefix `json:"blockHash"`
	BlockNumber      ethtypes.HexUint64        `json:"blockNumber"`
	ContractAddress  *ethtypes.Address0xHex    `json:"contractAddress"`
	From             *ethtypes.Address0xHex    `json:"from"`
	GasUsed          *ethtypes.HexInteger      `json:"gasUsed"`
	Logs             []*LogJSONRPC             `json:"logs"`
	Status           *ethtypes.HexInteger      `json:"status"`
	To               *ethtypes.Address0xHex    `json:"to"`
	TransactionHash  ethtypes.HexBytes0xPrefix `json:"transactionHash"`
	TransactionIndex *ethtypes.HexInteger      `json:"transactionIndex"`
	RevertReason     ethtypes.HexBytes0xPrefix `json:"revertReason,omitempty"` // only some nodes supply this
}

// Succeeded is true for a post-Byzantium receipt with status 1
func (r *TXReceiptJSONRPC) Succeeded() bool {
	return r.Status != nil && r.Status.BigInt().Int64() == 1
}

type LogJSONRPC struct {
	Removed          bool                        `json:"removed"`
	LogIndex         ethtypes.HexUint64          `json:"logIndex"`
	TransactionIndex ethtypes.HexUint64          `json:"transactionIndex"`
	BlockNumber      ethtypes.HexUint64          `json:"blockNumber"`
	TransactionHash  ethtypes.HexBytes0xPrefix   `json:"transactionHash"`
	BlockHash        ethtypes.HexBytes0xPrefix   `json:"blockHash"`
	Address          *ethtypes.Address0xHex      `json:"address"`
	Data             ethtypes.HexBytes0xPrefix   `json:"data"`
	Topics           []ethtypes.HexBytes0xPrefix `json:"topics"`
}

// ErrorReason is a standard set of error conditions that a JSON/RPC node can return,
// which callers map into their own failure classification
type ErrorReason string

const (
	ErrorReasonNone                   ErrorReason = ""
	ErrorReasonTransactionReverted    ErrorReason = "transaction_reverted"
	ErrorReasonNonceTooLow            ErrorReason = "nonce_too_low"
	ErrorReasonTransactionUnderpriced ErrorReason = "transaction_underpriced"
	ErrorReasonInsufficientFunds      ErrorReason = "insufficient_funds"
	ErrorReasonKnownTransaction       ErrorReason = "known_transaction"
	ErrorReasonUserRejected           ErrorReason = "user_rejected"
	ErrorReasonDownstreamDown         ErrorReason = "downstream_down"
)

// EIP-1193 code for a request the user declined in their wallet
const RPCCodeUserRejected = 4001

func MapError(err error) ErrorReason {
	if err == nil {
		return ErrorReasonNone
	}
	if rpcErr, ok := rpcclient.AsRPCError(err); ok {
		if rpcErr.Unavailable() {
			return ErrorReasonDownstreamDown
		}
		if rpcErr.Code == RPCCodeUserRejected {
			return ErrorReasonUserRejected
		}
	}
	errString := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errString, "user rejected"),
		strings.Contains(errString, "user denied"),
		strings.Contains(errString, "rejected by user"),
		strings.Contains(errString, "cancelled by user"),
		strings.Contains(errString, "canceled by user"):
		return ErrorReasonUserRejected
	case strings.Contains(errString, "nonce too low"):
		return ErrorReasonNonceTooLow
	case strings.Contains(errString, "insufficient funds"):
		return ErrorReasonInsufficientFunds
	case strings.Contains(errString, "transaction underpriced"):
		return ErrorReasonTransactionUnderpriced
	case strings.Contains(errString, "known transaction"),
		strings.Contains(errString, "already known"):
		return ErrorReasonKnownTransaction
	case strings.Contains(errString, "reverted"):
		return ErrorReasonTransactionReverted
	default:
		return ErrorReasonNone
	}
}
