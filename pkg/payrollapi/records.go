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

package payrollapi

import (
	"github.com/Confidential-Secret-Vault/app/pkg/types"
)

// PaymentRecord is a payment as mirrored locally from the ledger. Everything
// except Claimed and DecryptedAmount is immutable once observed.
type PaymentRecord struct {
	ID              uint64           `json:"id"`
	Sender          types.EthAddress `json:"sender"`
	Recipient       types.EthAddress `json:"recipient"`
	Timestamp       uint64           `json:"timestamp"`
	Memo            string           `json:"memo"`
	Claimed         bool             `json:"claimed"`
	DecryptedAmount *uint64          `json:"decryptedAmount"`
}

// Clone returns a copy that shares no pointers with the original
func (pr *PaymentRecord) Clone() *PaymentRecord {
	c := *pr
	if pr.DecryptedAmount != nil {
		v := *pr.DecryptedAmount
		c.DecryptedAmount = &v
	}
	return &c
}

// PaymentInfo is the result of getPaymentInfo(recipient, id)
type PaymentInfo struct {
	Sender    types.EthAddress `json:"sender"`
	Timestamp uint64           `json:"timestamp"`
	Claimed   bool             `json:"claimed"`
	Memo      string           `json:"memo"`
}

// Payment is the full storage struct returned by payments(recipient, id)
type Payment struct {
	ID              uint64           `json:"id"`
	Sender          types.EthAddress `json:"sender"`
	Recipient       types.EthAddress `json:"recipient"`
	EncryptedAmount types.Bytes32    `json:"encryptedAmount"`
	Timestamp       uint64           `json:"timestamp"`
	Claimed         bool             `json:"claimed"`
	Memo            string           `json:"memo"`
}

type RecipientPayments struct {
	IDs            []uint64 `json:"ids"`
	UnclaimedCount uint64   `json:"unclaimedCount"`
}

type PaymentStats struct {
	TotalPayments  uint64 `json:"totalPayments"`
	SentCount      uint64 `json:"sentCount"`
	ReceivedCount  uint64 `json:"receivedCount"`
	UnclaimedCount uint64 `json:"unclaimedCount"`
}

// BatchEntry is one row of a batch before submission. All fields are raw user input.
type BatchEntry struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
	Memo    string `json:"memo"`
}

// IsPlaceholder is true when any field is empty
func (be *BatchEntry) IsPlaceholder() bool {
	return be.Address == "" || be.Amount == "" || be.Memo == ""
}

// EncryptedInput is an encrypted amount handle, plus the proof the ledger verifies it with
type EncryptedInput struct {
	Handle types.Bytes32  `json:"handle"`
	Proof  types.HexBytes `json:"proof"`
}

type LedgerEventType string

const (
	LedgerEventPaymentSent    LedgerEventType = "PaymentSent"
	LedgerEventPaymentClaimed LedgerEventType = "PaymentClaimed"
	LedgerEventPaymentRevoked LedgerEventType = "PaymentRevoked"
)

// LedgerEvent is a payroll event decoded from a transaction receipt
type LedgerEvent struct {
	Type      LedgerEventType   `json:"type"`
	PaymentID uint64            `json:"paymentId"`
	Sender    *types.EthAddress `json:"sender,omitempty"`
	Recipient *types.EthAddress `json:"recipient,omitempty"`
	Timestamp uint64            `json:"timestamp"`
	Memo      string            `json:"memo,omitempty"`
}

type TxReceipt struct {
	TransactionHash types.Bytes32  `json:"transactionHash"`
	BlockNumber     uint64         `json:"blockNumber"`
	GasUsed         uint64         `json:"gasUsed"`
	Events          []*LedgerEvent `json:"events"`
}

type SendResult struct {
	TransactionHash types.Bytes32  `json:"transactionHash"`
	BlockNumber     uint64         `json:"blockNumber"`
	Count           int            `json:"count"`
	Payments        []*LedgerEvent `json:"payments"`
	Stats           *PaymentStats  `json:"stats,omitempty"`
}

type ClaimResult struct {
	TransactionHash types.Bytes32 `json:"transactionHash"`
	BlockNumber     uint64        `json:"blockNumber"`
	PaymentID       uint64        `json:"paymentId"`
}

type DecryptResult struct {
	Key       string `json:"key"`
	PaymentID uint64 `json:"paymentId"`
	Amount    uint64 `json:"amount"`
}
