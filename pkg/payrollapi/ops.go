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
	"time"

	"github.com/Confidential-Secret-Vault/app/pkg/types"
	"github.com/google/uuid"
)

type OpKind string

const (
	OpKindDecrypt OpKind = "decrypt"
	OpKindClaim   OpKind = "claim"
)

type OpState string

const (
	OpStateIdle      OpState = "idle"
	OpStatePending   OpState = "pending"
	OpStateSucceeded OpState = "succeeded"
	OpStateFailed    OpState = "failed"
)

// ViewedKey is the operation key for the ad-hoc viewed payment, as opposed
// to the decimal payment ID used for registry records
const ViewedKey = "viewed"

type OpStatus struct {
	Kind    OpKind       `json:"kind"`
	Key     string       `json:"key"`
	State   OpState      `json:"state"`
	Error   string       `json:"error,omitempty"`
	Class   FailureClass `json:"class,omitempty"`
	Updated time.Time    `json:"updated"`
}

type StatusLevel string

const (
	StatusInfo    StatusLevel = "info"
	StatusSuccess StatusLevel = "success"
	StatusWarning StatusLevel = "warning"
	StatusError   StatusLevel = "error"
)

type StatusMessage struct {
	Level   StatusLevel `json:"level"`
	Message string      `json:"message"`
	Time    time.Time   `json:"time"`
}

type TxKind string

const (
	TxKindSend  TxKind = "send"
	TxKindBatch TxKind = "batch"
	TxKindClaim TxKind = "claim"
)

type TxStatus string

const (
	TxStatusPending   TxStatus = "pending"
	TxStatusSucceeded TxStatus = "succeeded"
	TxStatusFailed    TxStatus = "failed"
)

// JournalEntry records a write submitted to the ledger and how it resolved
type JournalEntry struct {
	ID              uuid.UUID        `json:"id"`
	Created         time.Time        `json:"created"`
	Updated         time.Time        `json:"updated"`
	Kind            TxKind           `json:"kind"`
	Account         types.EthAddress `json:"account"`
	TransactionHash *types.Bytes32   `json:"transactionHash,omitempty"`
	PaymentCount    int              `json:"paymentCount"`
	PaymentID       *uint64          `json:"paymentId,omitempty"`
	Status          TxStatus         `json:"status"`
	FailureClass    FailureClass     `json:"failureClass,omitempty"`
	FailureReason   FailureReason    `json:"failureReason,omitempty"`
	Message         string           `json:"message,omitempty"`
	BlockNumber     *uint64          `json:"blockNumber,omitempty"`
}

type ConnectionInfo struct {
	ID         string           `json:"id"`
	Account    types.EthAddress `json:"account"`
	WalletType string           `json:"walletType"`
}
