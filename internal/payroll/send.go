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

package payroll

import (
	"context"

	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/Confidential-Secret-Vault/app/internal/validator"
	"github.com/Confidential-Secret-Vault/app/pkg/log"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollapi"
	"github.com/Confidential-Secret-Vault/app/pkg/types"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

// SendPayment validates, encrypts and submits a single payment, then waits for it to be final.
// The new payment only appears locally once a later read picks it up from the ledger.
func (c *Client) SendPayment(ctx context.Context, conn *Connection, recipient, amount, memo string) (_ *payrollapi.SendResult, err error) {
	ctx, done := c.startWorkflow(ctx, conn, opSend)
	defer func() { err = done(err) }()
	if err = checkConnection(ctx, conn); err != nil {
		return nil, err
	}

	p, err := validator.ValidatePayment(ctx, recipient, amount, memo, &conn.account)
	if err != nil {
		c.status.postFailure(ctx, "Payment", err)
		return nil, err
	}

	c.status.post(ctx, payrollapi.StatusInfo, "Encrypting payment to %s", p.Recipient)
	input, err := c.encrypt(ctx, conn, p.Amount)
	if err != nil {
		c.status.postFailure(ctx, "Payment", err)
		return nil, err
	}

	handle, err := c.ledger.SendPayment(ctx, conn.wallet, p.Recipient, input, p.Memo)
	if err != nil {
		c.status.postFailure(ctx, "Payment", err)
		return nil, err
	}
	receipt, err := c.awaitWrite(ctx, conn, payrollapi.TxKindSend, 1, nil, handle)
	if err != nil {
		c.status.postFailure(ctx, "Payment", err)
		return nil, err
	}

	result := c.sendResult(ctx, conn, receipt, 1)
	c.status.post(ctx, payrollapi.StatusSuccess, "Payment sent to %s in transaction %s", p.Recipient, receipt.TransactionHash)
	return result, nil
}

// BatchSend submits every non-placeholder entry as one atomic transaction. All entries are
// validated then encrypted in order before anything is submitted.
func (c *Client) BatchSend(ctx context.Context, conn *Connection, entries []*payrollapi.BatchEntry) (_ *payrollapi.SendResult, err error) {
	ctx, done := c.startWorkflow(ctx, conn, opBatchSend)
	defer func() { err = done(err) }()
	if err = checkConnection(ctx, conn); err != nil {
		return nil, err
	}

	payments, err := validator.ValidateBatch(ctx, entries, &conn.account)
	if err != nil {
		c.status.postFailure(ctx, "Batch payment", err)
		return nil, err
	}

	c.status.post(ctx, payrollapi.StatusInfo, "Encrypting %d payments", len(payments))
	recipients := make([]types.EthAddress, len(payments))
	inputs := make([]*payrollapi.EncryptedInput, len(payments))
	memos := make([]string, len(payments))
	for i, p := range payments {
		input, err := c.encrypt(ctx, conn, p.Amount)
		if err != nil {
			c.status.postFailure(ctx, "Batch payment", err)
			return nil, err
		}
		recipients[i] = p.Recipient
		inputs[i] = input
		memos[i] = p.Memo
	}

	handle, err := c.ledger.BatchSendPayments(ctx, conn.wallet, recipients, inputs, memos)
	if err != nil {
		c.status.postFailure(ctx, "Batch payment", err)
		return nil, err
	}
	receipt, err := c.awaitWrite(ctx, conn, payrollapi.TxKindBatch, len(payments), nil, handle)
	if err != nil {
		c.status.postFailure(ctx, "Batch payment", err)
		return nil, err
	}

	result := c.sendResult(ctx, conn, receipt, len(payments))
	c.status.post(ctx, payrollapi.StatusSuccess, "Batch of %d payments sent in transaction %s", len(payments), receipt.TransactionHash)
	return result, nil
}

// SendDraft sends the batch being edited, and resets it once the batch is final
func (c *Client) SendDraft(ctx context.Context, conn *Connection) (*payrollapi.SendResult, error) {
	result, err := c.BatchSend(ctx, conn, c.draft.Entries())
	if err != nil {
		return nil, err
	}
	c.draft.Reset()
	return result, nil
}

func (c *Client) encrypt(ctx context.Context, conn *Connection, amount uint64) (*payrollapi.EncryptedInput, error) {
	input, err := c.encryptor.Encrypt(ctx, c.ledger.ContractAddress(), conn.account, amount)
	if err != nil {
		if _, ok := payrollapi.AsFailure(err); ok {
			return nil, err
		}
		return nil, payrollapi.NewFailure(payrollapi.ReasonEncryptionFailed, i18n.NewError(ctx, msgs.MsgPayrollEncryptionFailed, err))
	}
	return input, nil
}

func (c *Client) sendResult(ctx context.Context, conn *Connection, receipt *payrollapi.TxReceipt, count int) *payrollapi.SendResult {
	result := &payrollapi.SendResult{
		TransactionHash: receipt.TransactionHash,
		BlockNumber:     receipt.BlockNumber,
		Count:           count,
		Payments:        []*payrollapi.LedgerEvent{},
	}
	for _, e := range receipt.Events {
		if e.Type == payrollapi.LedgerEventPaymentSent {
			result.Payments = append(result.Payments, e)
		}
	}
	result.Stats = c.refreshSentCount(ctx, conn)
	return result
}

// refreshSentCount is best effort, as the payment is already final
func (c *Client) refreshSentCount(ctx context.Context, conn *Connection) *payrollapi.PaymentStats {
	sent, err := c.ledger.GetSenderPaymentCount(ctx, conn.account)
	if err != nil {
		log.L(ctx).Warnf("Failed to refresh sent payment count: %s", err)
		return c.updateStats(conn, func(s *payrollapi.PaymentStats) {})
	}
	return c.updateStats(conn, func(s *payrollapi.PaymentStats) {
		s.SentCount = sent
	})
}
