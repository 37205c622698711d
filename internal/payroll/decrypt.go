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
	"github.com/Confidential-Secret-Vault/app/pkg/log"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollapi"
	"github.com/Confidential-Secret-Vault/app/pkg/types"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

// DecryptPayment reveals the amount of a payment in the registry. Decrypts of different
// payments run independently, and a second request for the same payment while one is
// outstanding waits for the same answer.
func (c *Client) DecryptPayment(ctx context.Context, conn *Connection, id uint64) (_ *payrollapi.DecryptResult, err error) {
	key := paymentKey(id)
	ctx = log.WithLogField(ctx, "paymentId", key)
	ctx, done := c.startWorkflow(ctx, conn, opDecrypt)
	defer func() { err = done(err) }()
	if err = checkConnection(ctx, conn); err != nil {
		return nil, err
	}

	recipient := conn.account
	if rec, ok := c.registry.Get(id); ok {
		recipient = rec.Recipient
	}

	c.ops.begin(ctx, conn.ID(), payrollapi.OpKindDecrypt, key)
	amount, err := c.decrypt(ctx, conn, recipient, id)
	if err == nil {
		if stored, patched := c.registry.PatchDecrypted(ctx, conn.ID(), id, amount); patched {
			amount = stored
		}
	}
	c.ops.finish(ctx, conn.ID(), payrollapi.OpKindDecrypt, key, err)
	if err != nil {
		c.status.postFailure(ctx, "Decrypting payment "+key, err)
		return nil, err
	}
	c.status.post(ctx, payrollapi.StatusSuccess, "Decrypted payment %d", id)
	return &payrollapi.DecryptResult{Key: key, PaymentID: id, Amount: amount}, nil
}

// DecryptViewedPayment reveals the amount of the viewed payment. Any party can do this.
func (c *Client) DecryptViewedPayment(ctx context.Context, conn *Connection) (_ *payrollapi.DecryptResult, err error) {
	ctx = log.WithLogField(ctx, "paymentId", payrollapi.ViewedKey)
	ctx, done := c.startWorkflow(ctx, conn, opDecrypt)
	defer func() { err = done(err) }()
	if err = checkConnection(ctx, conn); err != nil {
		return nil, err
	}

	viewed := c.registry.Viewed()
	if viewed == nil {
		return nil, payrollapi.NewFailure(payrollapi.ReasonPaymentNotFound, i18n.NewError(ctx, msgs.MsgPayrollNoViewedPayment))
	}

	c.ops.begin(ctx, conn.ID(), payrollapi.OpKindDecrypt, payrollapi.ViewedKey)
	amount, err := c.decrypt(ctx, conn, viewed.Recipient, viewed.ID)
	if err == nil {
		if stored, patched := c.registry.PatchViewedDecrypted(ctx, conn.ID(), viewed.Recipient, viewed.ID, amount); patched {
			amount = stored
		}
	}
	c.ops.finish(ctx, conn.ID(), payrollapi.OpKindDecrypt, payrollapi.ViewedKey, err)
	if err != nil {
		c.status.postFailure(ctx, "Decrypting viewed payment", err)
		return nil, err
	}
	c.status.post(ctx, payrollapi.StatusSuccess, "Decrypted payment %d for %s", viewed.ID, viewed.Recipient)
	return &payrollapi.DecryptResult{Key: payrollapi.ViewedKey, PaymentID: viewed.ID, Amount: amount}, nil
}

// decrypt joins any outstanding decrypt of the same payment, or runs a new one
func (c *Client) decrypt(ctx context.Context, conn *Connection, recipient types.EthAddress, id uint64) (uint64, error) {
	req, joined := c.decrypts.AddOrJoin(decryptKey{recipient: recipient, id: id})
	if joined {
		log.L(ctx).Debugf("Joining decrypt of payment %d for %s", id, recipient)
		amount, err := req.Wait(ctx)
		if err != nil && payrollapi.ClassOf(err) == "" {
			err = payrollapi.NewFailure(payrollapi.ReasonEncryptionFailed, i18n.NewError(ctx, msgs.MsgPayrollDecryptFailed, err))
		}
		return amount, err
	}

	var amount uint64
	var err error
	defer func() { req.Complete(amount, err) }()

	var handle types.Bytes32
	handle, err = c.ledger.GetPaymentAmount(ctx, recipient, id)
	if err != nil {
		return 0, err
	}
	amount, err = c.encryptor.Decrypt(ctx, handle, c.ledger.ContractAddress(), conn.wallet)
	if err != nil && payrollapi.ClassOf(err) == "" {
		err = payrollapi.NewFailure(payrollapi.ReasonEncryptionFailed, i18n.NewError(ctx, msgs.MsgPayrollDecryptFailed, err))
	}
	return amount, err
}
