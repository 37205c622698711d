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

	"github.com/Confidential-Secret-Vault/app/pkg/log"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollapi"
)

// ClaimPayment marks a received payment claimed. Eligibility is left to the ledger,
// which rejects a repeat claim or a claim by anyone other than the recipient.
func (c *Client) ClaimPayment(ctx context.Context, conn *Connection, id uint64) (_ *payrollapi.ClaimResult, err error) {
	key := paymentKey(id)
	ctx = log.WithLogField(ctx, "paymentId", key)
	ctx, done := c.startWorkflow(ctx, conn, opClaim)
	defer func() { err = done(err) }()
	if err = checkConnection(ctx, conn); err != nil {
		return nil, err
	}

	c.ops.begin(ctx, conn.ID(), payrollapi.OpKindClaim, key)
	receipt, err := c.claim(ctx, conn, id)
	c.ops.finish(ctx, conn.ID(), payrollapi.OpKindClaim, key, err)
	if err != nil {
		c.status.postFailure(ctx, "Claiming payment "+key, err)
		return nil, err
	}

	c.registry.PatchClaimed(ctx, conn.ID(), id)
	c.updateStats(conn, func(s *payrollapi.PaymentStats) {
		if s.UnclaimedCount > 0 {
			s.UnclaimedCount--
		}
	})
	c.status.post(ctx, payrollapi.StatusSuccess, "Claimed payment %d in transaction %s", id, receipt.TransactionHash)
	return &payrollapi.ClaimResult{
		TransactionHash: receipt.TransactionHash,
		BlockNumber:     receipt.BlockNumber,
		PaymentID:       id,
	}, nil
}

func (c *Client) claim(ctx context.Context, conn *Connection, id uint64) (*payrollapi.TxReceipt, error) {
	handle, err := c.ledger.ClaimPayment(ctx, conn.wallet, id)
	if err != nil {
		return nil, err
	}
	return c.awaitWrite(ctx, conn, payrollapi.TxKindClaim, 1, &id, handle)
}
