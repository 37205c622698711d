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
	"strconv"

	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/Confidential-Secret-Vault/app/internal/validator"
	"github.com/Confidential-Secret-Vault/app/pkg/log"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollapi"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"golang.org/x/sync/errgroup"
)

// LoadMyPayments rebuilds the registry from the ledger. A payment whose details cannot
// be read is logged and left out, so one bad ID never blocks the rest of the list.
// Decrypted amounts are not kept across a reload.
func (c *Client) LoadMyPayments(ctx context.Context, conn *Connection) (_ []*payrollapi.PaymentRecord, err error) {
	ctx, done := c.startWorkflow(ctx, conn, opLoadPayments)
	defer func() { err = done(err) }()
	if err = checkConnection(ctx, conn); err != nil {
		return nil, err
	}

	c.status.post(ctx, payrollapi.StatusInfo, "Loading payments for %s", conn.account)
	rp, err := c.ledger.GetRecipientPayments(ctx, conn.account)
	if err != nil {
		c.status.postFailure(ctx, "Loading payments", err)
		return nil, err
	}

	found := make([]*payrollapi.PaymentRecord, len(rp.IDs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(c.readConcurrency)
	for i, id := range rp.IDs {
		g.Go(func() error {
			info, err := c.ledger.GetPaymentInfo(gCtx, conn.account, id)
			if err != nil {
				log.L(ctx).Warnf("Skipping payment %d: %s", id, err)
				return nil
			}
			found[i] = &payrollapi.PaymentRecord{
				ID:        id,
				Sender:    info.Sender,
				Recipient: conn.account,
				Timestamp: info.Timestamp,
				Memo:      info.Memo,
				Claimed:   info.Claimed,
			}
			return nil
		})
	}
	_ = g.Wait()

	records := make([]*payrollapi.PaymentRecord, 0, len(found))
	for _, r := range found {
		if r != nil {
			records = append(records, r)
		}
	}
	if !c.registry.Replace(ctx, conn.ID(), records) {
		return nil, notConnected(ctx)
	}
	c.updateStats(conn, func(s *payrollapi.PaymentStats) {
		s.ReceivedCount = uint64(len(rp.IDs))
		s.UnclaimedCount = rp.UnclaimedCount
	})

	if skipped := len(rp.IDs) - len(records); skipped > 0 {
		c.status.post(ctx, payrollapi.StatusWarning, "Loaded %d payments (%d could not be read)", len(records), skipped)
	} else {
		c.status.post(ctx, payrollapi.StatusSuccess, "Loaded %d payments", len(records))
	}
	return c.registry.List(), nil
}

// ViewPayment looks up any payment by recipient and ID, not only the caller's own,
// and holds it as the viewed payment outside the registry
func (c *Client) ViewPayment(ctx context.Context, conn *Connection, recipient, id string) (_ *payrollapi.PaymentRecord, err error) {
	ctx, done := c.startWorkflow(ctx, conn, opView)
	defer func() { err = done(err) }()
	if err = checkConnection(ctx, conn); err != nil {
		return nil, err
	}

	if recipient == "" || id == "" {
		err = payrollapi.NewFailure(payrollapi.ReasonInvalidInput, i18n.NewError(ctx, msgs.MsgValidationViewFieldsMissing))
		c.status.postFailure(ctx, "View payment", err)
		return nil, err
	}
	addr, err := validator.ValidateRecipient(ctx, recipient, nil)
	if err != nil {
		c.status.postFailure(ctx, "View payment", err)
		return nil, err
	}
	paymentID, err := validator.ParsePaymentID(ctx, id)
	if err != nil {
		c.status.postFailure(ctx, "View payment", err)
		return nil, err
	}

	// once the ledger lookup starts, any failure clears the previously viewed payment
	exists, err := c.ledger.PaymentExists(ctx, *addr, paymentID)
	if err == nil && !exists {
		err = payrollapi.NewFailure(payrollapi.ReasonPaymentNotFound, i18n.NewError(ctx, msgs.MsgPayrollPaymentNotFound, paymentID, addr))
	}
	var info *payrollapi.PaymentInfo
	if err == nil {
		info, err = c.ledger.GetPaymentInfo(ctx, *addr, paymentID)
	}
	if err != nil {
		c.registry.ClearViewed(ctx, conn.ID())
		c.status.postFailure(ctx, "View payment", err)
		return nil, err
	}
	rec := &payrollapi.PaymentRecord{
		ID:        paymentID,
		Sender:    info.Sender,
		Recipient: *addr,
		Timestamp: info.Timestamp,
		Memo:      info.Memo,
		Claimed:   info.Claimed,
	}
	c.registry.SetViewed(ctx, conn.ID(), rec)
	c.status.post(ctx, payrollapi.StatusSuccess, "Found payment %d for %s", paymentID, addr)
	return rec.Clone(), nil
}

// LoadStats reads the protocol wide and per account counts in parallel
func (c *Client) LoadStats(ctx context.Context, conn *Connection) (_ *payrollapi.PaymentStats, err error) {
	ctx, done := c.startWorkflow(ctx, conn, opStats)
	defer func() { err = done(err) }()
	if err = checkConnection(ctx, conn); err != nil {
		return nil, err
	}

	var stats payrollapi.PaymentStats
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalPayments, err = c.ledger.GetTotalPayments(gCtx)
		return err
	})
	g.Go(func() (err error) {
		stats.SentCount, err = c.ledger.GetSenderPaymentCount(gCtx, conn.account)
		return err
	})
	g.Go(func() error {
		rp, err := c.ledger.GetRecipientPayments(gCtx, conn.account)
		if err == nil {
			stats.ReceivedCount = uint64(len(rp.IDs))
			stats.UnclaimedCount = rp.UnclaimedCount
		}
		return err
	})
	if err = g.Wait(); err != nil {
		c.status.postFailure(ctx, "Loading stats", err)
		return nil, err
	}

	c.updateStats(conn, func(s *payrollapi.PaymentStats) { *s = stats })
	log.L(ctx).Debugf("Stats total=%d sent=%d received=%d unclaimed=%d", stats.TotalPayments, stats.SentCount, stats.ReceivedCount, stats.UnclaimedCount)
	return &stats, nil
}

func paymentKey(id uint64) string {
	return strconv.FormatUint(id, 10)
}
