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
	"sync"

	"github.com/Confidential-Secret-Vault/app/internal/batch"
	"github.com/Confidential-Secret-Vault/app/internal/encryption"
	"github.com/Confidential-Secret-Vault/app/internal/journal"
	"github.com/Confidential-Secret-Vault/app/internal/ledger"
	"github.com/Confidential-Secret-Vault/app/internal/metrics"
	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/Confidential-Secret-Vault/app/internal/registry"
	"github.com/Confidential-Secret-Vault/app/internal/wallet"
	"github.com/Confidential-Secret-Vault/app/pkg/confutil"
	"github.com/Confidential-Secret-Vault/app/pkg/inflight"
	"github.com/Confidential-Secret-Vault/app/pkg/log"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollapi"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollconf"
	"github.com/Confidential-Secret-Vault/app/pkg/types"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

const (
	opSend         = "send"
	opBatchSend    = "batch_send"
	opLoadPayments = "load_payments"
	opDecrypt      = "decrypt"
	opClaim        = "claim"
	opView         = "view"
	opStats        = "stats"
)

type decryptKey struct {
	recipient types.EthAddress
	id        uint64
}

// Client is the payment lifecycle client. It owns the local registry, the
// batch draft and the per-payment operation state for the current connection.
type Client struct {
	ledger          ledger.Gateway
	encryptor       encryption.Encryptor
	journal         journal.Journal
	metrics         metrics.PayrollMetrics
	registry        *registry.Registry
	draft           *batch.Draft
	ops             *opTracker
	status          *statusLog
	decrypts        *inflight.InflightManager[decryptKey, uint64]
	readConcurrency int

	connLock sync.RWMutex
	wallet   wallet.Wallet
	conn     *Connection
	stats    *payrollapi.PaymentStats
}

func New(conf *payrollconf.PayrollConfig, gw ledger.Gateway, enc encryption.Encryptor, j journal.Journal, m metrics.PayrollMetrics) *Client {
	return &Client{
		ledger:          gw,
		encryptor:       enc,
		journal:         j,
		metrics:         m,
		registry:        registry.New(),
		draft:           batch.NewDraft(),
		ops:             newOpTracker(m),
		status:          newStatusLog(confutil.IntMin(conf.Status.Retain, 1, *payrollconf.StatusDefaults.Retain)),
		decrypts:        inflight.NewInflightManager[decryptKey, uint64](),
		readConcurrency: confutil.IntMin(conf.Blockchain.Reads.MaxConcurrency, 1, *payrollconf.BlockchainDefaults.Reads.MaxConcurrency),
	}
}

// Connect starts a new connection for the wallet, invalidating any previous one.
// Switching account is a new Connect.
func (c *Client) Connect(ctx context.Context, w wallet.Wallet) *Connection {
	conn := newConnection(w)
	c.connLock.Lock()
	if c.conn != nil {
		c.conn.invalidate()
	}
	c.wallet = w
	c.conn = conn
	c.stats = nil
	c.registry.Reset(conn.ID())
	c.ops.reset(conn.ID())
	c.connLock.Unlock()

	c.status.post(ctx, payrollapi.StatusSuccess, "Connected %s wallet account %s", w.Type(), conn.account)
	return conn
}

// Reconnect starts a fresh connection with the most recently connected wallet
func (c *Client) Reconnect(ctx context.Context) (*Connection, error) {
	c.connLock.RLock()
	w := c.wallet
	c.connLock.RUnlock()
	if w == nil {
		return nil, notConnected(ctx)
	}
	return c.Connect(ctx, w), nil
}

func (c *Client) Disconnect(ctx context.Context) {
	c.connLock.Lock()
	conn := c.conn
	if conn != nil {
		conn.invalidate()
	}
	c.conn = nil
	c.stats = nil
	c.registry.Reset("")
	c.ops.reset("")
	c.connLock.Unlock()

	if conn != nil {
		c.status.post(ctx, payrollapi.StatusInfo, "Disconnected account %s", conn.account)
	}
}

// Current returns the active connection, or nil when nothing is connected
func (c *Client) Current() *Connection {
	c.connLock.RLock()
	defer c.connLock.RUnlock()
	return c.conn
}

func (c *Client) Payments() []*payrollapi.PaymentRecord {
	return c.registry.List()
}

func (c *Client) Viewed() *payrollapi.PaymentRecord {
	return c.registry.Viewed()
}

func (c *Client) Draft() *batch.Draft {
	return c.draft
}

func (c *Client) StatusMessages() []*payrollapi.StatusMessage {
	return c.status.list()
}

func (c *Client) OpStatus(ctx context.Context, kind payrollapi.OpKind, key string) (*payrollapi.OpStatus, error) {
	return c.ops.get(ctx, kind, key)
}

func (c *Client) OpStatuses() []*payrollapi.OpStatus {
	return c.ops.list()
}

func (c *Client) Journal(ctx context.Context, limit int) ([]*payrollapi.JournalEntry, error) {
	return c.journal.List(ctx, limit)
}

// Stats returns the last loaded stats for the current connection, if any
func (c *Client) Stats() *payrollapi.PaymentStats {
	c.connLock.RLock()
	defer c.connLock.RUnlock()
	if c.stats == nil {
		return nil
	}
	s := *c.stats
	return &s
}

// updateStats applies a change to the cached stats, unless the connection has moved on
func (c *Client) updateStats(conn *Connection, fn func(s *payrollapi.PaymentStats)) *payrollapi.PaymentStats {
	c.connLock.Lock()
	defer c.connLock.Unlock()
	if c.conn != conn || !conn.Valid() {
		return nil
	}
	if c.stats == nil {
		c.stats = &payrollapi.PaymentStats{}
	}
	fn(c.stats)
	s := *c.stats
	return &s
}

// startWorkflow sets up logging and metrics for one workflow. The returned function
// must be called with the final error, which it returns classified.
func (c *Client) startWorkflow(ctx context.Context, conn *Connection, op string) (context.Context, func(err error) error) {
	ctx = log.WithLogField(ctx, "op", op)
	if conn != nil {
		ctx = log.WithLogField(ctx, "conn", conn.ID()[0:8])
	}
	done := c.metrics.WorkflowStarted(op)
	return ctx, func(err error) error {
		if err == nil {
			done("success")
			return nil
		}
		if payrollapi.ClassOf(err) == "" {
			err = payrollapi.NewFailure(payrollapi.ReasonRejected, i18n.NewError(ctx, msgs.MsgPayrollRejected, err))
		}
		done(string(payrollapi.ClassOf(err)))
		return err
	}
}

// awaitWrite journals a submitted transaction, then waits for it to be final
func (c *Client) awaitWrite(ctx context.Context, conn *Connection, kind payrollapi.TxKind, count int, paymentID *uint64, handle ledger.TxHandle) (*payrollapi.TxReceipt, error) {
	hash := handle.TransactionHash()
	entry := &payrollapi.JournalEntry{
		Kind:            kind,
		Account:         conn.account,
		TransactionHash: &hash,
		PaymentCount:    count,
		PaymentID:       paymentID,
	}
	if err := c.journal.Record(ctx, entry); err != nil {
		log.L(ctx).Errorf("Failed to journal %s transaction %s: %s", kind, hash, err)
	}
	c.status.post(ctx, payrollapi.StatusInfo, "Transaction %s submitted, waiting for confirmation", hash)

	receipt, err := handle.AwaitFinality(ctx)
	var blockNumber *uint64
	if receipt != nil {
		blockNumber = &receipt.BlockNumber
	}
	if jerr := c.journal.Resolve(ctx, entry.ID, blockNumber, err); jerr != nil {
		log.L(ctx).Errorf("Failed to resolve journal entry %s: %s", entry.ID, jerr)
	}
	return receipt, err
}
