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

	"github.com/Confidential-Secret-Vault/app/internal/batch"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollapi"
	"github.com/Confidential-Secret-Vault/app/pkg/rpcclient"
	"github.com/Confidential-Secret-Vault/app/pkg/rpcserver"
)

// RPCModule exposes the workflows of the current connection as payroll_* methods
func (c *Client) RPCModule() *rpcserver.RPCModule {
	m := rpcserver.NewRPCModule("payroll")
	add := func(method string, h rpcserver.RPCHandler) {
		m.Add(method, c.countRPC(method, h))
	}

	add("payroll_connection", c.rpcConnection())
	add("payroll_connect", c.rpcConnect())
	add("payroll_disconnect", c.rpcDisconnect())
	add("payroll_sendPayment", c.rpcSendPayment())
	add("payroll_batchSend", c.rpcBatchSend())
	add("payroll_draft", c.rpcDraft())
	add("payroll_draftAppend", c.rpcDraftAppend())
	add("payroll_draftRemove", c.rpcDraftRemove())
	add("payroll_draftUpdate", c.rpcDraftUpdate())
	add("payroll_sendDraft", c.rpcSendDraft())
	add("payroll_loadPayments", c.rpcLoadPayments())
	add("payroll_payments", c.rpcPayments())
	add("payroll_decryptPayment", c.rpcDecryptPayment())
	add("payroll_decryptViewed", c.rpcDecryptViewed())
	add("payroll_claimPayment", c.rpcClaimPayment())
	add("payroll_viewPayment", c.rpcViewPayment())
	add("payroll_viewed", c.rpcViewed())
	add("payroll_loadStats", c.rpcLoadStats())
	add("payroll_stats", c.rpcStats())
	add("payroll_opStatus", c.rpcOpStatus())
	add("payroll_opStatuses", c.rpcOpStatuses())
	add("payroll_statusMessages", c.rpcStatusMessages())
	add("payroll_journal", c.rpcJournal())
	return m
}

func (c *Client) countRPC(method string, h rpcserver.RPCHandler) rpcserver.RPCHandler {
	return rpcserver.HandlerFunc(func(ctx context.Context, req *rpcclient.RPCRequest) *rpcclient.RPCResponse {
		c.metrics.IncRPC(method)
		return h.Handle(ctx, req)
	})
}

func (c *Client) rpcConnection() rpcserver.RPCHandler {
	return rpcserver.RPCMethod0(func(ctx context.Context) (*payrollapi.ConnectionInfo, error) {
		conn := c.Current()
		if err := checkConnection(ctx, conn); err != nil {
			return nil, err
		}
		return conn.Info(), nil
	})
}

func (c *Client) rpcConnect() rpcserver.RPCHandler {
	return rpcserver.RPCMethod0(func(ctx context.Context) (*payrollapi.ConnectionInfo, error) {
		conn, err := c.Reconnect(ctx)
		if err != nil {
			return nil, err
		}
		return conn.Info(), nil
	})
}

func (c *Client) rpcDisconnect() rpcserver.RPCHandler {
	return rpcserver.RPCMethod0(func(ctx context.Context) (bool, error) {
		c.Disconnect(ctx)
		return true, nil
	})
}

func (c *Client) rpcSendPayment() rpcserver.RPCHandler {
	return rpcserver.RPCMethod3(func(ctx context.Context,
		recipient, amount, memo string,
	) (*payrollapi.SendResult, error) {
		return c.SendPayment(ctx, c.Current(), recipient, amount, memo)
	})
}

func (c *Client) rpcBatchSend() rpcserver.RPCHandler {
	return rpcserver.RPCMethod1(func(ctx context.Context,
		entries []*payrollapi.BatchEntry,
	) (*payrollapi.SendResult, error) {
		return c.BatchSend(ctx, c.Current(), entries)
	})
}

func (c *Client) rpcDraft() rpcserver.RPCHandler {
	return rpcserver.RPCMethod0(func(ctx context.Context) ([]*payrollapi.BatchEntry, error) {
		return c.draft.Entries(), nil
	})
}

func (c *Client) rpcDraftAppend() rpcserver.RPCHandler {
	return rpcserver.RPCMethod0(func(ctx context.Context) (int, error) {
		return c.draft.Append(ctx)
	})
}

func (c *Client) rpcDraftRemove() rpcserver.RPCHandler {
	return rpcserver.RPCMethod1(func(ctx context.Context,
		index int,
	) ([]*payrollapi.BatchEntry, error) {
		if err := c.draft.Remove(ctx, index); err != nil {
			return nil, err
		}
		return c.draft.Entries(), nil
	})
}

func (c *Client) rpcDraftUpdate() rpcserver.RPCHandler {
	return rpcserver.RPCMethod3(func(ctx context.Context,
		index int,
		field batch.Field,
		value string,
	) ([]*payrollapi.BatchEntry, error) {
		if err := c.draft.Update(ctx, index, field, value); err != nil {
			return nil, err
		}
		return c.draft.Entries(), nil
	})
}

func (c *Client) rpcSendDraft() rpcserver.RPCHandler {
	return rpcserver.RPCMethod0(func(ctx context.Context) (*payrollapi.SendResult, error) {
		return c.SendDraft(ctx, c.Current())
	})
}

func (c *Client) rpcLoadPayments() rpcserver.RPCHandler {
	return rpcserver.RPCMethod0(func(ctx context.Context) ([]*payrollapi.PaymentRecord, error) {
		return c.LoadMyPayments(ctx, c.Current())
	})
}

func (c *Client) rpcPayments() rpcserver.RPCHandler {
	return rpcserver.RPCMethod0(func(ctx context.Context) ([]*payrollapi.PaymentRecord, error) {
		return c.Payments(), nil
	})
}

func (c *Client) rpcDecryptPayment() rpcserver.RPCHandler {
	return rpcserver.RPCMethod1(func(ctx context.Context,
		id uint64,
	) (*payrollapi.DecryptResult, error) {
		return c.DecryptPayment(ctx, c.Current(), id)
	})
}

func (c *Client) rpcDecryptViewed() rpcserver.RPCHandler {
	return rpcserver.RPCMethod0(func(ctx context.Context) (*payrollapi.DecryptResult, error) {
		return c.DecryptViewedPayment(ctx, c.Current())
	})
}

func (c *Client) rpcClaimPayment() rpcserver.RPCHandler {
	return rpcserver.RPCMethod1(func(ctx context.Context,
		id uint64,
	) (*payrollapi.ClaimResult, error) {
		return c.ClaimPayment(ctx, c.Current(), id)
	})
}

func (c *Client) rpcViewPayment() rpcserver.RPCHandler {
	return rpcserver.RPCMethod2(func(ctx context.Context,
		recipient, id string,
	) (*payrollapi.PaymentRecord, error) {
		return c.ViewPayment(ctx, c.Current(), recipient, id)
	})
}

func (c *Client) rpcViewed() rpcserver.RPCHandler {
	return rpcserver.RPCMethod0(func(ctx context.Context) (*payrollapi.PaymentRecord, error) {
		return c.Viewed(), nil
	})
}

func (c *Client) rpcLoadStats() rpcserver.RPCHandler {
	return rpcserver.RPCMethod0(func(ctx context.Context) (*payrollapi.PaymentStats, error) {
		return c.LoadStats(ctx, c.Current())
	})
}

func (c *Client) rpcStats() rpcserver.RPCHandler {
	return rpcserver.RPCMethod0(func(ctx context.Context) (*payrollapi.PaymentStats, error) {
		return c.Stats(), nil
	})
}

func (c *Client) rpcOpStatus() rpcserver.RPCHandler {
	return rpcserver.RPCMethod2(func(ctx context.Context,
		kind payrollapi.OpKind,
		key string,
	) (*payrollapi.OpStatus, error) {
		return c.OpStatus(ctx, kind, key)
	})
}

func (c *Client) rpcOpStatuses() rpcserver.RPCHandler {
	return rpcserver.RPCMethod0(func(ctx context.Context) ([]*payrollapi.OpStatus, error) {
		return c.OpStatuses(), nil
	})
}

func (c *Client) rpcStatusMessages() rpcserver.RPCHandler {
	return rpcserver.RPCMethod0(func(ctx context.Context) ([]*payrollapi.StatusMessage, error) {
		return c.StatusMessages(), nil
	})
}

func (c *Client) rpcJournal() rpcserver.RPCHandler {
	return rpcserver.RPCMethod1(func(ctx context.Context,
		limit int,
	) ([]*payrollapi.JournalEntry, error) {
		return c.Journal(ctx, limit)
	})
}
