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
	"fmt"
	"testing"

	"github.com/Confidential-Secret-Vault/app/pkg/confutil"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollapi"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollconf"
	"github.com/Confidential-Secret-Vault/app/pkg/rpcclient"
	"github.com/Confidential-Secret-Vault/app/pkg/rpcserver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRPC(t *testing.T, c *Client) rpcclient.Client {
	ctx := context.Background()
	s, err := rpcserver.NewRPCServer(ctx, &payrollconf.RPCServerConfig{
		HTTP: payrollconf.RPCServerConfigHTTP{
			HTTPServerConfig: payrollconf.HTTPServerConfig{
				Address: confutil.P("127.0.0.1"),
				Port:    confutil.P(0),
			},
		},
		WS: payrollconf.RPCServerConfigWS{Disabled: true},
	})
	require.NoError(t, err)
	s.Register(c.RPCModule())
	require.NoError(t, s.Start())
	t.Cleanup(s.Stop)

	rc, err := rpcclient.NewHTTPClient(ctx, &payrollconf.HTTPClientConfig{
		URL: fmt.Sprintf("http://%s", s.HTTPAddr()),
	})
	require.NoError(t, err)
	return rc
}

func rpcCount(t *testing.T, td *testDeps, method string) float64 {
	families, err := td.registry.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != "payroll_rpc_total" {
			continue
		}
		for _, m := range f.Metric {
			for _, l := range m.Label {
				if l.GetName() == "method" && l.GetValue() == method {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestRPCConnectionInfo(t *testing.T) {
	ctx, c, td, conn := newTestClient(t)
	rc := newTestRPC(t, c)

	var info payrollapi.ConnectionInfo
	rpcErr := rc.CallRPC(ctx, &info, "payroll_connection")
	require.Nil(t, rpcErr)
	assert.Equal(t, conn.ID(), info.ID)
	assert.Equal(t, testSelf, info.Account)
	assert.Equal(t, string(payrollconf.WalletTypeLocal), info.WalletType)

	c.Disconnect(ctx)
	rpcErr = rc.CallRPC(ctx, &info, "payroll_connection")
	require.NotNil(t, rpcErr)
	assert.Regexp(t, "PY010800", rpcErr.Error())
	assert.JSONEq(t, `{"class":"NotConnected","reason":"NotConnected"}`, rpcErr.RPCError().Data.String())

	assert.Equal(t, float64(2), rpcCount(t, td, "payroll_connection"))
}

func TestRPCConnectDisconnect(t *testing.T) {
	ctx, c, td, conn1 := newTestClient(t)
	rc := newTestRPC(t, c)

	var ok bool
	require.Nil(t, rc.CallRPC(ctx, &ok, "payroll_disconnect"))
	assert.True(t, ok)
	assert.False(t, conn1.Valid())
	assert.Nil(t, c.Current())

	var info payrollapi.ConnectionInfo
	require.Nil(t, rc.CallRPC(ctx, &info, "payroll_connect"))
	assert.NotEqual(t, conn1.ID(), info.ID)
	assert.Equal(t, testSelf, info.Account)
	assert.Equal(t, info.ID, c.Current().ID())

	_, err := c.LoadMyPayments(ctx, conn1)
	assert.Regexp(t, "PY010800", err)
	assert.Equal(t, float64(1), rpcCount(t, td, "payroll_connect"))
}

func TestReconnectNeverConnected(t *testing.T) {
	ctx := context.Background()
	c := New(&payrollconf.PayrollConfig{}, nil, nil, nil, nil)
	_, err := c.Reconnect(ctx)
	assert.Regexp(t, "PY010800", err)
}

func TestRPCDraftEditing(t *testing.T) {
	ctx, c, _, _ := newTestClient(t)
	rc := newTestRPC(t, c)

	var index int
	require.Nil(t, rc.CallRPC(ctx, &index, "payroll_draftAppend"))
	assert.Equal(t, 1, index)

	var entries []*payrollapi.BatchEntry
	require.Nil(t, rc.CallRPC(ctx, &entries, "payroll_draftUpdate", 1, "amount", "250"))
	require.Len(t, entries, 2)
	assert.Equal(t, "250", entries[1].Amount)

	rpcErr := rc.CallRPC(ctx, &entries, "payroll_draftUpdate", 0, "colour", "blue")
	require.NotNil(t, rpcErr)
	assert.Equal(t, int64(rpcclient.RPCCodeInvalidParams), rpcErr.RPCError().Code)

	require.Nil(t, rc.CallRPC(ctx, &entries, "payroll_draftRemove", 0))
	require.Len(t, entries, 1)
	assert.Equal(t, "250", entries[0].Amount)

	rpcErr = rc.CallRPC(ctx, &entries, "payroll_draftRemove", 0)
	require.NotNil(t, rpcErr)
	assert.JSONEq(t, `{"class":"ValidationError","reason":"InvalidInput"}`, rpcErr.RPCError().Data.String())

	require.Nil(t, rc.CallRPC(ctx, &entries, "payroll_draft"))
	assert.Len(t, entries, 1)
}

func TestRPCSendValidationFailure(t *testing.T) {
	ctx, c, td, _ := newTestClient(t)
	rc := newTestRPC(t, c)

	var res payrollapi.SendResult
	rpcErr := rc.CallRPC(ctx, &res, "payroll_sendPayment", testSelf.String(), "10", "memo")
	require.NotNil(t, rpcErr)
	assert.JSONEq(t, `{"class":"ValidationError","reason":"SelfPayment"}`, rpcErr.RPCError().Data.String())
	td.enc.AssertNotCalled(t, "Encrypt", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	rpcErr = rc.CallRPC(ctx, &res, "payroll_sendPayment", testAddr1.String(), "10")
	require.NotNil(t, rpcErr)
	assert.Regexp(t, "PY010303", rpcErr.Error())

	messages := c.StatusMessages()
	assert.Equal(t, payrollapi.StatusWarning, messages[len(messages)-1].Level)
}

func TestRPCDecryptAndOpStatus(t *testing.T) {
	ctx, c, td, _ := newTestClient(t)
	rc := newTestRPC(t, c)

	td.ledger.On("GetPaymentAmount", mock.Anything, testSelf, uint64(3)).Return(handleFor(3), nil).Once()
	td.enc.On("Decrypt", mock.Anything, handleFor(3), testContract, td.wallet).Return(uint64(1000), nil).Once()

	var res payrollapi.DecryptResult
	require.Nil(t, rc.CallRPC(ctx, &res, "payroll_decryptPayment", 3))
	assert.Equal(t, uint64(1000), res.Amount)
	assert.Equal(t, uint64(3), res.PaymentID)

	var status payrollapi.OpStatus
	require.Nil(t, rc.CallRPC(ctx, &status, "payroll_opStatus", payrollapi.OpKindDecrypt, "3"))
	assert.Equal(t, payrollapi.OpStateSucceeded, status.State)

	var statuses []*payrollapi.OpStatus
	require.Nil(t, rc.CallRPC(ctx, &statuses, "payroll_opStatuses"))
	assert.Len(t, statuses, 1)

	rpcErr := rc.CallRPC(ctx, &status, "payroll_opStatus", "transfer", "3")
	require.NotNil(t, rpcErr)
	assert.Regexp(t, "PY010808", rpcErr.Error())
}

func TestRPCReadOnlyViews(t *testing.T) {
	ctx, c, _, _ := newTestClient(t)
	rc := newTestRPC(t, c)

	var payments []*payrollapi.PaymentRecord
	require.Nil(t, rc.CallRPC(ctx, &payments, "payroll_payments"))
	assert.Empty(t, payments)

	var viewed *payrollapi.PaymentRecord
	require.Nil(t, rc.CallRPC(ctx, &viewed, "payroll_viewed"))
	assert.Nil(t, viewed)

	var stats *payrollapi.PaymentStats
	require.Nil(t, rc.CallRPC(ctx, &stats, "payroll_stats"))
	assert.Nil(t, stats)

	var messages []*payrollapi.StatusMessage
	require.Nil(t, rc.CallRPC(ctx, &messages, "payroll_statusMessages"))
	assert.NotEmpty(t, messages)

	var journal []*payrollapi.JournalEntry
	require.Nil(t, rc.CallRPC(ctx, &journal, "payroll_journal", 10))
	assert.Empty(t, journal)
}
