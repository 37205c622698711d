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

package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/Confidential-Secret-Vault/app/pkg/confutil"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollapi"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollconf"
	"github.com/Confidential-Secret-Vault/app/pkg/rpcclient"
	"github.com/Confidential-Secret-Vault/app/pkg/rpcclient/rpctest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
const testAccount = "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"

func newTestChain(t *testing.T) *rpctest.Server {
	s := rpctest.NewServerHTTP(t, rpctest.Method{Name: "eth_chainId", Handler: rpctest.Result("0x7a69")})
	t.Cleanup(s.Close)
	return s
}

func writeTestConfig(t *testing.T, chainURL, dbSection string) string {
	yaml := fmt.Sprintf(`
log:
  level: debug
blockchain:
  http:
    url: %s
  connectRetry:
    maxAttempts: 1
wallet:
  type: local
  local:
    privateKey: %s
encryption:
  http:
    url: http://127.0.0.1:1
%s
rpcServer:
  http:
    address: 127.0.0.1
    port: 0
  ws:
    disabled: true
metricsServer:
  enabled: true
  address: 127.0.0.1
  port: 0
`, chainURL, testKey, dbSection)
	f := filepath.Join(t.TempDir(), "payroll.yaml")
	require.NoError(t, os.WriteFile(f, []byte(yaml), 0644))
	return f
}

const testSQLite = `db:
  type: sqlite
  sqlite:
    dsn: ":memory:"
    autoMigrate: true
    migrationsDir: ../../db/migrations/sqlite`

func TestInstanceServesFrontDoor(t *testing.T) {
	chain := newTestChain(t)
	i := NewInstance(writeTestConfig(t, chain.URL, testSQLite))

	rc := make(chan RC)
	go func() { rc <- i.Run() }()
	s := <-i.Started()

	ctx := context.Background()
	client, err := rpcclient.NewHTTPClient(ctx, &payrollconf.HTTPClientConfig{
		URL: fmt.Sprintf("http://%s", s.RPCServer().HTTPAddr()),
	})
	require.NoError(t, err)

	var info payrollapi.ConnectionInfo
	require.Nil(t, client.CallRPC(ctx, &info, "payroll_connection"))
	assert.Equal(t, testAccount, info.Account.String())

	var journal []*payrollapi.JournalEntry
	require.Nil(t, client.CallRPC(ctx, &journal, "payroll_journal", 5))
	assert.Empty(t, journal)

	res, err := http.Get(fmt.Sprintf("http://%s/metrics", s.MetricsServer().Addr()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	i.Stop()
	assert.Equal(t, RC_OK, <-rc)
	assert.Equal(t, 1, chain.Calls("eth_chainId"))
}

func TestInstanceMissingConfig(t *testing.T) {
	i := NewInstance(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, RC_FAIL, i.Run())

	_, err := LoadConfig(context.Background(), "")
	assert.Regexp(t, "PY011001", err)
}

func TestInstanceBuildFails(t *testing.T) {
	chain := newTestChain(t)
	i := NewInstance(writeTestConfig(t, chain.URL, "db:\n  type: oracle"))
	assert.Equal(t, RC_FAIL, i.Run())
}

func TestBuildNoDatabase(t *testing.T) {
	chain := newTestChain(t)
	ctx := context.Background()
	conf, err := LoadConfig(ctx, writeTestConfig(t, chain.URL, ""))
	require.NoError(t, err)

	s, err := Build(ctx, conf)
	require.NoError(t, err)
	defer s.Close()
	assert.True(t, s.Connection.Valid())
	assert.Equal(t, testAccount, s.Connection.Account().String())

	entries, err := s.Client.Journal(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBuildComponentFailures(t *testing.T) {
	chain := newTestChain(t)
	ctx := context.Background()

	conf, err := LoadConfig(ctx, writeTestConfig(t, chain.URL, ""))
	require.NoError(t, err)
	conf.Blockchain.HTTP.URL = ""
	_, err = Build(ctx, conf)
	assert.Regexp(t, "PY011000.*blockchain", err)

	conf, err = LoadConfig(ctx, writeTestConfig(t, chain.URL, ""))
	require.NoError(t, err)
	conf.Contract.Address = confutil.P("not an address")
	_, err = Build(ctx, conf)
	assert.Regexp(t, "PY011000.*ledger", err)

	conf, err = LoadConfig(ctx, writeTestConfig(t, chain.URL, ""))
	require.NoError(t, err)
	conf.Wallet.Local.PrivateKey = nil
	_, err = Build(ctx, conf)
	assert.Regexp(t, "PY011000.*wallet", err)

	conf, err = LoadConfig(ctx, writeTestConfig(t, chain.URL, ""))
	require.NoError(t, err)
	conf.Encryption.HTTP.URL = ""
	_, err = Build(ctx, conf)
	assert.Regexp(t, "PY011000.*encryption", err)

	conf, err = LoadConfig(ctx, writeTestConfig(t, chain.URL, "db:\n  type: oracle"))
	require.NoError(t, err)
	_, err = Build(ctx, conf)
	assert.Regexp(t, "PY011000.*db", err)
}
