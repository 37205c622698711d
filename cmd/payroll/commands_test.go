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

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Confidential-Secret-Vault/app/internal/bootstrap"
	"github.com/Confidential-Secret-Vault/app/internal/journal"
	"github.com/Confidential-Secret-Vault/app/internal/metrics"
	"github.com/Confidential-Secret-Vault/app/internal/payroll"
	"github.com/Confidential-Secret-Vault/app/mocks/encryptionmocks"
	"github.com/Confidential-Secret-Vault/app/mocks/ledgermocks"
	"github.com/Confidential-Secret-Vault/app/mocks/walletmocks"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollconf"
	"github.com/Confidential-Secret-Vault/app/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	testContract = *types.MustEthAddress("0xC86762bC822254eA7c1D9156f17B7010131967E2")
	testSelf     = *types.MustEthAddress("0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266")
)

type testCLI struct {
	ledger *ledgermocks.Gateway
	enc    *encryptionmocks.Encryptor
	wallet *walletmocks.Wallet
	config string
}

func newTestCLI(t *testing.T) *testCLI {
	tc := &testCLI{
		ledger: ledgermocks.NewGateway(t),
		enc:    encryptionmocks.NewEncryptor(t),
		config: filepath.Join(t.TempDir(), "payroll.yaml"),
	}
	require.NoError(t, os.WriteFile(tc.config, []byte("log:\n  level: info\n"), 0644))
	tc.ledger.On("ContractAddress").Return(testContract).Maybe()

	w := walletmocks.NewWallet(t)
	tc.wallet = w
	w.On("Address").Return(&testSelf).Maybe()
	w.On("Type").Return(payrollconf.WalletTypeLocal).Maybe()

	origBuild := buildStack
	buildStack = func(ctx context.Context, conf *payrollconf.PayrollConfig) (*bootstrap.Stack, error) {
		registry := prometheus.NewRegistry()
		c := payroll.New(conf, tc.ledger, tc.enc, journal.NewNoop(), metrics.InitMetrics(ctx, registry))
		return &bootstrap.Stack{Client: c, Connection: c.Connect(ctx, w), Registry: registry}, nil
	}
	t.Cleanup(func() { buildStack = origBuild })
	return tc
}

func (tc *testCLI) run(args ...string) (string, error) {
	root := newRootCommand()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetArgs(append([]string{"-c", tc.config}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestDecryptCommand(t *testing.T) {
	tc := newTestCLI(t)
	var handle types.Bytes32
	handle[31] = 7
	tc.ledger.On("GetPaymentAmount", mock.Anything, testSelf, uint64(7)).Return(handle, nil).Once()
	tc.enc.On("Decrypt", mock.Anything, handle, testContract, tc.wallet).Return(uint64(1000), nil).Once()

	out, err := tc.run("decrypt", "7")
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":"7","paymentId":7,"amount":1000}`, out)
}

func TestDecryptCommandBadID(t *testing.T) {
	tc := newTestCLI(t)
	_, err := tc.run("decrypt", "seven")
	assert.Regexp(t, "PY010712", err)

	_, err = tc.run("claim", "1.5")
	assert.Regexp(t, "PY010712", err)
}

func TestSendCommandSelfPayment(t *testing.T) {
	tc := newTestCLI(t)
	_, err := tc.run("send", testSelf.String(), "10", "memo")
	assert.Regexp(t, "PY010701", err)

	_, err = tc.run("send", testSelf.String(), "10")
	assert.Error(t, err)
}

func TestBatchCommandFile(t *testing.T) {
	tc := newTestCLI(t)

	_, err := tc.run("batch", "-f", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Regexp(t, "PY011002", err)

	badFile := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(badFile, []byte("address: not-a-list"), 0644))
	_, err = tc.run("batch", "-f", badFile)
	assert.Regexp(t, "PY011003", err)

	placeholders := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(placeholders, []byte("- address: \"\"\n  amount: \"\"\n  memo: \"\"\n"), 0644))
	_, err = tc.run("batch", "-f", placeholders)
	assert.Regexp(t, "PY010706", err)
}

func TestViewCommandMissingFields(t *testing.T) {
	tc := newTestCLI(t)
	_, err := tc.run("view", "", "")
	assert.Regexp(t, "PY010713", err)
}

func TestMissingConfig(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"stats"})
	err := root.Execute()
	assert.Regexp(t, "PY011001", err)
}
