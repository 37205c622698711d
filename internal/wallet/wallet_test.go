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

package wallet

import (
	"context"
	"encoding/json"
	"math/big"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/Confidential-Secret-Vault/app/pkg/confutil"
	"github.com/Confidential-Secret-Vault/app/pkg/ethclient"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollapi"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollconf"
	"github.com/Confidential-Secret-Vault/app/pkg/rpcclient"
	"github.com/Confidential-Secret-Vault/app/pkg/rpcclient/rpctest"
	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testMnemonic   = "test test test test test test test test test test test junk"
	testPrivateKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testAccount0   = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	testAccount1   = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
)

func testTX() *ethsigner.Transaction {
	return &ethsigner.Transaction{
		Nonce:    ethtypes.NewHexInteger64(3),
		GasLimit: ethtypes.NewHexInteger64(50000),
		To:       ethtypes.MustNewAddress(testAccount1),
		Value:    ethtypes.NewHexInteger64(0),
		GasPrice: ethtypes.NewHexInteger(big.NewInt(1000000000)),
	}
}

func TestLocalWalletMnemonic(t *testing.T) {
	ctx := context.Background()
	w, err := New(ctx, &payrollconf.WalletConfig{
		Local: payrollconf.LocalWalletConfig{Mnemonic: confutil.P(testMnemonic)},
	})
	require.NoError(t, err)
	assert.Equal(t, payrollconf.WalletTypeLocal, w.Type())
	assert.Equal(t, testAccount0, w.Address().Checksummed())
}

func TestLocalWalletMnemonicSecondAccount(t *testing.T) {
	ctx := context.Background()
	w, err := New(ctx, &payrollconf.WalletConfig{
		Type: confutil.P("LOCAL"),
		Local: payrollconf.LocalWalletConfig{
			Mnemonic: confutil.P(testMnemonic),
			HDPath:   confutil.P("m/44'/60'/0'/0/1"),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, testAccount1, w.Address().Checksummed())
}

func TestLocalWalletPrivateKeyAndSign(t *testing.T) {
	ctx := context.Background()
	w, err := New(ctx, &payrollconf.WalletConfig{
		Local: payrollconf.LocalWalletConfig{PrivateKey: confutil.P(testPrivateKey)},
	})
	require.NoError(t, err)
	assert.Equal(t, testAccount0, w.Address().Checksummed())

	raw, err := w.SignTransaction(ctx, 31337, ethclient.LEGACY_EIP155, testTX())
	require.NoError(t, err)
	from, tx, err := ethsigner.RecoverRawTransaction(ctx, ethtypes.HexBytes0xPrefix(raw), 31337)
	require.NoError(t, err)
	assert.Equal(t, strings.ToLower(testAccount0), from.String())
	assert.Equal(t, int64(3), tx.Nonce.Int64())
}

func TestLocalWalletPrivateKeyFile(t *testing.T) {
	ctx := context.Background()
	f := path.Join(t.TempDir(), "key.hex")
	require.NoError(t, os.WriteFile(f, []byte(testPrivateKey+"\n"), 0600))
	w, err := New(ctx, &payrollconf.WalletConfig{
		Local: payrollconf.LocalWalletConfig{PrivateKeyFile: confutil.P(f)},
	})
	require.NoError(t, err)
	assert.Equal(t, testAccount0, w.Address().Checksummed())
}

func TestLocalWalletPrivateKeyFileMissing(t *testing.T) {
	_, err := New(context.Background(), &payrollconf.WalletConfig{
		Local: payrollconf.LocalWalletConfig{PrivateKeyFile: confutil.P(path.Join(t.TempDir(), "missing"))},
	})
	assert.Regexp(t, "PY010509", err)
}

func TestLocalWalletBadKeys(t *testing.T) {
	ctx := context.Background()
	_, err := New(ctx, &payrollconf.WalletConfig{})
	assert.Regexp(t, "PY010500", err)

	_, err = New(ctx, &payrollconf.WalletConfig{
		Local: payrollconf.LocalWalletConfig{PrivateKey: confutil.P("not hex")},
	})
	assert.Regexp(t, "PY010501", err)

	_, err = New(ctx, &payrollconf.WalletConfig{
		Local: payrollconf.LocalWalletConfig{PrivateKey: confutil.P("0x0102")},
	})
	assert.Regexp(t, "PY010501", err)

	_, err = New(ctx, &payrollconf.WalletConfig{
		Local: payrollconf.LocalWalletConfig{Mnemonic: confutil.P("not a valid seed phrase")},
	})
	assert.Regexp(t, "PY010502", err)
}

func TestLocalWalletBadHDPaths(t *testing.T) {
	for _, p := range []string{"44'/60'", "m", "m/x", "m/2147483648", "m/44''/0"} {
		_, err := New(context.Background(), &payrollconf.WalletConfig{
			Local: payrollconf.LocalWalletConfig{
				Mnemonic: confutil.P(testMnemonic),
				HDPath:   confutil.P(p),
			},
		})
		assert.Regexp(t, "PY010503", err, p)
	}
}

func TestUnknownWalletType(t *testing.T) {
	_, err := New(context.Background(), &payrollconf.WalletConfig{Type: confutil.P("hsm")})
	assert.Regexp(t, "PY010505.*hsm", err)
}

func newRemoteTestWallet(t *testing.T, account *string, methods ...rpctest.Method) (context.Context, Wallet, *rpctest.Server, error) {
	s := rpctest.NewServerHTTP(t, methods...)
	t.Cleanup(s.Close)
	w, err := New(context.Background(), &payrollconf.WalletConfig{
		Type: confutil.P("remote"),
		Remote: payrollconf.RemoteWalletConfig{
			HTTP:    payrollconf.HTTPClientConfig{URL: s.URL},
			Account: account,
		},
	})
	return context.Background(), w, s, err
}

func TestRemoteWalletDefaultAccountAndSignRawString(t *testing.T) {
	ctx, w, s, err := newRemoteTestWallet(t, nil,
		rpctest.Method{Name: "eth_accounts", Handler: rpctest.Result([]string{testAccount0, testAccount1})},
		rpctest.Method{Name: "eth_signTransaction", Handler: func(req *rpcclient.RPCRequest) (int, *rpcclient.RPCResponse) {
			var tx ethsigner.Transaction
			err := json.Unmarshal(req.Params[0].Bytes(), &tx)
			assert.NoError(t, err)
			assert.Equal(t, int64(50000), tx.GasLimit.Int64())
			return rpctest.Result("0xfeedbeef")(req)
		}},
	)
	require.NoError(t, err)
	assert.Equal(t, payrollconf.WalletTypeRemote, w.Type())
	assert.Equal(t, testAccount0, w.Address().Checksummed())

	raw, err := w.SignTransaction(ctx, 31337, ethclient.EIP1559, testTX())
	require.NoError(t, err)
	assert.Equal(t, "0xfeedbeef", raw.String())
	assert.Equal(t, 1, s.Calls("eth_signTransaction"))
}

func TestRemoteWalletConfiguredAccountSignRawObject(t *testing.T) {
	ctx, w, _, err := newRemoteTestWallet(t, confutil.P(testAccount1),
		rpctest.Method{Name: "eth_accounts", Handler: rpctest.Result([]string{testAccount0, testAccount1})},
		rpctest.Method{Name: "eth_signTransaction", Handler: rpctest.Result(map[string]any{"raw": "0x0102", "tx": map[string]any{}})},
	)
	require.NoError(t, err)
	assert.Equal(t, testAccount1, w.Address().Checksummed())

	raw, err := w.SignTransaction(ctx, 31337, ethclient.EIP1559, testTX())
	require.NoError(t, err)
	assert.Equal(t, "0x0102", raw.String())
}

func TestRemoteWalletAccountMissing(t *testing.T) {
	_, _, _, err := newRemoteTestWallet(t, confutil.P(testAccount1),
		rpctest.Method{Name: "eth_accounts", Handler: rpctest.Result([]string{testAccount0})},
	)
	assert.Regexp(t, "PY010508", err)
}

func TestRemoteWalletBadAccount(t *testing.T) {
	_, _, _, err := newRemoteTestWallet(t, confutil.P("wrong"),
		rpctest.Method{Name: "eth_accounts", Handler: rpctest.Result([]string{testAccount0})},
	)
	assert.Regexp(t, "PY010105", err)
}

func TestRemoteWalletNoAccounts(t *testing.T) {
	_, _, _, err := newRemoteTestWallet(t, nil,
		rpctest.Method{Name: "eth_accounts", Handler: rpctest.Result([]string{})},
	)
	assert.Regexp(t, "PY010506", err)
}

func TestRemoteWalletAccountsError(t *testing.T) {
	_, _, _, err := newRemoteTestWallet(t, nil,
		rpctest.Method{Name: "eth_accounts", Handler: rpctest.Error(-32000, "locked")},
	)
	assert.Regexp(t, "locked", err)
}

func TestRemoteWalletUserRejected(t *testing.T) {
	ctx, w, _, err := newRemoteTestWallet(t, nil,
		rpctest.Method{Name: "eth_accounts", Handler: rpctest.Result([]string{testAccount0})},
		rpctest.Method{Name: "eth_signTransaction", Handler: rpctest.Error(4001, "User rejected the request")},
	)
	require.NoError(t, err)
	_, err = w.SignTransaction(ctx, 31337, ethclient.EIP1559, testTX())
	assert.Regexp(t, "PY010804", err)
	assert.True(t, payrollapi.HasReason(err, payrollapi.ReasonUserCancelled))
}

func TestRemoteWalletSignError(t *testing.T) {
	ctx, w, _, err := newRemoteTestWallet(t, nil,
		rpctest.Method{Name: "eth_accounts", Handler: rpctest.Result([]string{testAccount0})},
		rpctest.Method{Name: "eth_signTransaction", Handler: rpctest.Error(-32000, "no gas")},
	)
	require.NoError(t, err)
	_, err = w.SignTransaction(ctx, 31337, ethclient.EIP1559, testTX())
	assert.Regexp(t, "no gas", err)
	assert.False(t, payrollapi.HasReason(err, payrollapi.ReasonUserCancelled))
}

func TestRemoteWalletSignBadResult(t *testing.T) {
	ctx, w, _, err := newRemoteTestWallet(t, nil,
		rpctest.Method{Name: "eth_accounts", Handler: rpctest.Result([]string{testAccount0})},
		rpctest.Method{Name: "eth_signTransaction", Handler: rpctest.Result(map[string]any{"other": true})},
	)
	require.NoError(t, err)
	_, err = w.SignTransaction(ctx, 31337, ethclient.EIP1559, testTX())
	assert.Regexp(t, "PY010507", err)
}
