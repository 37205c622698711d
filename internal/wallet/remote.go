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

	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/Confidential-Secret-Vault/app/pkg/ethclient"
	"github.com/Confidential-Secret-Vault/app/pkg/log"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollapi"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollconf"
	"github.com/Confidential-Secret-Vault/app/pkg/rpcclient"
	"github.com/Confidential-Secret-Vault/app/pkg/types"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
)

// remoteWallet delegates signing to a JSON/RPC signer that holds the keys,
// such as a browser wallet bridge or a signing proxy
type remoteWallet struct {
	rpc     rpcclient.Client
	address types.EthAddress
}

func newRemoteWallet(ctx context.Context, conf *payrollconf.RemoteWalletConfig) (*remoteWallet, error) {
	rpc, err := rpcclient.NewHTTPClient(ctx, &conf.HTTP)
	if err != nil {
		return nil, err
	}
	return connectRemoteWallet(ctx, rpc, conf)
}

func connectRemoteWallet(ctx context.Context, rpc rpcclient.Client, conf *payrollconf.RemoteWalletConfig) (*remoteWallet, error) {
	var accounts []*types.EthAddress
	if rpcErr := rpc.CallRPC(ctx, &accounts, "eth_accounts"); rpcErr != nil {
		return nil, rpcErr
	}
	if len(accounts) == 0 {
		return nil, i18n.NewError(ctx, msgs.MsgWalletRemoteNoAccounts)
	}
	w := &remoteWallet{rpc: rpc, address: *accounts[0]}
	if conf.Account != nil && *conf.Account != "" {
		want, err := types.ParseEthAddressStrict(ctx, *conf.Account)
		if err != nil {
			return nil, err
		}
		found := false
		for _, a := range accounts {
			if a.Equals(want) {
				found = true
				break
			}
		}
		if !found {
			return nil, i18n.NewError(ctx, msgs.MsgWalletRemoteAccountMissing, want.Checksummed())
		}
		w.address = *want
	}
	log.L(ctx).Infof("Remote wallet connected for account %s", w.address.Checksummed())
	return w, nil
}

func (w *remoteWallet) Type() payrollconf.WalletType {
	return payrollconf.WalletTypeRemote
}

func (w *remoteWallet) Address() *types.EthAddress {
	a := w.address
	return &a
}

// SignTransaction accepts either the raw transaction hex, or an object with a raw field,
// as different signers return both forms
func (w *remoteWallet) SignTransaction(ctx context.Context, chainID int64, txVersion ethclient.EthTXVersion, tx *ethsigner.Transaction) (types.HexBytes, error) {
	var result json.RawMessage
	if rpcErr := w.rpc.CallRPC(ctx, &result, "eth_signTransaction", tx); rpcErr != nil {
		if ethclient.MapError(rpcErr) == ethclient.ErrorReasonUserRejected {
			return nil, payrollapi.NewFailure(payrollapi.ReasonUserCancelled,
				i18n.NewError(ctx, msgs.MsgPayrollUserCancelled, rpcErr.Error()))
		}
		return nil, rpcErr
	}
	var rawHex string
	if err := json.Unmarshal(result, &rawHex); err != nil {
		var withRaw struct {
			Raw string `json:"raw"`
		}
		_ = json.Unmarshal(result, &withRaw)
		rawHex = withRaw.Raw
	}
	raw, err := types.ParseHexBytes(ctx, rawHex)
	if err != nil || len(raw) == 0 {
		return nil, i18n.NewError(ctx, msgs.MsgWalletRemoteSignFailed, string(result))
	}
	return raw, nil
}
