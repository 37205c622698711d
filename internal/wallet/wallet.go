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
	"strings"

	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/Confidential-Secret-Vault/app/pkg/confutil"
	"github.com/Confidential-Secret-Vault/app/pkg/ethclient"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollconf"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

// Wallet is the active account, and the ability to sign transactions for it
type Wallet interface {
	ethclient.TXSigner
	Type() payrollconf.WalletType
}

func New(ctx context.Context, conf *payrollconf.WalletConfig) (Wallet, error) {
	walletType := payrollconf.WalletType(strings.ToLower(confutil.StringNotEmpty(conf.Type, *payrollconf.WalletDefaults.Type)))
	switch walletType {
	case payrollconf.WalletTypeLocal:
		return newLocalWallet(ctx, &conf.Local)
	case payrollconf.WalletTypeRemote:
		return newRemoteWallet(ctx, &conf.Remote)
	default:
		return nil, i18n.NewError(ctx, msgs.MsgWalletUnknownType, walletType)
	}
}
