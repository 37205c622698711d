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

package payrollconf

import "github.com/Confidential-Secret-Vault/app/pkg/confutil"

type BlockchainConfig struct {
	HTTP                   HTTPClientConfig   `json:"http"`
	EstimateGasFactor      *float64           `json:"estimateGasFactor"`
	TXVersion              *string            `json:"txVersion"`
	GasPrice               *string            `json:"gasPrice"` // fixed gas price in wei; eth_gasPrice is queried when unset
	ConnectRetry           RetryConfigWithMax `json:"connectRetry"`
	ReceiptPollingInterval *string            `json:"receiptPollingInterval"`
	ReceiptTimeout         *string            `json:"receiptTimeout"`
	RequiredConfirmations  *int               `json:"requiredConfirmations"`
	Reads                  ReadsConfig        `json:"reads"`
}

type ReadsConfig struct {
	MaxConcurrency *int     `json:"maxConcurrency"`
	MaxPerSecond   *float64 `json:"maxPerSecond"` // zero means unlimited
	Burst          *int     `json:"burst"`
}

var BlockchainDefaults = &BlockchainConfig{
	EstimateGasFactor: confutil.P(1.5),
	TXVersion:         confutil.P("eip1559"),
	ConnectRetry: RetryConfigWithMax{
		RetryConfig: RetryConfig{
			InitialDelay: confutil.P("500ms"),
			MaxDelay:     confutil.P("2s"),
			Factor:       confutil.P(2.0),
		},
		MaxAttempts: confutil.P(10),
	},
	ReceiptPollingInterval: confutil.P("1s"),
	ReceiptTimeout:         confutil.P("5m"),
	RequiredConfirmations:  confutil.P(0),
	Reads: ReadsConfig{
		MaxConcurrency: confutil.P(10),
		MaxPerSecond:   confutil.P(0.0),
		Burst:          confutil.P(10),
	},
}

type ContractConfig struct {
	Address *string `json:"address"`
}

var ContractDefaults = &ContractConfig{
	Address: confutil.P("0xC86762bC822254eA7c1D9156f17B7010131967E2"),
}

type WalletType string

const (
	WalletTypeLocal  WalletType = "local"
	WalletTypeRemote WalletType = "remote"
)

type WalletConfig struct {
	Type   *string            `json:"type"`
	Local  LocalWalletConfig  `json:"local"`
	Remote RemoteWalletConfig `json:"remote"`
}

type LocalWalletConfig struct {
	PrivateKey     *string `json:"privateKey"`     // 32 byte hex
	PrivateKeyFile *string `json:"privateKeyFile"` // file containing 32 byte hex
	Mnemonic       *string `json:"mnemonic"`       // BIP-39 seed phrase
	HDPath         *string `json:"hdPath"`
}

type RemoteWalletConfig struct {
	HTTP    HTTPClientConfig `json:"http"`
	Account *string          `json:"account"` // defaults to the first account reported by eth_accounts
}

var WalletDefaults = &WalletConfig{
	Type: confutil.P(string(WalletTypeLocal)),
	Local: LocalWalletConfig{
		HDPath: confutil.P("m/44'/60'/0'/0/0"),
	},
}

type EncryptionConfig struct {
	HTTP HTTPClientConfig `json:"http"`
}

type CacheConfig struct {
	Capacity *int `json:"capacity"`
}

type CachesConfig struct {
	Ciphertexts CacheConfig `json:"ciphertexts"`
}

var CachesDefaults = &CachesConfig{
	Ciphertexts: CacheConfig{
		Capacity: confutil.P(1000),
	},
}

type StatusConfig struct {
	Retain *int `json:"retain"`
}

var StatusDefaults = &StatusConfig{
	Retain: confutil.P(100),
}
