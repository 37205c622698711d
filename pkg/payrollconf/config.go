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

import (
	"context"
	"os"

	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/hyperledger/firefly-common/pkg/i18n"

	"sigs.k8s.io/yaml" // supports the JSON tags on our structs
)

type PayrollConfig struct {
	Log           LogConfig           `json:"log"`
	Blockchain    BlockchainConfig    `json:"blockchain"`
	Contract      ContractConfig      `json:"contract"`
	Wallet        WalletConfig        `json:"wallet"`
	Encryption    EncryptionConfig    `json:"encryption"`
	Caches        CachesConfig        `json:"caches"`
	Status        StatusConfig        `json:"status"`
	DB            DBConfig            `json:"db"`
	RPCServer     RPCServerConfig     `json:"rpcServer"`
	MetricsServer MetricsServerConfig `json:"metricsServer"`
}

func ReadAndParseYAMLFile(ctx context.Context, filePath string, config any) error {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return i18n.NewError(ctx, msgs.MsgConfigFileMissing, filePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return i18n.NewError(ctx, msgs.MsgConfigFileReadError, filePath, err.Error())
	}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return i18n.NewError(ctx, msgs.MsgConfigFileParseError, err.Error())
	}

	return nil
}
