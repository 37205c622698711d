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

package encryption

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/Confidential-Secret-Vault/app/pkg/ethclient"
	"github.com/Confidential-Secret-Vault/app/pkg/log"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollapi"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollconf"
	"github.com/Confidential-Secret-Vault/app/pkg/rpcclient"
	"github.com/Confidential-Secret-Vault/app/pkg/types"
	"github.com/go-resty/resty/v2"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

// Encryptor is the boundary to the external encryption and proof service
type Encryptor interface {
	// Encrypt produces a ciphertext handle plus input proof for one amount, bound to the
	// contract and the user submitting it
	Encrypt(ctx context.Context, contract, user types.EthAddress, amount uint64) (*payrollapi.EncryptedInput, error)
	// Decrypt reveals the plaintext behind a ciphertext handle stored in the contract,
	// on behalf of the active signer
	Decrypt(ctx context.Context, handle types.Bytes32, contract types.EthAddress, signer ethclient.TXSigner) (uint64, error)
}

const encryptedBits = 32

type encryptRequest struct {
	ContractAddress types.EthAddress `json:"contractAddress"`
	UserAddress     types.EthAddress `json:"userAddress"`
	Value           string           `json:"value"`
	Bits            int              `json:"bits"`
}

type encryptResponse struct {
	Handle     *types.Bytes32 `json:"handle"`
	InputProof types.HexBytes `json:"inputProof"`
}

type decryptRequest struct {
	Handle          types.Bytes32    `json:"handle"`
	ContractAddress types.EthAddress `json:"contractAddress"`
	UserAddress     types.EthAddress `json:"userAddress"`
}

type decryptResponse struct {
	Value json.Number `json:"value"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (er *errorResponse) String() string {
	if er.Message != "" {
		return er.Message
	}
	return er.Error
}

type relayerClient struct {
	client *resty.Client
}

// NewRelayerClient returns an Encryptor backed by an HTTP relayer
func NewRelayerClient(ctx context.Context, conf *payrollconf.EncryptionConfig) (Encryptor, error) {
	if conf.HTTP.URL == "" {
		return nil, i18n.NewError(ctx, msgs.MsgConfigEncryptionURLRequired)
	}
	client, err := rpcclient.NewRestyClient(ctx, &conf.HTTP)
	if err != nil {
		return nil, err
	}
	return &relayerClient{client: client}, nil
}

func encryptionFailed(ctx context.Context, key i18n.ErrorMessageKey, inserts ...any) error {
	return payrollapi.NewFailure(payrollapi.ReasonEncryptionFailed, i18n.NewError(ctx, key, inserts...))
}

func responseError(res *resty.Response, err error, errRes *errorResponse) string {
	if err != nil {
		return err.Error()
	}
	if msg := errRes.String(); msg != "" {
		return msg
	}
	return res.Status()
}

func (rc *relayerClient) Encrypt(ctx context.Context, contract, user types.EthAddress, amount uint64) (*payrollapi.EncryptedInput, error) {
	var result encryptResponse
	var errRes errorResponse
	res, err := rc.client.R().
		SetContext(ctx).
		SetBody(&encryptRequest{
			ContractAddress: contract,
			UserAddress:     user,
			Value:           strconv.FormatUint(amount, 10),
			Bits:            encryptedBits,
		}).
		SetResult(&result).
		SetError(&errRes).
		Post("/v1/encrypt")
	if err != nil || res.IsError() {
		return nil, encryptionFailed(ctx, msgs.MsgEncryptionRequestFailed, responseError(res, err, &errRes))
	}
	if result.Handle == nil || len(result.InputProof) == 0 {
		return nil, encryptionFailed(ctx, msgs.MsgEncryptionInvalidResponse, res.String())
	}
	log.L(ctx).Debugf("Encrypted input handle=%s proofLen=%d", result.Handle, len(result.InputProof))
	return &payrollapi.EncryptedInput{
		Handle: *result.Handle,
		Proof:  result.InputProof,
	}, nil
}

func (rc *relayerClient) Decrypt(ctx context.Context, handle types.Bytes32, contract types.EthAddress, signer ethclient.TXSigner) (uint64, error) {
	var result decryptResponse
	var errRes errorResponse
	res, err := rc.client.R().
		SetContext(ctx).
		SetBody(&decryptRequest{
			Handle:          handle,
			ContractAddress: contract,
			UserAddress:     *signer.Address(),
		}).
		SetResult(&result).
		SetError(&errRes).
		Post("/v1/decrypt")
	if err != nil || res.IsError() {
		return 0, encryptionFailed(ctx, msgs.MsgDecryptionRequestFailed, handle, responseError(res, err, &errRes))
	}
	value, err := strconv.ParseUint(result.Value.String(), 10, 64)
	if err != nil {
		return 0, encryptionFailed(ctx, msgs.MsgDecryptionInvalidResponse, result.Value)
	}
	return value, nil
}
