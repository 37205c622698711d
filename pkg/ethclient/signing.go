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

package ethclient

import (
	"context"

	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/Confidential-Secret-Vault/app/pkg/types"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
	"github.com/hyperledger/firefly-signer/pkg/secp256k1"
	"golang.org/x/crypto/sha3"
)

// TXSigner holds (or has access to) the key for a single account, and
// turns a fully populated transaction into signed raw bytes
type TXSigner interface {
	Address() *types.EthAddress
	SignTransaction(ctx context.Context, chainID int64, txVersion EthTXVersion, tx *ethsigner.Transaction) (types.HexBytes, error)
}

// SignWithKeyPair signs the transaction in-process with a secp256k1 key
func SignWithKeyPair(ctx context.Context, kp *secp256k1.KeyPair, chainID int64, txVersion EthTXVersion, tx *ethsigner.Transaction) (types.HexBytes, error) {
	var sigPayload *ethsigner.TransactionSignaturePayload
	switch txVersion {
	case EIP1559:
		sigPayload = tx.SignaturePayloadEIP1559(chainID)
	case LEGACY_EIP155:
		sigPayload = tx.SignaturePayloadLegacyEIP155(chainID)
	case LEGACY_ORIGINAL:
		sigPayload = tx.SignaturePayloadLegacyOriginal()
	default:
		return nil, i18n.NewError(ctx, msgs.MsgConfigInvalidTXVersion, txVersion)
	}
	hash := sha3.NewLegacyKeccak256()
	_, _ = hash.Write(sigPayload.Bytes())
	sig, err := kp.SignDirect(hash.Sum(nil))
	if err == nil {
		// normalize to a 0/1 recovery id, as a compact RSV signature carries it
		sig, err = secp256k1.DecodeCompactRSV(ctx, sig.CompactRSV())
	}
	var rawTX []byte
	if err == nil {
		switch txVersion {
		case EIP1559:
			rawTX, err = tx.FinalizeEIP1559WithSignature(sigPayload, sig)
		case LEGACY_EIP155:
			// firefly-signer requires the legacy 27/28 starting point for EIP-155
			sig.V.SetInt64(sig.V.Int64() + 27)
			rawTX, err = tx.FinalizeLegacyEIP155WithSignature(sigPayload, sig, chainID)
		case LEGACY_ORIGINAL:
			sig.V.SetInt64(sig.V.Int64() + 27)
			rawTX, err = tx.FinalizeLegacyOriginalWithSignature(sigPayload, sig)
		}
	}
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgEthClientSignFailed, err)
	}
	return rawTX, nil
}
