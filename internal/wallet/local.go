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
	"os"
	"strconv"
	"strings"

	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/Confidential-Secret-Vault/app/pkg/confutil"
	"github.com/Confidential-Secret-Vault/app/pkg/ethclient"
	"github.com/Confidential-Secret-Vault/app/pkg/log"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollconf"
	"github.com/Confidential-Secret-Vault/app/pkg/types"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
	"github.com/hyperledger/firefly-signer/pkg/secp256k1"
	"github.com/tyler-smith/go-bip39"
)

// localWallet holds a single secp256k1 key in memory
type localWallet struct {
	kp      *secp256k1.KeyPair
	address types.EthAddress
}

func newLocalWallet(ctx context.Context, conf *payrollconf.LocalWalletConfig) (*localWallet, error) {
	var keyBytes []byte
	var err error
	switch {
	case conf.PrivateKey != nil && *conf.PrivateKey != "":
		keyBytes, err = parseKeyHex(ctx, *conf.PrivateKey)
	case conf.PrivateKeyFile != nil && *conf.PrivateKeyFile != "":
		var fileBytes []byte
		fileBytes, err = os.ReadFile(*conf.PrivateKeyFile)
		if err != nil {
			return nil, i18n.WrapError(ctx, err, msgs.MsgWalletKeyFileReadFailed, *conf.PrivateKeyFile)
		}
		keyBytes, err = parseKeyHex(ctx, string(fileBytes))
	case conf.Mnemonic != nil && *conf.Mnemonic != "":
		hdPath := confutil.StringNotEmpty(conf.HDPath, *payrollconf.WalletDefaults.Local.HDPath)
		keyBytes, err = deriveHDKey(ctx, *conf.Mnemonic, hdPath)
	default:
		err = i18n.NewError(ctx, msgs.MsgWalletMissingKey)
	}
	if err != nil {
		return nil, err
	}
	kp := secp256k1.KeyPairFromBytes(keyBytes)
	w := &localWallet{kp: kp, address: types.EthAddress(kp.Address)}
	log.L(ctx).Infof("Local wallet loaded for account %s", w.address.Checksummed())
	return w, nil
}

func parseKeyHex(ctx context.Context, s string) ([]byte, error) {
	keyBytes, err := types.ParseHexBytes(ctx, strings.TrimSpace(s))
	if err == nil && len(keyBytes) != 32 {
		err = i18n.NewError(ctx, msgs.MsgTypesValueInvalidBytes32, len(keyBytes))
	}
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgWalletInvalidKey, err)
	}
	return keyBytes, nil
}

// deriveHDKey follows BIP-32/BIP-44 from a BIP-39 mnemonic, for paths like m/44'/60'/0'/0/0
func deriveHDKey(ctx context.Context, mnemonic, hdPath string) ([]byte, error) {
	seed, err := bip39.NewSeedWithErrorChecking(strings.TrimSpace(mnemonic), "")
	if err != nil {
		return nil, i18n.NewError(ctx, msgs.MsgWalletInvalidMnemonic)
	}
	pos, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgWalletHDDerivationFailed, err)
	}
	segments := strings.Split(strings.ReplaceAll(hdPath, " ", ""), "/")
	if len(segments) < 2 || segments[0] != "m" {
		return nil, i18n.NewError(ctx, msgs.MsgWalletInvalidHDPath, hdPath)
	}
	for _, s := range segments[1:] {
		number, isHardened := strings.CutSuffix(s, "'")
		derivation, err := strconv.ParseUint(number, 10, 32)
		if err != nil || derivation >= hdkeychain.HardenedKeyStart {
			return nil, i18n.NewError(ctx, msgs.MsgWalletInvalidHDPath, hdPath)
		}
		if isHardened {
			derivation += hdkeychain.HardenedKeyStart
		}
		if pos, err = pos.Derive(uint32(derivation)); err != nil {
			return nil, i18n.WrapError(ctx, err, msgs.MsgWalletHDDerivationFailed, err)
		}
	}
	ecPrivKey, err := pos.ECPrivKey()
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgWalletHDDerivationFailed, err)
	}
	pkBytes := ecPrivKey.Key.Bytes()
	return pkBytes[:], nil
}

func (w *localWallet) Type() payrollconf.WalletType {
	return payrollconf.WalletTypeLocal
}

func (w *localWallet) Address() *types.EthAddress {
	a := w.address
	return &a
}

func (w *localWallet) SignTransaction(ctx context.Context, chainID int64, txVersion ethclient.EthTXVersion, tx *ethsigner.Transaction) (types.HexBytes, error) {
	return ethclient.SignWithKeyPair(ctx, w.kp, chainID, txVersion, tx)
}
