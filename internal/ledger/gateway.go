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

package ledger

import (
	"context"
	_ "embed"
	"strings"
	"time"

	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/Confidential-Secret-Vault/app/pkg/cache"
	"github.com/Confidential-Secret-Vault/app/pkg/confutil"
	"github.com/Confidential-Secret-Vault/app/pkg/ethclient"
	"github.com/Confidential-Secret-Vault/app/pkg/log"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollapi"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollconf"
	"github.com/Confidential-Secret-Vault/app/pkg/types"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"golang.org/x/time/rate"
)

//go:embed abis/EncryptedPayroll.json
var payrollABIJSON []byte

// MaxBatchSize is the most payments batchSendPayments accepts in one transaction
const MaxBatchSize = 50

// Gateway is the only component that talks to the payroll contract. Reads are safe
// to call concurrently. Writes are signed with the supplied signer and return a
// handle that must be awaited before the result is treated as committed.
type Gateway interface {
	ContractAddress() types.EthAddress

	GetTotalPayments(ctx context.Context) (uint64, error)
	GetSenderPaymentCount(ctx context.Context, sender types.EthAddress) (uint64, error)
	GetPaymentCount(ctx context.Context, recipient types.EthAddress) (uint64, error)
	GetRecipientPayments(ctx context.Context, recipient types.EthAddress) (*payrollapi.RecipientPayments, error)
	GetUnclaimedPayments(ctx context.Context, recipient types.EthAddress) ([]uint64, error)
	GetPaymentInfo(ctx context.Context, recipient types.EthAddress, id uint64) (*payrollapi.PaymentInfo, error)
	PaymentExists(ctx context.Context, recipient types.EthAddress, id uint64) (bool, error)
	GetPaymentAmount(ctx context.Context, recipient types.EthAddress, id uint64) (types.Bytes32, error)
	GetPayment(ctx context.Context, recipient types.EthAddress, id uint64) (*payrollapi.Payment, error)
	ProtocolID(ctx context.Context) (string, error)

	SendPayment(ctx context.Context, signer ethclient.TXSigner, recipient types.EthAddress, input *payrollapi.EncryptedInput, memo string) (TxHandle, error)
	BatchSendPayments(ctx context.Context, signer ethclient.TXSigner, recipients []types.EthAddress, inputs []*payrollapi.EncryptedInput, memos []string) (TxHandle, error)
	ClaimPayment(ctx context.Context, signer ethclient.TXSigner, id uint64) (TxHandle, error)
}

type ciphertextKey struct {
	recipient types.EthAddress
	id        uint64
}

type gateway struct {
	ec              ethclient.EthClient
	abi             ethclient.ABIClient
	contract        types.EthAddress
	limiter         *rate.Limiter
	ciphertexts     cache.Cache[ciphertextKey, types.Bytes32]
	pollingInterval time.Duration
	receiptTimeout  time.Duration
	confirmations   uint64

	getTotalPayments      ethclient.ABIFunctionClient
	getSenderPaymentCount ethclient.ABIFunctionClient
	getPaymentCount       ethclient.ABIFunctionClient
	getRecipientPayments  ethclient.ABIFunctionClient
	getUnclaimedPayments  ethclient.ABIFunctionClient
	getPaymentInfo        ethclient.ABIFunctionClient
	paymentExists         ethclient.ABIFunctionClient
	getPaymentAmount      ethclient.ABIFunctionClient
	payments              ethclient.ABIFunctionClient
	protocolID            ethclient.ABIFunctionClient
	sendPayment           ethclient.ABIFunctionClient
	batchSendPayments     ethclient.ABIFunctionClient
	claimPayment          ethclient.ABIFunctionClient
}

func New(ctx context.Context, ec ethclient.EthClient, conf *payrollconf.PayrollConfig) (Gateway, error) {
	addrString := confutil.StringNotEmpty(conf.Contract.Address, *payrollconf.ContractDefaults.Address)
	contract, err := types.ParseEthAddressStrict(ctx, addrString)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgConfigInvalidContractAddress, addrString)
	}
	abic, err := ec.ABIJSON(ctx, payrollABIJSON)
	if err != nil {
		return nil, err
	}

	bc := &conf.Blockchain
	bcDefs := payrollconf.BlockchainDefaults
	g := &gateway{
		ec:              ec,
		abi:             abic,
		contract:        *contract,
		ciphertexts:     cache.NewCache[ciphertextKey, types.Bytes32](&conf.Caches.Ciphertexts, &payrollconf.CachesDefaults.Ciphertexts),
		pollingInterval: confutil.DurationMin(bc.ReceiptPollingInterval, 10*time.Millisecond, *bcDefs.ReceiptPollingInterval),
		receiptTimeout:  confutil.DurationMin(bc.ReceiptTimeout, 0, *bcDefs.ReceiptTimeout),
		confirmations:   uint64(confutil.IntMin(bc.RequiredConfirmations, 0, *bcDefs.RequiredConfirmations)),
	}
	if maxPerSecond := confutil.Float64Min(bc.Reads.MaxPerSecond, 0, *bcDefs.Reads.MaxPerSecond); maxPerSecond > 0 {
		g.limiter = rate.NewLimiter(rate.Limit(maxPerSecond), confutil.IntMin(bc.Reads.Burst, 1, *bcDefs.Reads.Burst))
	}

	for _, f := range []struct {
		name string
		fn   *ethclient.ABIFunctionClient
	}{
		{"totalPayments", &g.getTotalPayments},
		{"getSenderPaymentCount", &g.getSenderPaymentCount},
		{"getPaymentCount", &g.getPaymentCount},
		{"getRecipientPayments", &g.getRecipientPayments},
		{"getUnclaimedPayments", &g.getUnclaimedPayments},
		{"getPaymentInfo", &g.getPaymentInfo},
		{"paymentExists", &g.paymentExists},
		{"getPaymentAmount", &g.getPaymentAmount},
		{"payments", &g.payments},
		{"protocolId", &g.protocolID},
		{"sendPayment", &g.sendPayment},
		{"batchSendPayments", &g.batchSendPayments},
		{"claimPayment", &g.claimPayment},
	} {
		if *f.fn, err = abic.Function(ctx, f.name); err != nil {
			return nil, err
		}
	}
	log.L(ctx).Infof("Ledger gateway ready for payroll contract %s (chainId=%d)", g.contract.Checksummed(), ec.ChainID())
	return g, nil
}

func (g *gateway) ContractAddress() types.EthAddress {
	return g.contract
}

func (g *gateway) read(ctx context.Context, fn ethclient.ABIFunctionClient, input, output any) error {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return payrollapi.NewFailure(payrollapi.ReasonNetworkUnavailable,
				i18n.NewError(ctx, msgs.MsgPayrollNetworkUnavailable, err.Error()))
		}
	}
	name := fn.ABIEntry().Name
	err := fn.R(ctx).
		To(g.contract.Address0xHex()).
		Input(input).
		Output(output).
		Call()
	if err != nil {
		log.L(ctx).Errorf("Read %s failed: %s", name, err)
		return classifyRead(ctx, name, err)
	}
	return nil
}

func (g *gateway) GetTotalPayments(ctx context.Context) (uint64, error) {
	var res struct {
		Total types.HexUint64 `json:"0"`
	}
	if err := g.read(ctx, g.getTotalPayments, nil, &res); err != nil {
		return 0, err
	}
	return res.Total.Uint64(), nil
}

func (g *gateway) GetSenderPaymentCount(ctx context.Context, sender types.EthAddress) (uint64, error) {
	var res struct {
		Count types.HexUint64 `json:"count"`
	}
	if err := g.read(ctx, g.getSenderPaymentCount, []any{sender.String()}, &res); err != nil {
		return 0, err
	}
	return res.Count.Uint64(), nil
}

func (g *gateway) GetPaymentCount(ctx context.Context, recipient types.EthAddress) (uint64, error) {
	var res struct {
		Count types.HexUint64 `json:"count"`
	}
	if err := g.read(ctx, g.getPaymentCount, []any{recipient.String()}, &res); err != nil {
		return 0, err
	}
	return res.Count.Uint64(), nil
}

func (g *gateway) GetRecipientPayments(ctx context.Context, recipient types.EthAddress) (*payrollapi.RecipientPayments, error) {
	var res struct {
		PaymentIDs     []types.HexUint64 `json:"paymentIds"`
		UnclaimedCount types.HexUint64   `json:"unclaimedCount"`
	}
	if err := g.read(ctx, g.getRecipientPayments, []any{recipient.String()}, &res); err != nil {
		return nil, err
	}
	return &payrollapi.RecipientPayments{
		IDs:            toUint64s(res.PaymentIDs),
		UnclaimedCount: res.UnclaimedCount.Uint64(),
	}, nil
}

func (g *gateway) GetUnclaimedPayments(ctx context.Context, recipient types.EthAddress) ([]uint64, error) {
	var res struct {
		UnclaimedIDs []types.HexUint64 `json:"unclaimedIds"`
	}
	if err := g.read(ctx, g.getUnclaimedPayments, []any{recipient.String()}, &res); err != nil {
		return nil, err
	}
	return toUint64s(res.UnclaimedIDs), nil
}

// GetPaymentInfo maps a revert that says the payment does not exist into PaymentNotFound.
// Callers that are unsure whether the payment exists should use PaymentExists first.
func (g *gateway) GetPaymentInfo(ctx context.Context, recipient types.EthAddress, id uint64) (*payrollapi.PaymentInfo, error) {
	var res struct {
		Sender    types.EthAddress `json:"sender"`
		Timestamp types.HexUint64  `json:"timestamp"`
		Claimed   bool             `json:"claimed"`
		Memo      string           `json:"memo"`
	}
	if err := g.read(ctx, g.getPaymentInfo, []any{recipient.String(), id}, &res); err != nil {
		if isNotFoundRevert(err) {
			return nil, payrollapi.NewFailure(payrollapi.ReasonPaymentNotFound,
				i18n.NewError(ctx, msgs.MsgLedgerPaymentNotFound, id, recipient.Checksummed(), err.Error()))
		}
		return nil, err
	}
	return &payrollapi.PaymentInfo{
		Sender:    res.Sender,
		Timestamp: res.Timestamp.Uint64(),
		Claimed:   res.Claimed,
		Memo:      res.Memo,
	}, nil
}

func (g *gateway) PaymentExists(ctx context.Context, recipient types.EthAddress, id uint64) (bool, error) {
	var res struct {
		Exists bool `json:"exists"`
	}
	if err := g.read(ctx, g.paymentExists, []any{recipient.String(), id}, &res); err != nil {
		return false, err
	}
	return res.Exists, nil
}

// GetPaymentAmount returns the ciphertext handle, which never changes once the payment exists
func (g *gateway) GetPaymentAmount(ctx context.Context, recipient types.EthAddress, id uint64) (types.Bytes32, error) {
	return g.ciphertexts.GetOrLoad(ciphertextKey{recipient: recipient, id: id}, func() (types.Bytes32, bool, error) {
		var res struct {
			EncryptedAmount types.Bytes32 `json:"encryptedAmount"`
		}
		if err := g.read(ctx, g.getPaymentAmount, []any{recipient.String(), id}, &res); err != nil {
			return types.Bytes32{}, false, err
		}
		log.L(ctx).Debugf("Loaded ciphertext for payment %d of %s", id, recipient)
		return res.EncryptedAmount, !res.EncryptedAmount.IsZero(), nil
	})
}

func (g *gateway) GetPayment(ctx context.Context, recipient types.EthAddress, id uint64) (*payrollapi.Payment, error) {
	var res struct {
		ID              types.HexUint64  `json:"id"`
		Sender          types.EthAddress `json:"sender"`
		Recipient       types.EthAddress `json:"recipient"`
		EncryptedAmount types.Bytes32    `json:"encryptedAmount"`
		Timestamp       types.HexUint64  `json:"timestamp"`
		Claimed         bool             `json:"claimed"`
		Memo            string           `json:"memo"`
	}
	if err := g.read(ctx, g.payments, []any{recipient.String(), id}, &res); err != nil {
		return nil, err
	}
	if !res.EncryptedAmount.IsZero() {
		g.ciphertexts.Set(ciphertextKey{recipient: recipient, id: id}, res.EncryptedAmount)
	}
	return &payrollapi.Payment{
		ID:              res.ID.Uint64(),
		Sender:          res.Sender,
		Recipient:       res.Recipient,
		EncryptedAmount: res.EncryptedAmount,
		Timestamp:       res.Timestamp.Uint64(),
		Claimed:         res.Claimed,
		Memo:            res.Memo,
	}, nil
}

// ProtocolID is returned as a base 10 string, as it is a full uint256
func (g *gateway) ProtocolID(ctx context.Context) (string, error) {
	var res struct {
		ProtocolID string `json:"0"`
	}
	if err := g.read(ctx, g.protocolID, nil, &res); err != nil {
		return "", err
	}
	return res.ProtocolID, nil
}

func toUint64s(in []types.HexUint64) []uint64 {
	out := make([]uint64, len(in))
	for i, v := range in {
		out[i] = v.Uint64()
	}
	return out
}

func isNotFoundRevert(err error) bool {
	if ethclient.MapError(err) != ethclient.ErrorReasonTransactionReverted {
		return false
	}
	errString := strings.ToLower(err.Error())
	return strings.Contains(errString, "not exist") ||
		strings.Contains(errString, "not found") ||
		strings.Contains(errString, "invalid payment")
}
