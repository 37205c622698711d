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
	"encoding/json"
	"strconv"
	"time"

	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/Confidential-Secret-Vault/app/pkg/ethclient"
	"github.com/Confidential-Secret-Vault/app/pkg/log"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollapi"
	"github.com/Confidential-Secret-Vault/app/pkg/types"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
)

// TxHandle is a submitted transaction that has not yet been confirmed
type TxHandle interface {
	TransactionHash() types.Bytes32
	// AwaitFinality blocks until the transaction is mined with the required confirmations,
	// and returns the decoded payroll events. A reverted transaction is Rejected.
	AwaitFinality(ctx context.Context) (*payrollapi.TxReceipt, error)
}

type txHandle struct {
	g      *gateway
	op     string
	hash   types.Bytes32
	tx     ethsigner.Transaction
	signer ethclient.TXSigner
}

func (g *gateway) SendPayment(ctx context.Context, signer ethclient.TXSigner, recipient types.EthAddress, input *payrollapi.EncryptedInput, memo string) (TxHandle, error) {
	return g.submit(ctx, g.sendPayment, signer, []any{
		recipient.String(),
		input.Handle.String(),
		input.Proof.String(),
		memo,
	})
}

// BatchSendPayments submits one transaction that creates a payment per element. The
// three slices correspond element-wise, and must all be the same length.
func (g *gateway) BatchSendPayments(ctx context.Context, signer ethclient.TXSigner, recipients []types.EthAddress, inputs []*payrollapi.EncryptedInput, memos []string) (TxHandle, error) {
	if len(recipients) != len(inputs) || len(recipients) != len(memos) {
		return nil, payrollapi.NewFailure(payrollapi.ReasonInvalidInput,
			i18n.NewError(ctx, msgs.MsgLedgerBatchLengthMismatch, len(recipients), len(inputs), len(memos)))
	}
	if len(recipients) == 0 || len(recipients) > MaxBatchSize {
		return nil, payrollapi.NewFailure(payrollapi.ReasonInvalidInput,
			i18n.NewError(ctx, msgs.MsgLedgerEmptyBatch, MaxBatchSize, len(recipients)))
	}
	addrs := make([]any, len(recipients))
	handles := make([]any, len(inputs))
	proofs := make([]any, len(inputs))
	memoValues := make([]any, len(memos))
	for i := range recipients {
		addrs[i] = recipients[i].String()
		handles[i] = inputs[i].Handle.String()
		proofs[i] = inputs[i].Proof.String()
		memoValues[i] = memos[i]
	}
	return g.submit(ctx, g.batchSendPayments, signer, []any{addrs, handles, proofs, memoValues})
}

func (g *gateway) ClaimPayment(ctx context.Context, signer ethclient.TXSigner, id uint64) (TxHandle, error) {
	return g.submit(ctx, g.claimPayment, signer, []any{strconv.FormatUint(id, 10)})
}

func (g *gateway) submit(ctx context.Context, fn ethclient.ABIFunctionClient, signer ethclient.TXSigner, input []any) (TxHandle, error) {
	op := fn.ABIEntry().Name
	req := fn.R(ctx).
		To(g.contract.Address0xHex()).
		Signer(signer).
		Input(input)
	txHash, err := req.SignAndSend()
	if err != nil {
		log.L(ctx).Errorf("Submission of %s from %s failed: %s", op, signer.Address(), err)
		return nil, classifyWrite(ctx, op, err)
	}
	log.L(ctx).Infof("Submitted %s from %s: %s", op, signer.Address(), txHash)
	return &txHandle{
		g:      g,
		op:     op,
		hash:   *txHash,
		tx:     *req.TX(),
		signer: signer,
	}, nil
}

func (h *txHandle) TransactionHash() types.Bytes32 {
	return h.hash
}

func (h *txHandle) AwaitFinality(ctx context.Context) (*payrollapi.TxReceipt, error) {
	g := h.g
	if g.receiptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.receiptTimeout)
		defer cancel()
	}
	for {
		receipt, err := g.ec.GetTransactionReceipt(ctx, h.hash)
		switch {
		case err != nil && ctx.Err() == nil && ethclient.MapError(err) != ethclient.ErrorReasonDownstreamDown:
			return nil, classifyWrite(ctx, h.op, i18n.NewError(ctx, msgs.MsgEthClientReceiptFailed, h.hash, err.Error()))
		case err != nil:
			log.L(ctx).Warnf("Receipt query for %s failed (will poll again): %s", h.hash, err)
		case receipt != nil && h.confirmed(ctx, receipt):
			return h.processReceipt(ctx, receipt)
		}
		select {
		case <-ctx.Done():
			log.L(ctx).Errorf("Gave up waiting for %s after %s", h.hash, g.receiptTimeout)
			return nil, payrollapi.NewFailure(payrollapi.ReasonNetworkUnavailable,
				i18n.NewError(ctx, msgs.MsgLedgerReceiptTimeout, g.receiptTimeout, h.hash))
		case <-time.After(g.pollingInterval):
		}
	}
}

func (h *txHandle) confirmed(ctx context.Context, receipt *ethclient.TXReceiptJSONRPC) bool {
	if h.g.confirmations == 0 {
		return true
	}
	blockNumber, err := h.g.ec.BlockNumber(ctx)
	if err != nil {
		log.L(ctx).Warnf("Block number query failed while confirming %s: %s", h.hash, err)
		return false
	}
	mined := receipt.BlockNumber.Uint64()
	log.L(ctx).Debugf("Transaction %s mined in block %d (head=%d required=%d)", h.hash, mined, blockNumber, h.g.confirmations)
	return blockNumber >= mined && blockNumber-mined >= h.g.confirmations
}

func (h *txHandle) processReceipt(ctx context.Context, receipt *ethclient.TXReceiptJSONRPC) (*payrollapi.TxReceipt, error) {
	blockNumber := receipt.BlockNumber.Uint64()
	if !receipt.Succeeded() {
		reason := h.revertReason(ctx, receipt)
		log.L(ctx).Errorf("Transaction %s (%s) failed in block %d: %s", h.hash, h.op, blockNumber, reason)
		return nil, payrollapi.NewFailure(payrollapi.ReasonRejected,
			i18n.NewError(ctx, msgs.MsgLedgerTransactionFailed, h.hash, blockNumber, reason))
	}
	res := &payrollapi.TxReceipt{
		TransactionHash: h.hash,
		BlockNumber:     blockNumber,
		Events:          h.g.decodeEvents(ctx, receipt.Logs),
	}
	if receipt.GasUsed != nil {
		res.GasUsed = receipt.GasUsed.BigInt().Uint64()
	}
	log.L(ctx).Infof("Transaction %s (%s) confirmed in block %d with %d payroll events", h.hash, h.op, blockNumber, len(res.Events))
	return res, nil
}

// revertReason uses the reason in the receipt if the node supplied one, or replays the
// transaction as a call against the block it was mined in
func (h *txHandle) revertReason(ctx context.Context, receipt *ethclient.TXReceiptJSONRPC) string {
	if len(receipt.RevertReason) > 0 {
		if errString, ok := h.g.abi.ABI().ErrorStringCtx(ctx, receipt.RevertReason); ok {
			return errString
		}
		return receipt.RevertReason.String()
	}
	replay := h.tx
	replay.From = json.RawMessage(types.JSONString(h.signer.Address()))
	_, err := h.g.ec.CallContract(ctx, &replay, "0x"+strconv.FormatUint(receipt.BlockNumber.Uint64(), 16),
		ethclient.WithErrorsFrom(h.g.abi.ABI()))
	if err != nil {
		return err.Error()
	}
	return i18n.NewError(ctx, msgs.MsgEthClientRevertedNoData).Error()
}
