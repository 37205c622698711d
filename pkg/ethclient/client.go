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
	"encoding/json"
	"math/big"
	"strings"

	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/Confidential-Secret-Vault/app/pkg/confutil"
	"github.com/Confidential-Secret-Vault/app/pkg/log"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollconf"
	"github.com/Confidential-Secret-Vault/app/pkg/retry"
	"github.com/Confidential-Secret-Vault/app/pkg/rpcclient"
	"github.com/Confidential-Secret-Vault/app/pkg/types"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/abi"
	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// Low level client to the base Ethereum ledger, for reads and transaction submission
type EthClient interface {
	ChainID() int64
	TXVersion() EthTXVersion

	BlockNumber(ctx context.Context) (uint64, error)
	GasPrice(ctx context.Context) (*ethtypes.HexInteger, error)
	GetTransactionCount(ctx context.Context, fromAddr types.EthAddress) (uint64, error)
	GetTransactionReceipt(ctx context.Context, txHash types.Bytes32) (*TXReceiptJSONRPC, error)

	CallContract(ctx context.Context, tx *ethsigner.Transaction, block string, opts ...CallOption) (res CallResult, err error)
	EstimateGas(ctx context.Context, tx *ethsigner.Transaction, opts ...CallOption) (res EstimateGasResult, err error)
	BuildRawTransaction(ctx context.Context, txVersion EthTXVersion, signer TXSigner, tx *ethsigner.Transaction, opts ...CallOption) (types.HexBytes, error)
	SendRawTransaction(ctx context.Context, rawTX types.HexBytes) (*types.Bytes32, error)

	ABI(ctx context.Context, a abi.ABI) (ABIClient, error)
	ABIJSON(ctx context.Context, abiJson []byte) (ABIClient, error)
	MustABIJSON(abiJson []byte) ABIClient
}

// Call options affect the behavior of gas estimate and call functions, such as by allowing you to supply
// an ABI for the client to use to decode the error data.
type CallOption interface {
	isCallOptions()
}

type callOptions struct {
	errABI  abi.ABI
	outputs abi.TypeComponent
}

func (co *callOptions) isCallOptions() {}

// The supplied ABI will be used when attempting to process revert data (if available)
func WithErrorsFrom(a abi.ABI) CallOption {
	return &callOptions{
		errABI: a,
	}
}

// The supplied type tree will be used to decode return data
func WithOutputs(outputs abi.TypeComponent) CallOption {
	return &callOptions{
		outputs: outputs,
	}
}

type EstimateGasResult struct {
	GasLimit   types.HexUint64
	RevertData types.HexBytes
}

type CallResult struct {
	Data          types.HexBytes
	DecodedResult *abi.ComponentValue
	RevertData    types.HexBytes
}

// Convenience func that bypasses errors
func (cr CallResult) JSON() (s string) {
	if cr.DecodedResult != nil {
		b, _ := types.StandardABISerializer().SerializeJSON(cr.DecodedResult)
		if b != nil {
			s = string(b)
		}
	}
	return s
}

type ethClient struct {
	chainID           int64
	txVersion         EthTXVersion
	gasEstimateFactor float64
	fixedGasPrice     *big.Int
	rpc               rpcclient.Client
}

// New connects to the JSON/RPC endpoint in the config, retrying the chain ID
// query until the node answers or the connect retry is exhausted
func New(ctx context.Context, conf *payrollconf.BlockchainConfig) (EthClient, error) {
	if conf.HTTP.URL == "" {
		return nil, i18n.NewError(ctx, msgs.MsgConfigBlockchainURLRequired)
	}
	rpc, err := rpcclient.NewHTTPClient(ctx, &conf.HTTP)
	if err != nil {
		return nil, err
	}
	return WrapRPCClient(ctx, rpc, conf)
}

// WrapRPCClient builds an EthClient over an existing JSON/RPC client
func WrapRPCClient(ctx context.Context, rpc rpcclient.Client, conf *payrollconf.BlockchainConfig) (EthClient, error) {
	ec, err := newEthClient(ctx, rpc, conf)
	if err != nil {
		return nil, err
	}
	r := retry.NewRetryLimited(&conf.ConnectRetry)
	err = r.Do(ctx, func(attempt int) (retryable bool, err error) {
		rpcErr := ec.setupChainID(ctx)
		if rpcErr == nil {
			return false, nil
		}
		// only transport failures are worth retrying
		return rpcErr.Unavailable(), rpcErr
	})
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgEthClientChainIDFailed)
	}
	log.L(ctx).Infof("Connected to chain %d (txVersion=%s)", ec.chainID, ec.txVersion)
	return ec, nil
}

func newEthClient(ctx context.Context, rpc rpcclient.Client, conf *payrollconf.BlockchainConfig) (*ethClient, error) {
	defs := payrollconf.BlockchainDefaults
	txVersion, err := ParseTXVersion(ctx, confutil.StringNotEmpty(conf.TXVersion, *defs.TXVersion))
	if err != nil {
		return nil, err
	}
	ec := &ethClient{
		rpc:               rpc,
		txVersion:         txVersion,
		gasEstimateFactor: confutil.Float64Min(conf.EstimateGasFactor, 1.0, *defs.EstimateGasFactor),
	}
	if conf.GasPrice != nil && *conf.GasPrice != "" {
		gp, ok := new(big.Int).SetString(*conf.GasPrice, 0)
		if !ok || gp.Sign() < 0 {
			return nil, i18n.NewError(ctx, msgs.MsgConfigInvalidGasPrice, *conf.GasPrice)
		}
		ec.fixedGasPrice = gp
	}
	return ec, nil
}

// ParseTXVersion accepts "legacy" as shorthand for EIP-155 legacy transactions
func ParseTXVersion(ctx context.Context, s string) (EthTXVersion, error) {
	switch EthTXVersion(strings.ToLower(s)) {
	case EIP1559:
		return EIP1559, nil
	case "legacy", LEGACY_EIP155:
		return LEGACY_EIP155, nil
	case LEGACY_ORIGINAL:
		return LEGACY_ORIGINAL, nil
	default:
		return "", i18n.NewError(ctx, msgs.MsgConfigInvalidTXVersion, s)
	}
}

func (ec *ethClient) ChainID() int64 {
	return ec.chainID
}

func (ec *ethClient) TXVersion() EthTXVersion {
	return ec.txVersion
}

func (ec *ethClient) setupChainID(ctx context.Context) *rpcclient.RPCError {
	var chainID ethtypes.HexUint64
	if rpcErr := ec.rpc.CallRPC(ctx, &chainID, "eth_chainId"); rpcErr != nil {
		log.L(ctx).Errorf("eth_chainId failed: %+v", rpcErr)
		return rpcErr.RPCError()
	}
	ec.chainID = int64(chainID.Uint64())
	return nil
}

func (ec *ethClient) BlockNumber(ctx context.Context) (uint64, error) {
	var blockNumber ethtypes.HexUint64
	if rpcErr := ec.rpc.CallRPC(ctx, &blockNumber, "eth_blockNumber"); rpcErr != nil {
		log.L(ctx).Errorf("eth_blockNumber failed: %+v", rpcErr)
		return 0, rpcErr
	}
	return blockNumber.Uint64(), nil
}

func (ec *ethClient) GasPrice(ctx context.Context) (*ethtypes.HexInteger, error) {
	if ec.fixedGasPrice != nil {
		return (*ethtypes.HexInteger)(new(big.Int).Set(ec.fixedGasPrice)), nil
	}
	var gasPrice ethtypes.HexInteger
	if rpcErr := ec.rpc.CallRPC(ctx, &gasPrice, "eth_gasPrice"); rpcErr != nil {
		log.L(ctx).Errorf("eth_gasPrice failed: %+v", rpcErr)
		return nil, rpcErr
	}
	return &gasPrice, nil
}

func (ec *ethClient) CallContract(ctx context.Context, tx *ethsigner.Transaction, block string, opts ...CallOption) (res CallResult, err error) {
	var outputs abi.TypeComponent
	errABI := abi.ABI{}
	for _, o := range opts {
		co := o.(*callOptions)
		if co.errABI != nil {
			errABI = co.errABI
		}
		if co.outputs != nil {
			outputs = co.outputs
		}
	}
	if err := ec.rpc.CallRPC(ctx, &res.Data, "eth_call", tx, block); err != nil {
		rpcErr := err.RPCError()
		log.L(ctx).Errorf("eth_call failed: %+v", rpcErr)
		if len(rpcErr.Data) != 0 {
			log.L(ctx).Debugf("Received error data in revert: %s", rpcErr.Data)
			_ = json.Unmarshal(rpcErr.Data.Bytes(), &res.RevertData)
			if len(res.RevertData) > 0 {
				errString, _ := errABI.ErrorStringCtx(ctx, ethtypes.HexBytes0xPrefix(res.RevertData))
				if errString == "" {
					errString = res.RevertData.String()
				}
				return res, i18n.NewError(ctx, msgs.MsgEthClientReverted, errString)
			}
		}
		// Or fallback to whatever the error we got was
		return res, rpcErr
	}

	if outputs != nil {
		res.DecodedResult, err = outputs.DecodeABIDataCtx(ctx, res.Data, 0)
	}
	return res, err
}

func (ec *ethClient) EstimateGas(ctx context.Context, tx *ethsigner.Transaction, opts ...CallOption) (res EstimateGasResult, err error) {
	if err = ec.rpc.CallRPC(ctx, &res.GasLimit, "eth_estimateGas", tx); err != nil {
		log.L(ctx).Errorf("eth_estimateGas failed: %+v", err)
		// Fall back to a call, to see if we can get an error
		callRes, callErr := ec.CallContract(ctx, tx, string(LATEST), opts...)
		if callErr != nil {
			err = callErr
		}
		res.RevertData = callRes.RevertData
		return res, err
	}
	return res, nil
}

func (ec *ethClient) GetTransactionCount(ctx context.Context, fromAddr types.EthAddress) (uint64, error) {
	var transactionCount ethtypes.HexUint64
	if rpcErr := ec.rpc.CallRPC(ctx, &transactionCount, "eth_getTransactionCount", fromAddr, string(PENDING)); rpcErr != nil {
		log.L(ctx).Errorf("eth_getTransactionCount(%s) failed: %+v", fromAddr, rpcErr)
		return 0, rpcErr
	}
	return transactionCount.Uint64(), nil
}

// GetTransactionReceipt returns nil with no error while the transaction is still pending
func (ec *ethClient) GetTransactionReceipt(ctx context.Context, txHash types.Bytes32) (*TXReceiptJSONRPC, error) {
	var receipt *TXReceiptJSONRPC
	if rpcErr := ec.rpc.CallRPC(ctx, &receipt, "eth_getTransactionReceipt", txHash); rpcErr != nil {
		log.L(ctx).Errorf("eth_getTransactionReceipt(%s) failed: %+v", txHash, rpcErr)
		return nil, rpcErr
	}
	return receipt, nil
}

func (ec *ethClient) BuildRawTransaction(ctx context.Context, txVersion EthTXVersion, signer TXSigner, tx *ethsigner.Transaction, opts ...CallOption) (types.HexBytes, error) {
	fromAddr := signer.Address()
	tx.From = json.RawMessage(types.JSONString(fromAddr))

	// Trivial nonce management in the client - just get the current nonce for this key, from the local node mempool, for each TX
	if tx.Nonce == nil {
		txNonce, err := ec.GetTransactionCount(ctx, *fromAddr)
		if err != nil {
			return nil, err
		}
		tx.Nonce = ethtypes.NewHexIntegerU64(txNonce)
	}

	if tx.GasLimit == nil {
		gasEstimate, err := ec.EstimateGas(ctx, tx, opts...)
		if err != nil {
			return nil, err
		}
		// If that went well, so submission with a bump on the estimation
		factoredGasLimit := int64((float64)(gasEstimate.GasLimit) * ec.gasEstimateFactor)
		tx.GasLimit = (*ethtypes.HexInteger)(big.NewInt(factoredGasLimit))
	}

	if tx.GasPrice == nil && tx.MaxFeePerGas == nil {
		gasPrice, err := ec.GasPrice(ctx)
		if err != nil {
			return nil, err
		}
		if txVersion == EIP1559 {
			tx.MaxFeePerGas = gasPrice
			tx.MaxPriorityFeePerGas = gasPrice
		} else {
			tx.GasPrice = gasPrice
		}
	}

	rawTX, err := signer.SignTransaction(ctx, ec.chainID, txVersion, tx)
	if err != nil {
		log.L(ctx).Errorf("signing failed (addr=%s): %s", fromAddr, err)
		return nil, err
	}
	return rawTX, nil
}

func (ec *ethClient) SendRawTransaction(ctx context.Context, rawTX types.HexBytes) (*types.Bytes32, error) {
	var txHash types.Bytes32
	if rpcErr := ec.rpc.CallRPC(ctx, &txHash, "eth_sendRawTransaction", rawTX); rpcErr != nil {
		addr, decodedTX, err := ethsigner.RecoverRawTransaction(ctx, ethtypes.HexBytes0xPrefix(rawTX), ec.chainID)
		if err != nil {
			log.L(ctx).Errorf("Invalid transaction build during signing: %s", err)
		} else {
			log.L(ctx).Errorf("Rejected TX (from=%s, nonce=%+v)", addr, decodedTX.Nonce)
		}
		return nil, rpcErr
	}
	return &txHash, nil
}
