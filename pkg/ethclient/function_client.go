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
	"strconv"

	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/Confidential-Secret-Vault/app/pkg/types"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/abi"
	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// ABIClient binds a contract ABI to the client, for calls, transactions and
// decoding of the events in receipts
type ABIClient interface {
	ABI() abi.ABI
	Function(ctx context.Context, nameOrFullSig string) (ABIFunctionClient, error)
	MustFunction(nameOrFullSig string) ABIFunctionClient
	DecodeEvent(ctx context.Context, log *LogJSONRPC) (*DecodedEvent, error)
}

type ABIFunctionClient interface {
	ABIEntry() *abi.Entry
	R(ctx context.Context) ABIFunctionRequestBuilder
}

type ABIFunctionRequestBuilder interface {
	Signer(TXSigner) ABIFunctionRequestBuilder
	From(*types.EthAddress) ABIFunctionRequestBuilder
	To(*ethtypes.Address0xHex) ABIFunctionRequestBuilder
	// Input is a map of named params, a JSON object, or a positional []any
	Input(any) ABIFunctionRequestBuilder
	Output(any) ABIFunctionRequestBuilder

	TX() *ethsigner.Transaction
	BuildCallData() error
	Call() error
	CallJSON() ([]byte, error)
	SignAndSend() (*types.Bytes32, error)
}

// DecodedEvent is a log entry matched against an event in the ABI
type DecodedEvent struct {
	Name      string          `json:"name"`
	Signature string          `json:"signature"`
	Data      json.RawMessage `json:"data"`
}

type abiClient struct {
	ec        *ethClient
	abi       abi.ABI
	functions map[string]*abi.Entry
	events    map[string]*abi.Entry // by topic[0]
}

type abiFunctionClient struct {
	ec        *ethClient
	errABI    abi.ABI
	entry     *abi.Entry
	signature string
	selector  []byte
	inputs    abi.TypeComponent
	outputs   abi.TypeComponent
}

type abiFunctionRequest struct {
	*abiFunctionClient
	ctx    context.Context
	tx     ethsigner.Transaction
	signer TXSigner
	input  any
	output any
}

func (ec *ethClient) ABIJSON(ctx context.Context, abiJSON []byte) (ABIClient, error) {
	var a abi.ABI
	if err := json.Unmarshal(abiJSON, &a); err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgEthClientABIJson)
	}
	return ec.ABI(ctx, a)
}

func (ec *ethClient) MustABIJSON(abiJSON []byte) ABIClient {
	abic, err := ec.ABIJSON(context.Background(), abiJSON)
	if err != nil {
		panic(err)
	}
	return abic
}

// ABI indexes functions by name and by full signature. Unnamed outputs are
// named by position, so a result decodes to {"0": ..., "1": ...}.
func (ec *ethClient) ABI(ctx context.Context, a abi.ABI) (ABIClient, error) {
	abic := &abiClient{
		ec:        ec,
		abi:       a,
		functions: map[string]*abi.Entry{},
		events:    map[string]*abi.Entry{},
	}
	for _, e := range a {
		sig, err := e.SignatureCtx(ctx)
		if err != nil {
			return nil, err
		}
		switch {
		case e.IsFunction() && e.Name != "":
			for i, o := range e.Outputs {
				if o.Name == "" {
					o.Name = strconv.Itoa(i)
				}
			}
			abic.functions[e.Name] = e
			abic.functions[sig] = e
		case e.Type == abi.Event && !e.Anonymous:
			abic.events[ethtypes.HexBytes0xPrefix(e.SignatureHashBytes()).String()] = e
		}
	}
	return abic, nil
}

func (abic *abiClient) ABI() abi.ABI {
	return abic.abi
}

func (abic *abiClient) Function(ctx context.Context, nameOrFullSig string) (ABIFunctionClient, error) {
	entry := abic.functions[nameOrFullSig]
	if entry == nil {
		return nil, i18n.NewError(ctx, msgs.MsgEthClientFunctionNotFound, nameOrFullSig)
	}
	fc := &abiFunctionClient{ec: abic.ec, errABI: abic.abi, entry: entry}
	var err error
	if fc.selector, err = entry.GenerateFunctionSelectorCtx(ctx); err != nil {
		return nil, err
	}
	if fc.signature, err = entry.SignatureCtx(ctx); err != nil {
		return nil, err
	}
	if fc.inputs, err = entry.Inputs.TypeComponentTreeCtx(ctx); err != nil {
		return nil, err
	}
	if fc.outputs, err = entry.Outputs.TypeComponentTreeCtx(ctx); err != nil {
		return nil, err
	}
	return fc, nil
}

func (abic *abiClient) MustFunction(nameOrFullSig string) ABIFunctionClient {
	fc, err := abic.Function(context.Background(), nameOrFullSig)
	if err != nil {
		panic(err)
	}
	return fc
}

// DecodeEvent returns nil, with no error, for a log that matches no event in the ABI
func (abic *abiClient) DecodeEvent(ctx context.Context, log *LogJSONRPC) (*DecodedEvent, error) {
	if len(log.Topics) == 0 {
		return nil, nil
	}
	event := abic.events[log.Topics[0].String()]
	if event == nil {
		return nil, nil
	}
	sig, _ := event.SignatureCtx(ctx)
	cv, err := event.DecodeEventDataCtx(ctx, log.Topics, log.Data)
	var data []byte
	if err == nil {
		data, err = types.StandardABISerializer().SerializeJSONCtx(ctx, cv)
	}
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgEthClientEventDecodeFailed, sig, err)
	}
	return &DecodedEvent{Name: event.Name, Signature: sig, Data: data}, nil
}

func (fc *abiFunctionClient) ABIEntry() *abi.Entry {
	return fc.entry
}

func (fc *abiFunctionClient) R(ctx context.Context) ABIFunctionRequestBuilder {
	return &abiFunctionRequest{abiFunctionClient: fc, ctx: ctx}
}

func (r *abiFunctionRequest) Signer(signer TXSigner) ABIFunctionRequestBuilder {
	r.signer = signer
	return r
}

// From sets the sender of a call, which needs no signer
func (r *abiFunctionRequest) From(from *types.EthAddress) ABIFunctionRequestBuilder {
	if from != nil {
		r.tx.From = json.RawMessage(types.JSONString(from))
	}
	return r
}

func (r *abiFunctionRequest) To(to *ethtypes.Address0xHex) ABIFunctionRequestBuilder {
	r.tx.To = to
	return r
}

func (r *abiFunctionRequest) Input(input any) ABIFunctionRequestBuilder {
	r.input = input
	return r
}

func (r *abiFunctionRequest) Output(output any) ABIFunctionRequestBuilder {
	r.output = output
	return r
}

func (r *abiFunctionRequest) TX() *ethsigner.Transaction {
	return &r.tx
}

func (r *abiFunctionRequest) parseInput() (*abi.ComponentValue, error) {
	var named map[string]any
	var err error
	switch input := r.input.(type) {
	case *abi.ComponentValue:
		return input, nil
	case []any:
		return r.inputs.ParseExternalCtx(r.ctx, input)
	case map[string]any:
		named = input
	case string:
		err = json.Unmarshal([]byte(input), &named)
	case []byte:
		err = json.Unmarshal(input, &named)
	case types.RawJSON:
		err = json.Unmarshal(input, &named)
	default:
		var b []byte
		if b, err = json.Marshal(input); err == nil {
			err = json.Unmarshal(b, &named)
		}
	}
	if err != nil {
		return nil, err
	}
	return r.inputs.ParseExternalCtx(r.ctx, named)
}

// BuildCallData sets the transaction data to the selector followed by the ABI encoded input
func (r *abiFunctionRequest) BuildCallData() error {
	if r.tx.To == nil {
		return i18n.NewError(r.ctx, msgs.MsgEthClientMissingTo, r.signature)
	}
	var encoded []byte
	if len(r.entry.Inputs) > 0 {
		if r.input == nil {
			return i18n.NewError(r.ctx, msgs.MsgEthClientMissingInput, r.signature)
		}
		cv, err := r.parseInput()
		if err == nil {
			encoded, err = cv.EncodeABIDataCtx(r.ctx)
		}
		if err != nil {
			return i18n.WrapError(r.ctx, err, msgs.MsgEthClientInvalidInput, r.signature)
		}
	}
	r.tx.Data = append(append(make([]byte, 0, len(r.selector)+len(encoded)), r.selector...), encoded...)
	return nil
}

func (r *abiFunctionRequest) ensureCallData() error {
	if r.tx.Data != nil {
		return nil
	}
	return r.BuildCallData()
}

func (r *abiFunctionRequest) Call() error {
	if r.output == nil {
		return i18n.NewError(r.ctx, msgs.MsgEthClientMissingOutput, r.signature)
	}
	b, err := r.CallJSON()
	if err != nil {
		return err
	}
	return json.Unmarshal(b, r.output)
}

func (r *abiFunctionRequest) CallJSON() ([]byte, error) {
	if err := r.ensureCallData(); err != nil {
		return nil, err
	}
	if r.signer != nil && r.tx.From == nil {
		r.From(r.signer.Address())
	}
	res, err := r.ec.CallContract(r.ctx, &r.tx, string(LATEST), WithErrorsFrom(r.errABI), WithOutputs(r.outputs))
	if err != nil {
		return nil, err
	}
	b, err := types.StandardABISerializer().SerializeJSONCtx(r.ctx, res.DecodedResult)
	if err != nil {
		return nil, i18n.WrapError(r.ctx, err, msgs.MsgEthClientDecodeOutputFailed, r.signature)
	}
	return b, nil
}

// SignAndSend signs with the configured transaction version and submits via eth_sendRawTransaction
func (r *abiFunctionRequest) SignAndSend() (*types.Bytes32, error) {
	if err := r.ensureCallData(); err != nil {
		return nil, err
	}
	if r.signer == nil {
		return nil, i18n.NewError(r.ctx, msgs.MsgEthClientMissingSigner, r.signature)
	}
	rawTX, err := r.ec.BuildRawTransaction(r.ctx, r.ec.txVersion, r.signer, &r.tx, WithErrorsFrom(r.errABI))
	if err != nil {
		return nil, err
	}
	return r.ec.SendRawTransaction(r.ctx, rawTX)
}
