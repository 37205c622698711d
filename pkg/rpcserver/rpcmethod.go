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
package rpcserver

import (
	"context"
	"encoding/json"

	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollapi"
	"github.com/Confidential-Secret-Vault/app/pkg/rpcclient"
	"github.com/Confidential-Secret-Vault/app/pkg/types"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

// RPCHandler is normally built with one of RPCMethod0 ... RPCMethod3, which
// decode positional params into typed Go values
type RPCHandler interface {
	Handle(ctx context.Context, req *rpcclient.RPCRequest) *rpcclient.RPCResponse
}

type HandlerFunc func(ctx context.Context, req *rpcclient.RPCRequest) *rpcclient.RPCResponse

func (hf HandlerFunc) Handle(ctx context.Context, req *rpcclient.RPCRequest) *rpcclient.RPCResponse {
	return hf(ctx, req)
}

func RPCMethod0[R any](impl func(ctx context.Context) (R, error)) RPCHandler {
	return HandlerFunc(func(ctx context.Context, req *rpcclient.RPCRequest) *rpcclient.RPCResponse {
		return invoke(ctx, req, nil, func() (R, error) { return impl(ctx) })
	})
}

func RPCMethod1[R, P0 any](impl func(ctx context.Context, p0 P0) (R, error)) RPCHandler {
	return HandlerFunc(func(ctx context.Context, req *rpcclient.RPCRequest) *rpcclient.RPCResponse {
		var p0 P0
		return invoke(ctx, req, []any{&p0}, func() (R, error) { return impl(ctx, p0) })
	})
}

func RPCMethod2[R, P0, P1 any](impl func(ctx context.Context, p0 P0, p1 P1) (R, error)) RPCHandler {
	return HandlerFunc(func(ctx context.Context, req *rpcclient.RPCRequest) *rpcclient.RPCResponse {
		var p0 P0
		var p1 P1
		return invoke(ctx, req, []any{&p0, &p1}, func() (R, error) { return impl(ctx, p0, p1) })
	})
}

func RPCMethod3[R, P0, P1, P2 any](impl func(ctx context.Context, p0 P0, p1 P1, p2 P2) (R, error)) RPCHandler {
	return HandlerFunc(func(ctx context.Context, req *rpcclient.RPCRequest) *rpcclient.RPCResponse {
		var p0 P0
		var p1 P1
		var p2 P2
		return invoke(ctx, req, []any{&p0, &p1, &p2}, func() (R, error) { return impl(ctx, p0, p1, p2) })
	})
}

// invoke decodes the params into the targets, then runs call, which reads them
func invoke[R any](ctx context.Context, req *rpcclient.RPCRequest, targets []any, call func() (R, error)) *rpcclient.RPCResponse {
	if err := decodeParams(ctx, req, targets); err != nil {
		return rpcclient.RPCErrorResponse(err, req.ID, rpcclient.RPCCodeInvalidParams)
	}
	result, err := call()
	if err != nil {
		return failureResponse(req, err)
	}
	b, err := json.Marshal(result)
	if err != nil {
		err = i18n.NewError(ctx, msgs.MsgJSONRPCResultSerialization, req.Method, err)
		return rpcclient.RPCErrorResponse(err, req.ID, rpcclient.RPCCodeInternalError)
	}
	return &rpcclient.RPCResponse{
		JSONRpc: "2.0",
		ID:      req.ID,
		Result:  types.RawJSON(b),
	}
}

func decodeParams(ctx context.Context, req *rpcclient.RPCRequest, targets []any) error {
	if len(req.Params) != len(targets) {
		return i18n.NewError(ctx, msgs.MsgJSONRPCIncorrectParamCount, req.Method, len(targets), len(req.Params))
	}
	for i, target := range targets {
		if err := json.Unmarshal(req.Params[i].Bytes(), target); err != nil {
			return i18n.NewError(ctx, msgs.MsgJSONRPCInvalidParam, req.Method, i, err)
		}
	}
	return nil
}

// failureResponse puts the class and reason of a classified failure in the
// error data, so remote callers can branch on them like in-process callers do
func failureResponse(req *rpcclient.RPCRequest, err error) *rpcclient.RPCResponse {
	failure, ok := payrollapi.AsFailure(err)
	if !ok {
		return rpcclient.RPCErrorResponse(err, req.ID, rpcclient.RPCCodeInternalError)
	}
	code := rpcclient.RPCCodeInternalError
	if failure.Class == payrollapi.ClassValidation {
		code = rpcclient.RPCCodeInvalidParams
	}
	res := rpcclient.RPCErrorResponse(err, req.ID, code)
	res.Error.Data = types.JSONString(failure)
	return res
}
