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
	"fmt"
	"testing"

	"github.com/Confidential-Secret-Vault/app/pkg/payrollapi"
	"github.com/Confidential-Secret-Vault/app/pkg/rpcclient"
	"github.com/Confidential-Secret-Vault/app/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequest(method string, params ...string) *rpcclient.RPCRequest {
	req := &rpcclient.RPCRequest{
		JSONRpc: "2.0",
		ID:      types.RawJSON(`42`),
		Method:  method,
		Params:  make([]types.RawJSON, len(params)),
	}
	for i, p := range params {
		req.Params[i] = types.RawJSON(p)
	}
	return req
}

func TestRPCMethodParams(t *testing.T) {
	ctx := context.Background()

	h0 := RPCMethod0(func(ctx context.Context) (uint64, error) { return 3, nil })
	res := h0.Handle(ctx, testRequest("payroll_total"))
	require.Nil(t, res.Error)
	assert.Equal(t, `3`, res.Result.String())
	assert.Equal(t, `42`, res.ID.String())

	h1 := RPCMethod1(func(ctx context.Context, id uint64) (uint64, error) { return id + 1, nil })
	res = h1.Handle(ctx, testRequest("payroll_next", `41`))
	require.Nil(t, res.Error)
	assert.Equal(t, `42`, res.Result.String())

	h2 := RPCMethod2(func(ctx context.Context, a string, b uint32) (string, error) {
		return fmt.Sprintf("%s:%d", a, b), nil
	})
	res = h2.Handle(ctx, testRequest("payroll_join", `"x"`, `5`))
	require.Nil(t, res.Error)
	assert.Equal(t, `"x:5"`, res.Result.String())

	h3 := RPCMethod3(func(ctx context.Context, a, b, c string) ([]string, error) {
		return []string{c, b, a}, nil
	})
	res = h3.Handle(ctx, testRequest("payroll_rev", `"a"`, `"b"`, `"c"`))
	require.Nil(t, res.Error)
	assert.JSONEq(t, `["c","b","a"]`, res.Result.String())
}

func TestRPCMethodBadParams(t *testing.T) {
	ctx := context.Background()
	called := false
	h1 := RPCMethod1(func(ctx context.Context, id uint64) (uint64, error) {
		called = true
		return id, nil
	})

	res := h1.Handle(ctx, testRequest("payroll_next"))
	assert.Regexp(t, "PY010303", res.Error.Message)
	assert.Equal(t, int64(rpcclient.RPCCodeInvalidParams), res.Error.Code)

	res = h1.Handle(ctx, testRequest("payroll_next", `"not a number"`))
	assert.Regexp(t, "PY010304", res.Error.Message)
	assert.False(t, called)
}

func TestRPCMethodResultSerializationFail(t *testing.T) {
	h0 := RPCMethod0(func(ctx context.Context) (map[bool]any, error) {
		return map[bool]any{false: func() {}}, nil
	})
	res := h0.Handle(context.Background(), testRequest("payroll_bad"))
	assert.Regexp(t, "PY010305", res.Error.Message)
	assert.Equal(t, int64(rpcclient.RPCCodeInternalError), res.Error.Code)
}

func TestRPCMethodFailureData(t *testing.T) {
	ctx := context.Background()

	h0 := RPCMethod0(func(ctx context.Context) (string, error) {
		return "", payrollapi.NewFailure(payrollapi.ReasonSelfPayment, fmt.Errorf("cannot pay yourself"))
	})
	res := h0.Handle(ctx, testRequest("payroll_send"))
	require.NotNil(t, res.Error)
	assert.Equal(t, "cannot pay yourself", res.Error.Message)
	assert.Equal(t, int64(rpcclient.RPCCodeInvalidParams), res.Error.Code)
	assert.JSONEq(t, `{"class":"ValidationError","reason":"SelfPayment"}`, res.Error.Data.String())

	h0 = RPCMethod0(func(ctx context.Context) (string, error) {
		return "", payrollapi.NewFailure(payrollapi.ReasonNetworkUnavailable, fmt.Errorf("pop"))
	})
	res = h0.Handle(ctx, testRequest("payroll_send"))
	assert.Equal(t, int64(rpcclient.RPCCodeInternalError), res.Error.Code)
	assert.JSONEq(t, `{"class":"LedgerNetworkError","reason":"NetworkUnavailable"}`, res.Error.Data.String())

	h0 = RPCMethod0(func(ctx context.Context) (string, error) {
		return "", fmt.Errorf("unclassified")
	})
	res = h0.Handle(ctx, testRequest("payroll_send"))
	assert.Equal(t, int64(rpcclient.RPCCodeInternalError), res.Error.Code)
	assert.Nil(t, res.Error.Data)
}
