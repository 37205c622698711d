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
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/Confidential-Secret-Vault/app/pkg/confutil"
	"github.com/Confidential-Secret-Vault/app/pkg/log"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollconf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTraceForTest(t *testing.T) {
	log.EnsureInit()
	l := log.GetLevel()
	log.SetLevel("trace")
	t.Cleanup(func() {
		log.SetLevel(l)
	})
}

func newTestServerHTTP(t *testing.T, conf *payrollconf.RPCServerConfig) (string, *rpcServer, func()) {
	setTraceForTest(t)

	conf.HTTP.Address = confutil.P("127.0.0.1")
	conf.HTTP.Port = confutil.P(0)
	conf.WS.Disabled = true
	s, err := NewRPCServer(context.Background(), conf)
	require.NoError(t, err)
	err = s.Start()
	require.NoError(t, err)
	return fmt.Sprintf("http://%s", s.HTTPAddr()), s, s.Stop

}

func newTestServerWebSockets(t *testing.T, conf *payrollconf.RPCServerConfig) (string, *rpcServer, func()) {

	conf.WS.Address = confutil.P("127.0.0.1")
	conf.WS.Port = confutil.P(0)
	conf.HTTP.Disabled = true
	s, err := NewRPCServer(context.Background(), conf)
	require.NoError(t, err)
	err = s.Start()
	require.NoError(t, err)
	return fmt.Sprintf("ws://%s", s.WSAddr()), s, s.Stop

}

func regTestRPC(s *rpcServer, method string, handler RPCHandler) {
	group := strings.SplitN(method, "_", 2)[0]
	module := s.rpcModules[group]
	if module == nil {
		module = NewRPCModule(group)
		s.Register(module)
	}
	module.Add(method, handler)
}

func postRPC(t *testing.T, url, body string) (int, string) {
	res, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, string(b)
}

func TestBadHTTPConfig(t *testing.T) {

	_, err := NewRPCServer(context.Background(), &payrollconf.RPCServerConfig{
		HTTP: payrollconf.RPCServerConfigHTTP{
			HTTPServerConfig: payrollconf.HTTPServerConfig{
				Address: confutil.P("::::::wrong"),
			},
		},
		WS: payrollconf.RPCServerConfigWS{Disabled: true},
	})
	assert.Regexp(t, "PY010307", err)

}

func TestBadWSConfig(t *testing.T) {

	_, err := NewRPCServer(context.Background(), &payrollconf.RPCServerConfig{
		WS: payrollconf.RPCServerConfigWS{
			HTTPServerConfig: payrollconf.HTTPServerConfig{
				Address: confutil.P("::::::wrong"),
			},
		},
		HTTP: payrollconf.RPCServerConfigHTTP{Disabled: true},
	})
	assert.Regexp(t, "PY010307", err)

}

func TestBothDisabled(t *testing.T) {
	s, err := NewRPCServer(context.Background(), &payrollconf.RPCServerConfig{
		HTTP: payrollconf.RPCServerConfigHTTP{Disabled: true},
		WS:   payrollconf.RPCServerConfigWS{Disabled: true},
	})
	require.NoError(t, err)
	require.NoError(t, s.Start())
	assert.Nil(t, s.HTTPAddr())
	assert.Nil(t, s.WSAddr())
	s.Stop()
}

func TestBadHTTPMethod(t *testing.T) {

	url, _, done := newTestServerHTTP(t, &payrollconf.RPCServerConfig{})
	defer done()

	res, err := http.DefaultClient.Get(url)
	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)

}

func TestBadWSUpgrade(t *testing.T) {

	_, s, done := newTestServerWebSockets(t, &payrollconf.RPCServerConfig{})
	defer done()

	res, err := http.DefaultClient.Get(fmt.Sprintf("http://%s", s.WSAddr()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

}

func TestHTTPUnparsableRequest(t *testing.T) {

	url, _, done := newTestServerHTTP(t, &payrollconf.RPCServerConfig{})
	defer done()

	status, body := postRPC(t, url, `{!!! not JSON`)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Regexp(t, "PY010300", body)

	status, body = postRPC(t, url, `[]`)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Regexp(t, "PY010300", body)

}

func TestHTTPMissingID(t *testing.T) {

	url, _, done := newTestServerHTTP(t, &payrollconf.RPCServerConfig{})
	defer done()

	status, body := postRPC(t, url, `{"jsonrpc":"2.0","method":"payroll_stats"}`)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Regexp(t, "PY010301", body)

}

func TestHTTPUnknownMethod(t *testing.T) {

	url, s, done := newTestServerHTTP(t, &payrollconf.RPCServerConfig{})
	defer done()
	regTestRPC(s, "payroll_stats", RPCMethod0(func(ctx context.Context) (string, error) {
		return "ok", nil
	}))

	for _, method := range []string{"payroll_unknown", "other_stats", "nounderscore"} {
		status, body := postRPC(t, url, fmt.Sprintf(`{"jsonrpc":"2.0","id":1,"method":"%s"}`, method))
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Regexp(t, "PY010302.*"+method, body)
		assert.Contains(t, body, `"code":-32601`)
	}

}

func TestHTTPBatchPartialFailure(t *testing.T) {

	url, s, done := newTestServerHTTP(t, &payrollconf.RPCServerConfig{})
	defer done()
	regTestRPC(s, "payroll_echo", RPCMethod1(func(ctx context.Context, s string) (string, error) {
		return s, nil
	}))

	status, body := postRPC(t, url, `[
		{"jsonrpc":"2.0","id":1,"method":"payroll_echo","params":["a"]},
		{"jsonrpc":"2.0","id":2,"method":"payroll_missing"}
	]`)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"result":"a"`)
	assert.Regexp(t, "PY010302", body)

	status, body = postRPC(t, url, `[{"jsonrpc":"2.0","id":2,"method":"payroll_missing"}]`)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Regexp(t, "PY010302", body)

}

func TestSniffFirstByte(t *testing.T) {
	s := &rpcServer{}
	assert.Equal(t, byte('['), s.sniffFirstByte([]byte("  \n\t[ {}]")))
	assert.Equal(t, byte(0x00), s.sniffFirstByte([]byte("   ")))
	assert.Equal(t, byte(0x00), s.sniffFirstByte([]byte(strings.Repeat(" ", 200)+"[")))
}

func TestModuleAddPanics(t *testing.T) {
	m := NewRPCModule("payroll")
	h := RPCMethod0(func(ctx context.Context) (string, error) { return "", nil })
	m.Add("payroll_stats", h)
	assert.Panics(t, func() { m.Add("payroll_stats", h) })
	assert.Panics(t, func() { m.Add("other_stats", h) })
	assert.Panics(t, func() { m.Add("payroll_", h) })
	assert.Equal(t, "payroll", NewRPCModule("payroll_").Group())
	assert.Equal(t, []string{"payroll_stats"}, m.MethodNames())
}

func TestHTTPDiscoverModules(t *testing.T) {

	url, s, done := newTestServerHTTP(t, &payrollconf.RPCServerConfig{})
	defer done()

	regTestRPC(s, "payroll_stats", RPCMethod0(func(ctx context.Context) (string, error) { return "", nil }))
	regTestRPC(s, "payroll_connection", RPCMethod0(func(ctx context.Context) (string, error) { return "", nil }))

	status, body := postRPC(t, url, `{"jsonrpc":"2.0","id":1,"method":"rpc_modules"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":1,"result":{
		"payroll": ["payroll_connection","payroll_stats"],
		"rpc": ["rpc_modules"]
	}}`, body)

}
