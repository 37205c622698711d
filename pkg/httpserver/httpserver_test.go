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

package httpserver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Confidential-Secret-Vault/app/pkg/confutil"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollconf"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, conf *payrollconf.HTTPServerConfig, handler http.HandlerFunc) (string, *httpServer, func()) {

	conf.Address = confutil.P("127.0.0.1")
	conf.Port = confutil.P(0)
	s, err := NewServer(context.Background(), "unittest", conf, handler)
	require.NoError(t, err)
	hs := s.(*httpServer)
	err = s.Start()
	require.NoError(t, err)

	return fmt.Sprintf("http://%s", s.Addr()), hs, s.Stop

}

func TestMissingPort(t *testing.T) {
	_, err := NewServer(context.Background(), "unittest", &payrollconf.HTTPServerConfig{}, nil)
	assert.Regexp(t, "PY010308", err)
}

func TestBadAddress(t *testing.T) {
	_, err := NewServer(context.Background(), "unittest", &payrollconf.HTTPServerConfig{
		Port:    confutil.P(0),
		Address: confutil.P(":::::badness"),
	}, nil)
	assert.Regexp(t, "PY010307", err)
}

func TestServeOK(t *testing.T) {
	url, _, done := newTestServer(t, &payrollconf.HTTPServerConfig{}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.Method, http.MethodPost)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_, err := w.Write(([]byte)(`{"paymentIds":[7]}`))
		require.NoError(t, err)
	})
	defer done()

	req, err := http.NewRequest(http.MethodPost, url, nil)
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, res.StatusCode)
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"paymentIds":[7]}`, (string)(data))
}

func TestForceShutdown(t *testing.T) {
	requestStarted := make(chan struct{})
	url, _, done := newTestServer(t, &payrollconf.HTTPServerConfig{
		ShutdownTimeout: confutil.P("1ns"),
	}, func(w http.ResponseWriter, r *http.Request) {
		close(requestStarted)
		<-r.Context().Done()
	})

	req, err := http.NewRequest(http.MethodPost, url, nil)
	require.NoError(t, err)

	returned := make(chan error)
	go func() {
		_, err := http.DefaultClient.Do(req)
		returned <- err
	}()
	<-requestStarted

	done()
	assert.Regexp(t, "EOF", <-returned)
}

func TestStopNotStarted(t *testing.T) {
	s, err := NewServer(context.Background(), "unittest", &payrollconf.HTTPServerConfig{
		Address: confutil.P("127.0.0.1"),
		Port:    confutil.P(0),
	}, http.NotFoundHandler())
	require.NoError(t, err)
	s.Stop()
}

func TestServeCustomTimeout(t *testing.T) {
	url, _, done := newTestServer(t, &payrollconf.HTTPServerConfig{}, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		w.WriteHeader(http.StatusRequestTimeout)
	})
	defer done()

	req, err := http.NewRequest(http.MethodPost, url, nil)
	require.NoError(t, err)
	req.Header.Set("Request-Timeout", "1ns")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusRequestTimeout, res.StatusCode)
}

func TestParseCustomTimeout(t *testing.T) {
	url, _, done := newTestServer(t, &payrollconf.HTTPServerConfig{}, func(w http.ResponseWriter, r *http.Request) {})
	defer done()

	req, err := http.NewRequest(http.MethodPost, url, nil)
	require.NoError(t, err)

	rt := requestTimeouts{def: 10 * time.Second, max: 20 * time.Second}
	assert.Equal(t, 10*time.Second, rt.forRequest(req))

	req.Header.Set("Request-Timeout", "1")
	assert.Equal(t, 1*time.Second, rt.forRequest(req))

	req.Header.Set("Request-Timeout", "1ms")
	assert.Equal(t, 1*time.Millisecond, rt.forRequest(req))

	req.Header.Set("Request-Timeout", "30")
	assert.Equal(t, 20*time.Second, rt.forRequest(req))

	req.Header.Set("Request-Timeout", "wrongness")
	assert.Equal(t, 10*time.Second, rt.forRequest(req))
}

type mockResponseWriter struct{}

func (*mockResponseWriter) Header() http.Header { return nil }

func (*mockResponseWriter) Write(data []byte) (int, error) { return -1, nil }

func (*mockResponseWriter) WriteHeader(statusCode int) {}

func TestStatusRecorderBadWSResponseWriter(t *testing.T) {
	_, _, err := (&statusRecorder{ResponseWriter: &mockResponseWriter{}}).Hijack()
	assert.Regexp(t, "PY010309", err)
}

func TestWSUpgradeSupported(t *testing.T) {
	url, _, done := newTestServer(t, &payrollconf.HTTPServerConfig{}, func(w http.ResponseWriter, r *http.Request) {
		wsUpgrader := websocket.Upgrader{}
		_, err := wsUpgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
	})
	defer done()

	c, _, err := websocket.DefaultDialer.Dial(strings.Replace(url, "http", "ws", 1), http.Header{})
	require.NoError(t, err)
	_ = c.Close()
}
