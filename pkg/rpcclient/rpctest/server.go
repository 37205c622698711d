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

// Package rpctest provides an in-process JSON/RPC server for unit tests
package rpctest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/Confidential-Secret-Vault/app/pkg/rpcclient"
	"github.com/Confidential-Secret-Vault/app/pkg/types"
	"github.com/stretchr/testify/assert"
)

type Handler func(req *rpcclient.RPCRequest) (status int, res *rpcclient.RPCResponse)

type Method struct {
	Name    string
	Handler Handler
}

type Server struct {
	URL    string
	server *httptest.Server
	lock   sync.Mutex
	calls  map[string]int
}

func NewServerHTTP(t *testing.T, methods ...Method) *Server {
	s := &Server{calls: map[string]int{}}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var rpcReq *rpcclient.RPCRequest
		err := json.NewDecoder(r.Body).Decode(&rpcReq)
		assert.NoError(t, err)

		s.lock.Lock()
		s.calls[rpcReq.Method]++
		s.lock.Unlock()

		var status int
		var rpcRes *rpcclient.RPCResponse
		for _, method := range methods {
			if method.Name == rpcReq.Method {
				status, rpcRes = method.Handler(rpcReq)
				break
			}
		}
		if rpcRes == nil {
			status, rpcRes = Error(rpcclient.RPCCodeMethodNotFound, fmt.Sprintf("method not supported: %s", rpcReq.Method))(rpcReq)
		}
		rpcRes.ID = rpcReq.ID

		b, err := json.Marshal(rpcRes)
		assert.NoError(t, err)
		w.Header().Add("Content-Type", "application/json")
		w.Header().Add("Content-Length", strconv.Itoa(len(b)))
		w.WriteHeader(status)
		_, _ = w.Write(b)
	}))
	s.URL = s.server.URL
	return s
}

func (s *Server) Close() {
	s.server.Close()
}

func (s *Server) Calls(method string) int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.calls[method]
}

// Result returns a handler that always succeeds with the supplied result
func Result(result any) Handler {
	return func(req *rpcclient.RPCRequest) (int, *rpcclient.RPCResponse) {
		return http.StatusOK, &rpcclient.RPCResponse{
			JSONRpc: "2.0",
			Result:  types.JSONString(result),
		}
	}
}

// Error returns a handler that always fails with a JSON/RPC error
func Error(code rpcclient.RPCCode, message string, data ...any) Handler {
	return func(req *rpcclient.RPCRequest) (int, *rpcclient.RPCResponse) {
		rpcErr := &rpcclient.RPCError{Code: int64(code), Message: message}
		if len(data) > 0 {
			rpcErr.Data = types.JSONString(data[0])
		}
		return http.StatusOK, &rpcclient.RPCResponse{
			JSONRpc: "2.0",
			Error:   rpcErr,
		}
	}
}
