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
package router

import (
	"context"
	"net/http"

	"github.com/Confidential-Secret-Vault/app/pkg/httpserver"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollconf"
	"github.com/gorilla/mux"
)

// Router is an httpserver.Server that dispatches by path through gorilla/mux
type Router interface {
	httpserver.Server
	// HandleFunc matches the exact path, restricted to methods when any are given
	HandleFunc(path string, f http.HandlerFunc, methods ...string)
	PathPrefixHandleFunc(prefix string, f http.HandlerFunc)
}

type router struct {
	httpserver.Server
	mux *mux.Router
}

var _ Router = &router{}

func NewRouter(ctx context.Context, description string, conf *payrollconf.HTTPServerConfig) (*router, error) {
	m := mux.NewRouter()
	server, err := httpserver.NewServer(ctx, description, conf, m)
	if err != nil {
		return nil, err
	}
	return &router{Server: server, mux: m}, nil
}

func (r *router) HandleFunc(path string, f http.HandlerFunc, methods ...string) {
	route := r.mux.HandleFunc(path, f)
	if len(methods) > 0 {
		route.Methods(methods...)
	}
}

func (r *router) PathPrefixHandleFunc(prefix string, f http.HandlerFunc) {
	r.mux.PathPrefix(prefix).HandlerFunc(f)
}
