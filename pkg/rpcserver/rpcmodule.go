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
	"slices"
	"strings"
)

// RPCModule is a group of methods that all share the "<group>_" prefix
type RPCModule struct {
	group   string
	methods map[string]RPCHandler
}

func NewRPCModule(group string) *RPCModule {
	return &RPCModule{
		group:   strings.TrimSuffix(group, "_"),
		methods: map[string]RPCHandler{},
	}
}

func (m *RPCModule) Group() string {
	return m.group
}

// Add panics on a misnamed or duplicate method, as both are programming errors
func (m *RPCModule) Add(method string, handler RPCHandler) *RPCModule {
	if groupOf(method) != m.group || len(method) == len(m.group)+1 {
		panic(fmt.Sprintf("method %s does not belong to module %s", method, m.group))
	}
	if _, dup := m.methods[method]; dup {
		panic(fmt.Sprintf("duplicate method: %s", method))
	}
	m.methods[method] = handler
	return m
}

func (m *RPCModule) MethodNames() []string {
	names := make([]string, 0, len(m.methods))
	for n := range m.methods {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

func groupOf(method string) string {
	group, _, _ := strings.Cut(method, "_")
	return group
}

func (s *rpcServer) lookup(method string) RPCHandler {
	if module := s.rpcModules[groupOf(method)]; module != nil {
		return module.methods[method]
	}
	return nil
}

// rpc_modules lists every registered method, grouped by module
func (s *rpcServer) discoveryModule() *RPCModule {
	return NewRPCModule("rpc").
		Add("rpc_modules", RPCMethod0(func(ctx context.Context) (map[string][]string, error) {
			modules := make(map[string][]string, len(s.rpcModules))
			for group, m := range s.rpcModules {
				modules[group] = m.MethodNames()
			}
			return modules, nil
		}))
}
