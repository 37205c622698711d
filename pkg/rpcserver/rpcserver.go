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
	"net"
	"net/http"
	"sync"

	"github.com/Confidential-Secret-Vault/app/pkg/confutil"
	"github.com/Confidential-Secret-Vault/app/pkg/httpserver"
	"github.com/Confidential-Secret-Vault/app/pkg/log"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollconf"
	"github.com/Confidential-Secret-Vault/app/pkg/router"
	"github.com/gorilla/websocket"
)

// RPCServer is the JSON/RPC front door, listening on HTTP and WebSockets.
// Either listener can be disabled.
type RPCServer interface {
	Start() error
	Stop()
	HTTPAddr() net.Addr
	WSAddr() net.Addr

	Register(module *RPCModule)
}

type rpcServer struct {
	bgCtx         context.Context
	httpServer    router.Router
	wsServer      httpserver.Server
	wsMux         sync.Mutex
	wsUpgrader    *websocket.Upgrader
	wsConnections map[string]*webSocketConnection
	rpcModules    map[string]*RPCModule
}

var _ RPCServer = &rpcServer{}

func NewRPCServer(ctx context.Context, conf *payrollconf.RPCServerConfig) (*rpcServer, error) {
	s := &rpcServer{
		bgCtx:         ctx,
		wsConnections: make(map[string]*webSocketConnection),
		rpcModules:    make(map[string]*RPCModule),
	}
	s.Register(s.discoveryModule())

	if !conf.HTTP.Disabled {
		if err := s.initHTTP(&conf.HTTP); err != nil {
			return nil, err
		}
	}
	if !conf.WS.Disabled {
		if err := s.initWS(&conf.WS); err != nil {
			s.Stop()
			return nil, err
		}
	}
	return s, nil
}

func withDefaultPort(conf payrollconf.HTTPServerConfig, port int) *payrollconf.HTTPServerConfig {
	if conf.Port == nil {
		conf.Port = confutil.P(port)
	}
	return &conf
}

func (s *rpcServer) initHTTP(conf *payrollconf.RPCServerConfigHTTP) (err error) {
	s.httpServer, err = router.NewRouter(s.bgCtx, "JSON/RPC (HTTP)", withDefaultPort(conf.HTTPServerConfig, payrollconf.DefaultHTTPPort))
	if err == nil {
		s.httpServer.HandleFunc("/", s.httpHandler)
	}
	return err
}

func (s *rpcServer) initWS(conf *payrollconf.RPCServerConfigWS) (err error) {
	defs := payrollconf.WSDefaults
	s.wsUpgrader = &websocket.Upgrader{
		ReadBufferSize:  int(confutil.ByteSize(conf.ReadBufferSize, 0, *defs.ReadBufferSize)),
		WriteBufferSize: int(confutil.ByteSize(conf.WriteBufferSize, 0, *defs.WriteBufferSize)),
	}
	log.L(s.bgCtx).Infof("WebSocket buffers read=%d write=%d", s.wsUpgrader.ReadBufferSize, s.wsUpgrader.WriteBufferSize)
	s.wsServer, err = httpserver.NewServer(s.bgCtx, "JSON/RPC (WebSocket)", withDefaultPort(conf.HTTPServerConfig, payrollconf.DefaultWebSocketPort), http.HandlerFunc(s.wsHandler))
	return err
}

// Register must be called before Start
func (s *rpcServer) Register(module *RPCModule) {
	log.L(s.bgCtx).Debugf("RPC module %s registered: %v", module.Group(), module.MethodNames())
	s.rpcModules[module.Group()] = module
}

func (s *rpcServer) HTTPAddr() net.Addr {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Addr()
}

func (s *rpcServer) WSAddr() net.Addr {
	if s.wsServer == nil {
		return nil
	}
	return s.wsServer.Addr()
}

func (s *rpcServer) httpHandler(res http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		res.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	r := s.rpcHandler(req.Context(), req.Body)

	res.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.isOK {
		res.WriteHeader(http.StatusOK)
	} else {
		res.WriteHeader(http.StatusInternalServerError)
	}
	_ = json.NewEncoder(res).Encode(r.res)
}

func (s *rpcServer) wsHandler(res http.ResponseWriter, req *http.Request) {
	conn, err := s.wsUpgrader.Upgrade(res, req, nil)
	if err != nil {
		log.L(req.Context()).Errorf("WebSocket upgrade failed: %s", err)
		return
	}
	s.newWSConnection(conn)
}

func (s *rpcServer) Start() error {
	if s.httpServer != nil {
		if err := s.httpServer.Start(); err != nil {
			return err
		}
	}
	if s.wsServer != nil {
		return s.wsServer.Start()
	}
	return nil
}

// Stop shuts both listeners down in parallel, then closes any open WebSocket connections
func (s *rpcServer) Stop() {
	var stoppers []func()
	if s.httpServer != nil {
		stoppers = append(stoppers, s.httpServer.Stop)
	}
	if s.wsServer != nil {
		stoppers = append(stoppers, s.wsServer.Stop)
	}
	var wg sync.WaitGroup
	for _, stop := range stoppers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stop()
		}()
	}
	wg.Wait()
	for _, c := range s.connectionList() {
		c.close()
	}
}
