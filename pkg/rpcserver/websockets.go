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
	"bytes"
	"context"
	"encoding/json"
	"sync"

	"github.com/Confidential-Secret-Vault/app/pkg/log"
	"github.com/Confidential-Secret-Vault/app/pkg/types"
	"github.com/gorilla/websocket"
)

// webSocketConnection has one reader goroutine and one writer goroutine.
// Requests are handled concurrently, so responses may arrive out of order
// and callers match them by ID.
type webSocketConnection struct {
	ctx       context.Context
	cancelCtx context.CancelFunc
	server    *rpcServer
	id        string
	conn      *websocket.Conn
	send      chan []byte
	closeOnce sync.Once
}

func (s *rpcServer) newWSConnection(conn *websocket.Conn) {
	c := &webSocketConnection{
		id:     types.ShortID(),
		server: s,
		conn:   conn,
		send:   make(chan []byte),
	}
	c.ctx, c.cancelCtx = context.WithCancel(log.WithLogField(s.bgCtx, "wsconn", c.id))

	s.wsMux.Lock()
	s.wsConnections[c.id] = c
	s.wsMux.Unlock()

	go c.reader()
	go c.writer()
}

func (s *rpcServer) connectionList() []*webSocketConnection {
	s.wsMux.Lock()
	defer s.wsMux.Unlock()
	conns := make([]*webSocketConnection, 0, len(s.wsConnections))
	for _, c := range s.wsConnections {
		conns = append(conns, c)
	}
	return conns
}

func (c *webSocketConnection) close() {
	c.closeOnce.Do(func() {
		c.cancelCtx()
		_ = c.conn.Close()

		c.server.wsMux.Lock()
		delete(c.server.wsConnections, c.id)
		c.server.wsMux.Unlock()

		log.L(c.ctx).Infof("WS disconnected")
	})
}

func (c *webSocketConnection) reader() {
	defer c.close()
	log.L(c.ctx).Infof("WS connected")
	for {
		_, b, err := c.conn.ReadMessage()
		if err != nil {
			log.L(c.ctx).Errorf("WS read failed: %s", err)
			return
		}
		log.L(c.ctx).Tracef("Received: %s", b)
		// a slow workflow must not hold up the requests behind it
		go c.handleMessage(b)
	}
}

func (c *webSocketConnection) writer() {
	defer c.close()
	for {
		select {
		case payload := <-c.send:
			log.L(c.ctx).Tracef("Sending: %s", payload)
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				log.L(c.ctx).Errorf("WS send failed: %s", err)
				return
			}
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *webSocketConnection) handleMessage(payload []byte) {
	r := c.server.rpcHandler(c.ctx, bytes.NewReader(payload))
	if !r.sendRes {
		return
	}
	b, err := json.Marshal(r.res)
	if err != nil {
		log.L(c.ctx).Errorf("Failed to serialize JSON/RPC response: %s", err)
		c.close()
		return
	}
	select {
	case c.send <- b:
	case <-c.ctx.Done():
	}
}
