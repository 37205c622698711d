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
	"io"
	"sync"
	"time"
	"unicode"

	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/Confidential-Secret-Vault/app/pkg/log"
	"github.com/Confidential-Secret-Vault/app/pkg/rpcclient"
	"github.com/Confidential-Secret-Vault/app/pkg/types"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

// how far into a payload to look for the '[' that marks a batch
const sniffLimit = 100

type handlerResult struct {
	sendRes bool
	isOK    bool
	res     any
}

// rpcHandler is shared by both transports, and accepts a single request or a batch
func (s *rpcServer) rpcHandler(ctx context.Context, r io.Reader) handlerResult {
	b, err := io.ReadAll(r)
	if err != nil {
		return s.replyRPCParseError(ctx, b, err)
	}
	if log.IsTraceEnabled() {
		log.L(ctx).Tracef("RPC[Server] --> %s", b)
	}

	if s.sniffFirstByte(b) == '[' {
		var batch []*rpcclient.RPCRequest
		if err := json.Unmarshal(b, &batch); err != nil || len(batch) == 0 {
			return s.replyRPCParseError(ctx, b, err)
		}
		responses, isOK := s.handleRPCBatch(ctx, batch)
		return handlerResult{isOK: isOK, sendRes: true, res: responses}
	}

	var req rpcclient.RPCRequest
	if err := json.Unmarshal(b, &req); err != nil {
		return s.replyRPCParseError(ctx, b, err)
	}
	res, isOK := s.processTimed(ctx, -1, &req)
	return handlerResult{isOK: isOK, sendRes: res != nil, res: res}
}

// batchIdx is -1 outside of a batch
func (s *rpcServer) processTimed(ctx context.Context, batchIdx int, req *rpcclient.RPCRequest) (*rpcclient.RPCResponse, bool) {
	l := log.L(ctx)
	if batchIdx >= 0 {
		l = l.WithField("b", batchIdx)
	}
	start := time.Now()
	l.Debugf("RPC-server[%s] --> %s", req.ID, req.Method)
	res, isOK := s.processRPC(ctx, req)
	elapsed := float64(time.Since(start)) / float64(time.Millisecond)
	if res != nil && res.Error != nil {
		l.Errorf("RPC-server[%s] <-- %s [%.2fms]: %s", req.ID, req.Method, elapsed, res.Error.Message)
	} else {
		l.Debugf("RPC-server[%s] <-- %s [%.2fms]", req.ID, req.Method, elapsed)
	}
	if log.IsTraceEnabled() {
		l.Tracef("RPC-server[%s] <-- %s", req.ID, types.JSONString(res))
	}
	return res, isOK
}

func (s *rpcServer) replyRPCParseError(ctx context.Context, b []byte, err error) handlerResult {
	log.L(ctx).Errorf("Request could not be parsed (err=%v): %s", err, b)
	return handlerResult{
		sendRes: true,
		res: rpcclient.RPCErrorResponse(
			i18n.NewError(ctx, msgs.MsgJSONRPCInvalidRequest),
			types.RawJSON(`"1"`),
			rpcclient.RPCCodeInvalidRequest,
		),
	}
}

func (s *rpcServer) sniffFirstByte(data []byte) byte {
	for _, b := range data[:min(len(data), sniffLimit)] {
		if !unicode.IsSpace(rune(b)) {
			return b
		}
	}
	return 0x00
}

// handleRPCBatch runs every request in parallel. The batch only counts as
// failed when no request in it succeeded.
func (s *rpcServer) handleRPCBatch(ctx context.Context, batch []*rpcclient.RPCRequest) ([]*rpcclient.RPCResponse, bool) {
	responses := make([]*rpcclient.RPCResponse, len(batch))
	oks := make([]bool, len(batch))
	var wg sync.WaitGroup
	for i, req := range batch {
		wg.Add(1)
		go func() {
			defer wg.Done()
			responses[i], oks[i] = s.processTimed(ctx, i, req)
		}()
	}
	wg.Wait()
	for _, ok := range oks {
		if ok {
			return responses, true
		}
	}
	return responses, false
}
