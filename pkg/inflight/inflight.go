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

package inflight

import (
	"context"
	"sync"
	"time"

	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

// InflightManager tracks in-progress requests by key, so that a caller asking for
// the same key while a request is outstanding can join it rather than repeat it.
type InflightManager[K comparable, T any] struct {
	lock     sync.Mutex
	requests map[K]*InflightRequest[K, T]
}

type InflightRequest[K comparable, T any] struct {
	ifm     *InflightManager[K, T]
	id      K
	queued  time.Time
	done    chan struct{}
	once    sync.Once
	result  T
	err     error
	joiners int
}

func NewInflightManager[K comparable, T any]() *InflightManager[K, T] {
	return &InflightManager[K, T]{
		requests: make(map[K]*InflightRequest[K, T]),
	}
}

// AddOrJoin returns the outstanding request for the key if there is one (joined=true),
// or registers a new one that the caller is then responsible for completing.
func (ifm *InflightManager[K, T]) AddOrJoin(id K) (req *InflightRequest[K, T], joined bool) {
	ifm.lock.Lock()
	defer ifm.lock.Unlock()
	if existing := ifm.requests[id]; existing != nil {
		existing.joiners++
		return existing, true
	}
	req = &InflightRequest[K, T]{
		ifm:    ifm,
		id:     id,
		queued: time.Now(),
		done:   make(chan struct{}),
	}
	ifm.requests[id] = req
	return req, false
}

func (ifm *InflightManager[K, T]) GetInflight(id K) *InflightRequest[K, T] {
	ifm.lock.Lock()
	defer ifm.lock.Unlock()
	return ifm.requests[id]
}

func (ifm *InflightManager[K, T]) Count() int {
	ifm.lock.Lock()
	defer ifm.lock.Unlock()
	return len(ifm.requests)
}

func (req *InflightRequest[K, T]) ID() K {
	return req.id
}

func (req *InflightRequest[K, T]) Joiners() int {
	req.ifm.lock.Lock()
	defer req.ifm.lock.Unlock()
	return req.joiners
}

// Complete can only happen once; later calls are ignored
func (req *InflightRequest[K, T]) Complete(v T, err error) {
	req.once.Do(func() {
		req.ifm.lock.Lock()
		if req.ifm.requests[req.id] == req {
			delete(req.ifm.requests, req.id)
		}
		req.ifm.lock.Unlock()
		req.result = v
		req.err = err
		close(req.done)
	})
}

func (req *InflightRequest[K, T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-ctx.Done():
		return *new(T), i18n.NewError(ctx, msgs.MsgInflightRequestCancelled, time.Since(req.queued))
	case <-req.done:
		return req.result, req.err
	}
}
