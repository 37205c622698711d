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
package cache

import (
	"sync/atomic"

	gocache "github.com/Code-Hex/go-generics-cache"
	"github.com/Code-Hex/go-generics-cache/policy/lru"
	"github.com/Confidential-Secret-Vault/app/pkg/confutil"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollconf"
)

// Cache is a bounded LRU for values that never change once observed,
// so entries are only ever evicted, never invalidated.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, val V)
	// GetOrLoad calls load on a miss. The loaded value is stored only when
	// load reports it as final.
	GetOrLoad(key K, load func() (val V, final bool, err error)) (V, error)
	Stats() Stats
}

type Stats struct {
	Capacity int    `json:"capacity"`
	Hits     uint64 `json:"hits"`
	Misses   uint64 `json:"misses"`
}

type lruCache[K comparable, V any] struct {
	lru      *gocache.Cache[K, V]
	capacity int
	hits     atomic.Uint64
	misses   atomic.Uint64
}

func NewCache[K comparable, V any](conf *payrollconf.CacheConfig, defs *payrollconf.CacheConfig) Cache[K, V] {
	capacity := confutil.IntMin(conf.Capacity, 1, *defs.Capacity)
	return &lruCache[K, V]{
		capacity: capacity,
		lru:      gocache.New(gocache.AsLRU[K, V](lru.WithCapacity(capacity))),
	}
}

func (c *lruCache[K, V]) Get(key K) (V, bool) {
	v, ok := c.lru.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

func (c *lruCache[K, V]) Set(key K, val V) {
	c.lru.Set(key, val)
}

func (c *lruCache[K, V]) GetOrLoad(key K, load func() (V, bool, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, final, err := load()
	if err == nil && final {
		c.Set(key, v)
	}
	return v, err
}

func (c *lruCache[K, V]) Stats() Stats {
	return Stats{
		Capacity: c.capacity,
		Hits:     c.hits.Load(),
		Misses:   c.misses.Load(),
	}
}
