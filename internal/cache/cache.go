// Copyright © 2024 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cache

import (
	cacheimpl "github.com/Code-Hex/go-generics-cache"
	"github.com/Code-Hex/go-generics-cache/policy/lru"
	"github.com/kaleido-io/ledgerclient/internal/confutil"
	"github.com/kaleido-io/ledgerclient/pkg/ldconf"
)

// Cache is a bounded, thread safe LRU
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, val V)
}

type cache[K comparable, V any] struct {
	lru *cacheimpl.Cache[K, V]
}

func NewCache[K comparable, V any](conf *ldconf.CacheConfig, defs *ldconf.CacheConfig) Cache[K, V] {
	return &cache[K, V]{
		lru: cacheimpl.New[K, V](cacheimpl.AsLRU[K, V](
			lru.WithCapacity(confutil.IntMin(conf.Capacity, 1, *defs.Capacity)),
		)),
	}
}

func (c *cache[K, V]) Get(key K) (V, bool) {
	return c.lru.Get(key)
}

func (c *cache[K, V]) Set(key K, val V) {
	c.lru.Set(key, val)
}
