/*
 * Copyright (c) 2024 Yunshan Networks
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package pool

import (
	"bytes"
	"sync"
	"sync/atomic"
)

// 超过此大小的buffer不放回pool，避免单次大图长期占用内存
const MAX_POOLED_BUFFER_SIZE = 1 << 22

type Counter struct {
	Name         string
	InUseObjects int64
	Allocated    uint64
}

type BufferPool struct {
	pool    sync.Pool
	counter *Counter
}

func NewBufferPool(name string) *BufferPool {
	p := &BufferPool{counter: &Counter{Name: name}}
	p.pool.New = func() interface{} {
		atomic.AddUint64(&p.counter.Allocated, 1)
		return new(bytes.Buffer)
	}
	return p
}

func (p *BufferPool) Get() *bytes.Buffer {
	atomic.AddInt64(&p.counter.InUseObjects, 1)
	return p.pool.Get().(*bytes.Buffer)
}

func (p *BufferPool) Put(buf *bytes.Buffer) {
	atomic.AddInt64(&p.counter.InUseObjects, -1)
	if buf.Cap() > MAX_POOLED_BUFFER_SIZE {
		return
	}
	buf.Reset()
	p.pool.Put(buf)
}

func (p *BufferPool) InUse() int64 {
	return atomic.LoadInt64(&p.counter.InUseObjects)
}

func (p *BufferPool) Counter() Counter {
	return Counter{
		Name:         p.counter.Name,
		InUseObjects: atomic.LoadInt64(&p.counter.InUseObjects),
		Allocated:    atomic.LoadUint64(&p.counter.Allocated),
	}
}
