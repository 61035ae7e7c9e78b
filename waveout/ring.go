// SPDX-License-Identifier: EPL-2.0

package waveout

import (
	"context"
	"sync/atomic"
)

const (
	ringMask = 3

	// RingSize is the number of buffers that can be in flight at once.
	RingSize = ringMask + 1
)

// ring is the fixed array of slots plus the submission counter. Slots are
// handed to the producer in strict round-robin order.
type ring struct {
	slots   [RingSize]slot
	counter atomic.Uint32
}

func (r *ring) init() {
	r.counter.Store(0)
	for i := range r.slots {
		r.slots[i].init()
	}
}

// acquireNext advances the counter and blocks until the slot it selects has
// been released by the driver.
func (r *ring) acquireNext() *slot {
	s := &r.slots[r.counter.Add(1)&ringMask]
	s.ready.wait()
	return s
}

// drain blocks until every slot is ready.
func (r *ring) drain() {
	for i := range r.slots {
		r.slots[i].ready.wait()
	}
}

func (r *ring) drainContext(ctx context.Context) error {
	for i := range r.slots {
		if err := r.slots[i].ready.waitContext(ctx); err != nil {
			return err
		}
	}
	return nil
}

// raiseAll releases every slot; used when the driver reports the device closed.
func (r *ring) raiseAll() {
	for i := range r.slots {
		r.slots[i].ready.set()
	}
}
