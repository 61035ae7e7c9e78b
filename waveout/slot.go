// SPDX-License-Identifier: EPL-2.0

package waveout

import (
	"errors"
	"fmt"
	"math"
)

// MaxBufferSize is the largest block the driver can describe: buffer
// lengths are 32-bit.
const MaxBufferSize = math.MaxUint32

// slot is one registerable PCM buffer of the ring.
//
// While registered and not ready the driver owns buf.Data; nothing on the
// producer side may write, replace or drop it until ready is raised.
type slot struct {
	buf        Buffer
	registered bool
	ready      *event
}

func (s *slot) init() {
	s.buf = Buffer{slot: s}
	s.registered = false
	s.ready = newEvent()
}

func (s *slot) capacity() int { return len(s.buf.Data) }

// ensureCapacity grows the slot to at least n bytes and registers the new
// region. The caller must hold the slot (ready raised).
func (s *slot) ensureCapacity(dev Device, n int) error {
	if s.capacity() >= n {
		return nil
	}

	if s.registered {
		if err := dev.Unprepare(&s.buf); errors.Is(err, ResultStillPlaying) {
			return newDriverError(ErrBusy, err)
		}
		s.registered = false
	}

	s.buf.Data, s.buf.Len = nil, 0

	data, err := allocate(n)
	if err != nil {
		return err
	}
	s.buf.Data = data

	if err := dev.Prepare(&s.buf); err != nil {
		s.buf.Data = nil
		return newDriverError(ErrDriverRegister, err)
	}
	s.registered = true

	return nil
}

func allocate(n int) ([]byte, error) {
	if uint64(n) > MaxBufferSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrOutOfMemory, n)
	}
	return make([]byte, n), nil
}

// fillAndSubmit copies p into the slot and hands it to the driver. The slot
// must be ready and hold at least len(p) bytes.
func (s *slot) fillAndSubmit(dev Device, p []byte) error {
	s.ready.reset()
	s.buf.Len = copy(s.buf.Data, p)

	if err := dev.Write(&s.buf); err != nil {
		s.ready.set()
		return newDriverError(ErrDriverSubmit, err)
	}

	return nil
}

// complete is the callback side: the driver is done with the buffer.
func (s *slot) complete() { s.ready.set() }

// finalize drops the byte region. The slot must be deregistered and ready.
func (s *slot) finalize() {
	s.buf.Data, s.buf.Len, s.buf.Sys = nil, 0, nil
}
