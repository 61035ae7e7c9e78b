// SPDX-License-Identifier: EPL-2.0

package waveout

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ik5/pcmout/pcm"
)

// State is a Sink's lifecycle state.
type State int

const (
	StateCreated State = iota
	StateOpen
	StateClosed
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	case StateDestroyed:
		return "destroyed"
	}
	return "unknown"
}

// Option configures a Sink.
type Option func(*Sink)

// WithLogger sets the logger for lifecycle events. The driver callback
// never logs.
func WithLogger(l *zap.Logger) Option {
	return func(s *Sink) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFormatBuilder replaces BuildFormat.
func WithFormatBuilder(b FormatBuilder) Option {
	return func(s *Sink) {
		if b != nil {
			s.build = b
		}
	}
}

// Sink streams PCM blocks to a waveOut device through a ring of RingSize
// registered buffers.
//
// One goroutine produces (Open, Write, Drain, Close, Destroy). Flush may be
// called from any goroutine, which is how a blocked Write or Drain is
// released early.
type Sink struct {
	drv    Driver
	build  FormatBuilder
	logger *zap.Logger

	deviceName  string
	appName     string
	description string
	deviceID    DeviceID

	// mu guards the lifecycle fields below. It is never held while waiting
	// on a slot, except inside Close after the device has been closed.
	mu     sync.Mutex
	state  State
	dev    Device
	format *WaveFormat
	pcm    pcm.Format
	log    *zap.Logger

	ring ring
}

// New creates a sink for the device named device, or the default device
// when device is empty or matches nothing. appName and description are
// kept for diagnostics only.
func New(drv Driver, device, appName, description string, opts ...Option) *Sink {
	s := &Sink{
		drv:         drv,
		build:       BuildFormat,
		logger:      zap.NewNop(),
		deviceName:  device,
		appName:     appName,
		description: description,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.deviceID = ResolveDevice(drv, device)
	s.log = s.logger
	s.logger.Debug("waveout sink created",
		zap.String("device", device),
		zap.Uint32("device_id", uint32(s.deviceID)),
		zap.String("app", appName),
	)

	return s
}

// Open initialises the ring, builds the format descriptor and opens the
// device. On failure everything is unwound and the sink is left Closed.
func (s *Sink) Open(kind pcm.Kind, rate uint32, channels uint8) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateOpen:
		return ErrAlreadyOpen
	case StateDestroyed:
		return ErrDestroyed
	}

	s.ring.init()

	format, err := s.build(kind, rate, channels)
	if err != nil {
		s.closeLocked()
		if !errors.Is(err, ErrFormatBuild) {
			err = errors.Join(ErrFormatBuild, err)
		}
		return err
	}
	s.format = format

	dev, err := s.drv.Open(s.deviceID, format, s.callback, CallbackFunction|AllowSync)
	if err != nil {
		derr := newDriverError(ErrDriverOpen, err)
		s.closeLocked()
		return derr
	}

	s.dev = dev
	s.pcm = pcm.Format{Kind: kind, Rate: rate, Channels: channels}
	s.state = StateOpen
	s.log = s.logger.With(zap.String("session", uuid.NewString()))
	s.log.Debug("waveout device opened", zap.Stringer("format", s.pcm))

	return nil
}

// callback routes driver events to slot readiness. It performs one signal
// raise (or four, on close) and nothing else.
func (s *Sink) callback(msg Message, b *Buffer) {
	switch msg {
	case MsgDone:
		if b != nil && b.slot != nil {
			b.slot.complete()
		}
	case MsgClose:
		s.ring.raiseAll()
	}
}

// Write submits p as one block. It blocks only while the next slot in the
// ring is still held by the driver. An empty p is a no-op.
func (s *Sink) Write(p []byte) error {
	if len(p) == 0 {
		return nil
	}

	s.mu.Lock()
	dev, state := s.dev, s.state
	s.mu.Unlock()
	if state != StateOpen {
		return ErrNotOpen
	}

	sl := s.ring.acquireNext()
	if sl.capacity() < len(p) {
		if err := sl.ensureCapacity(dev, len(p)); err != nil {
			return err
		}
	}

	return sl.fillAndSubmit(dev, p)
}

// Drain blocks until the driver has consumed everything submitted.
func (s *Sink) Drain() error {
	if !s.isOpen() {
		return nil
	}
	s.ring.drain()
	return nil
}

// DrainContext is Drain with cancellation. Giving up leaves the queued
// audio playing.
func (s *Sink) DrainContext(ctx context.Context) error {
	if !s.isOpen() {
		return nil
	}
	return s.ring.drainContext(ctx)
}

// Flush abandons queued audio. The driver completes every outstanding
// buffer, which releases a blocked Write or Drain.
func (s *Sink) Flush() error {
	s.mu.Lock()
	dev, state, log := s.dev, s.state, s.log
	s.mu.Unlock()
	if state != StateOpen {
		return nil
	}

	if err := dev.Reset(); err != nil {
		log.Warn("waveout reset failed", zap.Error(err))
	}
	return nil
}

// Close closes the device, waits for the driver to hand back every buffer
// and releases them. Closing a sink that is not open is a no-op. If the
// driver refuses to close the sink stays Open.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateOpen {
		return nil
	}
	return s.closeLocked()
}

func (s *Sink) closeLocked() error {
	if s.dev != nil {
		if err := s.dev.Close(); err != nil {
			derr := newDriverError(ErrDriverClose, err)
			s.log.Warn("waveout close failed", zap.Error(derr))
			return derr
		}

		for i := range s.ring.slots {
			sl := &s.ring.slots[i]
			for sl.registered {
				if err := s.dev.Unprepare(&sl.buf); errors.Is(err, ResultStillPlaying) {
					runtime.Gosched()
					continue
				}
				sl.registered = false
			}
		}
	}

	s.ring.drain()
	for i := range s.ring.slots {
		s.ring.slots[i].finalize()
	}

	wasOpen := s.dev != nil
	s.format = nil
	s.dev = nil
	s.state = StateClosed
	if wasOpen {
		s.log.Debug("waveout device closed")
	}
	s.log = s.logger

	return nil
}

// Destroy releases the sink. It must not be Open.
func (s *Sink) Destroy() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateOpen:
		return ErrStillOpen
	case StateDestroyed:
		return nil
	}

	s.logger.Debug("waveout sink destroyed", zap.String("device", s.deviceName))
	s.deviceName, s.appName, s.description = "", "", ""
	s.state = StateDestroyed

	return nil
}

func (s *Sink) isOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateOpen
}

// State returns the lifecycle state.
func (s *Sink) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// DeviceID is the resolved device, or WaveMapper.
func (s *Sink) DeviceID() DeviceID { return s.deviceID }

// DeviceName is the name the sink was created with.
func (s *Sink) DeviceName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deviceName
}

// Format returns the format the sink is open with, and false when it is not open.
func (s *Sink) Format() (pcm.Format, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pcm, s.state == StateOpen
}
