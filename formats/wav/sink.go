// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"sync"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"go.uber.org/zap"

	"github.com/ik5/pcmout/pcm"
)

type sinkState int

const (
	stateCreated sinkState = iota
	stateOpen
	stateClosed
	stateDestroyed
)

// Option configures a Sink.
type Option func(*Sink)

// WithLogger sets the logger for lifecycle events.
func WithLogger(l *zap.Logger) Option {
	return func(s *Sink) {
		if l != nil {
			s.logger = l
		}
	}
}

// Sink writes PCM blocks to a WAV file. Writes are synchronous, so Drain
// and Flush have nothing to wait for.
//
// Each Open starts the file over from offset zero.
type Sink struct {
	w      io.WriteSeeker
	logger *zap.Logger

	mu      sync.Mutex
	state   sinkState
	enc     *gowav.Encoder
	format  pcm.Format
	ibuf    *goaudio.IntBuffer
	written int64
}

// NewSink returns a sink writing to w. The sink never closes w.
func NewSink(w io.WriteSeeker, opts ...Option) *Sink {
	s := &Sink{
		w:      w,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open starts a new WAV file. Integer kinds U8, S16LE, S24LE and S32LE
// are supported.
func (s *Sink) Open(kind pcm.Kind, rate uint32, channels uint8) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case stateOpen:
		return ErrAlreadyOpen
	case stateDestroyed:
		return ErrDestroyed
	}

	f := pcm.Format{Kind: kind, Rate: rate, Channels: channels}
	if err := f.Validate(); err != nil {
		return fmt.Errorf("wav sink: %w", err)
	}
	if want, _ := kindFor(kind.BitsPerSample()); want != kind {
		return fmt.Errorf("wav sink: %w: %s", ErrUnsupportedBitDepth, kind)
	}

	if _, err := s.w.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("wav sink: rewind: %w", err)
	}

	s.enc = gowav.NewEncoder(s.w, int(rate), kind.BitsPerSample(), int(channels), formatPCM)
	s.ibuf = &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: int(channels), SampleRate: int(rate)},
		SourceBitDepth: kind.BitsPerSample(),
	}
	s.format = f
	s.written = 0
	s.state = stateOpen
	s.logger.Debug("wav sink opened", zap.Stringer("format", f))

	return nil
}

// Write appends p, which must hold whole samples, to the file.
func (s *Sink) Write(p []byte) error {
	if len(p) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateOpen {
		return ErrNotOpen
	}

	n := len(p) / s.format.Kind.SampleSize()
	if cap(s.ibuf.Data) < n {
		s.ibuf.Data = make([]int, n)
	}
	s.ibuf.Data = s.ibuf.Data[:n]

	if _, err := pcm.Ints(s.ibuf.Data, p, s.format.Kind); err != nil {
		return fmt.Errorf("wav sink: %w", err)
	}
	if err := s.enc.Write(s.ibuf); err != nil {
		return fmt.Errorf("wav sink: write: %w", err)
	}
	s.written += int64(len(p))

	return nil
}

func (s *Sink) Drain() error { return nil }

func (s *Sink) Flush() error { return nil }

// Close finishes the file by patching the RIFF and data chunk sizes.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateOpen {
		return nil
	}

	if s.written == 0 {
		s.ibuf.Data = s.ibuf.Data[:0]
		if err := s.enc.Write(s.ibuf); err != nil {
			return fmt.Errorf("wav sink: header: %w", err)
		}
	}
	if err := s.enc.Close(); err != nil {
		s.logger.Warn("wav sink close failed", zap.Error(err))
		return fmt.Errorf("wav sink: close: %w", err)
	}

	s.logger.Debug("wav sink closed", zap.Int64("bytes", s.written))
	s.enc, s.ibuf = nil, nil
	s.state = stateClosed

	return nil
}

// Destroy releases the sink. It must not be open.
func (s *Sink) Destroy() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == stateOpen {
		return ErrStillOpen
	}
	s.w = nil
	s.state = stateDestroyed
	return nil
}

// Written reports the PCM bytes written since the last Open.
func (s *Sink) Written() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.written
}
