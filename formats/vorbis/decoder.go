// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"
	"math"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/pcmout/pcm"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

// stream converts the decoder's float samples to S16LE.
type stream struct {
	dec    oggReader
	format pcm.Format

	floats  []float32
	buf     []byte
	pending []byte
	err     error
}

func newStream(dec oggReader) (*stream, error) {
	if dec.Channels() > math.MaxUint8 || dec.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrUnsupportedLayout, dec.Channels(), dec.SampleRate())
	}

	f := pcm.Format{Kind: pcm.S16LE, Rate: uint32(dec.SampleRate()), Channels: uint8(dec.Channels())}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedLayout, err)
	}

	return &stream{
		dec:    dec,
		format: f,
		floats: make([]float32, 4096-4096%int(f.Channels)),
	}, nil
}

func (s *stream) Format() pcm.Format { return s.format }
func (s *stream) Close() error       { return nil }

func (s *stream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	for len(s.pending) == 0 {
		if s.err != nil {
			return 0, s.err
		}

		// oggvorbis.Reader.Read fills whole frames and returns the
		// number of values decoded
		n, err := s.dec.Read(s.floats)
		if err != nil {
			s.err = err
		}
		s.buf = pcm.AppendS16LE(s.buf[:0], s.floats[:n])
		s.pending = s.buf
	}

	n := copy(p, s.pending)
	s.pending = s.pending[n:]
	return n, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (pcm.Stream, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("vorbis: %w", err)
	}

	return newStream(dec)
}
