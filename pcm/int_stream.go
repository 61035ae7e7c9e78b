// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

// IntSource is the part of the go-audio decoders (wav, aiff) a Stream needs.
type IntSource interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type intStream struct {
	src    IntSource
	format Format
	closer io.Closer

	ibuf    *goaudio.IntBuffer
	buf     []byte
	pending []byte
	eof     bool
}

// NewIntStream adapts a go-audio integer decoder into a Stream yielding
// f.Kind bytes. closer may be nil.
func NewIntStream(src IntSource, f Format, closer io.Closer) Stream {
	return &intStream{
		src:    src,
		format: f,
		closer: closer,
		ibuf: &goaudio.IntBuffer{
			Format: &goaudio.Format{NumChannels: int(f.Channels), SampleRate: int(f.Rate)},
			Data:   make([]int, 2048),
		},
	}
}

func (s *intStream) Format() Format { return s.format }

func (s *intStream) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func (s *intStream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for len(s.pending) == 0 {
		if s.eof {
			return 0, io.EOF
		}
		if err := s.fill(); err != nil {
			return 0, err
		}
	}
	n := copy(p, s.pending)
	s.pending = s.pending[n:]
	return n, nil
}

func (s *intStream) fill() error {
	s.ibuf.Data = s.ibuf.Data[:cap(s.ibuf.Data)]
	n, err := s.src.PCMBuffer(s.ibuf)
	if err != nil && err != io.EOF {
		return fmt.Errorf("decode pcm: %w", err)
	}
	if n == 0 || err == io.EOF {
		s.eof = true
	}
	if n == 0 {
		return nil
	}

	need := n * s.format.Kind.SampleSize()
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]
	if _, err := PutInts(s.buf, s.ibuf.Data[:n], s.format.Kind); err != nil {
		return err
	}
	s.pending = s.buf
	return nil
}
