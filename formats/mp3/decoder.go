// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/pcmout/pcm"
)

// go-mp3 always decodes to 16-bit little-endian stereo.
const channels = 2

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type stream struct {
	dec    mp3Reader
	format pcm.Format
}

func newStream(dec mp3Reader) (*stream, error) {
	f := pcm.Format{Kind: pcm.S16LE, Rate: uint32(max(dec.SampleRate(), 0)), Channels: channels}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}
	return &stream{dec: dec, format: f}, nil
}

func (s *stream) Format() pcm.Format { return s.format }
func (s *stream) Close() error       { return nil }

// Read passes the decoder's PCM through untouched.
func (s *stream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return s.dec.Read(p)
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (pcm.Stream, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	return newStream(dec)
}
