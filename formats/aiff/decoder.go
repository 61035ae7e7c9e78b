// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/pcmout/pcm"
)

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// newStream wraps a decoder whose samples are bitDepth wide. AIFF stores
// big-endian samples; the stream re-packs them little-endian.
func newStream(dec aiffReader, bitDepth int) (pcm.Stream, error) {
	var kind pcm.Kind
	switch bitDepth {
	case 16:
		kind = pcm.S16LE
	case 24:
		kind = pcm.S24LE
	case 32:
		kind = pcm.S32LE
	default:
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, bitDepth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels > math.MaxUint8 || format.SampleRate <= 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	f := pcm.Format{Kind: kind, Rate: uint32(format.SampleRate), Channels: uint8(format.NumChannels)}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedAiffLayout, err)
	}

	return pcm.NewIntStream(dec, f, nil), nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (pcm.Stream, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()

	return newStream(dec, int(dec.BitDepth))
}
