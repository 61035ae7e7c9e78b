// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"
	"math"

	gowav "github.com/go-audio/wav"

	"github.com/ik5/pcmout/pcm"
)

const formatPCM = 1

// kindFor maps a WAV integer bit depth to the byte layout the stream yields.
func kindFor(bitDepth int) (pcm.Kind, error) {
	switch bitDepth {
	case 8:
		return pcm.U8, nil
	case 16:
		return pcm.S16LE, nil
	case 24:
		return pcm.S24LE, nil
	case 32:
		return pcm.S32LE, nil
	}
	return 0, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, bitDepth)
}

type Decoder struct{}

// Decode parses the RIFF headers of r and returns a stream of its PCM data
// in the file's own layout. go-audio needs to seek, so a reader that cannot
// is read into memory first.
func (Decoder) Decode(r io.Reader) (pcm.Stream, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	dec.ReadInfo()

	if dec.WavAudioFormat != formatPCM {
		return nil, fmt.Errorf("%w: audio format %d", ErrUnsupportedWavLayout, dec.WavAudioFormat)
	}

	kind, err := kindFor(int(dec.BitDepth))
	if err != nil {
		return nil, err
	}

	if dec.NumChans > math.MaxUint8 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedWavLayout, dec.NumChans)
	}

	f := pcm.Format{Kind: kind, Rate: dec.SampleRate, Channels: uint8(dec.NumChans)}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}

	return pcm.NewIntStream(dec, f, nil), nil
}
