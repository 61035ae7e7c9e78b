// SPDX-License-Identifier: EPL-2.0

package waveout

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"

	"github.com/ik5/pcmout/pcm"
)

// Wave format tags.
const (
	FormatTagPCM        uint16 = 0x0001
	FormatTagIEEEFloat  uint16 = 0x0003
	FormatTagALaw       uint16 = 0x0006
	FormatTagMuLaw      uint16 = 0x0007
	FormatTagExtensible uint16 = 0xFFFE
)

const (
	waveFormatSize  = 18
	extensibleExtra = 22

	speakerFrontLeft   = 0x1
	speakerFrontRight  = 0x2
	speakerFrontCenter = 0x4
	speakerLowFreq     = 0x8
	speakerBackLeft    = 0x10
	speakerBackRight   = 0x20
	speakerSideLeft    = 0x200
	speakerSideRight   = 0x400
)

var (
	subtypePCM       = uuid.MustParse("00000001-0000-0010-8000-00aa00389b71")
	subtypeIEEEFloat = uuid.MustParse("00000003-0000-0010-8000-00aa00389b71")
)

// WaveFormat is the format descriptor handed to the driver on open
// (WAVEFORMATEX, or WAVEFORMATEXTENSIBLE when Tag is FormatTagExtensible).
type WaveFormat struct {
	Tag            uint16
	Channels       uint16
	SamplesPerSec  uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	BitsPerSample  uint16

	// Extensible fields.
	ValidBitsPerSample uint16
	ChannelMask        uint32
	SubFormat          uuid.UUID
}

// FormatBuilder produces the descriptor for an open request.
type FormatBuilder func(kind pcm.Kind, rate uint32, channels uint8) (*WaveFormat, error)

// BuildFormat is the default FormatBuilder. More than two channels or more
// than 16 bits per sample get an extensible descriptor.
func BuildFormat(kind pcm.Kind, rate uint32, channels uint8) (*WaveFormat, error) {
	if err := (pcm.Format{Kind: kind, Rate: rate, Channels: channels}).Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormatBuild, err)
	}

	var tag uint16
	var sub uuid.UUID
	switch kind {
	case pcm.ALaw:
		tag = FormatTagALaw
	case pcm.ULaw:
		tag = FormatTagMuLaw
	case pcm.U8, pcm.S16LE, pcm.S24LE, pcm.S32LE:
		tag, sub = FormatTagPCM, subtypePCM
	case pcm.Float32LE, pcm.Float64LE:
		tag, sub = FormatTagIEEEFloat, subtypeIEEEFloat
	default:
		return nil, fmt.Errorf("%w: %s is not playable", ErrFormatBuild, kind)
	}

	bits := uint16(kind.BitsPerSample())
	align := uint16(kind.SampleSize()) * uint16(channels)
	wf := &WaveFormat{
		Tag:            tag,
		Channels:       uint16(channels),
		SamplesPerSec:  rate,
		AvgBytesPerSec: rate * uint32(align),
		BlockAlign:     align,
		BitsPerSample:  bits,
	}

	companded := tag == FormatTagALaw || tag == FormatTagMuLaw
	if !companded && (channels > 2 || bits > 16) {
		wf.Tag = FormatTagExtensible
		wf.ValidBitsPerSample = bits
		wf.ChannelMask = channelMask(channels)
		wf.SubFormat = sub
	}

	return wf, nil
}

func channelMask(channels uint8) uint32 {
	switch channels {
	case 1:
		return speakerFrontCenter
	case 2:
		return speakerFrontLeft | speakerFrontRight
	case 4:
		return speakerFrontLeft | speakerFrontRight | speakerBackLeft | speakerBackRight
	case 6:
		return speakerFrontLeft | speakerFrontRight | speakerFrontCenter | speakerLowFreq |
			speakerBackLeft | speakerBackRight
	case 8:
		return speakerFrontLeft | speakerFrontRight | speakerFrontCenter | speakerLowFreq |
			speakerBackLeft | speakerBackRight | speakerSideLeft | speakerSideRight
	}
	return 0
}

// Extensible reports whether w carries the WAVEFORMATEXTENSIBLE tail.
func (w *WaveFormat) Extensible() bool { return w.Tag == FormatTagExtensible }

// Bytes packs w little-endian in the driver's memory layout.
func (w *WaveFormat) Bytes() []byte {
	size := waveFormatSize
	if w.Extensible() {
		size += extensibleExtra
	}
	b := make([]byte, size)

	le := binary.LittleEndian
	le.PutUint16(b[0:], w.Tag)
	le.PutUint16(b[2:], w.Channels)
	le.PutUint32(b[4:], w.SamplesPerSec)
	le.PutUint32(b[8:], w.AvgBytesPerSec)
	le.PutUint16(b[12:], w.BlockAlign)
	le.PutUint16(b[14:], w.BitsPerSample)

	if !w.Extensible() {
		return b
	}

	le.PutUint16(b[16:], extensibleExtra)
	le.PutUint16(b[18:], w.ValidBitsPerSample)
	le.PutUint32(b[20:], w.ChannelMask)
	putGUID(b[24:], w.SubFormat)

	return b
}

// putGUID writes u in GUID memory order: the first three groups are
// little-endian, the last eight bytes as-is.
func putGUID(b []byte, u uuid.UUID) {
	le, be := binary.LittleEndian, binary.BigEndian
	le.PutUint32(b[0:], be.Uint32(u[0:4]))
	le.PutUint16(b[4:], be.Uint16(u[4:6]))
	le.PutUint16(b[6:], be.Uint16(u[6:8]))
	copy(b[8:16], u[8:16])
}
