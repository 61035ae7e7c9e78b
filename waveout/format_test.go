// SPDX-License-Identifier: EPL-2.0

package waveout

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/ik5/pcmout/pcm"
)

func TestBuildFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		kind     pcm.Kind
		rate     uint32
		channels uint8
		tag      uint16
		align    uint16
		bits     uint16
		mask     uint32
	}{
		{"s16 mono", pcm.S16LE, 22050, 1, FormatTagPCM, 2, 16, 0},
		{"s16 stereo", pcm.S16LE, 44100, 2, FormatTagPCM, 4, 16, 0},
		{"u8 mono", pcm.U8, 8000, 1, FormatTagPCM, 1, 8, 0},
		{"a-law", pcm.ALaw, 8000, 1, FormatTagALaw, 1, 8, 0},
		{"mu-law", pcm.ULaw, 8000, 1, FormatTagMuLaw, 1, 8, 0},
		{"s24 stereo", pcm.S24LE, 48000, 2, FormatTagExtensible, 6, 24, 0x3},
		{"s16 5.1", pcm.S16LE, 48000, 6, FormatTagExtensible, 12, 16, 0x3F},
		{"f32 stereo", pcm.Float32LE, 48000, 2, FormatTagExtensible, 8, 32, 0x3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			wf, err := BuildFormat(tt.kind, tt.rate, tt.channels)
			if err != nil {
				t.Fatalf("BuildFormat() error = %v", err)
			}

			if wf.Tag != tt.tag || wf.BlockAlign != tt.align || wf.BitsPerSample != tt.bits {
				t.Errorf("BuildFormat() = tag %#x align %d bits %d, want %#x %d %d",
					wf.Tag, wf.BlockAlign, wf.BitsPerSample, tt.tag, tt.align, tt.bits)
			}
			if wf.AvgBytesPerSec != tt.rate*uint32(tt.align) {
				t.Errorf("AvgBytesPerSec = %d, want %d", wf.AvgBytesPerSec, tt.rate*uint32(tt.align))
			}
			if wf.ChannelMask != tt.mask {
				t.Errorf("ChannelMask = %#x, want %#x", wf.ChannelMask, tt.mask)
			}
		})
	}
}

func TestBuildFormat_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		kind     pcm.Kind
		rate     uint32
		channels uint8
		cause    error
	}{
		{"unknown kind", pcm.Kind(200), 8000, 1, pcm.ErrUnknownKind},
		{"zero rate", pcm.S16LE, 0, 1, pcm.ErrZeroRate},
		{"zero channels", pcm.S16LE, 8000, 0, pcm.ErrZeroChannels},
		{"big endian", pcm.S16BE, 8000, 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := BuildFormat(tt.kind, tt.rate, tt.channels)
			if !errors.Is(err, ErrFormatBuild) {
				t.Fatalf("BuildFormat() error = %v, want ErrFormatBuild", err)
			}
			if tt.cause != nil && !errors.Is(err, tt.cause) {
				t.Errorf("BuildFormat() error = %v, want %v", err, tt.cause)
			}
		})
	}
}

func TestWaveFormat_Bytes(t *testing.T) {
	t.Parallel()

	wf, _ := BuildFormat(pcm.S16LE, 22050, 1)
	b := wf.Bytes()
	if len(b) != waveFormatSize {
		t.Fatalf("len(Bytes()) = %d, want %d", len(b), waveFormatSize)
	}

	le := binary.LittleEndian
	if le.Uint16(b[0:]) != FormatTagPCM || le.Uint16(b[2:]) != 1 ||
		le.Uint32(b[4:]) != 22050 || le.Uint32(b[8:]) != 44100 ||
		le.Uint16(b[12:]) != 2 || le.Uint16(b[14:]) != 16 || le.Uint16(b[16:]) != 0 {
		t.Errorf("Bytes() = % x", b)
	}
}

func TestWaveFormat_BytesExtensible(t *testing.T) {
	t.Parallel()

	wf, _ := BuildFormat(pcm.S24LE, 48000, 2)
	b := wf.Bytes()
	if len(b) != waveFormatSize+extensibleExtra {
		t.Fatalf("len(Bytes()) = %d, want %d", len(b), waveFormatSize+extensibleExtra)
	}

	le := binary.LittleEndian
	if le.Uint16(b[0:]) != FormatTagExtensible || le.Uint16(b[16:]) != extensibleExtra ||
		le.Uint16(b[18:]) != 24 || le.Uint32(b[20:]) != 0x3 {
		t.Errorf("Bytes() header = % x", b[:24])
	}

	guid := []byte{
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00,
		0x80, 0x00, 0x00, 0xaa, 0x00, 0x38, 0x9b, 0x71,
	}
	if !bytes.Equal(b[24:], guid) {
		t.Errorf("SubFormat = % x, want % x", b[24:], guid)
	}
}
