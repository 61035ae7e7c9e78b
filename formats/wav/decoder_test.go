// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/ik5/pcmout/pcm"
)

// Helper function to create a minimal valid WAV file from raw sample bytes
func createWAVFile(format uint16, sampleRate, channels, bitsPerSample int, data []byte) []byte {
	buf := new(bytes.Buffer)

	numChannels := uint16(channels)
	bits := uint16(bitsPerSample)
	byteRate := uint32(sampleRate) * uint32(numChannels) * uint32(bits/8)
	blockAlign := numChannels * (bits / 8)
	dataSize := uint32(len(data))
	riffSize := 36 + dataSize

	// RIFF header
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, riffSize)
	buf.WriteString("WAVE")

	// fmt chunk
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16)) // chunk size
	binary.Write(buf, binary.LittleEndian, format)
	binary.Write(buf, binary.LittleEndian, numChannels)
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, byteRate)
	binary.Write(buf, binary.LittleEndian, blockAlign)
	binary.Write(buf, binary.LittleEndian, bits)

	// data chunk
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)
	buf.Write(data)

	return buf.Bytes()
}

func s16Bytes(samples ...int16) []byte {
	out := make([]byte, 0, 2*len(samples))
	for _, s := range samples {
		out = binary.LittleEndian.AppendUint16(out, uint16(s))
	}
	return out
}

func TestDecoder_ValidWAVFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rate     int
		channels int
		bits     int
		data     []byte
		want     pcm.Format
	}{
		{"s16 mono", 8000, 1, 16, s16Bytes(0, 100, 200, -100, -200, 0), pcm.Format{Kind: pcm.S16LE, Rate: 8000, Channels: 1}},
		{"s16 stereo", 44100, 2, 16, s16Bytes(100, 200, 300, 400, 500, 600), pcm.Format{Kind: pcm.S16LE, Rate: 44100, Channels: 2}},
		{"u8 mono", 8000, 1, 8, []byte{128, 129, 127, 128}, pcm.Format{Kind: pcm.U8, Rate: 8000, Channels: 1}},
		{"s24 mono", 48000, 1, 24, []byte{1, 2, 3, 4, 5, 6}, pcm.Format{Kind: pcm.S24LE, Rate: 48000, Channels: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			wavData := createWAVFile(formatPCM, tt.rate, tt.channels, tt.bits, tt.data)
			st, err := Decoder{}.Decode(bytes.NewReader(wavData))
			if err != nil {
				t.Fatalf("Decode() error = %v, want nil", err)
			}
			defer st.Close()

			if st.Format() != tt.want {
				t.Errorf("Format() = %v, want %v", st.Format(), tt.want)
			}
		})
	}
}

func TestDecoder_ReadsPCMVerbatim(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		bits int
		data []byte
	}{
		{"s16", 16, s16Bytes(0, 16384, 32767, -16384, -32768, 8192)},
		{"s24", 24, []byte{0x01, 0x02, 0x03, 0xff, 0xff, 0xff, 0x00, 0x00, 0x80, 0xff, 0xff, 0x7f}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			wavData := createWAVFile(formatPCM, 8000, 1, tt.bits, tt.data)
			st, err := Decoder{}.Decode(bytes.NewReader(wavData))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}

			got, err := io.ReadAll(st)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if !bytes.Equal(got, tt.data) {
				t.Errorf("PCM = % x, want % x", got, tt.data)
			}
		})
	}
}

func TestDecoder_NonSeekableReader(t *testing.T) {
	t.Parallel()

	data := s16Bytes(1, 2, 3, 4)
	wavData := createWAVFile(formatPCM, 8000, 2, 16, data)

	// bytes.Buffer cannot seek
	st, err := Decoder{}.Decode(bytes.NewBuffer(wavData))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	got, _ := io.ReadAll(st)
	if !bytes.Equal(got, data) {
		t.Errorf("PCM = % x, want % x", got, data)
	}
}

func TestDecoder_NotWAVFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"garbage", []byte("NOT A WAV FILE DATA")},
		{"truncated", []byte("RIFF\x00")},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrNotWavFile) {
				t.Errorf("Decode() error = %v, want ErrNotWavFile", err)
			}
		})
	}
}

func TestDecoder_FloatFormat(t *testing.T) {
	t.Parallel()

	wavData := createWAVFile(3, 8000, 1, 32, make([]byte, 16))

	_, err := Decoder{}.Decode(bytes.NewReader(wavData))
	if !errors.Is(err, ErrUnsupportedWavLayout) {
		t.Errorf("Decode() error = %v, want ErrUnsupportedWavLayout", err)
	}
}

func TestKindFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bits int
		want pcm.Kind
		err  error
	}{
		{8, pcm.U8, nil},
		{16, pcm.S16LE, nil},
		{24, pcm.S24LE, nil},
		{32, pcm.S32LE, nil},
		{12, 0, ErrUnsupportedBitDepth},
		{64, 0, ErrUnsupportedBitDepth},
	}

	for _, tt := range tests {
		got, err := kindFor(tt.bits)
		if !errors.Is(err, tt.err) {
			t.Errorf("kindFor(%d) error = %v, want %v", tt.bits, err, tt.err)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("kindFor(%d) = %v, want %v", tt.bits, got, tt.want)
		}
	}
}
