// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/ik5/pcmout/pcm"
)

// mockOggVorbisReader simulates the oggvorbis.Reader for testing
type mockOggVorbisReader struct {
	sampleRate   int
	channels     int
	samples      []float32
	offset       int
	returnErrors bool
}

func (m *mockOggVorbisReader) SampleRate() int {
	return m.sampleRate
}

func (m *mockOggVorbisReader) Channels() int {
	return m.channels
}

// Read fills whole frames and returns the number of values, like oggvorbis.
func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.returnErrors {
		return 0, io.ErrUnexpectedEOF
	}

	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	frames := min(len(buf)/m.channels, (len(m.samples)-m.offset)/m.channels)
	n := copy(buf, m.samples[m.offset:m.offset+frames*m.channels])
	m.offset += n

	if m.offset >= len(m.samples) {
		return n, io.EOF
	}

	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("This is not Ogg Vorbis data")))
	if err == nil {
		t.Error("Decode() error = nil, want error for invalid data")
	}
}

func TestDecoder_EmptyInput(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader(nil))
	if err == nil {
		t.Error("Decode() error = nil, want error for empty input")
	}
}

func TestStream_Format(t *testing.T) {
	t.Parallel()

	st, err := newStream(&mockOggVorbisReader{sampleRate: 48000, channels: 2})
	if err != nil {
		t.Fatalf("newStream() error = %v", err)
	}

	want := pcm.Format{Kind: pcm.S16LE, Rate: 48000, Channels: 2}
	if st.Format() != want {
		t.Errorf("Format() = %v, want %v", st.Format(), want)
	}
	if len(st.floats)%2 != 0 {
		t.Errorf("decode buffer of %d values splits a frame", len(st.floats))
	}
}

func TestStream_UnsupportedLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rate     int
		channels int
	}{
		{"no channels", 44100, 0},
		{"too many channels", 44100, 300},
		{"no rate", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := newStream(&mockOggVorbisReader{sampleRate: tt.rate, channels: tt.channels})
			if !errors.Is(err, ErrUnsupportedLayout) {
				t.Errorf("newStream() error = %v, want ErrUnsupportedLayout", err)
			}
		})
	}
}

func TestStream_Read(t *testing.T) {
	t.Parallel()

	samples := []float32{0, 0.5, -0.5, 1, -1, 2}
	st, _ := newStream(&mockOggVorbisReader{sampleRate: 8000, channels: 2, samples: samples})

	got, err := io.ReadAll(st)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	want := []int16{0, 16383, -16383, 32767, -32767, 32767}
	if len(got) != 2*len(want) {
		t.Fatalf("read %d bytes, want %d", len(got), 2*len(want))
	}
	for i, w := range want {
		if s := int16(binary.LittleEndian.Uint16(got[2*i:])); s != w {
			t.Errorf("sample %d = %d, want %d", i, s, w)
		}
	}
}

func TestStream_SmallReads(t *testing.T) {
	t.Parallel()

	samples := make([]float32, 10000)
	st, _ := newStream(&mockOggVorbisReader{sampleRate: 8000, channels: 1, samples: samples})

	total := 0
	buf := make([]byte, 3)
	for {
		n, err := st.Read(buf)
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
	}

	if total != 2*len(samples) {
		t.Errorf("read %d bytes, want %d", total, 2*len(samples))
	}
}

func TestStream_ReadError(t *testing.T) {
	t.Parallel()

	st, _ := newStream(&mockOggVorbisReader{sampleRate: 8000, channels: 1, returnErrors: true})

	for range 2 {
		if _, err := st.Read(make([]byte, 8)); !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("Read() error = %v, want io.ErrUnexpectedEOF", err)
		}
	}
}

func TestStream_ReadAllocations(t *testing.T) {
	samples := make([]float32, 1<<16)
	mock := &mockOggVorbisReader{sampleRate: 8000, channels: 1, samples: samples}
	st, _ := newStream(mock)
	buf := make([]byte, 1024)
	_, _ = st.Read(buf)

	allocs := testing.AllocsPerRun(50, func() {
		_, _ = st.Read(buf)
	})
	if allocs != 0 {
		t.Errorf("Read() allocates %v times per call, want 0", allocs)
	}
}
