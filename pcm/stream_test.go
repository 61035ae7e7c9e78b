// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"encoding/binary"
	"errors"
	"io"
	"sort"
	"testing"

	goaudio "github.com/go-audio/audio"
)

type nopDecoder struct{ name string }

func (nopDecoder) Decode(io.Reader) (Stream, error) { return nil, errors.New("not implemented") }

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	wav := nopDecoder{"wav"}
	reg.Register("wav", wav)
	reg.Register("mp3", nopDecoder{"mp3"})

	got, ok := reg.Get("wav")
	if !ok || got != wav {
		t.Errorf("Get(wav) = %v, %v", got, ok)
	}
	if _, ok := reg.Get("flac"); ok {
		t.Error("Get(flac) ok = true for unregistered format")
	}

	formats := reg.Formats()
	sort.Strings(formats)
	if len(formats) != 2 || formats[0] != "mp3" || formats[1] != "wav" {
		t.Errorf("Formats() = %v", formats)
	}
}

// sliceIntSource hands out samples in chunks of at most len(buf.Data).
type sliceIntSource struct {
	samples []int
	chunk   int
	eofWith bool // return io.EOF together with the last chunk
}

func (s *sliceIntSource) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if len(s.samples) == 0 {
		return 0, nil
	}
	n := min(len(buf.Data), s.chunk, len(s.samples))
	copy(buf.Data, s.samples[:n])
	s.samples = s.samples[n:]
	if s.eofWith && len(s.samples) == 0 {
		return n, io.EOF
	}
	return n, nil
}

type countCloser struct{ closed int }

func (c *countCloser) Close() error { c.closed++; return nil }

func TestIntStream(t *testing.T) {
	t.Parallel()

	for _, eofWith := range []bool{false, true} {
		samples := make([]int, 5000)
		for i := range samples {
			samples[i] = i - 2500
		}
		closer := &countCloser{}
		f := Format{Kind: S16LE, Rate: 8000, Channels: 1}
		st := NewIntStream(&sliceIntSource{samples: append([]int(nil), samples...), chunk: 700, eofWith: eofWith}, f, closer)

		if st.Format() != f {
			t.Fatalf("Format() = %v, want %v", st.Format(), f)
		}

		data, err := io.ReadAll(st)
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		if len(data) != len(samples)*2 {
			t.Fatalf("read %d bytes, want %d", len(data), len(samples)*2)
		}
		for i, want := range samples {
			got := int(int16(binary.LittleEndian.Uint16(data[2*i:])))
			if got != want {
				t.Fatalf("sample %d = %d, want %d", i, got, want)
			}
		}

		if err := st.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
		if closer.closed != 1 {
			t.Errorf("closer called %d times, want 1", closer.closed)
		}
	}
}
