// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic pcm.Stream sources for tests.
package audiotest

import (
	"io"
	"math"

	"github.com/ik5/pcmout/pcm"
)

// MockStream generates S16LE audio from a waveform function.
type MockStream struct {
	format       pcm.Format
	totalSamples int // per channel
	generated    int
	waveform     func(sample int, channel int) float32

	closed bool
}

// NewMockStream creates a stream of totalSamples frames. waveform returns
// a value in [-1, 1] for a sample index and channel.
func NewMockStream(sampleRate uint32, channels uint8, totalSamples int, waveform func(sample int, channel int) float32) *MockStream {
	return &MockStream{
		format:       pcm.Format{Kind: pcm.S16LE, Rate: sampleRate, Channels: channels},
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSilentStream creates a stream of zeros.
func NewSilentStream(sampleRate uint32, channels uint8, totalSamples int) *MockStream {
	return NewMockStream(sampleRate, channels, totalSamples, func(int, int) float32 {
		return 0
	})
}

// NewSineStream creates a sine wave at frequency Hz on every channel.
func NewSineStream(sampleRate uint32, channels uint8, totalSamples int, frequency float64) *MockStream {
	return NewMockStream(sampleRate, channels, totalSamples, func(sample int, _ int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantStream creates a stream where every sample is value.
func NewConstantStream(sampleRate uint32, channels uint8, totalSamples int, value float32) *MockStream {
	return NewMockStream(sampleRate, channels, totalSamples, func(int, int) float32 {
		return value
	})
}

func (m *MockStream) Format() pcm.Format { return m.format }

func (m *MockStream) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockStream) Closed() bool { return m.closed }

// Reset rewinds the stream.
func (m *MockStream) Reset() { m.generated = 0 }

// Read writes whole frames only; p shorter than one frame is an error.
func (m *MockStream) Read(p []byte) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	frame := m.format.FrameSize()
	frames := min(len(p)/frame, m.totalSamples-m.generated)
	if frames == 0 {
		return 0, io.ErrShortBuffer
	}

	samples := make([]float32, 0, int(m.format.Channels))
	out := p[:0]
	for f := range frames {
		samples = samples[:0]
		for ch := range int(m.format.Channels) {
			samples = append(samples, m.waveform(m.generated+f, ch))
		}
		out = pcm.AppendS16LE(out, samples)
	}

	m.generated += frames
	if m.generated >= m.totalSamples {
		return len(out), io.EOF
	}
	return len(out), nil
}
