// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"fmt"
	"time"
)

// Format describes a PCM byte stream: sample kind, frames per second and
// interleaved channel count.
type Format struct {
	Kind     Kind
	Rate     uint32
	Channels uint8
}

// Validate checks that f can describe a stream.
func (f Format) Validate() error {
	if !f.Kind.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownKind, f.Kind)
	}
	if f.Rate == 0 {
		return ErrZeroRate
	}
	if f.Channels == 0 {
		return ErrZeroChannels
	}
	return nil
}

// FrameSize is the byte size of one sample for every channel.
func (f Format) FrameSize() int { return f.Kind.SampleSize() * int(f.Channels) }

// ByteRate is the number of bytes per second of audio.
func (f Format) ByteRate() int { return f.FrameSize() * int(f.Rate) }

// Duration returns how long n bytes of f take to play.
func (f Format) Duration(n int) time.Duration {
	rate := f.ByteRate()
	if rate == 0 {
		return 0
	}
	return time.Duration(int64(n) * int64(time.Second) / int64(rate))
}

func (f Format) String() string {
	return fmt.Sprintf("%s %dHz %dch", f.Kind, f.Rate, f.Channels)
}
