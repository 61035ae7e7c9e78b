// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	ErrUnsupportedBitDepth  = errors.New("only 8, 16, 24 and 32-bit integer PCM is supported")

	// ErrNotOpen is returned by Sink.Write before Open.
	ErrNotOpen = errors.New("wav sink is not open")
	// ErrAlreadyOpen is returned by Sink.Open on an open sink.
	ErrAlreadyOpen = errors.New("wav sink is already open")
	// ErrStillOpen is returned by Sink.Destroy on an open sink.
	ErrStillOpen = errors.New("wav sink must be closed before destroy")
	// ErrDestroyed is returned by Sink.Open after Destroy.
	ErrDestroyed = errors.New("wav sink has been destroyed")
)
