// SPDX-License-Identifier: EPL-2.0

package pcm

import "errors"

var (
	// ErrUnknownKind indicates a Kind outside the enumeration.
	ErrUnknownKind = errors.New("unknown PCM kind")

	// ErrZeroRate indicates a Format without a sample rate.
	ErrZeroRate = errors.New("sample rate must be positive")

	// ErrZeroChannels indicates a Format without channels.
	ErrZeroChannels = errors.New("channel count must be positive")

	// ErrUnsupportedKind indicates a Kind a conversion cannot handle.
	ErrUnsupportedKind = errors.New("unsupported PCM kind for conversion")

	// ErrPartialFrame indicates a byte slice that is not a whole number of samples.
	ErrPartialFrame = errors.New("data is not a whole number of samples")
)
