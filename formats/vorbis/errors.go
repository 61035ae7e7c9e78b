// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

// ErrUnsupportedLayout indicates a stream with no channels, more than 255
// channels, or no sample rate.
var ErrUnsupportedLayout = errors.New("unsupported vorbis layout")
