// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to decode AIFF files.
// AIFF is Apple's standard audio file format, commonly used on macOS.
//
// # Supported Formats
//
// Currently supported:
//   - PCM 16, 24 and 32-bit
//   - Mono and multi-channel
//   - Any sample rate
//
// # Decoding AIFF Files
//
//	file, _ := os.Open("audio.aif")
//	st, err := aiff.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]byte, 4096)
//	n, err := st.Read(buf)
//
// # Output Format
//
// AIFF stores big-endian samples. The stream yields them little-endian
// (S16LE, S24LE or S32LE) so any pcmout sink can take them as they are.
//
// # Error Handling
//
//   - ErrNotAiffFile: The input is not a valid AIFF file
//   - ErrUnsupportedBitDepth: 8-bit or an unusual sample size
//   - ErrUnsupportedAiffLayout: Unusable channel count or sample rate
//
// # Limitations
//
//   - AIFF writing is not supported (decoding only)
//   - AIFF-C (.aifc, compressed) is not supported
//   - Inputs that cannot seek are read into memory first
package aiff
