// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis to decode Ogg Vorbis files.
//
// # Decoding Ogg Vorbis Files
//
//	file, _ := os.Open("audio.ogg")
//	st, err := vorbis.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]byte, 4096)
//	n, err := st.Read(buf)
//
// # Output Format
//
// Vorbis decodes to floating point. The stream clamps each sample to
// [-1, 1] and scales it to 16 bits:
//   - Kind: pcm.S16LE
//   - Channels and sample rate: as encoded in the file
package vorbis
