// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files.
//
// # Decoding MP3 Files
//
//	file, _ := os.Open("audio.mp3")
//	st, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]byte, 4096)
//	n, err := st.Read(buf)
//
// # Output Format
//
// go-mp3 always produces 16-bit little-endian stereo, which is already a
// playable layout, so the stream hands its bytes through unchanged:
//   - Kind: pcm.S16LE
//   - Channels: 2 (mono files are duplicated to both channels)
//   - Sample rate: as encoded in the file
package mp3
