// SPDX-License-Identifier: EPL-2.0

// Package wav decodes WAV files into raw PCM and writes PCM back out as WAV.
//
// Both directions use github.com/go-audio/wav.
//
// # Supported Formats
//
//   - Integer PCM at 8 (unsigned), 16, 24 (packed) and 32 bits
//   - Any channel count up to 255
//   - Any sample rate
//
// # Decoding WAV Files
//
//	file, _ := os.Open("audio.wav")
//	st, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]byte, 4096)
//	n, err := st.Read(buf)
//
// The stream yields the file's samples byte for byte in the layout given by
// st.Format(), ready for any pcmout sink.
//
// # Writing WAV Files
//
// Sink implements the pcmout Sink capability set on top of an
// io.WriteSeeker:
//
//	out, _ := os.Create("output.wav")
//	s := wav.NewSink(out)
//	s.Open(pcm.S16LE, 8000, 1)
//	s.Write(block)
//	s.Close() // patches the header sizes
//
// # Error Handling
//
//   - ErrNotWavFile: The input is not a valid RIFF/WAVE file
//   - ErrUnsupportedWavLayout: Not integer PCM, or an unusable channel count or rate
//   - ErrUnsupportedBitDepth: A bit depth other than 8, 16, 24 or 32
//
// Example:
//
//	st, err := decoder.Decode(file)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    fmt.Println("Not a WAV file")
//	}
package wav
