// SPDX-License-Identifier: EPL-2.0

// Package pcmout streams raw PCM to audio outputs.
//
// The heart of the module is waveout, a fixed-ring, double-buffered sink for
// the legacy waveOut API. It accepts PCM blocks of any size and keeps up to
// four of them queued with the driver, so a producer only waits when the
// driver is four blocks behind.
//
// # Supported Formats
//
// Files are decoded into raw PCM (pcm.Stream) by:
//   - WAV (8/16/24/32-bit integer PCM) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF (PCM 16-bit) via formats/aiff
//
// # Quick Start
//
//	file, _ := os.Open("audio.wav")
//	st, _ := wav.Decoder{}.Decode(file)
//	defer st.Close()
//
//	sink := waveout.New(waveout.System(), "", "player", "")
//	defer sink.Destroy()
//
//	n, err := pcmout.Play(ctx, sink, st, 4096)
//
// # Driving a Sink Directly
//
// Play is a thin loop over the Sink capability set:
//
//	sink.Open(pcm.S16LE, 22050, 1)
//	for block := range blocks {
//		sink.Write(block) // blocks while all four ring slots are queued
//	}
//	sink.Drain()
//	sink.Close()
//
// Flush may be called from any goroutine to abandon queued audio; it
// releases a Write or Drain that is waiting on the driver.
//
// # Writing WAV Files
//
// wav.Sink implements the same Sink interface and writes to any
// io.WriteSeeker:
//
//	out, _ := os.Create("out.wav")
//	pcmout.Play(ctx, wav.NewSink(out), st, 4096)
//
// See the individual subpackages for more detailed documentation.
package pcmout
