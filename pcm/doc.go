// SPDX-License-Identifier: EPL-2.0

// Package pcm holds the vocabulary shared by every sink and decoder in pcmout.
//
// A PCM byte stream is raw interleaved samples with no framing and no
// headers. What the bytes mean is described by a Format:
//
//	f := pcm.Format{Kind: pcm.S16LE, Rate: 22050, Channels: 1}
//	frame := f.FrameSize() // 2 bytes
//
// # Kinds
//
// Kind enumerates the sample encodings a caller may ask a sink to open with.
// Not every sink accepts every Kind; the waveOut sink for example refuses
// big-endian and signed 8-bit data.
//
// # Streams
//
// Decoders turn an encoded file into a Stream, which is an io.Reader of raw
// PCM plus the Format of what it yields:
//
//	reg := pcm.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	dec, _ := reg.Get("wav")
//	st, _ := dec.Decode(file)
//	defer st.Close()
//
// # Sample Packing
//
// AppendS16LE and PutInts convert decoded samples (float32 in [-1,1] or
// integers at the Kind's bit depth) into little-endian PCM bytes. Ints does
// the reverse for sinks that need integer samples.
package pcm
