// SPDX-License-Identifier: EPL-2.0

package pcm

import "encoding/binary"

// Int16 scales a float sample in [-1, 1] to a signed 16-bit sample,
// clamping anything outside the range.
func Int16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	// 32767 keeps +1.0 from wrapping around
	return int16(x * 32767.0)
}

// AppendS16LE appends src to dst as S16LE bytes and returns the extended slice.
func AppendS16LE(dst []byte, src []float32) []byte {
	start := len(dst)
	need := start + len(src)*2
	if cap(dst) < need {
		grown := make([]byte, start, max(need, 2*cap(dst)))
		copy(grown, dst)
		dst = grown
	}
	dst = dst[:need]
	for i, x := range src {
		binary.LittleEndian.PutUint16(dst[start+2*i:], uint16(Int16(x)))
	}
	return dst
}

// PutInts packs integer samples at k's bit depth into dst and returns the
// number of bytes written. dst must hold len(src)*k.SampleSize() bytes.
// U8 expects values already biased to 0..255, as 8-bit WAV decoders yield.
func PutInts(dst []byte, src []int, k Kind) (int, error) {
	size := k.SampleSize()
	switch k {
	case U8, S8:
		for i, v := range src {
			dst[i] = byte(v)
		}
	case S16LE:
		for i, v := range src {
			binary.LittleEndian.PutUint16(dst[2*i:], uint16(int16(v)))
		}
	case S24LE:
		for i, v := range src {
			o := 3 * i
			dst[o] = byte(v)
			dst[o+1] = byte(v >> 8)
			dst[o+2] = byte(v >> 16)
		}
	case S32LE:
		for i, v := range src {
			binary.LittleEndian.PutUint32(dst[4*i:], uint32(int32(v)))
		}
	default:
		return 0, ErrUnsupportedKind
	}
	return len(src) * size, nil
}

// Ints unpacks little-endian samples of kind k from src into dst and returns
// the number of samples. dst must hold len(src)/k.SampleSize() values.
func Ints(dst []int, src []byte, k Kind) (int, error) {
	size := k.SampleSize()
	if size == 0 {
		return 0, ErrUnknownKind
	}
	if len(src)%size != 0 {
		return 0, ErrPartialFrame
	}
	n := len(src) / size
	switch k {
	case U8:
		for i := range n {
			dst[i] = int(src[i])
		}
	case S8:
		for i := range n {
			dst[i] = int(int8(src[i]))
		}
	case S16LE:
		for i := range n {
			dst[i] = int(int16(binary.LittleEndian.Uint16(src[2*i:])))
		}
	case S24LE:
		for i := range n {
			o := 3 * i
			v := int32(src[o]) | int32(src[o+1])<<8 | int32(src[o+2])<<16
			dst[i] = int(v<<8) >> 8 // sign-extend from bit 23
		}
	case S32LE:
		for i := range n {
			dst[i] = int(int32(binary.LittleEndian.Uint32(src[4*i:])))
		}
	default:
		return 0, ErrUnsupportedKind
	}
	return n, nil
}
