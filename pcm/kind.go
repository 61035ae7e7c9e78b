// SPDX-License-Identifier: EPL-2.0

package pcm

// Kind identifies how a single sample is encoded.
type Kind uint8

const (
	ALaw Kind = iota
	ULaw
	S8
	U8
	S16LE
	S16BE
	U16LE
	U16BE
	S24LE // packed, 3 bytes per sample
	S24BE
	S32LE
	S32BE
	Float32LE
	Float32BE
	Float64LE
	Float64BE

	kindCount
)

var kindInfo = [kindCount]struct {
	name string
	size int
}{
	ALaw:      {"a-law", 1},
	ULaw:      {"mu-law", 1},
	S8:        {"s8", 1},
	U8:        {"u8", 1},
	S16LE:     {"s16le", 2},
	S16BE:     {"s16be", 2},
	U16LE:     {"u16le", 2},
	U16BE:     {"u16be", 2},
	S24LE:     {"s24le", 3},
	S24BE:     {"s24be", 3},
	S32LE:     {"s32le", 4},
	S32BE:     {"s32be", 4},
	Float32LE: {"f32le", 4},
	Float32BE: {"f32be", 4},
	Float64LE: {"f64le", 8},
	Float64BE: {"f64be", 8},
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool { return k < kindCount }

func (k Kind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return kindInfo[k].name
}

// SampleSize is the number of bytes one sample of one channel occupies.
// It returns 0 for an invalid kind.
func (k Kind) SampleSize() int {
	if !k.Valid() {
		return 0
	}
	return kindInfo[k].size
}

// BitsPerSample is SampleSize in bits.
func (k Kind) BitsPerSample() int { return k.SampleSize() * 8 }

// IsFloat reports whether samples are IEEE floating point.
func (k Kind) IsFloat() bool {
	switch k {
	case Float32LE, Float32BE, Float64LE, Float64BE:
		return true
	}
	return false
}

// ParseKind returns the Kind whose String form is name.
func ParseKind(name string) (Kind, error) {
	for k := range kindCount {
		if kindInfo[k].name == name {
			return k, nil
		}
	}
	return 0, ErrUnknownKind
}
