// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"io"
	"sync"
)

// Stream is a source of raw interleaved PCM.
type Stream interface {
	// Read fills p with PCM bytes in Format. It returns io.EOF once the
	// stream is exhausted.
	io.Reader

	// Format describes the bytes Read yields.
	Format() Format

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Stream from an encoded input.
type Decoder interface {
	Decode(r io.Reader) (Stream, error)
}

// Registry maps a format key (usually a file extension such as "wav") to a Decoder.
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}

// Formats returns the registered keys in no particular order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	keys := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		keys = append(keys, k)
	}
	return keys
}
