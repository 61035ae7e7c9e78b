// SPDX-License-Identifier: EPL-2.0

package pcmout

import (
	"github.com/ik5/pcmout/pcm"
)

// Sink is the capability set every audio output implements. waveout.Sink
// plays through the host driver; wav.Sink writes a file.
type Sink interface {
	// Open prepares the sink for PCM of the given kind, rate and channel count.
	Open(kind pcm.Kind, rate uint32, channels uint8) error
	// Write submits one block of interleaved PCM. An empty block is a no-op.
	Write(p []byte) error
	// Drain blocks until everything written has been consumed.
	Drain() error
	// Flush abandons anything queued but not yet consumed.
	Flush() error
	// Close releases the output. The sink may be opened again.
	Close() error
	// Destroy releases the sink itself. It must not be open.
	Destroy() error
}
