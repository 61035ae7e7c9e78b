// SPDX-License-Identifier: EPL-2.0

package pcmout

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/pcmout/pcm"
)

// DefaultBlockSize is the block size Play uses when given a non-positive one.
const DefaultBlockSize = 4096

// Play streams st into s and returns the number of bytes written.
//
// The pipeline:
//  1. Opens s with st's format
//  2. Reads st in blocks of blockSize bytes, rounded down to whole frames
//  3. Writes each block to s
//  4. Drains and closes s
//
// Parameters:
//   - ctx: Stops playback when cancelled. Queued audio is flushed, s is
//     closed and ctx.Err() is returned. A Write already blocked on the sink
//     is not interrupted by ctx; call s.Flush from another goroutine for that.
//   - s: Any Sink. It must not be open.
//   - st: The PCM source. Play does not close it.
//   - blockSize: Bytes per Write (e.g., 4096). A trailing partial frame
//     is dropped.
//
// Example:
//
//	st, _ := wav.Decoder{}.Decode(file)
//	sink := waveout.New(waveout.System(), "", "player", "")
//	n, err := pcmout.Play(ctx, sink, st, 4096)
func Play(ctx context.Context, s Sink, st pcm.Stream, blockSize int) (int64, error) {
	f := st.Format()
	if err := f.Validate(); err != nil {
		return 0, fmt.Errorf("play: %w", err)
	}
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}

	frame := f.FrameSize()
	blockSize = max(blockSize/frame, 1) * frame

	if err := s.Open(f.Kind, f.Rate, f.Channels); err != nil {
		return 0, fmt.Errorf("play: open: %w", err)
	}

	var total int64
	buf := make([]byte, blockSize)
	for {
		if err := ctx.Err(); err != nil {
			return total, stop(s, err)
		}

		n, rerr := io.ReadFull(st, buf)
		n -= n % frame
		if n > 0 {
			if err := s.Write(buf[:n]); err != nil {
				return total, stop(s, fmt.Errorf("play: write: %w", err))
			}
			total += int64(n)
		}

		if errors.Is(rerr, io.EOF) || errors.Is(rerr, io.ErrUnexpectedEOF) {
			break
		}
		if rerr != nil {
			return total, stop(s, fmt.Errorf("play: read: %w", rerr))
		}
	}

	if err := s.Drain(); err != nil {
		return total, stop(s, fmt.Errorf("play: drain: %w", err))
	}
	if err := s.Close(); err != nil {
		return total, fmt.Errorf("play: close: %w", err)
	}

	return total, nil
}

// stop abandons playback after cause and closes s.
func stop(s Sink, cause error) error {
	return errors.Join(cause, s.Flush(), s.Close())
}
