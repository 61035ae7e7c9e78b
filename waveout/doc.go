// SPDX-License-Identifier: EPL-2.0

// Package waveout is a streaming PCM sink for the legacy waveOut API.
//
// A Sink keeps a ring of RingSize buffers registered with the driver. Write
// copies a block into the next buffer in round-robin order and submits it;
// the driver signals completion from its own thread and the buffer becomes
// available again. When every buffer is in flight Write blocks, which is the
// only back-pressure a producer sees.
//
//	s := waveout.New(waveout.System(), "", "myapp", "speech")
//	if err := s.Open(pcm.S16LE, 22050, 1); err != nil {
//	    return err
//	}
//	for _, block := range blocks {
//	    if err := s.Write(block); err != nil {
//	        return err
//	    }
//	}
//	s.Drain()
//	s.Close()
//	s.Destroy()
//
// # Lifecycle
//
// A Sink starts Created, moves to Open on Open and to Closed on Close. It
// may be opened again after Close. Destroy requires it not to be Open.
// A failed Open leaves the sink Closed; a failed Write leaves it Open.
//
// # Cancellation
//
// Waits have no timeout. Flush is the way out: it tells the driver to drop
// queued audio and hand every buffer back, which releases a blocked Write
// or Drain. DrainContext gives up on a context instead.
//
// # Errors
//
// Driver failures are reported as *DriverError. Its Kind is one of
// ErrDriverOpen, ErrDriverRegister, ErrDriverSubmit, ErrDriverClose or
// ErrBusy, and its Code is the driver status as returned:
//
//	if code, ok := waveout.Code(err); ok {
//	    log.Printf("%s: %v", code.Name(), code)
//	}
//
// # Drivers
//
// System returns the winmm.dll binding on Windows and a driver without
// devices elsewhere. Anything implementing Driver and Device can stand in,
// which is how the tests run without sound hardware.
package waveout
