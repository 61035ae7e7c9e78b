// SPDX-License-Identifier: EPL-2.0

package waveout

import "context"

// event is a manual-reset binary signal. The single-slot channel holds a
// token exactly while the event is raised.
type event struct {
	c chan struct{}
}

// newEvent returns a raised event.
func newEvent() *event {
	e := &event{c: make(chan struct{}, 1)}
	e.c <- struct{}{}
	return e
}

// set raises the event. Raising a raised event is a no-op, so the driver
// callback may call it any number of times.
func (e *event) set() {
	select {
	case e.c <- struct{}{}:
	default:
	}
}

// reset lowers the event.
func (e *event) reset() {
	select {
	case <-e.c:
	default:
	}
}

// wait blocks until the event is raised and leaves it raised.
func (e *event) wait() {
	<-e.c
	e.set()
}

func (e *event) waitContext(ctx context.Context) error {
	select {
	case <-e.c:
		e.set()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *event) isSet() bool { return len(e.c) == 1 }
