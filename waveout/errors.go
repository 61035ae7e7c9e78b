// SPDX-License-Identifier: EPL-2.0

package waveout

import (
	"errors"
	"fmt"
)

var (
	// ErrBusy indicates a buffer could not be deregistered because the
	// driver still holds it. Treat it as transient.
	ErrBusy = errors.New("buffer still held by driver")

	// ErrOutOfMemory indicates a buffer could not be grown.
	ErrOutOfMemory = errors.New("out of memory growing buffer")

	// ErrFormatBuild indicates no format descriptor exists for the request.
	ErrFormatBuild = errors.New("cannot build format descriptor")

	ErrDriverOpen     = errors.New("driver open failed")
	ErrDriverRegister = errors.New("driver buffer registration failed")
	ErrDriverSubmit   = errors.New("driver buffer submission failed")
	ErrDriverClose    = errors.New("driver close failed")

	ErrNotOpen     = errors.New("sink is not open")
	ErrAlreadyOpen = errors.New("sink is already open")
	ErrStillOpen   = errors.New("sink must be closed before destroy")
	ErrDestroyed   = errors.New("sink has been destroyed")
)

// DriverError reports a driver call that failed. Kind is one of the
// sentinel errors above and Code is the driver status, unmodified.
type DriverError struct {
	Kind error
	Code Result
	Err  error
}

func newDriverError(kind, err error) *DriverError {
	code := ResultError
	var r Result
	if errors.As(err, &r) {
		code = r
	}
	return &DriverError{Kind: kind, Code: code, Err: err}
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("waveout: %v: %v", e.Kind, e.Err)
}

func (e *DriverError) Unwrap() []error { return []error{e.Kind, e.Err} }

// Code extracts the driver status carried by err, if any.
func Code(err error) (Result, bool) {
	var de *DriverError
	if errors.As(err, &de) {
		return de.Code, true
	}
	var r Result
	if errors.As(err, &r) {
		return r, true
	}
	return ResultNoError, false
}
