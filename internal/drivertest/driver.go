// SPDX-License-Identifier: EPL-2.0

// Package drivertest provides an instrumented in-memory waveout.Driver.
//
// The mock counts registrations and submissions, lets a test decide when
// buffers complete, injects driver failures, and records every time the
// producer touches a buffer the driver still owns.
package drivertest

import (
	"bytes"
	"sync"
	"time"

	"github.com/eapache/queue"

	"github.com/ik5/pcmout/waveout"
)

// Mode selects when submitted buffers complete.
type Mode int

const (
	// Immediate completes a buffer inside Write.
	Immediate Mode = iota
	// Delayed completes the oldest pending buffer Delay after each Write.
	Delayed
	// Manual completes buffers only through Complete, Reset or Close.
	Manual
)

// Stats is a snapshot of the mock's counters.
type Stats struct {
	Opens      int
	Closes     int
	Prepares   int
	Unprepares int
	Writes     int
	Resets     int

	Registered    int
	MaxRegistered int
	Pending       int
	MaxPending    int

	// BusyReplies counts Unprepare calls answered with ResultStillPlaying.
	BusyReplies int
	// Violations counts producer writes into, re-submissions of, or
	// re-registrations of a buffer the driver still owned.
	Violations int
	// Sizes lists the byte size of every Prepare, in order.
	Sizes []int
}

// OpenCall records the arguments of the last Open.
type OpenCall struct {
	ID     waveout.DeviceID
	Format *waveout.WaveFormat
	Flags  waveout.OpenFlags
}

type submission struct {
	buf      *waveout.Buffer
	data     []byte
	snapshot []byte
}

// Option configures a Driver.
type Option func(*Driver)

// WithDevices sets the enumerated device names.
func WithDevices(names ...string) Option {
	return func(d *Driver) {
		for _, n := range names {
			d.devices = append(d.devices, waveout.Caps{Name: n, Channels: 2})
		}
	}
}

// WithMode sets the completion mode. delay only matters for Delayed.
func WithMode(m Mode, delay time.Duration) Option {
	return func(d *Driver) {
		d.mode = m
		d.delay = delay
	}
}

// Driver is a fake waveout.Driver. It is safe for concurrent use.
type Driver struct {
	mu sync.Mutex

	devices []waveout.Caps
	mode    Mode
	delay   time.Duration

	openErr    error
	prepareErr error
	writeErr   error
	closeErr   error
	busy       int

	dev      *Device
	lastOpen OpenCall
	stats    Stats
}

// New returns a driver with no devices that completes buffers immediately.
func New(opts ...Option) *Driver {
	d := &Driver{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SetMode changes the completion mode for later writes.
func (d *Driver) SetMode(m Mode, delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.mode, d.delay = m, delay
}

// FailNextOpen makes the next Open return err.
func (d *Driver) FailNextOpen(err error) { d.mu.Lock(); d.openErr = err; d.mu.Unlock() }

// FailNextPrepare makes the next Prepare return err.
func (d *Driver) FailNextPrepare(err error) { d.mu.Lock(); d.prepareErr = err; d.mu.Unlock() }

// FailNextWrite makes the next Write return err.
func (d *Driver) FailNextWrite(err error) { d.mu.Lock(); d.writeErr = err; d.mu.Unlock() }

// FailNextClose makes the next Close return err.
func (d *Driver) FailNextClose(err error) { d.mu.Lock(); d.closeErr = err; d.mu.Unlock() }

// BusyUnprepares makes the next n Unprepare calls report ResultStillPlaying.
func (d *Driver) BusyUnprepares(n int) { d.mu.Lock(); d.busy = n; d.mu.Unlock() }

// Stats returns a snapshot of the counters.
func (d *Driver) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.stats
	s.Sizes = append([]int(nil), d.stats.Sizes...)
	return s
}

// LastOpen returns the arguments of the most recent Open.
func (d *Driver) LastOpen() OpenCall {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastOpen
}

// Device returns the most recently opened device, or nil.
func (d *Driver) Device() *Device {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dev
}

func (d *Driver) NumDevices() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.devices)
}

func (d *Driver) DeviceCaps(id waveout.DeviceID) (waveout.Caps, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if int(id) >= len(d.devices) {
		return waveout.Caps{}, waveout.ResultBadDeviceID
	}
	return d.devices[id], nil
}

func (d *Driver) Open(id waveout.DeviceID, f *waveout.WaveFormat, cb waveout.Callback, flags waveout.OpenFlags) (waveout.Device, error) {
	d.mu.Lock()
	d.lastOpen = OpenCall{ID: id, Format: f, Flags: flags}
	if err := d.openErr; err != nil {
		d.openErr = nil
		d.mu.Unlock()
		return nil, err
	}
	if id != waveout.WaveMapper && int(id) >= len(d.devices) {
		d.mu.Unlock()
		return nil, waveout.ResultBadDeviceID
	}

	dev := &Device{
		drv:        d,
		cb:         cb,
		registered: make(map[*waveout.Buffer]bool),
		inflight:   make(map[*waveout.Buffer]bool),
		pending:    queue.New(),
	}
	d.dev = dev
	d.stats.Opens++
	d.mu.Unlock()

	cb(waveout.MsgOpen, nil)
	return dev, nil
}

// Device is a fake open device.
type Device struct {
	drv *Driver
	cb  waveout.Callback

	registered map[*waveout.Buffer]bool
	inflight   map[*waveout.Buffer]bool
	pending    *queue.Queue // of *submission, oldest first
	history    []*waveout.Buffer
	closed     bool
}

func (v *Device) Prepare(b *waveout.Buffer) error {
	d := v.drv
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stats.Prepares++
	if err := d.prepareErr; err != nil {
		d.prepareErr = nil
		return err
	}
	if v.closed {
		return waveout.ResultInvalHandle
	}
	if v.inflight[b] || v.registered[b] {
		d.stats.Violations++
	}
	if len(b.Data) == 0 {
		return waveout.ResultInvalParam
	}

	v.registered[b] = true
	d.stats.Registered++
	d.stats.MaxRegistered = max(d.stats.MaxRegistered, d.stats.Registered)
	d.stats.Sizes = append(d.stats.Sizes, len(b.Data))

	return nil
}

func (v *Device) Unprepare(b *waveout.Buffer) error {
	d := v.drv
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stats.Unprepares++
	if d.busy > 0 {
		d.busy--
		d.stats.BusyReplies++
		return waveout.ResultStillPlaying
	}
	if v.inflight[b] {
		d.stats.BusyReplies++
		return waveout.ResultStillPlaying
	}
	if v.registered[b] {
		delete(v.registered, b)
		d.stats.Registered--
	}

	return nil
}

func (v *Device) Write(b *waveout.Buffer) error {
	d := v.drv
	d.mu.Lock()

	d.stats.Writes++
	if err := d.writeErr; err != nil {
		d.writeErr = nil
		d.mu.Unlock()
		return err
	}
	if v.closed {
		d.mu.Unlock()
		return waveout.ResultInvalHandle
	}
	if !v.registered[b] {
		d.mu.Unlock()
		return waveout.ResultUnprepared
	}
	if v.inflight[b] {
		d.stats.Violations++
	}

	data := b.Data[:b.Len]
	v.inflight[b] = true
	v.history = append(v.history, b)
	v.pending.Add(&submission{buf: b, data: data, snapshot: bytes.Clone(data)})
	d.stats.Pending++
	d.stats.MaxPending = max(d.stats.MaxPending, d.stats.Pending)

	mode, delay := d.mode, d.delay
	d.mu.Unlock()

	switch mode {
	case Immediate:
		v.Complete(1)
	case Delayed:
		time.AfterFunc(delay, func() { v.Complete(1) })
	}

	return nil
}

// Complete finishes up to n of the oldest pending buffers and returns how
// many it finished.
func (v *Device) Complete(n int) int {
	var done []*waveout.Buffer

	d := v.drv
	d.mu.Lock()
	for len(done) < n && v.pending.Length() > 0 {
		done = append(done, v.retire())
	}
	d.mu.Unlock()

	for _, b := range done {
		v.cb(waveout.MsgDone, b)
	}
	return len(done)
}

// retire pops the oldest submission and checks the producer left it alone.
// d.mu must be held.
func (v *Device) retire() *waveout.Buffer {
	d := v.drv
	sub := v.pending.Remove().(*submission)
	b := sub.buf

	switch {
	case len(b.Data) < len(sub.data) || len(sub.data) > 0 && &b.Data[0] != &sub.data[0]:
		d.stats.Violations++
	case !bytes.Equal(sub.data, sub.snapshot):
		d.stats.Violations++
	}

	delete(v.inflight, b)
	d.stats.Pending--
	return b
}

// Submitted returns every buffer passed to Write, in order.
func (v *Device) Submitted() []*waveout.Buffer {
	v.drv.mu.Lock()
	defer v.drv.mu.Unlock()
	return append([]*waveout.Buffer(nil), v.history...)
}

// Pending reports how many submitted buffers have not completed.
func (v *Device) Pending() int {
	v.drv.mu.Lock()
	defer v.drv.mu.Unlock()
	return v.pending.Length()
}

func (v *Device) Reset() error {
	d := v.drv
	d.mu.Lock()
	d.stats.Resets++
	var done []*waveout.Buffer
	for v.pending.Length() > 0 {
		done = append(done, v.retire())
	}
	d.mu.Unlock()

	for _, b := range done {
		v.cb(waveout.MsgDone, b)
	}
	return nil
}

func (v *Device) Close() error {
	d := v.drv
	d.mu.Lock()
	if err := d.closeErr; err != nil {
		d.closeErr = nil
		d.mu.Unlock()
		return err
	}
	if v.pending.Length() > 0 {
		d.mu.Unlock()
		return waveout.ResultStillPlaying
	}
	v.closed = true
	d.stats.Closes++
	d.mu.Unlock()

	v.cb(waveout.MsgClose, nil)
	return nil
}
