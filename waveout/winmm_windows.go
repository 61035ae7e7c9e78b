// SPDX-License-Identifier: EPL-2.0

//go:build windows

package waveout

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modwinmm = windows.NewLazySystemDLL("winmm.dll")

	procWaveOutGetNumDevs      = modwinmm.NewProc("waveOutGetNumDevs")
	procWaveOutGetDevCapsW     = modwinmm.NewProc("waveOutGetDevCapsW")
	procWaveOutOpen            = modwinmm.NewProc("waveOutOpen")
	procWaveOutPrepareHeader   = modwinmm.NewProc("waveOutPrepareHeader")
	procWaveOutUnprepareHeader = modwinmm.NewProc("waveOutUnprepareHeader")
	procWaveOutWrite           = modwinmm.NewProc("waveOutWrite")
	procWaveOutReset           = modwinmm.NewProc("waveOutReset")
	procWaveOutClose           = modwinmm.NewProc("waveOutClose")
)

// waveHdr mirrors WAVEHDR.
type waveHdr struct {
	data          uintptr
	bufferLength  uint32
	bytesRecorded uint32
	user          uintptr
	flags         uint32
	loops         uint32
	next          uintptr
	reserved      uintptr
}

// sysHeader is what Buffer.Sys holds. hdr must stay the first field: the
// driver hands back &hdr and the callback recovers the owner from it.
type sysHeader struct {
	hdr   waveHdr
	owner *Buffer
}

// waveOutCaps mirrors WAVEOUTCAPSW.
type waveOutCaps struct {
	mid           uint16
	pid           uint16
	driverVersion uint32
	pname         [MaxNameLen]uint16
	formats       uint32
	channels      uint16
	reserved1     uint16
	support       uint32
}

var (
	callbackOnce sync.Once
	callbackPtr  uintptr

	// live keeps every open device reachable while the OS holds its address.
	live sync.Map
)

func waveOutProc(hwo, msg, instance, param1, param2 uintptr) uintptr {
	d := (*winDevice)(unsafe.Pointer(instance))
	switch Message(msg) {
	case MsgDone:
		h := (*sysHeader)(unsafe.Pointer(param1))
		d.cb(MsgDone, h.owner)
	case MsgClose:
		d.cb(MsgClose, nil)
	}
	return 0
}

type winmm struct{}

// System returns the winmm.dll driver.
func System() Driver { return winmm{} }

func (winmm) NumDevices() int {
	r, _, _ := procWaveOutGetNumDevs.Call()
	return int(r)
}

func (winmm) DeviceCaps(id DeviceID) (Caps, error) {
	var c waveOutCaps
	r, _, _ := procWaveOutGetDevCapsW.Call(uintptr(id), uintptr(unsafe.Pointer(&c)), unsafe.Sizeof(c))
	if Result(r) != ResultNoError {
		return Caps{}, Result(r)
	}
	return Caps{
		Name:           windows.UTF16ToString(c.pname[:]),
		ManufacturerID: c.mid,
		ProductID:      c.pid,
		DriverVersion:  c.driverVersion,
		Formats:        c.formats,
		Channels:       c.channels,
		Support:        c.support,
	}, nil
}

func (winmm) Open(id DeviceID, f *WaveFormat, cb Callback, flags OpenFlags) (Device, error) {
	callbackOnce.Do(func() { callbackPtr = windows.NewCallback(waveOutProc) })

	d := &winDevice{cb: cb, format: f.Bytes()}
	live.Store(d, struct{}{})

	var h uintptr
	r, _, _ := procWaveOutOpen.Call(
		uintptr(unsafe.Pointer(&h)),
		uintptr(id),
		uintptr(unsafe.Pointer(&d.format[0])),
		callbackPtr,
		uintptr(unsafe.Pointer(d)),
		uintptr(flags),
	)
	if Result(r) != ResultNoError {
		live.Delete(d)
		return nil, Result(r)
	}
	d.handle = h

	return d, nil
}

type winDevice struct {
	handle uintptr
	cb     Callback
	format []byte
	closed atomic.Bool
}

func (d *winDevice) header(b *Buffer) *sysHeader {
	h, ok := b.Sys.(*sysHeader)
	if !ok {
		h = &sysHeader{owner: b}
		b.Sys = h
	}
	return h
}

func (d *winDevice) call(proc *windows.LazyProc, h *sysHeader) error {
	r, _, _ := proc.Call(d.handle, uintptr(unsafe.Pointer(&h.hdr)), unsafe.Sizeof(h.hdr))
	if Result(r) != ResultNoError {
		return Result(r)
	}
	return nil
}

func (d *winDevice) Prepare(b *Buffer) error {
	h := d.header(b)
	h.hdr = waveHdr{
		data:         uintptr(unsafe.Pointer(unsafe.SliceData(b.Data))),
		bufferLength: uint32(len(b.Data)),
	}
	return d.call(procWaveOutPrepareHeader, h)
}

func (d *winDevice) Unprepare(b *Buffer) error {
	h := d.header(b)
	if d.closed.Load() {
		// closing the handle released every registration
		h.hdr.flags = 0
		return nil
	}
	return d.call(procWaveOutUnprepareHeader, h)
}

func (d *winDevice) Write(b *Buffer) error {
	h := d.header(b)
	h.hdr.bufferLength = uint32(b.Len)
	return d.call(procWaveOutWrite, h)
}

func (d *winDevice) Reset() error {
	r, _, _ := procWaveOutReset.Call(d.handle)
	if Result(r) != ResultNoError {
		return Result(r)
	}
	return nil
}

func (d *winDevice) Close() error {
	r, _, _ := procWaveOutClose.Call(d.handle)
	if Result(r) != ResultNoError {
		return Result(r)
	}
	d.closed.Store(true)
	live.Delete(d)
	return nil
}
