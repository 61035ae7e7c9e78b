// SPDX-License-Identifier: EPL-2.0

package waveout

// DeviceID selects an output device by index, or WaveMapper for the
// system-preferred device.
type DeviceID uint32

// WaveMapper is the default mapper sentinel.
const WaveMapper DeviceID = 0xFFFFFFFF

// MaxNameLen is the size, in UTF-16 units including the terminator, of the
// name field in the driver's device capabilities.
const MaxNameLen = 32

// Message is a driver callback event code.
type Message uint32

const (
	MsgOpen  Message = 0x3BB // WOM_OPEN
	MsgClose Message = 0x3BC // WOM_CLOSE
	MsgDone  Message = 0x3BD // WOM_DONE
)

// OpenFlags are passed through to the driver's open call.
type OpenFlags uint32

const (
	AllowSync        OpenFlags = 0x0002     // WAVE_ALLOWSYNC
	CallbackFunction OpenFlags = 0x00030000 // CALLBACK_FUNCTION
)

// Caps is what the driver reports about one output device.
type Caps struct {
	Name           string
	ManufacturerID uint16
	ProductID      uint16
	DriverVersion  uint32
	Formats        uint32
	Channels       uint16
	Support        uint32
}

// Buffer is the submission record for one ring slot. The driver borrows
// Data[:Len] from Write until it reports MsgDone for the same *Buffer.
type Buffer struct {
	// Data is the registered region; its length is the slot capacity.
	Data []byte
	// Len is the number of valid bytes handed to the driver.
	Len int
	// Sys holds driver-private registration state. The sink never touches it.
	Sys any

	slot *slot
}

// Callback receives driver events. For MsgDone b is the completed buffer;
// for other messages it is nil. It may run on a driver-owned thread.
type Callback func(msg Message, b *Buffer)

// Driver is the host PCM output API.
type Driver interface {
	// NumDevices reports how many output devices exist.
	NumDevices() int
	// DeviceCaps describes device id.
	DeviceCaps(id DeviceID) (Caps, error)
	// Open opens id for format f. cb receives every event for the device.
	Open(id DeviceID, f *WaveFormat, cb Callback, flags OpenFlags) (Device, error)
}

// Device is an open output device.
type Device interface {
	// Prepare registers b.Data with the driver.
	Prepare(b *Buffer) error
	// Unprepare releases a registration. It returns ResultStillPlaying
	// while the driver still holds b.
	Unprepare(b *Buffer) error
	// Write queues b.Data[:b.Len] for playback.
	Write(b *Buffer) error
	// Reset abandons queued audio and completes every queued buffer.
	Reset() error
	// Close closes the device; the driver then delivers MsgClose.
	Close() error
}

// Devices returns the capabilities of every enumerable device. Devices
// whose caps cannot be read are skipped.
func Devices(drv Driver) []Caps {
	n := drv.NumDevices()
	out := make([]Caps, 0, n)
	for i := range n {
		c, err := drv.DeviceCaps(DeviceID(i))
		if err != nil {
			continue
		}
		out = append(out, c)
	}
	return out
}
