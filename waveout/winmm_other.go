// SPDX-License-Identifier: EPL-2.0

//go:build !windows

package waveout

// System returns the host driver. Outside Windows there is none: no
// devices are enumerated and Open fails with ResultNoDriver.
func System() Driver { return noDriver{} }

type noDriver struct{}

func (noDriver) NumDevices() int { return 0 }

func (noDriver) DeviceCaps(DeviceID) (Caps, error) { return Caps{}, ResultBadDeviceID }

func (noDriver) Open(DeviceID, *WaveFormat, Callback, OpenFlags) (Device, error) {
	return nil, ResultNoDriver
}
