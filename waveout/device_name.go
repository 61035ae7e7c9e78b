// SPDX-License-Identifier: EPL-2.0

package waveout

import "unicode/utf16"

// ResolveDevice finds the device whose enumerated name matches name and
// returns WaveMapper when name is empty or nothing matches.
//
// Names are compared unit by unit in UTF-16, the encoding the driver
// reports. A device matches when both names end together, or when the
// comparison runs to the end of the driver's fixed-size name field, which
// is how a long requested name finds its truncated device name.
func ResolveDevice(drv Driver, name string) DeviceID {
	if name == "" {
		return WaveMapper
	}

	want := utf16.Encode([]rune(name))
	for i := range drv.NumDevices() {
		caps, err := drv.DeviceCaps(DeviceID(i))
		if err != nil {
			continue
		}
		if nameMatches(want, capsName(caps.Name)) {
			return DeviceID(i)
		}
	}

	return WaveMapper
}

// capsName encodes an enumerated name the way the driver stores it: at most
// MaxNameLen-1 units followed by the terminator.
func capsName(name string) []uint16 {
	u := utf16.Encode([]rune(name))
	if len(u) > MaxNameLen-1 {
		u = u[:MaxNameLen-1]
	}
	return u
}

func nameMatches(want, have []uint16) bool {
	i := 0
	for i < len(want) && i < len(have) && want[i] == have[i] && want[i] != 0 {
		i++
	}
	bothEnded := i == len(want) && i == len(have)
	return bothEnded || i == MaxNameLen-1
}
