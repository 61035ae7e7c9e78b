// SPDX-License-Identifier: EPL-2.0

package waveout

import "fmt"

// Result is a driver status code (an MMRESULT). The zero value means success.
// A non-zero Result is also an error, so drivers can return it directly.
type Result uint32

const (
	ResultNoError      Result = 0
	ResultError        Result = 1
	ResultBadDeviceID  Result = 2
	ResultNotEnabled   Result = 3
	ResultAllocated    Result = 4
	ResultInvalHandle  Result = 5
	ResultNoDriver     Result = 6
	ResultNoMem        Result = 7
	ResultNotSupported Result = 8
	ResultBadErrNum    Result = 9
	ResultInvalFlag    Result = 10
	ResultInvalParam   Result = 11
	ResultHandleBusy   Result = 12
	ResultNoDriverCB   Result = 20

	ResultBadFormat    Result = 32
	ResultStillPlaying Result = 33
	ResultUnprepared   Result = 34
	ResultSync         Result = 35
)

var resultText = map[Result]struct{ name, text string }{
	ResultNoError:      {"MMSYSERR_NOERROR", "no error"},
	ResultError:        {"MMSYSERR_ERROR", "unspecified error"},
	ResultBadDeviceID:  {"MMSYSERR_BADDEVICEID", "device ID out of range"},
	ResultNotEnabled:   {"MMSYSERR_NOTENABLED", "driver failed enable"},
	ResultAllocated:    {"MMSYSERR_ALLOCATED", "device already allocated"},
	ResultInvalHandle:  {"MMSYSERR_INVALHANDLE", "device handle is invalid"},
	ResultNoDriver:     {"MMSYSERR_NODRIVER", "no device driver present"},
	ResultNoMem:        {"MMSYSERR_NOMEM", "memory allocation error"},
	ResultNotSupported: {"MMSYSERR_NOTSUPPORTED", "function isn't supported"},
	ResultBadErrNum:    {"MMSYSERR_BADERRNUM", "error value out of range"},
	ResultInvalFlag:    {"MMSYSERR_INVALFLAG", "invalid flag passed"},
	ResultInvalParam:   {"MMSYSERR_INVALPARAM", "invalid parameter passed"},
	ResultHandleBusy:   {"MMSYSERR_HANDLEBUSY", "handle being used simultaneously on another thread"},
	ResultNoDriverCB:   {"MMSYSERR_NODRIVERCB", "driver does not call DriverCallback"},
	ResultBadFormat:    {"WAVERR_BADFORMAT", "unsupported wave format"},
	ResultStillPlaying: {"WAVERR_STILLPLAYING", "still something playing"},
	ResultUnprepared:   {"WAVERR_UNPREPARED", "header not prepared"},
	ResultSync:         {"WAVERR_SYNC", "device is synchronous"},
}

// Name returns the symbolic constant name, e.g. "WAVERR_STILLPLAYING".
func (r Result) Name() string {
	if t, ok := resultText[r]; ok {
		return t.name
	}
	return fmt.Sprintf("MMRESULT(%d)", uint32(r))
}

// Error translates the code into human readable text.
func (r Result) Error() string {
	if t, ok := resultText[r]; ok {
		return t.text + " (" + t.name + ")"
	}
	return fmt.Sprintf("unknown driver status %d", uint32(r))
}
