// SPDX-License-Identifier: EPL-2.0

package waveout

// fakeDevice is a minimal Device for the slot and ring tests. Writes are
// never completed by it; tests call slot.complete themselves.
type fakeDevice struct {
	prepares   int
	unprepares int
	writes     int

	prepareErr   error
	unprepareErr error
	writeErr     error

	sizes []int
}

func (d *fakeDevice) Prepare(b *Buffer) error {
	d.prepares++
	if d.prepareErr != nil {
		return d.prepareErr
	}
	d.sizes = append(d.sizes, len(b.Data))
	return nil
}

func (d *fakeDevice) Unprepare(*Buffer) error {
	d.unprepares++
	return d.unprepareErr
}

func (d *fakeDevice) Write(*Buffer) error {
	d.writes++
	return d.writeErr
}

func (d *fakeDevice) Reset() error { return nil }
func (d *fakeDevice) Close() error { return nil }
