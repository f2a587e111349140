package audio

import (
	"errors"
	"io"
	"sync"
)

type fakeVoice struct {
	mu      sync.Mutex
	stopped int
}

func (v *fakeVoice) Stop() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stopped++
	return nil
}

func (v *fakeVoice) Stops() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stopped
}

type fakeDevice struct {
	mu        sync.Mutex
	rate      int
	played    [][]byte
	voices    []*fakeVoice
	suspends  int
	resumes   int
	failPlays bool
}

func (d *fakeDevice) SampleRate() int { return d.rate }

func (d *fakeDevice) Play(r io.Reader) (Voice, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failPlays {
		return nil, errors.New("device busy")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	d.played = append(d.played, b)
	v := &fakeVoice{}
	d.voices = append(d.voices, v)
	return v, nil
}

func (d *fakeDevice) Suspend() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.suspends++
	return nil
}

func (d *fakeDevice) Resume() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resumes++
	return nil
}

func (d *fakeDevice) Plays() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.played)
}

// countingFactory returns the device and counts how often it was built.
func countingFactory(d Device, err error) (DeviceFactory, *int) {
	calls := 0
	return func() (Device, error) {
		calls++
		if err != nil {
			return nil, err
		}
		return d, nil
	}, &calls
}
