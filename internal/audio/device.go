package audio

import "io"

// Device is an audio output accepting interleaved signed 16-bit
// little-endian stereo PCM at SampleRate.
type Device interface {
	SampleRate() int
	Play(r io.Reader) (Voice, error)
	Suspend() error
	Resume() error
}

// Voice is one playing stream.
type Voice interface {
	Stop() error
}

// DeviceFactory creates the output device. It is called at most once.
type DeviceFactory func() (Device, error)
