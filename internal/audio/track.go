package audio

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/go-mp3"
)

// Track is a decoded MP3 stream in device format (16-bit stereo).
type Track struct {
	*mp3.Decoder
	file *os.File
}

// OpenTrack opens an MP3 file for playback at sampleRate. Files encoded
// at a different rate are rejected rather than resampled.
func OpenTrack(path string, sampleRate int) (*Track, error) {
	if path == "" {
		return nil, fmt.Errorf("opening track: no path")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening track: %w", err)
	}
	d, err := mp3.NewDecoder(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decoding track %s: %w", path, err)
	}
	if d.SampleRate() != sampleRate {
		f.Close()
		return nil, fmt.Errorf("track %s is %d Hz, device is %d Hz", path, d.SampleRate(), sampleRate)
	}
	return &Track{Decoder: d, file: f}, nil
}

// Close releases the underlying file.
func (t *Track) Close() error {
	return t.file.Close()
}
