package audio

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV encodes mono samples as a 16-bit PCM WAV file.
func WriteWAV(w io.WriteSeeker, samples []float32, sampleRate int) error {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(toInt16(s))
	}

	enc := wav.NewEncoder(w, sampleRate, 16, 1, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("writing wav samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}
	return nil
}
