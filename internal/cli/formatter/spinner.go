package formatter

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Braille dot spinner frames.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a single status line on w until stopped. The label is
// re-evaluated on every frame so it can show a countdown.
type Spinner struct {
	w     io.Writer
	label func() string

	once sync.Once
	stop chan struct{}
	done chan struct{}
}

// NewSpinner creates a spinner that writes to w.
func NewSpinner(w io.Writer, label func() string) *Spinner {
	return &Spinner{
		w:     w,
		label: label,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Start begins the animation. Call Stop to end it.
func (s *Spinner) Start() {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.stop:
				fmt.Fprint(s.w, "\r\033[K")
				return
			case <-ticker.C:
				frame := spinnerFrames[i%len(spinnerFrames)]
				fmt.Fprintf(s.w, "\r  %s %s", StylePurple.Render(frame), Dim(s.label()))
			}
		}
	}()
}

// Stop ends the animation and clears the line. Safe to call twice.
func (s *Spinner) Stop() {
	s.once.Do(func() { close(s.stop) })
	<-s.done
}

// Countdown returns a label that counts down from d, starting now.
func Countdown(message string, d time.Duration) func() string {
	deadline := time.Now().Add(d)
	return func() string {
		return fmt.Sprintf("%s %s", message, FormatCountdown(time.Until(deadline)))
	}
}
