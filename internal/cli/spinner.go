package cli

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// spinner is a minimal progress indicator for network-bound commands. It
// writes to stderr so piped stdout output stays clean.
type spinner struct {
	message string
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func newSpinner(message string) *spinner {
	return &spinner{
		message: message,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// start begins the animation in a background goroutine.
func (s *spinner) start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		i := 0
		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				frame := spinnerFrames[i%len(spinnerFrames)]
				fmt.Fprintf(os.Stderr, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
				i++
			}
		}
	}()
}

// stop halts the animation and clears the line. Safe to call more than once.
func (s *spinner) stop() {
	s.once.Do(func() { close(s.done) })
	<-s.stopped
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}
