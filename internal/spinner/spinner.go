// Package spinner renders a single-line activity indicator for interactive
// terminal output. Callers are responsible for only using it when the
// writer is a terminal.
package spinner

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// While runs fn with an animated spinner and message showing on w, clears
// the line when fn returns, and passes fn's error through.
func While(w io.Writer, message string, fn func() error) error {
	stop := start(w, message)
	defer stop()
	return fn()
}

// start displays the spinner until the returned stop function is called.
// stop blocks until the line has been cleared.
func start(w io.Writer, message string) (stop func()) {
	done := make(chan struct{})
	cleared := make(chan struct{})
	var stopOnce sync.Once
	go func() {
		i := 0
		for {
			select {
			case <-done:
				fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", len(message)+2)) //nolint:errcheck
				close(cleared)
				return
			case <-time.After(80 * time.Millisecond):
				fmt.Fprintf(w, "\r%s %s", frames[i%len(frames)], message) //nolint:errcheck
				i++
			}
		}
	}()
	return func() {
		stopOnce.Do(func() {
			close(done)
		})
		<-cleared
	}
}
