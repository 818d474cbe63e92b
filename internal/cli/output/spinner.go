package output

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner shows an animation while a backend call is in flight. A spinner
// that is not Enabled prints nothing but its final line.
type Spinner struct {
	w       io.Writer
	message string
	enabled bool

	mu   sync.Mutex
	once sync.Once
	done chan struct{}
	wg   sync.WaitGroup
}

// NewSpinner creates a spinner. Pass enabled=false for non-interactive
// output such as pipes or structured formats.
func NewSpinner(w io.Writer, message string, enabled bool) *Spinner {
	return &Spinner{
		w:       w,
		message: message,
		enabled: enabled,
		done:    make(chan struct{}),
	}
}

// Start starts the animation.
func (s *Spinner) Start() {
	if !s.enabled {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for i := 0; ; i++ {
			s.mu.Lock()
			fmt.Fprintf(s.w, "\r%s %s", spinnerFrames[i%len(spinnerFrames)], s.message)
			s.mu.Unlock()
			select {
			case <-s.done:
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop stops the animation and clears the line.
func (s *Spinner) Stop() {
	s.finish("")
}

// Success stops the spinner with a success line.
func (s *Spinner) Success(message string) {
	s.finish("✓ " + message + "\n")
}

// Fail stops the spinner with a failure line.
func (s *Spinner) Fail(message string) {
	s.finish("✗ " + message + "\n")
}

func (s *Spinner) finish(line string) {
	s.once.Do(func() {
		close(s.done)
		s.wg.Wait()

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.enabled {
			fmt.Fprint(s.w, "\r\033[K")
		}
		fmt.Fprint(s.w, line)
	})
}
