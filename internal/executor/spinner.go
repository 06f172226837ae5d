package executor

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"dario.lol/ddns/internal/ui"
	"github.com/charmbracelet/bubbles/spinner"
	"golang.org/x/term"
)

const ansiEraseLine = "\r\x1b[2K"

// Progress reports msg on ch. It is a no-op for silent steps, which get a
// nil channel.
func Progress(ch chan<- string, msg string) {
	if ch != nil {
		ch <- msg
	}
}

// spinnerWriter animates a spinner next to the running step's message.
// On anything but a terminal it only drains progress updates.
type spinnerWriter struct {
	w           *bufio.Writer
	interactive bool
}

func newSpinnerWriter(out io.Writer) *spinnerWriter {
	interactive := false
	if f, ok := out.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}
	return &spinnerWriter{w: bufio.NewWriter(out), interactive: interactive}
}

func (s *spinnerWriter) begin() {
	if s.interactive {
		fmt.Fprintln(s.w)
		_ = s.w.Flush()
	}
}

func (s *spinnerWriter) clear() {
	if s.interactive {
		fmt.Fprint(s.w, ansiEraseLine)
		_ = s.w.Flush()
	}
}

func (s *spinnerWriter) run(message string, task func(progress chan<- string) error) error {
	resultChan := make(chan error, 1)
	progressChan := make(chan string)

	go func() {
		err := task(progressChan)
		close(progressChan)
		resultChan <- err
	}()

	if !s.interactive {
		for range progressChan {
		}
		return <-resultChan
	}

	sp := ui.StyledSpinner()
	current := message
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	progress := progressChan
	for {
		select {
		case err := <-resultChan:
			s.clear()
			return err
		case msg, ok := <-progress:
			if !ok {
				progress = nil
				continue
			}
			fmt.Fprint(s.w, ansiEraseLine)
			current = msg
		case <-ticker.C:
			sp, _ = sp.Update(spinner.Tick())
			fmt.Fprintf(s.w, "\r%s %s...", sp.View(), current)
			_ = s.w.Flush()
		}
	}
}
