package executor

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"dario.lol/hover/internal/ui"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

const ansiEraseLine = "\r\x1b[2K"

type result[T any] struct {
	res      T
	err      error
	duration time.Duration
}

func interactive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func startTask[T any](task func(progress chan<- string) (T, error)) (<-chan result[T], <-chan string) {
	resultChan := make(chan result[T], 1)
	progressChan := make(chan string)

	go func() {
		start := time.Now()
		res, err := task(progressChan)
		duration := time.Since(start)
		close(progressChan)
		resultChan <- result[T]{res: res, err: err, duration: duration}
	}()

	return resultChan, progressChan
}

// runSilently runs task, discarding its progress messages.
func runSilently[T any](task func(progress chan<- string) (T, error)) (T, time.Duration, error) {
	resultChan, progress := startTask(task)
	for {
		select {
		case res := <-resultChan:
			return res.res, res.duration, res.err
		case _, ok := <-progress:
			if !ok {
				progress = nil
			}
		}
	}
}

// runStageWithProgress runs task while animating a spinner next to the
// latest progress message. Without a terminal the task runs silently.
func runStageWithProgress[T any](writer *bufio.Writer, initialMessage string, task func(progress chan<- string) (T, error)) (T, time.Duration, error) {
	if !interactive() {
		return runSilently(task)
	}

	resultChan, progress := startTask(task)
	currentMessage := initialMessage
	s := ui.StyledSpinner()

	for {
		select {
		case res := <-resultChan:
			fmt.Fprint(writer, ansiEraseLine)
			_ = writer.Flush()
			return res.res, res.duration, res.err
		case msg, ok := <-progress:
			if !ok {
				progress = nil
				continue
			}
			fmt.Fprint(writer, ansiEraseLine)
			currentMessage = msg
		default:
			var cmd tea.Cmd
			s, cmd = s.Update(spinner.Tick())
			if cmd != nil {
				_ = cmd()
			}
			fmt.Fprintf(writer, "\r%s %s...", s.View(), currentMessage)
			_ = writer.Flush()
			time.Sleep(50 * time.Millisecond)
		}
	}
}
