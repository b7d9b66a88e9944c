package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
	"shotpair/pkg/models"
)

// ConsoleReporter prints one line per pair. On a terminal a spinner runs
// while a pair is being captured.
type ConsoleReporter struct {
	mu      sync.Mutex
	out     io.Writer
	spinner *spinner.Spinner
	padding int
	total   int
}

// NewConsoleReporter reports to stdout, with a spinner only when stdout is a terminal
func NewConsoleReporter() *ConsoleReporter {
	return NewReporter(Output, IsTerminal(os.Stdout))
}

// NewReporter reports to out. interactive enables the spinner.
func NewReporter(out io.Writer, interactive bool) *ConsoleReporter {
	r := &ConsoleReporter{out: out, padding: 3}
	if interactive {
		r.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	}
	return r
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// RunStarted is called once the input has been read
func (r *ConsoleReporter) RunStarted(total, padding int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.total = total
	r.padding = padding
	fmt.Fprintf(r.out, "%s %d pairs\n", Cyan("[INPUT]"), total)
}

// PairStarted is called before both sides of pair are captured
func (r *ConsoleReporter) PairStarted(pair models.PagePair, fileName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.spinner == nil {
		return
	}
	r.spinner.Suffix = fmt.Sprintf(" %s %s", r.position(pair.Index), pair.LeftPath)
	r.spinner.Start()
}

// PairSkipped is called for pairs already present in the record log
func (r *ConsoleReporter) PairSkipped(pair models.PagePair, fileName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "%s %s %s\n", Dim("[SKIP]"), r.position(pair.Index), Dim(fileName))
}

// PairDone is called after rec has been appended to the record log
func (r *ConsoleReporter) PairDone(pair models.PagePair, rec models.OutputRecord, failedCaptures int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopSpinner()

	tag := Green("[DONE]")
	if failedCaptures > 0 {
		tag = Yellow("[PARTIAL]")
	}
	fmt.Fprintf(r.out, "%s %s %s left %s right %s\n",
		tag, r.position(pair.Index), rec.OutputFileName,
		statusText(rec.LeftStatus), statusText(rec.RightStatus))
}

// PairAborted is called when a pair could not be completed
func (r *ConsoleReporter) PairAborted(pair models.PagePair, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopSpinner()
	fmt.Fprintf(r.out, "%s %s %v\n", Red("[ABORTED]"), r.position(pair.Index), err)
}

// RunFinished prints the run summary
func (r *ConsoleReporter) RunFinished(s *models.Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopSpinner()

	fmt.Fprintf(r.out, "\n%s processed %d, skipped %d, failed captures %d, in %s\n",
		Magenta("[SUMMARY]"), s.Processed, s.Skipped, s.FailedCaptures, s.Duration.Round(time.Second))
	if rest := s.Remaining(); rest > 0 {
		fmt.Fprintf(r.out, "%s %d pairs left for the next run\n", Yellow("[PENDING]"), rest)
	}
}

func (r *ConsoleReporter) stopSpinner() {
	if r.spinner != nil && r.spinner.Active() {
		r.spinner.Stop()
	}
}

func (r *ConsoleReporter) position(index int) string {
	return fmt.Sprintf("%0*d/%d", r.padding, index, r.total)
}

func statusText(status int) string {
	s := fmt.Sprint(status)
	switch {
	case status >= 400:
		return Red(s)
	case status >= 300:
		return Yellow(s)
	default:
		return Green(s)
	}
}
