// Package dualcapture captures both sides of a page pair concurrently.
package dualcapture

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"shotpair/pkg/capture"
)

// Capturer captures a single page. *capture.Service implements it.
type Capturer interface {
	Capture(ctx context.Context, req capture.Request) capture.Outcome
}

// CaptureFunc produces the outcome for one side of a pair
type CaptureFunc func(ctx context.Context) capture.Outcome

// Result holds both outcomes of a pair
type Result struct {
	Left     capture.Outcome
	Right    capture.Outcome
	Duration time.Duration
}

// FailedCaptures returns how many of the two sides failed
func (r Result) FailedCaptures() int {
	n := 0
	if !r.Left.Succeeded() {
		n++
	}
	if !r.Right.Succeeded() {
		n++
	}
	return n
}

// Run starts left and right concurrently and returns once both have
// finished. A failing side does not cancel the other one.
func Run(ctx context.Context, left, right CaptureFunc) Result {
	var (
		g   errgroup.Group
		res Result
	)
	start := time.Now()

	// Neither side returns an error: a failure is part of its Outcome.
	// The group only joins the two goroutines.
	g.Go(func() error {
		res.Left = left(ctx)
		return nil
	})
	g.Go(func() error {
		res.Right = right(ctx)
		return nil
	})
	_ = g.Wait()

	res.Duration = time.Since(start)
	return res
}

// Pair captures left and right with c concurrently
func Pair(ctx context.Context, c Capturer, left, right capture.Request) Result {
	return Run(ctx, Request(c, left), Request(c, right))
}

// Request adapts a Capturer call to a CaptureFunc
func Request(c Capturer, req capture.Request) CaptureFunc {
	return func(ctx context.Context) capture.Outcome {
		return c.Capture(ctx, req)
	}
}

// Preset returns a CaptureFunc that yields out without doing any work
func Preset(out capture.Outcome) CaptureFunc {
	return func(context.Context) capture.Outcome {
		return out
	}
}
