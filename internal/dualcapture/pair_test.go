package dualcapture

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"shotpair/pkg/capture"
)

type fakeCapturer struct {
	mu    sync.Mutex
	calls []string
	// both sides must be in flight at once before either returns
	barrier *sync.WaitGroup
	fail    map[string]bool
}

func (f *fakeCapturer) Capture(ctx context.Context, req capture.Request) capture.Outcome {
	f.mu.Lock()
	f.calls = append(f.calls, req.URL)
	f.mu.Unlock()

	if f.barrier != nil {
		f.barrier.Done()
		f.barrier.Wait()
	}
	if f.fail[req.URL] {
		return capture.Failed([]byte("placeholder"), 500, errors.New("boom"))
	}
	return capture.Captured([]byte(req.URL), 200)
}

func TestPairRunsConcurrently(t *testing.T) {
	var barrier sync.WaitGroup
	barrier.Add(2)
	fc := &fakeCapturer{barrier: &barrier}

	done := make(chan Result, 1)
	go func() {
		done <- Pair(context.Background(), fc,
			capture.Request{URL: "https://a.example.com/x"},
			capture.Request{URL: "https://b.example.com/x"})
	}()

	select {
	case res := <-done:
		assert.Equal(t, "https://a.example.com/x", string(res.Left.Image))
		assert.Equal(t, "https://b.example.com/x", string(res.Right.Image))
		assert.Zero(t, res.FailedCaptures())
	case <-time.After(5 * time.Second):
		t.Fatal("captures did not run concurrently")
	}
	assert.Len(t, fc.calls, 2)
}

func TestPairFailureIsolation(t *testing.T) {
	fc := &fakeCapturer{fail: map[string]bool{"right": true}}

	res := Pair(context.Background(), fc, capture.Request{URL: "left"}, capture.Request{URL: "right"})

	require.True(t, res.Left.Succeeded())
	assert.Equal(t, 200, res.Left.Status)
	assert.False(t, res.Right.Succeeded())
	assert.Equal(t, 500, res.Right.Status)
	assert.Equal(t, 1, res.FailedCaptures())
}

func TestRunWithPreset(t *testing.T) {
	fc := &fakeCapturer{}
	failed := capture.Failed([]byte("p"), 200, errors.New("bad url"))

	res := Run(context.Background(), Preset(failed), Request(fc, capture.Request{URL: "right"}))

	assert.Equal(t, failed, res.Left)
	assert.True(t, res.Right.Succeeded())
	assert.Equal(t, []string{"right"}, fc.calls)
}

func TestRunFailedSideDoesNotCancelOther(t *testing.T) {
	failed := make(chan struct{})
	left := func(ctx context.Context) capture.Outcome {
		defer close(failed)
		return capture.Failed([]byte("p"), 503, errors.New("unavailable"))
	}
	right := func(ctx context.Context) capture.Outcome {
		<-failed
		if err := ctx.Err(); err != nil {
			return capture.Failed([]byte("p"), 200, err)
		}
		return capture.Captured([]byte("ok"), 200)
	}

	res := Run(context.Background(), left, right)

	assert.Equal(t, 503, res.Left.Status)
	assert.True(t, res.Right.Succeeded(), "right side kept running after left failed")
	assert.Equal(t, 1, res.FailedCaptures())
}
