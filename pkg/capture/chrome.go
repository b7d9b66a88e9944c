package capture

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"shotpair/pkg/config"
	"shotpair/pkg/logger"
)

const scrollToBottom = `window.scrollTo(0, document.body.scrollHeight)`

// ChromeOptions configures ChromeRenderer
type ChromeOptions struct {
	// Timeout bounds a whole render, browser start-up included
	Timeout time.Duration
	// SettleDelay is waited after scrolling so lazy content can load
	SettleDelay    time.Duration
	ViewportWidth  int
	ViewportHeight int
	Headless       bool
	UserAgent      string
	ExecPath       string
}

// ChromeOptionsFromConfig maps the capture config section to ChromeOptions
func ChromeOptionsFromConfig(cfg config.CaptureConfig) ChromeOptions {
	return ChromeOptions{
		Timeout:        cfg.Timeout,
		SettleDelay:    cfg.SettleDelay,
		ViewportWidth:  cfg.ViewportWidth,
		ViewportHeight: cfg.ViewportHeight,
		Headless:       cfg.Headless,
		UserAgent:      cfg.UserAgent,
		ExecPath:       cfg.ChromePath,
	}
}

// ChromeRenderer renders pages with headless Chrome
type ChromeRenderer struct {
	opts   ChromeOptions
	logger logger.Logger
}

// NewChromeRenderer creates a ChromeRenderer
func NewChromeRenderer(opts ChromeOptions, log logger.Logger) *ChromeRenderer {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &ChromeRenderer{opts: opts, logger: log}
}

func (r *ChromeRenderer) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.Flag("headless", r.opts.Headless),
		chromedp.Flag("hide-scrollbars", true),
	)
	if r.opts.ViewportWidth > 0 && r.opts.ViewportHeight > 0 {
		opts = append(opts, chromedp.WindowSize(r.opts.ViewportWidth, r.opts.ViewportHeight))
	}
	if r.opts.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(r.opts.UserAgent))
	}
	if r.opts.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.opts.ExecPath))
	}
	return opts
}

// Render starts a dedicated browser, loads req.URL, waits for the network
// to go idle, scrolls to the bottom, waits the settle delay and takes a
// full-page PNG screenshot. The browser is shut down on every return path.
func (r *ChromeRenderer) Render(ctx context.Context, req Request) (Shot, error) {
	shot := Shot{Status: http.StatusOK}

	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, r.allocatorOptions()...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	// Start the browser so the page target exists before listening on it
	if err := chromedp.Run(browserCtx); err != nil {
		return shot, fmt.Errorf("start browser: %w", err)
	}

	mainFrame := cdp.FrameID(chromedp.FromContext(browserCtx).Target.TargetID)
	lifecycle := make(chan *page.EventLifecycleEvent, 64)
	chromedp.ListenTarget(browserCtx, func(ev interface{}) {
		e, ok := ev.(*page.EventLifecycleEvent)
		if !ok || e.FrameID != mainFrame {
			return
		}
		select {
		case lifecycle <- e:
		default:
		}
	})

	setup := []chromedp.Action{
		network.Enable(),
		page.SetLifecycleEventsEnabled(true),
	}
	if len(req.Headers) > 0 {
		headers := make(network.Headers, len(req.Headers))
		for k, v := range req.Headers {
			headers[k] = v
		}
		setup = append(setup, network.SetExtraHTTPHeaders(headers))
	}
	if err := chromedp.Run(browserCtx, setup...); err != nil {
		return shot, fmt.Errorf("prepare page: %w", err)
	}

	resp, err := chromedp.RunResponse(browserCtx, chromedp.Navigate(req.URL))
	if resp != nil && resp.Status > 0 {
		shot.Status = int(resp.Status)
	}
	if err != nil {
		return shot, fmt.Errorf("navigate: %w", err)
	}

	if err := waitNetworkIdle(browserCtx, lifecycle); err != nil {
		return shot, fmt.Errorf("wait for network idle: %w", err)
	}

	var buf []byte
	if err := chromedp.Run(browserCtx,
		chromedp.Evaluate(scrollToBottom, nil),
		chromedp.Sleep(r.opts.SettleDelay),
		chromedp.FullScreenshot(&buf, 100),
	); err != nil {
		return shot, fmt.Errorf("screenshot: %w", err)
	}

	r.logger.DebugWithFields("Page rendered", map[string]interface{}{
		"url":    req.URL,
		"status": shot.Status,
		"bytes":  len(buf),
	})

	shot.Image = buf
	return shot, nil
}

// waitNetworkIdle blocks until the main frame reports networkIdle for the
// document committed by the last "init" event, or ctx is done.
func waitNetworkIdle(ctx context.Context, events <-chan *page.EventLifecycleEvent) error {
	var loader cdp.LoaderID
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e := <-events:
			switch e.Name {
			case "init":
				loader = e.LoaderID
			case "networkIdle":
				if loader != "" && e.LoaderID == loader {
					return nil
				}
			}
		}
	}
}
