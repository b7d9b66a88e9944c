// Package capture renders a single URL to a full-page PNG.
//
// A Renderer does the browser work. ChromeRenderer is the production
// implementation: every call starts its own headless Chrome through
// chromedp and tears it down before returning.
//
// Service wraps a Renderer and never returns an error. A failed render
// becomes an Outcome carrying a placeholder image, so one broken page
// cannot stop a comparison run:
//
//	svc := capture.NewService(capture.NewChromeRenderer(opts, log), capture.WithLogger(log))
//	out := svc.Capture(ctx, capture.Request{URL: "https://example.com/about"})
//	if !out.Succeeded() {
//		log.WithError(out.Err).Warn("Using placeholder")
//	}
package capture
