package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"

	apperrors "shotpair/pkg/errors"
	"shotpair/pkg/logger"
)

// Renderer turns a Request into a screenshot. Implementations should fill
// Shot.Status with the last observed HTTP status even when they fail.
type Renderer interface {
	Render(ctx context.Context, req Request) (Shot, error)
}

// Shot is the raw renderer output
type Shot struct {
	Image  []byte
	Status int
}

// RendererFunc adapts a function to the Renderer interface
type RendererFunc func(ctx context.Context, req Request) (Shot, error)

// Render calls f
func (f RendererFunc) Render(ctx context.Context, req Request) (Shot, error) {
	return f(ctx, req)
}

// Service captures pages and substitutes placeholders for failures
type Service struct {
	renderer          Renderer
	logger            logger.Logger
	placeholderWidth  int
	placeholderHeight int
}

// Option configures a Service
type Option func(*Service)

// WithLogger sets the logger used to report failed captures
func WithLogger(l logger.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithPlaceholderSize sets the placeholder dimensions
func WithPlaceholderSize(width, height int) Option {
	return func(s *Service) {
		if width > 0 && height > 0 {
			s.placeholderWidth = width
			s.placeholderHeight = height
		}
	}
}

// NewService creates a Service around renderer
func NewService(renderer Renderer, opts ...Option) *Service {
	s := &Service{
		renderer:          renderer,
		logger:            logger.NewNopLogger(),
		placeholderWidth:  DefaultPlaceholderWidth,
		placeholderHeight: DefaultPlaceholderHeight,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var errEmptyImage = errors.New("renderer returned no image data")

// Capture renders req. It never fails: renderer errors and undecodable
// screenshots are returned as a failed Outcome with a placeholder image.
func (s *Service) Capture(ctx context.Context, req Request) Outcome {
	shot, err := s.renderer.Render(ctx, req)
	if err == nil {
		err = validatePNG(shot.Image)
	}
	if err == nil {
		return Captured(shot.Image, shot.Status)
	}
	return s.fail(req.URL, shot.Status, err)
}

// Fail returns a failed Outcome for url without rendering it. It is used
// when a URL cannot even be built.
func (s *Service) Fail(url string, err error) Outcome {
	return s.fail(url, 0, err)
}

func (s *Service) fail(url string, status int, err error) Outcome {
	status = normalizeStatus(status)
	err = apperrors.Capture("capture "+url, err)

	s.logger.WithError(err).WarnWithFields("Capture failed, using placeholder", map[string]interface{}{
		"url":    url,
		"status": status,
	})

	img, perr := Placeholder(s.placeholderWidth, s.placeholderHeight, status, reason(err))
	if perr != nil {
		s.logger.WithError(perr).Error("Failed to encode placeholder")
	}
	return Failed(img, status, err)
}

func validatePNG(data []byte) error {
	if len(data) == 0 {
		return errEmptyImage
	}
	if _, err := png.DecodeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("screenshot is not a valid PNG: %w", err)
	}
	return nil
}

// reason is the innermost error message, which is the most specific one
func reason(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
