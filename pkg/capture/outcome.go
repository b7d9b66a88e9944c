package capture

import "net/http"

// Request describes one page to render
type Request struct {
	URL string
	// Headers are sent with every request the page makes
	Headers map[string]string
}

// Outcome is the result of capturing one side of a pair. Image is always
// a decodable PNG: the screenshot on success, a placeholder on failure.
type Outcome struct {
	Image  []byte
	Status int
	Err    error
}

// Succeeded reports whether Image is a real screenshot
func (o Outcome) Succeeded() bool {
	return o.Err == nil
}

// Captured builds a successful Outcome
func Captured(image []byte, status int) Outcome {
	return Outcome{Image: image, Status: normalizeStatus(status)}
}

// Failed builds a failed Outcome around a placeholder image
func Failed(placeholder []byte, status int, err error) Outcome {
	return Outcome{Image: placeholder, Status: normalizeStatus(status), Err: err}
}

func normalizeStatus(status int) int {
	if status <= 0 {
		return http.StatusOK
	}
	return status
}
