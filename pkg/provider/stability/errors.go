package stability

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	ErrNoArtifacts = errors.New("no artifacts")

	ErrGenerationFailed = errors.New("generation failed")
)

// UpstreamError is returned for any non-2xx response of the Stability API.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Stability API error: %d, Message: %s", e.StatusCode, e.Body)
}

func convertError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	return &UpstreamError{
		StatusCode: resp.StatusCode,
		Body:       string(data),
	}
}
