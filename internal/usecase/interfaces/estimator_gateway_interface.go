package interfaces

import (
	"context"

	"printhub/internal/domain/entities"
)

// EstimateUpload is the ephemeral input forwarded to the estimation
// service. It exists only for the duration of one request and is never
// persisted.
type EstimateUpload struct {
	FileName string
	Contents []byte
	// Optional; the estimation service applies defaults when empty.
	Material string
	Quality  string
}

// UpstreamError reports that the estimation service failed or was
// unreachable. Message carries the service's reported error when one was
// present, else a generic description; handlers surface it with a 502 so
// callers can tell "estimator down" apart from "bad input".
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

// IEstimatorGateway abstracts the external estimation service.
//
// Implementations forward the upload as multipart/form-data (preserving the
// original file name) and return the service's Estimate body unchanged. Any
// failure (non-2xx status, network error, malformed body, timeout) comes
// back as *UpstreamError.
type IEstimatorGateway interface {
	Estimate(ctx context.Context, upload EstimateUpload) (entities.Estimate, error)
}
