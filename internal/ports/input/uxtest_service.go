package input

import (
	"context"

	"uxpilot/internal/domain"
)

// UXTestService interface - Input port (use case)
// Defines the single linear pipeline: media -> session -> Q&A -> result
type UXTestService interface {
	// ConductTest drives a simulated participant through the script's
	// questions against the images stored under the request's media id and
	// assembles the transcripts into a UXTestResult. Failure at any step
	// aborts the whole run; no partial result is returned.
	ConductTest(ctx context.Context, request domain.ConductTestRequest) (*domain.UXTestResult, error)
}
