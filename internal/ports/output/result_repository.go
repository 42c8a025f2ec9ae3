package output

import "uxpilot/internal/domain"

// ResultRepository interface - Output port
// Append-only store of completed UX test results.
type ResultRepository interface {
	AppendResult(result domain.UXTestResult) error
	ListResults() ([]domain.UXTestResult, error)
	GetResult(id string) (*domain.UXTestResult, error)
}
