package memory

import (
	"sync"

	"uxpilot/internal/domain"
	"uxpilot/internal/ports/output"
)

// Compile-time check to ensure ResultRepository implements the output port
var _ output.ResultRepository = (*ResultRepository)(nil)

// ResultRepository struct - Output adapter keeping completed test results in
// memory as an append-only list.
type ResultRepository struct {
	mu      sync.RWMutex
	results []domain.UXTestResult
}

// NewResultRepository creates an empty in-memory result list.
func NewResultRepository() *ResultRepository {
	return &ResultRepository{}
}

// AppendResult appends one completed result.
func (r *ResultRepository) AppendResult(result domain.UXTestResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.results = append(r.results, result)
	return nil
}

// ListResults returns all results in append order.
func (r *ResultRepository) ListResults() ([]domain.UXTestResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]domain.UXTestResult, len(r.results))
	copy(results, r.results)
	return results, nil
}

// GetResult returns one result or domain.ErrResultNotFound.
func (r *ResultRepository) GetResult(id string) (*domain.UXTestResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.results {
		if r.results[i].ID == id {
			result := r.results[i]
			return &result, nil
		}
	}
	return nil, domain.ErrResultNotFound
}
