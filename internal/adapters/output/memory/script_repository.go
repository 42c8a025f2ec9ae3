package memory

import (
	"sync"

	"uxpilot/internal/domain"
	"uxpilot/internal/ports/output"
)

// Compile-time check to ensure ScriptRepository implements the output port
var _ output.ScriptRepository = (*ScriptRepository)(nil)

// ScriptRepository struct - Output adapter keeping the script library in
// memory. Used when no database is configured; state does not survive a
// restart. Thread-safe for concurrent access.
type ScriptRepository struct {
	mu      sync.RWMutex
	scripts map[string]domain.Script
	order   []string
}

// NewScriptRepository creates an in-memory script store seeded with the
// built-in base templates.
func NewScriptRepository() *ScriptRepository {
	r := &ScriptRepository{scripts: map[string]domain.Script{}}
	for _, tpl := range domain.BaseTemplates() {
		r.scripts[tpl.ID] = tpl
		r.order = append(r.order, tpl.ID)
	}
	return r
}

// ListScripts returns all scripts in insertion order.
func (r *ScriptRepository) ListScripts() ([]domain.Script, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scripts := make([]domain.Script, 0, len(r.order))
	for _, id := range r.order {
		if s, ok := r.scripts[id]; ok {
			scripts = append(scripts, s)
		}
	}
	return scripts, nil
}

// GetScript returns one script or domain.ErrScriptNotFound.
func (r *ScriptRepository) GetScript(id string) (*domain.Script, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.scripts[id]
	if !ok {
		return nil, domain.ErrScriptNotFound
	}
	return &s, nil
}

// SaveScript creates or overwrites a script.
func (r *ScriptRepository) SaveScript(script domain.Script) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.scripts[script.ID]; !ok {
		r.order = append(r.order, script.ID)
	}
	r.scripts[script.ID] = script
	return nil
}

// DeleteScript removes a script. Deleting an unknown id is not an error.
func (r *ScriptRepository) DeleteScript(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.scripts, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
