package application

import (
	"fmt"

	"uxpilot/internal/domain"
	"uxpilot/internal/ports/output"

	"github.com/google/uuid"
)

// ScriptService struct - Application service implementing script library
// use cases over an injected repository.
type ScriptService struct {
	repo output.ScriptRepository
}

// NewScriptService func - Creates new script service
func NewScriptService(repo output.ScriptRepository) *ScriptService {
	return &ScriptService{repo: repo}
}

// ListScripts func
func (s *ScriptService) ListScripts() ([]domain.Script, error) {
	return s.repo.ListScripts()
}

// GetScript func
func (s *ScriptService) GetScript(id string) (*domain.Script, error) {
	return s.repo.GetScript(id)
}

// SaveScript func - Creates or updates a script. A missing id gets a
// generated one.
func (s *ScriptService) SaveScript(script domain.Script) (*domain.Script, error) {
	if script.Name == "" || len(script.Questions) == 0 {
		return nil, fmt.Errorf("%w: script name and questions are required", domain.ErrInvalidRequest)
	}
	if script.ID == "" {
		script.ID = uuid.NewString()
	}
	if err := s.repo.SaveScript(script); err != nil {
		return nil, err
	}
	return &script, nil
}

// DeleteScript func
func (s *ScriptService) DeleteScript(id string) error {
	return s.repo.DeleteScript(id)
}

// ResultService struct - Application service exposing the completed test
// result list for browsing.
type ResultService struct {
	repo output.ResultRepository
}

// NewResultService func - Creates new result service
func NewResultService(repo output.ResultRepository) *ResultService {
	return &ResultService{repo: repo}
}

// ListResults func
func (s *ResultService) ListResults() ([]domain.UXTestResult, error) {
	return s.repo.ListResults()
}

// GetResult func
func (s *ResultService) GetResult(id string) (*domain.UXTestResult, error) {
	return s.repo.GetResult(id)
}
