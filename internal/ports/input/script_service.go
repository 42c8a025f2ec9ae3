package input

import "uxpilot/internal/domain"

// ScriptService interface - Input port (use case)
// Defines what the application can do with the script library
type ScriptService interface {
	ListScripts() ([]domain.Script, error)
	GetScript(id string) (*domain.Script, error)
	SaveScript(script domain.Script) (*domain.Script, error)
	DeleteScript(id string) error
}

// ResultService interface - Input port (use case)
// Read access to the completed test result list
type ResultService interface {
	ListResults() ([]domain.UXTestResult, error)
	GetResult(id string) (*domain.UXTestResult, error)
}
