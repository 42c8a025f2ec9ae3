package output

import "uxpilot/internal/domain"

// ScriptRepository interface - Output port
// Defines what the application needs for persisting the script library.
type ScriptRepository interface {
	ListScripts() ([]domain.Script, error)
	GetScript(id string) (*domain.Script, error)
	SaveScript(script domain.Script) error
	DeleteScript(id string) error
}
