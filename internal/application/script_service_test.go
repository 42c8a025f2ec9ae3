package application

import (
	"errors"
	"testing"

	"uxpilot/internal/adapters/output/memory"
	"uxpilot/internal/domain"
)

// TestSaveScriptGeneratesID tests that a script saved without an id gets a
// generated one
func TestSaveScriptGeneratesID(t *testing.T) {
	service := NewScriptService(memory.NewScriptRepository())

	saved, err := service.SaveScript(domain.Script{
		Name:      "New flow",
		Questions: []domain.Question{{ID: "q1", Text: "First question"}},
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("expected a generated script id")
	}

	got, err := service.GetScript(saved.ID)
	if err != nil {
		t.Fatalf("expected the saved script, got: %v", err)
	}
	if got.Name != "New flow" {
		t.Errorf("expected New flow, got %s", got.Name)
	}
}

// TestSaveScriptValidation tests that a nameless or questionless script is
// rejected
func TestSaveScriptValidation(t *testing.T) {
	service := NewScriptService(memory.NewScriptRepository())

	_, err := service.SaveScript(domain.Script{
		Questions: []domain.Question{{ID: "q1", Text: "Q"}},
	})
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest without a name, got %v", err)
	}

	_, err = service.SaveScript(domain.Script{Name: "No questions"})
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest without questions, got %v", err)
	}
}
