package http

import "uxpilot/internal/domain"

type (
	// ConductTestRequest struct - HTTP request DTO for POST /uxtest
	ConductTestRequest struct {
		Script      *domain.Script `json:"script" validate:"required"`
		MediaID     string         `json:"mediaId" validate:"required"`
		OpenAIKey   string         `json:"openAIKey" validate:"omitempty"`
		AssistantID string         `json:"assistantId" validate:"omitempty"`
	}

	// ScriptRequest struct - HTTP request DTO for creating/updating a script
	ScriptRequest struct {
		ID        string            `json:"id" validate:"omitempty"`
		Name      string            `json:"name" validate:"required,max=200"`
		Questions []QuestionRequest `json:"questions" validate:"required,min=1,dive"`
	}

	// QuestionRequest struct - One question within a ScriptRequest
	QuestionRequest struct {
		ID           string `json:"id" validate:"required"`
		Text         string `json:"text" validate:"required"`
		UserFollowUp bool   `json:"userFollowUp"`
	}
)
