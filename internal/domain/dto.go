package domain

import "io"

// DTOs (Data Transfer Objects) - Domain layer request/response structures

type (
	// UploadRequest struct - Domain request DTO for storing one media file
	UploadRequest struct {
		MediaID  string // optional; generated when empty
		Filename string // original filename, used for the extension
		Size     int64
		File     io.Reader
	}

	// ConductTestRequest struct - Domain request DTO for one UX test run
	ConductTestRequest struct {
		Script      Script
		MediaID     string
		OpenAIKey   string // optional; falls back to the server-configured key
		AssistantID string // optional; a fresh assistant is created when empty
	}
)

// Remote assistants service types, shared between the conversation driver
// and the output port implementations.

// RunStatus values reported by the assistants service.
const (
	RunStatusQueued         = "queued"
	RunStatusInProgress     = "in_progress"
	RunStatusRequiresAction = "requires_action"
	RunStatusCompleted      = "completed"
	RunStatusFailed         = "failed"
	RunStatusCancelled      = "cancelled"
	RunStatusExpired        = "expired"
)

// Run struct - State of one execution run on a thread
type Run struct {
	ID     string
	Status string
}

// Terminal reports whether the run has reached a state that will not change.
func (r Run) Terminal() bool {
	switch r.Status {
	case RunStatusCompleted, RunStatusFailed, RunStatusCancelled, RunStatusExpired:
		return true
	}
	return false
}

// MessagePart struct - One content part of a thread message
type MessagePart struct {
	Type string // "text" or "image_file"
	Text string
}

// ThreadMessage struct - One message in a conversational thread,
// newest-first as listed by the service
type ThreadMessage struct {
	ID    string
	Role  string // "user" or "assistant"
	Parts []MessagePart
}
