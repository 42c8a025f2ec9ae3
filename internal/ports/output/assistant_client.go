package output

import (
	"context"

	"uxpilot/internal/domain"
)

// AssistantClient interface - Output port
// Defines what the application needs from the remote assistants service:
// assistant provisioning, threads, vision file uploads, messages and runs.
// Implementations must not retry; retry policy belongs to the caller side.
type AssistantClient interface {
	// CreateAssistant provisions a reusable assistant and returns its id.
	CreateAssistant(ctx context.Context, name, instructions, model string) (string, error)

	// CreateThread opens a fresh conversational thread.
	CreateThread(ctx context.Context) (string, error)

	// UploadImage uploads a local image file to the service's file store with
	// purpose "vision" and returns the remote file id.
	UploadImage(ctx context.Context, path string) (string, error)

	// AddMessage posts a user message to the thread. imageFileIDs, when
	// non-empty, are attached as image_file content parts after the text.
	AddMessage(ctx context.Context, threadID, text string, imageFileIDs []string) error

	// CreateRun starts an execution run of the assistant on the thread.
	CreateRun(ctx context.Context, threadID, assistantID string) (string, error)

	// GetRun reports the current state of a run.
	GetRun(ctx context.Context, threadID, runID string) (*domain.Run, error)

	// ListMessages returns the thread's messages, newest first.
	ListMessages(ctx context.Context, threadID string) ([]domain.ThreadMessage, error)
}

// AssistantClientFactory builds a client bound to one API key. The key is
// per-request: callers may bring their own or fall back to the server's.
type AssistantClientFactory func(apiKey string) AssistantClient
