package application

import (
	"context"
	"fmt"
	"time"

	"uxpilot/internal/domain"
	"uxpilot/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Simulated participant configuration, matching the persona the assistant
// is provisioned with for every fresh test run.
const (
	assistantName         = "UX Tester"
	assistantInstructions = "You are a helpful participant in a user interview / UX test session."

	defaultModel        = "gpt-4o"
	defaultPollInterval = 1 * time.Second
	defaultRunTimeout   = 5 * time.Minute
)

// ConversationDriver struct - Owns the lifecycle of one AI-backed
// conversational session: assistant provisioning, thread creation, message
// submission and run execution with bounded polling. All operations on one
// thread are strictly sequential; no two runs on the same thread may be in
// flight concurrently.
type ConversationDriver struct {
	client       output.AssistantClient
	model        string
	pollInterval time.Duration
	runTimeout   time.Duration
}

// NewConversationDriver func - Creates a driver over one assistant client
func NewConversationDriver(client output.AssistantClient, model string, pollInterval, runTimeout time.Duration) *ConversationDriver {
	if model == "" {
		model = defaultModel
	}
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	if runTimeout <= 0 {
		runTimeout = defaultRunTimeout
	}
	return &ConversationDriver{
		client:       client,
		model:        model,
		pollInterval: pollInterval,
		runTimeout:   runTimeout,
	}
}

// EnsureAssistant returns the given assistant id as-is, or provisions a new
// UX-tester assistant when none is given. A stale id is not validated here;
// it surfaces as a downstream run failure.
func (d *ConversationDriver) EnsureAssistant(ctx context.Context, assistantID string) (string, error) {
	if assistantID != "" {
		return assistantID, nil
	}
	return d.client.CreateAssistant(ctx, assistantName, assistantInstructions, d.model)
}

// OpenThread creates one fresh conversational thread. Threads are never
// reused across test runs.
func (d *ConversationDriver) OpenThread(ctx context.Context) (string, error) {
	return d.client.CreateThread(ctx)
}

// SeedWithImages uploads each image to the service's own file store and posts
// one user message carrying the first question's text plus all uploaded image
// references, in listing order.
func (d *ConversationDriver) SeedWithImages(ctx context.Context, threadID string, imagePaths []string, firstQuestion string) error {
	fileIDs := make([]string, 0, len(imagePaths))
	for _, path := range imagePaths {
		fileID, err := d.client.UploadImage(ctx, path)
		if err != nil {
			return fmt.Errorf("failed to upload image %s: %w", path, err)
		}
		fileIDs = append(fileIDs, fileID)
	}
	return d.client.AddMessage(ctx, threadID, firstQuestion, fileIDs)
}

// RunAndAwait starts an execution run and polls until it reaches a terminal
// state or the configured deadline passes, then extracts the newest
// assistant message's text.
func (d *ConversationDriver) RunAndAwait(ctx context.Context, threadID, assistantID string) (string, error) {
	runID, err := d.client.CreateRun(ctx, threadID, assistantID)
	if err != nil {
		return "", err
	}

	deadline := time.Now().Add(d.runTimeout)
	var run *domain.Run
	for {
		run, err = d.client.GetRun(ctx, threadID, runID)
		if err != nil {
			return "", err
		}
		if run.Terminal() {
			break
		}
		if time.Now().After(deadline) {
			logrus.Warnf("Run %s on thread %s still %s after %v", runID, threadID, run.Status, d.runTimeout)
			return "", domain.ErrRunTimedOut
		}
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		case <-time.After(d.pollInterval):
		}
	}

	if run.Status != domain.RunStatusCompleted {
		logrus.Errorf("Run %s on thread %s ended as %s", runID, threadID, run.Status)
		return "", fmt.Errorf("%w: run ended as %s", domain.ErrRunNotCompleted, run.Status)
	}

	messages, err := d.client.ListMessages(ctx, threadID)
	if err != nil {
		return "", err
	}
	return extractAnswer(messages)
}

// Ask posts a plain user text message to the existing thread and performs
// the same run-and-await-and-extract sequence.
func (d *ConversationDriver) Ask(ctx context.Context, threadID, assistantID, text string) (string, error) {
	if err := d.client.AddMessage(ctx, threadID, text, nil); err != nil {
		return "", err
	}
	return d.RunAndAwait(ctx, threadID, assistantID)
}

// extractAnswer returns the text of the newest assistant message. Messages
// arrive newest first. A malformed or absent payload is a named error, not
// an unchecked fault.
func extractAnswer(messages []domain.ThreadMessage) (string, error) {
	for _, msg := range messages {
		if msg.Role != "assistant" {
			continue
		}
		for _, part := range msg.Parts {
			if part.Type == "text" && part.Text != "" {
				return part.Text, nil
			}
		}
		return "", domain.ErrNoAnswer
	}
	return "", domain.ErrNoAnswer
}
