package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"uxpilot/internal/domain"
)

// MockAssistantClient struct - Mock implementation of the assistant client
// output port for testing
type MockAssistantClient struct {
	CreateAssistantFunc func(ctx context.Context, name, instructions, model string) (string, error)
	CreateThreadFunc    func(ctx context.Context) (string, error)
	UploadImageFunc     func(ctx context.Context, path string) (string, error)
	AddMessageFunc      func(ctx context.Context, threadID, text string, imageFileIDs []string) error
	CreateRunFunc       func(ctx context.Context, threadID, assistantID string) (string, error)
	GetRunFunc          func(ctx context.Context, threadID, runID string) (*domain.Run, error)
	ListMessagesFunc    func(ctx context.Context, threadID string) ([]domain.ThreadMessage, error)

	UploadedPaths []string
	AddedMessages []AddedMessage
	RunsCreated   int
}

// AddedMessage struct - Captures one AddMessage call
type AddedMessage struct {
	ThreadID string
	Text     string
	FileIDs  []string
}

func (m *MockAssistantClient) CreateAssistant(ctx context.Context, name, instructions, model string) (string, error) {
	if m.CreateAssistantFunc != nil {
		return m.CreateAssistantFunc(ctx, name, instructions, model)
	}
	return "asst_mock", nil
}

func (m *MockAssistantClient) CreateThread(ctx context.Context) (string, error) {
	if m.CreateThreadFunc != nil {
		return m.CreateThreadFunc(ctx)
	}
	return "thread_mock", nil
}

func (m *MockAssistantClient) UploadImage(ctx context.Context, path string) (string, error) {
	m.UploadedPaths = append(m.UploadedPaths, path)
	if m.UploadImageFunc != nil {
		return m.UploadImageFunc(ctx, path)
	}
	return fmt.Sprintf("file_%d", len(m.UploadedPaths)), nil
}

func (m *MockAssistantClient) AddMessage(ctx context.Context, threadID, text string, imageFileIDs []string) error {
	m.AddedMessages = append(m.AddedMessages, AddedMessage{ThreadID: threadID, Text: text, FileIDs: imageFileIDs})
	if m.AddMessageFunc != nil {
		return m.AddMessageFunc(ctx, threadID, text, imageFileIDs)
	}
	return nil
}

func (m *MockAssistantClient) CreateRun(ctx context.Context, threadID, assistantID string) (string, error) {
	m.RunsCreated++
	if m.CreateRunFunc != nil {
		return m.CreateRunFunc(ctx, threadID, assistantID)
	}
	return fmt.Sprintf("run_%d", m.RunsCreated), nil
}

func (m *MockAssistantClient) GetRun(ctx context.Context, threadID, runID string) (*domain.Run, error) {
	if m.GetRunFunc != nil {
		return m.GetRunFunc(ctx, threadID, runID)
	}
	return &domain.Run{ID: runID, Status: domain.RunStatusCompleted}, nil
}

func (m *MockAssistantClient) ListMessages(ctx context.Context, threadID string) ([]domain.ThreadMessage, error) {
	if m.ListMessagesFunc != nil {
		return m.ListMessagesFunc(ctx, threadID)
	}
	return []domain.ThreadMessage{
		{ID: "msg_1", Role: "assistant", Parts: []domain.MessagePart{{Type: "text", Text: "mock answer"}}},
	}, nil
}

func newTestDriver(client *MockAssistantClient) *ConversationDriver {
	return NewConversationDriver(client, "gpt-4o", time.Millisecond, 50*time.Millisecond)
}

// TestEnsureAssistantReusesGivenID tests that a caller-provided assistant id
// is returned untouched without provisioning a new assistant
func TestEnsureAssistantReusesGivenID(t *testing.T) {
	created := false
	mockClient := &MockAssistantClient{
		CreateAssistantFunc: func(ctx context.Context, name, instructions, model string) (string, error) {
			created = true
			return "asst_new", nil
		},
	}
	driver := newTestDriver(mockClient)

	id, err := driver.EnsureAssistant(context.Background(), "asst_existing")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if id != "asst_existing" {
		t.Errorf("expected the given id back, got %s", id)
	}
	if created {
		t.Error("expected no assistant to be provisioned when an id was given")
	}
}

// TestEnsureAssistantProvisionsWhenMissing tests that a fresh assistant is
// created with the participant persona when no id is given
func TestEnsureAssistantProvisionsWhenMissing(t *testing.T) {
	var gotName, gotInstructions, gotModel string
	mockClient := &MockAssistantClient{
		CreateAssistantFunc: func(ctx context.Context, name, instructions, model string) (string, error) {
			gotName = name
			gotInstructions = instructions
			gotModel = model
			return "asst_new", nil
		},
	}
	driver := newTestDriver(mockClient)

	id, err := driver.EnsureAssistant(context.Background(), "")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if id != "asst_new" {
		t.Errorf("expected asst_new, got %s", id)
	}
	if gotName != assistantName || gotInstructions != assistantInstructions || gotModel != "gpt-4o" {
		t.Errorf("unexpected assistant config: %s / %s / %s", gotName, gotInstructions, gotModel)
	}
}

// TestSeedWithImagesAttachesAllFiles tests that every image is uploaded and
// the first message carries the question text plus all file ids in order
func TestSeedWithImagesAttachesAllFiles(t *testing.T) {
	mockClient := &MockAssistantClient{}
	driver := newTestDriver(mockClient)

	err := driver.SeedWithImages(context.Background(), "thread_1", []string{"/m/abc/001.png", "/m/abc/002.jpg"}, "What do you see?")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(mockClient.UploadedPaths) != 2 {
		t.Fatalf("expected 2 uploads, got %d", len(mockClient.UploadedPaths))
	}
	if len(mockClient.AddedMessages) != 1 {
		t.Fatalf("expected exactly one seed message, got %d", len(mockClient.AddedMessages))
	}

	msg := mockClient.AddedMessages[0]
	if msg.ThreadID != "thread_1" || msg.Text != "What do you see?" {
		t.Errorf("unexpected seed message: %+v", msg)
	}
	if len(msg.FileIDs) != 2 || msg.FileIDs[0] != "file_1" || msg.FileIDs[1] != "file_2" {
		t.Errorf("expected file ids in upload order, got %v", msg.FileIDs)
	}
}

// TestSeedWithImagesUploadFailure tests that a failed vision upload aborts
// seeding before any message is posted
func TestSeedWithImagesUploadFailure(t *testing.T) {
	mockClient := &MockAssistantClient{
		UploadImageFunc: func(ctx context.Context, path string) (string, error) {
			return "", domain.ErrAssistantAPI
		},
	}
	driver := newTestDriver(mockClient)

	err := driver.SeedWithImages(context.Background(), "thread_1", []string{"/m/abc/001.png"}, "Q1")
	if !errors.Is(err, domain.ErrAssistantAPI) {
		t.Fatalf("expected ErrAssistantAPI, got %v", err)
	}
	if len(mockClient.AddedMessages) != 0 {
		t.Error("expected no message after a failed upload")
	}
}

// TestRunAndAwaitPollsUntilCompleted tests that polling continues through
// non-terminal states and the newest assistant answer is returned
func TestRunAndAwaitPollsUntilCompleted(t *testing.T) {
	polls := 0
	mockClient := &MockAssistantClient{
		GetRunFunc: func(ctx context.Context, threadID, runID string) (*domain.Run, error) {
			polls++
			status := domain.RunStatusInProgress
			if polls >= 3 {
				status = domain.RunStatusCompleted
			}
			return &domain.Run{ID: runID, Status: status}, nil
		},
		ListMessagesFunc: func(ctx context.Context, threadID string) ([]domain.ThreadMessage, error) {
			return []domain.ThreadMessage{
				{ID: "msg_2", Role: "assistant", Parts: []domain.MessagePart{{Type: "text", Text: "newest answer"}}},
				{ID: "msg_1", Role: "user", Parts: []domain.MessagePart{{Type: "text", Text: "question"}}},
			}, nil
		},
	}
	driver := newTestDriver(mockClient)

	answer, err := driver.RunAndAwait(context.Background(), "thread_1", "asst_1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if answer != "newest answer" {
		t.Errorf("expected the newest assistant answer, got %q", answer)
	}
	if polls < 3 {
		t.Errorf("expected at least 3 polls, got %d", polls)
	}
}

// TestRunAndAwaitTimesOut tests that a run never leaving in_progress hits the
// poll deadline and maps to ErrRunTimedOut
func TestRunAndAwaitTimesOut(t *testing.T) {
	mockClient := &MockAssistantClient{
		GetRunFunc: func(ctx context.Context, threadID, runID string) (*domain.Run, error) {
			return &domain.Run{ID: runID, Status: domain.RunStatusInProgress}, nil
		},
	}
	driver := NewConversationDriver(mockClient, "gpt-4o", time.Millisecond, 10*time.Millisecond)

	_, err := driver.RunAndAwait(context.Background(), "thread_1", "asst_1")
	if !errors.Is(err, domain.ErrRunTimedOut) {
		t.Fatalf("expected ErrRunTimedOut, got %v", err)
	}
}

// TestRunAndAwaitFailedRun tests that a terminal non-completed run maps to
// ErrRunNotCompleted without reading messages
func TestRunAndAwaitFailedRun(t *testing.T) {
	listed := false
	mockClient := &MockAssistantClient{
		GetRunFunc: func(ctx context.Context, threadID, runID string) (*domain.Run, error) {
			return &domain.Run{ID: runID, Status: domain.RunStatusFailed}, nil
		},
		ListMessagesFunc: func(ctx context.Context, threadID string) ([]domain.ThreadMessage, error) {
			listed = true
			return nil, nil
		},
	}
	driver := newTestDriver(mockClient)

	_, err := driver.RunAndAwait(context.Background(), "thread_1", "asst_1")
	if !errors.Is(err, domain.ErrRunNotCompleted) {
		t.Fatalf("expected ErrRunNotCompleted, got %v", err)
	}
	if listed {
		t.Error("expected messages not to be read after a failed run")
	}
}

// TestAskPostsPlainTextMessage tests that follow-up questions carry no image
// attachments and run on the same thread
func TestAskPostsPlainTextMessage(t *testing.T) {
	mockClient := &MockAssistantClient{}
	driver := newTestDriver(mockClient)

	answer, err := driver.Ask(context.Background(), "thread_1", "asst_1", "Anything confusing?")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if answer != "mock answer" {
		t.Errorf("expected mock answer, got %q", answer)
	}

	if len(mockClient.AddedMessages) != 1 {
		t.Fatalf("expected one message, got %d", len(mockClient.AddedMessages))
	}
	msg := mockClient.AddedMessages[0]
	if msg.Text != "Anything confusing?" || len(msg.FileIDs) != 0 {
		t.Errorf("expected a plain text message, got %+v", msg)
	}
}

// TestExtractAnswer tests the answer extraction over the newest-first
// message listing
func TestExtractAnswer(t *testing.T) {
	answer, err := extractAnswer([]domain.ThreadMessage{
		{Role: "user", Parts: []domain.MessagePart{{Type: "text", Text: "ignored"}}},
		{Role: "assistant", Parts: []domain.MessagePart{{Type: "image_file"}, {Type: "text", Text: "the answer"}}},
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if answer != "the answer" {
		t.Errorf("expected the first non-empty text part, got %q", answer)
	}

	_, err = extractAnswer([]domain.ThreadMessage{
		{Role: "assistant", Parts: []domain.MessagePart{{Type: "image_file"}}},
	})
	if !errors.Is(err, domain.ErrNoAnswer) {
		t.Errorf("expected ErrNoAnswer for an assistant message without text, got %v", err)
	}

	_, err = extractAnswer(nil)
	if !errors.Is(err, domain.ErrNoAnswer) {
		t.Errorf("expected ErrNoAnswer for an empty thread, got %v", err)
	}
}
