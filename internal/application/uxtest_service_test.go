package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"testing"
	"time"

	"uxpilot/internal/domain"
	"uxpilot/internal/ports/output"
)

// MockMediaStore struct - Mock implementation of the media store output port
// for testing
type MockMediaStore struct {
	ExistsFunc     func(mediaID string) bool
	ListImagesFunc func(mediaID string) ([]string, error)
}

func (m *MockMediaStore) Save(mediaID, originalFilename string, size int64, src io.Reader) (string, string, error) {
	return mediaID, "001.png", nil
}

func (m *MockMediaStore) ListImages(mediaID string) ([]string, error) {
	if m.ListImagesFunc != nil {
		return m.ListImagesFunc(mediaID)
	}
	return []string{"001.png"}, nil
}

func (m *MockMediaStore) Exists(mediaID string) bool {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(mediaID)
	}
	return true
}

func (m *MockMediaStore) Path(mediaID, filename string) string {
	return filepath.Join("/media", mediaID, filename)
}

// MockResultRepository struct - Mock implementation of the result repository
// output port for testing
type MockResultRepository struct {
	AppendResultFunc func(result domain.UXTestResult) error

	Appended []domain.UXTestResult
}

func (m *MockResultRepository) AppendResult(result domain.UXTestResult) error {
	if m.AppendResultFunc != nil {
		if err := m.AppendResultFunc(result); err != nil {
			return err
		}
	}
	m.Appended = append(m.Appended, result)
	return nil
}

func (m *MockResultRepository) ListResults() ([]domain.UXTestResult, error) {
	return m.Appended, nil
}

func (m *MockResultRepository) GetResult(id string) (*domain.UXTestResult, error) {
	for i := range m.Appended {
		if m.Appended[i].ID == id {
			return &m.Appended[i], nil
		}
	}
	return nil, domain.ErrResultNotFound
}

func newTestService(store *MockMediaStore, repo *MockResultRepository, client *MockAssistantClient, defaultKey string) *UXTestService {
	factory := func(apiKey string) output.AssistantClient { return client }
	return NewUXTestService(store, repo, factory, defaultKey, "gpt-4o", time.Millisecond, 50*time.Millisecond)
}

func threeQuestionScript() domain.Script {
	return domain.Script{
		ID:   "s1",
		Name: "Quick",
		Questions: []domain.Question{
			{ID: "q1", Text: "What stands out?"},
			{ID: "q2", Text: "Anything confusing?"},
			{ID: "q3", Text: "Would you use it?", UserFollowUp: true},
		},
	}
}

// TestConductTestRunsQuestionsInOrder tests the full orchestration: images
// are seeded exactly once with the first question, follow-ups run strictly
// in script order, and responses pair 1:1 with the questions.
func TestConductTestRunsQuestionsInOrder(t *testing.T) {
	answers := []string{"the header", "no, it is clear", "yes, probably"}
	runs := 0
	mockClient := &MockAssistantClient{
		ListMessagesFunc: func(ctx context.Context, threadID string) ([]domain.ThreadMessage, error) {
			return []domain.ThreadMessage{
				{ID: fmt.Sprintf("msg_%d", runs), Role: "assistant",
					Parts: []domain.MessagePart{{Type: "text", Text: answers[runs-1]}}},
			}, nil
		},
	}
	mockClient.CreateRunFunc = func(ctx context.Context, threadID, assistantID string) (string, error) {
		runs++
		return fmt.Sprintf("run_%d", runs), nil
	}
	mockStore := &MockMediaStore{
		ListImagesFunc: func(mediaID string) ([]string, error) {
			return []string{"001.png", "002.jpg"}, nil
		},
	}
	mockRepo := &MockResultRepository{}
	service := newTestService(mockStore, mockRepo, mockClient, "sk-server")

	result, err := service.ConductTest(context.Background(), domain.ConductTestRequest{
		Script:  threeQuestionScript(),
		MediaID: "abc",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	// One seed message plus one plain message per follow-up question.
	if len(mockClient.AddedMessages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(mockClient.AddedMessages))
	}
	seed := mockClient.AddedMessages[0]
	if seed.Text != "What stands out?" || len(seed.FileIDs) != 2 {
		t.Errorf("expected the seed message to carry Q1 and both images, got %+v", seed)
	}
	for i, msg := range mockClient.AddedMessages[1:] {
		if len(msg.FileIDs) != 0 {
			t.Errorf("expected follow-up %d to carry no images, got %v", i, msg.FileIDs)
		}
	}
	if mockClient.AddedMessages[1].Text != "Anything confusing?" || mockClient.AddedMessages[2].Text != "Would you use it?" {
		t.Error("expected follow-ups to run in script order")
	}

	if len(result.Responses) != 3 {
		t.Fatalf("expected 3 responses, got %d", len(result.Responses))
	}
	for i, want := range answers {
		if result.Responses[i].Response != want {
			t.Errorf("expected response %d to be %q, got %q", i, want, result.Responses[i].Response)
		}
		if result.Responses[i].Question.ID != threeQuestionScript().Questions[i].ID {
			t.Errorf("expected response %d paired with question %d", i, i)
		}
	}

	if result.ScriptID != "s1" || result.ScriptName != "Quick" || result.MediaID != "abc" {
		t.Errorf("unexpected result header: %+v", result)
	}
	if len(result.Media) != 2 || result.Media[0] != "abc/001.png" || result.Media[1] != "abc/002.jpg" {
		t.Errorf("expected store-relative media entries, got %v", result.Media)
	}
	if result.AssistantID != "asst_mock" {
		t.Errorf("expected a provisioned assistant id, got %s", result.AssistantID)
	}
	if result.TimestampStart == "" || result.TimestampEnd == "" {
		t.Error("expected both timestamps to be set")
	}

	if len(mockRepo.Appended) != 1 || mockRepo.Appended[0].ID != result.ID {
		t.Error("expected the completed result to be persisted once")
	}
}

// TestConductTestReusesCallerAssistant tests that a caller-supplied assistant
// id skips provisioning
func TestConductTestReusesCallerAssistant(t *testing.T) {
	created := false
	mockClient := &MockAssistantClient{
		CreateAssistantFunc: func(ctx context.Context, name, instructions, model string) (string, error) {
			created = true
			return "asst_new", nil
		},
	}
	service := newTestService(&MockMediaStore{}, &MockResultRepository{}, mockClient, "sk-server")

	result, err := service.ConductTest(context.Background(), domain.ConductTestRequest{
		Script:      threeQuestionScript(),
		MediaID:     "abc",
		AssistantID: "asst_caller",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if created {
		t.Error("expected no assistant provisioning with a caller-supplied id")
	}
	if result.AssistantID != "asst_caller" {
		t.Errorf("expected asst_caller in the result, got %s", result.AssistantID)
	}
}

// TestConductTestKeyFallback tests the api key precedence: request key over
// server key, and ErrMissingAPIKey when neither is set
func TestConductTestKeyFallback(t *testing.T) {
	var usedKey string
	mockClient := &MockAssistantClient{}
	factory := func(apiKey string) output.AssistantClient {
		usedKey = apiKey
		return mockClient
	}
	service := NewUXTestService(&MockMediaStore{}, &MockResultRepository{}, factory,
		"sk-server", "gpt-4o", time.Millisecond, 50*time.Millisecond)

	if _, err := service.ConductTest(context.Background(), domain.ConductTestRequest{
		Script:    threeQuestionScript(),
		MediaID:   "abc",
		OpenAIKey: "sk-caller",
	}); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if usedKey != "sk-caller" {
		t.Errorf("expected the request key to win, got %s", usedKey)
	}

	if _, err := service.ConductTest(context.Background(), domain.ConductTestRequest{
		Script:  threeQuestionScript(),
		MediaID: "abc",
	}); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if usedKey != "sk-server" {
		t.Errorf("expected the server key as fallback, got %s", usedKey)
	}

	noKey := newTestService(&MockMediaStore{}, &MockResultRepository{}, mockClient, "")
	_, err := noKey.ConductTest(context.Background(), domain.ConductTestRequest{
		Script:  threeQuestionScript(),
		MediaID: "abc",
	})
	if !errors.Is(err, domain.ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}

// TestConductTestValidation tests the request validation errors
func TestConductTestValidation(t *testing.T) {
	service := newTestService(&MockMediaStore{}, &MockResultRepository{}, &MockAssistantClient{}, "sk-server")

	_, err := service.ConductTest(context.Background(), domain.ConductTestRequest{
		Script:  domain.Script{ID: "s1", Name: "Empty"},
		MediaID: "abc",
	})
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest for an empty script, got %v", err)
	}

	_, err = service.ConductTest(context.Background(), domain.ConductTestRequest{
		Script: threeQuestionScript(),
	})
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest without a mediaId, got %v", err)
	}

	_, err = service.ConductTest(context.Background(), domain.ConductTestRequest{
		Script:  threeQuestionScript(),
		MediaID: "../etc",
	})
	if !errors.Is(err, domain.ErrInvalidMediaID) {
		t.Errorf("expected ErrInvalidMediaID for traversal, got %v", err)
	}
}

// TestConductTestUnknownMedia tests that an unknown media id maps to
// ErrMediaNotFound before any assistant call
func TestConductTestUnknownMedia(t *testing.T) {
	mockClient := &MockAssistantClient{}
	mockStore := &MockMediaStore{
		ExistsFunc: func(mediaID string) bool { return false },
	}
	service := newTestService(mockStore, &MockResultRepository{}, mockClient, "sk-server")

	_, err := service.ConductTest(context.Background(), domain.ConductTestRequest{
		Script:  threeQuestionScript(),
		MediaID: "missing",
	})
	if !errors.Is(err, domain.ErrMediaNotFound) {
		t.Fatalf("expected ErrMediaNotFound, got %v", err)
	}
	if len(mockClient.UploadedPaths) != 0 || mockClient.RunsCreated != 0 {
		t.Error("expected no assistant traffic for unknown media")
	}
}

// TestConductTestMidRunFailureLeavesNoResult tests that a failure on a later
// question aborts the test and nothing partial is persisted
func TestConductTestMidRunFailureLeavesNoResult(t *testing.T) {
	runs := 0
	mockClient := &MockAssistantClient{
		GetRunFunc: func(ctx context.Context, threadID, runID string) (*domain.Run, error) {
			status := domain.RunStatusCompleted
			if runs >= 2 {
				status = domain.RunStatusFailed
			}
			return &domain.Run{ID: runID, Status: status}, nil
		},
	}
	mockClient.CreateRunFunc = func(ctx context.Context, threadID, assistantID string) (string, error) {
		runs++
		return fmt.Sprintf("run_%d", runs), nil
	}
	mockRepo := &MockResultRepository{}
	service := newTestService(&MockMediaStore{}, mockRepo, mockClient, "sk-server")

	_, err := service.ConductTest(context.Background(), domain.ConductTestRequest{
		Script:  threeQuestionScript(),
		MediaID: "abc",
	})
	if !errors.Is(err, domain.ErrRunNotCompleted) {
		t.Fatalf("expected ErrRunNotCompleted, got %v", err)
	}
	if len(mockRepo.Appended) != 0 {
		t.Error("expected no partial result to be persisted")
	}
}

// TestConductTestSurvivesResultStoreFailure tests that a failing result store
// does not fail the completed test
func TestConductTestSurvivesResultStoreFailure(t *testing.T) {
	mockRepo := &MockResultRepository{
		AppendResultFunc: func(result domain.UXTestResult) error {
			return errors.New("store unavailable")
		},
	}
	service := newTestService(&MockMediaStore{}, mockRepo, &MockAssistantClient{}, "sk-server")

	result, err := service.ConductTest(context.Background(), domain.ConductTestRequest{
		Script:  threeQuestionScript(),
		MediaID: "abc",
	})
	if err != nil {
		t.Fatalf("expected the completed result despite the store failure, got: %v", err)
	}
	if len(result.Responses) != 3 {
		t.Errorf("expected 3 responses, got %d", len(result.Responses))
	}
}
