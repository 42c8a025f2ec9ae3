package application

import (
	"context"
	"fmt"
	"path"
	"time"

	"uxpilot/internal/domain"
	"uxpilot/internal/ports/output"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// UXTestService struct - Application service implementing the test
// orchestration use case: media -> session -> Q&A -> result. One invocation
// owns one session; assistants are only shared across tests when the caller
// passed an assistant id in.
type UXTestService struct {
	mediaStore    output.MediaStore
	resultRepo    output.ResultRepository
	newClient     output.AssistantClientFactory
	defaultAPIKey string
	model         string
	pollInterval  time.Duration
	runTimeout    time.Duration
}

// NewUXTestService func - Creates new UX test orchestration service
func NewUXTestService(
	mediaStore output.MediaStore,
	resultRepo output.ResultRepository,
	newClient output.AssistantClientFactory,
	defaultAPIKey, model string,
	pollInterval, runTimeout time.Duration,
) *UXTestService {
	return &UXTestService{
		mediaStore:    mediaStore,
		resultRepo:    resultRepo,
		newClient:     newClient,
		defaultAPIKey: defaultAPIKey,
		model:         model,
		pollInterval:  pollInterval,
		runTimeout:    runTimeout,
	}
}

// ConductTest func - Use case: drive the simulated participant through the
// script's questions, strictly in order, against the stored images. The
// questions are a multi-turn interview: each answer depends on the
// conversational context accumulated by earlier ones.
func (s *UXTestService) ConductTest(ctx context.Context, request domain.ConductTestRequest) (*domain.UXTestResult, error) {
	timestampStart := time.Now().UTC().Format(time.RFC3339)

	if len(request.Script.Questions) == 0 {
		return nil, fmt.Errorf("%w: script with at least one question is required", domain.ErrInvalidRequest)
	}
	if request.MediaID == "" {
		return nil, fmt.Errorf("%w: mediaId is required", domain.ErrInvalidRequest)
	}
	if err := domain.ValidateMediaID(request.MediaID); err != nil {
		return nil, err
	}

	apiKey := request.OpenAIKey
	if apiKey == "" {
		apiKey = s.defaultAPIKey
	}
	if apiKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	if !s.mediaStore.Exists(request.MediaID) {
		return nil, domain.ErrMediaNotFound
	}
	images, err := s.mediaStore.ListImages(request.MediaID)
	if err != nil {
		return nil, err
	}

	driver := NewConversationDriver(s.newClient(apiKey), s.model, s.pollInterval, s.runTimeout)

	assistantID, err := driver.EnsureAssistant(ctx, request.AssistantID)
	if err != nil {
		return nil, err
	}
	threadID, err := driver.OpenThread(ctx)
	if err != nil {
		return nil, err
	}

	logrus.Infof("Conducting UX test: script=%s media=%s images=%d questions=%d",
		request.Script.ID, request.MediaID, len(images), len(request.Script.Questions))

	imagePaths := make([]string, 0, len(images))
	media := make([]string, 0, len(images))
	for _, img := range images {
		imagePaths = append(imagePaths, s.mediaStore.Path(request.MediaID, img))
		media = append(media, path.Join(request.MediaID, img))
	}

	firstQuestion := request.Script.Questions[0]
	if err := driver.SeedWithImages(ctx, threadID, imagePaths, firstQuestion.Text); err != nil {
		return nil, err
	}
	answer, err := driver.RunAndAwait(ctx, threadID, assistantID)
	if err != nil {
		return nil, err
	}

	result := &domain.UXTestResult{
		ID:             uuid.NewString(),
		ScriptID:       request.Script.ID,
		ScriptName:     request.Script.Name,
		MediaID:        request.MediaID,
		TimestampStart: timestampStart,
		TimestampEnd:   time.Now().UTC().Format(time.RFC3339),
		Media:          media,
		AssistantID:    assistantID,
		Responses:      []domain.Response{{Question: firstQuestion, Response: answer}},
	}

	for _, question := range request.Script.Questions[1:] {
		answer, err := driver.Ask(ctx, threadID, assistantID, question.Text)
		if err != nil {
			return nil, err
		}
		result.Responses = append(result.Responses, domain.Response{Question: question, Response: answer})
	}

	result.TimestampEnd = time.Now().UTC().Format(time.RFC3339)

	// Persisting the record is best-effort: the caller still gets the
	// completed result when the store is unavailable.
	if err := s.resultRepo.AppendResult(*result); err != nil {
		logrus.Errorf("Failed to persist UX test result %s: %v", result.ID, err)
	}

	return result, nil
}
