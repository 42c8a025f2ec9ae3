package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"uxpilot/internal/domain"
	"uxpilot/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure AssistantClient implements the output port
var _ output.AssistantClient = (*AssistantClient)(nil)

const (
	defaultBaseURL = "https://api.openai.com"

	// The assistants endpoints sit behind a beta opt-in header.
	betaHeader      = "OpenAI-Beta"
	betaHeaderValue = "assistants=v2"
)

// AssistantClient struct - Output adapter for the OpenAI Assistants v2 API.
// One client is bound to one API key; a fresh client is built per test run
// because callers may bring their own key. The adapter performs no retries:
// retry policy belongs to the upload client, not the server side.
type AssistantClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewAssistantClient func - Creates a client bound to one API key
func NewAssistantClient(apiKey, baseURL string, timeout time.Duration) *AssistantClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return &AssistantClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// CreateAssistant provisions a new assistant and returns its id.
func (a *AssistantClient) CreateAssistant(ctx context.Context, name, instructions, model string) (string, error) {
	reqBody := createAssistantAPIRequest{
		Name:         name,
		Instructions: instructions,
		Model:        model,
	}

	var resp objectAPIResponse
	if err := a.doJSON(ctx, http.MethodPost, "/v1/assistants", reqBody, &resp); err != nil {
		return "", fmt.Errorf("failed to create assistant: %w", err)
	}

	logrus.Infof("Created assistant %s (model %s)", resp.ID, model)

	return resp.ID, nil
}

// CreateThread opens a fresh conversational thread.
func (a *AssistantClient) CreateThread(ctx context.Context) (string, error) {
	var resp objectAPIResponse
	if err := a.doJSON(ctx, http.MethodPost, "/v1/threads", struct{}{}, &resp); err != nil {
		return "", fmt.Errorf("failed to create thread: %w", err)
	}

	logrus.Infof("Created thread %s", resp.ID)

	return resp.ID, nil
}

// UploadImage uploads a local file to the service file store with purpose
// "vision" and returns the remote file id. This is a second upload hop,
// independent of the local media store.
func (a *AssistantClient) UploadImage(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open media file: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("purpose", "vision"); err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to read media file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/files", &body)
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	a.setAuthHeaders(req)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var fileResp objectAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&fileResp); err != nil {
		return "", fmt.Errorf("failed to parse file upload response: %w", err)
	}

	logrus.Infof("Uploaded vision file %s as %s", filepath.Base(path), fileResp.ID)

	return fileResp.ID, nil
}

// AddMessage posts a user message to the thread, attaching any image file
// ids as image_file parts after the text part.
func (a *AssistantClient) AddMessage(ctx context.Context, threadID, text string, imageFileIDs []string) error {
	content := []messageContentAPI{{Type: "text", Text: text}}
	for _, fileID := range imageFileIDs {
		content = append(content, messageContentAPI{
			Type:      "image_file",
			ImageFile: &imageFileAPI{FileID: fileID},
		})
	}

	reqBody := createMessageAPIRequest{
		Role:    "user",
		Content: content,
	}

	var resp objectAPIResponse
	path := fmt.Sprintf("/v1/threads/%s/messages", threadID)
	if err := a.doJSON(ctx, http.MethodPost, path, reqBody, &resp); err != nil {
		return fmt.Errorf("failed to add message: %w", err)
	}
	return nil
}

// CreateRun starts an execution run of the assistant on the thread.
func (a *AssistantClient) CreateRun(ctx context.Context, threadID, assistantID string) (string, error) {
	reqBody := createRunAPIRequest{AssistantID: assistantID}

	var resp runAPIResponse
	path := fmt.Sprintf("/v1/threads/%s/runs", threadID)
	if err := a.doJSON(ctx, http.MethodPost, path, reqBody, &resp); err != nil {
		return "", fmt.Errorf("failed to create run: %w", err)
	}

	logrus.Infof("Started run %s on thread %s", resp.ID, threadID)

	return resp.ID, nil
}

// GetRun reports the current state of a run.
func (a *AssistantClient) GetRun(ctx context.Context, threadID, runID string) (*domain.Run, error) {
	var resp runAPIResponse
	path := fmt.Sprintf("/v1/threads/%s/runs/%s", threadID, runID)
	if err := a.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &domain.Run{ID: resp.ID, Status: resp.Status}, nil
}

// ListMessages returns the thread's messages, newest first (service default).
func (a *AssistantClient) ListMessages(ctx context.Context, threadID string) ([]domain.ThreadMessage, error) {
	var resp listMessagesAPIResponse
	path := fmt.Sprintf("/v1/threads/%s/messages", threadID)
	if err := a.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	messages := make([]domain.ThreadMessage, 0, len(resp.Data))
	for _, m := range resp.Data {
		msg := domain.ThreadMessage{ID: m.ID, Role: m.Role}
		for _, part := range m.Content {
			p := domain.MessagePart{Type: part.Type}
			if part.Text != nil {
				p.Text = part.Text.Value
			}
			msg.Parts = append(msg.Parts, p)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// doJSON executes one JSON request against the assistants API.
func (a *AssistantClient) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	a.setAuthHeaders(req)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func (a *AssistantClient) setAuthHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set(betaHeader, betaHeaderValue)
}

// checkStatus maps a non-2xx response onto the domain error taxonomy,
// keeping the service's own message for the log.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(resp.Body)
	logrus.Errorf("Assistants API returned status %d: %s", resp.StatusCode, string(body))
	return fmt.Errorf("%w: status %d", domain.ErrAssistantAPI, resp.StatusCode)
}

// API request/response structures for the OpenAI Assistants v2 API

// createAssistantAPIRequest represents the request body for POST /v1/assistants
type createAssistantAPIRequest struct {
	Name         string `json:"name"`
	Instructions string `json:"instructions"`
	Model        string `json:"model"`
}

// objectAPIResponse covers the responses we only need the object id from
type objectAPIResponse struct {
	ID     string `json:"id"`
	Object string `json:"object"`
}

// imageFileAPI references an uploaded vision file
type imageFileAPI struct {
	FileID string `json:"file_id"`
}

// messageContentAPI represents one content part of a message
type messageContentAPI struct {
	Type      string        `json:"type"`
	Text      string        `json:"text,omitempty"`
	ImageFile *imageFileAPI `json:"image_file,omitempty"`
}

// createMessageAPIRequest represents the request body for creating a message
type createMessageAPIRequest struct {
	Role    string              `json:"role"`
	Content []messageContentAPI `json:"content"`
}

// createRunAPIRequest represents the request body for starting a run
type createRunAPIRequest struct {
	AssistantID string `json:"assistant_id"`
}

// runAPIResponse represents a run object
type runAPIResponse struct {
	ID       string `json:"id"`
	Object   string `json:"object"`
	Status   string `json:"status"`
	ThreadID string `json:"thread_id"`
}

// listMessagesAPIResponse represents the message list, newest first
type listMessagesAPIResponse struct {
	Object string `json:"object"`
	Data   []struct {
		ID      string `json:"id"`
		Role    string `json:"role"`
		Content []struct {
			Type string `json:"type"`
			Text *struct {
				Value string `json:"value"`
			} `json:"text,omitempty"`
			ImageFile *imageFileAPI `json:"image_file,omitempty"`
		} `json:"content"`
	} `json:"data"`
}
