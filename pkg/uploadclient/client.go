// Package uploadclient implements the caller side of the media upload
// pipeline: it sends a batch of selected image files to a uxpilot server,
// converging every file onto one media id, with per-file progress reporting
// and bounded retries.
package uploadclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// MaxRetries is the number of extra attempts per file after the first one.
const MaxRetries = 2

// ErrUploadFailed indicates the first file of a batch never succeeded, so no
// media id could be established. The whole batch is fatal in that case.
var ErrUploadFailed = errors.New("upload of media failed")

// ProgressFunc observes per-file upload progress: index is the position of
// the file within the batch, percent runs 0-100 based on bytes transferred.
type ProgressFunc func(index, percent int)

// Client struct - Batch uploader owning one media id. A client whose id is
// already set short-circuits the next Run entirely: the selection is treated
// as already uploaded until Reset is called.
type Client struct {
	httpClient *http.Client
	baseURL    string
	mediaID    string
	onProgress ProgressFunc
}

// Option is a functional option for Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

// WithProgress registers a per-file progress observer.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Client) {
		c.onProgress = fn
	}
}

// WithMediaID pre-seeds the client with an id cached from a prior unmodified
// selection.
func WithMediaID(mediaID string) Option {
	return func(c *Client) {
		c.mediaID = mediaID
	}
}

// New func - Creates a batch upload client for one server
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    baseURL,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// MediaID returns the id the batch converged on, or "" before the first Run.
func (c *Client) MediaID() string {
	return c.mediaID
}

// Reset clears the cached media id. Call it when the file selection changes;
// the next Run uploads everything afresh under a new id.
func (c *Client) Reset() {
	c.mediaID = ""
}

// Run uploads the batch sequentially and returns the media id all files
// landed under. When a media id is already known the selection is treated as
// already uploaded and no network calls are made. The first file failing all
// its attempts aborts the batch with ErrUploadFailed; a later file failing
// permanently is tolerated and the batch proceeds without it.
func (c *Client) Run(ctx context.Context, files []string) (string, error) {
	if c.mediaID != "" {
		logrus.Infof("Media already uploaded & is unmodified: %s", c.mediaID)
		return c.mediaID, nil
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no files to upload")
	}

	var current string
	for i, path := range files {
		mediaID, err := c.uploadWithRetry(ctx, i, current, path)
		if err != nil {
			if i == 0 {
				logrus.Errorf("Failed to get media id from first upload: %v", err)
				return "", ErrUploadFailed
			}
			logrus.Warnf("Upload of %s failed permanently, batch continues: %v", path, err)
			continue
		}
		current = mediaID
	}

	c.mediaID = current
	return current, nil
}

// uploadWithRetry attempts one file up to 1+MaxRetries times.
func (c *Client) uploadWithRetry(ctx context.Context, index int, mediaID, path string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		id, err := c.upload(ctx, index, mediaID, path)
		if err == nil {
			return id, nil
		}
		lastErr = err
		logrus.Warnf("Upload attempt %d/%d for %s failed: %v", attempt+1, MaxRetries+1, path, err)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}
	}
	return "", lastErr
}

// upload performs one multipart POST /upload call.
func (c *Client) upload(ctx context.Context, index int, mediaID, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if mediaID != "" {
		if err := writer.WriteField("mediaId", mediaID); err != nil {
			return "", fmt.Errorf("failed to build request: %w", err)
		}
	}
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	total := int64(body.Len())
	reader := &progressReader{
		r:     &body,
		total: total,
		report: func(percent int) {
			if c.onProgress != nil {
				c.onProgress(index, percent)
			}
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", reader)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.ContentLength = total

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload rejected with status %d: %s", resp.StatusCode, string(raw))
	}

	var uploadResp struct {
		MediaID string `json:"mediaId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploadResp); err != nil {
		return "", fmt.Errorf("failed to parse upload response: %w", err)
	}
	if uploadResp.MediaID == "" {
		return "", fmt.Errorf("upload response carried no media id")
	}

	if c.onProgress != nil {
		c.onProgress(index, 100)
	}

	return uploadResp.MediaID, nil
}

// progressReader counts bytes handed to the HTTP transport and reports them
// as a percentage of the request body.
type progressReader struct {
	r      io.Reader
	total  int64
	read   int64
	report func(percent int)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)
	if p.total > 0 && p.report != nil && n > 0 {
		percent := int(p.read * 100 / p.total)
		if percent > 100 {
			percent = 100
		}
		p.report(percent)
	}
	return n, err
}
