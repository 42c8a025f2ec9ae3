package input

import "uxpilot/internal/domain"

// MediaService interface - Input port (use case)
// Defines what the application can do with uploaded media
type MediaService interface {
	// Upload stores one file under the request's media id, or under a freshly
	// generated id when none is given. Returns the media id the file landed
	// under so a caller can converge a whole batch onto one id.
	Upload(request domain.UploadRequest) (string, error)

	// ListImages returns the image filenames stored under the media id.
	ListImages(mediaID string) ([]string, error)
}
