package application

import (
	"uxpilot/internal/domain"
	"uxpilot/internal/ports/output"
)

// MediaService struct - Application service implementing media use cases
type MediaService struct {
	store output.MediaStore
}

// NewMediaService func - Creates new media service
func NewMediaService(store output.MediaStore) *MediaService {
	return &MediaService{store: store}
}

// Upload func - Use case: store one file under the request's media id,
// generating a fresh id when none is supplied. Returns the id the file
// landed under; the upload client adopts it for the rest of its batch.
func (s *MediaService) Upload(request domain.UploadRequest) (string, error) {
	mediaID, _, err := s.store.Save(request.MediaID, request.Filename, request.Size, request.File)
	if err != nil {
		return "", err
	}
	return mediaID, nil
}

// ListImages func - Use case: list the image filenames stored under a media id
func (s *MediaService) ListImages(mediaID string) ([]string, error) {
	if err := domain.ValidateMediaID(mediaID); err != nil {
		return nil, err
	}
	return s.store.ListImages(mediaID)
}
