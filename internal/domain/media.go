package domain

import (
	"path/filepath"
	"strings"
)

// MaxUploadBytes is the upload size cap for a single media file (5 MiB).
const MaxUploadBytes = 5 * 1024 * 1024

// allowedImageExtensions lists the file extensions accepted by the media store.
var allowedImageExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
}

// IsAllowedImage reports whether the filename carries an accepted image
// extension. The comparison is case-insensitive.
func IsAllowedImage(filename string) bool {
	return allowedImageExtensions[strings.ToLower(filepath.Ext(filename))]
}

// ValidateMediaID rejects media identifiers that could escape the media
// directory. An empty id is valid: the store generates a fresh one.
func ValidateMediaID(mediaID string) error {
	if mediaID == "" {
		return nil
	}
	if strings.Contains(mediaID, "..") ||
		strings.ContainsAny(mediaID, `/\`) {
		return ErrInvalidMediaID
	}
	return nil
}
