package filestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"uxpilot/internal/domain"
	"uxpilot/internal/ports/output"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure MediaStore implements the MediaStore port
var _ output.MediaStore = (*MediaStore)(nil)

// seqPattern matches numerically named media files such as 001.png or 012.jpg
var seqPattern = regexp.MustCompile(`^(\d+)\.\w+$`)

// MediaStore struct - Output adapter storing media on the local filesystem.
// Each media id maps to one directory under root; files inside it form an
// append-only sequence named by a zero-padded counter plus the original
// extension. Numbering is serialized per media id so concurrent uploads to
// the same id cannot derive the same sequence number from a stale scan.
type MediaStore struct {
	root string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewMediaStore creates the store root directory if absent.
func NewMediaStore(root string) (*MediaStore, error) {
	if root == "" {
		return nil, fmt.Errorf("media store root must not be empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root: %w", err)
	}

	logrus.Infof("Media store initialized at %s", root)

	return &MediaStore{
		root:  root,
		locks: map[string]*sync.Mutex{},
	}, nil
}

// lockFor returns the numbering lock for one media id.
func (s *MediaStore) lockFor(mediaID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[mediaID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[mediaID] = l
	}
	return l
}

// Save stores one file under mediaID (or a freshly generated uuid when the
// id is empty) as <seq>.<ext> with seq = highest existing number + 1.
func (s *MediaStore) Save(mediaID, originalFilename string, size int64, src io.Reader) (string, string, error) {
	if err := domain.ValidateMediaID(mediaID); err != nil {
		return "", "", err
	}
	if !domain.IsAllowedImage(originalFilename) {
		return "", "", fmt.Errorf("%w: only jpeg, jpg and png files are allowed", domain.ErrUnsupportedMedia)
	}
	if size > domain.MaxUploadBytes {
		return "", "", fmt.Errorf("%w: file exceeds %d bytes", domain.ErrUnsupportedMedia, domain.MaxUploadBytes)
	}

	if mediaID == "" {
		mediaID = uuid.NewString()
	}

	lock := s.lockFor(mediaID)
	lock.Lock()
	defer lock.Unlock()

	folder := filepath.Join(s.root, mediaID)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create media folder: %w", err)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(originalFilename), "."))
	name := fmt.Sprintf("%03d.%s", highestFileNumber(folder)+1, ext)

	dst, err := os.Create(filepath.Join(folder, name))
	if err != nil {
		return "", "", fmt.Errorf("failed to create media file: %w", err)
	}

	// The size argument comes from the multipart header; cap the copy as well
	// in case the body is longer than declared.
	written, err := io.Copy(dst, io.LimitReader(src, domain.MaxUploadBytes+1))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(filepath.Join(folder, name))
		return "", "", fmt.Errorf("failed to write media file: %w", err)
	}
	if written > domain.MaxUploadBytes {
		os.Remove(filepath.Join(folder, name))
		return "", "", fmt.Errorf("%w: file exceeds %d bytes", domain.ErrUnsupportedMedia, domain.MaxUploadBytes)
	}

	logrus.Infof("Stored media file %s/%s (%d bytes)", mediaID, name, written)

	return mediaID, name, nil
}

// ListImages returns the accepted image filenames under mediaID in directory
// listing order.
func (s *MediaStore) ListImages(mediaID string) ([]string, error) {
	if err := domain.ValidateMediaID(mediaID); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(s.root, mediaID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrMediaNotFound
		}
		return nil, fmt.Errorf("failed to read media folder: %w", err)
	}

	images := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if domain.IsAllowedImage(entry.Name()) {
			images = append(images, entry.Name())
		}
	}
	return images, nil
}

// Exists reports whether a folder exists for the id.
func (s *MediaStore) Exists(mediaID string) bool {
	if domain.ValidateMediaID(mediaID) != nil || mediaID == "" {
		return false
	}
	info, err := os.Stat(filepath.Join(s.root, mediaID))
	return err == nil && info.IsDir()
}

// Path returns the absolute filesystem path of a stored file.
func (s *MediaStore) Path(mediaID, filename string) string {
	return filepath.Join(s.root, mediaID, filename)
}

// highestFileNumber scans a folder for numerically named files and returns
// the highest number found, or 0 for a missing or empty folder.
func highestFileNumber(folder string) int {
	highest := 0
	entries, err := os.ReadDir(folder)
	if err != nil {
		return 0
	}
	for _, entry := range entries {
		m := seqPattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err == nil && n > highest {
			highest = n
		}
	}
	return highest
}
