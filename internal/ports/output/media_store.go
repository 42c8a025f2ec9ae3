package output

import "io"

// MediaStore interface - Output port
// Filesystem-backed content store keyed by an opaque media id. Files within
// one id form an append-only numbered sequence (001.png, 002.jpg, ...).
type MediaStore interface {
	// Save writes one file under mediaID, generating a fresh id when mediaID
	// is empty. The stored name is the next free sequence number plus the
	// original extension. Returns the id the file landed under and the
	// stored filename.
	Save(mediaID, originalFilename string, size int64, src io.Reader) (string, string, error)

	// ListImages returns the filenames with an accepted image extension under
	// mediaID, in directory listing order. Returns domain.ErrMediaNotFound
	// when no folder exists for the id.
	ListImages(mediaID string) ([]string, error)

	// Exists reports whether a folder exists for the id.
	Exists(mediaID string) bool

	// Path returns the absolute filesystem path of a stored file.
	Path(mediaID, filename string) string
}
