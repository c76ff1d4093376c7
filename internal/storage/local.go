package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// SanitizeFilename strips path components and anything outside
// [A-Za-z0-9._-] from an uploaded filename, so user input can never
// escape the upload directory.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "file"
	}
	return name
}

// FileStore persists uploaded images and returns the stored filename
type FileStore interface {
	Save(file *multipart.FileHeader) (string, error)
}

type LocalStore struct {
	dir string
}

// NewLocalStore creates the upload directory if needed and returns a
// store writing into it.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save writes the upload under a collision-resistant name: a random uuid
// prefixed onto the sanitized original filename. The bytes land in a temp
// file first and are renamed into place on success, so a failed copy never
// leaves a partial image under the public name.
func (s *LocalStore) Save(file *multipart.FileHeader) (string, error) {
	storedName := uuid.New().String() + "_" + SanitizeFilename(file.Filename)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to flush upload: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, storedName)); err != nil {
		return "", fmt.Errorf("failed to commit upload: %w", err)
	}

	return storedName, nil
}
