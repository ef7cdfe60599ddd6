package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrNotImage is returned when the uploaded file content is not an image
var ErrNotImage = errors.New("uploaded file is not an image")

// URLPrefix is the public path uploaded images are served under
const URLPrefix = "/uploads/"

// Store persists uploaded event images under a single directory
type Store struct {
	dir    string
	logger *logrus.Logger
}

// NewStore creates the upload directory if needed and returns a Store
func NewStore(dir string, logger *logrus.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the directory files are stored in
func (s *Store) Dir() string {
	return s.dir
}

// Save validates that the uploaded file is an image, writes it under a
// generated filename and returns its public path (/uploads/<name>).
func (s *Store) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	// Sniff the real content type; the client-supplied header is not trusted
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if !strings.HasPrefix(http.DetectContentType(buf[:n]), "image/") {
		return "", ErrNotImage
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind upload: %w", err)
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(header.Filename))
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return URLPrefix + name, nil
}

// Remove deletes a previously stored image by its public path. Removal is
// best effort: failures are logged and never abort the calling request.
func (s *Store) Remove(publicPath string) {
	if publicPath == "" {
		return
	}
	name := filepath.Base(strings.TrimPrefix(publicPath, URLPrefix))
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		s.logger.WithError(err).WithField("image", publicPath).Warn("Failed to remove image file")
	}
}
