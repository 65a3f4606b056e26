// Package upload validates and stores employee photos under the
// served static assets directory.
package upload

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxPhotoSize is the upload limit: exactly 2 MiB passes, one byte
// over is rejected.
const MaxPhotoSize = 2 * 1024 * 1024

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrTooLarge        = errors.New("image exceeds the size limit")
)

// Service writes uploaded photos into a fixed directory and hands back
// the public path they are served under. The directory is shared by
// all requests; creation is idempotent and safe to run concurrently.
type Service struct {
	dir          string
	publicPrefix string
	logger       *slog.Logger
}

func NewService(dir, publicPrefix string, logger *slog.Logger) *Service {
	return &Service{
		dir:          dir,
		publicPrefix: publicPrefix,
		logger:       logger,
	}
}

// Save validates the file and writes it fully before returning. The
// generated name is a random UUID with the original extension, so
// collisions are negligible. Old files are never cleaned up here.
func (s *Service) Save(filename string, size int64, content io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}

	if size > MaxPhotoSize {
		return "", fmt.Errorf("%w: %d bytes", ErrTooLarge, size)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + ext
	dst := filepath.Join(s.dir, name)

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create photo file: %w", err)
	}

	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("write photo file: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("close photo file: %w", err)
	}

	publicPath := path.Join(s.publicPrefix, name)
	s.logger.Info("photo stored", "path", publicPath, "size", size)

	return publicPath, nil
}

// Dir exposes the storage directory for static file serving.
func (s *Service) Dir() string {
	return s.dir
}
