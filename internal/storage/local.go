package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/FeedApp/feed-service/internal/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrUnsupportedImageType = errors.New("unsupported image type")

var allowedImageTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/jpg":  {},
}

// AllowedImageType reports whether contentType may enter the store. Callers at
// the ingestion boundary drop disallowed files before they reach the service.
func AllowedImageType(contentType string) bool {
	_, ok := allowedImageTypes[strings.ToLower(strings.TrimSpace(contentType))]
	return ok
}

// Local stores image artifacts on disk under dir. Names are time-ordered UUIDs
// decoupled from the client-supplied filename; returned paths are
// storage-relative with forward slashes.
type Local struct {
	logger *zap.Logger
	dir    string
}

func NewLocal(logger *zap.Logger, dir string) *Local {
	return &Local{
		logger: logger,
		dir:    dir,
	}
}

func (s *Local) Save(ctx context.Context, upload *dto.ImageUpload) (string, error) {
	if upload == nil || !AllowedImageType(upload.ContentType) {
		return "", ErrUnsupportedImageType
	}

	id, err := uuid.NewUUID()
	if err != nil {
		return "", err
	}
	name := id.String() + strings.ToLower(filepath.Ext(upload.Name))

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, upload.Data); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", err
	}
	if err := dst.Close(); err != nil {
		return "", err
	}

	return filepath.ToSlash(filepath.Join(s.dir, name)), nil
}

// Delete removes an artifact. A missing file is not an error: the artifact is
// already gone and cleanup is best-effort.
func (s *Local) Delete(ctx context.Context, path string) error {
	err := os.Remove(filepath.FromSlash(path))
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Sugar().Debugf("image(%s) is already absent", path)
		return nil
	}

	return err
}
