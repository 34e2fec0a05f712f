// Package storage keeps uploaded product images on local disk and hands out
// public URLs for them. Uploads happen before the inventory insert, so a
// failed upload aborts item creation with nothing to roll back.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Images wider than this are resized down before saving.
const maxImageWidth = 1600

type ImageStore struct {
	dir     string
	baseURL string
	logger  *zap.Logger
}

func NewImageStore(dir string, baseURL string, logger *zap.Logger) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	return &ImageStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}, nil
}

// Save decodes the uploaded image, bounds its width and writes it under a
// fresh key. Returns the public URL of the stored file.
func (s *ImageStore) Save(r io.Reader) (string, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}

	name := uuid.New().String() + ".jpg"
	path := filepath.Join(s.dir, name)

	if err := imaging.Save(img, path, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	s.logger.Info("stored product image", zap.String("file", name))

	return s.baseURL + "/uploads/" + name, nil
}

// Remove deletes a stored image by its public URL. Unknown URLs are ignored.
func (s *ImageStore) Remove(publicURL string) {
	idx := strings.LastIndex(publicURL, "/uploads/")
	if idx < 0 {
		return
	}
	name := publicURL[idx+len("/uploads/"):]
	if name == "" || strings.Contains(name, "/") {
		return
	}

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to remove image", zap.String("file", name), zap.Error(err))
	}
}
