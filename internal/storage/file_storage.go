// Package storage persists uploaded bank book images on the local
// filesystem.
package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/longyuju1116/invoice/pkg/utils"
)

// ImageStore saves uploaded images under a base directory
type ImageStore struct {
	baseDir string
	logger  *zap.Logger
}

// NewImageStore creates a new image store rooted at baseDir
func NewImageStore(baseDir string, logger *zap.Logger) *ImageStore {
	return &ImageStore{baseDir: baseDir, logger: logger}
}

// SaveImage validates the extension and writes the image under the base
// directory with a generated name, returning the stored path
func (s *ImageStore) SaveImage(originalName string, content []byte) (string, error) {
	if err := utils.ValidateImageExtension(originalName); err != nil {
		return "", err
	}

	name := fmt.Sprintf("bankbook_%s_%s%s",
		time.Now().Format("20060102_150405"),
		randomSuffix(),
		strings.ToLower(filepath.Ext(originalName)))
	fullPath := filepath.Join(s.baseDir, name)

	if err := s.validatePath(fullPath); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		s.logger.Error("Failed to write image",
			zap.String("path", fullPath),
			zap.Error(err))
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	s.logger.Debug("Image saved",
		zap.String("path", fullPath),
		zap.Int("size", len(content)))
	return fullPath, nil
}

// validatePath rejects paths that escape the base directory
func (s *ImageStore) validatePath(fullPath string) error {
	absBase, err := filepath.Abs(s.baseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve base directory: %w", err)
	}
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	if !strings.HasPrefix(absPath, absBase+string(os.PathSeparator)) {
		return fmt.Errorf("path escapes upload directory: %s", fullPath)
	}
	return nil
}

func randomSuffix() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// rand.Read only fails when the OS entropy source is broken
		return fmt.Sprintf("%08x", time.Now().UnixNano()&0xffffffff)
	}
	return hex.EncodeToString(b)
}
