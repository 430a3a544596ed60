// Package images provides recipe image validation and filesystem storage.
package images

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"
	"path/filepath"
	"sync"

	_ "golang.org/x/image/webp" // Register WebP decoder
)

// DetectFormat decodes the image header and returns the format name
// ("jpeg", "png", "gif", "webp"). Returns an error when the payload is
// not a supported image.
func DetectFormat(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	return format, nil
}

// Storage manages image filesystem operations.
// Thread-safe for concurrent operations.
type Storage struct {
	basePath string
	mu       sync.RWMutex // Protects file operations
}

// NewStorage creates a Storage rooted at {basePath}/{subdir}/,
// creating the directory if needed.
func NewStorage(basePath, subdir string) (*Storage, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}
	if subdir == "" {
		return nil, fmt.Errorf("subdirectory cannot be empty")
	}

	storagePath := filepath.Join(basePath, subdir)
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s directory: %w", subdir, err)
	}

	return &Storage{basePath: storagePath}, nil
}

// Save stores image data under the given file name.
func (s *Storage) Save(name string, imgData []byte) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if len(imgData) == 0 {
		return fmt.Errorf("image data cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.Path(name), imgData, 0644); err != nil {
		return fmt.Errorf("failed to write image file: %w", err)
	}
	return nil
}

// Get retrieves image data by file name.
func (s *Storage) Get(name string) ([]byte, error) {
	if name == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image not found for %s: %w", name, err)
		}
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}
	return data, nil
}

// Exists checks if an image file is present.
func (s *Storage) Exists(name string) bool {
	if name == "" {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.Path(name))
	return err == nil
}

// Delete removes an image file. Deleting a missing file is not an error.
func (s *Storage) Delete(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.Path(name)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete image file: %w", err)
	}
	return nil
}

// Path returns the full filesystem path for a stored image.
func (s *Storage) Path(name string) string {
	return filepath.Join(s.basePath, name)
}

// BasePath returns the directory images are stored in.
func (s *Storage) BasePath() string {
	return s.basePath
}
