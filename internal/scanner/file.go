package scanner

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"sync"
)

// FileSource serves frames decoded from image files, in order.
type FileSource struct {
	mu    sync.Mutex
	paths []string
	next  int
}

// NewFileSource creates a source over PNG or JPEG files.
func NewFileSource(paths ...string) *FileSource {
	return &FileSource{paths: append([]string(nil), paths...)}
}

// Frame decodes the next file.
func (f *FileSource) Frame(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	if f.next >= len(f.paths) {
		f.mu.Unlock()
		return nil, io.EOF
	}
	path := f.paths[f.next]
	f.next++
	f.mu.Unlock()

	return DecodeFile(path)
}

// DecodeFile reads a single PNG or JPEG frame.
func DecodeFile(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open frame: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame %s: %w", path, err)
	}
	return img, nil
}
