// Package imageref holds user-picked marker images behind revocable
// handles.
package imageref

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnknownHandle is returned for handles that were never issued or
// have been released.
var ErrUnknownHandle = errors.New("unknown image handle")

// Handle refers to a decoded image until it is released.
type Handle string

// Image is a decoded marker picture.
type Image struct {
	Handle Handle
	Name   string
	Format string
	Img    image.Image
}

// Registry issues handles for decoded images.
type Registry struct {
	mu       sync.Mutex
	images   map[Handle]*Image
	released int

	// OnRelease, when set, is called after each successful release.
	OnRelease func(Handle)
}

func NewRegistry() *Registry {
	return &Registry{images: make(map[Handle]*Image)}
}

// Open decodes the file at path.
func (r *Registry) Open(path string) (Handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()
	return r.Decode(f, filepath.Base(path))
}

// Decode reads an image in any registered format.
func (r *Registry) Decode(rd io.Reader, name string) (Handle, error) {
	img, format, err := image.Decode(rd)
	if err != nil {
		return "", fmt.Errorf("decoding image %s: %w", name, err)
	}
	return r.Add(img, name, format), nil
}

// Add registers an already decoded image.
func (r *Registry) Add(img image.Image, name, format string) Handle {
	h := Handle(uuid.New().String())
	r.mu.Lock()
	r.images[h] = &Image{Handle: h, Name: name, Format: format, Img: img}
	r.mu.Unlock()
	return h
}

// Get returns the image behind h.
func (r *Registry) Get(h Handle) (*Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	img, ok := r.images[h]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownHandle, h)
	}
	return img, nil
}

// Release drops the image behind h. Releasing an unknown handle is an
// error so double releases show up.
func (r *Registry) Release(h Handle) error {
	r.mu.Lock()
	if _, ok := r.images[h]; !ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownHandle, h)
	}
	delete(r.images, h)
	r.released++
	r.mu.Unlock()

	if r.OnRelease != nil {
		r.OnRelease(h)
	}
	return nil
}

// Live is the number of unreleased handles.
func (r *Registry) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.images)
}

// Released is the number of successful releases so far.
func (r *Registry) Released() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.released
}
