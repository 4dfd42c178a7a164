// Package asset loads and holds the images, audio clips and videos a scene
// draws with.
//
// Loads run on their own goroutines and hand back a *Task. Join them with
// WaitAll before touching the results; the Get methods only see assets whose
// load has completed.
package asset

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

type key struct {
	kind Kind
	name string
}

// Registry stores loaded assets by name. Each name can be loaded once per
// kind. A Registry is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	images   map[string]*Image
	audio    map[string]*Audio
	videos   map[string]*Video
	reserved map[key]struct{}

	log *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger for load events.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		images:   make(map[string]*Image),
		audio:    make(map[string]*Audio),
		videos:   make(map[string]*Video),
		reserved: make(map[key]struct{}),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LoadImage decodes the image at path and stores it under name.
func (r *Registry) LoadImage(ctx context.Context, name, path string) *Task[*Image] {
	return load(ctx, r, KindImage, name, path, decodeImage, func(img *Image) {
		r.images[name] = img
	})
}

// LoadAudio decodes the whole clip at path into memory and stores it under
// name.
func (r *Registry) LoadAudio(ctx context.Context, name, path string) *Task[*Audio] {
	return load(ctx, r, KindAudio, name, path, decodeAudio, func(a *Audio) {
		r.audio[name] = a
	})
}

// LoadVideo opens the video at path, decodes its first frame and stores it
// under name.
func (r *Registry) LoadVideo(ctx context.Context, name, path string) *Task[*Video] {
	return load(ctx, r, KindVideo, name, path, openVideo, func(v *Video) {
		r.videos[name] = v
	})
}

// GetImage returns a loaded image.
func (r *Registry) GetImage(name string) (*Image, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	img, ok := r.images[name]
	return img, ok
}

// GetAudio returns a loaded audio clip.
func (r *Registry) GetAudio(name string) (*Audio, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.audio[name]
	return a, ok
}

// GetVideo returns a loaded video.
func (r *Registry) GetVideo(name string) (*Video, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.videos[name]
	return v, ok
}

// Close releases decoders held by loaded videos.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var errs []error
	for _, v := range r.videos {
		errs = append(errs, v.Close())
	}
	return errors.Join(errs...)
}

// reserve claims name for kind so two concurrent loads cannot both store it.
func (r *Registry) reserve(k key) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reserved[k]; ok {
		return false
	}
	r.reserved[k] = struct{}{}
	return true
}

func (r *Registry) release(k key) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.reserved, k)
}

func load[T any](ctx context.Context, r *Registry, kind Kind, name, path string, decode func(name, path string) (T, error), store func(T)) *Task[T] {
	t := newTask[T](name)
	k := key{kind: kind, name: name}
	fail := func(err error) {
		var zero T
		t.finish(zero, &LoadError{Kind: kind, Name: name, Path: path, Err: err})
	}

	if !r.reserve(k) {
		fail(ErrExists)
		return t
	}

	go func() {
		if err := ctx.Err(); err != nil {
			r.release(k)
			fail(err)
			return
		}

		start := time.Now()
		v, err := decode(name, path)
		if err != nil {
			r.release(k)
			r.log.Debug("asset load failed", "kind", kind, "name", name, "path", path, "error", err)
			fail(err)
			return
		}

		r.mu.Lock()
		store(v)
		r.mu.Unlock()

		r.log.Debug("asset loaded", "kind", kind, "name", name, "path", path, "took", time.Since(start))
		t.finish(v, nil)
	}()
	return t
}
