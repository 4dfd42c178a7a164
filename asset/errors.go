package asset

import (
	"errors"
	"fmt"
)

var (
	// ErrExists is returned when a name is loaded twice for the same kind.
	ErrExists = errors.New("asset already loaded")
	// ErrUnsupported is returned for content no decoder accepts.
	ErrUnsupported = errors.New("unsupported asset format")
)

// Kind is the media type of an asset.
type Kind uint8

const (
	KindImage Kind = iota
	KindAudio
	KindVideo
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindAudio:
		return "audio"
	case KindVideo:
		return "video"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// LoadError describes a failed load.
type LoadError struct {
	Kind Kind
	Name string
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s %q from %s: %v", e.Kind, e.Name, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
