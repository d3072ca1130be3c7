package asset

import "errors"

var (
	// ErrNotFound is returned by stores when no asset exists at a path.
	ErrNotFound = errors.New("asset not found")
	// ErrWrongKind is returned when an operation receives an asset of an unexpected kind.
	ErrWrongKind = errors.New("unexpected asset kind")
)

// DefaultBuiltinPaths are the engine-owned resource locations that must never be duplicated.
var DefaultBuiltinPaths = []string{
	"Resources/unity_builtin_extra",
	"Library/unity default resources",
}

// Asset is the resolved identity of a store entry.
type Asset struct {
	// Path is the store-relative location and the identity of the asset.
	Path string `json:"path" yaml:"path"`
	// Kind is the asset discriminant.
	Kind Kind `json:"kind" yaml:"kind"`
	// Width and Height are the source pixel dimensions of image assets.
	Width  int `json:"width,omitempty" yaml:"width,omitempty"`
	Height int `json:"height,omitempty" yaml:"height,omitempty"`
	// SampleRate is the source sample rate of audio assets.
	SampleRate int `json:"sample_rate,omitempty" yaml:"sample_rate,omitempty"`
	// Builtin marks engine-owned resources that are never transformed.
	Builtin bool `json:"builtin,omitempty" yaml:"-"`
}

// MaxDimension returns the larger of the image dimensions.
func (a Asset) MaxDimension() int {
	if a.Width > a.Height {
		return a.Width
	}
	return a.Height
}

// IsBuiltinPath reports whether p is one of the given builtin locations.
func IsBuiltinPath(p string, builtin []string) bool {
	for _, b := range builtin {
		if p == b {
			return true
		}
	}
	return false
}
