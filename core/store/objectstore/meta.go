package objectstore

import (
	"strings"

	"asset-variants/core/asset"
)

const (
	metaSuffix     = ".meta"
	importedPrefix = "Library/imported/"
)

// meta is the sidecar document stored next to every asset.
type meta struct {
	Kind       asset.Kind           `yaml:"kind"`
	Width      int                  `yaml:"width,omitempty"`
	Height     int                  `yaml:"height,omitempty"`
	SampleRate int                  `yaml:"sample_rate,omitempty"`
	Imported   string               `yaml:"imported,omitempty"`
	Import     asset.ImportSettings `yaml:"import"`
}

func (m *meta) clone() *meta {
	out := *m
	out.Import = m.Import.Clone()
	out.Imported = ""
	return &out
}

func (m *meta) asset(p string) asset.Asset {
	return asset.Asset{
		Path:       p,
		Kind:       m.Kind,
		Width:      m.Width,
		Height:     m.Height,
		SampleRate: m.SampleRate,
	}
}

// SidecarKey returns the object key of the sidecar describing p.
func SidecarKey(p string) string {
	return p + metaSuffix
}

func importedKey(p, ext string) string {
	return importedPrefix + p + ext
}

// IsInternal reports whether key is a sidecar or imported artifact rather than an asset.
func IsInternal(key string) bool {
	return strings.HasSuffix(key, metaSuffix) || strings.HasPrefix(key, importedPrefix)
}
