package asset

// Compression is the texture compression mode.
type Compression string

const (
	CompressionNone       Compression = "none"
	CompressionCompressed Compression = "compressed"
)

// PlatformSettings are per deployment target texture overrides.
type PlatformSettings struct {
	Overridden  bool        `json:"overridden" yaml:"overridden"`
	MaxSize     int         `json:"max_size,omitempty" yaml:"max_size,omitempty"`
	Compression Compression `json:"compression,omitempty" yaml:"compression,omitempty"`
}

// ImportSettings holds the kind-specific import parameters of an asset.
// Image fields are ignored for audio assets and vice versa.
type ImportSettings struct {
	TextureType string                      `json:"texture_type,omitempty" yaml:"texture_type,omitempty"`
	SpriteMode  string                      `json:"sprite_mode,omitempty" yaml:"sprite_mode,omitempty"`
	MaxSize     int                         `json:"max_size,omitempty" yaml:"max_size,omitempty"`
	Compression Compression                 `json:"compression,omitempty" yaml:"compression,omitempty"`
	Quality     int                         `json:"quality,omitempty" yaml:"quality,omitempty"`
	Platforms   map[string]PlatformSettings `json:"platforms,omitempty" yaml:"platforms,omitempty"`

	SampleRateSetting string  `json:"sample_rate_setting,omitempty" yaml:"sample_rate_setting,omitempty"`
	SampleRate        int     `json:"sample_rate,omitempty" yaml:"sample_rate,omitempty"`
	AudioQuality      float64 `json:"audio_quality,omitempty" yaml:"audio_quality,omitempty"`
	Codec             string  `json:"codec,omitempty" yaml:"codec,omitempty"`
}

// Clone returns a deep copy of s.
func (s ImportSettings) Clone() ImportSettings {
	out := s
	if s.Platforms != nil {
		out.Platforms = make(map[string]PlatformSettings, len(s.Platforms))
		for k, v := range s.Platforms {
			out.Platforms[k] = v
		}
	}
	return out
}
