package variant

import (
	"fmt"
	"strings"

	"asset-variants/core/asset"
)

// Config holds the quality configuration for variant generation.
type Config struct {
	// NamePrefix names the variant folder and prefixes every generated file.
	NamePrefix string `mapstructure:"name_prefix" default:"LowRes"`
	// RootDir is the top-level asset directory variants are mirrored under.
	RootDir string `mapstructure:"root_dir" default:"Assets"`
	// ImageScaleFactor scales the largest image dimension before rounding to a power of two.
	ImageScaleFactor float64 `mapstructure:"image_scale_factor" default:"1.0"`
	// ImageQuality is the lossy compression quality (1-100) applied to images.
	ImageQuality int `mapstructure:"image_quality" default:"50"`
	// AudioSampleRate is the forced sample rate of audio variants.
	AudioSampleRate int `mapstructure:"audio_sample_rate" default:"24000"`
	// AudioQuality is the codec quality (0-1) of audio variants.
	AudioQuality float64 `mapstructure:"audio_quality" default:"0.5"`
	// AudioCodec is the compression format of audio variants.
	AudioCodec string `mapstructure:"audio_codec" default:"vorbis"`
	// Platforms lists the deployment targets whose overridden texture settings are rewritten.
	Platforms []string `mapstructure:"platforms" default:"Android,iOS,StandaloneWindows64,StandaloneOSX,WebGL"`
	// ProcessData enables variants of standalone data assets.
	ProcessData bool `mapstructure:"process_data" default:"true"`
	// BuiltinPaths are engine-owned resources that are never transformed.
	BuiltinPaths []string `mapstructure:"builtin_paths" default:"Resources/unity_builtin_extra,Library/unity default resources"`
	// ProfilesFile is an optional JSONC file of named quality profiles.
	ProfilesFile string `mapstructure:"profiles_file" default:""`
	// Profile selects a profile from ProfilesFile.
	Profile string `mapstructure:"profile" default:""`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		NamePrefix:       "LowRes",
		RootDir:          "Assets",
		ImageScaleFactor: 1.0,
		ImageQuality:     50,
		AudioSampleRate:  24000,
		AudioQuality:     0.5,
		AudioCodec:       "vorbis",
		Platforms:        []string{"Android", "iOS", "StandaloneWindows64", "StandaloneOSX", "WebGL"},
		ProcessData:      true,
		BuiltinPaths:     asset.DefaultBuiltinPaths,
	}
}

// Validate checks that the configuration can drive the engine.
func (c Config) Validate() error {
	if strings.TrimSpace(c.NamePrefix) == "" {
		return fmt.Errorf("name prefix must not be empty")
	}
	if strings.ContainsAny(c.NamePrefix, "/\\") {
		return fmt.Errorf("name prefix %q must not contain path separators", c.NamePrefix)
	}
	if c.ImageScaleFactor <= 0 {
		return fmt.Errorf("image scale factor must be positive, got %v", c.ImageScaleFactor)
	}
	if c.AudioSampleRate <= 0 {
		return fmt.Errorf("audio sample rate must be positive, got %d", c.AudioSampleRate)
	}
	if c.ImageQuality < 1 || c.ImageQuality > 100 {
		return fmt.Errorf("image quality must be within 1-100, got %d", c.ImageQuality)
	}
	if c.AudioQuality < 0 || c.AudioQuality > 1 {
		return fmt.Errorf("audio quality must be within 0-1, got %v", c.AudioQuality)
	}
	return nil
}
