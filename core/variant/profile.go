package variant

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// Profile is a named quality setting. Zero fields keep the base configuration.
type Profile struct {
	Name             string  `json:"name"`
	ImageScaleFactor float64 `json:"image_scale_factor"`
	ImageQuality     int     `json:"image_quality"`
	AudioSampleRate  int     `json:"audio_sample_rate"`
	AudioQuality     float64 `json:"audio_quality"`
}

type profileFile struct {
	Profiles []Profile `json:"profiles"`
}

// ParseProfiles decodes a JSONC profile document.
func ParseProfiles(data []byte) (map[string]Profile, error) {
	var file profileFile
	if err := json.Unmarshal(jsonc.ToJSON(data), &file); err != nil {
		return nil, fmt.Errorf("failed to parse profiles: %w", err)
	}

	profiles := make(map[string]Profile, len(file.Profiles))
	for _, p := range file.Profiles {
		if p.Name == "" {
			return nil, fmt.Errorf("profile without name")
		}
		if _, dup := profiles[p.Name]; dup {
			return nil, fmt.Errorf("duplicate profile %q", p.Name)
		}
		profiles[p.Name] = p
	}
	return profiles, nil
}

// LoadProfiles reads a JSONC profile file from disk.
func LoadProfiles(path string) (map[string]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles %s: %w", path, err)
	}
	return ParseProfiles(data)
}

// WithProfile returns a copy of c with the profile applied.
// The profile name becomes the name prefix. The result no longer selects a
// profile, so resolving it again is a no-op.
func (c Config) WithProfile(p Profile) Config {
	c.NamePrefix = p.Name
	c.Profile = ""
	if p.ImageScaleFactor > 0 {
		c.ImageScaleFactor = p.ImageScaleFactor
	}
	if p.ImageQuality > 0 {
		c.ImageQuality = p.ImageQuality
	}
	if p.AudioSampleRate > 0 {
		c.AudioSampleRate = p.AudioSampleRate
	}
	if p.AudioQuality > 0 {
		c.AudioQuality = p.AudioQuality
	}
	return c
}

// ResolveProfile applies the named profile from c.ProfilesFile, if any.
// An empty name falls back to c.Profile.
func (c Config) ResolveProfile(name string) (Config, error) {
	if name == "" {
		name = c.Profile
	}
	if name == "" {
		return c, nil
	}
	if c.ProfilesFile == "" {
		return c, fmt.Errorf("profile %q requested but no profiles file configured", name)
	}
	profiles, err := LoadProfiles(c.ProfilesFile)
	if err != nil {
		return c, err
	}
	p, ok := profiles[name]
	if !ok {
		return c, fmt.Errorf("unknown profile %q", name)
	}
	return c.WithProfile(p), nil
}
