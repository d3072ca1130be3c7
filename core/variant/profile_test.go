package variant

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profilesDoc = `{
	// shipped with the mobile build
	"profiles": [
		{"name": "Mobile", "image_scale_factor": 0.5, "audio_sample_rate": 22050},
		{"name": "Web", "image_quality": 30, "audio_quality": 0.3}, // trailing comma is fine
	]
}`

func TestParseProfiles(t *testing.T) {
	profiles, err := ParseProfiles([]byte(profilesDoc))
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, 0.5, profiles["Mobile"].ImageScaleFactor)
	assert.Equal(t, 30, profiles["Web"].ImageQuality)

	_, err = ParseProfiles([]byte(`{"profiles": [{"name": "A"}, {"name": "A"}]}`))
	assert.ErrorContains(t, err, "duplicate")

	_, err = ParseProfiles([]byte(`{"profiles": [{"image_quality": 10}]}`))
	assert.Error(t, err)
}

func TestWithProfile(t *testing.T) {
	cfg := DefaultConfig().WithProfile(Profile{Name: "Mobile", ImageScaleFactor: 0.5})

	assert.Equal(t, "Mobile", cfg.NamePrefix)
	assert.Equal(t, 0.5, cfg.ImageScaleFactor)
	assert.Equal(t, 24000, cfg.AudioSampleRate)
	assert.Equal(t, 50, cfg.ImageQuality)
}

func TestResolveProfile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "profiles.jsonc")
	require.NoError(t, os.WriteFile(file, []byte(profilesDoc), 0o644))

	cfg := DefaultConfig()

	t.Run("NoProfile", func(t *testing.T) {
		out, err := cfg.ResolveProfile("")
		require.NoError(t, err)
		assert.Equal(t, "LowRes", out.NamePrefix)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := cfg.ResolveProfile("Mobile")
		assert.Error(t, err)
	})

	withFile := cfg
	withFile.ProfilesFile = file

	t.Run("Named", func(t *testing.T) {
		out, err := withFile.ResolveProfile("Web")
		require.NoError(t, err)
		assert.Equal(t, "Web", out.NamePrefix)
		assert.Equal(t, 30, out.ImageQuality)
	})

	t.Run("Default", func(t *testing.T) {
		withDefault := withFile
		withDefault.Profile = "Mobile"
		out, err := withDefault.ResolveProfile("")
		require.NoError(t, err)
		assert.Equal(t, 22050, out.AudioSampleRate)

		out.AudioSampleRate = 16000
		again, err := out.ResolveProfile("")
		require.NoError(t, err)
		assert.Equal(t, 16000, again.AudioSampleRate)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := withFile.ResolveProfile("Console")
		assert.ErrorContains(t, err, "unknown profile")
	})
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.NamePrefix = "a/b"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.ImageScaleFactor = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.ImageQuality = 101
	assert.Error(t, cfg.Validate())
}
