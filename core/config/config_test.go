package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "assets", cfg.Storage.Bucket)
	assert.False(t, cfg.Storage.CreateBucket)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "variants", cfg.Database.Name)
	assert.Equal(t, "LowRes", cfg.Variant.NamePrefix)
	assert.Equal(t, "Assets", cfg.Variant.RootDir)
	assert.Equal(t, 1.0, cfg.Variant.ImageScaleFactor)
	assert.Equal(t, 24000, cfg.Variant.AudioSampleRate)
	assert.True(t, cfg.Variant.ProcessData)
	assert.Contains(t, cfg.Variant.Platforms, "Android")
	assert.Len(t, cfg.Variant.BuiltinPaths, 2)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("VARIANT_NAME_PREFIX", "Mobile")
	t.Setenv("VARIANT_IMAGE_SCALE_FACTOR", "0.5")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORAGE_CREATE_BUCKET", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "Mobile", cfg.Variant.NamePrefix)
	assert.Equal(t, 0.5, cfg.Variant.ImageScaleFactor)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.Storage.CreateBucket)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("VARIANT_AUDIO_SAMPLE_RATE=16000\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("VARIANT_AUDIO_SAMPLE_RATE") })

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 16000, cfg.Variant.AudioSampleRate)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("VARIANT_NAME_PREFIX", "Low/Res")

	_, err := LoadConfig(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid variant configuration")
}
