package cmd

import (
	"testing"

	"asset-variants/core/variant"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagCommand() *cobra.Command {
	c := &cobra.Command{Use: "test"}
	c.Flags().StringVar(&genPrefix, "prefix", "", "")
	c.Flags().Float64Var(&genScale, "scale", 0, "")
	c.Flags().IntVar(&genSampleRate, "sample-rate", 0, "")
	return c
}

func TestApplyGenerateFlags(t *testing.T) {
	t.Run("Unset", func(t *testing.T) {
		out := applyGenerateFlags(newFlagCommand(), variant.DefaultConfig())
		assert.Equal(t, variant.DefaultConfig().NamePrefix, out.NamePrefix)
		assert.Equal(t, 1.0, out.ImageScaleFactor)
		assert.Equal(t, 24000, out.AudioSampleRate)
	})

	t.Run("Overrides", func(t *testing.T) {
		c := newFlagCommand()
		require.NoError(t, c.Flags().Set("prefix", "Mobile"))
		require.NoError(t, c.Flags().Set("scale", "0.25"))
		require.NoError(t, c.Flags().Set("sample-rate", "22050"))

		out := applyGenerateFlags(c, variant.DefaultConfig())
		assert.Equal(t, "Mobile", out.NamePrefix)
		assert.Equal(t, 0.25, out.ImageScaleFactor)
		assert.Equal(t, 22050, out.AudioSampleRate)
	})

	t.Run("PartialKeepsConfig", func(t *testing.T) {
		c := newFlagCommand()
		require.NoError(t, c.Flags().Set("scale", "0.5"))

		base := variant.DefaultConfig()
		base.NamePrefix = "Tiny"
		out := applyGenerateFlags(c, base)
		assert.Equal(t, "Tiny", out.NamePrefix)
		assert.Equal(t, 0.5, out.ImageScaleFactor)
	})
}

func TestCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range RootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"generate", "reconcile", "integrity", "start"} {
		assert.True(t, names[want], "missing command %s", want)
	}

	sub, _, err := RootCmd.Find([]string{"generate", "scene"})
	require.NoError(t, err)
	assert.Equal(t, "scene", sub.Name())
	assert.NotNil(t, sub.InheritedFlags().Lookup("profile"), "persistent flags are inherited")
}
