package cmd

import (
	"fmt"
	"os"

	"asset-variants/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "asset-variants",
	Short: "Low-resolution asset variant generator",
	Long: `Asset Variants produces low-resolution copies of prefabs, scenes and folders.
Every referenced texture, sprite, audio clip and nested prefab is duplicated
under a prefixed variant tree, downscaled, and relinked.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding with the development config gives readable timestamps.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
