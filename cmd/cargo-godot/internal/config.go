package internal

import (
	"github.com/spf13/cobra"

	"github.com/sanpii/cargo-godot/internal/command"
)

var configManifestPath string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration",
	Long:  `Config prints the [package.metadata.godot] configuration with defaults applied, as JSON.`,
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	addManifestFlag(configCmd, &configManifestPath)
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	return execute(command.Show{ManifestPath: configManifestPath})
}
