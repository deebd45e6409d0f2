package internal

import (
	"github.com/spf13/cobra"

	"github.com/sanpii/cargo-godot/internal/command"
)

var debugManifestPath string

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Run the game under a debugger",
	Long:  `Debug builds the extension and starts the engine under the configured debugger.`,
	Args:  cobra.NoArgs,
	RunE:  runDebug,
}

func init() {
	addManifestFlag(debugCmd, &debugManifestPath)
	rootCmd.AddCommand(debugCmd)
}

func runDebug(cmd *cobra.Command, args []string) error {
	return execute(command.Debug{ManifestPath: debugManifestPath})
}
