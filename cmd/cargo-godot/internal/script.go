package internal

import (
	"github.com/spf13/cobra"

	"github.com/sanpii/cargo-godot/internal/command"
)

var scriptManifestPath string

var scriptCmd = &cobra.Command{
	Use:   "script [script]",
	Short: "Run a GDScript file",
	Args:  cobra.ExactArgs(1),
	RunE:  runScript,
}

func init() {
	addManifestFlag(scriptCmd, &scriptManifestPath)
	rootCmd.AddCommand(scriptCmd)
}

func runScript(cmd *cobra.Command, args []string) error {
	return execute(command.Script{ManifestPath: scriptManifestPath, Script: args[0]})
}
