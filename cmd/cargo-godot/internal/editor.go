package internal

import (
	"github.com/spf13/cobra"

	"github.com/sanpii/cargo-godot/internal/command"
)

var editorManifestPath string

var editorCmd = &cobra.Command{
	Use:   "editor",
	Short: "Open the project in the Godot editor",
	Args:  cobra.NoArgs,
	RunE:  runEditor,
}

func init() {
	addManifestFlag(editorCmd, &editorManifestPath)
	rootCmd.AddCommand(editorCmd)
}

func runEditor(cmd *cobra.Command, args []string) error {
	return execute(command.Editor{ManifestPath: editorManifestPath})
}
