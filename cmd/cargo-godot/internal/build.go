package internal

import (
	"github.com/spf13/cobra"

	"github.com/sanpii/cargo-godot/internal/command"
)

var buildManifestPath string

var buildCmd = &cobra.Command{
	Use:     "build",
	Aliases: []string{"b"},
	Short:   "Build the extension",
	Long:    `Build compiles the crate in debug mode and writes its .gdextension descriptor.`,
	Args:    cobra.NoArgs,
	RunE:    runBuild,
}

func init() {
	addManifestFlag(buildCmd, &buildManifestPath)
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	return execute(command.Build{ManifestPath: buildManifestPath})
}
