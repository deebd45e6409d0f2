package internal

import (
	"github.com/spf13/cobra"

	"github.com/sanpii/cargo-godot/internal/command"
)

var exportManifestPath string
var exportRelease bool

var exportCmd = &cobra.Command{
	Use:   "export [preset] [path]",
	Short: "Export the game",
	Long: `Export builds the extension and exports the game with an export preset.
The output path defaults to build/<name>.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runExport,
}

func init() {
	addManifestFlag(exportCmd, &exportManifestPath)
	exportCmd.Flags().BoolVar(&exportRelease, "release", false, "Build and export in release mode")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	c := command.Export{
		ManifestPath: exportManifestPath,
		Release:      exportRelease,
		Preset:       args[0],
	}
	if len(args) > 1 {
		c.Output = args[1]
	}
	return execute(c)
}
