package internal

import (
	"github.com/spf13/cobra"

	"github.com/sanpii/cargo-godot/internal/command"
)

var initName string

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Initialize a new extension crate",
	Long: `Init runs cargo init, configures the crate as a GDExtension library and
creates an engine project in godot/ linked to the extension descriptor.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initName, "name", "", "Package name (defaults to the directory name)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	return execute(command.Init{Dir: dir, Name: initName})
}
