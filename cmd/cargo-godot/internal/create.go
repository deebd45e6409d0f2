package internal

import (
	"github.com/spf13/cobra"

	"github.com/sanpii/cargo-godot/internal/command"
)

var createClass string
var createDir string

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new class",
	Long:  `Create writes the Rust source file of a new Godot class. An existing file is kept.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createClass, "class", "Node", "Engine class the new class derives from")
	createCmd.Flags().StringVar(&createDir, "dir", "./src/", "Directory of the new source file")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	return execute(command.Create{
		Class: createClass,
		Dir:   createDir,
		Name:  args[0],
	})
}
