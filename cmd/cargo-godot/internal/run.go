package internal

import (
	"github.com/spf13/cobra"

	"github.com/sanpii/cargo-godot/internal/command"
	"github.com/sanpii/cargo-godot/internal/launch"
)

// runFlags holds the flags of the run command.
type runFlags struct {
	manifestPath string
	editorPID    int
	overlays     []string
}

var runOpts runFlags

var runCmd = &cobra.Command{
	Use:     "run [scene]",
	Aliases: []string{"r"},
	Short:   "Build the extension and run the game",
	Long: `Run builds the extension, refreshes its descriptor and starts the game,
optionally on a given scene. --debug alone enables every overlay.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runOpts.register(runCmd)
	rootCmd.AddCommand(runCmd)
}

func (f *runFlags) register(cmd *cobra.Command) {
	addManifestFlag(cmd, &f.manifestPath)
	cmd.Flags().IntVar(&f.editorPID, "editor-pid", 0, "Process id of the editor the game reports to")
	cmd.Flags().StringSliceVar(&f.overlays, "debug", nil, "Debug overlays to show: collisions, navigation")
	cmd.Flags().Lookup("debug").NoOptDefVal = "collisions,navigation"
}

func (f *runFlags) command(cmd *cobra.Command, args []string) (command.Run, error) {
	overlay, err := launch.ParseOverlay(f.overlays...)
	if err != nil {
		return command.Run{}, err
	}
	c := command.Run{
		ManifestPath: f.manifestPath,
		Overlay:      overlay,
	}
	if cmd.Flags().Changed("editor-pid") {
		pid := f.editorPID
		c.EditorPID = &pid
	}
	if len(args) > 0 {
		c.Scene = args[0]
	}
	return c, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	c, err := runOpts.command(cmd, args)
	if err != nil {
		return err
	}
	return execute(c)
}
