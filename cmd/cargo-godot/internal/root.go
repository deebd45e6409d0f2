package internal

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/sanpii/cargo-godot/internal/cargo"
	"github.com/sanpii/cargo-godot/internal/command"
	"github.com/sanpii/cargo-godot/internal/config"
	"github.com/sanpii/cargo-godot/internal/proc"
	"github.com/sanpii/cargo-godot/internal/report"
)

// DefaultManifestPath is the manifest used when --manifest-path is not given.
const DefaultManifestPath = "./Cargo.toml"

var noColor bool

var rootCmd = &cobra.Command{
	Use:   "cargo-godot",
	Short: "cargo-godot builds and runs Rust GDExtension crates",
	Long: `cargo-godot compiles a Rust GDExtension crate, writes the extension
descriptor Godot loads it from, and launches the engine on the project
configured in [package.metadata.godot].`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor || os.Getenv("NO_COLOR") != "" {
			report.DisableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetArgs(cargoArgs(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		report.New(os.Stderr).Error(err)
		os.Exit(1)
	}
}

// cargoArgs drops the subcommand name cargo passes when it runs the binary
// as `cargo godot`.
func cargoArgs(args []string) []string {
	if len(args) > 0 && args[0] == "godot" {
		return args[1:]
	}
	return args
}

func addManifestFlag(cmd *cobra.Command, p *string) {
	cmd.Flags().StringVar(p, "manifest-path", DefaultManifestPath, "Path to Cargo.toml")
}

// execute runs c with subprocesses and progress on the console.
func execute(c command.Command) error {
	rep := report.New(os.Stderr)
	exec := proc.New(rep)
	r := &command.Runner{
		Exec:   exec,
		Config: &config.Resolver{Metadata: &cargo.Command{Exec: exec}},
		Report: rep,
		Stdout: os.Stdout,
	}
	return r.Execute(context.Background(), c)
}
