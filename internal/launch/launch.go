// Package launch builds the command lines used to start the Godot engine.
//
// Every builder starts from the same "--path <project>" prefix and only ever
// appends. Positional arguments always come after every flag.
package launch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sanpii/cargo-godot/internal/cargo"
	"github.com/sanpii/cargo-godot/internal/config"
)

// Invocation is a program and its ordered arguments.
type Invocation struct {
	Program string
	Args    []string
}

// Overlay is a set of debug overlays drawn by the running game.
type Overlay uint8

const (
	Collisions Overlay = 1 << iota
	Navigation

	AllOverlays = Collisions | Navigation
)

var overlayFlags = []struct {
	overlay Overlay
	name    string
	flag    string
}{
	{Collisions, "collisions", "--debug-collisions"},
	{Navigation, "navigation", "--debug-navigation"},
}

// ParseOverlay parses overlay names such as "collisions" or "navigation".
// Repeated names are accepted.
func ParseOverlay(names ...string) (Overlay, error) {
	var o Overlay
	for _, name := range names {
		found := false
		for _, f := range overlayFlags {
			if strings.EqualFold(strings.TrimSpace(name), f.name) {
				o |= f.overlay
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown debug overlay %q (want collisions or navigation)", name)
		}
	}
	return o, nil
}

// Flags returns the engine flags of the set, collisions first.
func (o Overlay) Flags() []string {
	var flags []string
	for _, f := range overlayFlags {
		if o&f.overlay != 0 {
			flags = append(flags, f.flag)
		}
	}
	return flags
}

// RunOptions are the options of a game run.
type RunOptions struct {
	// EditorPID is the PID of the editor that launched the game, if any.
	EditorPID *int
	Overlay   Overlay
	// Scene replaces the project's main scene when set.
	Scene string
}

// ExportOptions are the options of an export.
type ExportOptions struct {
	Mode   cargo.BuildMode
	Preset string
	// Output is the absolute path of the exported file.
	Output string
}

func base(cfg config.Config) []string {
	return []string{"--path", cfg.Project}
}

func withRemoteDebug(cfg config.Config, args []string) []string {
	if cfg.RemoteDebug == "" {
		return args
	}
	return append(args, "--remote-debug", cfg.RemoteDebug)
}

// Engine returns the common engine arguments: the project path and the
// remote debugger address.
func Engine(cfg config.Config) []string {
	return withRemoteDebug(cfg, base(cfg))
}

// Editor opens the project in the editor. It never carries debug or export
// flags.
func Editor(cfg config.Config) Invocation {
	return Invocation{
		Program: cfg.GodotExecutable,
		Args:    []string{"--editor", "--path", cfg.Project},
	}
}

// Run starts the game.
func Run(cfg config.Config, opts RunOptions) Invocation {
	args := Engine(cfg)
	if opts.EditorPID != nil {
		args = append(args, "--editor-pid", strconv.Itoa(*opts.EditorPID))
	}
	args = append(args, opts.Overlay.Flags()...)
	if opts.Scene != "" {
		args = append(args, opts.Scene)
	}
	return Invocation{Program: cfg.GodotExecutable, Args: args}
}

// Export exports the project with a preset.
func Export(cfg config.Config, opts ExportOptions) Invocation {
	args := Engine(cfg)
	if opts.Mode == cargo.Release {
		args = append(args, "--export-release")
	} else {
		args = append(args, "--export-debug")
	}
	args = append(args, opts.Preset, opts.Output)
	return Invocation{Program: cfg.GodotExecutable, Args: args}
}

// Script runs a GDScript file with the engine.
func Script(cfg config.Config, script string) Invocation {
	args := append(Engine(cfg), "--script", script)
	return Invocation{Program: cfg.GodotExecutable, Args: args}
}

// Debug starts the game under the configured debugger. engine is the
// resolved engine executable handed to the debugger.
func Debug(cfg config.Config, engine string) Invocation {
	args := append([]string{engine, "--"}, Engine(cfg)...)
	return Invocation{Program: cfg.Debugger, Args: args}
}
