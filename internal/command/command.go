// Package command sequences configuration, compilation and engine launches
// for each cargo-godot command.
package command

import (
	"context"
	"fmt"

	"github.com/sanpii/cargo-godot/internal/launch"
)

// Command is one of the commands a Runner executes: Build, Create, Debug,
// Editor, Export, Init, Run, Script or Show.
type Command interface {
	command()
}

// Build compiles the crate in debug mode and writes its descriptor.
type Build struct {
	ManifestPath string
}

// Create writes the source file of a new class.
type Create struct {
	// Class is the engine class the new class derives from.
	Class string
	Dir   string
	Name  string
}

// Debug builds the crate and starts the game under the debugger.
type Debug struct {
	ManifestPath string
}

// Editor opens the engine project in the editor.
type Editor struct {
	ManifestPath string
}

// Export builds the crate and exports the game with a preset.
type Export struct {
	ManifestPath string
	Release      bool
	Preset       string
	// Output defaults to build/<name>, relative to the working directory.
	Output string
}

// Init turns a directory into an extension crate with an engine project.
type Init struct {
	Dir string
	// Name defaults to the directory name.
	Name string
}

// Run builds the crate and starts the game.
type Run struct {
	ManifestPath string
	EditorPID    *int
	Overlay      launch.Overlay
	Scene        string
}

// Script runs a GDScript file with the engine.
type Script struct {
	ManifestPath string
	Script       string
}

// Show prints the resolved configuration as JSON.
type Show struct {
	ManifestPath string
}

func (Build) command()  {}
func (Create) command() {}
func (Debug) command()  {}
func (Editor) command() {}
func (Export) command() {}
func (Init) command()   {}
func (Run) command()    {}
func (Script) command() {}
func (Show) command()   {}

// Execute runs c, stopping at the first failing step.
func (r *Runner) Execute(ctx context.Context, c Command) error {
	switch c := c.(type) {
	case Build:
		return r.build(ctx, c)
	case Create:
		return r.create(c)
	case Debug:
		return r.debug(ctx, c)
	case Editor:
		return r.editor(ctx, c)
	case Export:
		return r.export(ctx, c)
	case Init:
		return r.initCrate(ctx, c)
	case Run:
		return r.run(ctx, c)
	case Script:
		return r.script(ctx, c)
	case Show:
		return r.show(ctx, c)
	}
	return fmt.Errorf("unsupported command %T", c)
}
