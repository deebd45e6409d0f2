// Package cargo drives the cargo build tool: package metadata queries, the
// compile step and crate initialisation.
package cargo

import (
	"context"

	"github.com/sanpii/cargo-godot/internal/proc"
)

// BuildMode selects the cargo profile.
type BuildMode int

const (
	Debug BuildMode = iota
	Release
)

// String returns the profile's artifact subdirectory name.
func (m BuildMode) String() string {
	if m == Release {
		return "release"
	}
	return "debug"
}

// ModeOf maps a --release flag to a BuildMode.
func ModeOf(release bool) BuildMode {
	if release {
		return Release
	}
	return Debug
}

// BuildArgs returns the arguments of the compile step.
func BuildArgs(manifestPath string, mode BuildMode) []string {
	args := []string{"build", "--manifest-path", manifestPath}
	if mode == Release {
		args = append(args, "--release")
	}
	return args
}

// Build compiles the crate at manifestPath.
func Build(ctx context.Context, r proc.Runner, manifestPath string, mode BuildMode) error {
	return r.Run(ctx, "cargo", BuildArgs(manifestPath, mode)...)
}

// Init creates a library crate named name in dir.
func Init(ctx context.Context, r proc.Runner, dir, name string) error {
	return r.Run(ctx, "cargo", "init", "--lib", "--name", name, dir)
}
