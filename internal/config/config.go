// Package config resolves the [package.metadata.godot] section of a crate
// manifest into the values every command needs.
package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/mod/semver"

	"github.com/sanpii/cargo-godot/internal/cargo"
)

// Section is the key of the configuration table under package.metadata.
const Section = "godot"

const (
	DefaultGodotExecutable      = "godot"
	DefaultDebugger             = "lldb"
	DefaultEntrySymbol          = "gdext_rust_init"
	DefaultCompatibilityMinimum = "4.1"
)

var (
	ErrManifestUnreadable  = errors.New("unable to read cargo manifest")
	ErrMissingMetadata     = errors.New("missing package.metadata.godot configuration in Cargo.toml")
	ErrMalformedMetadata   = errors.New("invalid package.metadata.godot configuration")
	ErrPathResolution      = errors.New("unable to resolve godot project path")
	ErrRootPackageNotFound = errors.New("root package not found in cargo metadata")
)

// Config is the resolved project configuration.
type Config struct {
	// Name of the extension; the package name unless overridden.
	Name string
	// Project is the absolute, symlink free engine project directory.
	Project string
	// RemoteDebug is the remote debugger address; empty when not configured.
	RemoteDebug string
	// GodotExecutable is the engine binary, a path or a name looked up in PATH.
	GodotExecutable string
	Debugger        string

	ManifestPath string
	ManifestDir  string
	// TargetDir is the cargo artifact directory.
	TargetDir string
	// LibName is the file stem of the compiled shared library.
	LibName string

	Extension Extension
}

// Extension holds the [configuration] values of the descriptor file.
type Extension struct {
	EntrySymbol          string
	CompatibilityMinimum string
	Reloadable           bool
}

// metadata mirrors the TOML table. Pointers tell absent keys from empty ones.
// compatibility_minimum may be a string or a TOML float such as 4.1.
type metadata struct {
	Name                 *string `json:"name"`
	Project              *string `json:"project"`
	RemoteDebug          *string `json:"remote_debug"`
	GodotExecutable      *string `json:"godot_executable"`
	Debugger             *string `json:"debugger"`
	EntrySymbol          *string `json:"entry_symbol"`
	CompatibilityMinimum any     `json:"compatibility_minimum"`
	Reloadable           *bool   `json:"reloadable"`
}

// Resolver builds a Config from cargo metadata.
type Resolver struct {
	Metadata cargo.MetadataQuery
}

// Resolve reads the configuration of the crate at manifestPath.
func (r *Resolver) Resolve(ctx context.Context, manifestPath string) (Config, error) {
	manifestPath, err := filepath.Abs(manifestPath)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrManifestUnreadable, err)
	}
	if _, err := os.Stat(manifestPath); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrManifestUnreadable, err)
	}
	if manifestPath, err = filepath.EvalSymlinks(manifestPath); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrManifestUnreadable, err)
	}

	md, err := r.Metadata.Metadata(ctx, manifestPath)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrManifestUnreadable, err)
	}
	pkg, err := md.Root()
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrRootPackageNotFound, err)
	}

	raw, ok := pkg.Section(Section)
	if !ok {
		return Config{}, ErrMissingMetadata
	}
	var m metadata
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&m); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrMalformedMetadata, err)
	}
	compatibility, err := versionString(m.CompatibilityMinimum)
	if err != nil {
		return Config{}, err
	}

	manifestDir := filepath.Dir(manifestPath)
	cfg := Config{
		Name:            orDefault(m.Name, pkg.Name()),
		RemoteDebug:     orDefault(m.RemoteDebug, ""),
		GodotExecutable: orDefault(m.GodotExecutable, DefaultGodotExecutable),
		Debugger:        orDefault(m.Debugger, DefaultDebugger),
		ManifestPath:    manifestPath,
		ManifestDir:     manifestDir,
		TargetDir:       md.TargetDirectory(),
		LibName:         pkg.CdylibName(),
		Extension: Extension{
			EntrySymbol:          orDefault(m.EntrySymbol, DefaultEntrySymbol),
			CompatibilityMinimum: orDefault(&compatibility, DefaultCompatibilityMinimum),
			Reloadable:           m.Reloadable == nil || *m.Reloadable,
		},
	}
	if cfg.TargetDir == "" {
		cfg.TargetDir = filepath.Join(manifestDir, "target")
	}
	if cfg.LibName == "" {
		cfg.LibName = strings.ReplaceAll(cfg.Name, "-", "_")
	}
	if !validCompatibility(cfg.Extension.CompatibilityMinimum) {
		return Config{}, fmt.Errorf("%w: compatibility_minimum %q is not a MAJOR.MINOR[.PATCH] version",
			ErrMalformedMetadata, cfg.Extension.CompatibilityMinimum)
	}

	declared := ""
	if m.Project != nil {
		declared = *m.Project
	} else {
		declared, err = discoverProject(manifestDir, cfg.TargetDir)
		if err != nil {
			return Config{}, err
		}
	}
	cfg.Project, err = resolveProject(manifestDir, declared)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// orDefault returns *v, or def when v is nil or empty.
func orDefault(v *string, def string) string {
	if v == nil || *v == "" {
		return def
	}
	return *v
}

func versionString(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	}
	return "", fmt.Errorf("%w: compatibility_minimum must be a string or a number", ErrMalformedMetadata)
}

// validCompatibility accepts MAJOR.MINOR and MAJOR.MINOR.PATCH.
func validCompatibility(v string) bool {
	sv := "v" + v
	return semver.IsValid(sv) &&
		semver.Prerelease(sv) == "" &&
		semver.Build(sv) == "" &&
		strings.Contains(v, ".")
}

func resolveProject(manifestDir, declared string) (string, error) {
	p := declared
	if !filepath.IsAbs(p) {
		p = filepath.Join(manifestDir, p)
	}
	p, err := filepath.EvalSymlinks(p)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPathResolution, err)
	}
	p, err = filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPathResolution, err)
	}
	fi, err := os.Stat(p)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPathResolution, err)
	}
	if !fi.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrPathResolution, p)
	}
	return p, nil
}

// discoverProject finds the single directory below manifestDir holding a
// project.godot file. The artifact directory and hidden directories are not
// entered.
func discoverProject(manifestDir, targetDir string) (string, error) {
	skip, err := filepath.Rel(manifestDir, targetDir)
	if err != nil {
		skip = ""
	}
	var found []string
	err = doublestar.GlobWalk(os.DirFS(manifestDir), "**", func(p string, d fs.DirEntry) error {
		if d.IsDir() {
			if p != "." && (strings.HasPrefix(d.Name(), ".") || filepath.FromSlash(p) == skip) {
				return doublestar.SkipDir
			}
			return nil
		}
		if d.Name() == "project.godot" {
			found = append(found, filepath.Join(manifestDir, filepath.Dir(filepath.FromSlash(p))))
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPathResolution, err)
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("%w: project is not set and no project.godot was found", ErrMalformedMetadata)
	case 1:
		return found[0], nil
	}
	return "", fmt.Errorf("%w: project is not set and several project.godot files were found: %s",
		ErrMalformedMetadata, strings.Join(found, ", "))
}
