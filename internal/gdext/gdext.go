// Package gdext writes the .gdextension descriptor that tells Godot where to
// find the compiled extension library.
package gdext

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"text/template"

	"github.com/sanpii/cargo-godot/internal/cargo"
	"github.com/sanpii/cargo-godot/internal/config"
)

// Ext is the descriptor file extension.
const Ext = ".gdextension"

// Library is one row of the [libraries] table.
type Library struct {
	// Key is "<platform>.<mode>[.<arch>]".
	Key  string
	Path string
}

// Descriptor is the content of a .gdextension file.
type Descriptor struct {
	Name      string
	Config    config.Extension
	Libraries []Library
}

type platform struct {
	os     string
	arch   string
	prefix string
	suffix string
}

var platforms = []platform{
	{"linux", "x86_64", "lib", ".so"},
	{"windows", "x86_64", "", ".dll"},
	{"macos", "", "lib", ".dylib"},
	{"macos", "arm64", "lib", ".dylib"},
}

var modes = []cargo.BuildMode{cargo.Debug, cargo.Release}

// New computes the descriptor for cfg. Library paths are relative to the
// engine project, under res://.
func New(cfg config.Config) (*Descriptor, error) {
	rel, err := filepath.Rel(cfg.Project, cfg.TargetDir)
	if err != nil {
		return nil, fmt.Errorf("failed to locate %s from %s: %w", cfg.TargetDir, cfg.Project, err)
	}
	return &Descriptor{
		Name:      cfg.Name,
		Config:    cfg.Extension,
		Libraries: Libraries(filepath.ToSlash(rel), cfg.LibName),
	}, nil
}

// Libraries returns the library table for the artifact directory rel
// (slash separated, relative to the project) and library name lib.
func Libraries(rel, lib string) []Library {
	libs := make([]Library, 0, len(platforms)*len(modes))
	for _, p := range platforms {
		for _, m := range modes {
			key := p.os + "." + m.String()
			if p.arch != "" {
				key += "." + p.arch
			}
			file := p.prefix + lib + p.suffix
			libs = append(libs, Library{
				Key:  key,
				Path: "res://" + path.Join(rel, m.String(), file),
			})
		}
	}
	return libs
}

var descriptorTmpl = template.Must(template.New("gdextension").Parse(`[configuration]
entry_symbol = "{{.Config.EntrySymbol}}"
compatibility_minimum = {{.Config.CompatibilityMinimum}}
reloadable = {{.Config.Reloadable}}

[libraries]
{{range .Libraries}}{{printf "%-24s" (print .Key " =")}} "{{.Path}}"
{{end}}`))

// WriteTo renders the descriptor.
func (d *Descriptor) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	if err := descriptorTmpl.Execute(&buf, d); err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}

// Filename is the descriptor file name, "<name>.gdextension".
func (d *Descriptor) Filename() string {
	return d.Name + Ext
}

// Write replaces dir/<name>.gdextension and returns its path.
func (d *Descriptor) Write(dir string) (string, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return "", err
	}
	file := filepath.Join(dir, d.Filename())
	if err := os.WriteFile(file, buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	return file, nil
}
