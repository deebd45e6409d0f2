package cargo

import (
	"context"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/sanpii/cargo-godot/internal/proc"
)

// ErrNoRoot is returned when the package graph has no root package.
var ErrNoRoot = errors.New("cargo metadata has no root package")

// MetadataQuery loads the package graph for a manifest.
type MetadataQuery interface {
	Metadata(ctx context.Context, manifestPath string) (*Metadata, error)
}

// Metadata is the output of `cargo metadata --format-version 1`.
type Metadata struct {
	raw gjson.Result
}

// ParseMetadata wraps raw `cargo metadata` JSON output.
func ParseMetadata(data []byte) (*Metadata, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("cargo metadata output is not valid JSON")
	}
	return &Metadata{raw: gjson.ParseBytes(data)}, nil
}

// TargetDirectory returns the workspace artifact directory, if reported.
func (m *Metadata) TargetDirectory() string {
	return m.raw.Get("target_directory").String()
}

// Root returns the package the manifest declares, located by the id the
// resolver designates as root.
func (m *Metadata) Root() (*Package, error) {
	id := m.raw.Get("resolve.root")
	if id.Type != gjson.String {
		return nil, ErrNoRoot
	}
	var found *Package
	m.raw.Get("packages").ForEach(func(_, pkg gjson.Result) bool {
		if pkg.Get("id").String() == id.String() {
			found = &Package{raw: pkg}
			return false
		}
		return true
	})
	if found == nil {
		return nil, fmt.Errorf("%w: %s not in package list", ErrNoRoot, id.String())
	}
	return found, nil
}

// Package is one entry of the metadata package list.
type Package struct {
	raw gjson.Result
}

func (p *Package) Name() string { return p.raw.Get("name").String() }

// Section returns the raw JSON of metadata.<key>. ok is false when the key
// is absent or null.
func (p *Package) Section(key string) (raw string, ok bool) {
	r := p.raw.Get("metadata." + gjson.Escape(key))
	if !r.Exists() || r.Type == gjson.Null {
		return "", false
	}
	return r.Raw, true
}

// CdylibName returns the name of the package's cdylib target, the file stem
// cargo uses for the shared library.
func (p *Package) CdylibName() string {
	var name string
	p.raw.Get("targets").ForEach(func(_, target gjson.Result) bool {
		for _, kind := range target.Get("crate_types").Array() {
			if kind.String() == "cdylib" {
				name = target.Get("name").String()
				return false
			}
		}
		return true
	})
	return name
}

// Command queries metadata by running cargo.
type Command struct {
	Exec proc.Outputter
	// Program defaults to "cargo".
	Program string
}

var _ MetadataQuery = (*Command)(nil)

func (c *Command) Metadata(ctx context.Context, manifestPath string) (*Metadata, error) {
	out, err := c.Exec.Output(ctx, program(c.Program),
		"metadata", "--format-version", "1", "--manifest-path", manifestPath)
	if err != nil {
		return nil, err
	}
	return ParseMetadata(out)
}

func program(name string) string {
	if name == "" {
		return "cargo"
	}
	return name
}
