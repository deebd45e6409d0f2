// Package scaffold renders the source templates of new classes and new
// extension projects.
package scaffold

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"text/template"

	"github.com/stoewer/go-strcase"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// ErrExists is returned instead of overwriting a file.
var ErrExists = fs.ErrExist

// ClassFile returns the path of the source file of class name in dir.
func ClassFile(dir, name string) string {
	return filepath.Join(dir, strcase.SnakeCase(name)+".rs")
}

// WriteClass writes a new Godot class called name, deriving from the engine
// class base, into dir. An existing file is left untouched and ErrExists is
// returned.
func WriteClass(dir, base, name string) (string, error) {
	file := ClassFile(dir, name)
	data := struct{ Class, Name string }{base, name}
	if err := create(file, "class.rs.tmpl", data); err != nil {
		return file, err
	}
	return file, nil
}

// WriteLib replaces dir/src/lib.rs with the extension entry point of crate
// name.
func WriteLib(dir, name string) (string, error) {
	file := filepath.Join(dir, "src", "lib.rs")
	data := struct{ Extension string }{strcase.UpperCamelCase(name) + "Extension"}
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "lib.rs.tmpl", data); err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return "", err
	}
	return file, os.WriteFile(file, buf.Bytes(), 0o644)
}

// WriteEngineProject creates a minimal engine project in dir unless one is
// already there.
func WriteEngineProject(dir, name string) (string, error) {
	file := filepath.Join(dir, "project.godot")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	err := create(file, "project.godot.tmpl", struct{ Name string }{name})
	if err != nil && !errors.Is(err, ErrExists) {
		return "", err
	}
	return file, nil
}

// LinkDescriptor makes the descriptor file visible from the engine project:
// it creates projectDir/<base of descriptor> as a relative symlink. An
// existing link is kept.
func LinkDescriptor(projectDir, descriptor string) (string, error) {
	link := filepath.Join(projectDir, filepath.Base(descriptor))
	target, err := filepath.Rel(projectDir, descriptor)
	if err != nil {
		return "", err
	}
	if _, err := os.Lstat(link); err == nil {
		return link, nil
	}
	if err := os.Symlink(target, link); err != nil {
		return "", fmt.Errorf("failed to link %s: %w", link, err)
	}
	return link, nil
}

// create renders the named template into a new file.
func create(file, name string, data any) error {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	f, err := os.OpenFile(file, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
