package cargo

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// GodotDependency is the gdext dependency added to new crates.
var GodotDependency = map[string]any{
	"git":    "https://github.com/godot-rust/gdext",
	"branch": "master",
}

// SetupExtensionCrate rewrites the Cargo.toml at manifestPath so the crate
// builds a GDExtension: a cdylib library depending on gdext, with
// [package.metadata.godot] pointing at project.
//
// Existing keys are preserved; comments and key order are not.
func SetupExtensionCrate(manifestPath, project string) error {
	doc := map[string]any{}
	if _, err := toml.DecodeFile(manifestPath, &doc); err != nil {
		return fmt.Errorf("failed to parse %s: %w", manifestPath, err)
	}

	lib := table(doc, "lib")
	lib["crate-type"] = []string{"cdylib"}

	deps := table(doc, "dependencies")
	if _, ok := deps["godot"]; !ok {
		deps["godot"] = GodotDependency
	}

	godot := table(table(table(doc, "package"), "metadata"), "godot")
	godot["project"] = project

	f, err := os.Create(manifestPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(doc); err != nil {
		return fmt.Errorf("failed to write %s: %w", manifestPath, err)
	}
	return f.Close()
}

// table returns doc[key] as a table, creating it when missing.
func table(doc map[string]any, key string) map[string]any {
	if t, ok := doc[key].(map[string]any); ok {
		return t
	}
	t := map[string]any{}
	doc[key] = t
	return t
}
