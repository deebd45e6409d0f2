package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/sanpii/cargo-godot/internal/cargo"
	"github.com/sanpii/cargo-godot/internal/config"
	"github.com/sanpii/cargo-godot/internal/gdext"
	"github.com/sanpii/cargo-godot/internal/launch"
	"github.com/sanpii/cargo-godot/internal/proc"
	"github.com/sanpii/cargo-godot/internal/report"
	"github.com/sanpii/cargo-godot/internal/scaffold"
)

// EngineProjectDir is the engine project directory Init creates, relative
// to the crate.
const EngineProjectDir = "godot"

// ConfigResolver resolves the configuration of a manifest.
type ConfigResolver interface {
	Resolve(ctx context.Context, manifestPath string) (config.Config, error)
}

// Runner executes commands.
type Runner struct {
	Exec   proc.Runner
	Config ConfigResolver
	Report *report.Reporter
	// Stdout receives command output such as Show's JSON.
	Stdout io.Writer
	// WorkDir anchors relative paths; empty means the current directory.
	WorkDir string
	// LookPath resolves the engine executable given to the debugger;
	// nil means proc.Resolve.
	LookPath func(name string) (string, error)
}

func (r *Runner) report() *report.Reporter {
	if r.Report == nil {
		return report.Discard()
	}
	return r.Report
}

func (r *Runner) stdout() io.Writer {
	if r.Stdout == nil {
		return os.Stdout
	}
	return r.Stdout
}

func (r *Runner) abs(p string) (string, error) {
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	if r.WorkDir != "" {
		return filepath.Join(r.WorkDir, p), nil
	}
	return filepath.Abs(p)
}

func (r *Runner) resolve(ctx context.Context, manifestPath string) (config.Config, error) {
	return r.Config.Resolve(ctx, manifestPath)
}

func (r *Runner) exec(ctx context.Context, inv launch.Invocation) error {
	return r.Exec.Run(ctx, inv.Program, inv.Args...)
}

// compile runs cargo build on the configured manifest.
func (r *Runner) compile(ctx context.Context, cfg config.Config, mode cargo.BuildMode) error {
	return cargo.Build(ctx, r.Exec, cfg.ManifestPath, mode)
}

func (r *Runner) writeDescriptor(cfg config.Config) error {
	d, err := gdext.New(cfg)
	if err != nil {
		return err
	}
	file, err := d.Write(cfg.ManifestDir)
	if err != nil {
		return fmt.Errorf("failed to write descriptor: %w", err)
	}
	r.report().Step("Generated", "%s", file)
	return nil
}

func (r *Runner) build(ctx context.Context, c Build) error {
	cfg, err := r.resolve(ctx, c.ManifestPath)
	if err != nil {
		return err
	}
	if err := r.compile(ctx, cfg, cargo.Debug); err != nil {
		return err
	}
	return r.writeDescriptor(cfg)
}

func (r *Runner) create(c Create) error {
	dir, err := r.abs(c.Dir)
	if err != nil {
		return err
	}
	file, err := scaffold.WriteClass(dir, c.Class, c.Name)
	if errors.Is(err, scaffold.ErrExists) {
		r.report().Warn("%s already exists", file)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create class %s: %w", c.Name, err)
	}
	r.report().Step("Created", "%s", file)
	return nil
}

func (r *Runner) debug(ctx context.Context, c Debug) error {
	cfg, err := r.resolve(ctx, c.ManifestPath)
	if err != nil {
		return err
	}
	if err := r.compile(ctx, cfg, cargo.Debug); err != nil {
		return err
	}
	lookPath := r.LookPath
	if lookPath == nil {
		lookPath = proc.Resolve
	}
	engine, err := lookPath(cfg.GodotExecutable)
	if err != nil {
		return err
	}
	return r.exec(ctx, launch.Debug(cfg, engine))
}

func (r *Runner) editor(ctx context.Context, c Editor) error {
	cfg, err := r.resolve(ctx, c.ManifestPath)
	if err != nil {
		return err
	}
	return r.exec(ctx, launch.Editor(cfg))
}

func (r *Runner) export(ctx context.Context, c Export) error {
	cfg, err := r.resolve(ctx, c.ManifestPath)
	if err != nil {
		return err
	}
	mode := cargo.ModeOf(c.Release)
	if err := r.compile(ctx, cfg, mode); err != nil {
		return err
	}

	output := c.Output
	if output == "" {
		output = filepath.Join("build", cfg.Name)
	}
	if output, err = r.abs(output); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	r.report().Step("Exporting", "%s (%s) to %s", c.Preset, mode, output)
	return r.exec(ctx, launch.Export(cfg, launch.ExportOptions{
		Mode:   mode,
		Preset: c.Preset,
		Output: output,
	}))
}

func (r *Runner) initCrate(ctx context.Context, c Init) error {
	dir, err := r.abs(c.Dir)
	if err != nil {
		return err
	}
	name := c.Name
	if name == "" {
		name = filepath.Base(dir)
	}

	if err := cargo.Init(ctx, r.Exec, dir, name); err != nil {
		return err
	}
	if err := cargo.SetupExtensionCrate(filepath.Join(dir, "Cargo.toml"), EngineProjectDir); err != nil {
		return err
	}
	if _, err := scaffold.WriteLib(dir, name); err != nil {
		return fmt.Errorf("failed to write entry point: %w", err)
	}

	project := filepath.Join(dir, EngineProjectDir)
	if _, err := scaffold.WriteEngineProject(project, name); err != nil {
		return fmt.Errorf("failed to create engine project: %w", err)
	}
	link, err := scaffold.LinkDescriptor(project, filepath.Join(dir, name+gdext.Ext))
	if err != nil {
		return err
	}
	r.report().Step("Linked", "%s", link)
	return nil
}

func (r *Runner) run(ctx context.Context, c Run) error {
	cfg, err := r.resolve(ctx, c.ManifestPath)
	if err != nil {
		return err
	}
	if err := r.compile(ctx, cfg, cargo.Debug); err != nil {
		return err
	}
	if err := r.writeDescriptor(cfg); err != nil {
		return err
	}
	return r.exec(ctx, launch.Run(cfg, launch.RunOptions{
		EditorPID: c.EditorPID,
		Overlay:   c.Overlay,
		Scene:     c.Scene,
	}))
}

func (r *Runner) script(ctx context.Context, c Script) error {
	cfg, err := r.resolve(ctx, c.ManifestPath)
	if err != nil {
		return err
	}
	return r.exec(ctx, launch.Script(cfg, c.Script))
}

func (r *Runner) show(ctx context.Context, c Show) error {
	cfg, err := r.resolve(ctx, c.ManifestPath)
	if err != nil {
		return err
	}
	doc, err := configJSON(cfg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(r.stdout(), doc)
	return err
}

// configJSON renders cfg with the metadata key names. remote_debug is left
// out when unset.
func configJSON(cfg config.Config) (string, error) {
	fields := []struct {
		path  string
		value any
	}{
		{"name", cfg.Name},
		{"project", cfg.Project},
		{"remote_debug", cfg.RemoteDebug},
		{"godot_executable", cfg.GodotExecutable},
		{"debugger", cfg.Debugger},
		{"manifest_path", cfg.ManifestPath},
		{"target_directory", cfg.TargetDir},
		{"lib_name", cfg.LibName},
		{"extension.entry_symbol", cfg.Extension.EntrySymbol},
		{"extension.compatibility_minimum", cfg.Extension.CompatibilityMinimum},
		{"extension.reloadable", cfg.Extension.Reloadable},
	}
	doc := "{}"
	for _, f := range fields {
		if s, ok := f.value.(string); ok && s == "" {
			continue
		}
		var err error
		if doc, err = sjson.Set(doc, f.path, f.value); err != nil {
			return "", err
		}
	}
	return gjson.Get(doc, "@pretty").Raw, nil
}
