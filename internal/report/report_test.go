package report

import (
	"bytes"
	"errors"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	DisableColor()
	os.Exit(m.Run())
}

func TestStep(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Step("Generated", "%s.gdextension", "shooter")

	if got, want := buf.String(), "   Generated shooter.gdextension\n"; got != want {
		t.Errorf("Step = %q, want %q", got, want)
	}
}

func TestCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"godot", nil, "     Running godot\n"},
		{"cargo", []string{"build", "--manifest-path", "Cargo.toml"}, "     Running cargo build --manifest-path Cargo.toml\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		New(&buf).Command(tt.name, tt.args)
		if got := buf.String(); got != tt.want {
			t.Errorf("Command(%s, %q) = %q, want %q", tt.name, tt.args, got, tt.want)
		}
	}
}

func TestWarnAndError(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	r.Warn("%s already exists", "src/player.rs")
	r.Error(errors.New("cargo exited with status 101"))

	want := "warning: src/player.rs already exists\nerror: cargo exited with status 101\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestDiscard(t *testing.T) {
	Discard().Step("Running", "ignored")
}
