// Package report prints progress, warnings and errors to the console.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gookit/color"
)

// Reporter writes colored status lines to an output stream.
type Reporter struct {
	w io.Writer
}

// New returns a Reporter writing to w. A nil w means os.Stderr.
func New(w io.Writer) *Reporter {
	if w == nil {
		w = os.Stderr
	}
	return &Reporter{w: w}
}

// Discard returns a Reporter that prints nothing.
func Discard() *Reporter {
	return &Reporter{w: io.Discard}
}

// DisableColor turns color rendering off process wide.
func DisableColor() {
	color.Disable()
}

// Command announces a subprocess about to be spawned.
func (r *Reporter) Command(name string, args []string) {
	line := name
	if len(args) > 0 {
		line += " " + strings.Join(args, " ")
	}
	r.Step("Running", "<grey>%s</>", line)
}

// Step prints a right aligned verb followed by a message, cargo style.
func (r *Reporter) Step(verb, format string, a ...any) {
	color.Fprintf(r.w, "<green>%12s</> %s\n", verb, fmt.Sprintf(format, a...))
}

func (r *Reporter) Warn(format string, a ...any) {
	color.Fprintf(r.w, "<yellow>warning:</> %s\n", fmt.Sprintf(format, a...))
}

func (r *Reporter) Error(err error) {
	color.Fprintf(r.w, "<red>error:</> %s\n", err)
}
