// Package proctest provides a recording proc.Runner for tests.
package proctest

import (
	"context"
	"slices"

	"github.com/sanpii/cargo-godot/internal/proc"
)

// Call is one recorded invocation.
type Call struct {
	Name string
	Args []string
}

// Recorder records invocations instead of spawning processes.
// Fail maps a program name to the error its invocation returns; Outputs maps
// a program name to the bytes Output returns.
type Recorder struct {
	Calls   []Call
	Fail    map[string]error
	Outputs map[string][]byte
}

var (
	_ proc.Runner    = (*Recorder)(nil)
	_ proc.Outputter = (*Recorder)(nil)
)

func (r *Recorder) Run(ctx context.Context, name string, args ...string) error {
	r.Calls = append(r.Calls, Call{Name: name, Args: slices.Clone(args)})
	return r.Fail[name]
}

func (r *Recorder) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	if err := r.Run(ctx, name, args...); err != nil {
		return nil, err
	}
	return r.Outputs[name], nil
}

// Programs returns the recorded program names in call order.
func (r *Recorder) Programs() []string {
	names := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		names[i] = c.Name
	}
	return names
}

// Last returns the most recent call, or the zero Call.
func (r *Recorder) Last() Call {
	if len(r.Calls) == 0 {
		return Call{}
	}
	return r.Calls[len(r.Calls)-1]
}
