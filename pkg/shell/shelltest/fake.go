// Package shelltest provides a recording shell.Runner for tests.
package shelltest

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/zdunecki/rtw/pkg/shell"
)

// Response is what the fake returns for a matched command.
type Response struct {
	Output string
	Err    error
}

// Runner records every command and answers from canned responses keyed by
// the space-joined argv. Unknown commands succeed with empty output.
type Runner struct {
	Calls     []shell.Command
	Responses map[string]Response
	// Missing lists executables LookPath fails for.
	Missing map[string]bool
}

// New returns an empty fake.
func New() *Runner {
	return &Runner{
		Responses: map[string]Response{},
		Missing:   map[string]bool{},
	}
}

// On registers a response for argv.
func (r *Runner) On(argv string, out string, err error) *Runner {
	r.Responses[argv] = Response{Output: out, Err: err}
	return r
}

func (r *Runner) Run(_ context.Context, cmd shell.Command) error {
	r.Calls = append(r.Calls, cmd)
	return r.Responses[key(cmd)].Err
}

func (r *Runner) Output(_ context.Context, cmd shell.Command) (string, error) {
	r.Calls = append(r.Calls, cmd)
	resp := r.Responses[key(cmd)]
	return resp.Output, resp.Err
}

func (r *Runner) LookPath(file string) (string, error) {
	if r.Missing[file] {
		return "", fmt.Errorf("%q: %w", file, exec.ErrNotFound)
	}
	return "/usr/bin/" + file, nil
}

// Argvs returns the recorded commands as space-joined strings.
func (r *Runner) Argvs() []string {
	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = key(c)
	}
	return out
}

func key(cmd shell.Command) string {
	return strings.Join(cmd.Argv(), " ")
}
