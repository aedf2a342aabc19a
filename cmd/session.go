package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/zdunecki/rtw/pkg/choice"
	"github.com/zdunecki/rtw/pkg/config"
	"github.com/zdunecki/rtw/pkg/shell"
	"github.com/zdunecki/rtw/pkg/ui"
	"github.com/zdunecki/rtw/pkg/workspace"
)

// session carries what every verb needs for one invocation.
type session struct {
	Out      io.Writer
	Prompter *choice.Prompter
	Picker   choice.Picker
	Logger   *slog.Logger
	Runner   shell.Runner
	Env      workspace.Env
	Config   *config.Config
	RCPath   string
	// TTY is set when stdin is a terminal.
	TTY   bool
	Getwd func() (string, error)
}

type sessionOptions struct {
	TUI        bool
	Verbose    bool
	RCFile     string
	ConfigPath string
}

func newSession(opts sessionOptions) (*session, error) {
	logger := ui.NewLogger(os.Stderr, opts.Verbose)

	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded config", "path", cfgPath)

	env := workspace.OSEnv{}
	rcPath, err := workspace.RCPath(env, opts.RCFile)
	if err != nil {
		return nil, err
	}

	s := &session{
		Out:      os.Stdout,
		Prompter: choice.NewPrompter(os.Stdin, os.Stdout),
		Logger:   logger,
		Runner:   shell.NewExecRunner(logger),
		Env:      env,
		Config:   cfg,
		RCPath:   rcPath,
		TTY:      ui.IsTerminal(os.Stdin),
		Getwd:    os.Getwd,
	}
	s.Picker = s.Prompter
	if (opts.TUI || cfg.Prompt.TUI) && s.TTY {
		s.Picker = &choice.TUIPicker{In: os.Stdin, Out: os.Stdout}
	} else if opts.TUI {
		logger.Warn("stdin is not a terminal, falling back to numbered prompts")
	}
	return s, nil
}

// resolve asks question and lets the user pick among candidates. Nothing is
// printed when there is only one candidate.
func resolve[T any](s *session, question string, candidates []choice.Candidate[T]) (T, error) {
	picker := s.Picker
	if tui, ok := picker.(*choice.TUIPicker); ok {
		titled := *tui
		titled.Title = question
		picker = &titled
	} else if len(candidates) > 1 {
		fmt.Fprintln(s.Out, question)
	}
	return choice.Resolve(picker, candidates)
}

func (s *session) workdir() string {
	if s.Getwd == nil {
		return "."
	}
	wd, err := s.Getwd()
	if err != nil {
		s.Logger.Warn("cannot determine working directory", "error", err)
		return "."
	}
	return wd
}
