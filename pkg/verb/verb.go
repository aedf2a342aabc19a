package verb

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// Verb is a subcommand with a single entry point.
type Verb interface {
	// Name is the word typed after the group, e.g. "create".
	Name() string

	// Short is the one-line help text.
	Short() string

	// Main runs the verb. Unmet preconditions are reported to the user and
	// return nil; only failures the user cannot fix are returned.
	Main(ctx context.Context, args *Args) error
}

// ArgumentDeclarer is implemented by verbs that take flags or positional
// arguments.
type ArgumentDeclarer interface {
	AddArguments(cmd *cobra.Command)
}

// Args is what a verb receives from the command line.
type Args struct {
	Cmd        *cobra.Command
	Positional []string
}

// Arg returns positional argument i, or "".
func (a *Args) Arg(i int) string {
	if a == nil || i < 0 || i >= len(a.Positional) {
		return ""
	}
	return a.Positional[i]
}

// String returns the value of a string flag, or "" when undeclared.
func (a *Args) String(name string) string {
	if a == nil || a.Cmd == nil {
		return ""
	}
	v, err := a.Cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return v
}

// Bool returns the value of a bool flag, or false when undeclared.
func (a *Args) Bool(name string) bool {
	if a == nil || a.Cmd == nil {
		return false
	}
	v, err := a.Cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return v
}

// StringSlice returns the value of a string slice flag.
func (a *Args) StringSlice(name string) []string {
	if a == nil || a.Cmd == nil {
		return nil
	}
	v, err := a.Cmd.Flags().GetStringSlice(name)
	if err != nil {
		return nil
	}
	return v
}

// Group is an ordered set of verbs mounted under one parent command.
type Group struct {
	name  string
	short string
	verbs []Verb
	index map[string]Verb
}

// NewGroup creates an empty group.
func NewGroup(name, short string) *Group {
	return &Group{name: name, short: short, index: map[string]Verb{}}
}

// Register adds v. Registering two verbs under one name is a programming
// error and panics.
func (g *Group) Register(v Verb) {
	if _, exists := g.index[v.Name()]; exists {
		panic(fmt.Sprintf("verb %q registered twice in group %q", v.Name(), g.name))
	}
	g.index[v.Name()] = v
	g.verbs = append(g.verbs, v)
}

// Command builds the cobra tree for the group.
func (g *Group) Command() *cobra.Command {
	parent := &cobra.Command{
		Use:   g.name,
		Short: g.short,
	}
	for _, v := range g.verbs {
		parent.AddCommand(Command(v))
	}
	return parent
}

// Command wraps a single verb as a cobra command.
func Command(v Verb) *cobra.Command {
	cmd := &cobra.Command{
		Use:   v.Name(),
		Short: v.Short(),
		RunE: func(cmd *cobra.Command, positional []string) error {
			return v.Main(cmd.Context(), &Args{Cmd: cmd, Positional: positional})
		},
	}
	if d, ok := v.(ArgumentDeclarer); ok {
		d.AddArguments(cmd)
	}
	return cmd
}
