// Package cmd is the anic command line: it reads type expressions, relates
// them with the type algebra and prints the results.
package cmd

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"anic/sema"
	"anic/types"
)

var flag = struct {
	Defs    string
	Verbose bool
	Dump    bool
}{}

var root = &cobra.Command{
	Use:          "anic",
	Short:        "Inspect and relate anic types",
	SilenceUsage: true,
}

var cmdRender = &cobra.Command{
	Use:   "render [type]...",
	Short: "Parse types and print them in canonical form",
	Args:  cobra.MinimumNArgs(1),
	RunE:  withSession((*session).render),
}

var cmdEquals = &cobra.Command{
	Use:   "equals [a] [b]",
	Short: "Report whether two types are structurally equal",
	Args:  cobra.ExactArgs(2),
	RunE:  withSession((*session).equals),
}

var cmdSends = &cobra.Command{
	Use:   "sends [value] [target]",
	Short: "Print null if value may be delivered to target, <ERROR> if not",
	Args:  cobra.ExactArgs(2),
	RunE:  withSession((*session).sends),
}

var cmdResult = &cobra.Command{
	Use:   "result [operands] [operator|filter]",
	Short: "Apply an operator or a filter to a list of types",
	Args:  cobra.ExactArgs(2),
	RunE:  withSession((*session).result),
}

var cmdFlow = &cobra.Command{
	Use:   "flow [prev] [operator] [next]",
	Short: "Derive an operator written after a term, with an optional next term",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  withSession((*session).flow),
}

var cmdTransition = &cobra.Command{
	Use:   "transition [type] [op]",
	Short: "Apply a qualifier transition such as delatch or constantDestream",
	Args:  cobra.ExactArgs(2),
	RunE:  withSession((*session).transition),
}

var cmdCheck = &cobra.Command{
	Use:   "check",
	Short: "Resolve the definition file and run its checks",
	Args:  cobra.NoArgs,
	RunE:  withSession((*session).check),
}

var cmdRepl = &cobra.Command{
	Use:   "repl",
	Short: "Evaluate commands interactively",
	Args:  cobra.NoArgs,
	RunE:  withSession((*session).repl),
}

func init() {
	root.AddCommand(cmdRender, cmdEquals, cmdSends, cmdResult, cmdFlow, cmdTransition, cmdCheck, cmdRepl)
	root.PersistentFlags().StringVarP(&flag.Defs, "defs", "d", "", "YAML file of object definitions")
	root.PersistentFlags().BoolVarP(&flag.Verbose, "verbose", "v", false, "Log debug output to stderr")
	root.PersistentFlags().BoolVar(&flag.Dump, "dump", false, "Dump the internal form of every parsed type")
}

func Execute() error {
	return root.Execute()
}

// session is the state one command runs against.
type session struct {
	r    *sema.Resolver
	defs *sema.Defs
	out  io.Writer
	log  *slog.Logger
	dump bool
}

func withSession(run func(*session, []string) error) func(*cobra.Command, []string) error {
	return func(c *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if flag.Verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(c.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		s, err := newSession(c.OutOrStdout(), logger, flag.Defs)
		if err != nil {
			return err
		}
		s.dump = flag.Dump
		return run(s, args)
	}
}

func newSession(out io.Writer, logger *slog.Logger, defsPath string) (*session, error) {
	s := &session{
		r:    sema.NewResolver(types.NewGraph()),
		defs: &sema.Defs{},
		out:  out,
		log:  logger,
	}
	if defsPath == "" {
		return s, nil
	}
	defs, err := sema.LoadFile(defsPath)
	if err != nil {
		return nil, err
	}
	s.r.Resolve(defs)
	if len(s.r.Errs) > 0 {
		for _, e := range s.r.Errs {
			s.log.Error("definition", "path", defsPath, "line", e.Line, "col", e.Column, "msg", e.Msg)
		}
		return nil, sema.ErrList(s.r.Errs)
	}
	s.defs = defs
	s.log.Debug("Loaded definitions", "path", defsPath, "objects", len(defs.Objects), "checks", len(defs.Checks))
	return s, nil
}
