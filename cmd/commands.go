package cmd

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"

	"anic/analyzer"
	"anic/types"
)

// types render themselves through String; the dump shows their fields instead
var dumper = spew.ConfigState{Indent: "  ", DisableMethods: true, DisablePointerAddresses: true}

func (s *session) parse(expr string) (types.Type, error) {
	t, err := s.r.Type(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "%q", expr)
	}
	s.log.Debug("Parsed", "expr", expr, "category", t.Category(), "operable", t.Operable())
	if s.dump {
		dumper.Fdump(s.out, t)
	}
	return t, nil
}

func (s *session) parseAll(exprs []string) ([]types.Type, error) {
	out := make([]types.Type, len(exprs))
	for i, e := range exprs {
		t, err := s.parse(e)
		if err != nil {
			s.release(out[:i]...)
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// release erases the temporaries of one command, so that a long REPL
// session does not keep every object copy it ever parsed
func (s *session) release(ts ...types.Type) {
	for _, t := range ts {
		s.r.Graph().Erase(t)
	}
}

func (s *session) render(args []string) error {
	ts, err := s.parseAll(args)
	if err != nil {
		return err
	}
	defer s.release(ts...)
	for _, t := range ts {
		fmt.Fprintln(s.out, types.Render(t, 0))
	}
	return nil
}

func (s *session) equals(args []string) error {
	ts, err := s.parseAll(args)
	if err != nil {
		return err
	}
	defer s.release(ts...)
	fmt.Fprintln(s.out, types.Equal(ts[0], ts[1]))
	return nil
}

func (s *session) sends(args []string) error {
	ts, err := s.parseAll(args)
	if err != nil {
		return err
	}
	defer s.release(ts...)
	fmt.Fprintln(s.out, types.Send(ts[0], ts[1]))
	return nil
}

func (s *session) result(args []string) error {
	ts, err := s.parseAll(args)
	if err != nil {
		return err
	}
	got := types.Result(ts[0], ts[1])
	fmt.Fprintln(s.out, got)
	s.release(ts...)
	return nil
}

func (s *session) flow(args []string) error {
	op, ok := types.OperatorNamed(args[1])
	if !ok {
		return errors.Errorf("unknown operator %q", args[1])
	}
	prev, err := s.parse(args[0])
	if err != nil {
		return err
	}
	defer s.release(prev)
	var next types.NextTerm
	if len(args) == 3 {
		nt, err := s.parse(args[2])
		if err != nil {
			return err
		}
		defer s.release(nt)
		next = func() (types.Type, bool) { return nt, true }
	}
	got, consumed := types.DeriveFlow(prev, op, next)
	if consumed {
		fmt.Fprintf(s.out, "%s (binary)\n", got)
	} else {
		fmt.Fprintf(s.out, "%s (unary)\n", got)
	}
	return nil
}

func (s *session) transition(args []string) error {
	op, ok := types.OpNamed(args[1])
	if !ok {
		return errors.Errorf("unknown transition %q", args[1])
	}
	t, err := s.parse(args[0])
	if err != nil {
		return err
	}
	defer s.release(t)
	if types.IsSentinel(t) {
		return errors.Errorf("%s has a fixed qualifier", t)
	}
	if _, isSeq := t.(*types.Seq); isSeq {
		return errors.Errorf("a list has a fixed qualifier")
	}
	a := analyzer.New(s.r)
	if !a.CheckTransition(1, 1, t, op) {
		return errors.New(a.Errs[0].Msg)
	}
	fmt.Fprintln(s.out, t)
	return nil
}

func (s *session) check(_ []string) error {
	a := analyzer.New(s.r)
	failed := a.Analyze(s.defs.Checks)
	for _, e := range a.Errs {
		fmt.Fprintf(s.out, "%s\n", e)
	}
	s.log.Debug("Checked", "objects", len(s.r.Objects()), "checks", len(s.defs.Checks), "failed", failed)
	if failed > 0 {
		return errors.Errorf("%d of %d checks failed", failed, len(s.defs.Checks))
	}
	fmt.Fprintf(s.out, "%d objects, %d checks passed\n", len(s.r.Objects()), len(s.defs.Checks))
	return nil
}
