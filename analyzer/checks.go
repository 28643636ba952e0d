package analyzer

import (
	"anic/sema"
	"anic/types"
)

// Analyze runs the checks of a definition file against the resolver's
// definitions. It returns the number of checks that failed.
func (a *Analyzer) Analyze(checks []sema.CheckDef) int {
	failed := 0
	for i := range checks {
		before := len(a.Errs)
		a.check(&checks[i])
		if len(a.Errs) > before {
			failed++
		}
	}
	return failed
}

func (a *Analyzer) check(c *sema.CheckDef) {
	line, col := uint(c.Line), uint(c.Col)
	var parsed []types.Type
	defer func() {
		for _, t := range parsed {
			a.r.Graph().Erase(t)
		}
	}()
	parse := func(what, expr string) types.Type {
		t, err := a.r.Type(expr)
		if err != nil {
			a.errorf(line, col, "%s '%s': %s", what, expr, err)
			return nil
		}
		parsed = append(parsed, t)
		return t
	}

	actions := 0
	for _, s := range []string{c.To, c.Op, c.Flow} {
		if s != "" {
			actions++
		}
	}
	if actions != 1 {
		a.errorf(line, col, "a check needs exactly one of to, op and flow")
		return
	}
	value := parse("value", c.Value)
	if value == nil {
		return
	}
	var want types.Type
	if c.Want != "" {
		if want = parse("want", c.Want); want == nil {
			return
		}
	}

	var got types.Type
	switch {
	case c.To != "":
		to := parse("to", c.To)
		if to == nil {
			return
		}
		if want == nil {
			a.CheckSend(line, col, value, to)
			return
		}
		got = types.Send(value, to)
	case c.Op != "":
		op, ok := types.OperatorNamed(c.Op)
		if !ok {
			a.errorf(line, col, "unknown operator '%s'", c.Op)
			return
		}
		operands := asSeq(value)
		if want == nil {
			a.CheckResult(line, col, operands, op)
			return
		}
		got = types.ResultOf(operands, op)
	default:
		op, ok := types.OperatorNamed(c.Flow)
		if !ok {
			a.errorf(line, col, "unknown operator '%s'", c.Flow)
			return
		}
		var next types.NextTerm
		if c.Next != "" {
			nt := parse("next", c.Next)
			if nt == nil {
				return
			}
			next = func() (types.Type, bool) { return nt, true }
		}
		if want == nil {
			a.CheckFlow(line, col, value, op, next)
			return
		}
		got, _ = types.DeriveFlow(value, op, next)
	}
	if !types.Equal(got, want) {
		a.errorf(line, col, "got %s, want %s", got, want)
	}
}

func asSeq(t types.Type) *types.Seq {
	if s, ok := t.(*types.Seq); ok {
		return s
	}
	return types.NewSeq(t)
}
