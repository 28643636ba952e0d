// Package analyzer turns failed type relations into diagnostics. The
// relations in package types only answer with the error sentinel; the
// Check helpers here attach a position and a message naming the construct
// that failed.
package analyzer

import (
	"fmt"

	"anic/sema"
	"anic/types"
)

type Err struct {
	Line, Column uint
	Msg          string
}

func (e Err) String() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}

func newErr(line, col uint, msgf string, args ...interface{}) Err {
	return Err{Line: line, Column: col, Msg: fmt.Sprintf(msgf, args...)}
}

type Analyzer struct {
	r    *sema.Resolver
	Errs []Err
}

func New(r *sema.Resolver) *Analyzer {
	return &Analyzer{r: r}
}

func (a *Analyzer) errorf(line, col uint, msgf string, args ...interface{}) {
	a.Errs = append(a.Errs, newErr(line, col, msgf, args...))
}

// CheckSend reports an assignment of value to target that is not allowed.
func (a *Analyzer) CheckSend(line, col uint, value, target types.Type) bool {
	if types.Sends(value, target) {
		return true
	}
	a.errorf(line, col, "cannot send %s to %s", value, target)
	return false
}

// CheckResult derives the result of op on operands, reporting a failure.
func (a *Analyzer) CheckResult(line, col uint, operands *types.Seq, op types.Kind) types.Type {
	t := types.ResultOf(operands, op)
	if !types.OK(t) {
		a.errorf(line, col, "operator %s does not apply to (%s)", op, operands)
	}
	return t
}

// CheckFlow derives the meaning of op written after a term of type prev.
func (a *Analyzer) CheckFlow(line, col uint, prev types.Type, op types.Kind, next types.NextTerm) (types.Type, bool) {
	t, consumed := types.DeriveFlow(prev, op, next)
	if !types.OK(t) {
		a.errorf(line, col, "operator %s cannot follow %s", op, prev)
	}
	return t, consumed
}

// CheckTransition applies op to the qualifier of t, reporting a refusal.
func (a *Analyzer) CheckTransition(line, col uint, t types.Type, op types.Op) bool {
	before := t.String()
	if types.Transition(t, op) {
		return true
	}
	a.errorf(line, col, "%s is not allowed on %s", op, before)
	return false
}
