package analyzer

import (
	"strings"
	"testing"

	"anic/sema"
	"anic/types"
)

func _new(t *testing.T, input string) (*Analyzer, *sema.Defs) {
	t.Helper()
	defs, err := sema.Decode(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	r := sema.NewResolver(types.NewGraph())
	r.Resolve(defs)
	for _, v := range r.Errs {
		t.Logf("sema err: %s", v)
	}
	return New(r), defs
}

func logErrs(t *testing.T, a *Analyzer) {
	for _, v := range a.Errs {
		t.Logf("analyzer err: %s", v)
	}
}

func latch(k types.Kind) *types.Std { return types.NewStd(k, types.Q(types.Latch)) }

func TestCheckSend(t *testing.T) {
	a, _ := _new(t, "")
	if !a.CheckSend(1, 1, latch(types.Int), latch(types.Float)) {
		t.Errorf("int >> float")
	}
	if a.CheckSend(3, 9, latch(types.Float), latch(types.Int)) {
		t.Errorf("float >> int")
	}
	if len(a.Errs) != 1 {
		t.Fatalf("%d errors", len(a.Errs))
	}
	if e := a.Errs[0]; e.String() != `3:9: cannot send float\ to int\` {
		t.Errorf("got %q", e)
	}
}

func TestCheckResult(t *testing.T) {
	a, _ := _new(t, "")
	got := a.CheckResult(1, 1, types.NewSeq(latch(types.Int), latch(types.Int)), types.Plus)
	if !types.IsKind(got, types.Int) || len(a.Errs) != 0 {
		t.Errorf("int + int: %s", got)
	}
	got = a.CheckResult(2, 4, types.NewSeq(latch(types.Bool)), types.Minus)
	if types.OK(got) {
		t.Errorf("-bool: %s", got)
	}
	if len(a.Errs) != 1 || a.Errs[0].Msg != `operator - does not apply to (bool\)` {
		logErrs(t, a)
		t.Errorf("missing diagnostic")
	}
}

func TestCheckFlow(t *testing.T) {
	a, _ := _new(t, "")
	if got, consumed := a.CheckFlow(1, 1, latch(types.Int), types.DPlus, nil); !types.IsKind(got, types.Int) || consumed {
		t.Errorf("int ++: %s %v", got, consumed)
	}
	if got, _ := a.CheckFlow(1, 5, latch(types.Int), types.Times, nil); types.OK(got) {
		t.Errorf("int *: %s", got)
	}
	if len(a.Errs) != 1 || !strings.Contains(a.Errs[0].Msg, "operator * cannot follow int") {
		logErrs(t, a)
		t.Errorf("missing diagnostic")
	}
}

func TestCheckTransition(t *testing.T) {
	a, _ := _new(t, "")
	x := types.NewStd(types.Int, types.Q(types.Constant))
	if a.CheckTransition(1, 1, x, types.Delatch) {
		t.Errorf("delatch on a constant")
	}
	if !a.CheckTransition(1, 1, x, types.CopyDelatch) || x.Qual() != types.Q(types.Latch) {
		t.Errorf("copyDelatch: %s", x)
	}
	if len(a.Errs) != 1 || a.Errs[0].Msg != "delatch is not allowed on int" {
		logErrs(t, a)
		t.Errorf("missing diagnostic")
	}
}

const checks = `
objects:
  - name: Point
    constructors: ['int\, int\']
    members:
      - {name: x, type: 'int\'}
checks:
  - {value: 'int\, int\', to: 'Point\'}
  - {value: 'Point\', to: 'Point'}
  - {value: 'float\', to: 'int\', want: '<ERROR>'}
  - {value: 'int\, float\', op: '*', want: 'float\'}
  - {value: 'string, bool\', op: '+'}
  - {value: 'int\', flow: '-', next: 'bool\', want: 'int\'}
  - {value: 'Point', to: 'Point\'}
  - {value: 'bool\', op: '-'}
  - {value: 'int\', flow: '%'}
  - {value: 'int\', op: '+', want: 'float\'}
  - {value: 'Nope', to: 'int'}
  - {value: 'int', to: 'int', op: '+'}
  - {value: 'int', op: '?'}
  - {value: '<ERROR>', to: '<ERROR>'}
`

func TestAnalyze(t *testing.T) {
	a, defs := _new(t, checks)
	failed := a.Analyze(defs.Checks)
	logErrs(t, a)
	want := []struct {
		line uint
		msg  string
	}{
		{14, "cannot send {"},
		{15, `operator - does not apply to (bool\)`},
		{16, `operator % cannot follow int\`},
		{17, `got int\, want float\`},
		{18, "value 'Nope': 1:1: unknown type 'Nope'"},
		{19, "exactly one of"},
		{20, "unknown operator '?'"},
		{21, "cannot send <ERROR> to <ERROR>"},
	}
	if failed != len(want) || len(a.Errs) != len(want) {
		t.Fatalf("%d failed checks, %d errors", failed, len(a.Errs))
	}
	for i, w := range want {
		e := a.Errs[i]
		if e.Line != w.line || !strings.Contains(e.Msg, w.msg) {
			t.Errorf("%d: got %s, want line %d %q", i, e, w.line, w.msg)
		}
	}
}

func TestAnalyzeReleasesTemporaries(t *testing.T) {
	a, defs := _new(t, checks)
	g := a.r.Graph()
	before := g.Len()
	a.Analyze(defs.Checks)
	if g.Len() != before {
		t.Errorf("graph grew from %d to %d objects", before, g.Len())
	}
	point, _ := a.r.Object("Point")
	if n := len(g.CopiesOf(point)); n != 0 {
		t.Errorf("%d copies of Point left behind", n)
	}
}
