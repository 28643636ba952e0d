package sema

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Defs is the contents of a definition file:
//
//	objects:
//	  - name: Point
//	    constructors: ['int\, int\']
//	    members:
//	      - {name: x, type: 'int\'}
//	checks:
//	  - {value: 'int\, int\', to: 'Point\'}
//
// Type expressions are written the way types.Render prints them.
type Defs struct {
	Objects []ObjectDef `yaml:"objects"`
	Checks  []CheckDef  `yaml:"checks"`
}

// Pos is the position of an entry in the definition file.
type Pos struct {
	Line, Col int
}

type ObjectDef struct {
	Name string `yaml:"name"`
	// Qualifier names the suffix of the definition itself. Empty means LATCH.
	Qualifier    string      `yaml:"qualifier"`
	Constructors []string    `yaml:"constructors"`
	Members      []MemberDef `yaml:"members"`
	Pos          `yaml:"-"`
}

type MemberDef struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	Pos  `yaml:"-"`
}

// CheckDef is an assertion about the definitions, run by the analyzer. Value
// is required; exactly one of To, Op and Flow says what is done with it.
//
//	to:   Value must be sendable to To
//	op:   Value holds the operands of the operator Op
//	flow: Flow is written after a term of type Value, optionally followed by
//	      a term of type Next
//
// Want, when set, is the expected result; `<ERROR>` expects a failure.
type CheckDef struct {
	Value string `yaml:"value"`
	To    string `yaml:"to"`
	Op    string `yaml:"op"`
	Flow  string `yaml:"flow"`
	Next  string `yaml:"next"`
	Want  string `yaml:"want"`
	Pos   `yaml:"-"`
}

func (d *ObjectDef) UnmarshalYAML(n *yaml.Node) error {
	type plain ObjectDef
	d.Pos = Pos{n.Line, n.Column}
	return n.Decode((*plain)(d))
}

func (d *MemberDef) UnmarshalYAML(n *yaml.Node) error {
	type plain MemberDef
	d.Pos = Pos{n.Line, n.Column}
	return n.Decode((*plain)(d))
}

func (d *CheckDef) UnmarshalYAML(n *yaml.Node) error {
	type plain CheckDef
	d.Pos = Pos{n.Line, n.Column}
	return n.Decode((*plain)(d))
}

// LoadFile reads and decodes the definition file at path.
func LoadFile(path string) (*Defs, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read definitions")
	}
	defs, err := Decode(bytes.NewReader(src))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return defs, nil
}

// Decode reads definitions from r. Unknown top-level keys are rejected. An empty
// document is an empty set of definitions.
func Decode(r io.Reader) (*Defs, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	defs := &Defs{}
	if err := dec.Decode(defs); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decode definitions")
	}
	return defs, nil
}
