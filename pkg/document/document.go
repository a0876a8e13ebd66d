// Package document loads element trees from YAML or TOML layout documents.
//
// A document names its anchors and describes one root node:
//
//	version: "1.0.0"
//	anchors:
//	  count: {number: 0}
//	  mode:  {direction: column}
//	root:
//	  layers:
//	    - fill: "#202020"
//	    - split:
//	        - label: {anchor: count, format: "count = %v"}
//	        - on_key: {key: "+", anchor: count, action: increment}
//	        - on_key: {key: "t", anchor: mode, action: toggle}
//	      direction_anchor: mode
//
// Every node has exactly one of layers, split, line, column, label, fill or
// on_key. Any node may add weight (its share inside a split) and scope (the
// anchors resolved inside it and hidden from the rest of the tree).
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/strata/pkg/anchor"
	"github.com/go-drift/strata/pkg/errors"
	"github.com/go-drift/strata/pkg/layout"
)

// Format selects the document syntax.
type Format int

const (
	YAML Format = iota
	TOML
)

func (f Format) String() string {
	if f == TOML {
		return "toml"
	}
	return "yaml"
}

// FormatOf picks the format from a file extension. Unknown extensions are
// read as YAML.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return TOML
	default:
		return YAML
	}
}

// SupportedMajor is the only document major version understood.
const SupportedMajor = "v1"

// Document is a parsed and validated layout document.
type Document struct {
	Version string                `yaml:"version" toml:"version"`
	Anchors map[string]AnchorSpec `yaml:"anchors" toml:"anchors"`
	Root    Node                  `yaml:"root" toml:"root"`

	keys map[string]anchor.ID
}

// AnchorSpec declares an anchor and its initial value. Exactly one field
// is set.
type AnchorSpec struct {
	Text      *string  `yaml:"text,omitempty" toml:"text,omitempty"`
	Number    *float64 `yaml:"number,omitempty" toml:"number,omitempty"`
	Direction *string  `yaml:"direction,omitempty" toml:"direction,omitempty"`
}

// Node is one element of the tree.
type Node struct {
	Layers []Node `yaml:"layers,omitempty" toml:"layers,omitempty"`
	Split  []Node `yaml:"split,omitempty" toml:"split,omitempty"`
	Line   []Node `yaml:"line,omitempty" toml:"line,omitempty"`
	Column []Node `yaml:"column,omitempty" toml:"column,omitempty"`

	Label *LabelSpec `yaml:"label,omitempty" toml:"label,omitempty"`
	Fill  string     `yaml:"fill,omitempty" toml:"fill,omitempty"`
	OnKey *OnKeySpec `yaml:"on_key,omitempty" toml:"on_key,omitempty"`

	// Direction and DirectionAnchor apply to split only.
	Direction       string `yaml:"direction,omitempty" toml:"direction,omitempty"`
	DirectionAnchor string `yaml:"direction_anchor,omitempty" toml:"direction_anchor,omitempty"`

	Weight int      `yaml:"weight,omitempty" toml:"weight,omitempty"`
	Scope  []string `yaml:"scope,omitempty" toml:"scope,omitempty"`
}

// LabelSpec is either fixed text or an anchor rendered through Format.
// Color and Background override the default text and panel colours.
type LabelSpec struct {
	Text       string `yaml:"text,omitempty" toml:"text,omitempty"`
	Anchor     string `yaml:"anchor,omitempty" toml:"anchor,omitempty"`
	Format     string `yaml:"format,omitempty" toml:"format,omitempty"`
	Color      string `yaml:"color,omitempty" toml:"color,omitempty"`
	Background string `yaml:"background,omitempty" toml:"background,omitempty"`
}

// OnKeySpec binds a key to an action on an anchor.
type OnKeySpec struct {
	Key    string `yaml:"key" toml:"key"`
	Anchor string `yaml:"anchor" toml:"anchor"`
	Action string `yaml:"action" toml:"action"`
	// Value is the operand of set and append, and the step of increment and
	// decrement (default 1).
	Value any `yaml:"value,omitempty" toml:"value,omitempty"`
}

// Parse decodes and validates a document.
func Parse(data []byte, format Format) (*Document, error) {
	var doc Document
	var err error
	switch format {
	case TOML:
		err = toml.Unmarshal(data, &doc)
	default:
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, docError("document.Parse", fmt.Errorf("failed to parse %s: %w", format, err))
	}
	if err := doc.validate(); err != nil {
		return nil, docError("document.Parse", err)
	}
	return &doc, nil
}

// Load reads and parses the document at path, choosing the format from its
// extension.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, docError("document.Load", fmt.Errorf("failed to read %s: %w", path, err))
	}
	return Parse(data, FormatOf(path))
}

// AnchorNames returns the declared anchor names in sorted order.
func (d *Document) AnchorNames() []string {
	names := make([]string, 0, len(d.Anchors))
	for name := range d.Anchors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Key returns the anchor key declared under name.
func (d *Document) Key(name string) (anchor.ID, bool) {
	id, ok := d.keys[name]
	return id, ok
}

func (d *Document) validate() error {
	if err := checkVersion(d.Version); err != nil {
		return err
	}
	d.keys = make(map[string]anchor.ID, len(d.Anchors))
	for _, name := range d.AnchorNames() {
		id, err := newKey(name, d.Anchors[name])
		if err != nil {
			return err
		}
		d.keys[name] = id
	}
	return d.validateNode(&d.Root, "root")
}

func checkVersion(v string) error {
	if v == "" {
		return fmt.Errorf("version is required")
	}
	canonical := v
	if !strings.HasPrefix(canonical, "v") {
		canonical = "v" + canonical
	}
	if !semver.IsValid(canonical) {
		return fmt.Errorf("version %q is not a semantic version", v)
	}
	if major := semver.Major(canonical); major != SupportedMajor {
		return fmt.Errorf("unsupported document version %s (want %s.x)", v, SupportedMajor)
	}
	return nil
}

func newKey(name string, spec AnchorSpec) (anchor.ID, error) {
	set := 0
	for _, ok := range []bool{spec.Text != nil, spec.Number != nil, spec.Direction != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("anchors.%s: exactly one of text, number or direction is required", name)
	}
	switch {
	case spec.Text != nil:
		return anchor.New(name, *spec.Text), nil
	case spec.Number != nil:
		return anchor.New(name, *spec.Number), nil
	default:
		dir, err := layout.ParseDirection(*spec.Direction)
		if err != nil {
			return nil, fmt.Errorf("anchors.%s: %w", name, err)
		}
		return anchor.New(name, dir), nil
	}
}

func (d *Document) validateNode(n *Node, path string) error {
	kinds := n.kinds()
	if len(kinds) != 1 {
		if len(kinds) == 0 {
			return fmt.Errorf("%s: node has no kind (want one of layers, split, line, column, label, fill, on_key)", path)
		}
		return fmt.Errorf("%s: node has more than one kind: %s", path, strings.Join(kinds, ", "))
	}
	for _, name := range n.Scope {
		if _, ok := d.keys[name]; !ok {
			return fmt.Errorf("%s.scope: unknown anchor %q", path, name)
		}
	}
	if (n.Direction != "" || n.DirectionAnchor != "") && kinds[0] != "split" {
		return fmt.Errorf("%s: direction is only valid on split", path)
	}

	switch kinds[0] {
	case "layers", "split", "line", "column":
		children := n.children()
		if len(children) == 0 {
			return fmt.Errorf("%s.%s: at least one child is required", path, kinds[0])
		}
		if n.Direction != "" {
			if _, err := layout.ParseDirection(n.Direction); err != nil {
				return fmt.Errorf("%s.direction: %w", path, err)
			}
		}
		if n.DirectionAnchor != "" {
			if err := d.expectAnchor(n.DirectionAnchor, "direction", path+".direction_anchor"); err != nil {
				return err
			}
		}
		for i := range children {
			if err := d.validateNode(&children[i], fmt.Sprintf("%s.%s[%d]", path, kinds[0], i)); err != nil {
				return err
			}
		}
	case "label":
		l := n.Label
		if (l.Text == "") == (l.Anchor == "") {
			return fmt.Errorf("%s.label: exactly one of text or anchor is required", path)
		}
		if l.Anchor != "" {
			if _, ok := d.keys[l.Anchor]; !ok {
				return fmt.Errorf("%s.label: unknown anchor %q", path, l.Anchor)
			}
		}
		colours := []struct{ field, value string }{{"color", l.Color}, {"background", l.Background}}
		for _, c := range colours {
			if c.value == "" {
				continue
			}
			if _, err := ParseColor(c.value); err != nil {
				return fmt.Errorf("%s.label.%s: %w", path, c.field, err)
			}
		}
	case "fill":
		if _, err := ParseColor(n.Fill); err != nil {
			return fmt.Errorf("%s.fill: %w", path, err)
		}
	case "on_key":
		if err := d.validateOnKey(n.OnKey, path+".on_key"); err != nil {
			return err
		}
	}
	return nil
}

func (d *Document) expectAnchor(name, kind, path string) error {
	spec, ok := d.Anchors[name]
	if !ok {
		return fmt.Errorf("%s: unknown anchor %q", path, name)
	}
	if kindOf(spec) != kind {
		return fmt.Errorf("%s: anchor %q holds %s, want %s", path, name, kindOf(spec), kind)
	}
	return nil
}

func kindOf(spec AnchorSpec) string {
	switch {
	case spec.Text != nil:
		return "text"
	case spec.Number != nil:
		return "number"
	default:
		return "direction"
	}
}

// actions lists the on_key actions valid for each anchor kind.
var actions = map[string][]string{
	"text":      {"set", "append", "clear"},
	"number":    {"set", "increment", "decrement"},
	"direction": {"set", "toggle"},
}

func (d *Document) validateOnKey(k *OnKeySpec, path string) error {
	if k.Key == "" {
		return fmt.Errorf("%s: key is required", path)
	}
	spec, ok := d.Anchors[k.Anchor]
	if !ok {
		return fmt.Errorf("%s: unknown anchor %q", path, k.Anchor)
	}
	kind := kindOf(spec)
	valid := false
	for _, a := range actions[kind] {
		if a == k.Action {
			valid = true
		}
	}
	if !valid {
		return fmt.Errorf("%s: action %q is not valid for %s anchor %q (want one of %s)",
			path, k.Action, kind, k.Anchor, strings.Join(actions[kind], ", "))
	}
	return nil
}

func (n *Node) kinds() []string {
	var out []string
	if n.Layers != nil {
		out = append(out, "layers")
	}
	if n.Split != nil {
		out = append(out, "split")
	}
	if n.Line != nil {
		out = append(out, "line")
	}
	if n.Column != nil {
		out = append(out, "column")
	}
	if n.Label != nil {
		out = append(out, "label")
	}
	if n.Fill != "" {
		out = append(out, "fill")
	}
	if n.OnKey != nil {
		out = append(out, "on_key")
	}
	return out
}

func (n *Node) children() []Node {
	switch {
	case n.Layers != nil:
		return n.Layers
	case n.Split != nil:
		return n.Split
	case n.Line != nil:
		return n.Line
	default:
		return n.Column
	}
}

func docError(op string, err error) *errors.StrataError {
	return &errors.StrataError{Op: op, Kind: errors.KindDocument, Err: err}
}
