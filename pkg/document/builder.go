package document

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-drift/strata/pkg/anchor"
	"github.com/go-drift/strata/pkg/build"
	"github.com/go-drift/strata/pkg/element"
	"github.com/go-drift/strata/pkg/layout"
	"github.com/go-drift/strata/pkg/values"
)

// Builder returns a fresh builder for the document's tree. Builders bind
// anchors when built, so call Builder once per build.
func (d *Document) Builder() build.Builder[element.Drawable] {
	return d.node(&d.Root)
}

func (d *Document) node(n *Node) build.Builder[element.Drawable] {
	var b build.Builder[element.Drawable]
	switch {
	case n.Layers != nil:
		b = element.Stack(d.nodes(n.Layers)...)
	case n.Split != nil:
		b = element.List(d.direction(n), d.nodes(n.Split)...)
	case n.Line != nil:
		b = element.List(values.Const(layout.Horizontal), d.nodes(n.Line)...)
	case n.Column != nil:
		b = element.List(values.Const(layout.Vertical), d.nodes(n.Column)...)
	case n.Label != nil:
		b = element.Node(d.label(n.Label))
	case n.Fill != "":
		c, _ := ParseColor(n.Fill)
		b = element.Node(element.FillColor(c))
	case n.OnKey != nil:
		b = d.onKey(n.OnKey)
	}
	if len(n.Scope) > 0 {
		ids := make([]anchor.ID, len(n.Scope))
		for i, name := range n.Scope {
			ids[i] = d.keys[name]
		}
		b = element.Scope(b, ids...)
	}
	if n.Weight != 0 {
		b = element.Flex(n.Weight, b)
	}
	return b
}

func (d *Document) nodes(ns []Node) []build.Builder[element.Drawable] {
	out := make([]build.Builder[element.Drawable], len(ns))
	for i := range ns {
		out[i] = d.node(&ns[i])
	}
	return out
}

func (d *Document) direction(n *Node) build.Builder[values.Source[layout.Direction]] {
	if n.DirectionAnchor != "" {
		return values.Anchored(d.keys[n.DirectionAnchor].(*anchor.Key[layout.Direction]))
	}
	dir, _ := layout.ParseDirection(n.Direction)
	return values.Const(dir)
}

func (d *Document) label(l *LabelSpec) *element.LabelBuilder {
	lb := element.NewLabel(d.labelText(l))
	if l.Color == "" && l.Background == "" {
		return lb
	}
	fg, bg := element.LabelForeground, element.LabelBackground
	if l.Color != "" {
		fg, _ = ParseColor(l.Color)
	}
	if l.Background != "" {
		bg, _ = ParseColor(l.Background)
	}
	return lb.WithColors(bg, fg)
}

func (d *Document) labelText(l *LabelSpec) build.Builder[values.Source[string]] {
	if l.Anchor == "" {
		return values.Const(l.Text)
	}
	format := l.Format
	if format == "" {
		format = "%v"
	}
	switch key := d.keys[l.Anchor].(type) {
	case *anchor.Key[string]:
		return values.Map(values.Anchored(key), func(s string) string { return fmt.Sprintf(format, s) })
	case *anchor.Key[float64]:
		return values.Map(values.Anchored(key), func(f float64) string {
			return fmt.Sprintf(format, strconv.FormatFloat(f, 'g', -1, 64))
		})
	case *anchor.Key[layout.Direction]:
		return values.Map(values.Anchored(key), func(dir layout.Direction) string {
			return fmt.Sprintf(format, dir)
		})
	}
	return values.Const(l.Text)
}

func (d *Document) onKey(k *OnKeySpec) build.Builder[element.Drawable] {
	switch key := d.keys[k.Anchor].(type) {
	case *anchor.Key[string]:
		operand := fmt.Sprint(valueOr(k.Value, ""))
		return element.Node(element.OnKey(k.Key, key, func(s *string) error {
			switch k.Action {
			case "set":
				*s = operand
			case "append":
				*s += operand
			case "clear":
				*s = ""
			}
			return nil
		}))
	case *anchor.Key[float64]:
		return element.Node(element.OnKey(k.Key, key, func(f *float64) error {
			step, err := number(valueOr(k.Value, 1.0))
			if err != nil {
				return fmt.Errorf("on_key %q: %w", k.Key, err)
			}
			switch k.Action {
			case "set":
				*f = step
			case "increment":
				*f += step
			case "decrement":
				*f -= step
			}
			return nil
		}))
	default:
		dirKey := key.(*anchor.Key[layout.Direction])
		return element.Node(element.OnKey(k.Key, dirKey, func(dir *layout.Direction) error {
			switch k.Action {
			case "toggle":
				if *dir == layout.Horizontal {
					*dir = layout.Vertical
				} else {
					*dir = layout.Horizontal
				}
			case "set":
				next, err := layout.ParseDirection(fmt.Sprint(valueOr(k.Value, "")))
				if err != nil {
					return fmt.Errorf("on_key %q: %w", k.Key, err)
				}
				*dir = next
			}
			return nil
		}))
	}
}

func valueOr(v, fallback any) any {
	if v == nil {
		return fallback
	}
	return v
}

func number(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(n, 64)
	}
	return 0, fmt.Errorf("value %v is not a number", v)
}

// ParseColor parses "#RGB", "#RRGGBB" or "#RRGGBBAA".
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
