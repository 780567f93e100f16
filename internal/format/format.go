// Package format implements the prompt format string language:
//
//	literal text        direnv
//	variables           $name or ${name}
//	text groups         [$symbol$loaded]($style)
//	conditional groups  ($rc_path ) hidden when every variable inside is empty
//	escapes             \[ \] \( \) \$ \\
package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hbjs97/envline/internal/style"
)

// ErrSyntax is returned for malformed format strings.
var ErrSyntax = errors.New("format syntax error")

// LookupFunc resolves a variable. ok=false means the variable is absent.
type LookupFunc func(name string) (value string, ok bool)

// Segment is a run of text sharing one style.
type Segment struct {
	Text  string
	Style style.Spec
}

type node interface{}

type textNode struct{ text string }

type varNode struct{ name string }

type groupNode struct {
	children []node
	style    []node
}

type condNode struct{ children []node }

// Formatter is a parsed format string.
type Formatter struct {
	nodes  []node
	vars   LookupFunc
	styles LookupFunc
}

// Parse parses a format string.
func Parse(format string) (*Formatter, error) {
	p := &parser{src: []rune(format)}
	nodes, err := p.parseFormat(0)
	if err != nil {
		return nil, fmt.Errorf("format.Parse: %w", err)
	}
	return &Formatter{nodes: nodes}, nil
}

// Map sets the variable resolver used for text.
func (f *Formatter) Map(fn LookupFunc) *Formatter {
	f.vars = fn
	return f
}

// MapStyle sets the variable resolver used inside group styles.
func (f *Formatter) MapStyle(fn LookupFunc) *Formatter {
	f.styles = fn
	return f
}

// Variables returns the distinct text variable names in order of appearance.
func (f *Formatter) Variables() []string {
	seen := make(map[string]bool)
	var names []string
	walkVars(f.nodes, func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	})
	return names
}

// Segments evaluates the format. Adjacent segments with the same style are merged.
func (f *Formatter) Segments() ([]Segment, error) {
	var out []Segment
	if err := f.eval(f.nodes, style.Spec{}, &out); err != nil {
		return nil, fmt.Errorf("format.Segments: %w", err)
	}
	return out, nil
}

// Render paints segments and concatenates them.
func Render(segments []Segment, p *style.Painter) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(p.Paint(s.Text, s.Style))
	}
	return b.String()
}

func (f *Formatter) eval(nodes []node, st style.Spec, out *[]Segment) error {
	for _, n := range nodes {
		switch n := n.(type) {
		case textNode:
			appendSegment(out, n.text, st)
		case varNode:
			if v, ok := lookup(f.vars, n.name); ok {
				appendSegment(out, v, st)
			}
		case groupNode:
			spec, err := style.Parse(f.styleString(n.style))
			if err != nil {
				return err
			}
			if err := f.eval(n.children, spec, out); err != nil {
				return err
			}
		case condNode:
			if !f.anyVarSet(n.children) {
				continue
			}
			if err := f.eval(n.children, st, out); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *Formatter) styleString(nodes []node) string {
	var b strings.Builder
	for _, n := range nodes {
		switch n := n.(type) {
		case textNode:
			b.WriteString(n.text)
		case varNode:
			if v, ok := lookup(f.styles, n.name); ok {
				b.WriteString(v)
			}
		}
	}
	return b.String()
}

func (f *Formatter) anyVarSet(nodes []node) bool {
	set := false
	walkVars(nodes, func(name string) {
		if v, ok := lookup(f.vars, name); ok && v != "" {
			set = true
		}
	})
	return set
}

func walkVars(nodes []node, fn func(string)) {
	for _, n := range nodes {
		switch n := n.(type) {
		case varNode:
			fn(n.name)
		case groupNode:
			walkVars(n.children, fn)
		case condNode:
			walkVars(n.children, fn)
		}
	}
}

func lookup(fn LookupFunc, name string) (string, bool) {
	if fn == nil {
		return "", false
	}
	return fn(name)
}

func appendSegment(out *[]Segment, text string, st style.Spec) {
	if text == "" {
		return
	}
	if n := len(*out); n > 0 && (*out)[n-1].Style == st {
		(*out)[n-1].Text += text
		return
	}
	*out = append(*out, Segment{Text: text, Style: st})
}
