package format

import (
	"fmt"
	"strings"
)

type parser struct {
	src []rune
	pos int
}

// parseFormat reads nodes until end (0 = end of input).
func (p *parser) parseFormat(end rune) ([]node, error) {
	var nodes []node
	var buf strings.Builder
	flush := func() {
		if buf.Len() > 0 {
			nodes = append(nodes, textNode{text: buf.String()})
			buf.Reset()
		}
	}

	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '\\':
			r, err := p.escaped()
			if err != nil {
				return nil, err
			}
			buf.WriteRune(r)
		case end != 0 && c == end:
			flush()
			p.pos++
			return nodes, nil
		case c == '$':
			flush()
			name, err := p.variable()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, varNode{name: name})
		case c == '[':
			flush()
			open := p.pos
			p.pos++
			children, err := p.parseFormat(']')
			if err != nil {
				return nil, err
			}
			if p.pos >= len(p.src) || p.src[p.pos] != '(' {
				return nil, fmt.Errorf("%w: text group at %d needs a (style)", ErrSyntax, open)
			}
			p.pos++
			st, err := p.parseStyle()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, groupNode{children: children, style: st})
		case c == '(':
			flush()
			p.pos++
			children, err := p.parseFormat(')')
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, condNode{children: children})
		case c == ']' || c == ')':
			return nil, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, c, p.pos)
		default:
			buf.WriteRune(c)
			p.pos++
		}
	}

	if end != 0 {
		return nil, fmt.Errorf("%w: missing %q", ErrSyntax, end)
	}
	flush()
	return nodes, nil
}

// parseStyle reads the style part of a text group up to the closing ')'.
func (p *parser) parseStyle() ([]node, error) {
	var nodes []node
	var buf strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case '\\':
			r, err := p.escaped()
			if err != nil {
				return nil, err
			}
			buf.WriteRune(r)
		case ')':
			p.pos++
			if buf.Len() > 0 {
				nodes = append(nodes, textNode{text: buf.String()})
			}
			return nodes, nil
		case '$':
			if buf.Len() > 0 {
				nodes = append(nodes, textNode{text: buf.String()})
				buf.Reset()
			}
			name, err := p.variable()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, varNode{name: name})
		default:
			buf.WriteRune(c)
			p.pos++
		}
	}
	return nil, fmt.Errorf("%w: unclosed style", ErrSyntax)
}

func (p *parser) escaped() (rune, error) {
	if p.pos+1 >= len(p.src) {
		return 0, fmt.Errorf("%w: dangling escape at %d", ErrSyntax, p.pos)
	}
	r := p.src[p.pos+1]
	p.pos += 2
	return r, nil
}

// variable reads $name or ${name}; p.pos is at '$'.
func (p *parser) variable() (string, error) {
	start := p.pos
	p.pos++
	if p.pos < len(p.src) && p.src[p.pos] == '{' {
		p.pos++
		end := p.pos
		for end < len(p.src) && p.src[end] != '}' {
			end++
		}
		if end >= len(p.src) {
			return "", fmt.Errorf("%w: unclosed ${ at %d", ErrSyntax, start)
		}
		name := string(p.src[p.pos:end])
		p.pos = end + 1
		if !validName(name) {
			return "", fmt.Errorf("%w: bad variable name %q at %d", ErrSyntax, name, start)
		}
		return name, nil
	}

	end := p.pos
	for end < len(p.src) && isNameRune(p.src[end]) {
		end++
	}
	name := string(p.src[p.pos:end])
	p.pos = end
	if name == "" {
		return "", fmt.Errorf("%w: empty variable name at %d", ErrSyntax, start)
	}
	return name, nil
}

func validName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isNameRune(r) {
			return false
		}
	}
	return true
}

func isNameRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
