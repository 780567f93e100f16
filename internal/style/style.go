// Package style parses prompt style strings such as "bold fg:208 bg:#1e1e2e"
// and paints text with lipgloss.
package style

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidStyle is returned for style strings with unknown tokens.
var ErrInvalidStyle = errors.New("invalid style")

// Spec is a parsed style. Empty colors mean the terminal default.
type Spec struct {
	Bold          bool
	Italic        bool
	Underline     bool
	Dimmed        bool
	Inverted      bool
	Blink         bool
	Strikethrough bool
	Fg            string
	Bg            string
}

// IsZero reports whether the spec changes nothing.
func (s Spec) IsZero() bool {
	return s == Spec{}
}

var namedColors = map[string]string{
	"black":          "0",
	"red":            "1",
	"green":          "2",
	"yellow":         "3",
	"blue":           "4",
	"purple":         "5",
	"magenta":        "5",
	"cyan":           "6",
	"white":          "7",
	"bright-black":   "8",
	"bright-red":     "9",
	"bright-green":   "10",
	"bright-yellow":  "11",
	"bright-blue":    "12",
	"bright-purple":  "13",
	"bright-magenta": "13",
	"bright-cyan":    "14",
	"bright-white":   "15",
	"orange":         "208",
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Parse parses a whitespace separated style string. Tokens are case-insensitive.
// "none" clears everything parsed before it.
func Parse(s string) (Spec, error) {
	var spec Spec
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		switch tok {
		case "bold":
			spec.Bold = true
		case "italic":
			spec.Italic = true
		case "underline":
			spec.Underline = true
		case "dimmed":
			spec.Dimmed = true
		case "inverted":
			spec.Inverted = true
		case "blink":
			spec.Blink = true
		case "strikethrough":
			spec.Strikethrough = true
		case "none":
			spec = Spec{}
		default:
			target := &spec.Fg
			color := tok
			if v, ok := strings.CutPrefix(tok, "fg:"); ok {
				color = v
			} else if v, ok := strings.CutPrefix(tok, "bg:"); ok {
				target, color = &spec.Bg, v
			}
			c, err := parseColor(color)
			if err != nil {
				return Spec{}, fmt.Errorf("style.Parse: %q: %w", tok, err)
			}
			*target = c
		}
	}
	return spec, nil
}

func parseColor(s string) (string, error) {
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if hexColor.MatchString(s) {
		return s, nil
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n <= 255 {
		return strconv.Itoa(n), nil
	}
	return "", ErrInvalidStyle
}
