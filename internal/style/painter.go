package style

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ColorMode selects when escape sequences are emitted.
type ColorMode string

const (
	// ColorAuto colors output when stderr is a terminal and NO_COLOR is unset.
	ColorAuto ColorMode = "auto"
	// ColorAlways always colors output.
	ColorAlways ColorMode = "always"
	// ColorNever never colors output.
	ColorNever ColorMode = "never"
)

// ParseColorMode validates a --color flag value.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	default:
		return "", fmt.Errorf("style.ParseColorMode: %q (auto, always, never)", s)
	}
}

// Painter renders text with a Spec.
type Painter struct {
	renderer *lipgloss.Renderer
	plain    bool
}

// NewPainter creates a Painter writing for w.
func NewPainter(w io.Writer, mode ColorMode) *Painter {
	r := lipgloss.NewRenderer(w)
	profile := termenv.Ascii
	switch mode {
	case ColorAlways:
		profile = termenv.EnvColorProfile()
		if profile == termenv.Ascii {
			profile = termenv.ANSI256
		}
	case ColorAuto:
		if stderrIsTerminal() && os.Getenv("NO_COLOR") == "" {
			profile = termenv.EnvColorProfile()
		}
	}
	r.SetColorProfile(profile)
	return &Painter{renderer: r, plain: profile == termenv.Ascii}
}

// Plain returns a Painter that never emits escape sequences.
func Plain() *Painter {
	return NewPainter(io.Discard, ColorNever)
}

// Paint applies spec to text.
func (p *Painter) Paint(text string, spec Spec) string {
	if p.plain || spec.IsZero() || text == "" {
		return text
	}
	st := p.renderer.NewStyle().
		Bold(spec.Bold).
		Italic(spec.Italic).
		Underline(spec.Underline).
		Faint(spec.Dimmed).
		Reverse(spec.Inverted).
		Blink(spec.Blink).
		Strikethrough(spec.Strikethrough)
	if spec.Fg != "" {
		st = st.Foreground(lipgloss.Color(spec.Fg))
	}
	if spec.Bg != "" {
		st = st.Background(lipgloss.Color(spec.Bg))
	}
	return st.Render(text)
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
