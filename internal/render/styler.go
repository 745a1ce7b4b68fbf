package render

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/samvad-hq/httpie/internal/config"
)

// Styler decorates each part of a rendered response. Implementations must not
// add or remove characters other than terminal escape sequences.
type Styler interface {
	Notice(s string) string
	Status(s string) string
	HeaderName(s string) string
	HeaderValue(s string) string
	Body(s string) string
}

// PlainStyler returns text unchanged.
type PlainStyler struct{}

func (PlainStyler) Notice(s string) string      { return s }
func (PlainStyler) Status(s string) string      { return s }
func (PlainStyler) HeaderName(s string) string  { return s }
func (PlainStyler) HeaderValue(s string) string { return s }
func (PlainStyler) Body(s string) string        { return s }

type colorStyler struct {
	notice, status, name, value, body *color.Color
}

// NewColorStyler always emits ANSI colours, regardless of the output device.
func NewColorStyler() Styler {
	mk := func(attr color.Attribute) *color.Color {
		c := color.New(attr)
		c.EnableColor()
		return c
	}
	return &colorStyler{
		notice: mk(color.FgRed),
		status: mk(color.FgBlue),
		name:   mk(color.FgGreen),
		value:  mk(color.FgCyan),
		body:   mk(color.FgCyan),
	}
}

func (c *colorStyler) Notice(s string) string      { return c.notice.Sprint(s) }
func (c *colorStyler) Status(s string) string      { return c.status.Sprint(s) }
func (c *colorStyler) HeaderName(s string) string  { return c.name.Sprint(s) }
func (c *colorStyler) HeaderValue(s string) string { return c.value.Sprint(s) }
func (c *colorStyler) Body(s string) string        { return c.body.Sprint(s) }

// NewStyler picks a styler for mode. In auto mode colour is used only when out
// is a terminal and NO_COLOR is unset.
func NewStyler(mode string, out io.Writer) Styler {
	switch mode {
	case config.ColorAlways:
		return NewColorStyler()
	case config.ColorNever:
		return PlainStyler{}
	}
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return PlainStyler{}
	}
	f, ok := out.(*os.File)
	if !ok {
		return PlainStyler{}
	}
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return NewColorStyler()
	}
	return PlainStyler{}
}
