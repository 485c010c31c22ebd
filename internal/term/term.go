// Package term provides the terminal presentation formatter used for the
// final build line. Core logic never depends on its output.
package term

import "github.com/jedib0t/go-pretty/v6/text"

// Formatter decorates user-facing text. Implementations decide whether that
// means ANSI colors or nothing at all.
type Formatter interface {
	Highlight(s string) string
	Success(s string) string
	Error(s string) string
}

// ColorFormatter renders with ANSI colors.
type ColorFormatter struct{}

func (ColorFormatter) Highlight(s string) string { return text.FgHiCyan.Sprint(s) }
func (ColorFormatter) Success(s string) string   { return text.FgGreen.Sprint(s) }
func (ColorFormatter) Error(s string) string     { return text.FgRed.Sprint(s) }

// PlainFormatter passes text through untouched, for non-TTY output.
type PlainFormatter struct{}

func (PlainFormatter) Highlight(s string) string { return s }
func (PlainFormatter) Success(s string) string   { return s }
func (PlainFormatter) Error(s string) string     { return s }
