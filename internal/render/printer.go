package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/michael-freling/file-manager/internal/vfs"
)

var folderAttributes = map[vfs.Color]color.Attribute{
	vfs.ColorNone:   color.Bold,
	vfs.ColorBlue:   color.FgBlue,
	vfs.ColorGreen:  color.FgGreen,
	vfs.ColorYellow: color.FgYellow,
	vfs.ColorPurple: color.FgMagenta,
	vfs.ColorPink:   color.FgHiMagenta,
	vfs.ColorOrange: color.FgHiYellow,
	vfs.ColorRed:    color.FgRed,
}

type Printer struct {
	out io.Writer

	// colored is nil to follow whether the output is a terminal
	colored *bool
}

type PrinterOption func(*Printer)

func WithColor(colored bool) PrinterOption {
	return func(printer *Printer) {
		printer.colored = &colored
	}
}

func NewPrinter(out io.Writer, options ...PrinterOption) *Printer {
	printer := &Printer{
		out: out,
	}
	for _, option := range options {
		option(printer)
	}
	return printer
}

func (printer *Printer) newColor(attributes ...color.Attribute) *color.Color {
	c := color.New(attributes...)
	if printer.colored != nil {
		if *printer.colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return c
}

func (printer *Printer) folderName(name string, folderColor vfs.Color) string {
	attribute, ok := folderAttributes[folderColor]
	if !ok {
		attribute = color.Bold
	}
	return printer.newColor(attribute).Sprint(name + "/")
}

func (printer *Printer) Title(title string) {
	printer.newColor(color.FgHiCyan).Fprintln(printer.out, title)
	fmt.Fprintln(printer.out, strings.Repeat("=", len(title)))
}

// Pluralize formats a count with a noun, like "1,024 files"
func Pluralize(noun string, count int64) string {
	if count == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%s %ss", humanize.Comma(count), noun)
}
