package render

import (
	"fmt"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/michael-freling/file-manager/internal/frontend"
	"github.com/michael-freling/file-manager/internal/vfs"
)

const (
	timeLayout     = "2006-01-02 15:04"
	usageBarLength = 30
)

// List prints files as a table
func (printer *Printer) List(files []frontend.File) error {
	writer := tabwriter.NewWriter(printer.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tNAME\tCATEGORY\tSIZE\tMODIFIED")
	for _, file := range files {
		name, category, size := file.Name, string(file.Category), humanize.IBytes(uint64(file.Size))
		if file.IsFolder {
			name = printer.folderName(file.Name, file.Color)
			category, size = "folder", "-"
		}
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\n",
			file.ID,
			name,
			category,
			size,
			file.Modified.Format(timeLayout),
		)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("writer.Flush: %w", err)
	}
	fmt.Fprintln(printer.out, Pluralize("item", int64(len(files))))
	return nil
}

// Usage prints a meter of the storage usage
func (printer *Printer) Usage(usage vfs.StorageUsage) {
	filled := int(math.Round(min(usage.Percentage, 100) / 100 * usageBarLength))
	bar := strings.Repeat("#", filled) + strings.Repeat("-", usageBarLength-filled)

	barColor := printer.newColor(colorOfUsage(usage.Percentage))
	fmt.Fprintf(printer.out, "[%s] %s\n", barColor.Sprint(bar), usage)
	fmt.Fprintf(printer.out, "%s available\n", humanize.IBytes(uint64(usage.Available)))
}

func colorOfUsage(percentage float64) color.Attribute {
	switch {
	case percentage >= 90:
		return color.FgRed
	case percentage >= 75:
		return color.FgYellow
	default:
		return color.FgGreen
	}
}
