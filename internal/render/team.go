package render

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/michael-freling/file-manager/internal/frontend"
)

const dateLayout = "2006-01-02"

// Team prints the settings and the members of a team
func (printer *Printer) Team(team frontend.Team) error {
	printer.Title(team.Name)
	if team.Description != "" {
		fmt.Fprintln(printer.out, team.Description)
	}
	fmt.Fprintf(printer.out, "Storage limit: %s\n", humanize.IBytes(uint64(team.Settings.StorageLimit)))
	fmt.Fprintf(printer.out, "Default file permissions: %s\n", team.Settings.DefaultFilePermissions)
	fmt.Fprintln(printer.out)

	writer := tabwriter.NewWriter(printer.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "NAME\tEMAIL\tROLE\tJOINED")
	for _, member := range team.Members {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
			member.Name,
			member.Email,
			member.Role,
			member.JoinedAt.Format(dateLayout),
		)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("writer.Flush: %w", err)
	}
	fmt.Fprintln(printer.out, Pluralize("member", int64(len(team.Members))))
	return nil
}
