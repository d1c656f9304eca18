package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyplan/internal/revision"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show progress statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false, false)
		if err != nil {
			return err
		}
		defer d.Close()

		return printSummary(cmd.OutOrStdout(), revision.Summarize(d.progress.Snapshot(), time.Now()))
	},
}

func printSummary(out io.Writer, s revision.Summary) error {
	fmt.Fprintf(out, "Completed topics:  %d\n", s.Completed)
	fmt.Fprintf(out, "Weak topics:       %d\n", s.Weak)
	fmt.Fprintf(out, "Revisions due:     %d (upcoming %d)\n", s.DueNow, s.Upcoming)
	if s.Scored > 0 {
		fmt.Fprintf(out, "Average score:     %.0f%% over %d topics\n", s.MeanScore*100, s.Scored)
	}
	if len(s.Subjects) == 0 {
		return nil
	}

	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CLASS\tSUBJECT\tDONE\t\t")
	for _, st := range s.Subjects {
		fmt.Fprintf(w, "%s\t%s\t%d/%d\t%s\t\n", st.Grade, st.Subject, st.Completed, st.Total, bar(st.Completed, st.Total, 20))
	}
	return w.Flush()
}

// bar renders a fixed-width text progress bar.
func bar(n, total, width int) string {
	filled := 0
	if total > 0 {
		filled = n * width / total
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
