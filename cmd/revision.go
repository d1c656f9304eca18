package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyplan/internal/progress"
	"github.com/abhisek/studyplan/internal/revision"
)

var revisionCmd = &cobra.Command{
	Use:   "revision",
	Short: "List weak topics due for revision",
	RunE: func(cmd *cobra.Command, args []string) error {
		view, _ := cmd.Flags().GetString("view")
		list, err := revisionView(view)
		if err != nil {
			return err
		}

		d, err := openDeps(cmd, false, false)
		if err != nil {
			return err
		}
		defer d.Close()

		today := time.Now()
		tasks := list(d.progress.Snapshot(), today)
		out := cmd.OutOrStdout()
		if len(tasks) == 0 {
			fmt.Fprintln(out, "Nothing to revise.")
			return nil
		}
		return printTasks(out, tasks, today)
	},
}

type taskLister func(p progress.Progress, today time.Time) []revision.Task

func revisionView(view string) (taskLister, error) {
	switch view {
	case "", "due":
		return revision.Due, nil
	case "upcoming":
		return revision.Upcoming, nil
	case "all":
		return revision.Tasks, nil
	}
	return nil, fmt.Errorf("unknown view %q (want due, upcoming or all)", view)
}

func printTasks(out io.Writer, tasks []revision.Task, today time.Time) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DUE\tCLASS\tSUBJECT\tTOPIC\tLAST SCORE\tSTEP\t")
	for _, t := range tasks {
		due := t.DueDate.Format(time.DateOnly)
		if n := t.Overdue(today); n > 0 {
			due += fmt.Sprintf(" (%dd overdue)", n)
		}
		score := "-"
		if t.LastScore != nil {
			score = fmt.Sprintf("%.0f%%", *t.LastScore*100)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%dd\t\n",
			due, t.Key.Grade, t.Subject, t.TopicName, score, t.RevisionStep)
	}
	return w.Flush()
}

func init() {
	revisionCmd.Flags().String("view", "due", "Which tasks to list: due, upcoming or all")
}
