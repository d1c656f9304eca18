package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyplan/internal/syllabus"
)

var syllabusCmd = &cobra.Command{
	Use:   "syllabus",
	Short: "Print the month-by-month syllabus",
	RunE: func(cmd *cobra.Command, args []string) error {
		grade, err := resolveGrade(cmd, false)
		if err != nil {
			return err
		}
		month, _ := cmd.Flags().GetInt("month")

		grades := syllabus.Grades()
		if grade != "" {
			grades = []syllabus.Grade{grade}
		}

		out := cmd.OutOrStdout()
		printed := false
		for _, g := range grades {
			months, err := syllabus.ForGrade(g)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, g.Label())
			fmt.Fprintln(out, strings.Repeat("─", 40))
			for _, m := range months {
				if month != 0 && m.Month != month {
					continue
				}
				printed = true
				fmt.Fprintf(out, "Month %d\n", m.Month)
				for _, s := range m.Subjects {
					fmt.Fprintf(out, "  %s\n", s.Name)
					for _, t := range s.Topics {
						fmt.Fprintf(out, "    - %s\n", t)
					}
				}
			}
			fmt.Fprintln(out)
		}
		if !printed {
			return fmt.Errorf("no month %d in the plan", month)
		}
		return nil
	},
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func init() {
	syllabusCmd.Flags().IntP("month", "m", 0, "Only print this month")
}
