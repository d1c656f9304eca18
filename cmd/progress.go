package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyplan/internal/progress"
	"github.com/abhisek/studyplan/internal/revision"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Inspect and edit topic progress",
}

var progressListCmd = &cobra.Command{
	Use:   "list",
	Short: "List completed topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		grade, err := resolveGrade(cmd, false)
		if err != nil {
			return err
		}
		d, err := openDeps(cmd, false, false)
		if err != nil {
			return err
		}
		defer d.Close()

		snap := d.progress.Snapshot()
		out := cmd.OutOrStdout()
		if len(snap.CompletedTopics) == 0 {
			fmt.Fprintln(out, "No topics completed yet.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CLASS\tMONTH\tSUBJECT\tTOPIC\tCOMPLETED\tLAST SCORE\tREVISIONS\t")
		for _, k := range snap.Keys() {
			if grade != "" && k.Grade != grade {
				continue
			}
			r := snap.CompletedTopics[k]
			score := "-"
			if latest, ok := r.LatestScore(); ok {
				score = fmt.Sprintf("%d/%d", latest.Score, latest.Total)
				if revision.IsWeak(r) {
					score += " weak"
				}
			}
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\t%d\t\n",
				k.Grade, k.Month, k.Subject, k.Topic,
				r.CompletionDate.Local().Format(time.DateOnly), score, len(r.History))
		}
		return w.Flush()
	},
}

var progressUnmarkCmd = &cobra.Command{
	Use:   "unmark",
	Short: "Mark a topic as not done",
	RunE: func(cmd *cobra.Command, args []string) error {
		return editTopic(cmd, func(d *deps, key progress.TopicKey) error {
			return d.progress.Unmark(cmd.Context(), key)
		}, "Unmarked")
	},
}

var progressReviseCmd = &cobra.Command{
	Use:   "revise",
	Short: "Record a revision of a completed topic",
	RunE: func(cmd *cobra.Command, args []string) error {
		return editTopic(cmd, func(d *deps, key progress.TopicKey) error {
			return d.progress.MarkRevised(cmd.Context(), key, time.Now())
		}, "Revised")
	},
}

// editTopic resolves the topic flags and applies fn to it.
func editTopic(cmd *cobra.Command, fn func(*deps, progress.TopicKey) error, verb string) error {
	key, err := resolveTopic(cmd)
	if err != nil {
		return err
	}
	d, err := openDeps(cmd, false, false)
	if err != nil {
		return err
	}
	defer d.Close()

	if err := fn(d, key); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, key)
	return nil
}

func init() {
	addTopicFlags(progressUnmarkCmd)
	addTopicFlags(progressReviseCmd)

	progressCmd.AddCommand(progressListCmd)
	progressCmd.AddCommand(progressUnmarkCmd)
	progressCmd.AddCommand(progressReviseCmd)
}
