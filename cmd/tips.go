package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tipsCmd = &cobra.Command{
	Use:   "tips",
	Short: "Show study tips for a topic",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := resolveTopic(cmd)
		if err != nil {
			return err
		}

		d, err := openDeps(cmd, true, false)
		if err != nil {
			return err
		}
		defer d.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n\n%s\n", key, d.content.StudyTips(cmd.Context(), key))
		return nil
	},
}

func init() {
	addTopicFlags(tipsCmd)
}
