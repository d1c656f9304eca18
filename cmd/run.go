package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/studyplan/internal/app"
	"github.com/abhisek/studyplan/internal/screen"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	grade, err := resolveGrade(cmd, false)
	if err != nil {
		return err
	}

	d, err := openDeps(cmd, true, true)
	if err != nil {
		return err
	}
	defer d.Close()

	return app.Run(app.Options{
		Services: &screen.Services{
			Progress: d.progress,
			Quiz:     d.quiz,
			Content:  d.content,
			Logger:   d.logger,
		},
		Grade: grade,
	})
}
