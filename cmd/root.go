package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/studyplan/internal/logging"
	"github.com/abhisek/studyplan/internal/store"
	"github.com/abhisek/studyplan/internal/syllabus"
)

var rootCmd = &cobra.Command{
	Use:   "studyplan",
	Short: "Study planner for classes 9-12",
	Long: "studyplan: a terminal study planner. Browse the month-by-month syllabus, " +
		"check topics off by passing a short quiz, and revise weak topics on a spaced schedule.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STUDYPLAN_DB env var)")
	rootCmd.PersistentFlags().StringP("grade", "g", "", "Class to work with (9, 10, 11 or 12)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log to stderr at debug level (non-interactive commands)")
	rootCmd.PersistentFlags().Bool("ephemeral", false, "Keep progress in memory only; nothing is written to disk")

	rootCmd.AddCommand(syllabusCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(tipsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(revisionCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then STUDYPLAN_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore resolves the database path and opens it. With --ephemeral the
// database is a private in-memory one.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	if ephemeral(cmd) {
		s, err := store.Open("file:studyplan-ephemeral?mode=memory&cache=shared")
		if err != nil {
			return nil, fmt.Errorf("open in-memory database: %w", err)
		}
		return s, nil
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func ephemeral(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("ephemeral")
	return v
}

// resolveGrade parses --grade. An empty flag yields "" and no error unless
// required is set.
func resolveGrade(cmd *cobra.Command, required bool) (syllabus.Grade, error) {
	s, _ := cmd.Flags().GetString("grade")
	if strings.TrimSpace(s) == "" {
		if required {
			return "", fmt.Errorf("--grade is required (one of 9, 10, 11, 12)")
		}
		return "", nil
	}
	return syllabus.ParseGrade(s)
}

// newLogger builds the command logger. Interactive sessions always log to
// the log file since the terminal belongs to the UI.
func newLogger(cmd *cobra.Command, interactive bool) *zap.Logger {
	cfg := logging.ConfigFromEnv()
	if v, _ := cmd.Flags().GetBool("verbose"); v && !interactive {
		cfg.Verbose = true
	}
	logger, err := logging.NewOrNop(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Logging disabled:", err)
	}
	return logger
}
