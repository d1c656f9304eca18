package content

import (
	"os"
	"strconv"
	"time"
)

// Config controls the Adapter.
type Config struct {
	// CacheURL selects a Redis tip cache, e.g. "redis://localhost:6379/0".
	// Empty uses an in-process cache.
	CacheURL string

	// TipTTL is how long generated tips are reused.
	TipTTL time.Duration

	// Questions is how many questions a quiz asks for.
	Questions int

	// TipMaxTokens and QuizMaxTokens bound each response.
	TipMaxTokens  int
	QuizMaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns the recommended settings.
func DefaultConfig() Config {
	return Config{
		TipTTL:        24 * time.Hour,
		Questions:     5,
		TipMaxTokens:  512,
		QuizMaxTokens: 2048,
		Temperature:   0.7,
	}
}

// ConfigFromEnv reads STUDYPLAN_CACHE_URL, STUDYPLAN_TIP_TTL and
// STUDYPLAN_QUIZ_QUESTIONS over the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.CacheURL = os.Getenv("STUDYPLAN_CACHE_URL")
	if v := os.Getenv("STUDYPLAN_TIP_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.TipTTL = d
		}
	}
	if v := os.Getenv("STUDYPLAN_QUIZ_QUESTIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 20 {
			cfg.Questions = n
		}
	}
	return cfg
}
