package content

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studyplan/internal/syllabus"
)

func TestMemoryCache_Expiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Hour))

	v, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	now = now.Add(time.Hour)
	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestMemoryCache_Missing(t *testing.T) {
	_, ok, err := NewMemoryCache().Get(context.Background(), "nope")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestTipKey(t *testing.T) {
	a := syllabus.Key{Grade: syllabus.Grade10, Subject: "Science", Month: 1, Topic: "Light"}
	b := syllabus.Key{Grade: syllabus.Grade10, Subject: "science", Month: 7, Topic: "LIGHT"}
	c := syllabus.Key{Grade: syllabus.Grade9, Subject: "Science", Month: 1, Topic: "Light"}

	assert.Equal(t, "studyplan:tips:10:science:light", tipKey(a))
	assert.Equal(t, tipKey(a), tipKey(b))
	assert.NotEqual(t, tipKey(a), tipKey(c))
}

func TestParseRedisURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid-redis", "redis://localhost:6379", false},
		{"valid-with-db", "redis://localhost:6379/2", false},
		{"empty", "", true},
		{"wrong scheme", "http://localhost:6379", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRedisURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseRedisURL() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOpenCache(t *testing.T) {
	c, closeFn, err := OpenCache(context.Background(), Config{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryCache{}, c)
	assert.NoError(t, closeFn())
}

func TestNewRedisCache_UnreachableHost(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping unreachable host test in short mode")
	}

	_, err := NewRedisCache(context.Background(), "redis://localhost:59999")
	assert.Error(t, err)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("STUDYPLAN_CACHE_URL", "redis://cache:6379/1")
	t.Setenv("STUDYPLAN_TIP_TTL", "2h")
	t.Setenv("STUDYPLAN_QUIZ_QUESTIONS", "50")

	cfg := ConfigFromEnv()
	assert.Equal(t, "redis://cache:6379/1", cfg.CacheURL)
	assert.Equal(t, 2*time.Hour, cfg.TipTTL)
	assert.Equal(t, 5, cfg.Questions, "out-of-range count keeps the default")
}
