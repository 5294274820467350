package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToml = `
[development]
environment = "development"
host = "localhost"
port = 9100
log_level = "debug"
postgres_host = "localhost"
postgres_port = "5432"
postgres_db_name = "coachstats"
redis_host = "localhost"
redis_port = "6379"
summary_cache_ttl = "90s"

[development.analytics]
week_start = "sunday"
timezone = "Europe/Belgrade"
top_k = 5
rolling_days = 14

[[development.skills]]
id = "serve"
name = "Serve"
max_score = 10

[[development.skills]]
id = "dink"
name = "Dink"
max_score = 5

[production]
environment = "production"
port = 9000

[production.analytics]
week_start = "funday"
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(testToml), 0o600))

	cfg, err := Load("dev", path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "coachstats", cfg.PostgresDBName)
	assert.Equal(t, 90*time.Second, cfg.SummaryCacheTTL.Duration)
	// defaults
	assert.Equal(t, "2112", cfg.PrometheusMetricsPort)
	assert.Equal(t, 20, cfg.RecordsLocalCacheSizeMB)
	assert.Equal(t, 120, cfg.SummaryRateLimitPerMin)
	assert.False(t, cfg.TrustForwardedHeaders)
	require.Len(t, cfg.Skills, 2)
	assert.Equal(t, "dink", cfg.Skills[1].ID)
	assert.Equal(t, 5.0, cfg.Skills[1].MaxScore)
}

func TestLoad_Errors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(testToml), 0o600))

	_, err := Load("staging", path)
	assert.EqualError(t, err, "unknown env: staging")

	_, err = Load("prod", path)
	assert.EqualError(t, err, "invalid week start day: funday")

	_, err = Load("dev", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Parse("dev", "[development")
	assert.Error(t, err)

	_, err = Parse("prod", "[development]\nport = 1")
	assert.EqualError(t, err, "no config for env: prod")
}

func TestSummaryOptions(t *testing.T) {
	cfg, err := Parse("development", testToml)
	require.NoError(t, err)

	opts, err := cfg.SummaryOptions()
	require.NoError(t, err)

	assert.Equal(t, time.Sunday, opts.WeekStart)
	assert.Equal(t, "Europe/Belgrade", opts.Location.String())
	assert.Equal(t, 5, opts.TopK)
	assert.Equal(t, 14, opts.RollingDays)
	// untouched keys keep builder defaults
	assert.Equal(t, 10, opts.MaxSeriesLength)
	assert.Equal(t, 8, opts.WeeklySeriesWeeks)
	require.NotNil(t, opts.Catalog)
	assert.Equal(t, 2, opts.Catalog.Len())
}

func TestSummaryOptions_BadTimezone(t *testing.T) {
	cfg := &Config{Analytics: Analytics{WeekStart: "Monday", Timezone: "Mars/Olympus"}}
	_, err := cfg.SummaryOptions()
	assert.Error(t, err)
}

func TestParseWeekday(t *testing.T) {
	d, err := parseWeekday(" Monday ")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d)

	d, err = parseWeekday("saturday")
	require.NoError(t, err)
	assert.Equal(t, time.Saturday, d)
}
