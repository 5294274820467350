package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/2beens/coachstats/internal/trainingstats/assessment"
	"github.com/2beens/coachstats/internal/trainingstats/summary"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// cors
	CorsAllowedOrigins []string `toml:"cors_allowed_origins"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	// PostgresMaxConns of 0 keeps the pgxpool default.
	PostgresMaxConns int32 `toml:"postgres_max_conns"`
	// PostgresRowsLimit caps the records read per player and kind.
	PostgresRowsLimit int `toml:"postgres_rows_limit"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// summaries
	SummaryCacheTTL         Duration `toml:"summary_cache_ttl"`
	RecordsLocalCacheSizeMB int      `toml:"records_local_cache_size_mb"`
	SummaryRateLimitPerMin  int      `toml:"summary_rate_limit_per_min"` // negative disables limiting
	// TrustForwardedHeaders keys rate limits on X-Forwarded-For; enable only behind a proxy
	TrustForwardedHeaders bool `toml:"trust_forwarded_headers"`
	// analytics
	Analytics Analytics          `toml:"analytics"`
	Skills    []assessment.Skill `toml:"skills"`
}

type Analytics struct {
	WeekStart         string `toml:"week_start"`
	Timezone          string `toml:"timezone"`
	TopK              int    `toml:"top_k"`
	MaxSeriesLength   int    `toml:"max_series_length"`
	RollingDays       int    `toml:"rolling_days"`
	WeeklySeriesWeeks int    `toml:"weekly_series_weeks"`
}

// Duration decodes TOML strings like "5m" into a time.Duration.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration [%s]: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config for env: %s", env)
	}
	return cfg, nil
}

// Load reads the TOML file at path and returns the config of env with defaults applied.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode toml [%s]: %w", path, err)
	}
	return t.resolve(env)
}

// Parse is Load for an in-memory TOML document.
func Parse(env, data string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(data, &t); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}
	return t.resolve(env)
}

func (t *Toml) resolve(env string) (*Config, error) {
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if _, err := cfg.SummaryOptions(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.PrometheusMetricsHost == "" {
		c.PrometheusMetricsHost = "localhost"
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
	if c.SummaryCacheTTL.Duration == 0 {
		c.SummaryCacheTTL.Duration = 5 * time.Minute
	}
	if c.RecordsLocalCacheSizeMB == 0 {
		c.RecordsLocalCacheSizeMB = 20
	}
	if c.SummaryRateLimitPerMin == 0 {
		c.SummaryRateLimitPerMin = 120
	}
	if c.Analytics.WeekStart == "" {
		c.Analytics.WeekStart = "monday"
	}
	if c.Analytics.Timezone == "" {
		c.Analytics.Timezone = "UTC"
	}
}

// SummaryOptions translates the analytics section into summary builder options.
func (c *Config) SummaryOptions() (summary.Options, error) {
	opts := summary.DefaultOptions()

	weekStart, err := parseWeekday(c.Analytics.WeekStart)
	if err != nil {
		return summary.Options{}, err
	}
	opts.WeekStart = weekStart

	loc, err := time.LoadLocation(c.Analytics.Timezone)
	if err != nil {
		return summary.Options{}, fmt.Errorf("load timezone [%s]: %w", c.Analytics.Timezone, err)
	}
	opts.Location = loc

	if c.Analytics.TopK > 0 {
		opts.TopK = c.Analytics.TopK
	}
	if c.Analytics.MaxSeriesLength > 0 {
		opts.MaxSeriesLength = c.Analytics.MaxSeriesLength
	}
	if c.Analytics.RollingDays > 0 {
		opts.RollingDays = c.Analytics.RollingDays
	}
	if c.Analytics.WeeklySeriesWeeks > 0 {
		opts.WeeklySeriesWeeks = c.Analytics.WeeklySeriesWeeks
	}
	if len(c.Skills) > 0 {
		opts.Catalog = assessment.NewCatalog(c.Skills...)
	}

	return opts, nil
}

func parseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == name {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("invalid week start day: %s", s)
}
