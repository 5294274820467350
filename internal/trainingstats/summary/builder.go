// Package summary assembles the logbook and player-progress summaries consumed by
// the presentation layer. Builders hold configuration only; every call recomputes
// from its arguments and never mutates them, so a Builder is safe for concurrent use.
package summary

import (
	"time"

	"github.com/2beens/coachstats/internal/trainingstats/assessment"
	"github.com/2beens/coachstats/internal/trainingstats/logbook"
	"github.com/2beens/coachstats/internal/trainingstats/recommendation"
)

type Options struct {
	WeekStart         time.Weekday
	Location          *time.Location
	TopK              int
	MaxSeriesLength   int
	RollingDays       int
	WeeklySeriesWeeks int
	Catalog           *assessment.Catalog
}

func DefaultOptions() Options {
	return Options{
		WeekStart:         time.Monday,
		Location:          time.UTC,
		TopK:              3,
		MaxSeriesLength:   10,
		RollingDays:       30,
		WeeklySeriesWeeks: 8,
		Catalog:           assessment.DefaultCatalog(),
	}
}

// LogbookSummary is the logbook screen's view of a player's training history.
type LogbookSummary struct {
	TotalRecords   int `json:"totalRecords"`
	SkippedRecords int `json:"skippedRecords"`

	logbook.WindowSummary

	StrongSkills          []logbook.TagCount   `json:"strongSkills"`
	WeakSkills            []logbook.TagCount   `json:"weakSkills"`
	RecentDifficultyRatio float64              `json:"recentDifficultyRatio"`
	Rolling               logbook.WindowTotals `json:"rolling"`
	WeeklyHours           []logbook.WeekBucket `json:"weeklyHours"`
	Targets               logbook.TargetStats  `json:"targets"`

	RecommendationScore     int                       `json:"recommendationScore"`
	RecommendationBreakdown recommendation.Components `json:"recommendationBreakdown"`
}

// ProgressSummary is the player-progress view of the coach assessments.
type ProgressSummary struct {
	TotalRecords   int `json:"totalRecords"`
	SkippedRecords int `json:"skippedRecords"`

	assessment.Analysis

	Skills []assessment.Skill `json:"skills"`
}

type Builder struct {
	opts       Options
	aggregator *logbook.Aggregator
}

// NewBuilder fills unset options with their defaults.
func NewBuilder(opts Options) *Builder {
	defaults := DefaultOptions()
	if opts.Location == nil {
		opts.Location = defaults.Location
	}
	if opts.TopK <= 0 {
		opts.TopK = defaults.TopK
	}
	if opts.MaxSeriesLength <= 0 {
		opts.MaxSeriesLength = defaults.MaxSeriesLength
	}
	if opts.RollingDays <= 0 {
		opts.RollingDays = defaults.RollingDays
	}
	if opts.WeeklySeriesWeeks <= 0 {
		opts.WeeklySeriesWeeks = defaults.WeeklySeriesWeeks
	}
	if opts.Catalog == nil {
		opts.Catalog = defaults.Catalog
	}

	return &Builder{
		opts:       opts,
		aggregator: logbook.NewAggregator(opts.WeekStart, opts.Location),
	}
}

func (b *Builder) Options() Options {
	return b.opts
}

// BuildLogbookSummary normalizes raw log entries and derives every logbook
// statistic relative to now.
func (b *Builder) BuildLogbookSummary(rawEntries []logbook.RawLogEntry, now time.Time) LogbookSummary {
	entries, diag := logbook.Normalize(rawEntries, b.opts.Location)

	window := b.aggregator.Aggregate(entries, now)
	frequency := logbook.Frequencies(entries, b.opts.TopK)

	return LogbookSummary{
		TotalRecords:            diag.Total,
		SkippedRecords:          diag.Skipped,
		WindowSummary:           window,
		StrongSkills:            frequency.StrongSkills,
		WeakSkills:              frequency.WeakSkills,
		RecentDifficultyRatio:   frequency.RecentDifficultyRatio,
		Rolling:                 b.aggregator.Rolling(entries, now, b.opts.RollingDays),
		WeeklyHours:             b.aggregator.WeeklyHours(entries, now, b.opts.WeeklySeriesWeeks),
		Targets:                 logbook.Targets(entries),
		RecommendationScore:     recommendation.Score(window, frequency),
		RecommendationBreakdown: recommendation.Breakdown(window, frequency),
	}
}

// BuildProgressSummary normalizes raw assessments and analyzes them against the catalog.
func (b *Builder) BuildProgressSummary(rawAssessments []assessment.RawAssessment) ProgressSummary {
	assessments, diag := assessment.Normalize(rawAssessments, b.opts.Location)

	return ProgressSummary{
		TotalRecords:   diag.Total,
		SkippedRecords: diag.Skipped,
		Analysis:       assessment.Analyze(assessments, b.opts.Catalog, b.opts.MaxSeriesLength),
		Skills:         b.opts.Catalog.Skills(),
	}
}
