// Package coaching serves training summaries of players over HTTP, backed by the
// record store and a redis summary cache.
package coaching

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/2beens/coachstats/internal/records"
	"github.com/2beens/coachstats/internal/telemetry/metrics"
	"github.com/2beens/coachstats/internal/telemetry/tracing"
	"github.com/2beens/coachstats/internal/trainingstats/assessment"
	"github.com/2beens/coachstats/internal/trainingstats/logbook"
	"github.com/2beens/coachstats/internal/trainingstats/summary"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var ErrInvalidPlayerID = errors.New("invalid player id")

var playerIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

func ValidatePlayerID(playerID string) error {
	if !playerIDRegex.MatchString(playerID) {
		return fmt.Errorf("%w: [%s]", ErrInvalidPlayerID, playerID)
	}
	return nil
}

type Service struct {
	source         records.Source
	builder        *summary.Builder
	cache          *SummaryCache
	metricsManager *metrics.Manager
}

// NewService creates the service; cache may be nil, in which case every summary is computed.
func NewService(
	source records.Source,
	builder *summary.Builder,
	cache *SummaryCache,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		source:         source,
		builder:        builder,
		cache:          cache,
		metricsManager: metricsManager,
	}
}

func (s *Service) LogbookSummary(ctx context.Context, playerID string, now time.Time) (_ *summary.LogbookSummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.coaching.logbookSummary")
	span.SetAttributes(attribute.String("player", playerID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if err := ValidatePlayerID(playerID); err != nil {
		return nil, err
	}

	now = now.In(s.builder.Options().Location)
	cacheKey := LogbookKey(playerID, now)

	var cached summary.LogbookSummary
	if s.cacheGet(ctx, metrics.KindLogbook, cacheKey, &cached) {
		return &cached, nil
	}

	rawEntries, err := s.source.LogEntries(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("get log entries: %w", err)
	}

	logbookSummary := s.BuildLogbook(ctx, rawEntries, now)
	s.cacheSet(ctx, cacheKey, logbookSummary)

	return &logbookSummary, nil
}

func (s *Service) ProgressSummary(ctx context.Context, playerID string) (_ *summary.ProgressSummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.coaching.progressSummary")
	span.SetAttributes(attribute.String("player", playerID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if err := ValidatePlayerID(playerID); err != nil {
		return nil, err
	}

	cacheKey := ProgressKey(playerID)

	var cached summary.ProgressSummary
	if s.cacheGet(ctx, metrics.KindProgress, cacheKey, &cached) {
		return &cached, nil
	}

	rawAssessments, err := s.source.Assessments(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("get assessments: %w", err)
	}

	progressSummary := s.BuildProgress(ctx, rawAssessments)
	s.cacheSet(ctx, cacheKey, progressSummary)

	return &progressSummary, nil
}

// BuildLogbook computes a logbook summary of records supplied by the caller.
func (s *Service) BuildLogbook(ctx context.Context, rawEntries []logbook.RawLogEntry, now time.Time) summary.LogbookSummary {
	_, span := tracing.GlobalTracer.Start(ctx, "service.coaching.buildLogbook")
	defer span.End()

	timer := s.startTimer(metrics.KindLogbook)
	logbookSummary := s.builder.BuildLogbookSummary(rawEntries, now)
	s.observe(metrics.KindLogbook, timer, logbookSummary.SkippedRecords)

	span.SetAttributes(
		attribute.Int("records", logbookSummary.TotalRecords),
		attribute.Int("skipped", logbookSummary.SkippedRecords),
	)
	return logbookSummary
}

// BuildProgress computes a progress summary of assessments supplied by the caller.
func (s *Service) BuildProgress(ctx context.Context, rawAssessments []assessment.RawAssessment) summary.ProgressSummary {
	_, span := tracing.GlobalTracer.Start(ctx, "service.coaching.buildProgress")
	defer span.End()

	timer := s.startTimer(metrics.KindProgress)
	progressSummary := s.builder.BuildProgressSummary(rawAssessments)
	s.observe(metrics.KindProgress, timer, progressSummary.SkippedRecords)

	span.SetAttributes(
		attribute.Int("records", progressSummary.TotalRecords),
		attribute.Int("skipped", progressSummary.SkippedRecords),
	)
	return progressSummary
}

func (s *Service) cacheGet(ctx context.Context, kind, key string, out any) bool {
	if s.cache == nil {
		return false
	}

	found, err := s.cache.Get(ctx, key, out)
	if err != nil {
		log.Errorf("summary cache get: %s", err)
	}

	result := "miss"
	if found {
		result = "hit"
	}
	if s.metricsManager != nil {
		s.metricsManager.CounterSummaryCache.WithLabelValues(kind, result).Inc()
	}
	return found
}

func (s *Service) cacheSet(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, v); err != nil {
		log.Errorf("summary cache set: %s", err)
	}
}

func (s *Service) startTimer(kind string) *prometheus.Timer {
	if s.metricsManager == nil {
		return nil
	}
	return prometheus.NewTimer(s.metricsManager.HistogramSummaryDuration.WithLabelValues(kind))
}

func (s *Service) observe(kind string, timer *prometheus.Timer, skipped int) {
	if s.metricsManager == nil {
		return
	}
	timer.ObserveDuration()
	s.metricsManager.CounterSummaries.WithLabelValues(kind).Inc()
	if skipped > 0 {
		s.metricsManager.CounterSkippedRecords.WithLabelValues(kind).Add(float64(skipped))
	}
}
