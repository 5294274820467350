// Package records loads raw training-log entries and skill assessments of a player.
// Rows are handed over as loosely typed maps; normalization is left to trainingstats.
package records

import (
	"context"
	"errors"

	"github.com/2beens/coachstats/internal/trainingstats/assessment"
	"github.com/2beens/coachstats/internal/trainingstats/logbook"
)

var ErrNoCachedRecords = errors.New("records unavailable and not cached")

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=records_test

type Source interface {
	// LogEntries returns the player's log entries, most recent first.
	LogEntries(ctx context.Context, playerID string) ([]logbook.RawLogEntry, error)
	// Assessments returns the player's assessments, most recent first.
	Assessments(ctx context.Context, playerID string) ([]assessment.RawAssessment, error)
}
