package coaching

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/coachstats/internal/records"
	"github.com/2beens/coachstats/internal/telemetry/tracing"
	"github.com/2beens/coachstats/internal/trainingstats/assessment"
	"github.com/2beens/coachstats/internal/trainingstats/coerce"
	"github.com/2beens/coachstats/internal/trainingstats/logbook"
	"github.com/2beens/coachstats/internal/trainingstats/summary"
	"github.com/2beens/coachstats/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// maxBodyBytes caps POSTed record batches.
const maxBodyBytes = 8 << 20

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=coaching_test

type summaryService interface {
	LogbookSummary(ctx context.Context, playerID string, now time.Time) (*summary.LogbookSummary, error)
	ProgressSummary(ctx context.Context, playerID string) (*summary.ProgressSummary, error)
	BuildLogbook(ctx context.Context, rawEntries []logbook.RawLogEntry, now time.Time) summary.LogbookSummary
	BuildProgress(ctx context.Context, rawAssessments []assessment.RawAssessment) summary.ProgressSummary
}

type LogbookRequest struct {
	Entries []logbook.RawLogEntry `json:"entries"`
	// Now is optional; the server clock is used when empty.
	Now string `json:"now"`
}

type ProgressRequest struct {
	Assessments []assessment.RawAssessment `json:"assessments"`
}

type Handler struct {
	service  summaryService
	location *time.Location
	clock    func() time.Time
}

func NewHandler(service summaryService, location *time.Location) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		service:  service,
		location: location,
		clock:    time.Now,
	}
}

// WithClock replaces the clock used when a request carries no reference time.
func (handler *Handler) WithClock(clock func() time.Time) *Handler {
	handler.clock = clock
	return handler
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	// OPTIONS must match too, so preflights reach the CORS and auth middleware
	router.HandleFunc("/players/{id}/logbook/summary", handler.HandlePlayerLogbook).Methods("GET", "OPTIONS")
	router.HandleFunc("/players/{id}/progress/summary", handler.HandlePlayerProgress).Methods("GET", "OPTIONS")
	router.HandleFunc("/summaries/logbook", handler.HandleLogbook).Methods("POST", "OPTIONS")
	router.HandleFunc("/summaries/progress", handler.HandleProgress).Methods("POST", "OPTIONS")
}

func (handler *Handler) HandlePlayerLogbook(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coaching.playerLogbook")
	defer span.End()

	now, ok := handler.referenceTime(r.URL.Query().Get("now"))
	if !ok {
		http.Error(w, "error, invalid now parameter", http.StatusBadRequest)
		return
	}

	playerID := mux.Vars(r)["id"]
	logbookSummary, err := handler.service.LogbookSummary(ctx, playerID, now)
	if err != nil {
		handler.writeServiceError(w, playerID, err)
		return
	}

	pkg.WriteJSON(w, logbookSummary, http.StatusOK)
}

func (handler *Handler) HandlePlayerProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coaching.playerProgress")
	defer span.End()

	playerID := mux.Vars(r)["id"]
	progressSummary, err := handler.service.ProgressSummary(ctx, playerID)
	if err != nil {
		handler.writeServiceError(w, playerID, err)
		return
	}

	pkg.WriteJSON(w, progressSummary, http.StatusOK)
}

func (handler *Handler) HandleLogbook(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coaching.logbook")
	defer span.End()

	var req LogbookRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	now, ok := handler.referenceTime(req.Now)
	if !ok {
		http.Error(w, "error, invalid now field", http.StatusBadRequest)
		return
	}

	pkg.WriteJSON(w, handler.service.BuildLogbook(ctx, req.Entries, now), http.StatusOK)
}

func (handler *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coaching.progress")
	defer span.End()

	var req ProgressRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	pkg.WriteJSON(w, handler.service.BuildProgress(ctx, req.Assessments), http.StatusOK)
}

func (handler *Handler) referenceTime(value string) (time.Time, bool) {
	if value == "" {
		return handler.clock().In(handler.location), true
	}
	return coerce.Time(value, handler.location)
}

func (handler *Handler) writeServiceError(w http.ResponseWriter, playerID string, err error) {
	switch {
	case errors.Is(err, ErrInvalidPlayerID):
		http.Error(w, "error, invalid player id", http.StatusBadRequest)
	case errors.Is(err, records.ErrNoCachedRecords):
		log.Errorf("records of player [%s] unavailable: %s", playerID, err)
		http.Error(w, "error, records temporarily unavailable", http.StatusServiceUnavailable)
	default:
		log.Errorf("summary for player [%s]: %s", playerID, err)
		http.Error(w, "error, failed to compute summary", http.StatusInternalServerError)
	}
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, out any) bool {
	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return false
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(out); err != nil {
		log.Debugf("decode request body: %s", err)
		http.Error(w, "error, invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}
