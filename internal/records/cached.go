package records

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/2beens/coachstats/internal/telemetry/metrics"
	"github.com/2beens/coachstats/internal/trainingstats/assessment"
	"github.com/2beens/coachstats/internal/trainingstats/logbook"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	megabyte = 1024 * 1024
	oneDay   = 60 * 60 * 24

	// freecache refuses entries above a quarter of a segment (256 segments);
	// keys and the entry header must fit in the rest.
	freecacheSegments = 256
	chunkKeyReserve   = 256
)

// CachedSource keeps the last good read of every player in a local cache and serves
// it when the underlying source fails. Payloads are split into chunks that each fit
// into a single freecache entry; a read needs every chunk of the stored generation.
type CachedSource struct {
	source         Source
	cache          *freecache.Cache
	chunkSize      int
	expireSeconds  int
	metricsManager *metrics.Manager

	mu sync.Mutex
}

func NewCachedSource(source Source, cacheSizeMB int, metricsManager *metrics.Manager) *CachedSource {
	if cacheSizeMB <= 0 {
		cacheSizeMB = 20
	}
	cacheSize := cacheSizeMB * megabyte
	return &CachedSource{
		source:         source,
		cache:          freecache.NewCache(cacheSize),
		chunkSize:      cacheSize/freecacheSegments/4 - chunkKeyReserve,
		expireSeconds:  oneDay,
		metricsManager: metricsManager,
	}
}

func (s *CachedSource) LogEntries(ctx context.Context, playerID string) ([]logbook.RawLogEntry, error) {
	entries, err := s.source.LogEntries(ctx, playerID)
	if err == nil {
		s.store(metrics.KindLogbook, playerID, entries)
		return entries, nil
	}

	var cached []logbook.RawLogEntry
	if !s.load(metrics.KindLogbook, playerID, &cached) {
		return nil, fmt.Errorf("%w: %w", ErrNoCachedRecords, err)
	}
	log.Warnf("log entries for player %s: %s; serving cached copy", playerID, err)
	return cached, nil
}

func (s *CachedSource) Assessments(ctx context.Context, playerID string) ([]assessment.RawAssessment, error) {
	assessments, err := s.source.Assessments(ctx, playerID)
	if err == nil {
		s.store(metrics.KindProgress, playerID, assessments)
		return assessments, nil
	}

	var cached []assessment.RawAssessment
	if !s.load(metrics.KindProgress, playerID, &cached) {
		return nil, fmt.Errorf("%w: %w", ErrNoCachedRecords, err)
	}
	log.Warnf("assessments for player %s: %s; serving cached copy", playerID, err)
	return cached, nil
}

func (s *CachedSource) store(kind, playerID string, records any) {
	payload, err := json.Marshal(records)
	if err != nil {
		log.Errorf("marshal %s records of player %s: %s", kind, playerID, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// drop the previous generation first so a partial write is never readable
	s.cache.Del(headerKey(kind, playerID))

	chunks := (len(payload) + s.chunkSize - 1) / s.chunkSize
	for i := 0; i < chunks; i++ {
		end := min((i+1)*s.chunkSize, len(payload))
		if err := s.cache.Set(chunkKey(kind, playerID, i), payload[i*s.chunkSize:end], s.expireSeconds); err != nil {
			log.Warnf("cache %s records of player %s, chunk %d/%d: %s", kind, playerID, i+1, chunks, err)
			return
		}
	}

	header := fmt.Sprintf("%d:%d", chunks, len(payload))
	if err := s.cache.Set(headerKey(kind, playerID), []byte(header), s.expireSeconds); err != nil {
		log.Warnf("cache %s records header of player %s: %s", kind, playerID, err)
	}
}

func (s *CachedSource) load(kind, playerID string, out any) bool {
	payload, ok := s.loadPayload(kind, playerID)
	if !ok {
		return false
	}
	if err := json.Unmarshal(payload, out); err != nil {
		log.Errorf("unmarshal cached %s records of player %s: %s", kind, playerID, err)
		return false
	}
	if s.metricsManager != nil {
		s.metricsManager.CounterStoreFallbacks.WithLabelValues(kind).Inc()
	}
	return true
}

func (s *CachedSource) loadPayload(kind, playerID string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	header, err := s.cache.Get(headerKey(kind, playerID))
	if err != nil {
		return nil, false
	}
	chunks, size, ok := parseHeader(string(header))
	if !ok {
		log.Errorf("cached %s records of player %s: bad header %q", kind, playerID, header)
		return nil, false
	}

	payload := make([]byte, 0, size)
	for i := 0; i < chunks; i++ {
		chunk, err := s.cache.Get(chunkKey(kind, playerID, i))
		if err != nil {
			log.Warnf("cached %s records of player %s: chunk %d/%d evicted", kind, playerID, i+1, chunks)
			return nil, false
		}
		payload = append(payload, chunk...)
	}
	if len(payload) != size {
		log.Errorf("cached %s records of player %s: size %d, expected %d", kind, playerID, len(payload), size)
		return nil, false
	}
	return payload, true
}

func parseHeader(header string) (int, int, bool) {
	chunksPart, sizePart, found := strings.Cut(header, ":")
	if !found {
		return 0, 0, false
	}
	chunks, err := strconv.Atoi(chunksPart)
	if err != nil || chunks < 0 {
		return 0, 0, false
	}
	size, err := strconv.Atoi(sizePart)
	if err != nil || size < 0 {
		return 0, 0, false
	}
	return chunks, size, true
}

func headerKey(kind, playerID string) []byte {
	return []byte(kind + "::" + playerID)
}

func chunkKey(kind, playerID string, chunk int) []byte {
	return []byte(kind + "::" + playerID + "::" + strconv.Itoa(chunk))
}
