package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/2beens/coachstats/internal/config"
	"github.com/2beens/coachstats/internal/db"
	"github.com/2beens/coachstats/internal/logging"
	"github.com/2beens/coachstats/internal/records"
	"github.com/2beens/coachstats/internal/trainingstats/assessment"
	"github.com/2beens/coachstats/internal/trainingstats/coerce"
	"github.com/2beens/coachstats/internal/trainingstats/logbook"
	"github.com/2beens/coachstats/internal/trainingstats/summary"

	log "github.com/sirupsen/logrus"
)

// inputFile is the layout of -input files: raw records as exported from the store.
type inputFile struct {
	Entries     []logbook.RawLogEntry      `json:"entries"`
	Assessments []assessment.RawAssessment `json:"assessments"`
}

type output struct {
	Logbook  summary.LogbookSummary  `json:"logbook"`
	Progress summary.ProgressSummary `json:"progress"`
}

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	inputPath := flag.String("input", "", "JSON file with raw entries and assessments; when empty, records are read from postgres")
	playerID := flag.String("player", "", "player id, used when reading from postgres")
	nowStr := flag.String("now", "", "reference time (RFC3339 or YYYY-MM-DD), defaults to current time")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}
	// stdout carries the summaries
	log.SetOutput(os.Stderr)
	log.SetLevel(logging.GetLevel(cfg.LogLevel))

	opts, err := cfg.SummaryOptions()
	if err != nil {
		log.Fatalf("summary options: %s", err)
	}

	now := time.Now().In(opts.Location)
	if *nowStr != "" {
		parsed, ok := coerce.Time(*nowStr, opts.Location)
		if !ok {
			log.Fatalf("invalid -now value: %s", *nowStr)
		}
		now = parsed
	}

	var in *inputFile
	if *inputPath != "" {
		in, err = readInputFile(*inputPath)
	} else {
		in, err = readFromStore(context.Background(), cfg, *playerID)
	}
	if err != nil {
		log.Fatalf("read records: %s", err)
	}

	builder := summary.NewBuilder(opts)
	out := output{
		Logbook:  builder.BuildLogbookSummary(in.Entries, now),
		Progress: builder.BuildProgressSummary(in.Assessments),
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		log.Fatalf("encode summaries: %s", err)
	}
}

func readInputFile(path string) (*inputFile, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}
	var in inputFile
	if err := json.Unmarshal(payload, &in); err != nil {
		return nil, fmt.Errorf("unmarshal input file: %w", err)
	}
	return &in, nil
}

func readFromStore(ctx context.Context, cfg *config.Config, playerID string) (*inputFile, error) {
	if playerID == "" {
		return nil, fmt.Errorf("either -input or -player must be set")
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: os.Getenv("COACHSTATS_POSTGRES_PASS"),
	})
	if err != nil {
		return nil, err
	}
	defer dbPool.Close()

	repo := records.NewRepo(dbPool, cfg.PostgresRowsLimit)
	entries, err := repo.LogEntries(ctx, playerID)
	if err != nil {
		return nil, err
	}
	assessments, err := repo.Assessments(ctx, playerID)
	if err != nil {
		return nil, err
	}

	return &inputFile{Entries: entries, Assessments: assessments}, nil
}
