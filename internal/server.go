package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/2beens/coachstats/internal/coaching"
	"github.com/2beens/coachstats/internal/config"
	"github.com/2beens/coachstats/internal/db"
	"github.com/2beens/coachstats/internal/middleware"
	"github.com/2beens/coachstats/internal/records"
	"github.com/2beens/coachstats/internal/telemetry/metrics"
	"github.com/2beens/coachstats/internal/telemetry/tracing"
	"github.com/2beens/coachstats/internal/trainingstats/summary"
	"github.com/2beens/coachstats/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string
	apiToken          string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client

	coachingService *coaching.Service
	summaryOptions  summary.Options

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config           *config.Config
	VersionInfo      string
	APIToken         string
	PostgresPassword string
	RedisPassword    string
	TracingEnabled   bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	summaryOptions, err := params.Config.SummaryOptions()
	if err != nil {
		return nil, fmt.Errorf("summary options: %w", err)
	}

	// tracing goes first: the pool and redis tracers bind to the global provider,
	// and a failure here leaves nothing to close
	otelShutdown, err := tracing.HoneycombSetup(params.TracingEnabled, "coachstats-backend")
	if err != nil {
		return nil, fmt.Errorf("tracing setup: %w", err)
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		DBUser:         params.Config.PostgresUser,
		DBPassword:     params.PostgresPassword,
		MaxConns:       params.Config.PostgresMaxConns,
		TracingEnabled: params.TracingEnabled,
	})
	if err != nil {
		otelShutdown()
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("coachstats", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})
	if params.TracingEnabled {
		rdb.AddHook(redisotel.NewTracingHook())
	}

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	source := records.NewCachedSource(
		records.NewRepo(dbPool, params.Config.PostgresRowsLimit),
		params.Config.RecordsLocalCacheSizeMB,
		metricsManager,
	)
	coachingService := coaching.NewService(
		source,
		summary.NewBuilder(summaryOptions),
		coaching.NewSummaryCache(rdb, params.Config.SummaryCacheTTL.Duration),
		metricsManager,
	)

	return &Server{
		config:          params.Config,
		versionInfo:     params.VersionInfo,
		apiToken:        params.APIToken,
		dbPool:          dbPool,
		redisClient:     rdb,
		coachingService: coachingService,
		summaryOptions:  summaryOptions,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	if s.coachingService == nil {
		return nil, errors.New("coaching service not set")
	}

	r := mux.NewRouter()
	r.Use(otelmux.Middleware("coachstats-router"))

	coachingHandler := coaching.NewHandler(s.coachingService, s.summaryOptions.Location)
	coachingHandler.SetupRoutes(r)

	r.HandleFunc("/", s.handleRoot).Methods("GET")
	r.HandleFunc("/health", s.handleHealth).Methods("GET")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.CorsAllowedOrigins))
	r.Use(middleware.NewAuthMiddlewareHandler(s.apiToken, "/", "/health").AuthCheck())
	if s.redisClient != nil && s.config.SummaryRateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(
			redis_rate.NewLimiter(s.redisClient),
			"coachstats",
			s.config.SummaryRateLimitPerMin,
			s.config.TrustForwardedHeaders,
		))
	}
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "coachstats")
}

type healthResponse struct {
	Status   string            `json:"status"`
	Version  string            `json:"version,omitempty"`
	Backends map[string]string `json:"backends"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{
		Status:   "ok",
		Version:  s.versionInfo,
		Backends: map[string]string{},
	}
	if s.dbPool != nil {
		resp.Backends["postgres"] = backendStatus("postgres", s.dbPool.Ping(ctx))
	}
	if s.redisClient != nil {
		resp.Backends["redis"] = backendStatus("redis", s.redisClient.Ping(ctx).Err())
	}
	for _, status := range resp.Backends {
		if status != "ok" {
			// summaries still work from local caches
			resp.Status = "degraded"
		}
	}

	pkg.WriteJSON(w, resp, http.StatusOK)
}

// backendStatus hides the ping error from the unauthenticated response.
func backendStatus(backend string, err error) string {
	if err != nil {
		log.Warnf("health: %s ping: %s", backend, err)
		return "down"
	}
	return "ok"
}

func (s *Server) Serve(host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{Registry: s.promRegistry},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	if s.otelShutdown != nil {
		s.otelShutdown()
		log.Trace("otel shut down ...")
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}
