package fleettrack

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/config"
	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/converter"
	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/store"
	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/tracking"
)

// Server exposes a tracking engine over HTTP.
type Server struct {
	engine    *tracking.Engine
	store     *store.DB
	cfg       config.AppConfig
	conv      *converter.Converter
	validate  *validator.Validate
	cache     *responseCache
	cacheSub  *tracking.Subscription
	startedAt time.Time

	http *http.Server
}

// NewServer creates a server for engine. db may be nil when no delivery store
// is configured.
func NewServer(engine *tracking.Engine, db *store.DB, cfg config.AppConfig) *Server {
	s := &Server{
		engine:    engine,
		store:     db,
		cfg:       cfg,
		validate:  validator.New(),
		startedAt: engine.Now(),
		conv: converter.NewConverter(converter.ConverterOptions{
			AgencyID:      cfg.Feed.AgencyID,
			ValidUntilMS:  cfg.Feed.ValidUntilMS,
			FieldMutators: converter.FieldMutators(cfg.Feed.FieldMutators),
		}),
	}
	s.cache = newResponseCache(time.Duration(cfg.Feed.ValidUntilMS) * time.Millisecond)
	s.cacheSub = engine.RegisterUpdateCallback(func(tracking.Sample) { s.cache.clear() })
	return s
}

// Handler returns the HTTP routes of the service.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)

	mux.HandleFunc("POST /api/trucks/{id}/tracking", s.handleStartTracking)
	mux.HandleFunc("DELETE /api/trucks/{id}/tracking", s.handleStopTracking)
	mux.HandleFunc("GET /api/trucks/{id}/tracking", s.handleGetTracking)
	mux.HandleFunc("GET /api/trucks/{id}/path", s.handlePath)
	mux.HandleFunc("GET /api/trucks/{id}/progress", s.handleProgress)
	mux.HandleFunc("GET /api/trucks", s.handleListTrucks)
	mux.HandleFunc("GET /api/fleet/stats", s.handleFleetStats)

	mux.HandleFunc("GET /api/feeds/vehicle-positions.pb", s.handleVehiclePositionsPB)
	mux.HandleFunc("GET /api/feeds/vehicle-positions.json", s.handleVehiclePositionsJSON)
	mux.HandleFunc("GET /api/siri/vehicle-monitoring.json", s.handleVehicleMonitoringJSON)
	mux.HandleFunc("GET /api/siri/vehicle-monitoring.xml", s.handleVehicleMonitoringXML)

	mux.HandleFunc("GET /api/deliveries/{id}", s.handleDeliveries)
	return mux
}

// Start listens on the configured port and serves in the background.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	s.http = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on %s", ln.Addr())
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cacheSub.Unsubscribe()
	if s.http == nil {
		return nil
	}
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Printf("server shut down successfully")
	return nil
}

// WaitForSignal blocks until SIGINT or SIGTERM.
func WaitForSignal() os.Signal {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	sig := <-sigs
	log.Printf("shutdown signal received: %s", sig)
	return sig
}
