package scanner

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/scoutlabs/web3scout/internal/ai"
	"github.com/scoutlabs/web3scout/internal/config"
	"github.com/scoutlabs/web3scout/internal/markets"
	"github.com/scoutlabs/web3scout/internal/models"
	"github.com/scoutlabs/web3scout/internal/needs"
	"github.com/scoutlabs/web3scout/internal/scoring"
	"github.com/scoutlabs/web3scout/internal/sources"
)

// AlertStore is the persistence surface the scanner writes to.
type AlertStore interface {
	InsertAlert(ctx context.Context, rec models.AlertRecord) (existed bool, err error)
	AlertCount(ctx context.Context) (total, sent int, err error)
}

// Broadcaster pushes pending alerts out after a scan pass.
type Broadcaster interface {
	Broadcast(ctx context.Context) error
}

// Scanner polls discovery sources, scores each community, derives its
// needs, and persists anything not seen before.
type Scanner struct {
	config      *config.Config
	store       AlertStore
	broadcaster Broadcaster
	engine      *scoring.Engine
	deriver     *needs.Deriver
	markets     *markets.Client
	assessor    *ai.Assessor
	logger      *logrus.Logger

	// schedulers, keyed by source name, default to tickers.
	schedulers map[string]Scheduler
	srcs       []models.CommunitySource

	server  *http.Server
	mu      sync.RWMutex
	running bool
}

func New(cfg *config.Config, store AlertStore, broadcaster Broadcaster,
	engine *scoring.Engine, deriver *needs.Deriver, logger *logrus.Logger) *Scanner {

	srcs := []models.CommunitySource{
		sources.NewDirectoryClient(cfg.DirectoryURL),
		sources.NewFundingFeedClient(cfg.FundingAPIKey),
	}

	return &Scanner{
		config:      cfg,
		store:       store,
		broadcaster: broadcaster,
		engine:      engine,
		deriver:     deriver,
		markets:     markets.NewClient(cfg.MarketCacheTTL),
		assessor:    ai.NewAssessor(cfg.OpenAIAPIKey),
		logger:      logger,
		schedulers: map[string]Scheduler{
			"directory":   NewTickerScheduler(cfg.DirectoryPoll),
			"fundingfeed": NewTickerScheduler(cfg.FundingPoll),
		},
		srcs: srcs,
	}
}

// SetSources replaces the discovery sources and their schedulers. Used by
// tests to drive scans manually.
func (s *Scanner) SetSources(srcs []models.CommunitySource, schedulers map[string]Scheduler) {
	s.srcs = srcs
	s.schedulers = schedulers
}

func (s *Scanner) Run(ctx context.Context) error {
	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/stats", s.statsHandler)
	s.server = &http.Server{
		Addr:    ":" + s.config.ServerPort,
		Handler: mux,
	}
	go s.serveHTTP()

	var wg sync.WaitGroup
	for _, src := range s.srcs {
		sched, ok := s.schedulers[src.Name()]
		if !ok {
			return fmt.Errorf("no scheduler for source %s", src.Name())
		}

		wg.Add(1)
		go func(src models.CommunitySource, sched Scheduler) {
			defer wg.Done()
			s.pollLoop(ctx, src, sched)
		}(src, sched)
	}

	wg.Wait()
	return s.shutdown()
}

func (s *Scanner) pollLoop(ctx context.Context, src models.CommunitySource, sched Scheduler) {
	defer sched.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-sched.C():
			if err := s.ScanOnce(ctx, src); err != nil {
				s.logger.WithError(err).WithField("source", src.Name()).Error("Scan failed")
			}
		}
	}
}

// ScanOnce runs a single discovery pass against one source.
func (s *Scanner) ScanOnce(ctx context.Context, src models.CommunitySource) error {
	communities, err := src.FetchCommunities(ctx, s.config.BatchSize)
	if err != nil {
		return fmt.Errorf("fetching from %s: %w", src.Name(), err)
	}

	discovered := 0
	for _, c := range communities {
		if !s.engine.IsCryptoRelated(c.Title + " " + c.Description) {
			continue
		}

		rec := s.process(ctx, c)

		existed, err := s.store.InsertAlert(ctx, rec)
		if err != nil {
			s.logger.WithError(err).WithField("community", c.Title).Error("Failed to store alert")
			continue
		}
		if existed {
			continue
		}

		discovered++
		s.logger.WithFields(logrus.Fields{
			"community": c.Title,
			"source":    src.Name(),
			"score":     rec.Analysis.LegitimacyScore,
			"risk":      rec.Analysis.RiskTier,
		}).Info("New community discovered")
	}

	if discovered > 0 && s.broadcaster != nil {
		if err := s.broadcaster.Broadcast(ctx); err != nil {
			return fmt.Errorf("broadcasting alerts: %w", err)
		}
	}

	return nil
}

// process scores one community and assembles its alert record. Market and
// AI lookups are best effort; the record is complete without them.
func (s *Scanner) process(ctx context.Context, c models.Community) models.AlertRecord {
	if c.TokenSymbol != "" && c.MarketCapUSD == 0 {
		mcap, err := s.markets.MarketCapUSD(ctx, c.TokenSymbol)
		if err != nil {
			s.logger.WithError(err).WithField("symbol", c.TokenSymbol).Debug("Market lookup failed")
		} else {
			c.MarketCapUSD = mcap
		}
	}

	analysis := s.engine.Analyze(c)

	if s.assessor.Enabled() {
		summary, err := s.assessor.AssessTokenomics(ctx, c.Description)
		if err != nil {
			s.logger.WithError(err).Debug("AI tokenomics assessment failed")
		} else if summary != "" {
			analysis.Tokenomics.Summary = summary
		}
	}

	return models.AlertRecord{
		UniqueID:     sources.UniqueID(c.Title, c.Username),
		Community:    c,
		Analysis:     analysis,
		Needs:        s.deriver.Derive(analysis, c.MarketCapUSD),
		SizeCategory: models.SizeCategoryFor(c.Metrics.MemberCount),
		DiscoveredAt: time.Now().UTC(),
	}
}

func (s *Scanner) serveHTTP() {
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.WithError(err).Error("HTTP server error")
	}
}

func (s *Scanner) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","timestamp":"%s"}`, time.Now().Format(time.RFC3339))
}

func (s *Scanner) statsHandler(w http.ResponseWriter, r *http.Request) {
	total, sent, err := s.store.AlertCount(r.Context())
	if err != nil {
		http.Error(w, "stats unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"discovered":%d,"sent":%d,"running":%t}`, total, sent, s.isRunning())
}

func (s *Scanner) isRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *Scanner) shutdown() error {
	s.logger.Info("Shutting down scanner")

	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutting down HTTP server: %w", err)
		}
	}

	return nil
}
