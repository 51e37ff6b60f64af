package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"maps-lead-scraper/config"
	"maps-lead-scraper/models"
	"maps-lead-scraper/planner"
	"maps-lead-scraper/scraper/gmaps"
	"maps-lead-scraper/services"
	"maps-lead-scraper/storage"
	"maps-lead-scraper/utils"
)

func main() {
	var params planner.Params
	var proxyFile string
	flag.StringVar(&params.Type, "type", "", "business type to search for (required)")
	flag.StringVar(&params.City, "city", "", "city to search in (required)")
	flag.StringVar(&params.Country, "country", "", "country of the city (required)")
	flag.StringVar(&params.Language, "lang", "", "language code, e.g. fr; guessed when empty")
	flag.StringVar(&params.Address, "address", "", "optional street or district")
	flag.IntVar(&params.Limit, "limit", planner.DefaultLimit, "maximum number of listings")
	flag.StringVar(&proxyFile, "proxies", "", "file with one host:port proxy per line")
	flag.Parse()

	// ================== Bootstrap ====================
	cfg := config.Load()
	if proxyFile != "" {
		cfg.ProxyFile = proxyFile
	}
	logger := utils.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, params, logger); err != nil {
		logger.Error("%s", eris.ToString(err, false))
		logger.Sync()
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, params planner.Params, logger *utils.Logger) error {
	logger.Info("Maps Lead Scraper")

	// =================== Plan ========================================
	var classifier planner.Classifier
	if c := planner.NewCommandClassifier(cfg.ClassifierCmd, cfg.ClassifierTimeout); c != nil {
		classifier = c
	}
	spec, err := planner.NewQueryPlanner(classifier, logger).Plan(ctx, params)
	if err != nil {
		return err
	}
	logger.Info("Search: %q | language %s (%s) | limit %d", spec.Query, spec.Language, spec.BrowserLocale, spec.Limit)

	proxies, err := utils.LoadProxyList(cfg.ProxyFile)
	if err != nil {
		return err
	}
	proxy := utils.PickProxy(proxies, rand.New(rand.NewSource(time.Now().UnixNano())))
	runID := uuid.NewString()
	logger.Debug("Run id %s", runID)

	// =============== Collect ===================================
	session := gmaps.NewMapsScraper(cfg, spec, proxy, logger)
	if err := session.Start(ctx); err != nil {
		return err
	}
	defer session.Close()

	direct, err := session.OpenSearch(ctx)
	if err != nil {
		return err
	}
	var refs []models.ListingRef
	if direct != nil {
		refs = []models.ListingRef{*direct}
	} else {
		refs, err = session.Collector().Collect(ctx, spec.Limit, gmaps.NewCollectorState())
		if err != nil {
			return err
		}
	}

	// =========== Extract + mine ======================
	writer, err := storage.NewHandoffWriter(cfg.OutputDir, spec.Query, time.Now(), logger)
	if err != nil {
		return err
	}

	var contacts services.ContactSource
	if cfg.MineContacts {
		contacts = session.Contacts()
	} else {
		logger.Info("Contact mining disabled, deferring to the enrichment worker")
	}

	pipeline := services.NewPipeline(spec, runID, session.Detail(), contacts, writer,
		utils.NewRateLimiter(cfg.RateLimitDelay), logger)
	records, runErr := pipeline.Run(ctx, refs)

	// the artifact is finalized even after an interrupt or a failed write
	if err := writer.Finish(); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}
	session.Close()

	// ========= Optional sinks ============================
	saveToSinks(ctx, cfg, records, writer.Path(), logger)

	// ==== Hand-off ============================
	if ctx.Err() != nil {
		logger.Warn("Interrupted, skipping enrichment hand-off")
	} else {
		enricher := services.NewEnricher(cfg.EnricherCmd, logger)
		if err := enricher.Signal(ctx, writer.Path(), spec.Language, spec.Country); err != nil {
			logger.Warn("Enrichment worker reported a failure: %v", err)
		}
	}

	report := services.NewCoverageService(logger).Generate(records)
	services.PrintCoverageReport(report, spec.Query, writer.Path())
	fmt.Printf(" Done! %d records → %s\n", len(records), writer.Path())
	return nil
}

// saveToSinks copies the run into every configured store. Failures are logged
// only; the artifact is the source of truth.
func saveToSinks(ctx context.Context, cfg *config.Config, records []models.FinalRecord, artifact string, logger *utils.Logger) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Minute)
	defer cancel()

	var sinks []storage.RecordSink
	if cfg.CSVExport {
		sinks = append(sinks, storage.NewCSVWriter(storage.CSVPathFor(artifact), logger))
	}
	if cfg.DatabaseURL != "" {
		pg, err := storage.NewPostgresWriter(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			logger.Error("Cannot connect to PostgreSQL: %v", err)
		} else {
			sinks = append(sinks, pg)
		}
	}
	if cfg.SQLitePath != "" {
		ledger, err := storage.NewSQLiteLedger(ctx, cfg.SQLitePath, logger)
		if err != nil {
			logger.Error("Cannot open SQLite ledger: %v", err)
		} else {
			sinks = append(sinks, ledger)
		}
	}

	for _, sink := range sinks {
		if err := sink.Save(ctx, records); err != nil {
			logger.Error("Failed to save to %s: %v", sink.Name(), err)
		}
		if err := sink.Close(); err != nil {
			logger.Warn("Closing %s: %v", sink.Name(), err)
		}
	}
}
