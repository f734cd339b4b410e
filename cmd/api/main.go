package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/smefin/ledger-audit/internal/api/handlers"
	"github.com/smefin/ledger-audit/internal/api/middleware"
	"github.com/smefin/ledger-audit/internal/archive"
	infra "github.com/smefin/ledger-audit/internal/infra/sqlite"
	"github.com/smefin/ledger-audit/internal/logger"
	"github.com/smefin/ledger-audit/internal/narrative"
	"github.com/smefin/ledger-audit/internal/pipeline"
)

func main() {
	// Parse command-line flags
	var (
		port             = flag.String("port", envOr("PORT", "8080"), "HTTP server port")
		dbPath           = flag.String("db", envOr("AUDIT_DB", "audit.db"), "SQLite database path (or set AUDIT_DB env)")
		bucket           = flag.String("bucket", os.Getenv("GCS_BUCKET"), "GCS bucket for archiving uploaded ledgers (or set GCS_BUCKET env)")
		narrativeTimeout = flag.Duration("narrative-timeout", narrative.DefaultTimeout, "Timeout for the narrative service call")
	)
	flag.Parse()

	// Initialize logger
	log := logger.New()

	encryptionKey := os.Getenv("ENCRYPTION_KEY")
	if encryptionKey == "" {
		log.Fatal().Msg("ENCRYPTION_KEY is required to protect stored revenue figures")
	}

	ctx := context.Background()

	store, err := infra.Open(*dbPath, encryptionKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open audit report store")
	}
	defer store.Close()

	// The narrative service is best effort: without credentials every report
	// falls back to the templated summary.
	var generator narrative.Generator
	if os.Getenv("GEMINI_API_KEY") != "" {
		gen, err := narrative.NewGeminiGenerator(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Narrative service unavailable, reports will use the templated summary")
		} else {
			generator = gen
		}
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set, reports will use the templated summary")
	}
	narrator := narrative.New(generator, *narrativeTimeout, log)

	var archiver archive.Archiver
	if *bucket != "" {
		archiver = archive.NewGCSArchiver(*bucket)
	} else {
		log.Warn().Msg("No GCS bucket configured, uploaded ledgers will not be archived")
	}

	auditor := pipeline.NewAuditor(store, narrator, archiver, log)
	auditHandler := handlers.NewAuditHandler(auditor, store, log)

	// Create router
	mux := http.NewServeMux()

	mux.HandleFunc("/api/analyze", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			auditHandler.Analyze(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/audits", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			auditHandler.ListAudits(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(mux),
			),
		),
	)

	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", *port).Msg("Starting audit API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
