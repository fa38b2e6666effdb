package main

import (
	"context"
	"crypto/tls"
	"encoding/json"
	stdlog "log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/sivasakthivelp04-cell/finsight-ai/src/analysis"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/config"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/handlers"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/llm"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/logger"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/processors"
	"github.com/sivasakthivelp04-cell/finsight-ai/src/services"
)

func proxyHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Forwarded-Proto") == "https" {
			r.URL.Scheme = "https"
			r.TLS = &tls.ConnectionState{}
		}
		next.ServeHTTP(w, r)
	})
}

// newEngine picks the narrative engine once at startup: the LLM engine when
// a provider is configured, the rule-based engine otherwise.
func newEngine(ctx context.Context, cfg *config.AppConfig) analysis.Engine {
	ruleBased := analysis.NewRuleBasedEngine()
	if !cfg.LLMEnabled() {
		logger.L.Info("No LLM API key configured, using rule-based analysis")
		return ruleBased
	}

	provider, err := llm.NewProvider(ctx, llm.Config{
		Provider: cfg.LLMProvider,
		APIKey:   cfg.LLMAPIKey,
		Model:    cfg.LLMModel,
		BaseURL:  cfg.LLMBaseURL,
	})
	if err != nil {
		logger.L.Error("Failed to initialize LLM provider, using rule-based analysis", "provider", cfg.LLMProvider, "error", err)
		return ruleBased
	}
	logger.L.Info("LLM analysis enabled", "provider", provider.Name(), "timeout", cfg.LLMTimeout)
	return analysis.NewLLMEngine(provider, ruleBased, cfg.LLMTimeout)
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	logger.L.Info("FinSight backend server starting...")

	engine := newEngine(context.Background(), config.Cfg)

	financialService := services.NewFinancialService(
		processors.NewLedgerProcessor(),
		processors.NewAggregator(),
		processors.NewProfiler(),
		engine,
	)
	reportService := services.NewReportService(config.Cfg.ReportTTL)

	uploadHandler := handlers.NewUploadHandler(financialService, reportService, config.Cfg.MaxUploadSizeBytes)
	analysisHandler := handlers.NewAnalysisHandler(financialService)
	reportHandler := handlers.NewReportHandler(financialService, reportService)

	limiter := rate.NewLimiter(rate.Limit(config.Cfg.RateLimitRPS), config.Cfg.RateLimitBurst)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(handlers.ContextualLoggerMiddleware)
	r.Use(proxyHeadersMiddleware)
	r.Use(handlers.CORSMiddleware(config.Cfg.AllowedOrigins))
	r.Use(handlers.RateLimitMiddleware(limiter))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "FinSight Backend is running"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/upload", uploadHandler.HandleUpload)
		r.Post("/profile", uploadHandler.HandleProfile)
		r.Post("/analyze", analysisHandler.HandleAnalyze)
		r.Post("/translate", analysisHandler.HandleTranslate)

		r.Get("/reports", reportHandler.HandleListReports)
		r.Get("/reports/{id}", reportHandler.HandleGetReport)
		r.Get("/reports/{id}/download", reportHandler.HandleDownloadReport)
		r.Delete("/reports/{id}", reportHandler.HandleDeleteReport)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	// LLM calls run inside upload requests, so the write timeout leaves room for them.
	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15*time.Second + 2*config.Cfg.LLMTimeout,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		stdlog.Fatalf("Failed to start server: %v", err)
	}
}
