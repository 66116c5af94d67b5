package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/termindex/api"
	"github.com/gcbaptista/termindex/config"
	"github.com/gcbaptista/termindex/internal/corpus"
	"github.com/gcbaptista/termindex/internal/engine"
	"github.com/gcbaptista/termindex/internal/logger"
	"github.com/gcbaptista/termindex/internal/metrics"
)

const version = "v1.0.0"

func main() {
	// Define command-line flags
	var (
		help       = flag.Bool("help", false, "Show help message")
		showVer    = flag.Bool("version", false, "Show version information")
		configPath = flag.String("config", "", "Path to a YAML settings file")
		port       = flag.Int("port", 0, "Port to run the server on (overrides settings)")
		vocabPath  = flag.String("vocab", "", "Vocabulary file to load into autocomplete at startup")
		corpusPath = flag.String("corpus", "", "JSON corpus to index at startup")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("termindex - TF-IDF term index and prefix autocomplete server\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nEnvironment:\n")
		fmt.Printf("  %s, %s, %s, %s\n", config.EnvPort, config.EnvLogLevel, config.EnvMaxSuggestions, config.EnvDataDir)
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                                  # Start server on default port 8080\n", os.Args[0])
		fmt.Printf("  %s --config termindex.yaml          # Load settings from a file\n", os.Args[0])
		fmt.Printf("  %s --vocab words.txt --corpus feed.json\n", os.Args[0])
		return
	}

	// Handle version flag
	if *showVer {
		fmt.Printf("termindex %s\n", version)
		return
	}

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load settings", "err", err)
	}
	if *port != 0 {
		settings.Server.Port = *port
		if problems := settings.Validate(); len(problems) > 0 {
			log.Fatal("invalid settings", "problems", problems)
		}
	}

	logger.SetLevel(settings.Log.Level)
	root := logger.NewWithConfig(os.Stderr, "termindex", log.GetLevel(), true, logger.ParseFormatter(settings.Log.Format))

	m := metrics.New()
	eng := engine.NewEngine(settings, m, root)
	defer eng.Close()

	preload(eng, settings, *vocabPath, *corpusPath, root)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(
		gin.Recovery(),
		api.RequestIDMiddleware(),
		api.LoggingMiddleware(root.WithPrefix("http")),
		api.CORSMiddleware(settings.Server.AllowedOrigins),
		api.RequestSizeLimitMiddleware(settings.Server.MaxBodyBytes),
	)
	if settings.Server.RateLimitRPS > 0 {
		router.Use(api.NewRateLimiter(settings.Server.RateLimitRPS, settings.Server.RateLimitBurst).Handler())
	}
	if settings.Server.Gzip {
		router.Use(gzip.Gzip(gzip.DefaultCompression))
	}
	api.SetupRoutes(router, eng, m)

	srv := &http.Server{
		Addr:         settings.Addr(),
		Handler:      router,
		ReadTimeout:  time.Duration(settings.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(settings.Server.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		root.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			root.Fatal("server error", "err", err)
		}
	}()

	<-quit
	root.Info("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(settings.Server.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		root.Error("error during shutdown", "err", err)
	}
	root.Info("server stopped")
}

// preload starts the startup jobs: the vocabulary (flag, else the dump in the
// data directory) and the corpus. Failures are logged and the server still starts.
func preload(eng *engine.Engine, settings *config.Settings, vocabPath, corpusPath string, l *log.Logger) {
	if vocabPath == "" {
		if dump := settings.VocabularyPath(); dump != "" {
			if _, err := os.Stat(dump); err == nil {
				vocabPath = dump
			}
		}
	}
	if vocabPath != "" {
		jobID, err := eng.LoadVocabularyFileAsync(vocabPath)
		if err != nil {
			l.Error("failed to start vocabulary load", "path", vocabPath, "err", err)
		} else {
			l.Info("loading vocabulary", "path", vocabPath, "job_id", jobID)
		}
	}

	if corpusPath == "" {
		return
	}
	file, err := os.Open(filepath.Clean(corpusPath))
	if err != nil {
		l.Error("failed to open corpus", "path", corpusPath, "err", err)
		return
	}
	defer func() {
		_ = file.Close()
	}()

	docs, err := corpus.LoadJSON(file)
	if err != nil {
		l.Error("failed to read corpus", "path", corpusPath, "err", err)
		return
	}
	jobID, err := eng.RebuildAsync(docs)
	if err != nil {
		l.Error("failed to start index build", "path", corpusPath, "err", err)
		return
	}
	l.Info("indexing corpus", "path", corpusPath, "documents", len(docs), "job_id", jobID)
}
