package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/me/langparse/internal/config"
	"github.com/me/langparse/internal/evaluator"
	"github.com/me/langparse/internal/langparse"
	"github.com/me/langparse/internal/logging"
	"github.com/me/langparse/internal/nextflow"
	"github.com/me/langparse/internal/repo"
	"github.com/me/langparse/internal/server"
	"github.com/me/langparse/internal/store"
	"github.com/me/langparse/internal/wdl"
)

func main() {
	configFile := flag.String("config", os.Getenv("LANGPARSE_CONFIG"), "Path to YAML config file")
	envFile := flag.String("env-file", ".env", "Path to .env file (ignored when missing)")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	logFormat := flag.String("log-format", "", "Log format (text, json)")
	dbPath := flag.String("db", "", "Database path (default ~/.langparse/langparse.db)")
	workDir := flag.String("work-dir", "", "Directory for clones and evaluator runs")
	debug := flag.Bool("debug", false, "Shorthand for --log-level=debug")
	flag.Parse()

	cfg, err := config.Load(*configFile, *envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// Flags win over file and environment.
	overrides := map[*string]string{
		&cfg.Addr:      *addr,
		&cfg.LogLevel:  *logLevel,
		&cfg.LogFormat: *logFormat,
		&cfg.DBPath:    *dbPath,
		&cfg.WorkDir:   *workDir,
	}
	for dst, v := range overrides {
		if v != "" {
			*dst = v
		}
	}
	if *debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	// Resolve database path.
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot determine home directory: %v\n", err)
			os.Exit(1)
		}
		dir := filepath.Join(home, ".langparse")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "cannot create %s: %v\n", dir, err)
			os.Exit(1)
		}
		cfg.DBPath = filepath.Join(dir, "langparse.db")
	}

	st, err := store.NewSQLiteStore(cfg.DBPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.Migrate(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "migrate database: %v\n", err)
		os.Exit(1)
	}
	logger.Info("database ready", "path", cfg.DBPath)

	ev := evaluator.NewCommandEvaluator(cfg.NextflowCommand, nil, logger)
	extractor, err := evaluator.NewExtractor(ev, evaluator.Config{
		Timeout:   cfg.EvaluatorTimeout,
		CacheSize: cfg.CacheSize,
		TempDir:   cfg.WorkDir,
	}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create extractor: %v\n", err)
		os.Exit(1)
	}
	womtool := wdl.NewWomtool(cfg.WomtoolCommand, cfg.WomtoolTimeout, logger)

	svc := langparse.New(
		repo.NewGitCloner(cfg.WorkDir, logger),
		nextflow.NewResolver(extractor, logger),
		wdl.NewResolver(womtool, logger),
		logger,
		langparse.WithStore(st),
		langparse.WithCloneTimeout(cfg.CloneTimeout),
	)
	logger.Info("toolchain",
		"nextflow", strings.Join(cfg.NextflowCommand, " "),
		"womtool", strings.Join(cfg.WomtoolCommand, " "),
		"evaluator_timeout", cfg.EvaluatorTimeout.String(),
		"cache_size", cfg.CacheSize,
	)

	srv := server.New(cfg, svc, logger, server.WithStore(st))

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
