package evaluator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultTimeout bounds a single evaluator run.
const DefaultTimeout = 30 * time.Second

// Config tunes an Extractor.
type Config struct {
	Timeout   time.Duration // per-run limit; 0 means DefaultTimeout
	CacheSize int           // evaluated texts to remember; 0 disables caching
	TempDir   string        // parent of per-run working dirs; "" means os.TempDir()
}

// Extractor turns sanitized descriptor text into a Mapping by running the
// evaluator in an isolated temporary directory. Safe for concurrent use;
// evaluator runs are serialized through a single slot.
type Extractor struct {
	evaluator Evaluator
	slot      *Slot
	cache     *lru.Cache[string, *Mapping]
	timeout   time.Duration
	tempDir   string
	logger    *slog.Logger
}

// NewExtractor creates an Extractor around ev.
func NewExtractor(ev Evaluator, cfg Config, logger *slog.Logger) (*Extractor, error) {
	x := &Extractor{
		evaluator: ev,
		slot:      NewSlot(1),
		timeout:   cfg.Timeout,
		tempDir:   cfg.TempDir,
		logger:    logger.With("component", "config-extractor"),
	}
	if x.timeout <= 0 {
		x.timeout = DefaultTimeout
	}
	if cfg.CacheSize > 0 {
		c, err := lru.New[string, *Mapping](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("create evaluation cache: %w", err)
		}
		x.cache = c
	}
	return x, nil
}

// Extract evaluates text and returns the resulting Mapping. Evaluator failures
// are returned as *ConfigEvaluationError; other errors are infrastructure
// failures (temp dir, process launch, cancellation).
func (x *Extractor) Extract(ctx context.Context, text string) (*Mapping, error) {
	key := contentKey(text)
	if m, ok := x.cached(key); ok {
		x.logger.Debug("evaluation cache hit", "key", key[:12])
		return m, nil
	}

	if !x.slot.Acquire(ctx) {
		return nil, fmt.Errorf("wait for evaluator: %w", ctx.Err())
	}
	defer x.slot.Release()

	// Another caller may have evaluated the same text while we waited.
	if m, ok := x.cached(key); ok {
		return m, nil
	}

	m, err := x.run(ctx, text)
	if err != nil {
		return nil, err
	}
	if x.cache != nil {
		x.cache.Add(key, m)
	}
	return m, nil
}

func (x *Extractor) run(ctx context.Context, text string) (*Mapping, error) {
	dir, err := os.MkdirTemp(x.tempDir, "nfconfig")
	if err != nil {
		return nil, fmt.Errorf("create evaluator dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			x.logger.Warn("remove evaluator dir", "dir", dir, "error", err)
		}
	}()

	if err := os.WriteFile(filepath.Join(dir, DescriptorFileName), []byte(text), 0o600); err != nil {
		return nil, fmt.Errorf("write descriptor: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	start := time.Now()
	out, err := x.evaluator.Evaluate(runCtx, dir)
	elapsed := time.Since(start)

	if ctx.Err() != nil {
		return nil, fmt.Errorf("evaluate config: %w", ctx.Err())
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		x.logger.Warn("evaluator timed out", "timeout", x.timeout)
		return nil, &ConfigEvaluationError{ExitCode: -1, TimedOut: true, Timeout: x.timeout}
	}
	if err != nil {
		var cee *ConfigEvaluationError
		if errors.As(err, &cee) {
			x.logger.Warn("evaluator failed", "exit_code", cee.ExitCode, "duration", elapsed.String())
			return nil, err
		}
		return nil, fmt.Errorf("evaluate config: %w", err)
	}

	m, err := ParseProperties(out)
	if err != nil {
		return nil, &ConfigEvaluationError{Stdout: string(out), Err: err}
	}
	x.logger.Debug("config evaluated", "keys", m.Len(), "duration", elapsed.String())
	return m, nil
}

func (x *Extractor) cached(key string) (*Mapping, bool) {
	if x.cache == nil {
		return nil, false
	}
	return x.cache.Get(key)
}

func contentKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
