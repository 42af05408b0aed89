package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gcbaptista/recipe-search/config"
	"github.com/gcbaptista/recipe-search/internal/jobs"
	"github.com/gcbaptista/recipe-search/internal/logging"
	"github.com/gcbaptista/recipe-search/internal/metrics"
	"github.com/gcbaptista/recipe-search/internal/search"
	"github.com/gcbaptista/recipe-search/internal/tokenizer"
	"github.com/gcbaptista/recipe-search/model"
	"github.com/gcbaptista/recipe-search/services"
)

const dataDirPerm = 0755

// Engine owns the recipe corpus and its inverted index.
// It implements the services.Engine interface.
//
// Searches read the current instance without locking. Rebuilds are serialized
// and publish a complete new instance with a single atomic store.
type Engine struct {
	cfg       *config.Config
	metrics   *metrics.Metrics
	logger    *slog.Logger
	stopWords tokenizer.StopWords

	current    atomic.Pointer[instance]
	rebuildMu  sync.Mutex
	jobManager *jobs.Manager
}

// New loads the corpus, reuses or builds the index and publishes it.
// m may be nil.
func New(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	stopWords := tokenizer.EnglishStopWords()
	if cfg.Search.StopWordsFile != "" {
		loaded, err := tokenizer.LoadStopWords(cfg.Search.StopWordsFile)
		if err != nil {
			return nil, err
		}
		stopWords = loaded
	}

	logger := logging.WithComponent("engine")
	eng := &Engine{
		cfg:        cfg,
		metrics:    m,
		logger:     logger,
		stopWords:  stopWords,
		jobManager: jobs.NewManager(1, logger),
	}

	inst, err := eng.loadInstance(ctx, true)
	if err != nil {
		return nil, err
	}
	eng.current.Store(inst)
	eng.jobManager.Start()

	return eng, nil
}

// Close stops background jobs.
func (e *Engine) Close() {
	e.jobManager.Stop()
}

// Search runs a query against the current index.
func (e *Engine) Search(query services.SearchQuery) (services.SearchResult, error) {
	startTime := time.Now()
	result, err := e.current.Load().searcher.Search(query)
	e.metrics.ObserveSearch(strategyLabel(query.Strategy), outcome(result, err), time.Since(startTime))
	return result, err
}

// Recipe returns the record with the given document id.
func (e *Engine) Recipe(docID int) (model.Recipe, error) {
	return e.current.Load().recipes.Get(docID)
}

// Stats describes the current index.
func (e *Engine) Stats() services.IndexStats {
	return e.current.Load().stats()
}

// CacheStats returns query cache hits and misses of the current index.
func (e *Engine) CacheStats() (hits, misses int64) {
	return e.current.Load().searcher.Stats()
}

func strategyLabel(name string) string {
	if strategy, err := search.ParseStrategy(name); err == nil {
		return string(strategy)
	}
	return "invalid"
}

func outcome(result services.SearchResult, err error) string {
	switch {
	case err != nil:
		return metrics.ResultError
	case len(result.Hits) == 0:
		return metrics.ResultEmpty
	default:
		return metrics.ResultHit
	}
}
