package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gcbaptista/recipe-search/index"
	"github.com/gcbaptista/recipe-search/internal/indexing"
	"github.com/gcbaptista/recipe-search/internal/persistence"
	"github.com/gcbaptista/recipe-search/store"
)

// loadInstance reads the corpus and pairs it with an index. A cached index is
// reused only when useCache is set and it was built from the same corpus;
// otherwise a fresh index is built and written to the cache.
func (e *Engine) loadInstance(ctx context.Context, useCache bool) (*instance, error) {
	recipes, err := store.LoadRecipes(e.cfg.Corpus.Path)
	if err != nil {
		return nil, err
	}

	if useCache && !e.cfg.Index.DisableCache {
		if invIndex, ok := e.loadCachedIndex(recipes); ok {
			e.metrics.ObserveIndex(SourceCache, invIndex.DocumentCount(), 0)
			return e.newInstance(recipes, invIndex, SourceCache)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	startTime := time.Now()
	invIndex := indexing.Build(recipes.All(), recipes.Digest())
	took := time.Since(startTime)
	e.metrics.ObserveIndex(SourceBuilt, invIndex.DocumentCount(), took)
	e.logger.Info("built inverted index",
		"documents", invIndex.DocumentCount(),
		"duration", took,
		"corpus", e.cfg.Corpus.Path)

	if !e.cfg.Index.DisableCache {
		if err := e.saveIndex(invIndex); err != nil {
			e.logger.Warn("failed to save index cache, continuing with in-memory index", "error", err)
		}
	}

	return e.newInstance(recipes, invIndex, SourceBuilt)
}

// loadCachedIndex returns the cached index if it matches the corpus.
func (e *Engine) loadCachedIndex(recipes *store.RecipeStore) (*index.InvertedIndex, bool) {
	path := e.cfg.IndexCachePath()

	invIndex := &index.InvertedIndex{}
	if err := persistence.LoadGob(path, invIndex); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			e.logger.Info("no index cache found, building", "path", path)
		} else {
			e.logger.Warn("index cache unreadable, rebuilding", "path", path, "error", err)
		}
		return nil, false
	}

	if !invIndex.Matches(recipes.Len(), recipes.Digest()) {
		e.logger.Info("index cache is stale, rebuilding",
			"path", path,
			"cached_documents", invIndex.DocumentCount(),
			"corpus_documents", recipes.Len())
		return nil, false
	}

	e.logger.Info("loaded index from cache", "path", path, "documents", invIndex.DocumentCount())
	return invIndex, true
}

func (e *Engine) saveIndex(invIndex *index.InvertedIndex) error {
	if err := os.MkdirAll(e.cfg.Index.DataDir, dataDirPerm); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", e.cfg.Index.DataDir, err)
	}
	path := e.cfg.IndexCachePath()
	if err := persistence.SaveGob(path, invIndex); err != nil {
		return fmt.Errorf("failed to save inverted index: %w", err)
	}
	e.logger.Debug("saved index cache", "path", path)
	return nil
}
