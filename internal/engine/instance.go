package engine

import (
	"fmt"

	"github.com/gcbaptista/recipe-search/index"
	"github.com/gcbaptista/recipe-search/internal/search"
	"github.com/gcbaptista/recipe-search/services"
	"github.com/gcbaptista/recipe-search/store"
)

// Index sources reported in stats and metrics.
const (
	SourceCache = "cache"
	SourceBuilt = "built"
)

// instance is one published corpus together with its index and searcher.
// It is never modified after publication; a rebuild publishes a new instance.
type instance struct {
	recipes       *store.RecipeStore
	invertedIndex *index.InvertedIndex
	searcher      *search.CachedService
	source        string
}

func (e *Engine) newInstance(recipes *store.RecipeStore, invIndex *index.InvertedIndex, source string) (*instance, error) {
	searchService, err := search.NewService(invIndex, recipes, e.stopWords, search.Options{
		ResultLimit:          e.cfg.Search.ResultLimit,
		MaxServingMultiplier: e.cfg.Search.MaxServingMultiplier,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create search service: %w", err)
	}

	return &instance{
		recipes:       recipes,
		invertedIndex: invIndex,
		searcher:      search.NewCachedService(searchService, e.cfg.Search.QueryCacheSize, e.metrics.ObserveCacheLookup),
		source:        source,
	}, nil
}

func (i *instance) stats() services.IndexStats {
	sizes := make(map[string]int, len(index.Sections))
	for section, size := range i.invertedIndex.VocabularySizes() {
		sizes[string(section)] = size
	}
	return services.IndexStats{
		DocumentCount:   i.invertedIndex.DocumentCount(),
		VocabularySizes: sizes,
		Source:          i.source,
		BuiltAt:         i.invertedIndex.BuiltAt(),
		CorpusDigest:    i.invertedIndex.CorpusDigest(),
	}
}
