package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/recipe-search/config"
	"github.com/gcbaptista/recipe-search/index"
	internalErrors "github.com/gcbaptista/recipe-search/internal/errors"
	"github.com/gcbaptista/recipe-search/internal/metrics"
	"github.com/gcbaptista/recipe-search/internal/persistence"
	testutil "github.com/gcbaptista/recipe-search/internal/testing"
	"github.com/gcbaptista/recipe-search/model"
	"github.com/gcbaptista/recipe-search/services"
)

func newTestConfig(t *testing.T, recipes []model.Recipe) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Corpus.Path = testutil.WriteCorpus(t, dir, recipes)
	cfg.Index.DataDir = filepath.Join(dir, "data")
	cfg.ApplyDefaults()
	return cfg
}

func newTestEngine(t *testing.T, cfg *config.Config, m *metrics.Metrics) *Engine {
	t.Helper()
	eng, err := New(context.Background(), cfg, m)
	require.NoError(t, err)
	t.Cleanup(eng.Close)
	return eng
}

func hitIDs(result services.SearchResult) []int {
	ids := make([]int, len(result.Hits))
	for i, hit := range result.Hits {
		ids[i] = hit.DocumentID
	}
	return ids
}

func TestNew_BuildsThenReusesCache(t *testing.T) {
	cfg := newTestConfig(t, testutil.Recipes())

	m := metrics.New()
	first := newTestEngine(t, cfg, m)
	stats := first.Stats()
	assert.Equal(t, SourceBuilt, stats.Source)
	assert.Equal(t, 6, stats.DocumentCount)
	assert.FileExists(t, cfg.IndexCachePath())

	second := newTestEngine(t, cfg, m)
	cached := second.Stats()
	assert.Equal(t, SourceCache, cached.Source)
	assert.Equal(t, stats.CorpusDigest, cached.CorpusDigest)
	assert.Equal(t, stats.VocabularySizes, cached.VocabularySizes)
	assert.True(t, stats.BuiltAt.Equal(cached.BuiltAt))

	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.IndexBuildsTotal.WithLabelValues(SourceBuilt)))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.IndexBuildsTotal.WithLabelValues(SourceCache)))
	assert.Equal(t, 6.0, promtestutil.ToFloat64(m.IndexDocuments))
}

func TestNew_StaleCacheIsRebuilt(t *testing.T) {
	cfg := newTestConfig(t, testutil.Recipes())

	stale := index.New(nil, 6, "some-other-corpus")
	require.NoError(t, persistence.SaveGob(cfg.IndexCachePath(), stale))

	eng := newTestEngine(t, cfg, nil)
	assert.Equal(t, SourceBuilt, eng.Stats().Source)
	assert.NotEqual(t, "some-other-corpus", eng.Stats().CorpusDigest)

	reloaded := &index.InvertedIndex{}
	require.NoError(t, persistence.LoadGob(cfg.IndexCachePath(), reloaded))
	assert.Equal(t, eng.Stats().CorpusDigest, reloaded.CorpusDigest(), "stale cache must be overwritten")
}

func TestNew_CorruptCacheIsRebuilt(t *testing.T) {
	cfg := newTestConfig(t, testutil.Recipes())
	require.NoError(t, os.MkdirAll(cfg.Index.DataDir, 0o755))
	require.NoError(t, os.WriteFile(cfg.IndexCachePath(), []byte("garbage"), 0o600))

	eng := newTestEngine(t, cfg, nil)
	assert.Equal(t, SourceBuilt, eng.Stats().Source)
}

func TestNew_DisableCache(t *testing.T) {
	cfg := newTestConfig(t, testutil.Recipes())
	cfg.Index.DisableCache = true

	eng := newTestEngine(t, cfg, nil)
	assert.Equal(t, SourceBuilt, eng.Stats().Source)
	assert.NoFileExists(t, cfg.IndexCachePath())
}

func TestNew_Errors(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := New(context.Background(), nil, nil)
		assert.Error(t, err)
	})

	t.Run("missing corpus", func(t *testing.T) {
		cfg := newTestConfig(t, testutil.Recipes())
		cfg.Corpus.Path = filepath.Join(t.TempDir(), "absent.json")
		_, err := New(context.Background(), cfg, nil)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("malformed corpus", func(t *testing.T) {
		cfg := newTestConfig(t, testutil.Recipes())
		require.NoError(t, os.WriteFile(cfg.Corpus.Path, []byte(`[{"title": `), 0o600))
		_, err := New(context.Background(), cfg, nil)
		assert.Error(t, err)
	})

	t.Run("missing stop words file", func(t *testing.T) {
		cfg := newTestConfig(t, testutil.Recipes())
		cfg.Search.StopWordsFile = filepath.Join(t.TempDir(), "absent.txt")
		_, err := New(context.Background(), cfg, nil)
		assert.Error(t, err)
	})
}

func TestEngine_Search(t *testing.T) {
	m := metrics.New()
	eng := newTestEngine(t, newTestConfig(t, testutil.Recipes()), m)

	result, err := eng.Search(services.SearchQuery{QueryString: "Apple", Strategy: "normal"})
	require.NoError(t, err)
	assert.Equal(t, []int{5, 0}, hitIDs(result))
	assert.Equal(t, []float64{10, 9}, []float64{result.Hits[0].Score, result.Hits[1].Score})
	assert.False(t, result.Cached)

	again, err := eng.Search(services.SearchQuery{QueryString: "apple", Strategy: "normal"})
	require.NoError(t, err)
	assert.True(t, again.Cached, "same filtered tokens are served from the query cache")
	hits, misses := eng.CacheStats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)

	result, err = eng.Search(services.SearchQuery{QueryString: "durian", Strategy: "simple"})
	require.NoError(t, err)
	assert.Empty(t, result.Hits)

	_, err = eng.Search(services.SearchQuery{QueryString: "the and", Strategy: "healthy"})
	assert.True(t, errors.Is(err, internalErrors.ErrEmptyQuery))

	_, err = eng.Search(services.SearchQuery{QueryString: "apple", Strategy: "fancy"})
	assert.True(t, errors.Is(err, internalErrors.ErrUnknownStrategy))

	assert.Equal(t, 2.0, promtestutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues("normal", metrics.ResultHit)))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues("simple", metrics.ResultEmpty)))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues("healthy", metrics.ResultError)))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.SearchQueriesTotal.WithLabelValues("invalid", metrics.ResultError)))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.CacheHitsTotal))
}

func TestEngine_Recipe(t *testing.T) {
	eng := newTestEngine(t, newTestConfig(t, testutil.Recipes()), nil)

	recipe, err := eng.Recipe(4)
	require.NoError(t, err)
	title, ok := recipe.GetTitle()
	require.True(t, ok)
	assert.Equal(t, "Fish and Chips", title)

	for _, id := range []int{-1, 6} {
		_, err := eng.Recipe(id)
		assert.True(t, errors.Is(err, internalErrors.ErrInvalidDocumentID), "id %d", id)
	}
}

func TestEngine_StopWordsFile(t *testing.T) {
	cfg := newTestConfig(t, testutil.Recipes())
	path := filepath.Join(t.TempDir(), "stop.txt")
	require.NoError(t, os.WriteFile(path, []byte("# custom list\napple\n"), 0o600))
	cfg.Search.StopWordsFile = path

	eng := newTestEngine(t, cfg, nil)

	_, err := eng.Search(services.SearchQuery{QueryString: "apple", Strategy: "normal"})
	assert.True(t, errors.Is(err, internalErrors.ErrEmptyQuery))

	result, err := eng.Search(services.SearchQuery{QueryString: "the pie", Strategy: "normal"})
	require.NoError(t, err)
	assert.Equal(t, []string{"the", "pie"}, result.Tokens, "the custom list replaces the English one")
	assert.Equal(t, []int{1, 0}, hitIDs(result))
}

func TestEngine_RebuildSwapsIndex(t *testing.T) {
	recipes := testutil.Recipes()
	cfg := newTestConfig(t, recipes)
	eng := newTestEngine(t, cfg, nil)

	_, err := eng.Search(services.SearchQuery{QueryString: "durian", Strategy: "normal"})
	require.NoError(t, err)

	recipes = append(recipes, model.Recipe{
		Title:       testutil.Str("Durian Smoothie"),
		Ingredients: []string{"durian", "milk"},
		Directions:  []string{"Blend."},
	})
	testutil.WriteCorpus(t, filepath.Dir(cfg.Corpus.Path), recipes)

	stats, err := eng.Rebuild(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, stats.DocumentCount)
	assert.Equal(t, SourceBuilt, stats.Source)
	assert.Equal(t, stats, eng.Stats())

	result, err := eng.Search(services.SearchQuery{QueryString: "durian", Strategy: "normal"})
	require.NoError(t, err)
	assert.Equal(t, []int{6}, hitIDs(result))
	assert.False(t, result.Cached, "a rebuilt index starts with an empty query cache")
}

func TestEngine_RebuildFailureKeepsCurrentIndex(t *testing.T) {
	cfg := newTestConfig(t, testutil.Recipes())
	eng := newTestEngine(t, cfg, nil)
	before := eng.Stats()

	require.NoError(t, os.WriteFile(cfg.Corpus.Path, []byte("not json"), 0o600))
	_, err := eng.Rebuild(context.Background())
	require.Error(t, err)
	assert.Equal(t, before, eng.Stats())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = eng.Rebuild(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}
