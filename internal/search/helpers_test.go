package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/recipe-search/internal/indexing"
	testutil "github.com/gcbaptista/recipe-search/internal/testing"
	"github.com/gcbaptista/recipe-search/internal/tokenizer"
	"github.com/gcbaptista/recipe-search/model"
	"github.com/gcbaptista/recipe-search/store"
)

// setupTestSearchService builds a search service over the given corpus
// (the shared fixture when recipes is nil) with English stop words.
func setupTestSearchService(t *testing.T, recipes []model.Recipe) *Service {
	t.Helper()
	if recipes == nil {
		recipes = testutil.Recipes()
	}
	rs := store.NewRecipeStore(recipes, "")
	ii := indexing.Build(rs.All(), rs.Digest())

	svc, err := NewService(ii, rs, tokenizer.EnglishStopWords(), Options{})
	require.NoError(t, err, "Failed to create search service")
	return svc
}
