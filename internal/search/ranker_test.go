package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gcbaptista/recipe-search/internal/indexing"
	testutil "github.com/gcbaptista/recipe-search/internal/testing"
	"github.com/gcbaptista/recipe-search/model"
	"github.com/gcbaptista/recipe-search/store"
)

func candidates(ids ...int) CandidateSet {
	c := make(CandidateSet, len(ids))
	for _, id := range ids {
		c[id] = struct{}{}
	}
	return c
}

func TestRelevanceRanker(t *testing.T) {
	ii := indexing.Build(testutil.Recipes(), "")
	ranker := NewRelevanceRanker(ii)

	tests := []struct {
		name       string
		candidates CandidateSet
		query      []string
		want       ScoreMap
	}{
		{
			name:       "title plus directions",
			candidates: candidates(0, 5),
			query:      []string{"apple"},
			want:       ScoreMap{0: 9, 5: 10},
		},
		{
			name:       "every section contributes",
			candidates: candidates(1, 2),
			query:      []string{"banana", "cheese"},
			want:       ScoreMap{1: 24, 2: 12},
		},
		{
			name:       "repeated tokens count twice",
			candidates: candidates(0, 5),
			query:      []string{"apple", "apple"},
			want:       ScoreMap{0: 18, 5: 20},
		},
		{
			name:       "documents without weight are absent",
			candidates: candidates(0, 4),
			query:      []string{"fish"},
			want:       ScoreMap{4: 15},
		},
		{
			name:       "no candidates",
			candidates: candidates(),
			query:      []string{"apple"},
			want:       ScoreMap{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ranker.Rank(tt.candidates, tt.query))
		})
	}
}

func TestRelevanceRanker_SectionContract(t *testing.T) {
	recipes := make([]model.Recipe, 64)
	recipes[63] = model.Recipe{
		Title:       testutil.Str("Apple Tart"),
		Ingredients: []string{"1 apple", "butter"},
		Directions:  []string{"Slice the apple thinly."},
	}
	ii := indexing.Build(recipes, "")

	scores := NewRelevanceRanker(ii).Rank(candidates(63), []string{"apple"})
	assert.Equal(t, ScoreMap{63: 8 + 2 + 1}, scores)
}

func TestSimplicityRanker(t *testing.T) {
	recipes := testutil.Recipes()
	recipes = append(recipes, model.Recipe{Title: testutil.Str("Just a title")})
	ranker := NewSimplicityRanker(store.NewRecipeStore(recipes, ""))

	scores := ranker.Rank(candidates(0, 1, 2, 3, 6), nil)
	assert.Equal(t, ScoreMap{
		0: 3 * 2,
		1: 5 * 3,
		2: 4 * 5,
		3: 2 * 1,
		6: 0, // missing sections count as zero entries
	}, scores)

	hits := TopN(scores, 10, false)
	ids := make([]int, len(hits))
	for i, h := range hits {
		ids[i] = h.DocumentID
	}
	assert.Equal(t, []int{6, 3, 0, 1, 2}, ids, "15 ranks above 20 in ascending order")
}

func TestHealthinessRanker(t *testing.T) {
	recipes := testutil.Recipes()
	recipes = append(recipes,
		model.Recipe{Calories: testutil.Num(1020), Protein: testutil.Num(36), Fat: testutil.Num(300)},
		model.Recipe{Calories: testutil.Num(0), Protein: testutil.Num(0), Fat: testutil.Num(0)},
		model.Recipe{Calories: testutil.Num(500), Protein: testutil.Num(20)},
	)
	ranker := NewHealthinessRanker(store.NewRecipeStore(recipes, ""), 0)

	scores := ranker.Rank(candidates(0, 4, 5, 6, 7, 8), nil)

	assert.NotContains(t, scores, 4, "recipes without nutrition are skipped")
	assert.NotContains(t, scores, 8, "recipes missing one value are skipped")

	assert.InDelta(t, servingCost(420, 4, 18, 1), scores[0], 1e-9)
	assert.InDelta(t, 0.0, scores[5], 1e-9, "exactly one ideal serving")
	assert.InDelta(t, 0.0, scores[6], 1e-9, "exactly two ideal servings")
	assert.InDelta(t, 7.0, scores[7], 1e-9, "zero is a present value")
}

func TestServingCost(t *testing.T) {
	// calories 1020, protein 36, fat 300: cost falls to 0 at n=2 and rises at n=3.
	assert.InDelta(t, 7.0, servingCost(1020, 36, 300, 1), 1e-9)
	assert.InDelta(t, 0.0, servingCost(1020, 36, 300, 2), 1e-9)
	assert.InDelta(t, 7.0, servingCost(1020, 36, 300, 3), 1e-9)
}

func TestBestServingCost_GreedyStop(t *testing.T) {
	costs := func(values map[int]float64, fallback float64) func(int) float64 {
		return func(n int) float64 {
			if v, ok := values[n]; ok {
				return v
			}
			return fallback
		}
	}

	tests := []struct {
		name          string
		cost          func(int) float64
		maxMultiplier int
		want          float64
	}{
		{
			name:          "stops at first increase even if a later n is lower",
			cost:          costs(map[int]float64{1: 5, 2: 3, 3: 4, 4: 1}, 0),
			maxMultiplier: 99,
			want:          3,
		},
		{
			name:          "equal cost is not an improvement",
			cost:          costs(map[int]float64{1: 5, 2: 5, 3: 1}, 0),
			maxMultiplier: 99,
			want:          5,
		},
		{
			name:          "ceiling reached keeps best so far",
			cost:          func(n int) float64 { return 100 - float64(n) },
			maxMultiplier: 99,
			want:          1,
		},
		{
			name:          "small ceiling",
			cost:          func(n int) float64 { return 100 - float64(n) },
			maxMultiplier: 5,
			want:          95,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bestServingCost(tt.cost, tt.maxMultiplier))
		})
	}
}
