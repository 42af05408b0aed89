package search

import (
	"math"

	"github.com/gcbaptista/recipe-search/index"
	"github.com/gcbaptista/recipe-search/store"
)

// Ranker scores a candidate set. Rankers only read the index and the corpus.
type Ranker interface {
	Rank(candidates CandidateSet, query []string) ScoreMap
}

// RelevanceRanker sums the section weights of every query token for each candidate.
type RelevanceRanker struct {
	invertedIndex *index.InvertedIndex
}

// NewRelevanceRanker creates a RelevanceRanker.
func NewRelevanceRanker(invIndex *index.InvertedIndex) *RelevanceRanker {
	return &RelevanceRanker{invertedIndex: invIndex}
}

// Rank iterates query tokens with repeats, so a repeated word counts again.
// Documents without any recorded weight are left out of the result.
func (r *RelevanceRanker) Rank(candidates CandidateSet, query []string) ScoreMap {
	scores := make(ScoreMap)
	for _, word := range query {
		for _, s := range index.Sections {
			postings, ok := r.invertedIndex.Section(s)[word]
			if !ok {
				continue
			}
			for docID := range candidates {
				if w, ok := postings[docID]; ok {
					scores[docID] += float64(w)
				}
			}
		}
	}
	return scores
}

// SimplicityRanker scores a recipe by ingredient count times direction count.
type SimplicityRanker struct {
	recipes *store.RecipeStore
}

// NewSimplicityRanker creates a SimplicityRanker.
func NewSimplicityRanker(recipes *store.RecipeStore) *SimplicityRanker {
	return &SimplicityRanker{recipes: recipes}
}

// Rank treats a missing section as zero entries, so such recipes score 0.
func (r *SimplicityRanker) Rank(candidates CandidateSet, _ []string) ScoreMap {
	scores := make(ScoreMap, len(candidates))
	for docID := range candidates {
		recipe, err := r.recipes.Get(docID)
		if err != nil {
			continue
		}
		scores[docID] = float64(len(recipe.Ingredients) * len(recipe.Directions))
	}
	return scores
}

// Ideal nutrition of one serving.
const (
	idealCalories = 510.0
	idealProtein  = 18.0
	idealFat      = 150.0
)

// DefaultMaxServingMultiplier bounds the serving search.
const DefaultMaxServingMultiplier = 99

// HealthinessRanker scores a recipe by its distance to n ideal servings.
type HealthinessRanker struct {
	recipes       *store.RecipeStore
	maxMultiplier int
}

// NewHealthinessRanker creates a HealthinessRanker. A non-positive
// maxMultiplier falls back to DefaultMaxServingMultiplier.
func NewHealthinessRanker(recipes *store.RecipeStore, maxMultiplier int) *HealthinessRanker {
	if maxMultiplier <= 0 {
		maxMultiplier = DefaultMaxServingMultiplier
	}
	return &HealthinessRanker{recipes: recipes, maxMultiplier: maxMultiplier}
}

// Rank skips recipes missing calories, protein or fat.
func (r *HealthinessRanker) Rank(candidates CandidateSet, _ []string) ScoreMap {
	scores := make(ScoreMap, len(candidates))
	for docID := range candidates {
		recipe, err := r.recipes.Get(docID)
		if err != nil {
			continue
		}
		calories, protein, fat, ok := recipe.GetNutrition()
		if !ok {
			continue
		}
		scores[docID] = bestServingCost(func(n int) float64 {
			return servingCost(calories, protein, fat, n)
		}, r.maxMultiplier)
	}
	return scores
}

// servingCost is the weighted relative distance to n ideal servings.
func servingCost(calories, protein, fat float64, n int) float64 {
	servings := float64(n)
	return math.Abs(calories-idealCalories*servings)/idealCalories +
		2*math.Abs(protein-idealProtein*servings)/idealProtein +
		4*math.Abs(fat-idealFat*servings)/idealFat
}

// bestServingCost walks n = 1..maxMultiplier and stops at the first n whose
// cost does not improve on the previous one. This is a local minimum, not a
// scan of the whole range. Reaching the ceiling returns the best seen.
func bestServingCost(cost func(n int) float64, maxMultiplier int) float64 {
	best := math.Inf(1)
	for n := 1; n <= maxMultiplier; n++ {
		c := cost(n)
		if c >= best {
			break
		}
		best = c
	}
	return best
}
