package search

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/recipe-search/index"
	internalErrors "github.com/gcbaptista/recipe-search/internal/errors"
	"github.com/gcbaptista/recipe-search/internal/tokenizer"
	"github.com/gcbaptista/recipe-search/services"
	"github.com/gcbaptista/recipe-search/store"
)

// Options tunes a search Service.
type Options struct {
	ResultLimit          int
	MaxServingMultiplier int
}

// Service implements tokenize, resolve, rank and select over one index snapshot.
// It fulfills the services.Searcher interface and is safe for concurrent use.
type Service struct {
	invertedIndex *index.InvertedIndex
	recipes       *store.RecipeStore
	stopWords     tokenizer.StopWords
	resultLimit   int
	rankers       map[Strategy]Ranker
}

// NewService creates a new search Service.
func NewService(invIndex *index.InvertedIndex, recipes *store.RecipeStore, stopWords tokenizer.StopWords, opts Options) (*Service, error) {
	if invIndex == nil {
		return nil, fmt.Errorf("inverted index cannot be nil")
	}
	if recipes == nil {
		return nil, fmt.Errorf("recipe store cannot be nil")
	}
	if invIndex.DocumentCount() != recipes.Len() {
		return nil, fmt.Errorf("inverted index covers %d recipes but the corpus has %d", invIndex.DocumentCount(), recipes.Len())
	}

	limit := opts.ResultLimit
	if limit <= 0 {
		limit = DefaultResultLimit
	}

	return &Service{
		invertedIndex: invIndex,
		recipes:       recipes,
		stopWords:     stopWords,
		resultLimit:   limit,
		rankers: map[Strategy]Ranker{
			StrategyNormal:  NewRelevanceRanker(invIndex),
			StrategySimple:  NewSimplicityRanker(recipes),
			StrategyHealthy: NewHealthinessRanker(recipes, opts.MaxServingMultiplier),
		},
	}, nil
}

// Tokens tokenizes query text and removes stop words.
func (s *Service) Tokens(queryText string) []string {
	return tokenizer.RemoveStopWords(tokenizer.Tokenize(queryText), s.stopWords)
}

// Rank resolves the tokens, scores the candidates with the strategy's ranker and
// returns the top hits together with the number of scored recipes.
func (s *Service) Rank(tokens []string, strategy Strategy) ([]services.HitResult, int, error) {
	ranker, ok := s.rankers[strategy]
	if !ok {
		return nil, 0, internalErrors.NewUnknownStrategyError(string(strategy))
	}

	candidates, err := Resolve(s.invertedIndex, tokens)
	if err != nil {
		return nil, 0, err
	}
	for docID := range candidates {
		if err := s.recipes.CheckID(docID); err != nil {
			return nil, 0, err
		}
	}

	scores := ranker.Rank(candidates, tokens)
	return TopN(scores, s.resultLimit, strategy.Descending()), len(scores), nil
}

// Search performs a search operation based on the query.
func (s *Service) Search(query services.SearchQuery) (services.SearchResult, error) {
	startTime := time.Now()

	strategy, err := ParseStrategy(query.Strategy)
	if err != nil {
		return services.SearchResult{}, err
	}

	tokens := s.Tokens(query.QueryString)
	hits, total, err := s.Rank(tokens, strategy)
	if err != nil {
		return services.SearchResult{}, err
	}

	return services.SearchResult{
		Hits:     hits,
		Total:    total,
		Tokens:   tokens,
		Strategy: string(strategy),
		Took:     time.Since(startTime).Milliseconds(),
		QueryId:  uuid.New().String(),
	}, nil
}
