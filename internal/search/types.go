package search

import (
	"sort"

	internalErrors "github.com/gcbaptista/recipe-search/internal/errors"
)

// Strategy selects how candidates are scored and ordered.
type Strategy string

const (
	// StrategyNormal ranks by accumulated section weight, highest first.
	StrategyNormal Strategy = "normal"
	// StrategySimple ranks by ingredients x directions, lowest first.
	StrategySimple Strategy = "simple"
	// StrategyHealthy ranks by distance to ideal nutrition, lowest first.
	StrategyHealthy Strategy = "healthy"
)

// ParseStrategy maps a strategy name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch s := Strategy(name); s {
	case StrategyNormal, StrategySimple, StrategyHealthy:
		return s, nil
	default:
		return "", internalErrors.NewUnknownStrategyError(name)
	}
}

// Descending reports whether higher scores rank first.
func (s Strategy) Descending() bool {
	return s == StrategyNormal
}

// CandidateSet is the set of document ids matching every query word.
type CandidateSet map[int]struct{}

// IDs returns the candidate ids in ascending order.
func (c CandidateSet) IDs() []int {
	ids := make([]int, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// ScoreMap holds the score of each ranked document. It is built per search call.
type ScoreMap map[int]float64
