package services

import (
	"context"
	"time"

	"github.com/gcbaptista/recipe-search/model"
)

// HitResult is a single ranked recipe.
type HitResult struct {
	DocumentID int     `json:"document_id"`
	Score      float64 `json:"score"`
}

// SearchResult is the ordered top-N outcome of a search.
type SearchResult struct {
	Hits     []HitResult `json:"hits"`
	Total    int         `json:"total"`    // number of scored recipes before truncation
	Tokens   []string    `json:"tokens"`   // query tokens after stop word removal
	Strategy string      `json:"strategy"` // normal, simple or healthy
	Took     int64       `json:"took"`     // milliseconds
	QueryId  string      `json:"query_id"` // unique UUID for this search query
	Cached   bool        `json:"cached"`
}

type SearchQuery struct {
	QueryString string
	Strategy    string
}

// IndexStats describes the currently published index.
type IndexStats struct {
	DocumentCount   int            `json:"document_count"`
	VocabularySizes map[string]int `json:"vocabulary_sizes"`
	Source          string         `json:"source"` // "cache" or "built"
	BuiltAt         time.Time      `json:"built_at"`
	CorpusDigest    string         `json:"corpus_digest"`
}

// Searcher defines operations for querying the recipe index
type Searcher interface {
	Search(query SearchQuery) (SearchResult, error)
}

// RecipeProvider gives access to corpus records by document id
type RecipeProvider interface {
	Recipe(docID int) (model.Recipe, error)
}

// JobTracker schedules index rebuilds in the background and reports on them
type JobTracker interface {
	RebuildAsync(trigger string) (string, error)
	Job(jobID string) (*model.Job, error)
}

// Engine is everything the HTTP layer needs from the search engine
type Engine interface {
	Searcher
	RecipeProvider
	JobTracker
	Stats() IndexStats
	Rebuild(ctx context.Context) (IndexStats, error)
}
