package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/recipe-search/model"
	"github.com/gcbaptista/recipe-search/services"
)

// DefaultStrategy is used when a search request names no strategy.
const DefaultStrategy = "normal"

// SearchRequest defines the structure for search queries.
type SearchRequest struct {
	Query    string `json:"query"`
	Strategy string `json:"strategy"`
}

// SearchHit is a ranked recipe as returned by the API.
type SearchHit struct {
	DocumentID int     `json:"document_id"`
	Score      float64 `json:"score"`
	Title      *string `json:"title,omitempty"`
}

// SearchResponse is the body of a successful search.
type SearchResponse struct {
	QueryID  string      `json:"query_id"`
	Strategy string      `json:"strategy"`
	Tokens   []string    `json:"tokens"`
	Hits     []SearchHit `json:"hits"`
	Total    int         `json:"total"`
	Took     int64       `json:"took"`
	Cached   bool        `json:"cached"`
}

// SearchHandler handles search requests.
// Request Body: SearchRequest
func (api *API) SearchHandler(c *gin.Context) {
	startTime := time.Now()

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateSearchRequest(&req); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	results, err := api.engine.Search(services.SearchQuery{
		QueryString: req.Query,
		Strategy:    req.Strategy,
	})
	if err != nil {
		if !isCallerError(err, searchCallerErrors) {
			api.logger.Error("search failed", "query", req.Query, "strategy", req.Strategy, "error", err)
		}
		SendSearchError(c, err)
		return
	}

	hits := make([]SearchHit, len(results.Hits))
	for i, hit := range results.Hits {
		hits[i] = SearchHit{DocumentID: hit.DocumentID, Score: hit.Score}
		if recipe, err := api.engine.Recipe(hit.DocumentID); err == nil {
			hits[i].Title = recipe.Title
		}
	}

	api.analytics.TrackSearchEvent(model.SearchEvent{
		Query:        req.Query,
		Strategy:     results.Strategy,
		ResultCount:  len(hits),
		ResponseTime: time.Since(startTime),
	})

	c.JSON(http.StatusOK, SearchResponse{
		QueryID:  results.QueryId,
		Strategy: results.Strategy,
		Tokens:   results.Tokens,
		Hits:     hits,
		Total:    results.Total,
		Took:     results.Took,
		Cached:   results.Cached,
	})
}

// GetRecipeHandler returns a single recipe by document id
func (api *API) GetRecipeHandler(c *gin.Context) {
	docID, result := ValidateDocumentID(c.Param("id"))
	if result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	recipe, err := api.engine.Recipe(docID)
	if err != nil {
		if !sendMappedError(c, err, recipeCallerErrors) {
			SendServerError(c, ErrorCodeInternalError, "Get recipe", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"document_id": docID,
		"recipe":      recipe,
	})
}
