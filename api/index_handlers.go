package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetStatsHandler returns statistics for the published index
func (api *API) GetStatsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.engine.Stats())
}

// RebuildIndexHandler reloads the corpus and rebuilds the index.
// With ?async=true the rebuild runs as a background job and 202 Accepted is returned.
func (api *API) RebuildIndexHandler(c *gin.Context) {
	async, err := strconv.ParseBool(c.DefaultQuery("async", "false"))
	if err != nil {
		result := &ValidationResult{Valid: true}
		result.AddError("async", "async must be a boolean, got '"+c.Query("async")+"'")
		SendStructuredValidationError(c, result)
		return
	}

	if async {
		jobID, err := api.engine.RebuildAsync("api")
		if err != nil {
			SendServerError(c, ErrorCodeJobExecutionFailed, "Start rebuild job", err)
			return
		}
		c.JSON(http.StatusAccepted, gin.H{
			"status":  "accepted",
			"message": "Index rebuild started",
			"job_id":  jobID,
		})
		return
	}

	stats, err := api.engine.Rebuild(c.Request.Context())
	if err != nil {
		api.logger.Error("index rebuild failed", "error", err)
		SendServerError(c, ErrorCodeIndexingFailed, "Index rebuild", err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
