package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetJobHandler handles requests to get job status by ID
func (api *API) GetJobHandler(c *gin.Context) {
	jobID := c.Param("jobId")

	job, err := api.engine.Job(jobID)
	if err != nil {
		if !sendMappedError(c, err, jobCallerErrors) {
			SendServerError(c, ErrorCodeInternalError, "Get job", err)
		}
		return
	}

	c.JSON(http.StatusOK, job)
}
