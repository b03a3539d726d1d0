package pbisync

import (
	"net/http"
	"strconv"

	"github.com/airfinance/finbi_backend/models"
	"github.com/gin-gonic/gin"
)

// SyncHandler triggers a sync for the :target path param. The outcome object
// is the response contract, so the status is 200 even on a failed sync.
func SyncHandler(syncer *Syncer) gin.HandlerFunc {
	return func(c *gin.Context) {
		target := c.Param("target")
		outcome := syncer.Sync(c.Request.Context(), target)
		c.JSON(http.StatusOK, outcome)
	}
}

// SyncRunsHandler lists recent sync runs, newest first.
func SyncRunsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		runs, err := models.ListSyncRuns(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"runs": runs})
	}
}
