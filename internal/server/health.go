package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) healthHandler(c *gin.Context) {
	ctx := c.Request.Context()

	completion := gin.H{"status": "online"}
	if err := s.llm.Healthy(ctx); err != nil {
		completion = gin.H{"status": "offline", "error": err.Error()}
	}

	storeCount, storeErr := s.repo.Count(ctx)
	store := gin.H{"receipts": storeCount}
	if storeErr != nil {
		store = gin.H{"error": storeErr.Error()}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"completion": completion,
		"vector": gin.H{
			"backend": s.cfg.VectorBackend,
			"entries": s.index.Count(),
		},
		"store": store,
	})
}
