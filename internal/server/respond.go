package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerlocal/ledgerd/internal/common"
)

// statusFor maps an error kind to an HTTP status.
func statusFor(kind common.Kind) int {
	switch kind {
	case common.KindValidation:
		return http.StatusBadRequest
	case common.KindNotFound:
		return http.StatusNotFound
	case common.KindExtractionFailed:
		return http.StatusUnprocessableEntity
	case common.KindUpstreamTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	kind := common.KindOf(err)
	c.JSON(statusFor(kind), gin.H{
		"error": gin.H{
			"kind":    string(kind),
			"message": common.MessageOf(err),
		},
	})
}

func respondErrorWith(c *gin.Context, err error, extra gin.H) {
	kind := common.KindOf(err)
	body := gin.H{
		"kind":    string(kind),
		"message": common.MessageOf(err),
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(statusFor(kind), gin.H{"error": body})
}
