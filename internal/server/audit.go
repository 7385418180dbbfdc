package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerlocal/ledgerd/internal/entity"
)

// auditHandler lists receipts with at least one flag, grouped by flag
// kind. A receipt with several flags appears in each matching group.
func (s *Server) auditHandler(c *gin.Context) {
	flagged := true
	recs, err := s.repo.List(c.Request.Context(), entity.ListFilter{Flagged: &flagged})
	if err != nil {
		respondError(c, err)
		return
	}

	groups := map[string][]receiptJSON{
		"duplicate":   {},
		"suspicious":  {},
		"missing_vat": {},
		"math_error":  {},
	}
	for _, r := range recs {
		j := toReceiptJSON(r)
		if r.Flags.Duplicate {
			groups["duplicate"] = append(groups["duplicate"], j)
		}
		if r.Flags.Suspicious {
			groups["suspicious"] = append(groups["suspicious"], j)
		}
		if r.Flags.MissingVAT {
			groups["missing_vat"] = append(groups["missing_vat"], j)
		}
		if r.Flags.MathError {
			groups["math_error"] = append(groups["math_error"], j)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  len(recs),
		"groups": groups,
	})
}

// recomputeHandler re-runs the audit engine over the whole store and
// rewrites the derived flag cache.
func (s *Server) recomputeHandler(c *gin.Context) {
	changed, err := s.ingestor.RecomputeAllFlags(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}
