package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ledgerlocal/ledgerd/internal/common"
	"github.com/ledgerlocal/ledgerd/internal/entity"
)

func (s *Server) listReceiptsHandler(c *gin.Context) {
	if idStr := c.Query("receiptId"); idStr != "" {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			respondError(c, common.E(common.KindValidation, "receiptId must be an integer"))
			return
		}
		rec, err := s.repo.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": 1, "receipts": []receiptJSON{toReceiptJSON(rec)}})
		return
	}

	filter := entity.ListFilter{
		Vendor:   c.Query("vendor"),
		Category: c.Query("category"),
	}
	if v := c.Query("startDate"); v != "" {
		t, err := parseQueryDate(v)
		if err != nil {
			respondError(c, err)
			return
		}
		filter.From = &t
	}
	if v := c.Query("endDate"); v != "" {
		t, err := parseQueryDate(v)
		if err != nil {
			respondError(c, err)
			return
		}
		// inclusive end of day
		t = t.Add(24*time.Hour - time.Nanosecond)
		filter.To = &t
	}

	recs, err := s.repo.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(recs), "receipts": toReceiptListJSON(recs)})
}

func (s *Server) deleteReceiptHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, common.E(common.KindValidation, "id must be an integer"))
		return
	}
	if err := s.ingestor.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (s *Server) receiptImageHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, common.E(common.KindValidation, "id must be an integer"))
		return
	}
	rec, err := s.repo.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if rec.ImageRef == "" {
		respondError(c, common.E(common.KindNotFound, "receipt %d has no image", id))
		return
	}
	c.File(rec.ImageRef)
}

func parseQueryDate(v string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, common.E(common.KindValidation, "unparseable date %q", v)
}
