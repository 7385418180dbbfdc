package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ledgerlocal/ledgerd/internal/common"
	"github.com/ledgerlocal/ledgerd/internal/entity"
)

type bucketJSON struct {
	Key   string  `json:"key"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

func toBucketsJSON(in []entity.BucketTotal) []bucketJSON {
	out := make([]bucketJSON, len(in))
	for i, b := range in {
		out[i] = bucketJSON{Key: b.Key, Total: b.Total.InexactFloat64(), Count: b.Count}
	}
	return out
}

func (s *Server) analyticsSummaryHandler(c *gin.Context) {
	ctx := c.Request.Context()

	recs, err := s.repo.List(ctx, entity.ListFilter{})
	if err != nil {
		respondError(c, err)
		return
	}
	total := decimal.Zero
	vat := decimal.Zero
	for _, r := range recs {
		total = total.Add(r.Total)
		vat = vat.Add(r.Tax)
	}
	avg := decimal.Zero
	if len(recs) > 0 {
		avg = total.DivRound(decimal.NewFromInt(int64(len(recs))), 2)
	}

	monthly, err := s.repo.MonthlyTotals(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	categories, err := s.repo.CategoryTotals(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	vendors, err := s.repo.VendorTotals(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":      total.InexactFloat64(),
		"count":      len(recs),
		"vatTotal":   vat.InexactFloat64(),
		"average":    avg.InexactFloat64(),
		"monthly":    toBucketsJSON(monthly),
		"categories": toBucketsJSON(categories),
		"vendors":    toBucketsJSON(vendors),
	})
}

func (s *Server) analyticsMonthlyHandler(c *gin.Context) {
	buckets, err := s.repo.MonthlyTotals(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"monthly": toBucketsJSON(buckets)})
}

func (s *Server) analyticsCategoriesHandler(c *gin.Context) {
	buckets, err := s.repo.CategoryTotals(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": toBucketsJSON(buckets)})
}

func (s *Server) analyticsVendorsHandler(c *gin.Context) {
	buckets, err := s.repo.VendorTotals(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vendors": toBucketsJSON(buckets)})
}

func (s *Server) exportHandler(c *gin.Context) {
	var filter entity.ListFilter
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
		filter.To = &t
	}

	data, err := s.exporter.ExportReceiptsXLSX(c.Request.Context(), filter.From, filter.To)
	if err != nil {
		respondError(c, common.Wrap(common.KindInternal, "export failed", err))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="receipts.xlsx"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (s *Server) searchHandler(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		respondError(c, common.E(common.KindValidation, "q is required"))
		return
	}
	k := 10
	if v := c.Query("k"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondError(c, common.E(common.KindValidation, "k must be a positive integer"))
			return
		}
		k = n
	}

	vec, err := s.embedder.Embed(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	hits, err := s.index.Search(c.Request.Context(), vec, k, nil)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]gin.H, len(hits))
	for i, h := range hits {
		results[i] = gin.H{
			"id":       h.ID,
			"score":    h.Score,
			"document": h.Document,
		}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(results), "results": results})
}
