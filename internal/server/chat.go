package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ledgerlocal/ledgerd/constants"
	"github.com/ledgerlocal/ledgerd/internal/common"
)

type chatQueryRequest struct {
	Query string `json:"query"`
}

// chatQueryHandler is the hybrid question path: deterministic numbers from
// the planner, prose from the completion service.
func (s *Server) chatQueryHandler(c *gin.Context) {
	var req chatQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.Wrap(common.KindValidation, "invalid request body", err))
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		respondError(c, common.E(common.KindValidation, "query is required"))
		return
	}

	ans, err := s.planner.Answer(c.Request.Context(), req.Query)
	if err != nil {
		respondError(c, err)
		return
	}

	var totalAmount *float64
	if ans.TotalAmount != nil && ans.Intent != constants.IntentFreeform {
		v := ans.TotalAmount.InexactFloat64()
		totalAmount = &v
	}
	receiptIDs := ans.ReceiptIDs
	if receiptIDs == nil {
		receiptIDs = []int{}
	}
	c.JSON(http.StatusOK, gin.H{
		"answer":      ans.Answer,
		"intent":      string(ans.Intent),
		"totalAmount": totalAmount,
		"count":       ans.Count,
		"receiptIds":  receiptIDs,
		"receipts":    toReceiptListJSON(ans.Receipts),
	})
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Message string        `json:"message"`
	History []chatMessage `json:"history"`
}

// chatHandler is the prose-only conversational path.
func (s *Server) chatHandler(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.Wrap(common.KindValidation, "invalid request body", err))
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondError(c, common.E(common.KindValidation, "message is required"))
		return
	}

	history := make([][2]string, 0, len(req.History))
	for _, m := range req.History {
		role := m.Role
		if role != "user" && role != "assistant" {
			role = "user"
		}
		history = append(history, [2]string{role, m.Content})
	}

	answer, err := s.planner.Chat(c.Request.Context(), req.Message, history)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}
