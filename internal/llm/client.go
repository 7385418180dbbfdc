// Package llm is the client for the locally hosted completion service. The
// service is opaque: two named operations, text completion and vision
// completion, over a local HTTP interface.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerlocal/ledgerd/internal/common"
)

const (
	TextTimeout   = 60 * time.Second
	VisionTimeout = 120 * time.Second
	pingTimeout   = 2 * time.Second
)

// Client talks to the completion service. Concurrent calls are limited by
// a semaphore so the local model is not saturated.
type Client struct {
	http        *http.Client
	baseURL     string
	textModel   string
	visionModel string
	sem         chan struct{}
	logger      *slog.Logger
}

func NewClient(baseURL, textModel, visionModel string, maxInflight int, logger *slog.Logger) *Client {
	if maxInflight <= 0 {
		maxInflight = 4
	}
	return &Client{
		http:        &http.Client{},
		baseURL:     strings.TrimRight(baseURL, "/"),
		textModel:   textModel,
		visionModel: visionModel,
		sem:         make(chan struct{}, maxInflight),
		logger:      logger,
	}
}

type message struct {
	Role    string   `json:"role"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
}

// CompleteText runs a text completion with a system and user message.
func (c *Client) CompleteText(ctx context.Context, system, user string) (string, error) {
	msgs := []message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
	return c.chat(ctx, c.textModel, msgs, TextTimeout, map[string]any{
		"temperature": 0.1,
		"num_predict": 1200,
	})
}

// CompleteChat runs a text completion over a full message history. Roles
// are "system", "user", or "assistant".
func (c *Client) CompleteChat(ctx context.Context, msgs [][2]string) (string, error) {
	converted := make([]message, len(msgs))
	for i, m := range msgs {
		converted[i] = message{Role: m[0], Content: m[1]}
	}
	return c.chat(ctx, c.textModel, converted, TextTimeout, map[string]any{
		"temperature": 0.1,
		"num_predict": 1200,
	})
}

// CompleteVision runs a vision completion over one base64-encoded image.
func (c *Client) CompleteVision(ctx context.Context, prompt, imageB64 string) (string, error) {
	msgs := []message{
		{Role: "user", Content: prompt, Images: []string{imageB64}},
	}
	return c.chat(ctx, c.visionModel, msgs, VisionTimeout, map[string]any{
		"temperature": 0.1,
		"num_predict": 2000,
	})
}

func (c *Client) chat(ctx context.Context, model string, msgs []message, timeout time.Duration, options map[string]any) (string, error) {
	select {
	case c.sem <- struct{}{}:
		defer func() { <-c.sem }()
	case <-ctx.Done():
		return "", common.Wrap(common.KindUpstreamTimeout, "waiting for completion slot", ctx.Err())
	}

	reqID := uuid.New().String()
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(map[string]any{
		"model":    model,
		"messages": msgs,
		"stream":   false,
		"options":  options,
	})
	if err != nil {
		return "", common.Wrap(common.KindInternal, "encode completion request", err)
	}

	c.logger.Info("llm.request", "req_id", reqID, "model", model, "bytes", len(body))

	raw, err := c.post(ctx, c.baseURL+"/api/chat", body)
	if err != nil {
		// One retry on network error or a 5xx; never on timeout or a 4xx.
		var ae *common.AppError
		if errors.As(err, &ae) && ae.Kind == common.KindUpstreamUnavailable && ctx.Err() == nil {
			c.logger.Warn("llm.retry", "req_id", reqID, "error", err)
			raw, err = c.post(ctx, c.baseURL+"/api/chat", body)
		}
		if err != nil {
			c.logger.Error("llm.request_failed", "req_id", reqID, "error", err,
				"elapsed_ms", time.Since(start).Milliseconds())
			return "", err
		}
	}

	var out struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", common.Wrap(common.KindUpstreamUnavailable, "decode completion response", err)
	}
	if out.Message.Content == "" {
		return "", common.E(common.KindUpstreamUnavailable, "empty completion response")
	}

	c.logger.Info("llm.response", "req_id", reqID, "chars", len(out.Message.Content),
		"elapsed_ms", time.Since(start).Milliseconds())
	return out.Message.Content, nil
}

func (c *Client) post(ctx context.Context, url string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, common.Wrap(common.KindInternal, "build completion request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, common.Wrap(common.KindUpstreamTimeout, "completion timed out", err)
		}
		return nil, common.Wrap(common.KindUpstreamUnavailable, "completion service unreachable", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		kind := common.KindUpstreamUnavailable
		if resp.StatusCode/100 == 4 {
			kind = common.KindInternal
		}
		return nil, common.E(kind, "completion service status %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}
	return raw, nil
}

// Healthy checks service reachability without running a completion.
func (c *Client) Healthy(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return common.Wrap(common.KindInternal, "build health request", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return common.Wrap(common.KindUpstreamUnavailable, "completion service unreachable", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return common.E(common.KindUpstreamUnavailable, "completion service status %d", resp.StatusCode)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
