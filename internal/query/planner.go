// Package query answers natural-language questions by combining
// deterministic aggregation over the relational store with vector
// retrieval and a constrained text completion. Every number the user sees
// is computed here, never by the model.
package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerlocal/ledgerd/constants"
	"github.com/ledgerlocal/ledgerd/internal/common"
	"github.com/ledgerlocal/ledgerd/internal/embedding"
	"github.com/ledgerlocal/ledgerd/internal/entity"
	"github.com/ledgerlocal/ledgerd/internal/vector"
)

const (
	retrievalK  = 20
	sourceLimit = 5

	systemPrompt = "You are an assistant for a small-business bookkeeping system. " +
		"You may only restate the provided numbers; you may not compute new ones. " +
		"Answer concisely, state the total and receipt count first, then any detail. " +
		"Answer in the language of the question."

	offlineProse = "Totals computed; prose unavailable because the language service is offline."
	emptyProse   = "No matching receipts."
)

// Store is the slice of the relational store the planner needs.
type Store interface {
	List(ctx context.Context, f entity.ListFilter) ([]*entity.Receipt, error)
	DistinctVendors(ctx context.Context) ([]string, error)
}

// TextCompleter is the text side of the completion service.
type TextCompleter interface {
	CompleteText(ctx context.Context, system, user string) (string, error)
	CompleteChat(ctx context.Context, msgs [][2]string) (string, error)
}

// Answer is the planner's response record.
type Answer struct {
	Intent      constants.Intent
	Answer      string
	TotalAmount *decimal.Decimal // nil for freeform
	Count       int
	ReceiptIDs  []int
	Receipts    []*entity.Receipt
}

type Planner struct {
	store    Store
	index    vector.Index
	embedder embedding.Embedder
	llm      TextCompleter
	logger   *slog.Logger
}

func NewPlanner(store Store, index vector.Index, embedder embedding.Embedder, llm TextCompleter, logger *slog.Logger) *Planner {
	return &Planner{store: store, index: index, embedder: embedder, llm: llm, logger: logger}
}

// Answer classifies the question, aggregates deterministically, selects
// source receipts, and delegates prose to the completion service.
func (p *Planner) Answer(ctx context.Context, question string) (*Answer, error) {
	vendors, err := p.store.DistinctVendors(ctx)
	if err != nil {
		return nil, err
	}
	intent, f := Classify(question, vendors, time.Now().UTC())
	p.logger.Info("query.classified", "intent", string(intent), "vendor", f.Vendor,
		"category", f.Category, "keyword", f.Keyword)

	hits := p.retrieve(ctx, question, f)

	if intent == constants.IntentFreeform {
		return p.freeform(ctx, question, hits)
	}

	rows, err := p.domain(ctx, f)
	if err != nil {
		return nil, err
	}

	total, count, domainRows := aggregate(intent, f, rows)
	sources := pickSources(hits, domainRows)

	ans := &Answer{
		Intent:      intent,
		TotalAmount: &total,
		Count:       count,
		Receipts:    sources,
	}
	for _, r := range sources {
		ans.ReceiptIDs = append(ans.ReceiptIDs, r.ID)
	}

	if count == 0 {
		ans.Answer = emptyProse
		return ans, nil
	}

	ans.Answer = p.prose(ctx, question, intent, f, total, count, sources)
	return ans, nil
}

// retrieve embeds the question and searches the index. Retrieval is an
// aid for source selection; its failure never fails the question.
func (p *Planner) retrieve(ctx context.Context, question string, f Filters) []vector.Hit {
	vec, err := p.embedder.Embed(ctx, question)
	if err != nil {
		p.logger.Warn("query.embed_failed", "error", err)
		return nil
	}
	filter := map[string]string{}
	if f.Vendor != "" {
		filter["vendor"] = entity.NormalizeVendor(f.Vendor)
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	hits, err := p.index.Search(ctx, vec, retrievalK, filter)
	if err != nil {
		p.logger.Warn("query.search_failed", "error", err)
		return nil
	}
	return hits
}

// domain lists the receipts the aggregation runs over: the structured
// filters applied through the store, amount bounds applied here.
func (p *Planner) domain(ctx context.Context, f Filters) ([]*entity.Receipt, error) {
	lf := entity.ListFilter{
		Vendor:   f.Vendor,
		Category: f.Category,
		From:     f.From,
		FlagKind: string(f.FlagKind),
	}
	rows, err := p.store.List(ctx, lf)
	if err != nil {
		return nil, err
	}
	if f.AmountMin == nil && f.AmountMax == nil {
		return rows, nil
	}
	filtered := rows[:0]
	for _, r := range rows {
		if f.AmountMin != nil && r.Total.LessThan(*f.AmountMin) {
			continue
		}
		if f.AmountMax != nil && r.Total.GreaterThan(*f.AmountMax) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered, nil
}

// aggregate computes the deterministic numeric answer. It returns the
// total, the receipt count, and the domain rows the sources must belong
// to.
func aggregate(intent constants.Intent, f Filters, rows []*entity.Receipt) (decimal.Decimal, int, []*entity.Receipt) {
	switch intent {
	case constants.IntentSumByCategory:
		if f.Keyword != "" {
			// Item-level keyword: sum the matching line items, count the
			// receipts that contributed.
			terms := constants.ExpandKeyword(f.Keyword)
			total := decimal.Zero
			var domain []*entity.Receipt
			for _, r := range rows {
				matched := false
				for _, it := range r.Items {
					desc := strings.ToLower(it.Description)
					for _, term := range terms {
						if strings.Contains(desc, term) {
							total = total.Add(it.Total)
							matched = true
							break
						}
					}
				}
				if matched {
					domain = append(domain, r)
				}
			}
			return total, len(domain), domain
		}
		return sumTotals(rows), len(rows), rows

	case constants.IntentSumByVendor, constants.IntentSumByPeriod, constants.IntentCount, constants.IntentFindSpecific:
		return sumTotals(rows), len(rows), rows

	case constants.IntentListTopK:
		sorted := make([]*entity.Receipt, len(rows))
		copy(sorted, rows)
		sort.Slice(sorted, func(i, j int) bool {
			if !sorted[i].Total.Equal(sorted[j].Total) {
				return sorted[i].Total.GreaterThan(sorted[j].Total)
			}
			return sorted[i].ID > sorted[j].ID
		})
		k := f.TopK
		if k <= 0 || k > len(sorted) {
			k = len(sorted)
		}
		top := sorted[:k]
		return sumTotals(top), len(top), top
	}
	return decimal.Zero, 0, nil
}

func sumTotals(rows []*entity.Receipt) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range rows {
		sum = sum.Add(r.Total)
	}
	return sum
}

// pickSources chooses the display list: top-5 retrieval hits restricted
// to the aggregation domain, ties broken by descending timestamp then
// descending identifier. Slots that retrieval leaves empty are filled from
// the head of the domain, in domain order.
func pickSources(hits []vector.Hit, domain []*entity.Receipt) []*entity.Receipt {
	byID := make(map[int]*entity.Receipt, len(domain))
	for _, r := range domain {
		byID[r.ID] = r
	}

	type scored struct {
		r     *entity.Receipt
		score float64
	}
	var candidates []scored
	for _, h := range hits {
		if r, ok := byID[h.ID]; ok {
			candidates = append(candidates, scored{r: r, score: h.Score})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		if !candidates[i].r.Date.Equal(candidates[j].r.Date) {
			return candidates[i].r.Date.After(candidates[j].r.Date)
		}
		return candidates[i].r.ID > candidates[j].r.ID
	})

	out := make([]*entity.Receipt, 0, sourceLimit)
	seen := map[int]bool{}
	for _, c := range candidates {
		if len(out) == sourceLimit {
			return out
		}
		out = append(out, c.r)
		seen[c.r.ID] = true
	}
	for _, r := range domain {
		if len(out) == sourceLimit {
			break
		}
		if !seen[r.ID] {
			out = append(out, r)
		}
	}
	return out
}

func (p *Planner) freeform(ctx context.Context, question string, hits []vector.Hit) (*Answer, error) {
	ans := &Answer{Intent: constants.IntentFreeform}
	limit := sourceLimit
	if limit > len(hits) {
		limit = len(hits)
	}
	var docs []string
	for _, h := range hits[:limit] {
		ans.ReceiptIDs = append(ans.ReceiptIDs, h.ID)
		docs = append(docs, h.Document)
	}
	ans.Count = len(ans.ReceiptIDs)
	if ans.Count == 0 {
		ans.Answer = emptyProse
		return ans, nil
	}

	user := "Question: " + question + "\n\nRelevant receipts:\n" + strings.Join(docs, "\n---\n")
	prose, err := p.llm.CompleteText(ctx, systemPrompt, user)
	if err != nil {
		p.logger.Warn("query.prose_failed", "error", err)
		ans.Answer = offlineProse
		return ans, nil
	}
	ans.Answer = prose
	return ans, nil
}

// prose asks the completion service to formulate the answer. The context
// block carries the precomputed result; the service restates, it never
// computes. Upstream failure degrades to a templated fallback.
func (p *Planner) prose(ctx context.Context, question string, intent constants.Intent, f Filters, total decimal.Decimal, count int, sources []*entity.Receipt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n\n", question)
	fmt.Fprintf(&b, "Intent: %s\n", intent)
	if f.Vendor != "" {
		fmt.Fprintf(&b, "Vendor filter: %s\n", f.Vendor)
	}
	if f.Category != "" {
		fmt.Fprintf(&b, "Category filter: %s\n", f.Category)
	}
	if f.Keyword != "" {
		fmt.Fprintf(&b, "Item keyword: %s\n", f.Keyword)
	}
	fmt.Fprintf(&b, "Precomputed total: %s\n", total.StringFixed(2))
	fmt.Fprintf(&b, "Receipt count: %d\n\n", count)
	b.WriteString("Source receipts:\n")
	for _, r := range sources {
		fmt.Fprintf(&b, "- #%d %s, %s, %s %s", r.ID, r.Vendor,
			r.Date.UTC().Format("2006-01-02"), r.Total.StringFixed(2), r.Currency)
		if r.Category != "" {
			fmt.Fprintf(&b, " (%s)", r.Category)
		}
		b.WriteString("\n")
	}

	prose, err := p.llm.CompleteText(ctx, systemPrompt, b.String())
	if err != nil {
		p.logger.Warn("query.prose_offline", "kind", string(common.KindOf(err)), "error", err)
		return offlineProse
	}
	return prose
}

// Chat is the prose-only conversational path: retrieval context plus the
// bounded history, no deterministic aggregation.
func (p *Planner) Chat(ctx context.Context, message string, history [][2]string) (string, error) {
	const historyLimit = 10
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}

	var contextBlock string
	if vec, err := p.embedder.Embed(ctx, message); err == nil {
		if hits, err := p.index.Search(ctx, vec, retrievalK, nil); err == nil {
			var docs []string
			for i, h := range hits {
				if i == sourceLimit {
					break
				}
				docs = append(docs, h.Document)
			}
			contextBlock = strings.Join(docs, "\n---\n")
		}
	}

	msgs := [][2]string{{"system", systemPrompt + "\n\nAvailable receipts:\n" + contextBlock}}
	msgs = append(msgs, history...)
	msgs = append(msgs, [2]string{"user", message})

	prose, err := p.llm.CompleteChat(ctx, msgs)
	if err != nil {
		var ae *common.AppError
		if errors.As(err, &ae) {
			return "", err
		}
		return "", common.Wrap(common.KindUpstreamUnavailable, "chat completion", err)
	}
	return prose, nil
}
