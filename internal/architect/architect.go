package architect

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/everstacklabs/costpilot/internal/catalog"
)

// Error taxonomy. Only these two surface to the caller; every other degraded
// condition produces a normally shaped result with reduced content.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// Result statuses.
const (
	StatusSuccess = "success"
	StatusNoMatch = "no_match"
)

const (
	maxAlternatives  = 5
	reasonSeparator  = " | "
	defaultReasoning = "Balanced fit for the described workload"
)

// Request is one optimization request.
type Request struct {
	UseCaseDescription string `json:"use_case_description"`
	MonthlyInputTokens int64  `json:"monthly_input_tokens"`
	// MonthlyOutputTokens defaults to 20% of the input volume when zero.
	MonthlyOutputTokens int64 `json:"monthly_output_tokens,omitempty"`
	// CurrentModel is a free-form identifier resolved against the catalog.
	CurrentModel string `json:"current_model,omitempty"`
}

// Result is the architect's output for one optimize call.
//
// Recommendation is present only on StatusSuccess. Alternatives holds ranks
// 2..6; the top recommendation is excluded. CurrentModel is present only
// when the requested identifier resolved against the catalog; Savings
// additionally requires the resolved model's cost to be nonzero.
type Result struct {
	Status         string          `json:"status"`
	UseCase        string          `json:"use_case"`
	Requirements   Requirements    `json:"requirements"`
	Recommendation *Recommendation `json:"recommendation,omitempty"`
	Alternatives   []Alternative   `json:"alternatives"`
	Volume         Volume          `json:"volume"`
	CurrentModel   *CurrentModel   `json:"current_model,omitempty"`
	Savings        *Savings        `json:"savings,omitempty"`
}

// Recommendation describes the top-ranked candidate.
type Recommendation struct {
	Model          string  `json:"model"`
	MonthlyCost    string  `json:"monthly_cost"`
	MonthlyCostRaw float64 `json:"monthly_cost_raw"`
	Reasoning      string  `json:"reasoning"`
	Action         string  `json:"action,omitempty"`
}

// Alternative is a scored-candidate projection for the response.
type Alternative struct {
	Provider                string   `json:"provider"`
	ModelName               string   `json:"model_name"`
	MonthlyCost             string   `json:"monthly_cost"`
	MonthlyCostRaw          float64  `json:"monthly_cost_raw"`
	InputCostPer1M          string   `json:"input_cost_per_1m"`
	OutputCostPer1M         string   `json:"output_cost_per_1m"`
	MatchScore              int      `json:"match_score"`
	Reasons                 []string `json:"reasons"`
	ContextWindow           int      `json:"context_window"`
	SupportsFunctionCalling bool     `json:"supports_function_calling"`
	SupportsVision          bool     `json:"supports_vision"`
}

// Volume echoes the token inputs with the defaulted output value made
// explicit.
type Volume struct {
	MonthlyInputTokens  int64 `json:"monthly_input_tokens"`
	MonthlyOutputTokens int64 `json:"monthly_output_tokens"`
}

// CurrentModel reports the resolved current offering and its cost.
type CurrentModel struct {
	Name           string  `json:"name"`
	MonthlyCost    string  `json:"monthly_cost"`
	MonthlyCostRaw float64 `json:"monthly_cost_raw"`
}

// Savings reports the cost comparison against the current model.
type Savings struct {
	Monthly    string  `json:"monthly"`
	MonthlyRaw float64 `json:"monthly_raw"`
	Annual     string  `json:"annual"`
	AnnualRaw  float64 `json:"annual_raw"`
	Percentage string  `json:"percentage"`
}

// CatalogSource hands out point-in-time catalog snapshots. The architect
// never holds a live reference to catalog storage.
type CatalogSource interface {
	Snapshot() (catalog.Snapshot, error)
}

// Architect composes extraction, scoring, and cost math into one optimize
// operation. Each call is a pure computation over a catalog snapshot; the
// architect holds no locks and mutates no shared state.
type Architect struct {
	source    CatalogSource
	extractor Extractor
}

// New creates an Architect over the given catalog source and extractor.
func New(source CatalogSource, extractor Extractor) *Architect {
	return &Architect{source: source, extractor: extractor}
}

// Optimize analyzes a use case and recommends the cost-optimal offering.
//
// It fails only for invalid input or an unreadable catalog; an empty ranking
// and an unresolvable current model are soft conditions reflected in the
// result, not errors.
func (a *Architect) Optimize(ctx context.Context, req Request) (*Result, error) {
	if req.MonthlyInputTokens <= 0 {
		return nil, fmt.Errorf("%w: monthly_input_tokens must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(req.UseCaseDescription) == "" {
		return nil, fmt.Errorf("%w: use_case_description must not be empty", ErrInvalidInput)
	}

	outputTokens := req.MonthlyOutputTokens
	if outputTokens == 0 {
		outputTokens = DefaultOutputTokens(req.MonthlyInputTokens)
	}

	snap, err := a.source.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	requirements := a.extractor.Extract(ctx, req.UseCaseDescription)

	ranked := ScoreAndRank(requirements, snap.Offerings(), req.MonthlyInputTokens, outputTokens)

	result := &Result{
		UseCase:      req.UseCaseDescription,
		Requirements: requirements,
		Alternatives: []Alternative{},
		Volume: Volume{
			MonthlyInputTokens:  req.MonthlyInputTokens,
			MonthlyOutputTokens: outputTokens,
		},
	}

	if len(ranked) == 0 {
		result.Status = StatusNoMatch
		slog.Info("no suitable model found", "use_case", truncate(req.UseCaseDescription, 80))
		return result, nil
	}

	result.Status = StatusSuccess
	top := ranked[0]

	for _, c := range ranked[1:] {
		if len(result.Alternatives) == maxAlternatives {
			break
		}
		result.Alternatives = append(result.Alternatives, Alternative{
			Provider:                c.Offering.Provider,
			ModelName:               c.Offering.Name,
			MonthlyCost:             FormatUSD(c.MonthlyCost),
			MonthlyCostRaw:          c.MonthlyCost,
			InputCostPer1M:          FormatUSD(c.Offering.InputCostPer1M),
			OutputCostPer1M:         FormatUSD(c.Offering.OutputCostPer1M),
			MatchScore:              c.Score,
			Reasons:                 reasonsOrEmpty(c.Reasons),
			ContextWindow:           c.Offering.ContextWindow,
			SupportsFunctionCalling: c.Offering.SupportsFunctionCalling,
			SupportsVision:          c.Offering.SupportsVision,
		})
	}

	result.Recommendation = &Recommendation{
		Model:          top.Offering.Provider + " " + top.Offering.Name,
		MonthlyCost:    FormatUSD(top.MonthlyCost),
		MonthlyCostRaw: top.MonthlyCost,
		Reasoning:      reasoning(top.Reasons),
	}

	if req.CurrentModel != "" {
		a.applyCurrentModel(result, snap, req.CurrentModel, top, req.MonthlyInputTokens, outputTokens)
	}

	return result, nil
}

// applyCurrentModel resolves the declared current model and, when found,
// attaches its cost and the savings comparison. An unknown identifier is a
// soft condition: the sections are simply omitted.
func (a *Architect) applyCurrentModel(result *Result, snap catalog.Snapshot, name string, top Candidate, inputTokens, outputTokens int64) {
	current, ok := snap.FindModel(name)
	if !ok {
		slog.Info("current model not found in catalog", "model", name)
		return
	}

	currentCost := MonthlyCost(current, inputTokens, outputTokens)
	result.CurrentModel = &CurrentModel{
		Name:           name,
		MonthlyCost:    FormatUSD(currentCost),
		MonthlyCostRaw: currentCost,
	}

	if currentCost == 0 {
		// Savings percentage is undefined at zero cost; omit the whole
		// savings section.
		return
	}

	figures := ComputeSavings(currentCost, top.MonthlyCost)
	result.Savings = &Savings{
		Monthly:    FormatUSD(figures.Monthly),
		MonthlyRaw: figures.Monthly,
		Annual:     FormatUSD(figures.Annual),
		AnnualRaw:  figures.Annual,
		Percentage: FormatPercent(figures.Percentage),
	}

	if figures.Monthly > 0 {
		result.Recommendation.Action = fmt.Sprintf("Switch to %s to save %s/month",
			top.Offering.Name, FormatUSD(figures.Monthly))
	} else {
		result.Recommendation.Action = "Current model is already cost-effective"
	}
}

func reasoning(reasons []string) string {
	if len(reasons) == 0 {
		return defaultReasoning
	}
	return strings.Join(reasons, reasonSeparator)
}

func reasonsOrEmpty(reasons []string) []string {
	if reasons == nil {
		return []string{}
	}
	return reasons
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
