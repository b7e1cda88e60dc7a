// Package engine orchestrates a full analysis run across all indicators.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/brightside-dev/goodnews/internal/analysis"
	"github.com/brightside-dev/goodnews/internal/common"
	"github.com/brightside-dev/goodnews/internal/config"
	"github.com/brightside-dev/goodnews/internal/model"
	"github.com/brightside-dev/goodnews/internal/normalize"
	"github.com/brightside-dev/goodnews/internal/story"
)

// Loader supplies the raw table for one indicator.
type Loader interface {
	Load(ctx context.Context, ind config.Indicator, refresh bool) ([][]string, error)
}

// Skip records one indicator that could not be processed this run.
type Skip struct {
	Indicator string
	Reason    string
}

func (s Skip) String() string {
	return fmt.Sprintf("%s: %s", s.Indicator, s.Reason)
}

// Result is the outcome of one run.
type Result struct {
	Stories   []model.Story
	Skips     []Skip
	Processed int
}

// SkipMessages renders skips for the console summary.
func (r *Result) SkipMessages() []string {
	msgs := make([]string, len(r.Skips))
	for i, s := range r.Skips {
		msgs[i] = s.String()
	}
	return msgs
}

// Engine runs the detection pipeline: load, normalize, detect, assemble.
// Execution is single-threaded and sequential; per-indicator failures are
// isolated and reported as skips rather than aborting the run.
type Engine struct {
	loader   Loader
	settings config.Settings
}

// New creates an engine.
func New(loader Loader, settings config.Settings) *Engine {
	return &Engine{loader: loader, settings: settings}
}

// Run processes every configured indicator and returns the ranked feed.
// Only a total inability to process any indicator is an error.
func (e *Engine) Run(ctx context.Context, refresh bool) (*Result, error) {
	result := &Result{}

	for _, ind := range e.settings.Indicators {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		stories, err := e.runIndicator(ctx, ind, refresh)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			slog.Warn("Skipping indicator", "indicator", ind.Name, "error", err)
			result.Skips = append(result.Skips, Skip{Indicator: ind.Name, Reason: err.Error()})
			continue
		}

		result.Stories = append(result.Stories, stories...)
		result.Processed++
	}

	if result.Processed == 0 {
		return nil, fmt.Errorf("%w: all %d indicators failed", common.ErrNoIndicators, len(e.settings.Indicators))
	}

	story.SortFeed(result.Stories)
	return result, nil
}

func (e *Engine) runIndicator(ctx context.Context, ind config.Indicator, refresh bool) ([]model.Story, error) {
	slog.Info("Analyzing indicator", "indicator", ind.Name, "display_name", ind.DisplayName)

	table, err := e.loader.Load(ctx, ind, refresh)
	if err != nil {
		return nil, err
	}

	normalized, err := normalize.Normalize(table, ind)
	if err != nil {
		return nil, err
	}
	if normalized.Rows == 0 {
		return nil, fmt.Errorf("%w: %s: no valid observations after filtering", common.ErrSchema, ind.Name)
	}

	slog.Info("Dataset normalized",
		"indicator", ind.Name,
		"countries", len(normalized.Series),
		"observations", normalized.Rows,
		"latest_year", normalized.LatestYear)

	// Deterministic country order; the assembler re-ranks anyway, but
	// identical inputs must walk an identical path.
	countries := make([]string, 0, len(normalized.Series))
	for country := range normalized.Series {
		countries = append(countries, country)
	}
	sort.Strings(countries)

	var trends []model.TrendResult
	var milestones []model.Milestone
	for _, country := range countries {
		series := normalized.Series[country]
		if trend, ok := analysis.DetectTrend(series, ind, e.settings); ok {
			trends = append(trends, *trend)
		}
		milestones = append(milestones,
			analysis.DetectMilestones(series, ind, e.settings, normalized.LatestYear)...)
	}

	slog.Info("Detection complete",
		"indicator", ind.Name,
		"trends", len(trends),
		"milestones", len(milestones))

	return story.Assemble(trends, milestones, e.settings.MaxTrendsPerIndicator), nil
}
