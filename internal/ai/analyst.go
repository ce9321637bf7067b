// Package ai turns an indicator context into a structured narrative
// report via an OpenAI-compatible chat API.
package ai

import (
	"context"

	"github.com/tickerlens/tickerlens/internal/types"
)

// Analyst produces a structured reading of a stock's indicator context.
type Analyst interface {
	Analyze(ctx context.Context, analysisContext types.AnalysisContext) (types.AIAnalysis, error)
	Name() string
}
