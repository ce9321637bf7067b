package types

import "github.com/moznion/go-optional"

// AnalysisContext is the exact JSON document handed to the AI provider and
// echoed back to the client as technical_indicators. Wire keys are part of
// the public API and must not change.
type AnalysisContext struct {
	Symbol               string                         `json:"symbol"`
	Region               string                         `json:"region"`
	CurrentPrice         float64                        `json:"current_price"`
	PriceChange          FlexFloat                      `json:"price_change"`
	PriceChangePercent   FlexFloat                      `json:"price_change_percent"`
	MovingAverage20      optional.Option[float64]       `json:"moving_average_20"`
	MovingAverage50      optional.Option[float64]       `json:"moving_average_50"`
	MovingAverage200     optional.Option[float64]       `json:"moving_average_200"`
	PositionVsMA50       optional.Option[PricePosition] `json:"position_vs_ma50"`
	PositionVsMA200      optional.Option[PricePosition] `json:"position_vs_ma200"`
	RSI                  optional.Option[float64]       `json:"rsi"`
	VolatilityAnnualized optional.Option[float64]       `json:"volatility_annualized"`
	High52Week           float64                        `json:"52_week_high"`
	Low52Week            float64                        `json:"52_week_low"`
	Volume               FlexFloat                      `json:"volume"`
	AnalysisTimestamp    string                         `json:"analysis_timestamp"`
}

// AIAnalysis is the narrative report the AI provider must return: a JSON
// object with exactly these six keys, each a one-to-two sentence commentary.
type AIAnalysis struct {
	TrendAnalysis      string `json:"trend_analysis" jsonschema:"description=Comment on short/medium-term trend and moving average position"`
	VolatilityInsight  string `json:"volatility_insight" jsonschema:"description=Note the volatility level and what it suggests"`
	PatternRecognition string `json:"pattern_recognition" jsonschema:"description=Identify any notable patterns or context"`
	Summary            string `json:"summary" jsonschema:"description=A natural language summary of the stock's current situation"`
	RiskCommentary     string `json:"risk_commentary" jsonschema:"description=Note any overbought/oversold conditions or risk factors"`
	GeneralObservation string `json:"general_observation" jsonschema:"description=A neutral, non-personalized technical observation"`
}
