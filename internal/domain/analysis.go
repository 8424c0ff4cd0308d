package domain

import "time"

type SeriesPoint struct {
	Date  time.Time
	Value float64
}

type AnalysisMetrics struct {
	TotalReturnPct float64
	SharpeRatio    float64
	MaxDrawdownPct float64
	InitialValue   float64
	FinalValue     float64
}

// AnalysisResult is the computed equity curve plus summary risk metrics for
// one allocation snapshot. It is created fresh on every successful analysis
// response and discarded whenever the allocation changes or the session
// ends - a stale result never describes the current allocation.
type AnalysisResult struct {
	Series  []SeriesPoint
	Metrics AnalysisMetrics
}
