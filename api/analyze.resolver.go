package api

import (
	"foliosync/internal/domain"
	"foliosync/internal/util"

	"github.com/gin-gonic/gin"
)

type analyzeMetricsResponse struct {
	TotalReturnPct float64 `json:"totalReturnPct"`
	SharpeRatio    float64 `json:"sharpeRatio"`
	MaxDrawdownPct float64 `json:"maxDrawdownPct"`
	InitialValue   float64 `json:"initialValue"`
	FinalValue     float64 `json:"finalValue"`
}

type analyzeResponse struct {
	Dates   []string               `json:"dates"`
	Values  []float64              `json:"values"`
	Metrics analyzeMetricsResponse `json:"metrics"`
}

func (m ApiHandler) analyze(c *gin.Context) {
	result, err := m.AnalysisService.RequestAnalysis(c.Request.Context())
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, mapAnalysisResult(*result))
}

func mapAnalysisResult(result domain.AnalysisResult) analyzeResponse {
	out := analyzeResponse{
		Dates:  make([]string, 0, len(result.Series)),
		Values: make([]float64, 0, len(result.Series)),
		Metrics: analyzeMetricsResponse{
			TotalReturnPct: result.Metrics.TotalReturnPct,
			SharpeRatio:    result.Metrics.SharpeRatio,
			MaxDrawdownPct: result.Metrics.MaxDrawdownPct,
			InitialValue:   result.Metrics.InitialValue,
			FinalValue:     result.Metrics.FinalValue,
		},
	}
	for _, point := range result.Series {
		out.Dates = append(out.Dates, util.FormatDate(point.Date))
		out.Values = append(out.Values, point.Value)
	}
	return out
}
