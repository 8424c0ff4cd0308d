package equity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"foliosync/internal/domain"
	"foliosync/internal/util"

	"golang.org/x/oauth2"
)

// Client talks to the analysis backend, which computes an equity curve and
// summary risk metrics for a target allocation. The computation itself is
// entirely server-side.
type Client struct {
	HttpClient *http.Client
	BaseURL    string
}

type PositionWeight struct {
	Ticker string  `json:"ticker"`
	Weight float64 `json:"weight"`
}

type equityRequest struct {
	Positions map[string]PositionWeight `json:"positions"`
}

type equityMetrics struct {
	TotalReturnPct *float64 `json:"total_return_pct"`
	SharpeRatio    *float64 `json:"sharpe_ratio"`
	MaxDrawdownPct *float64 `json:"max_drawdown_pct"`
	InitialValue   *float64 `json:"initial_value"`
	FinalValue     *float64 `json:"final_value"`
}

type equityResponse struct {
	Dates   []string       `json:"dates"`
	Values  []float64      `json:"values"`
	Metrics *equityMetrics `json:"metrics"`
}

// GetPortfolioEquity issues exactly one POST to /portfolio/equity with the
// caller's bearer credential. Transport failures, non-2xx statuses and
// malformed bodies map to the distinct error types in internal/domain so
// the caller can tell them apart; no retries happen here.
func (c Client) GetPortfolioEquity(ctx context.Context, ts oauth2.TokenSource, positions map[string]PositionWeight) (*domain.AnalysisResult, error) {
	token, err := ts.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to read access token: %w", err)
	}

	body, err := json.Marshal(equityRequest{Positions: positions})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize positions: %w", err)
	}

	url := strings.TrimRight(c.BaseURL, "/") + "/portfolio/equity"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	response, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, domain.NetworkError{Err: err}
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, domain.NetworkError{Err: fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)}
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		type errResponse struct {
			Error  string `json:"error"`
			Detail string `json:"detail"`
		}
		errJson := errResponse{}
		_ = json.Unmarshal(responseBytes, &errJson)
		message := errJson.Error
		if message == "" {
			message = errJson.Detail
		}
		return nil, domain.AnalysisBackendError{
			StatusCode: response.StatusCode,
			Message:    message,
		}
	}

	var responseJson equityResponse
	if err := json.Unmarshal(responseBytes, &responseJson); err != nil {
		return nil, domain.ResponseFormatError{Reason: fmt.Sprintf("body is not valid JSON: %v", err)}
	}

	return mapResponse(responseJson)
}

func mapResponse(resp equityResponse) (*domain.AnalysisResult, error) {
	if resp.Metrics == nil {
		return nil, domain.ResponseFormatError{Reason: "missing metrics"}
	}
	if resp.Metrics.TotalReturnPct == nil || resp.Metrics.SharpeRatio == nil || resp.Metrics.MaxDrawdownPct == nil {
		return nil, domain.ResponseFormatError{Reason: "metrics missing required fields"}
	}
	if len(resp.Dates) != len(resp.Values) {
		return nil, domain.ResponseFormatError{Reason: fmt.Sprintf("dates and values length mismatch: %d != %d", len(resp.Dates), len(resp.Values))}
	}

	series := make([]domain.SeriesPoint, 0, len(resp.Dates))
	for i, dateStr := range resp.Dates {
		date, err := util.ParseDate(dateStr)
		if err != nil {
			return nil, domain.ResponseFormatError{Reason: fmt.Sprintf("invalid date %q: %v", dateStr, err)}
		}
		series = append(series, domain.SeriesPoint{
			Date:  date,
			Value: resp.Values[i],
		})
	}

	result := &domain.AnalysisResult{
		Series: series,
		Metrics: domain.AnalysisMetrics{
			TotalReturnPct: *resp.Metrics.TotalReturnPct,
			SharpeRatio:    *resp.Metrics.SharpeRatio,
			MaxDrawdownPct: *resp.Metrics.MaxDrawdownPct,
		},
	}
	if resp.Metrics.InitialValue != nil {
		result.Metrics.InitialValue = *resp.Metrics.InitialValue
	}
	if resp.Metrics.FinalValue != nil {
		result.Metrics.FinalValue = *resp.Metrics.FinalValue
	}

	return result, nil
}
