package repository

import (
	"context"
	"net/http"
	"time"

	"foliosync/internal/domain"
	"foliosync/pkg/equity"
)

//go:generate mockgen -destination=mocks/analysis.repository_mock.go -package=mock_repository . AnalysisRepository

// AnalysisRepository fronts the analysis backend. One call is one HTTP
// request; retry policy belongs to the caller.
type AnalysisRepository interface {
	GetPortfolioEquity(ctx context.Context, principal domain.Principal, positions map[string]domain.AllocationEntry) (*domain.AnalysisResult, error)
}

type analysisRepositoryHandler struct {
	Client equity.Client
}

func NewAnalysisRepository(backendURL string) AnalysisRepository {
	return analysisRepositoryHandler{
		Client: equity.Client{
			HttpClient: &http.Client{Timeout: 30 * time.Second},
			BaseURL:    backendURL,
		},
	}
}

func (h analysisRepositoryHandler) GetPortfolioEquity(ctx context.Context, principal domain.Principal, positions map[string]domain.AllocationEntry) (*domain.AnalysisResult, error) {
	wire := make(map[string]equity.PositionWeight, len(positions))
	for ticker, entry := range positions {
		wire[ticker] = equity.PositionWeight{
			Ticker: entry.Ticker,
			Weight: entry.Weight.InexactFloat64(),
		}
	}

	return h.Client.GetPortfolioEquity(ctx, tokenSource(principal), wire)
}
