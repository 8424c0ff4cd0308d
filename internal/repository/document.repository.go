package repository

import (
	"context"
	"fmt"
	"net/http"

	"foliosync/internal/domain"
	"foliosync/pkg/docstore"

	"github.com/shopspring/decimal"
	"golang.org/x/oauth2"
)

//go:generate mockgen -destination=mocks/document.repository_mock.go -package=mock_repository . DocumentRepository

// DocumentRepository reads and writes the per-user persisted allocation.
// Reads return nil when the user has never saved a document. Writes merge,
// so unrelated fields of the user's document survive.
type DocumentRepository interface {
	ReadDocument(ctx context.Context, principal domain.Principal) (*domain.PositionDocument, error)
	WriteDocument(ctx context.Context, principal domain.Principal, positions map[string]domain.AllocationEntry) error
}

type documentRepositoryHandler struct {
	Client docstore.Client
}

func NewDocumentRepository(serviceURL string) DocumentRepository {
	return documentRepositoryHandler{
		Client: docstore.Client{
			HttpClient: http.DefaultClient,
			BaseURL:    serviceURL,
		},
	}
}

func (h documentRepositoryHandler) ReadDocument(ctx context.Context, principal domain.Principal) (*domain.PositionDocument, error) {
	doc, err := h.Client.ReadDocument(ctx, tokenSource(principal), principal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read document for user %s: %w", principal.ID, err)
	}
	if doc == nil {
		return nil, nil
	}

	// A previously saved allocation is trusted verbatim.
	positions := make(map[string]domain.AllocationEntry, len(doc.Positions))
	for ticker, entry := range doc.Positions {
		positions[ticker] = domain.AllocationEntry{
			Ticker: entry.Ticker,
			Weight: decimal.NewFromFloat(entry.Weight),
		}
	}

	return &domain.PositionDocument{Positions: positions}, nil
}

func (h documentRepositoryHandler) WriteDocument(ctx context.Context, principal domain.Principal, positions map[string]domain.AllocationEntry) error {
	wire := make(map[string]docstore.PositionEntry, len(positions))
	for ticker, entry := range positions {
		wire[ticker] = docstore.PositionEntry{
			Ticker: entry.Ticker,
			Weight: entry.Weight.InexactFloat64(),
		}
	}

	err := h.Client.WriteDocument(ctx, tokenSource(principal), principal.ID, wire)
	if err != nil {
		return fmt.Errorf("failed to write document for user %s: %w", principal.ID, err)
	}

	return nil
}

func tokenSource(principal domain.Principal) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: principal.RawToken})
}
