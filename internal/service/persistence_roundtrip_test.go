package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"foliosync/internal/domain"
	"foliosync/internal/repository"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Persisting an allocation and loading it back through the document
// repository must reproduce the entries exactly, ticker set and weights.
func Test_allocationStore_persistRoundTrip(t *testing.T) {
	var mu sync.Mutex
	documents := map[string]json.RawMessage{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()

		userID := r.URL.Path[len("/users/"):]
		switch r.Method {
		case http.MethodGet:
			doc, ok := documents[userID]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = w.Write(doc)
		case http.MethodPatch:
			body := json.RawMessage{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			documents[userID] = body
		}
	}))
	defer server.Close()

	documentRepository := repository.NewDocumentRepository(server.URL)
	principal := domain.Principal{ID: "user-1", RawToken: "token"}
	ctx := context.Background()

	store := NewAllocationStore(documentRepository)
	store.SetPrincipal(&principal)
	require.NoError(t, store.Add("AAPL", decimal.NewFromFloat(0.6)))
	require.NoError(t, store.Add("MSFT", decimal.NewFromFloat(0.4)))
	require.NoError(t, store.Persist(ctx))

	doc, err := documentRepository.ReadDocument(ctx, principal)
	require.NoError(t, err)
	require.NotNil(t, doc)

	fresh := NewAllocationStore(documentRepository)
	fresh.ReplaceAll(doc.Positions)

	require.Equal(t, "", cmp.Diff(store.Entries(), fresh.Entries()))
	require.True(t, fresh.IsComplete())
}
