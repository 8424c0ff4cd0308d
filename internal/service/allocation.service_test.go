package service

import (
	"context"
	"errors"
	"testing"

	"foliosync/internal/domain"
	mock_repository "foliosync/internal/repository/mocks"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_allocationStore_Add(t *testing.T) {
	t.Run("inserts normalized entries and tracks the total", func(t *testing.T) {
		store := NewAllocationStore(nil)

		require.NoError(t, store.Add(" aapl ", decimal.NewFromFloat(0.6)))
		require.NoError(t, store.Add("MSFT", decimal.NewFromFloat(0.4)))

		require.Equal(
			t,
			"",
			cmp.Diff(
				map[string]domain.AllocationEntry{
					"AAPL": {Ticker: "AAPL", Weight: decimal.NewFromFloat(0.6)},
					"MSFT": {Ticker: "MSFT", Weight: decimal.NewFromFloat(0.4)},
				},
				store.Entries(),
			),
		)
		require.True(t, store.Total().Equal(decimal.NewFromInt(1)))
	})

	t.Run("overwrites an existing ticker instead of stacking weight", func(t *testing.T) {
		store := NewAllocationStore(nil)

		require.NoError(t, store.Add("AAPL", decimal.NewFromFloat(0.9)))
		require.NoError(t, store.Add("AAPL", decimal.NewFromFloat(0.5)))

		require.True(t, store.Total().Equal(decimal.NewFromFloat(0.5)))
	})

	t.Run("rejects empty ticker", func(t *testing.T) {
		store := NewAllocationStore(nil)

		err := store.Add("   ", decimal.NewFromFloat(0.5))

		validationErr := domain.ValidationError{}
		require.ErrorAs(t, err, &validationErr)
		require.Empty(t, store.Entries())
	})

	t.Run("rejects non-positive weight", func(t *testing.T) {
		store := NewAllocationStore(nil)

		for _, weight := range []decimal.Decimal{decimal.Zero, decimal.NewFromFloat(-0.2)} {
			err := store.Add("AAPL", weight)
			validationErr := domain.ValidationError{}
			require.ErrorAs(t, err, &validationErr)
		}
		require.Empty(t, store.Entries())
	})

	t.Run("rejects an add that would push the total past 1", func(t *testing.T) {
		store := NewAllocationStore(nil)
		require.NoError(t, store.Add("AAPL", decimal.NewFromFloat(0.7)))

		err := store.Add("MSFT", decimal.NewFromFloat(0.4))

		validationErr := domain.ValidationError{}
		require.ErrorAs(t, err, &validationErr)

		// rejected add leaves state untouched
		require.True(t, store.Total().Equal(decimal.NewFromFloat(0.7)))
		_, ok := store.Entries()["MSFT"]
		require.False(t, ok)
	})

	t.Run("total never drifts from the sum of present entries", func(t *testing.T) {
		store := NewAllocationStore(nil)
		one := decimal.NewFromInt(1)

		weights := []float64{0.15, 0.25, 0.1, 0.3, 0.4, 0.2, 0.05}
		tickers := []string{"AAPL", "MSFT", "GOOG", "AMZN", "META", "NVDA", "TSLA"}
		for i, w := range weights {
			_ = store.Add(tickers[i], decimal.NewFromFloat(w))
			if i%3 == 2 {
				store.Remove(tickers[i/2])
			}

			require.True(t, store.Total().Equal(domain.SumWeights(store.Entries())))
			require.True(t, store.Total().LessThanOrEqual(one.Add(domain.WeightEpsilon)))
		}
	})
}

func Test_allocationStore_Remove(t *testing.T) {
	t.Run("removes and adjusts the total", func(t *testing.T) {
		store := NewAllocationStore(nil)
		require.NoError(t, store.Add("AAPL", decimal.NewFromFloat(0.6)))
		require.NoError(t, store.Add("MSFT", decimal.NewFromFloat(0.4)))

		store.Remove("aapl")

		require.True(t, store.Total().Equal(decimal.NewFromFloat(0.4)))
		_, ok := store.Entries()["AAPL"]
		require.False(t, ok)
	})

	t.Run("removing an absent ticker is a no-op", func(t *testing.T) {
		store := NewAllocationStore(nil)
		require.NoError(t, store.Add("AAPL", decimal.NewFromFloat(0.6)))
		version := store.Version()

		store.Remove("MSFT")

		require.Equal(t, version, store.Version())
		require.True(t, store.Total().Equal(decimal.NewFromFloat(0.6)))
	})
}

func Test_allocationStore_IsComplete(t *testing.T) {
	one := decimal.NewFromInt(1)

	t.Run("exact total of 1 is complete", func(t *testing.T) {
		store := NewAllocationStore(nil)
		require.NoError(t, store.Add("AAPL", decimal.NewFromFloat(0.6)))
		require.NoError(t, store.Add("MSFT", decimal.NewFromFloat(0.4)))

		require.True(t, store.IsComplete())
	})

	t.Run("total of 1 minus two epsilon is incomplete", func(t *testing.T) {
		store := NewAllocationStore(nil)
		store.ReplaceAll(map[string]domain.AllocationEntry{
			"AAPL": {Ticker: "AAPL", Weight: one.Sub(domain.WeightEpsilon.Mul(decimal.NewFromInt(2)))},
		})

		require.False(t, store.IsComplete())
	})

	t.Run("total of 1 minus half an epsilon is complete", func(t *testing.T) {
		store := NewAllocationStore(nil)
		store.ReplaceAll(map[string]domain.AllocationEntry{
			"AAPL": {Ticker: "AAPL", Weight: one.Sub(domain.WeightEpsilon.Div(decimal.NewFromInt(2)))},
		})

		require.True(t, store.IsComplete())
	})

	t.Run("half-allocated portfolio is incomplete", func(t *testing.T) {
		store := NewAllocationStore(nil)
		require.NoError(t, store.Add("AAPL", decimal.NewFromFloat(0.5)))

		require.False(t, store.IsComplete())
	})
}

func Test_allocationStore_ReplaceAll(t *testing.T) {
	t.Run("trusts the loaded snapshot verbatim", func(t *testing.T) {
		store := NewAllocationStore(nil)
		require.NoError(t, store.Add("NVDA", decimal.NewFromFloat(0.3)))

		// a previously saved allocation may not sum to 1; it loads anyway
		loaded := map[string]domain.AllocationEntry{
			"AAPL": {Ticker: "AAPL", Weight: decimal.NewFromFloat(0.9)},
			"MSFT": {Ticker: "MSFT", Weight: decimal.NewFromFloat(0.5)},
		}
		store.ReplaceAll(loaded)

		require.Equal(t, "", cmp.Diff(loaded, store.Entries()))
		require.True(t, store.Total().Equal(decimal.NewFromFloat(1.4)))
		require.False(t, store.IsComplete())
	})
}

func Test_allocationStore_Persist(t *testing.T) {
	principal := domain.Principal{ID: "user-1", RawToken: "token"}

	t.Run("writes the full allocation for the active principal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		documentRepository := mock_repository.NewMockDocumentRepository(ctrl)

		store := NewAllocationStore(documentRepository)
		store.SetPrincipal(&principal)
		require.NoError(t, store.Add("AAPL", decimal.NewFromFloat(0.6)))
		require.NoError(t, store.Add("MSFT", decimal.NewFromFloat(0.4)))

		documentRepository.EXPECT().
			WriteDocument(gomock.Any(), principal, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.Principal, positions map[string]domain.AllocationEntry) error {
				require.Equal(t, "", cmp.Diff(store.Entries(), positions))
				return nil
			})

		require.NoError(t, store.Persist(context.Background()))
	})

	t.Run("snapshots the allocation at the moment of the call", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		documentRepository := mock_repository.NewMockDocumentRepository(ctrl)

		store := NewAllocationStore(documentRepository)
		store.SetPrincipal(&principal)
		require.NoError(t, store.Add("AAPL", decimal.NewFromFloat(0.6)))

		var written map[string]domain.AllocationEntry
		documentRepository.EXPECT().
			WriteDocument(gomock.Any(), principal, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.Principal, positions map[string]domain.AllocationEntry) error {
				// a mutation racing with the remote write must not leak in
				require.NoError(t, store.Add("MSFT", decimal.NewFromFloat(0.4)))
				written = positions
				return nil
			})

		require.NoError(t, store.Persist(context.Background()))

		require.Len(t, written, 1)
		_, ok := written["AAPL"]
		require.True(t, ok)
	})

	t.Run("wraps transport failures and keeps local state", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		documentRepository := mock_repository.NewMockDocumentRepository(ctrl)

		store := NewAllocationStore(documentRepository)
		store.SetPrincipal(&principal)
		require.NoError(t, store.Add("AAPL", decimal.NewFromFloat(0.6)))

		documentRepository.EXPECT().
			WriteDocument(gomock.Any(), principal, gomock.Any()).
			Return(errors.New("connection reset"))

		err := store.Persist(context.Background())

		persistenceErr := domain.PersistenceError{}
		require.ErrorAs(t, err, &persistenceErr)
		require.True(t, store.Total().Equal(decimal.NewFromFloat(0.6)))
	})

	t.Run("fails without an active session", func(t *testing.T) {
		store := NewAllocationStore(nil)
		require.NoError(t, store.Add("AAPL", decimal.NewFromFloat(0.6)))

		err := store.Persist(context.Background())

		persistenceErr := domain.PersistenceError{}
		require.ErrorAs(t, err, &persistenceErr)
	})
}

func Test_allocationStore_OnMutate(t *testing.T) {
	t.Run("fires on every mutation kind", func(t *testing.T) {
		store := NewAllocationStore(nil)
		fired := 0
		store.OnMutate(func() { fired++ })

		require.NoError(t, store.Add("AAPL", decimal.NewFromFloat(0.6)))
		store.Remove("AAPL")
		store.ReplaceAll(map[string]domain.AllocationEntry{})
		store.Clear()

		require.Equal(t, 4, fired)
	})

	t.Run("does not fire on a rejected add", func(t *testing.T) {
		store := NewAllocationStore(nil)
		fired := 0
		store.OnMutate(func() { fired++ })

		require.Error(t, store.Add("", decimal.NewFromFloat(0.5)))

		require.Equal(t, 0, fired)
	})
}

func Test_allocationStore_Snapshot(t *testing.T) {
	t.Run("entries, total, completeness and version describe one instant", func(t *testing.T) {
		store := NewAllocationStore(nil)
		require.NoError(t, store.Add("AAPL", decimal.NewFromFloat(0.6)))
		require.NoError(t, store.Add("MSFT", decimal.NewFromFloat(0.4)))

		snapshot := store.Snapshot()

		require.Len(t, snapshot.Entries, 2)
		require.True(t, snapshot.Total.Equal(decimal.NewFromInt(1)))
		require.True(t, snapshot.Complete)
		require.Equal(t, store.Version(), snapshot.Version)
	})

	t.Run("later mutations do not leak into a taken snapshot", func(t *testing.T) {
		store := NewAllocationStore(nil)
		require.NoError(t, store.Add("AAPL", decimal.NewFromFloat(0.6)))

		snapshot := store.Snapshot()
		require.NoError(t, store.Add("MSFT", decimal.NewFromFloat(0.4)))

		require.Len(t, snapshot.Entries, 1)
		require.NotEqual(t, store.Version(), snapshot.Version)
	})
}
