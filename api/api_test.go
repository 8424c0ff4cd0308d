package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"foliosync/internal/domain"
	"foliosync/internal/service"

	"github.com/stretchr/testify/require"
)

func Test_statusCodeForError(t *testing.T) {
	t.Run("taxonomy mapping", func(t *testing.T) {
		require.Equal(t, 400, statusCodeForError(domain.ValidationError{Reason: "bad"}))
		require.Equal(t, 400, statusCodeForError(domain.IncompleteAllocationError{}))
		require.Equal(t, 409, statusCodeForError(domain.ErrAnalysisInFlight))
		require.Equal(t, 502, statusCodeForError(domain.AnalysisBackendError{StatusCode: 500}))
		require.Equal(t, 502, statusCodeForError(domain.NetworkError{Err: errors.New("refused")}))
		require.Equal(t, 502, statusCodeForError(domain.PersistenceError{Err: errors.New("refused")}))
		require.Equal(t, 500, statusCodeForError(errors.New("anything else")))
	})
}

func Test_mapAnalysisResult(t *testing.T) {
	t.Run("series flattens into parallel arrays", func(t *testing.T) {
		out := mapAnalysisResult(domain.AnalysisResult{
			Series: []domain.SeriesPoint{
				{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Value: 10000},
				{Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Value: 10150},
			},
			Metrics: domain.AnalysisMetrics{TotalReturnPct: 1.5},
		})

		require.Equal(t, []string{"2024-01-02", "2024-01-03"}, out.Dates)
		require.Equal(t, []float64{10000, 10150}, out.Values)
		require.Equal(t, 1.5, out.Metrics.TotalReturnPct)
	})
}

func Test_positionsEndpoints(t *testing.T) {
	t.Run("add then remove through the router", func(t *testing.T) {
		handler := ApiHandler{
			AllocationStore: service.NewAllocationStore(nil),
		}
		engine := handler.InitializeRouterEngine()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/positions", strings.NewReader(`{"ticker": "aapl", "weight": 0.6}`))
		engine.ServeHTTP(w, req)
		require.Equal(t, 200, w.Code)
		require.Contains(t, w.Body.String(), `"AAPL"`)

		w = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodPost, "/positions", strings.NewReader(`{"ticker": "msft", "weight": 0.9}`))
		engine.ServeHTTP(w, req)
		require.Equal(t, 400, w.Code)

		w = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodDelete, "/positions/AAPL", nil)
		engine.ServeHTTP(w, req)
		require.Equal(t, 200, w.Code)
		require.Contains(t, w.Body.String(), `"totalWeight":0`)
	})
}
