package service

import (
	"context"
	"errors"
	"sync"

	"foliosync/internal/domain"
	"foliosync/internal/logger"
	"foliosync/internal/repository"

	"github.com/google/uuid"
)

// AnalysisService is the request pipeline between the allocation store and
// the analysis backend. At most one request is in flight per session, and a
// response that no longer matches the current allocation is discarded.
type AnalysisService interface {
	RequestAnalysis(ctx context.Context) (*domain.AnalysisResult, error)
	Result() *domain.AnalysisResult
	Invalidate()
}

type analysisServiceHandler struct {
	AnalysisRepository repository.AnalysisRepository
	Session            SessionService
	Store              AllocationStore

	mu       sync.Mutex
	inFlight bool
	epoch    int64
	result   *domain.AnalysisResult
}

func NewAnalysisService(
	analysisRepository repository.AnalysisRepository,
	session SessionService,
	store AllocationStore,
) AnalysisService {
	handler := &analysisServiceHandler{
		AnalysisRepository: analysisRepository,
		Session:            session,
		Store:              store,
	}
	store.OnMutate(handler.Invalidate)
	return handler
}

func (h *analysisServiceHandler) RequestAnalysis(ctx context.Context) (*domain.AnalysisResult, error) {
	principal := h.Session.Principal()
	if principal == nil {
		return nil, errors.New("cannot request analysis without an active session")
	}

	// Completeness, entries and version come from one store snapshot, and
	// the epoch is read while no Invalidate can interleave; a mutation
	// either lands before this block (and is part of the snapshot) or
	// bumps the epoch afterwards and fails the completion check.
	h.mu.Lock()
	if h.inFlight {
		h.mu.Unlock()
		return nil, domain.ErrAnalysisInFlight
	}
	snapshot := h.Store.Snapshot()
	if !snapshot.Complete {
		h.mu.Unlock()
		return nil, domain.IncompleteAllocationError{Total: snapshot.Total}
	}
	h.inFlight = true
	epoch := h.epoch
	h.mu.Unlock()

	requestID := uuid.New()
	log := logger.FromContext(ctx)
	log.Infof("dispatching analysis request %s for %d positions", requestID, len(snapshot.Entries))

	result, err := h.AnalysisRepository.GetPortfolioEquity(ctx, *principal, snapshot.Entries)

	// Read outside h.mu: principal changes arrive holding the session
	// tracker's lock and fan out into Invalidate.
	current := h.Session.Principal()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.inFlight = false

	if err != nil {
		return nil, err
	}

	if current == nil || current.ID != principal.ID || h.epoch != epoch {
		log.Infof("discarding analysis response %s: allocation or session changed mid-flight", requestID)
		return nil, domain.ErrStaleAnalysis
	}

	h.result = result
	return result, nil
}

// Result returns the latest analysis for the current allocation, or nil.
func (h *analysisServiceHandler) Result() *domain.AnalysisResult {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.result
}

// Invalidate drops the held result and marks every in-flight request
// stale. Wired as the store's mutation hook so a stale curve is never
// visible alongside an edited allocation.
func (h *analysisServiceHandler) Invalidate() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.epoch++
	h.result = nil
}
