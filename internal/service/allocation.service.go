package service

import (
	"context"
	"errors"
	"sync"

	"foliosync/internal/domain"
	"foliosync/internal/repository"

	"github.com/shopspring/decimal"
)

// AllocationStore owns the in-memory target allocation for the active
// session. All mutations go through it; the analysis pipeline and session
// tracker only ever read snapshots.
type AllocationStore interface {
	Add(ticker string, weight decimal.Decimal) error
	Remove(ticker string)
	ReplaceAll(entries map[string]domain.AllocationEntry)
	Clear()
	Entries() map[string]domain.AllocationEntry
	Total() decimal.Decimal
	IsComplete() bool
	Version() int64
	Snapshot() AllocationSnapshot
	SetPrincipal(principal *domain.Principal)
	Persist(ctx context.Context) error
	OnMutate(fn func())
}

// AllocationSnapshot is one consistent view of the store, taken under a
// single lock acquisition. Entries, completeness and version all describe
// the same instant; readers that need more than one of them must not
// assemble the view from separate calls.
type AllocationSnapshot struct {
	Entries  map[string]domain.AllocationEntry
	Total    decimal.Decimal
	Complete bool
	Version  int64
}

type allocationStoreHandler struct {
	DocumentRepository repository.DocumentRepository

	mu        sync.Mutex
	principal *domain.Principal
	entries   map[string]domain.AllocationEntry
	total     decimal.Decimal
	version   int64
	onMutate  func()
}

func NewAllocationStore(documentRepository repository.DocumentRepository) AllocationStore {
	return &allocationStoreHandler{
		DocumentRepository: documentRepository,
		entries:            map[string]domain.AllocationEntry{},
		total:              decimal.Zero,
	}
}

func (h *allocationStoreHandler) OnMutate(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onMutate = fn
}

// Add inserts or overwrites the entry keyed by normalized ticker. The
// resulting total may never exceed 1 plus tolerance; a rejected add leaves
// the store untouched.
func (h *allocationStoreHandler) Add(ticker string, weight decimal.Decimal) error {
	normalized := domain.NormalizeTicker(ticker)
	if normalized == "" {
		return domain.ValidationError{Reason: "ticker must not be empty"}
	}
	if weight.LessThanOrEqual(decimal.Zero) {
		return domain.ValidationError{Reason: "weight must be greater than 0"}
	}

	h.mu.Lock()
	newTotal := h.total.Add(weight)
	if existing, ok := h.entries[normalized]; ok {
		newTotal = newTotal.Sub(existing.Weight)
	}
	if newTotal.GreaterThan(decimal.NewFromInt(1).Add(domain.WeightEpsilon)) {
		h.mu.Unlock()
		return domain.ValidationError{
			Reason: "total weight would exceed 1: " + newTotal.String(),
		}
	}

	h.entries[normalized] = domain.AllocationEntry{
		Ticker: normalized,
		Weight: weight,
	}
	h.total = newTotal
	h.version++
	onMutate := h.onMutate
	h.mu.Unlock()

	if onMutate != nil {
		onMutate()
	}
	return nil
}

// Remove is idempotent; removing an absent ticker is a no-op.
func (h *allocationStoreHandler) Remove(ticker string) {
	normalized := domain.NormalizeTicker(ticker)

	h.mu.Lock()
	existing, ok := h.entries[normalized]
	if !ok {
		h.mu.Unlock()
		return
	}
	delete(h.entries, normalized)
	h.total = h.total.Sub(existing.Weight)
	h.version++
	onMutate := h.onMutate
	h.mu.Unlock()

	if onMutate != nil {
		onMutate()
	}
}

// ReplaceAll loads a persisted snapshot. The snapshot is trusted verbatim
// and bypasses the incremental sum check; the total is recomputed so later
// validation still sees it.
func (h *allocationStoreHandler) ReplaceAll(entries map[string]domain.AllocationEntry) {
	copied := domain.CopyEntries(entries)

	h.mu.Lock()
	h.entries = copied
	h.total = domain.SumWeights(copied)
	h.version++
	onMutate := h.onMutate
	h.mu.Unlock()

	if onMutate != nil {
		onMutate()
	}
}

func (h *allocationStoreHandler) Clear() {
	h.mu.Lock()
	h.entries = map[string]domain.AllocationEntry{}
	h.total = decimal.Zero
	h.version++
	onMutate := h.onMutate
	h.mu.Unlock()

	if onMutate != nil {
		onMutate()
	}
}

func (h *allocationStoreHandler) Entries() map[string]domain.AllocationEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return domain.CopyEntries(h.entries)
}

func (h *allocationStoreHandler) Total() decimal.Decimal {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.total
}

func (h *allocationStoreHandler) IsComplete() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return domain.IsFullyAllocated(h.total)
}

// Version increments on every mutation. The analysis pipeline captures it
// at dispatch to discard responses for allocations that no longer exist.
func (h *allocationStoreHandler) Version() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.version
}

func (h *allocationStoreHandler) Snapshot() AllocationSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return AllocationSnapshot{
		Entries:  domain.CopyEntries(h.entries),
		Total:    h.total,
		Complete: domain.IsFullyAllocated(h.total),
		Version:  h.version,
	}
}

func (h *allocationStoreHandler) SetPrincipal(principal *domain.Principal) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.principal = principal
}

// Persist writes the allocation as it exists at the moment of the call;
// mutations racing with the remote write do not leak into the payload. The
// in-memory state is not rolled back on failure - local state stays the
// source of truth until the next load.
func (h *allocationStoreHandler) Persist(ctx context.Context) error {
	h.mu.Lock()
	principal := h.principal
	snapshot := domain.CopyEntries(h.entries)
	h.mu.Unlock()

	if principal == nil {
		return domain.PersistenceError{Err: errors.New("no active session")}
	}

	if err := h.DocumentRepository.WriteDocument(ctx, *principal, snapshot); err != nil {
		return domain.PersistenceError{Err: err}
	}

	return nil
}
