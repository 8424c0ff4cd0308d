package service

import (
	"context"
	"sync"

	"foliosync/internal/domain"
	"foliosync/internal/logger"
	"foliosync/internal/repository"
)

// SessionService tracks the identity provider's principal changes and
// drives the allocation store's lifecycle: populate on sign-in, clear on
// sign-out. It issues exactly one document read per principal acquisition
// and never retries a failed load on its own.
type SessionService interface {
	Start() (stop func())
	Principal() *domain.Principal
	LoadError() error
}

type sessionServiceHandler struct {
	IdentityRepository repository.IdentityRepository
	DocumentRepository repository.DocumentRepository
	Store              AllocationStore

	mu         sync.Mutex
	principal  *domain.Principal
	loadErr    error
	generation int64
}

func NewSessionService(
	identityRepository repository.IdentityRepository,
	documentRepository repository.DocumentRepository,
	store AllocationStore,
) SessionService {
	return &sessionServiceHandler{
		IdentityRepository: identityRepository,
		DocumentRepository: documentRepository,
		Store:              store,
	}
}

// Start subscribes to principal changes. Call it once for the lifetime of
// the application; the returned func tears the subscription down.
func (h *sessionServiceHandler) Start() func() {
	return h.IdentityRepository.OnPrincipalChange(h.handlePrincipalChange)
}

func (h *sessionServiceHandler) Principal() *domain.Principal {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.principal
}

// LoadError reports the failure of the last document load, if any. It is
// recoverable: the store is simply empty and the user can save over it.
func (h *sessionServiceHandler) LoadError() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loadErr
}

func (h *sessionServiceHandler) handlePrincipalChange(principal *domain.Principal) {
	h.mu.Lock()
	// The previous session's allocation must be gone before anything can
	// read state for the new principal, signed-in or not.
	h.Store.Clear()
	h.Store.SetPrincipal(principal)
	h.principal = principal
	h.loadErr = nil
	h.generation++
	generation := h.generation
	h.mu.Unlock()

	if principal == nil {
		return
	}

	ctx := context.Background()
	doc, err := h.DocumentRepository.ReadDocument(ctx, *principal)

	h.mu.Lock()
	defer h.mu.Unlock()
	if generation != h.generation {
		// Another sign-in or sign-out superseded this load while the read
		// was in flight; its contents belong to a session that no longer
		// exists and must not reach the store.
		logger.FromContext(ctx).Warnf("discarding superseded allocation load for user %s", principal.ID)
		return
	}
	if err != nil {
		logger.FromContext(ctx).Warnf("failed to load persisted allocation for user %s: %v", principal.ID, err)
		h.loadErr = err
		return
	}
	if doc == nil {
		// First session for this user; nothing persisted yet.
		return
	}

	h.Store.ReplaceAll(doc.Positions)
}
