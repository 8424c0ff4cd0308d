package repository

import (
	"context"
	"net/http"
	"sync"

	"foliosync/internal/domain"
	"foliosync/internal/logger"
	"foliosync/pkg/googleauth"

	"golang.org/x/oauth2"
)

//go:generate mockgen -destination=mocks/identity.repository_mock.go -package=mock_repository . IdentityRepository

// IdentityRepository fronts the external identity provider. Subscribers
// receive the current Principal, or nil on sign-out, once per underlying
// change. Notification is synchronous so state derived from the session can
// be cleared before anything else observes the change.
type IdentityRepository interface {
	OnPrincipalChange(fn func(*domain.Principal)) (unsubscribe func())
	SignIn(ctx context.Context, rawIDToken string) (*domain.Principal, error)
	SignOut(ctx context.Context) error
	CurrentPrincipal() *domain.Principal
}

type googleIdentityHandler struct {
	SigningSecret string
	UserInfo      googleauth.Client

	mu          sync.Mutex
	current     *domain.Principal
	subscribers map[int]func(*domain.Principal)
	nextID      int
}

func NewGoogleIdentityRepository(signingSecret string) IdentityRepository {
	return &googleIdentityHandler{
		SigningSecret: signingSecret,
		UserInfo:      googleauth.Client{HttpClient: http.DefaultClient},
		subscribers:   map[int]func(*domain.Principal){},
	}
}

func (h *googleIdentityHandler) OnPrincipalChange(fn func(*domain.Principal)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	h.subscribers[id] = fn

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers, id)
	}
}

// SignIn verifies the identity token and publishes the new Principal. An
// empty token means the user backed out of the sign-in flow; that is not an
// error, the session just stays signed out.
func (h *googleIdentityHandler) SignIn(ctx context.Context, rawIDToken string) (*domain.Principal, error) {
	if rawIDToken == "" {
		return nil, nil
	}

	claims, err := googleauth.ParseIdentityToken(rawIDToken, h.SigningSecret)
	if err != nil {
		return nil, err
	}

	principal := &domain.Principal{
		ID:          claims.Subject,
		DisplayName: claims.Name,
		Email:       claims.Email,
		PhotoURL:    claims.PictureURL,
		RawToken:    rawIDToken,
	}

	if principal.DisplayName == "" || principal.PhotoURL == "" {
		details, err := h.UserInfo.GetUserDetails(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: rawIDToken,
		}))
		if err != nil {
			// the session still works without a profile, just undecorated
			logger.Warn("failed to fetch userinfo for %s: %v", principal.ID, err)
		} else {
			if principal.DisplayName == "" {
				principal.DisplayName = details.FirstName + " " + details.LastName
			}
			if principal.PhotoURL == "" {
				principal.PhotoURL = details.PictureUrl
			}
			if principal.Email == "" {
				principal.Email = details.Email
			}
		}
	}

	h.publish(principal)
	return principal, nil
}

func (h *googleIdentityHandler) SignOut(ctx context.Context) error {
	h.publish(nil)
	return nil
}

func (h *googleIdentityHandler) CurrentPrincipal() *domain.Principal {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

func (h *googleIdentityHandler) publish(principal *domain.Principal) {
	h.mu.Lock()
	h.current = principal
	subscribers := make([]func(*domain.Principal), 0, len(h.subscribers))
	for _, fn := range h.subscribers {
		subscribers = append(subscribers, fn)
	}
	h.mu.Unlock()

	for _, fn := range subscribers {
		fn(principal)
	}
}
