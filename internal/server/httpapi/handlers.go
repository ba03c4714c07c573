package httpapi

import (
	"net/http"

	"github.com/evetodo/eve-server/internal/logging"
	"github.com/evetodo/eve-server/internal/server/services"
)

// Handlers holds the services the HTTP endpoints delegate to.
type Handlers struct {
	sessions   *services.SessionService
	accounts   *services.AccountService
	projects   *services.ProjectService
	todos      *services.TodoService
	identity   *services.IdentityResolver
	cookieName string
	logger     logging.Logger
}

func NewHandlers(sessions *services.SessionService, accounts *services.AccountService,
	projects *services.ProjectService, todos *services.TodoService,
	identity *services.IdentityResolver, cookieName string, logger logging.Logger) *Handlers {
	return &Handlers{
		sessions:   sessions,
		accounts:   accounts,
		projects:   projects,
		todos:      todos,
		identity:   identity,
		cookieName: cookieName,
		logger:     logger,
	}
}

func (h *Handlers) sessionCookieValue(r *http.Request) string {
	c, err := r.Cookie(h.cookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

func (h *Handlers) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
}

// resolveIdentity combines the session cookie and the Authorization header
// into an account identity. The bool is false for anonymous requests.
func (h *Handlers) resolveIdentity(r *http.Request) (int64, bool, error) {
	_, data, err := h.sessions.Resolve(r.Context(), h.sessionCookieValue(r))
	if err != nil {
		return 0, false, err
	}
	accountID, ok := h.identity.Resolve(r.Header.Get("Authorization"), data)
	return accountID, ok, nil
}

// requireAccount resolves the identity and writes the error response itself
// when the request is anonymous. Handlers should return immediately when the
// bool is false.
func (h *Handlers) requireAccount(w http.ResponseWriter, r *http.Request) (int64, bool) {
	accountID, ok, err := h.resolveIdentity(r)
	if err != nil {
		h.logger.Error(r.Context(), "resolving request identity", "error", err)
		writeServiceError(w, err)
		return 0, false
	}
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized.")
		return 0, false
	}
	return accountID, true
}
