package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/evetodo/eve-server/internal/server/models"
)

type registerRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type updateAccountRequest struct {
	Username    *string `json:"username"`
	DisplayName *string `json:"display_name"`
	Password    *string `json:"password"`
}

type accountResponse struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	account, err := h.accounts.Register(r.Context(), req.Username, req.DisplayName, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, accountResponse{Username: account.Username, DisplayName: account.DisplayName})
}

// Login authenticates the credentials and binds the account to the caller's
// session. An existing anonymous session keeps its token; a caller without a
// session gets a fresh one either way.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	sessionID, _, err := h.sessions.Resolve(r.Context(), h.sessionCookieValue(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	account, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	token, err := h.sessions.Commit(r.Context(), sessionID, models.SessionData{AccountID: &account.ID})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.setSessionCookie(w, token)
	writeData(w, accountResponse{Username: account.Username, DisplayName: account.DisplayName})
}

// Logout clears the account binding but keeps the session row alive under the
// same token.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, _, err := h.sessions.Resolve(r.Context(), h.sessionCookieValue(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if sessionID != "" {
		token, err := h.sessions.Commit(r.Context(), sessionID, models.SessionData{})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		h.setSessionCookie(w, token)
	}

	writeMessage(w, "Logged out.")
}

// GetAccount reports the current account, or null for anonymous callers.
func (h *Handlers) GetAccount(w http.ResponseWriter, r *http.Request) {
	accountID, ok, err := h.resolveIdentity(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !ok {
		writeData(w, map[string]any{"user": nil})
		return
	}

	account, err := h.accounts.Get(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, map[string]any{"user": accountResponse{
		Username:    account.Username,
		DisplayName: account.DisplayName,
	}})
}

func (h *Handlers) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.requireAccount(w, r)
	if !ok {
		return
	}

	var req updateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if err := h.accounts.Update(r.Context(), accountID, req.Username, req.DisplayName, req.Password); err != nil {
		writeServiceError(w, err)
		return
	}

	writeMessage(w, "User is updated.")
}

// IssueToken exchanges credentials for a bearer access token, for clients
// that cannot carry cookies.
func (h *Handlers) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	token, err := h.accounts.IssueToken(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, tokenResponse{AccessToken: token, TokenType: "bearer"})
}
