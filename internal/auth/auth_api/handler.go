package auth_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"club-events/internal/auth"
	"club-events/internal/logger"
	"club-events/internal/models"
	"club-events/internal/utils"
)

type Handler struct {
	AuthService *auth.Service
	Logger      *logger.Logger
}

// Login verifies credentials and sets the session cookie.
// POST /api/login {username, password} -> {club: {id, name, username}}
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		utils.WriteError(w, http.StatusBadRequest, "Missing credentials")
		return
	}

	club, session, token, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			utils.WriteError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		h.Logger.Error("AUTH", fmt.Sprintf("Login failed: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	h.AuthService.SetSessionCookie(w, token, session.ExpiresAt)
	utils.WriteJSON(w, http.StatusOK, map[string]models.ClubInfo{
		"club": {ID: club.ID, Name: club.Name, Username: club.Username},
	})
}

// Logout invalidates the session and clears the cookie. Idempotent.
// POST /api/logout -> {ok: true}
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.AuthService.Logout(r.Context(), h.AuthService.TokenFromRequest(r)); err != nil {
		h.Logger.Error("AUTH", fmt.Sprintf("Logout failed: %v", err))
	}
	h.AuthService.ClearSessionCookie(w)
	utils.WriteOK(w)
}

// Me resolves the session to its club, {club: null} when there is none.
// GET /api/me -> {club: {...} | null}
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	club, err := h.AuthService.CurrentClub(r.Context(), h.AuthService.TokenFromRequest(r))
	if err != nil {
		h.Logger.Error("AUTH", fmt.Sprintf("Session lookup failed: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Session lookup failed")
		return
	}
	if club == nil {
		utils.WriteJSON(w, http.StatusOK, map[string]*models.ClubInfo{"club": nil})
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]models.ClubInfo{
		"club": {ID: club.ID, Name: club.Name, Username: club.Username},
	})
}
