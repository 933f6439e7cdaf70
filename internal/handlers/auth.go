package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/miky2184/chargeability-manager-api/internal/auth"
	"github.com/miky2184/chargeability-manager-api/internal/middleware"
	"github.com/miky2184/chargeability-manager-api/internal/repo"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Users  *repo.UserRepo
	Tokens *auth.TokenManager
}

// ==========================
// Token (form login -> bearer token)
// ==========================
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.Unauthorized(w)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		middleware.Unauthorized(w)
		return
	}

	user, err := h.Users.FindByUsername(r.Context(), username)
	if err != nil || !auth.VerifyPassword(password, user.HashedPassword) {
		middleware.Unauthorized(w)
		return
	}

	token, err := h.Tokens.Issue(user.Username)
	if err != nil {
		slog.Error("token: signing failed", "error", err)
		QueryFailure(w)
		return
	}

	WriteJSON(w, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// ==========================
// Register
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string  `json:"username" validate:"required,min=2,max=64"`
		Email    string  `json:"email" validate:"required,email"`
		Password string  `json:"password" validate:"required,min=8"`
		FullName *string `json:"full_name" validate:"omitempty,max=255"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if err := validator.New().Struct(input); err != nil {
		JSONError(w, "validation failed", http.StatusBadRequest)
		return
	}

	digest, err := auth.HashPassword(input.Password)
	if err != nil {
		slog.Error("register: hashing failed", "error", err)
		QueryFailure(w)
		return
	}

	id, err := h.Users.Create(r.Context(), input.Username, input.Email, digest, input.FullName)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			w.WriteHeader(http.StatusConflict)
			return
		}
		slog.Error("register: create user failed", "error", err)
		QueryFailure(w)
		return
	}

	WriteJSON(w, map[string]any{
		"id":      id,
		"message": "user created",
	})
}
