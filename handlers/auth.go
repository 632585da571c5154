package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/mylittlefarma/pharmacy-api/entities"
	"github.com/mylittlefarma/pharmacy-api/logging"
	"github.com/mylittlefarma/pharmacy-api/store"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signupRequest struct {
	Username string        `json:"username"`
	Email    string        `json:"email"`
	Password string        `json:"password"`
	Role     entities.Role `json:"role"`
}

// Login authenticates a user and hands back the session record the client
// stores. The token is a fresh UUID the server never checks again; identity
// stays client-asserted, as the rest of the system assumes.
func (h *HTTPHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.RespondWithJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}

	user, err := h.store.AuthenticateUser(r.Context(), req.Username, req.Password)
	if errors.Is(err, store.ErrNotFound) {
		h.RespondWithJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
		return
	}
	if err != nil {
		logging.Error("Login failed", "error", err, "username", req.Username)
		h.RespondWithError(w, http.StatusInternalServerError, "login failed")
		return
	}

	h.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Login successful",
		"token":    uuid.NewString(),
		"username": user.Username,
		"role":     user.Role,
	})
}

// Signup registers a new user.
func (h *HTTPHandlerImpl) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.RespondWithJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}

	if err := h.validator.ValidateSignup(req.Username, req.Email, req.Password, req.Role); err != nil {
		h.RespondWithJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}

	err := h.store.CreateUser(r.Context(), req.Username, req.Email, req.Password, req.Role)
	if errors.Is(err, store.ErrUserExists) {
		h.RespondWithJSON(w, http.StatusConflict, map[string]string{"message": "Username already exists"})
		return
	}
	if err != nil {
		logging.Error("Signup failed", "error", err, "username", req.Username)
		h.RespondWithError(w, http.StatusInternalServerError, "signup failed")
		return
	}

	logging.Info("User created", "username", req.Username, "role", req.Role)
	h.RespondWithJSON(w, http.StatusCreated, map[string]string{"message": "User created successfully"})
}
