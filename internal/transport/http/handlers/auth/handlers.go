package authhandler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"paiefacile/internal/domain/auth"
	"paiefacile/internal/domain/core"
	"paiefacile/internal/transport/http/api"
)

type Handler struct {
	Store     *core.Store
	JWTSecret string
}

func NewHandler(store *core.Store, jwtSecret string) *Handler {
	return &Handler{Store: store, JWTSecret: jwtSecret}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type loginResponse struct {
	User  loginUser `json:"user"`
	Roles []string  `json:"roles"`
	Token string    `json:"token"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Error(w, http.StatusBadRequest, "Identifiants invalides")
		return
	}

	user, err := h.Store.GetUserByEmail(r.Context(), payload.Email)
	if errors.Is(err, core.ErrUserNotFound) {
		api.Error(w, http.StatusUnauthorized, "Identifiants invalides")
		return
	}
	if err != nil {
		log.Printf("login lookup failed: %v", err)
		api.Error(w, http.StatusInternalServerError, "Erreur lors de la connexion")
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, payload.Password); err != nil {
		api.Error(w, http.StatusUnauthorized, "Identifiants invalides")
		return
	}

	roles := user.Roles
	if roles == nil {
		roles = []string{}
	}

	token, err := auth.GenerateToken(h.JWTSecret, auth.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Roles:  roles,
	}, auth.TokenTTL)
	if err != nil {
		log.Printf("login token generation failed: %v", err)
		api.Error(w, http.StatusInternalServerError, "Erreur lors de la connexion")
		return
	}

	api.JSON(w, loginResponse{
		User:  loginUser{ID: user.ID, Email: user.Email},
		Roles: roles,
		Token: token,
	})
}
