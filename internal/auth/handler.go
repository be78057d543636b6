// AngelaMos | 2026
// handler.go

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/wear-shop/internal/account"
	"github.com/carterperez-dev/wear-shop/internal/core"
	"github.com/carterperez-dev/wear-shop/internal/middleware"
)

type AccountReader interface {
	GetAccount(
		ctx context.Context,
		id string,
		actor account.Actor,
	) (*account.PublicView, error)
}

type Handler struct {
	service   *Service
	accounts  AccountReader
	validator *validator.Validate
}

func NewHandler(service *Service, accounts AccountReader) *Handler {
	return &Handler{
		service:   service,
		accounts:  accounts,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/token", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Get("/me", h.GetMe)
			r.Post("/logout", h.Logout)
		})
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	req.Normalize()
	if err := h.validator.Struct(req); err != nil {
		core.Unprocessable(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			core.Unauthorized(w, "invalid email or password")
			return
		}
		core.WriteError(w, r, err, "account")
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.ExtractToken(r)
	if token == "" {
		core.Unauthorized(w, "")
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		core.WriteError(w, r, err, "token")
		return
	}

	core.NoContent(w)
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	actor, ok := account.ActorFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	view, err := h.accounts.GetAccount(r.Context(), actor.ID, actor)
	if err != nil {
		core.WriteError(w, r, err, "account")
		return
	}

	core.OK(w, view)
}
