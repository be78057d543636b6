// AngelaMos | 2026
// handler.go

package account

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/wear-shop/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/accounts", func(r chi.Router) {
		r.Post("/", h.Create)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			r.Get("/{accountID}", h.Get)
			r.Patch("/{accountID}", h.Update)
			r.Delete("/{accountID}", h.Delete)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	req.Normalize()
	if err := h.validator.Struct(req); err != nil {
		core.Unprocessable(w, core.FormatValidationError(err))
		return
	}

	view, err := h.service.CreateAccount(r.Context(), req.Input())
	if err != nil {
		core.WriteError(w, r, err, "account")
		return
	}

	core.Created(w, view)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	view, err := h.service.GetAccount(
		r.Context(),
		chi.URLParam(r, "accountID"),
		actor,
	)
	if err != nil {
		core.WriteError(w, r, err, "account")
		return
	}

	core.OK(w, view)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	var req UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	req.Normalize()
	if err := h.validator.Struct(req); err != nil {
		core.Unprocessable(w, core.FormatValidationError(err))
		return
	}

	changes := req.Changes()
	if changes.IsEmpty() {
		core.Unprocessable(
			w,
			"at least one parameter for account update should be provided",
		)
		return
	}

	updatedID, err := h.service.UpdateAccount(
		r.Context(),
		chi.URLParam(r, "accountID"),
		changes,
		actor,
	)
	if err != nil {
		core.WriteError(w, r, err, "account")
		return
	}

	core.OK(w, UpdatedResponse{UpdatedAccountID: updatedID})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	deletedID, err := h.service.SoftDeleteAccount(
		r.Context(),
		chi.URLParam(r, "accountID"),
		actor,
	)
	if err != nil {
		core.WriteError(w, r, err, "account")
		return
	}

	core.OK(w, DeletedResponse{DeletedAccountID: deletedID})
}
