package user

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fkhayef/blog/internal/docstore"
	"github.com/fkhayef/blog/internal/validation"
	"github.com/fkhayef/blog/pkg/response"
)

// Handler handles HTTP requests for user operations
type Handler struct {
	service *Service
}

// NewHandler creates a new user handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for user endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)

	return r
}

// Create handles POST /users
// @Summary      Create a new user
// @Description  Create a user with a unique username and email
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body CreateUserRequest true "User creation request"
// @Success      200 {object} response.Created
// @Failure      400 {object} response.ErrorResponse
// @Router       /users [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if verr, ok := validation.FromDecode(err); ok {
			response.Invalid(w, verr.Error(), verr.Fields)
			return
		}
		response.BadRequest(w, "Invalid request body")
		return
	}

	id, err := h.service.Create(r.Context(), &req)
	if err != nil {
		var verr *validation.Error
		switch {
		case errors.As(err, &verr):
			response.Invalid(w, verr.Error(), verr.Fields)
		case errors.Is(err, ErrUsernameExists):
			response.Conflict(w, "Username already exists")
		case errors.Is(err, ErrEmailExists):
			response.Conflict(w, "Email already exists")
		case errors.Is(err, ErrUserExists):
			response.Conflict(w, "User already exists")
		default:
			log.Printf("create user: %v", err)
			response.InternalError(w, docstore.Detail(err))
		}
		return
	}

	response.JSON(w, http.StatusOK, response.Created{ID: id})
}

// List handles GET /users
// @Summary      List all users
// @Description  Get every user in storage order
// @Tags         users
// @Produce      json
// @Success      200 {array} UserResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /users [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		log.Printf("list users: %v", err)
		response.InternalError(w, docstore.Detail(err))
		return
	}

	userResponses := make([]*UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = user.ToResponse()
	}

	response.JSON(w, http.StatusOK, userResponses)
}
