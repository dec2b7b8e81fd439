package post

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

// Handler handles HTTP requests for post and comment operations
type Handler struct {
	service *Service
}

// NewHandler creates a new post handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for post endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Post("/{id}/comments", h.AddComment)

	return r
}

// Create handles POST /posts
// @Summary      Create a new post
// @Description  Create a post by an existing author; tags default to [] and published to true
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        request body CreatePostRequest true "Post creation request"
// @Success      200 {object} response.Created
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /posts [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeError(w, err)
		return
	}

	id, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, "create post", err)
		return
	}

	response.JSON(w, http.StatusOK, response.Created{ID: id})
}

// List handles GET /posts
// @Summary      List posts
// @Description  List posts newest first, optionally by tag membership and author
// @Tags         posts
// @Produce      json
// @Param        tag query string false "Only posts carrying this tag"
// @Param        author query string false "Only posts by this username"
// @Success      200 {array} PostResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /posts [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Tag:    r.URL.Query().Get("tag"),
		Author: r.URL.Query().Get("author"),
	}

	posts, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.writeError(w, "list posts", err)
		return
	}

	postResponses := make([]*PostResponse, len(posts))
	for i, post := range posts {
		postResponses[i] = post.ToResponse()
	}

	response.JSON(w, http.StatusOK, postResponses)
}

// GetByID handles GET /posts/{id}
// @Summary      Get post by ID
// @Description  Get a single post with its comments
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post ID"
// @Success      200 {object} PostResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /posts/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, "get post", err)
		return
	}

	response.JSON(w, http.StatusOK, post.ToResponse())
}

// AddComment handles POST /posts/{id}/comments
// @Summary      Comment on a post
// @Description  Append a comment by an existing user to a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id path string true "Post ID"
// @Param        request body CreateCommentRequest true "Comment"
// @Success      200 {object} response.OK
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /posts/{id}/comments [post]
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if err := h.service.AddComment(r.Context(), chi.URLParam(r, "id"), &req); err != nil {
		h.writeError(w, "add comment", err)
		return
	}

	response.JSON(w, http.StatusOK, response.OK{OK: true})
}

func (h *Handler) writeError(w http.ResponseWriter, op string, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		response.Invalid(w, verr.Error(), verr.Fields)
	case errors.Is(err, ErrInvalidID):
		response.BadRequest(w, "Invalid id")
	case errors.Is(err, ErrAuthorNotFound):
		response.NotFound(w, "Author not found")
	case errors.Is(err, ErrCommentAuthorNotFound):
		response.NotFound(w, "Comment author not found")
	case errors.Is(err, ErrPostNotFound):
		response.NotFound(w, "Post not found")
	default:
		log.Printf("%s: %v", op, err)
		response.InternalError(w, docstore.Detail(err))
	}
}

func writeDecodeError(w http.ResponseWriter, err error) {
	if verr, ok := validation.FromDecode(err); ok {
		response.Invalid(w, verr.Error(), verr.Fields)
		return
	}
	response.BadRequest(w, "Invalid request body")
}
