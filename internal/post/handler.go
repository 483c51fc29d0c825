package post

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/esposm03/my-cms/internal/shared/httpx"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Create handles POST /post. On success the body is the new post's id
// as a plain-text uuid.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	in, err := httpx.Decode[SubmitData](r)
	if err != nil {
		return httpx.BadRequest("malformed json")
	}
	if in.Title == nil {
		return httpx.BadRequest("missing title")
	}
	if in.Content == nil {
		return httpx.BadRequest("missing content")
	}

	id, err := h.svc.Create(r.Context(), *in.Title, *in.Content)
	if errors.Is(err, ErrValidation) {
		return httpx.BadRequest("title must not be empty")
	}
	if err != nil {
		return err
	}

	httpx.WriteText(w, id.String(), http.StatusOK)
	return nil
}

// Get handles GET /post/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) error {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return httpx.BadRequest("invalid post id")
	}

	p, err := h.svc.Get(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		return httpx.NotFound()
	}
	if err != nil {
		return err
	}

	httpx.WriteJSON(w, p, http.StatusOK)
	return nil
}

// List handles GET /posts. An empty database yields an empty array.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	posts, err := h.svc.List(r.Context())
	if err != nil {
		return err
	}

	httpx.WriteJSON(w, posts, http.StatusOK)
	return nil
}
