package handler

import (
	"net/http"

	"catalog-backend/internal/domains/book/model"
	"catalog-backend/internal/domains/book/service"
	"catalog-backend/internal/shared/apperror"
	"catalog-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler - HTTP Handler for /books/, /books_all/ and the legacy write aliases.
type Handler struct {
	service service.ServiceInterface
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListBooks - GET /books/
// Query params: title, author, publication_year, search, ordering
func (h *Handler) ListBooks(c *gin.Context) {
	q, err := model.ParseBookQuery(c.Request.URL.Query())
	if err != nil {
		response.FromError(c, err)
		return
	}

	books, err := h.service.ListBooks(c.Request.Context(), q)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, books)
}

// GetBook - GET /books/:id/
func (h *Handler) GetBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	book, err := h.service.GetBook(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, book)
}

// CreateBook - POST /books/
func (h *Handler) CreateBook(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}

	book, err := h.service.CreateBook(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, book)
}

// UpdateBook - PUT /books/:id/
func (h *Handler) UpdateBook(c *gin.Context) {
	h.update(c, false)
}

// PatchBook - PATCH /books/:id/
func (h *Handler) PatchBook(c *gin.Context) {
	h.update(c, true)
}

func (h *Handler) update(c *gin.Context, partial bool) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	req.Partial = partial

	book, err := h.service.UpdateBook(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, book)
}

// DeleteBook - DELETE /books/:id/
func (h *Handler) DeleteBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteBook(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}

// bookID parses :id. A malformed id cannot match any book, so it is a 404.
func bookID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		response.FromError(c, apperror.NotFound("Book", raw))
		return uuid.Nil, false
	}
	return id, true
}

func badPayload(c *gin.Context, err error) {
	response.FromError(c, apperror.Validation(apperror.CodeInvalidInput, "Malformed request body", map[string]string{
		"non_field_errors": err.Error(),
	}))
}
