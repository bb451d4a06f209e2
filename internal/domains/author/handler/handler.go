package handler

import (
	"net/http"

	"catalog-backend/internal/domains/author/model"
	"catalog-backend/internal/domains/author/service"
	"catalog-backend/internal/shared/apperror"
	"catalog-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListAuthors - GET /authors/
func (h *Handler) ListAuthors(c *gin.Context) {
	authors, err := h.service.ListAuthors(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, authors)
}

// GetAuthor - GET /authors/:id/
func (h *Handler) GetAuthor(c *gin.Context) {
	id, ok := authorID(c)
	if !ok {
		return
	}
	author, err := h.service.GetAuthor(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, author)
}

// CreateAuthor - POST /authors/
func (h *Handler) CreateAuthor(c *gin.Context) {
	var req model.AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Validation(apperror.CodeInvalidInput, "Malformed request body", nil))
		return
	}
	author, err := h.service.CreateAuthor(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, author)
}

// UpdateAuthor - PUT /authors/:id/
func (h *Handler) UpdateAuthor(c *gin.Context) { h.update(c, false) }

// PatchAuthor - PATCH /authors/:id/
func (h *Handler) PatchAuthor(c *gin.Context) { h.update(c, true) }

func (h *Handler) update(c *gin.Context, partial bool) {
	id, ok := authorID(c)
	if !ok {
		return
	}
	var req model.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.Validation(apperror.CodeInvalidInput, "Malformed request body", nil))
		return
	}
	req.Partial = partial

	author, err := h.service.UpdateAuthor(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, author)
}

// DeleteAuthor - DELETE /authors/:id/ (cascades to the author's books)
func (h *Handler) DeleteAuthor(c *gin.Context) {
	id, ok := authorID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteAuthor(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}

func authorID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		response.FromError(c, apperror.NotFound("Author", raw))
		return uuid.Nil, false
	}
	return id, true
}
