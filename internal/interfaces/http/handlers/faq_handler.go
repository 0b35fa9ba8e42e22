package handlers

import (
	"context"
	"net/http"

	"gem-auction.backend/internal/domain/entities"
	"gem-auction.backend/internal/interfaces/http/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FAQService interface {
	ListPublished(ctx context.Context) ([]*entities.FAQ, error)
	ListAll(ctx context.Context) ([]*entities.FAQ, error)
	Create(ctx context.Context, input *entities.FAQInput) (*entities.FAQ, error)
	Update(ctx context.Context, id uuid.UUID, input *entities.FAQInput) (*entities.FAQ, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type FAQHandler struct {
	faqUsecase FAQService
}

func NewFAQHandler(faqUsecase FAQService) *FAQHandler {
	return &FAQHandler{faqUsecase: faqUsecase}
}

// ListPublished GET /api/faqs
func (h *FAQHandler) ListPublished(c *gin.Context) {
	faqs, err := h.faqUsecase.ListPublished(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, faqs)
}

// ListAll GET /api/admin/faqs
func (h *FAQHandler) ListAll(c *gin.Context) {
	faqs, err := h.faqUsecase.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, faqs)
}

// Create POST /api/admin/faqs
func (h *FAQHandler) Create(c *gin.Context) {
	var input entities.FAQInput
	if !bindJSON(c, &input) {
		return
	}

	faq, err := h.faqUsecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, faq)
}

// Update PUT /api/admin/faqs/:id
func (h *FAQHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id", "FAQ")
	if !ok {
		return
	}
	var input entities.FAQInput
	if !bindJSON(c, &input) {
		return
	}

	faq, err := h.faqUsecase.Update(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, faq)
}

// Delete DELETE /api/admin/faqs/:id
func (h *FAQHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id", "FAQ")
	if !ok {
		return
	}

	if err := h.faqUsecase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "FAQ deleted")
}
