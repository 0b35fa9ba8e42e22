package handlers

import (
	"context"
	"net/http"
	"strconv"

	"gem-auction.backend/internal/domain/entities"
	domainerrors "gem-auction.backend/internal/domain/errors"
	"gem-auction.backend/internal/domain/policy"
	"gem-auction.backend/internal/domain/ports"
	"gem-auction.backend/internal/interfaces/http/middleware"
	"gem-auction.backend/internal/interfaces/http/response"
	"gem-auction.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GemstoneService interface {
	Create(ctx context.Context, actor policy.Subject, input *entities.GemstoneInput) (*entities.Gemstone, error)
	Update(ctx context.Context, actor policy.Subject, id uuid.UUID, input *entities.GemstoneInput) (*entities.Gemstone, error)
	UploadImages(ctx context.Context, actor policy.Subject, id uuid.UUID, files []ports.UploadedFile) (*entities.Gemstone, error)
	Submit(ctx context.Context, actor policy.Subject, id uuid.UUID) (*entities.Gemstone, error)
	StartReview(ctx context.Context, id uuid.UUID) (*entities.Gemstone, error)
	Verify(ctx context.Context, admin policy.Subject, id uuid.UUID) (*entities.Gemstone, error)
	Reject(ctx context.Context, admin policy.Subject, id uuid.UUID, reason string) (*entities.Gemstone, error)
	BulkUpdate(ctx context.Context, input *entities.GemstoneBulkUpdate) (int64, error)
	Deactivate(ctx context.Context, actor policy.Subject, id uuid.UUID) (*entities.Gemstone, error)
	GetByID(ctx context.Context, viewer policy.Subject, id uuid.UUID) (*entities.Gemstone, error)
	ListPublic(ctx context.Context, category string, featuredOnly bool, p utils.PaginationParams) ([]*entities.Gemstone, utils.PaginationMeta, error)
	ListMine(ctx context.Context, sellerID uuid.UUID, p utils.PaginationParams) ([]*entities.Gemstone, utils.PaginationMeta, error)
	ListPendingReview(ctx context.Context, p utils.PaginationParams) ([]*entities.Gemstone, utils.PaginationMeta, error)
	ListAll(ctx context.Context, status entities.GemVerificationStatus, p utils.PaginationParams) ([]*entities.Gemstone, utils.PaginationMeta, error)
}

// GemstoneHandler handles listing endpoints
type GemstoneHandler struct {
	gemstoneUsecase GemstoneService
}

func NewGemstoneHandler(gemstoneUsecase GemstoneService) *GemstoneHandler {
	return &GemstoneHandler{gemstoneUsecase: gemstoneUsecase}
}

// ListPublic lists verified, active listings
// GET /api/gemstones?category=&featured=true&page=&limit=
func (h *GemstoneHandler) ListPublic(c *gin.Context) {
	featured, _ := strconv.ParseBool(c.Query("featured"))

	gems, meta, err := h.gemstoneUsecase.ListPublic(c.Request.Context(), c.Query("category"), featured, paginationFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, gems, meta)
}

// Get returns a listing; unpublished ones only to the owner and admins
// GET /api/gemstones/:id
func (h *GemstoneHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id", "gemstone")
	if !ok {
		return
	}

	gem, err := h.gemstoneUsecase.GetByID(c.Request.Context(), middleware.Subject(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gem)
}

// ListMine lists the caller's own listings
// GET /api/gemstones/mine
func (h *GemstoneHandler) ListMine(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	gems, meta, err := h.gemstoneUsecase.ListMine(c.Request.Context(), userID, paginationFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, gems, meta)
}

// Create adds a draft listing
// POST /api/gemstones
func (h *GemstoneHandler) Create(c *gin.Context) {
	var input entities.GemstoneInput
	if !bindJSON(c, &input) {
		return
	}

	gem, err := h.gemstoneUsecase.Create(c.Request.Context(), middleware.Subject(c), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gem)
}

// Update edits a listing that is still editable
// PUT /api/gemstones/:id
func (h *GemstoneHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id", "gemstone")
	if !ok {
		return
	}
	var input entities.GemstoneInput
	if !bindJSON(c, &input) {
		return
	}

	gem, err := h.gemstoneUsecase.Update(c.Request.Context(), middleware.Subject(c), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gem)
}

// UploadImages attaches images to a listing
// POST /api/gemstones/:id/images (multipart: images)
func (h *GemstoneHandler) UploadImages(c *gin.Context) {
	id, ok := uuidParam(c, "id", "gemstone")
	if !ok {
		return
	}
	files, err := formFiles(c, "images")
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Multipart form with images is required"))
		return
	}

	gem, err := h.gemstoneUsecase.UploadImages(c.Request.Context(), middleware.Subject(c), id, files)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gem)
}

// Submit sends a draft for review
// POST /api/gemstones/:id/submit
func (h *GemstoneHandler) Submit(c *gin.Context) {
	id, ok := uuidParam(c, "id", "gemstone")
	if !ok {
		return
	}

	gem, err := h.gemstoneUsecase.Submit(c.Request.Context(), middleware.Subject(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gem)
}

// Deactivate hides a listing
// DELETE /api/gemstones/:id
func (h *GemstoneHandler) Deactivate(c *gin.Context) {
	id, ok := uuidParam(c, "id", "gemstone")
	if !ok {
		return
	}

	gem, err := h.gemstoneUsecase.Deactivate(c.Request.Context(), middleware.Subject(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gem)
}

// ListAll is the admin catalogue view
// GET /api/admin/gemstones?status=
func (h *GemstoneHandler) ListAll(c *gin.Context) {
	status := entities.GemVerificationStatus(c.Query("status"))

	gems, meta, err := h.gemstoneUsecase.ListAll(c.Request.Context(), status, paginationFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, gems, meta)
}

// ListPendingReview lists submitted and under-review listings
// GET /api/admin/gemstones/pending
func (h *GemstoneHandler) ListPendingReview(c *gin.Context) {
	gems, meta, err := h.gemstoneUsecase.ListPendingReview(c.Request.Context(), paginationFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, gems, meta)
}

// StartReview claims a submitted listing for review
// POST /api/admin/gemstones/:id/review
func (h *GemstoneHandler) StartReview(c *gin.Context) {
	id, ok := uuidParam(c, "id", "gemstone")
	if !ok {
		return
	}

	gem, err := h.gemstoneUsecase.StartReview(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gem)
}

// Verify approves a listing
// POST /api/admin/gemstones/:id/verify
func (h *GemstoneHandler) Verify(c *gin.Context) {
	id, ok := uuidParam(c, "id", "gemstone")
	if !ok {
		return
	}

	gem, err := h.gemstoneUsecase.Verify(c.Request.Context(), middleware.Subject(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gem)
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// Reject turns a listing down with a reason
// POST /api/admin/gemstones/:id/reject
func (h *GemstoneHandler) Reject(c *gin.Context) {
	id, ok := uuidParam(c, "id", "gemstone")
	if !ok {
		return
	}
	var req rejectRequest
	if !bindJSON(c, &req) {
		return
	}

	gem, err := h.gemstoneUsecase.Reject(c.Request.Context(), middleware.Subject(c), id, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gem)
}

// BulkUpdate applies allow-listed field changes to many listings
// PUT /api/admin/gemstones/bulk
func (h *GemstoneHandler) BulkUpdate(c *gin.Context) {
	var input entities.GemstoneBulkUpdate
	if !bindJSON(c, &input) {
		return
	}

	updated, err := h.gemstoneUsecase.BulkUpdate(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"updated": updated})
}
