package handlers

import (
	"context"
	"net/http"

	"gem-auction.backend/internal/domain/entities"
	"gem-auction.backend/internal/domain/policy"
	"gem-auction.backend/internal/interfaces/http/middleware"
	"gem-auction.backend/internal/interfaces/http/response"
	"gem-auction.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuctionService interface {
	CreateAuction(ctx context.Context, actor policy.Subject, input *entities.CreateAuctionInput) (*entities.Auction, error)
	GetAuction(ctx context.Context, id uuid.UUID) (*entities.Auction, error)
	ListAuctions(ctx context.Context, status entities.AuctionStatus, p utils.PaginationParams) ([]*entities.Auction, utils.PaginationMeta, error)
	ListByGem(ctx context.Context, gemID uuid.UUID, p utils.PaginationParams) ([]*entities.Auction, utils.PaginationMeta, error)
	PlaceBid(ctx context.Context, auctionID, bidderID uuid.UUID, amount float64) (*entities.BidResult, error)
	CompleteAuctionAs(ctx context.Context, actor policy.Subject, id uuid.UUID) (*entities.Auction, error)
	CancelAuction(ctx context.Context, actor policy.Subject, id uuid.UUID) (*entities.Auction, error)
}

// AuctionHandler handles auction endpoints
type AuctionHandler struct {
	auctionUsecase AuctionService
}

func NewAuctionHandler(auctionUsecase AuctionService) *AuctionHandler {
	return &AuctionHandler{auctionUsecase: auctionUsecase}
}

// Create opens an auction for a verified listing
// POST /api/auctions
func (h *AuctionHandler) Create(c *gin.Context) {
	var input entities.CreateAuctionInput
	if !bindJSON(c, &input) {
		return
	}

	auction, err := h.auctionUsecase.CreateAuction(c.Request.Context(), middleware.Subject(c), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, auction)
}

// List lists auctions by derived status
// GET /api/auctions?status=
func (h *AuctionHandler) List(c *gin.Context) {
	status := entities.AuctionStatus(c.Query("status"))

	auctions, meta, err := h.auctionUsecase.ListAuctions(c.Request.Context(), status, paginationFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, auctions, meta)
}

// Get returns one auction
// GET /api/auctions/:id
func (h *AuctionHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id", "auction")
	if !ok {
		return
	}

	auction, err := h.auctionUsecase.GetAuction(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, auction)
}

// ListByGem lists every auction of a listing
// GET /api/gemstones/:id/auctions
func (h *AuctionHandler) ListByGem(c *gin.Context) {
	gemID, ok := uuidParam(c, "id", "gemstone")
	if !ok {
		return
	}

	auctions, meta, err := h.auctionUsecase.ListByGem(c.Request.Context(), gemID, paginationFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, auctions, meta)
}

// PlaceBid bids on an auction
// POST /api/auctions/:id/bids
func (h *AuctionHandler) PlaceBid(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	auctionID, ok := uuidParam(c, "id", "auction")
	if !ok {
		return
	}
	var input entities.PlaceBidInput
	if !bindJSON(c, &input) {
		return
	}

	result, err := h.auctionUsecase.PlaceBid(c.Request.Context(), auctionID, userID, input.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// Complete closes an auction early and settles its bids
// POST /api/auctions/:id/complete
func (h *AuctionHandler) Complete(c *gin.Context) {
	id, ok := uuidParam(c, "id", "auction")
	if !ok {
		return
	}

	auction, err := h.auctionUsecase.CompleteAuctionAs(c.Request.Context(), middleware.Subject(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, auction)
}

// Cancel cancels an auction and releases its listing
// POST /api/auctions/:id/cancel
func (h *AuctionHandler) Cancel(c *gin.Context) {
	id, ok := uuidParam(c, "id", "auction")
	if !ok {
		return
	}

	auction, err := h.auctionUsecase.CancelAuction(c.Request.Context(), middleware.Subject(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, auction)
}
