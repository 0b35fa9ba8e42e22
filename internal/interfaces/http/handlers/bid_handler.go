package handlers

import (
	"context"
	"net/http"

	"gem-auction.backend/internal/domain/entities"
	"gem-auction.backend/internal/interfaces/http/response"
	"gem-auction.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BidQueryService interface {
	ListBidsByGem(ctx context.Context, gemID uuid.UUID) ([]*entities.Bid, error)
	ListBidsByAuction(ctx context.Context, auctionID uuid.UUID) ([]*entities.Bid, error)
	ListMyBids(ctx context.Context, bidderID uuid.UUID) ([]*entities.BidWithGem, error)
	ListAllBids(ctx context.Context, p utils.PaginationParams) ([]*entities.AdminBidView, utils.PaginationMeta, error)
}

// GemBidPlacer places a bid on a listing's live auction
type GemBidPlacer interface {
	PlaceGemBid(ctx context.Context, gemID, bidderID uuid.UUID, amount float64) (*entities.BidResult, error)
}

// BidHandler serves the bid ledger, including the /gemstone alias routes
type BidHandler struct {
	bidUsecase BidQueryService
	placer     GemBidPlacer
}

func NewBidHandler(bidUsecase BidQueryService, placer GemBidPlacer) *BidHandler {
	return &BidHandler{bidUsecase: bidUsecase, placer: placer}
}

// PlaceGemBid bids on a listing
// POST /api/bids, POST /gemstone/bids
func (h *BidHandler) PlaceGemBid(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var input entities.PlaceGemBidInput
	if !bindJSON(c, &input) {
		return
	}

	result, err := h.placer.PlaceGemBid(c.Request.Context(), input.GemstoneID, userID, input.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// ListByGem lists a listing's bids, newest first
// GET /api/bids/gem/:gemId, GET /gemstone/bids/:gemId
func (h *BidHandler) ListByGem(c *gin.Context) {
	gemID, ok := uuidParam(c, "gemId", "gemstone")
	if !ok {
		return
	}

	bids, err := h.bidUsecase.ListBidsByGem(c.Request.Context(), gemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, bids)
}

// ListByAuction lists an auction's bids, newest first
// GET /api/auctions/:id/bids
func (h *BidHandler) ListByAuction(c *gin.Context) {
	auctionID, ok := uuidParam(c, "id", "auction")
	if !ok {
		return
	}

	bids, err := h.bidUsecase.ListBidsByAuction(c.Request.Context(), auctionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, bids)
}

// ListMine lists the caller's bids with listing details
// GET /api/bids/mine, GET /gemstone/my-bids
func (h *BidHandler) ListMine(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	bids, err := h.bidUsecase.ListMyBids(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, bids)
}

// ListAll is the admin bid ledger
// GET /api/admin/bids
func (h *BidHandler) ListAll(c *gin.Context) {
	bids, meta, err := h.bidUsecase.ListAllBids(c.Request.Context(), paginationFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, bids, meta)
}
