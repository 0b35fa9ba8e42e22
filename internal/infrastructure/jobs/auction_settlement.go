package jobs

import (
	"context"
	"time"

	"gem-auction.backend/internal/domain/entities"
	"gem-auction.backend/internal/infrastructure/metrics"
	"gem-auction.backend/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const settlementBatchSize = 100

// AuctionSettler is the part of the auction engine the job drives
type AuctionSettler interface {
	ListDueForSettlement(ctx context.Context, limit int) ([]*entities.Auction, error)
	CompleteAuction(ctx context.Context, id uuid.UUID) (*entities.Auction, error)
}

// AuctionSettlementJob completes auctions whose end time has passed
type AuctionSettlementJob struct {
	settler  AuctionSettler
	metrics  *metrics.Metrics
	interval time.Duration
	stop     chan struct{}
}

func NewAuctionSettlementJob(settler AuctionSettler, interval time.Duration, m *metrics.Metrics) *AuctionSettlementJob {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &AuctionSettlementJob{
		settler:  settler,
		metrics:  m,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *AuctionSettlementJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting auction settlement job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Auction settlement job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Auction settlement job stopped")
			return
		case <-ticker.C:
			j.settleDueAuctions(ctx)
		}
	}
}

func (j *AuctionSettlementJob) Stop() {
	close(j.stop)
}

func (j *AuctionSettlementJob) settleDueAuctions(ctx context.Context) {
	due, err := j.settler.ListDueForSettlement(ctx, settlementBatchSize)
	if err != nil {
		logger.Error(ctx, "Error fetching auctions due for settlement", zap.Error(err))
		j.metrics.ObserveSettlement("error")
		return
	}
	if len(due) == 0 {
		return
	}

	settled := 0
	for _, auction := range due {
		// One failure must not hold up the rest of the batch.
		if _, err := j.settler.CompleteAuction(ctx, auction.ID); err != nil {
			logger.Error(ctx, "Error settling auction", zap.String("auctionId", auction.ID.String()), zap.Error(err))
			j.metrics.ObserveSettlement("error")
			continue
		}
		j.metrics.ObserveSettlement("completed")
		settled++
	}

	logger.Info(ctx, "Settled auctions", zap.Int("settled", settled), zap.Int("due", len(due)))
}
