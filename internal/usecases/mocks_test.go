package usecases

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"gem-auction.backend/internal/domain/entities"
	"gem-auction.backend/internal/domain/ports"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// fakeUnitOfWork runs fn inline; beginErr simulates a failed transaction start
type fakeUnitOfWork struct {
	beginErr error
	calls    int
	locks    int
}

func (f *fakeUnitOfWork) Do(ctx context.Context, fn func(context.Context) error) error {
	f.calls++
	if f.beginErr != nil {
		return f.beginErr
	}
	return fn(ctx)
}

func (f *fakeUnitOfWork) WithLock(ctx context.Context) context.Context {
	f.locks++
	return ctx
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.UserStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockUserRepository) UpdatePayoutStatus(ctx context.Context, id uuid.UUID, status entities.PayoutStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, filter entities.UserFilter) ([]*entities.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) ListPendingSellers(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

// Mock PayoutRepository
type MockPayoutRepository struct {
	mock.Mock
}

func (m *MockPayoutRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Payout, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Payout), args.Error(1)
}

func (m *MockPayoutRepository) Upsert(ctx context.Context, payout *entities.Payout) error {
	return m.Called(ctx, payout).Error(0)
}

// Mock GemstoneRepository
type MockGemstoneRepository struct {
	mock.Mock
}

func (m *MockGemstoneRepository) Create(ctx context.Context, gem *entities.Gemstone) error {
	return m.Called(ctx, gem).Error(0)
}

func (m *MockGemstoneRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Gemstone, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Gemstone), args.Error(1)
}

func (m *MockGemstoneRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.Gemstone, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]*entities.Gemstone), args.Error(1)
}

func (m *MockGemstoneRepository) Update(ctx context.Context, gem *entities.Gemstone) error {
	return m.Called(ctx, gem).Error(0)
}

func (m *MockGemstoneRepository) List(ctx context.Context, filter entities.GemstoneFilter) ([]*entities.Gemstone, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Gemstone), args.Get(1).(int64), args.Error(2)
}

func (m *MockGemstoneRepository) BulkUpdate(ctx context.Context, ids []uuid.UUID, columns map[string]interface{}) (int64, error) {
	args := m.Called(ctx, ids, columns)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGemstoneRepository) SetAuctioned(ctx context.Context, id uuid.UUID, auctioned bool) error {
	return m.Called(ctx, id, auctioned).Error(0)
}

func (m *MockGemstoneRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockGemstoneRepository) SyncBid(ctx context.Context, id uuid.UUID, amount float64) error {
	return m.Called(ctx, id, amount).Error(0)
}

// Mock AuctionRepository
type MockAuctionRepository struct {
	mock.Mock
}

func (m *MockAuctionRepository) Create(ctx context.Context, auction *entities.Auction) error {
	return m.Called(ctx, auction).Error(0)
}

func (m *MockAuctionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Auction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Auction), args.Error(1)
}

func (m *MockAuctionRepository) GetLiveByGemstone(ctx context.Context, gemstoneID uuid.UUID) (*entities.Auction, error) {
	args := m.Called(ctx, gemstoneID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Auction), args.Error(1)
}

func (m *MockAuctionRepository) Update(ctx context.Context, auction *entities.Auction) error {
	return m.Called(ctx, auction).Error(0)
}

func (m *MockAuctionRepository) List(ctx context.Context, filter entities.AuctionFilter) ([]*entities.Auction, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Auction), args.Get(1).(int64), args.Error(2)
}

func (m *MockAuctionRepository) RaiseHighestBid(ctx context.Context, id, bidderID uuid.UUID, amount float64, now time.Time) (bool, error) {
	args := m.Called(ctx, id, bidderID, amount, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuctionRepository) ListDueForSettlement(ctx context.Context, now time.Time, limit int) ([]*entities.Auction, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Auction), args.Error(1)
}

// Mock BidRepository
type MockBidRepository struct {
	mock.Mock
}

func (m *MockBidRepository) Create(ctx context.Context, bid *entities.Bid) error {
	return m.Called(ctx, bid).Error(0)
}

func (m *MockBidRepository) ListByGemstone(ctx context.Context, gemstoneID uuid.UUID) ([]*entities.Bid, error) {
	args := m.Called(ctx, gemstoneID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Bid), args.Error(1)
}

func (m *MockBidRepository) ListByAuction(ctx context.Context, auctionID uuid.UUID) ([]*entities.Bid, error) {
	args := m.Called(ctx, auctionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Bid), args.Error(1)
}

func (m *MockBidRepository) ListByBidder(ctx context.Context, bidderID uuid.UUID) ([]*entities.BidWithGem, error) {
	args := m.Called(ctx, bidderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.BidWithGem), args.Error(1)
}

func (m *MockBidRepository) ListAll(ctx context.Context, limit, offset int) ([]*entities.Bid, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Bid), args.Get(1).(int64), args.Error(2)
}

func (m *MockBidRepository) Settle(ctx context.Context, auctionID uuid.UUID, winningBidID uuid.NullUUID) error {
	return m.Called(ctx, auctionID, winningBidID).Error(0)
}

func (m *MockBidRepository) GetHighest(ctx context.Context, auctionID uuid.UUID) (*entities.Bid, error) {
	args := m.Called(ctx, auctionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Bid), args.Error(1)
}

// Mock PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *entities.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Update(ctx context.Context, payment *entities.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *MockPaymentRepository) List(ctx context.Context, filter entities.PaymentFilter) ([]*entities.Payment, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Payment), args.Get(1).(int64), args.Error(2)
}

func (m *MockPaymentRepository) SoftDelete(ctx context.Context, id, deletedBy uuid.UUID, reason string) error {
	return m.Called(ctx, id, deletedBy, reason).Error(0)
}

// Mock OnlinePaymentRepository
type MockOnlinePaymentRepository struct {
	mock.Mock
}

func (m *MockOnlinePaymentRepository) Create(ctx context.Context, payment *entities.OnlinePayment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *MockOnlinePaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.OnlinePayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.OnlinePayment), args.Error(1)
}

func (m *MockOnlinePaymentRepository) Update(ctx context.Context, payment *entities.OnlinePayment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *MockOnlinePaymentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.OnlinePayment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.OnlinePayment), args.Error(1)
}

// Mock FAQRepository
type MockFAQRepository struct {
	mock.Mock
}

func (m *MockFAQRepository) Create(ctx context.Context, faq *entities.FAQ) error {
	return m.Called(ctx, faq).Error(0)
}

func (m *MockFAQRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.FAQ, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.FAQ), args.Error(1)
}

func (m *MockFAQRepository) Update(ctx context.Context, faq *entities.FAQ) error {
	return m.Called(ctx, faq).Error(0)
}

func (m *MockFAQRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFAQRepository) List(ctx context.Context, publishedOnly bool) ([]*entities.FAQ, error) {
	args := m.Called(ctx, publishedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.FAQ), args.Error(1)
}

// fileStoreStub hands out sequential paths and records deletions
type fileStoreStub struct {
	saved   []string
	deleted []string
	failAt  int
}

func (s *fileStoreStub) Save(_ context.Context, category string, file ports.UploadedFile) (string, error) {
	if s.failAt > 0 && len(s.saved)+1 == s.failAt {
		return "", errors.New("disk full")
	}
	path := "/uploads/" + category + "/" + file.Filename
	s.saved = append(s.saved, path)
	return path, nil
}

func (s *fileStoreStub) Owns(path, category string) bool {
	return strings.HasPrefix(path, "/uploads/"+category+"/")
}

func (s *fileStoreStub) Delete(_ context.Context, path string) error {
	s.deleted = append(s.deleted, path)
	return nil
}

type emailStub struct {
	sent []ports.EmailMessage
	err  error
}

func (s *emailStub) Send(_ context.Context, msg ports.EmailMessage) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

type smsStub struct {
	phones   []string
	messages []string
	err      error
}

func (s *smsStub) Send(_ context.Context, phone, message string) error {
	if s.err != nil {
		return s.err
	}
	s.phones = append(s.phones, phone)
	s.messages = append(s.messages, message)
	return nil
}

type cooldownStub struct {
	allow bool
	err   error
	keys  []string
}

func (c *cooldownStub) Acquire(_ context.Context, key string, _ time.Duration) (bool, error) {
	c.keys = append(c.keys, key)
	return c.allow, c.err
}

func uploadedFile(name, content string) ports.UploadedFile {
	return ports.UploadedFile{
		Filename: name,
		Size:     int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

// freezeClock pins nowFunc for the duration of a test
func freezeClock(t interface{ Cleanup(func()) }, now time.Time) {
	prev := nowFunc
	nowFunc = func() time.Time { return now }
	t.Cleanup(func() { nowFunc = prev })
}
