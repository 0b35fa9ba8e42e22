package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"gem-auction.backend/internal/domain/entities"
	domainerrors "gem-auction.backend/internal/domain/errors"
	"gem-auction.backend/internal/infrastructure/models"
	"gem-auction.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if user.ID == uuid.Nil {
		user.ID = utils.GenerateUUIDv7()
	}
	m := userToModel(user)
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(strings.ToLower(err.Error()), "unique") {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// GetByIDs loads many users in one query, keyed by id
func (r *UserRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entities.User, error) {
	out := make(map[uuid.UUID]*entities.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.User
	if err := GetDB(ctx, r.db).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		out[rows[i].ID] = userToEntity(&rows[i])
	}
	return out, nil
}

// GetByEmail gets a user by email, case-insensitively
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// Update writes every mutable column of the user
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	m := userToModel(user)
	m.UpdatedAt = time.Now()
	result := GetDB(ctx, r.db).Model(&models.User{}).Where("id = ?", user.ID).
		Select("*").Omit("id", "created_at").Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	user.UpdatedAt = m.UpdatedAt
	return nil
}

// UpdateStatus changes the account lifecycle status
func (r *UserRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.UserStatus) error {
	return r.updateColumn(ctx, id, "status", string(status))
}

// UpdatePayoutStatus mirrors the payout destination state onto the user
func (r *UserRepository) UpdatePayoutStatus(ctx context.Context, id uuid.UUID, status entities.PayoutStatus) error {
	return r.updateColumn(ctx, id, "payout_status", string(status))
}

func (r *UserRepository) updateColumn(ctx context.Context, id uuid.UUID, column string, value interface{}) error {
	result := GetDB(ctx, r.db).Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{column: value, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists users with optional search, role and status filters
func (r *UserRepository) List(ctx context.Context, filter entities.UserFilter) ([]*entities.User, error) {
	var rows []models.User
	query := GetDB(ctx, r.db).Order("created_at DESC")

	if filter.Search != "" {
		term := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", term, term)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", string(filter.Role))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return usersToEntities(rows), nil
}

// ListPendingSellers returns users awaiting seller review whose NIC is approved
func (r *UserRepository) ListPendingSellers(ctx context.Context) ([]*entities.User, error) {
	var rows []models.User
	awaiting := []string{string(entities.SellerVerificationNotStarted), string(entities.SellerVerificationInReview)}
	err := GetDB(ctx, r.db).
		Where("seller_verification_status IN ? AND nic_status = ? AND role <> ?",
			awaiting, string(entities.DocumentStatusApproved), string(entities.UserRoleAdmin)).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}}).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return usersToEntities(rows), nil
}

func usersToEntities(rows []models.User) []*entities.User {
	users := make([]*entities.User, 0, len(rows))
	for i := range rows {
		users = append(users, userToEntity(&rows[i]))
	}
	return users
}

func userToModel(u *entities.User) *models.User {
	return &models.User{
		ID:                        u.ID,
		Name:                      u.Name,
		Email:                     u.Email,
		Phone:                     u.Phone,
		Password:                  u.Password,
		Role:                      string(u.Role),
		Status:                    string(u.Status),
		NICStatus:                 string(u.NICStatus),
		NICFrontImage:             stringPtr(u.NICFrontImage),
		NICBackImage:              stringPtr(u.NICBackImage),
		NICRejectionReason:        stringPtr(u.NICRejectionReason),
		BusinessStatus:            string(u.BusinessStatus),
		BusinessDocuments:         u.BusinessDocuments,
		BusinessRejection:         stringPtr(u.BusinessRejectionReason),
		PayoutStatus:              string(u.PayoutStatus),
		RegistrationPaymentStatus: string(u.RegistrationPaymentStatus),
		SellerVerificationStatus:  string(u.SellerVerificationStatus),
		SellerRejectionReason:     stringPtr(u.SellerRejectionReason),
		CreatedAt:                 u.CreatedAt,
		UpdatedAt:                 u.UpdatedAt,
	}
}

func userToEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:                        m.ID,
		Name:                      m.Name,
		Email:                     m.Email,
		Phone:                     m.Phone,
		Password:                  m.Password,
		Role:                      entities.UserRole(m.Role),
		Status:                    entities.UserStatus(m.Status),
		NICStatus:                 entities.DocumentStatus(m.NICStatus),
		NICFrontImage:             null.StringFromPtr(m.NICFrontImage),
		NICBackImage:              null.StringFromPtr(m.NICBackImage),
		NICRejectionReason:        null.StringFromPtr(m.NICRejectionReason),
		BusinessStatus:            entities.DocumentStatus(m.BusinessStatus),
		BusinessDocuments:         m.BusinessDocuments,
		BusinessRejectionReason:   null.StringFromPtr(m.BusinessRejection),
		PayoutStatus:              entities.PayoutStatus(m.PayoutStatus),
		RegistrationPaymentStatus: entities.RegistrationPaymentStatus(m.RegistrationPaymentStatus),
		SellerVerificationStatus:  entities.SellerVerificationStatus(m.SellerVerificationStatus),
		SellerRejectionReason:     null.StringFromPtr(m.SellerRejectionReason),
		CreatedAt:                 m.CreatedAt,
		UpdatedAt:                 m.UpdatedAt,
	}
}

// PayoutRepository implements payout destination operations
type PayoutRepository struct {
	db *gorm.DB
}

// NewPayoutRepository creates a new payout repository
func NewPayoutRepository(db *gorm.DB) *PayoutRepository {
	return &PayoutRepository{db: db}
}

// GetByUserID returns the single payout destination of a user
func (r *PayoutRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Payout, error) {
	var m models.Payout
	if err := GetDB(ctx, r.db).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return payoutToEntity(&m), nil
}

// Upsert replaces the payout destination keyed by user id
func (r *PayoutRepository) Upsert(ctx context.Context, payout *entities.Payout) error {
	now := time.Now()
	if payout.ID == uuid.Nil {
		payout.ID = utils.GenerateUUIDv7()
	}
	if payout.CreatedAt.IsZero() {
		payout.CreatedAt = now
	}
	payout.UpdatedAt = now

	m := &models.Payout{
		ID:             payout.ID,
		UserID:         payout.UserID,
		Method:         string(payout.Method),
		BankName:       payout.BankName,
		BranchName:     payout.BranchName,
		AccountHolder:  payout.AccountHolder,
		AccountNumber:  payout.AccountNumber,
		MobileProvider: payout.MobileProvider,
		MobileNumber:   payout.MobileNumber,
		CreatedAt:      payout.CreatedAt,
		UpdatedAt:      payout.UpdatedAt,
	}
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"method", "bank_name", "branch_name", "account_holder", "account_number",
			"mobile_provider", "mobile_number", "updated_at",
		}),
	}).Create(m).Error
}

func payoutToEntity(m *models.Payout) *entities.Payout {
	return &entities.Payout{
		ID:             m.ID,
		UserID:         m.UserID,
		Method:         entities.PayoutMethod(m.Method),
		BankName:       m.BankName,
		BranchName:     m.BranchName,
		AccountHolder:  m.AccountHolder,
		AccountNumber:  m.AccountNumber,
		MobileProvider: m.MobileProvider,
		MobileNumber:   m.MobileNumber,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
