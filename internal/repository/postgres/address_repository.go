package postgres

import (
	"context"
	"time"

	"ecommerceBackend/domain"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type AddressRepository struct {
	DB *gorm.DB
}

func NewAddressRepository(db *gorm.DB) *AddressRepository {
	return &AddressRepository{
		DB: db,
	}
}

func (r *AddressRepository) Create(ctx context.Context, address *domain.Address) error {
	if address.ID == uuid.Nil {
		address.ID = uuid.New()
	}

	if err := conn(ctx, r.DB).Create(address).Error; err != nil {
		return translate(err, "failed to create address", "Address not found", "Address already exists")
	}

	return nil
}

func (r *AddressRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Address, error) {
	var address domain.Address

	err := conn(ctx, r.DB).First(&address, "id = ?", id).Error
	if err != nil {
		return domain.Address{}, translate(err, "failed to find address", "Address not found", "")
	}

	return address, nil
}

func (r *AddressRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Address, error) {
	var addresses []domain.Address
	if len(ids) == 0 {
		return addresses, nil
	}

	if err := conn(ctx, r.DB).Where("id IN ?", ids).Find(&addresses).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find addresses")
	}

	return addresses, nil
}

func (r *AddressRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]domain.Address, error) {
	var addresses []domain.Address

	err := conn(ctx, r.DB).Where("user_id = ?", userID).Order("created_at DESC").Find(&addresses).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user addresses")
	}

	return addresses, nil
}

// FindDefaultByUser returns the most recently updated default address of the user.
func (r *AddressRepository) FindDefaultByUser(ctx context.Context, userID uuid.UUID) (domain.Address, error) {
	var address domain.Address

	err := conn(ctx, r.DB).Where("user_id = ? AND is_default = ?", userID, true).
		Order("updated_at DESC").First(&address).Error
	if err != nil {
		return domain.Address{}, translate(err, "failed to find default address", "Default address not found", "")
	}

	return address, nil
}

func (r *AddressRepository) Update(ctx context.Context, address *domain.Address) error {
	address.UpdatedAt = time.Now()

	result := conn(ctx, r.DB).Model(&domain.Address{}).Where("id = ?", address.ID).
		Select("street_address", "city", "state", "postal_code", "country", "is_default", "updated_at").
		Updates(address)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update address")
	}

	if result.RowsAffected == 0 {
		return domain.NotFoundError("Address not found")
	}

	return nil
}

type BillingRepository struct {
	DB *gorm.DB
}

func NewBillingRepository(db *gorm.DB) *BillingRepository {
	return &BillingRepository{
		DB: db,
	}
}

func (r *BillingRepository) Create(ctx context.Context, billing *domain.Billing) error {
	if billing.ID == uuid.Nil {
		billing.ID = uuid.New()
	}

	if err := conn(ctx, r.DB).Create(billing).Error; err != nil {
		return translate(err, "failed to create billing", "Billing address not found", "Billing address already exists for this user")
	}

	return nil
}

func (r *BillingRepository) FindAll(ctx context.Context) ([]domain.Billing, error) {
	var billings []domain.Billing

	if err := conn(ctx, r.DB).Order("created_at DESC").Find(&billings).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find billing addresses")
	}

	return billings, nil
}

func (r *BillingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (domain.Billing, error) {
	var billing domain.Billing

	err := conn(ctx, r.DB).Where("user_id = ?", userID).First(&billing).Error
	if err != nil {
		return domain.Billing{}, translate(err, "failed to find billing", "Billing address not found", "")
	}

	return billing, nil
}

func (r *BillingRepository) Update(ctx context.Context, billing *domain.Billing) error {
	billing.UpdatedAt = time.Now()

	result := conn(ctx, r.DB).Model(&domain.Billing{}).Where("id = ?", billing.ID).
		Select("street_address", "city", "state", "postal_code", "country", "updated_at").
		Updates(billing)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update billing")
	}

	if result.RowsAffected == 0 {
		return domain.NotFoundError("Billing address not found")
	}

	return nil
}
