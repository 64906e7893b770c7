package billing

import (
	"context"

	"ecommerceBackend/business/reference"
	"ecommerceBackend/domain"
	"ecommerceBackend/pkg/logger"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// BillingRepository contract interface
type BillingRepository interface {
	Create(ctx context.Context, billing *domain.Billing) error
	FindAll(ctx context.Context) ([]domain.Billing, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (domain.Billing, error)
	Update(ctx context.Context, billing *domain.Billing) error
}

type DefaultAddressReader interface {
	FindDefaultByUser(ctx context.Context, userID uuid.UUID) (domain.Address, error)
}

type BillingInput struct {
	StreetAddress string
	City          string
	State         string
	PostalCode    string
	Country       string
}

// MirrorAddress copies the fields of a into the billing record of its user.
// It never creates a record: when the user has none it reports false and does nothing.
func MirrorAddress(ctx context.Context, repo BillingRepository, a domain.Address) (bool, error) {
	b, err := repo.FindByUserID(ctx, a.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	b.CopyFrom(a)
	if err := repo.Update(ctx, &b); err != nil {
		return false, err
	}

	return true, nil
}

type billingService struct {
	billingRepo BillingRepository
	addressRepo DefaultAddressReader
	resolver    *reference.Resolver
	tx          domain.Transactor
}

func NewBillingService(
	billingRepo BillingRepository,
	addressRepo DefaultAddressReader,
	resolver *reference.Resolver,
	tx domain.Transactor,
) *billingService {
	return &billingService{
		billingRepo: billingRepo,
		addressRepo: addressRepo,
		resolver:    resolver,
		tx:          tx,
	}
}

func (s *billingService) ListBillings(ctx context.Context) ([]domain.Billing, int64, error) {
	billings, err := s.billingRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find billing addresses", "error", err)
		return nil, 0, err
	}

	return billings, int64(len(billings)), nil
}

func (s *billingService) GetBillingByUser(ctx context.Context, userID uuid.UUID) (domain.Billing, error) {
	if err := s.resolver.Require(ctx, reference.User, userID); err != nil {
		return domain.Billing{}, err
	}

	return s.billingRepo.FindByUserID(ctx, userID)
}

// CreateBilling opens the single billing record of a user.
func (s *billingService) CreateBilling(ctx context.Context, userID uuid.UUID, in BillingInput) (domain.Billing, error) {
	var billing domain.Billing
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.resolver.Require(ctx, reference.User, userID); err != nil {
			return err
		}

		_, err := s.billingRepo.FindByUserID(ctx, userID)
		switch {
		case err == nil:
			return domain.ConflictError("Billing address already exists for this user")
		case !errors.Is(err, domain.ErrNotFound):
			return err
		}

		billing = domain.Billing{
			ID:            uuid.New(),
			UserID:        userID,
			StreetAddress: in.StreetAddress,
			City:          in.City,
			State:         in.State,
			PostalCode:    in.PostalCode,
			Country:       in.Country,
		}

		return s.billingRepo.Create(ctx, &billing)
	})
	if err != nil {
		logger.Error("Failed to create billing address", "user_id", userID, "error", err)
		return domain.Billing{}, err
	}

	return billing, nil
}

// SyncBilling copies the user's current default address into the existing
// billing record. Running it twice yields the same record.
func (s *billingService) SyncBilling(ctx context.Context, userID uuid.UUID) (domain.Billing, error) {
	var billing domain.Billing
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.resolver.Require(ctx, reference.User, userID); err != nil {
			return err
		}

		address, err := s.addressRepo.FindDefaultByUser(ctx, userID)
		if err != nil {
			return err
		}

		mirrored, err := MirrorAddress(ctx, s.billingRepo, address)
		if err != nil {
			return err
		}
		if !mirrored {
			return domain.NotFoundError("Billing address not found")
		}

		billing, err = s.billingRepo.FindByUserID(ctx, userID)
		return err
	})
	if err != nil {
		logger.Error("Failed to sync billing address", "user_id", userID, "error", err)
		return domain.Billing{}, err
	}

	return billing, nil
}
