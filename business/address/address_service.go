package address

import (
	"context"

	"ecommerceBackend/business/billing"
	"ecommerceBackend/business/reference"
	"ecommerceBackend/domain"
	"ecommerceBackend/pkg/logger"

	"github.com/google/uuid"
)

// AddressRepository contract interface
type AddressRepository interface {
	Create(ctx context.Context, address *domain.Address) error
	FindByID(ctx context.Context, id uuid.UUID) (domain.Address, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]domain.Address, error)
	Update(ctx context.Context, address *domain.Address) error
}

type UserAddressLinker interface {
	SetAddress(ctx context.Context, userID, addressID uuid.UUID) error
}

type AddressInput struct {
	StreetAddress string
	City          string
	State         string
	PostalCode    string
	Country       string
	IsDefault     bool
}

// UpdateAddressInput holds the fields to merge; nil fields are left unchanged.
type UpdateAddressInput struct {
	StreetAddress *string
	City          *string
	State         *string
	PostalCode    *string
	Country       *string
	IsDefault     *bool
}

func (in UpdateAddressInput) IsEmpty() bool {
	return in.StreetAddress == nil && in.City == nil && in.State == nil &&
		in.PostalCode == nil && in.Country == nil && in.IsDefault == nil
}

type addressService struct {
	addressRepo AddressRepository
	userRepo    UserAddressLinker
	billingRepo billing.BillingRepository
	resolver    *reference.Resolver
	tx          domain.Transactor
}

func NewAddressService(
	addressRepo AddressRepository,
	userRepo UserAddressLinker,
	billingRepo billing.BillingRepository,
	resolver *reference.Resolver,
	tx domain.Transactor,
) *addressService {
	return &addressService{
		addressRepo: addressRepo,
		userRepo:    userRepo,
		billingRepo: billingRepo,
		resolver:    resolver,
		tx:          tx,
	}
}

func (s *addressService) ListUserAddresses(ctx context.Context, userID uuid.UUID) ([]domain.Address, error) {
	if err := s.resolver.Require(ctx, reference.User, userID); err != nil {
		return nil, err
	}

	addresses, err := s.addressRepo.FindByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to find user addresses", "user_id", userID, "error", err)
		return nil, err
	}

	return addresses, nil
}

// CreateAddress stores a new address and makes it the user's current one.
func (s *addressService) CreateAddress(ctx context.Context, userID uuid.UUID, in AddressInput) (domain.Address, error) {
	address := domain.Address{
		ID:            uuid.New(),
		UserID:        userID,
		StreetAddress: in.StreetAddress,
		City:          in.City,
		State:         in.State,
		PostalCode:    in.PostalCode,
		Country:       in.Country,
		IsDefault:     in.IsDefault,
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.resolver.Require(ctx, reference.User, userID); err != nil {
			return err
		}

		if err := s.addressRepo.Create(ctx, &address); err != nil {
			return err
		}

		if err := s.userRepo.SetAddress(ctx, userID, address.ID); err != nil {
			return err
		}

		return s.mirror(ctx, address)
	})
	if err != nil {
		logger.Error("Failed to create address", "user_id", userID, "error", err)
		return domain.Address{}, err
	}

	return address, nil
}

// UpdateAddress merges in into the user's address. The bool result is false
// when in carries no fields and nothing was written.
func (s *addressService) UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, in UpdateAddressInput) (domain.Address, bool, error) {
	var address domain.Address
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.resolver.Require(ctx, reference.User, userID); err != nil {
			return err
		}

		var err error
		address, err = s.addressRepo.FindByID(ctx, addressID)
		if err != nil {
			return err
		}

		if address.UserID != userID {
			return domain.NotFoundError("Address not found")
		}

		if in.IsEmpty() {
			return nil
		}

		merge(&address, in)
		if err := s.addressRepo.Update(ctx, &address); err != nil {
			return err
		}

		// only an update that marks the address default copies it into billing
		if in.IsDefault == nil || !*in.IsDefault {
			return nil
		}

		return s.mirror(ctx, address)
	})
	if err != nil {
		logger.Error("Failed to update address", "user_id", userID, "address_id", addressID, "error", err)
		return domain.Address{}, false, err
	}

	return address, !in.IsEmpty(), nil
}

func merge(a *domain.Address, in UpdateAddressInput) {
	if in.StreetAddress != nil {
		a.StreetAddress = *in.StreetAddress
	}
	if in.City != nil {
		a.City = *in.City
	}
	if in.State != nil {
		a.State = *in.State
	}
	if in.PostalCode != nil {
		a.PostalCode = *in.PostalCode
	}
	if in.Country != nil {
		a.Country = *in.Country
	}
	if in.IsDefault != nil {
		a.IsDefault = *in.IsDefault
	}
}

func (s *addressService) mirror(ctx context.Context, a domain.Address) error {
	if !a.IsDefault {
		return nil
	}

	mirrored, err := billing.MirrorAddress(ctx, s.billingRepo, a)
	if err != nil {
		return err
	}

	logger.Debug("Default address mirrored", "user_id", a.UserID, "billing_updated", mirrored)
	return nil
}
