package rest

import (
	"context"
	"net/http"
	"time"

	"ecommerceBackend/business/address"
	"ecommerceBackend/business/billing"
	"ecommerceBackend/domain"
	"ecommerceBackend/internal/middleware"
	jsonres "ecommerceBackend/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AddressService interface {
	ListUserAddresses(ctx context.Context, userID uuid.UUID) ([]domain.Address, error)
	CreateAddress(ctx context.Context, userID uuid.UUID, in address.AddressInput) (domain.Address, error)
	UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, in address.UpdateAddressInput) (domain.Address, bool, error)
}

type BillingService interface {
	ListBillings(ctx context.Context) ([]domain.Billing, int64, error)
	GetBillingByUser(ctx context.Context, userID uuid.UUID) (domain.Billing, error)
	CreateBilling(ctx context.Context, userID uuid.UUID, in billing.BillingInput) (domain.Billing, error)
	SyncBilling(ctx context.Context, userID uuid.UUID) (domain.Billing, error)
}

// AddressHandler serves both user addresses and the billing records they mirror into.
type AddressHandler struct {
	addressService AddressService
	billingService BillingService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewAddressHandler(addressService AddressService, billingService BillingService) *AddressHandler {
	return &AddressHandler{
		addressService: addressService,
		billingService: billingService,
		validator:      newValidator(),
		timeout:        10 * time.Second,
	}
}

type CreateAddressRequest struct {
	StreetAddress string `json:"street_address" validate:"required"`
	City          string `json:"city" validate:"required"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code" validate:"required"`
	Country       string `json:"country" validate:"required"`
	IsDefault     bool   `json:"is_default"`
}

type UpdateAddressRequest struct {
	StreetAddress *string `json:"street_address"`
	City          *string `json:"city"`
	State         *string `json:"state"`
	PostalCode    *string `json:"postal_code"`
	Country       *string `json:"country"`
	IsDefault     *bool   `json:"is_default"`
}

type BillingRequest struct {
	StreetAddress string `json:"street_address" validate:"required"`
	City          string `json:"city" validate:"required"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code" validate:"required"`
	Country       string `json:"country" validate:"required"`
}

func (h *AddressHandler) GetUserAddresses(c echo.Context) error {
	userID, err := pathID(c, "user_id", "user")
	if err != nil {
		return respondError(c, err)
	}

	if err := middleware.AuthorizeOwner(c, userID.String()); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	addresses, err := h.addressService.ListUserAddresses(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.List(addresses, int64(len(addresses))))
}

func (h *AddressHandler) CreateAddress(c echo.Context) error {
	userID, err := pathID(c, "user_id", "user")
	if err != nil {
		return respondError(c, err)
	}

	if err := middleware.AuthorizeOwner(c, userID.String()); err != nil {
		return respondError(c, err)
	}

	var req CreateAddressRequest
	if err := bindRequest(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.addressService.CreateAddress(ctx, userID, address.AddressInput{
		StreetAddress: req.StreetAddress,
		City:          req.City,
		State:         req.State,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
		IsDefault:     req.IsDefault,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, jsonres.Success(created))
}

// UpdateAddress answers 204 when the body carries no fields.
func (h *AddressHandler) UpdateAddress(c echo.Context) error {
	userID, err := pathID(c, "user_id", "user")
	if err != nil {
		return respondError(c, err)
	}

	if err := middleware.AuthorizeOwner(c, userID.String()); err != nil {
		return respondError(c, err)
	}

	addressID, err := pathID(c, "id", "address")
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateAddressRequest
	if err := bindRequest(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, changed, err := h.addressService.UpdateAddress(ctx, userID, addressID, address.UpdateAddressInput{
		StreetAddress: req.StreetAddress,
		City:          req.City,
		State:         req.State,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
		IsDefault:     req.IsDefault,
	})
	if err != nil {
		return respondError(c, err)
	}

	if !changed {
		return c.NoContent(http.StatusNoContent)
	}

	return c.JSON(http.StatusOK, jsonres.Success(updated))
}

func (h *AddressHandler) GetAllBillings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	billings, total, err := h.billingService.ListBillings(ctx)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.List(billings, total))
}

func (h *AddressHandler) GetUserBilling(c echo.Context) error {
	userID, err := pathID(c, "user_id", "user")
	if err != nil {
		return respondError(c, err)
	}

	if err := middleware.AuthorizeOwner(c, userID.String()); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	found, err := h.billingService.GetBillingByUser(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success(found))
}

func (h *AddressHandler) CreateBilling(c echo.Context) error {
	userID, err := pathID(c, "user_id", "user")
	if err != nil {
		return respondError(c, err)
	}

	if err := middleware.AuthorizeOwner(c, userID.String()); err != nil {
		return respondError(c, err)
	}

	var req BillingRequest
	if err := bindRequest(c, h.validator, &req); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.billingService.CreateBilling(ctx, userID, billing.BillingInput{
		StreetAddress: req.StreetAddress,
		City:          req.City,
		State:         req.State,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, jsonres.Success(created))
}

func (h *AddressHandler) SyncBilling(c echo.Context) error {
	userID, err := pathID(c, "user_id", "user")
	if err != nil {
		return respondError(c, err)
	}

	if err := middleware.AuthorizeOwner(c, userID.String()); err != nil {
		return respondError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	synced, err := h.billingService.SyncBilling(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, jsonres.Success(synced))
}
