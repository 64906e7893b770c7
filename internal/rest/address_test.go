package rest

import (
	"context"
	"net/http"
	"testing"

	"ecommerceBackend/business/address"
	"ecommerceBackend/domain"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type fakeAddressService struct {
	AddressService
}

func (fakeAddressService) UpdateAddress(_ context.Context, userID, addressID uuid.UUID, in address.UpdateAddressInput) (domain.Address, bool, error) {
	if in.IsEmpty() {
		return domain.Address{}, false, nil
	}
	return domain.Address{ID: addressID, UserID: userID, City: *in.City}, true, nil
}

func TestUpdateAddressHandler(t *testing.T) {
	h := NewAddressHandler(fakeAddressService{}, nil)
	e := echo.New()
	e.PUT("/address/:user_id/:id", h.UpdateAddress)

	path := "/address/" + uuid.NewString() + "/" + uuid.NewString()

	rec := doRequest(e, http.MethodPut, path, `{}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = doRequest(e, http.MethodPut, path, `{"city":"Lagos"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodPut, "/address/bad/"+uuid.NewString(), `{"city":"Lagos"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid user ID format", envelope(t, rec).Error)
}
