package payments

import (
	"context"
	"testing"

	"ecommerceBackend/business/reference"
	"ecommerceBackend/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayments map[uuid.UUID]domain.Payment

func (f fakePayments) Create(_ context.Context, p *domain.Payment) error {
	f[p.ID] = *p
	return nil
}

func (f fakePayments) FindByID(_ context.Context, id uuid.UUID) (domain.Payment, error) {
	p, ok := f[id]
	if !ok {
		return domain.Payment{}, domain.NotFoundError("Payment not found")
	}
	return p, nil
}

func (f fakePayments) FindAll(_ context.Context) ([]domain.Payment, error) {
	var out []domain.Payment
	for _, p := range f {
		out = append(out, p)
	}
	return out, nil
}

func (f fakePayments) Update(_ context.Context, p *domain.Payment) error {
	f[p.ID] = *p
	return nil
}

func (f fakePayments) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f[id]; !ok {
		return domain.NotFoundError("Payment not found")
	}
	delete(f, id)
	return nil
}

func TestPayments(t *testing.T) {
	orderID := uuid.New()
	store := fakePayments{}
	resolver := reference.NewResolver().Register(reference.Order, reference.CheckerFunc(
		func(_ context.Context, id uuid.UUID) (bool, error) { return id == orderID, nil }))
	svc := NewPaymentsService(store, resolver)
	ctx := context.Background()

	in := CreatePaymentInput{
		OrderID:       orderID.String(),
		PaymentMethod: "card",
		TransactionID: "tx-1",
		Amount:        decimal.RequireFromString("119.94"),
	}

	missingTx := in
	missingTx.TransactionID = ""
	_, err := svc.CreatePayment(ctx, missingTx)
	assert.ErrorIs(t, err, domain.ErrValidation)

	unknownOrder := in
	unknownOrder.OrderID = uuid.NewString()
	_, err = svc.CreatePayment(ctx, unknownOrder)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	badStatus := in
	badStatus.PaymentStatus = "sort of"
	_, err = svc.CreatePayment(ctx, badStatus)
	assert.ErrorIs(t, err, domain.ErrValidation)

	payment, err := svc.CreatePayment(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusNotPaid, payment.PaymentStatus)
	assert.False(t, payment.PaymentDate.IsZero())

	paid := "Paid"
	updated, err := svc.UpdatePayment(ctx, payment.ID, UpdatePaymentInput{PaymentStatus: &paid})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, updated.PaymentStatus)
	assert.Equal(t, "tx-1", updated.TransactionID)

	require.NoError(t, svc.DeletePayment(ctx, payment.ID))
	_, err = svc.GetPayment(ctx, payment.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
