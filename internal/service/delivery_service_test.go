package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"entregas/internal/domain"
	"entregas/internal/service"
	"entregas/mocks"
)

func validInput() service.DeliveryInput {
	return service.DeliveryInput{
		Name:     " Maria ",
		Address:  "Rua das Flores, 10",
		Phone:    "11 99999-0000",
		Product:  "Gás P13",
		Amount:   decimal.RequireFromString("110.50"),
		Date:     time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC),
		OnCredit: true,
	}
}

func TestDeliveryService_Create_Success(t *testing.T) {
	store := newMemStore()
	svc := service.NewDeliveryService(store)

	d, err := svc.Create(context.Background(), service.CreateDeliveryInput{DeliveryInput: validInput(), Tenant: "Acme"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), d.ID)
	assert.Equal(t, "Maria", d.Name)
	assert.Equal(t, "Acme", d.Tenant)
	assert.Equal(t, day("2024-03-05"), d.Date)
	assert.True(t, d.Amount.Equal(decimal.RequireFromString("110.5")))
	assert.True(t, d.OnCredit)
}

func TestDeliveryService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *service.CreateDeliveryInput)
	}{
		{"missing nome", func(in *service.CreateDeliveryInput) { in.Name = "  " }},
		{"missing endereco", func(in *service.CreateDeliveryInput) { in.Address = "" }},
		{"missing telefone", func(in *service.CreateDeliveryInput) { in.Phone = "" }},
		{"missing produto", func(in *service.CreateDeliveryInput) { in.Product = "" }},
		{"missing data", func(in *service.CreateDeliveryInput) { in.Date = time.Time{} }},
		{"negative valor", func(in *service.CreateDeliveryInput) { in.Amount = decimal.NewFromInt(-1) }},
		{"missing empresa", func(in *service.CreateDeliveryInput) { in.Tenant = " " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockDeliveryRepo)
			svc := service.NewDeliveryService(mockRepo)

			in := service.CreateDeliveryInput{DeliveryInput: validInput(), Tenant: "Acme"}
			tt.mutate(&in)

			d, err := svc.Create(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidDelivery)
			assert.Nil(t, d)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestDeliveryService_Create_ZeroAmountAllowed(t *testing.T) {
	svc := service.NewDeliveryService(newMemStore())

	in := service.CreateDeliveryInput{DeliveryInput: validInput(), Tenant: "Acme"}
	in.Amount = decimal.Zero

	d, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, d.Amount.IsZero())
}

func TestDeliveryService_Create_StoreError(t *testing.T) {
	mockRepo := new(mocks.MockDeliveryRepo)
	svc := service.NewDeliveryService(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Delivery")).Return(errors.New("connection refused"))

	_, err := svc.Create(context.Background(), service.CreateDeliveryInput{DeliveryInput: validInput(), Tenant: "Acme"})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	mockRepo.AssertExpectations(t)
}

func TestDeliveryService_GetByID(t *testing.T) {
	store := newMemStore(delivery("Acme", "2024-03-05", "10", false))
	svc := service.NewDeliveryService(store)

	d, err := svc.GetByID(context.Background(), "Acme", 1)
	require.NoError(t, err)
	assert.Equal(t, "Acme", d.Tenant)

	d, err = svc.GetByID(context.Background(), "", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.ID)
}

func TestDeliveryService_GetByID_OtherTenantIsNotFound(t *testing.T) {
	store := newMemStore(delivery("Acme", "2024-03-05", "10", false))
	svc := service.NewDeliveryService(store)

	d, err := svc.GetByID(context.Background(), "Other", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, d)
}

func TestDeliveryService_GetByID_Missing(t *testing.T) {
	svc := service.NewDeliveryService(newMemStore())

	_, err := svc.GetByID(context.Background(), "Acme", 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestDeliveryService_GetByID_StoreError(t *testing.T) {
	mockRepo := new(mocks.MockDeliveryRepo)
	svc := service.NewDeliveryService(mockRepo)

	mockRepo.On("GetByID", mock.Anything, int64(7)).Return(nil, errors.New("timeout"))

	_, err := svc.GetByID(context.Background(), "Acme", 7)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestDeliveryService_ListByTenant(t *testing.T) {
	store := newMemStore(
		delivery("Acme", "2024-03-01", "10", false),
		delivery("Acme", "2024-03-09", "10", false),
		delivery("Other", "2024-03-05", "10", false),
	)
	svc := service.NewDeliveryService(store)

	rows, err := svc.ListByTenant(context.Background(), "Acme")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, day("2024-03-09"), rows[0].Date)
	assert.Equal(t, day("2024-03-01"), rows[1].Date)
}

func TestDeliveryService_ListByTenant_Blank(t *testing.T) {
	store := newMemStore()
	svc := service.NewDeliveryService(store)

	_, err := svc.ListByTenant(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidTenant)
	assert.Zero(t, store.queries())
}

func TestDeliveryService_Update(t *testing.T) {
	store := newMemStore(delivery("Acme", "2024-03-05", "10", false))
	svc := service.NewDeliveryService(store)

	in := validInput()
	in.OnCredit = false
	d, err := svc.Update(context.Background(), "Acme", 1, in)
	require.NoError(t, err)
	assert.Equal(t, "Maria", d.Name)
	assert.Equal(t, "Acme", d.Tenant)

	stored, err := store.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, stored.Amount.Equal(decimal.RequireFromString("110.50")))
	assert.False(t, stored.OnCredit)
}

func TestDeliveryService_Update_OtherTenant(t *testing.T) {
	store := newMemStore(delivery("Acme", "2024-03-05", "10", false))
	svc := service.NewDeliveryService(store)

	_, err := svc.Update(context.Background(), "Other", 1, validInput())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	stored, _ := store.GetByID(context.Background(), 1)
	assert.Equal(t, "Cliente", stored.Name)
}

func TestDeliveryService_Update_Invalid(t *testing.T) {
	mockRepo := new(mocks.MockDeliveryRepo)
	svc := service.NewDeliveryService(mockRepo)

	in := validInput()
	in.Product = ""
	_, err := svc.Update(context.Background(), "Acme", 1, in)
	assert.ErrorIs(t, err, domain.ErrInvalidDelivery)
	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestDeliveryService_Delete(t *testing.T) {
	store := newMemStore(
		delivery("Acme", "2024-03-05", "10", false),
		delivery("Other", "2024-03-05", "10", false),
	)
	svc := service.NewDeliveryService(store)

	assert.ErrorIs(t, svc.Delete(context.Background(), "Acme", 2), domain.ErrNotFound)
	require.NoError(t, svc.Delete(context.Background(), "Acme", 1))
	assert.ErrorIs(t, svc.Delete(context.Background(), "Acme", 1), domain.ErrNotFound)
	require.NoError(t, svc.Delete(context.Background(), "", 2))
}

func TestDeliveryService_Delete_StoreError(t *testing.T) {
	mockRepo := new(mocks.MockDeliveryRepo)
	svc := service.NewDeliveryService(mockRepo)

	mockRepo.On("Delete", mock.Anything, int64(3)).Return(errors.New("broken pipe"))

	err := svc.Delete(context.Background(), "", 3)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	mockRepo.AssertExpectations(t)
}
