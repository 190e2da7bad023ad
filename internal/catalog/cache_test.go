package catalog

import (
	"context"
	"testing"
	"time"

	"rent-kart/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func sampleProducts() []model.Product {
	return []model.Product{
		{
			ID:        "P100",
			Name:      "MacBook Pro",
			Category:  "laptop",
			BasePrice: 3200,
			RentalOptions: []model.RentalOption{
				{TenureMonths: 12, MonthlyPrice: 320},
			},
			Availability: model.AvailabilityBoth,
			CreatedAt:    time.Now(),
		},
		{
			ID:           "P200",
			Name:         "Mechanical Keyboard",
			Category:     "accessory",
			BasePrice:    120,
			Availability: model.AvailabilityBuy,
			CreatedAt:    time.Now(),
		},
	}
}

func TestCache_GetAndList(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetAll", mock.Anything).Return(sampleProducts(), nil)

	cache, err := NewCache(context.Background(), repo, zerolog.Nop())
	require.NoError(t, err)

	p, err := cache.Get("P100")
	require.NoError(t, err)
	assert.Equal(t, "MacBook Pro", p.Name)

	_, err = cache.Get("missing")
	assert.ErrorIs(t, err, model.ErrNotFound)

	assert.Len(t, cache.List(), 2)
}

func TestCache_RefreshReplacesMirror(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetAll", mock.Anything).Return(sampleProducts(), nil).Once()

	cache, err := NewCache(context.Background(), repo, zerolog.Nop())
	require.NoError(t, err)

	updated := sampleProducts()
	updated[0].RentalOptions[0].MonthlyPrice = 999
	repo.On("GetAll", mock.Anything).Return(updated, nil).Once()

	require.NoError(t, cache.Refresh(context.Background()))

	p, err := cache.Get("P100")
	require.NoError(t, err)
	assert.Equal(t, 999.0, p.RentalOptions[0].MonthlyPrice)
}

func TestCache_GetReturnsCopy(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetAll", mock.Anything).Return(sampleProducts(), nil)

	cache, err := NewCache(context.Background(), repo, zerolog.Nop())
	require.NoError(t, err)

	p, err := cache.Get("P100")
	require.NoError(t, err)
	p.RentalOptions[0].MonthlyPrice = 1

	again, err := cache.Get("P100")
	require.NoError(t, err)
	assert.Equal(t, 320.0, again.RentalOptions[0].MonthlyPrice)
}
