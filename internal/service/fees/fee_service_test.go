package fees

import (
	"context"
	"errors"
	"testing"

	"github.com/dmtran91/flybooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFeeRepository struct {
	mock.Mock
}

func (m *MockFeeRepository) Load(ctx context.Context) (*domain.AdminFeeConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminFeeConfig), args.Error(1)
}

func (m *MockFeeRepository) SaveScope(ctx context.Context, scope string, fee domain.FeeConfig) error {
	args := m.Called(ctx, scope, fee)
	return args.Error(0)
}

func (m *MockFeeRepository) DeleteScope(ctx context.Context, scope string) error {
	args := m.Called(ctx, scope)
	return args.Error(0)
}

type MockFeeCache struct {
	mock.Mock
}

func (m *MockFeeCache) GetFeeConfig(ctx context.Context) (*domain.AdminFeeConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminFeeConfig), args.Error(1)
}

func (m *MockFeeCache) SetFeeConfig(ctx context.Context, cfg *domain.AdminFeeConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func (m *MockFeeCache) InvalidateFeeConfig(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestFeeService_Current_cacheHit(t *testing.T) {
	repo := &MockFeeRepository{}
	cache := &MockFeeCache{}
	service := NewFeeService(repo, cache)

	ctx := context.Background()
	cached := domain.DefaultAdminFeeConfig()
	cached.Default.ServiceValue = 120000
	cache.On("GetFeeConfig", ctx).Return(&cached, nil)

	got := service.Current(ctx)

	assert.Equal(t, float64(120000), got.Default.ServiceValue)
	repo.AssertNotCalled(t, "Load")
}

func TestFeeService_Current_loadsAndCaches(t *testing.T) {
	repo := &MockFeeRepository{}
	cache := &MockFeeCache{}
	service := NewFeeService(repo, cache)

	ctx := context.Background()
	stored := domain.DefaultAdminFeeConfig()
	cache.On("GetFeeConfig", ctx).Return(nil, nil)
	repo.On("Load", ctx).Return(&stored, nil)
	cache.On("SetFeeConfig", ctx, &stored).Return(nil)

	got := service.Current(ctx)

	assert.Equal(t, stored.Default, got.Default)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

// Fee lookup never fails; a broken store falls back to built-in defaults.
func TestFeeService_Current_storeFailureFallsBack(t *testing.T) {
	repo := &MockFeeRepository{}
	service := NewFeeService(repo, nil)

	ctx := context.Background()
	repo.On("Load", ctx).Return(nil, errors.New("db down"))

	got := service.Current(ctx)

	assert.Equal(t, domain.DefaultAdminFeeConfig(), got)
}

func TestFeeService_UpdateScope_invalidatesCache(t *testing.T) {
	repo := &MockFeeRepository{}
	cache := &MockFeeCache{}
	service := NewFeeService(repo, cache)

	ctx := context.Background()
	fee := domain.FeeConfig{ServiceType: domain.AmountFixed, ServiceValue: 150000, TaxType: domain.AmountPercent, TaxValue: 8, Currency: "VND"}

	repo.On("SaveScope", ctx, "airline:VJ", fee).Return(nil)
	cache.On("InvalidateFeeConfig", ctx).Return(nil)

	err := service.UpdateScope(ctx, "airline:VJ", fee)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestFeeService_UpdateScope_invalidFee(t *testing.T) {
	repo := &MockFeeRepository{}
	service := NewFeeService(repo, nil)

	fee := domain.FeeConfig{ServiceType: "weekly", ServiceValue: 100}

	err := service.UpdateScope(context.Background(), "default", fee)

	assert.Error(t, err)
	repo.AssertNotCalled(t, "SaveScope")
}

func TestFeeService_RemoveScope(t *testing.T) {
	repo := &MockFeeRepository{}
	cache := &MockFeeCache{}
	service := NewFeeService(repo, cache)

	ctx := context.Background()
	repo.On("DeleteScope", ctx, "domestic").Return(nil)
	cache.On("InvalidateFeeConfig", ctx).Return(nil)

	err := service.RemoveScope(ctx, "domestic")

	assert.NoError(t, err)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}
