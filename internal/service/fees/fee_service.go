package fees

import (
	"context"
	"log"

	"github.com/dmtran91/flybooking/internal/domain"
	"github.com/dmtran91/flybooking/internal/repository"
)

type FeeUseCase interface {
	Current(ctx context.Context) domain.AdminFeeConfig
	UpdateScope(ctx context.Context, scope string, fee domain.FeeConfig) error
	RemoveScope(ctx context.Context, scope string) error
}

type Cache interface {
	GetFeeConfig(ctx context.Context) (*domain.AdminFeeConfig, error)
	SetFeeConfig(ctx context.Context, cfg *domain.AdminFeeConfig) error
	InvalidateFeeConfig(ctx context.Context) error
}

type FeeService struct {
	repo  repository.FeeRepository
	cache Cache
}

func NewFeeService(repo repository.FeeRepository, cache Cache) *FeeService {
	return &FeeService{repo: repo, cache: cache}
}

// Current returns the admin fee table, preferring cache over storage. It
// never fails: when the stored config cannot be loaded the built-in defaults
// apply, so pricing keeps working.
func (s *FeeService) Current(ctx context.Context) domain.AdminFeeConfig {
	if s.cache != nil {
		if cached, err := s.cache.GetFeeConfig(ctx); err == nil && cached != nil {
			return *cached
		}
	}

	cfg, err := s.repo.Load(ctx)
	if err != nil {
		log.Printf("WARNING: load fee config failed, using built-in defaults: %v", err)
		return domain.DefaultAdminFeeConfig()
	}
	if s.cache != nil {
		_ = s.cache.SetFeeConfig(ctx, cfg)
	}
	return *cfg
}

// UpdateScope writes one fee rule. Last write wins per scope; concurrent
// admin edits are not version-checked.
func (s *FeeService) UpdateScope(ctx context.Context, scope string, fee domain.FeeConfig) error {
	if err := fee.Validate(); err != nil {
		return err
	}
	if err := s.repo.SaveScope(ctx, scope, fee); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateFeeConfig(ctx)
	}
	return nil
}

func (s *FeeService) RemoveScope(ctx context.Context, scope string) error {
	if err := s.repo.DeleteScope(ctx, scope); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateFeeConfig(ctx)
	}
	return nil
}

var _ FeeUseCase = (*FeeService)(nil)
