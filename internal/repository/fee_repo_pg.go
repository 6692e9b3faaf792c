package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmtran91/flybooking/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Fee scopes are stored one row per key: "default", "domestic",
// "international", or "airline:<code>". Writes are last-write-wins per key.
const (
	FeeScopeDefault       = "default"
	FeeScopeDomestic      = "domestic"
	FeeScopeInternational = "international"
	feeScopeAirlinePrefix = "airline:"
)

type FeeRepository interface {
	Load(ctx context.Context) (*domain.AdminFeeConfig, error)
	SaveScope(ctx context.Context, scope string, fee domain.FeeConfig) error
	DeleteScope(ctx context.Context, scope string) error
}

type PGFeeRepository struct {
	db *pgxpool.Pool
}

func NewFeeRepository(db *pgxpool.Pool) FeeRepository {
	return &PGFeeRepository{db: db}
}

func (r *PGFeeRepository) Load(ctx context.Context) (*domain.AdminFeeConfig, error) {
	rows, err := r.db.Query(ctx, `SELECT scope, config FROM fee_configs`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cfg := domain.AdminFeeConfig{Airlines: map[string]domain.FeeConfig{}}
	seenDefault := false
	for rows.Next() {
		var scope string
		var payload []byte
		if err := rows.Scan(&scope, &payload); err != nil {
			return nil, err
		}
		var fee domain.FeeConfig
		if err := json.Unmarshal(payload, &fee); err != nil {
			return nil, fmt.Errorf("decode fee scope %q: %w", scope, err)
		}
		switch {
		case scope == FeeScopeDefault:
			cfg.Default = fee
			seenDefault = true
		case scope == FeeScopeDomestic:
			f := fee
			cfg.Domestic = &f
		case scope == FeeScopeInternational:
			f := fee
			cfg.International = &f
		case strings.HasPrefix(scope, feeScopeAirlinePrefix):
			cfg.Airlines[strings.TrimPrefix(scope, feeScopeAirlinePrefix)] = fee
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if !seenDefault {
		// Default must always be present; fill from built-ins.
		cfg.Default = domain.DefaultAdminFeeConfig().Default
	}
	return &cfg, nil
}

func (r *PGFeeRepository) SaveScope(ctx context.Context, scope string, fee domain.FeeConfig) error {
	if err := ValidateFeeScope(scope); err != nil {
		return err
	}
	payload, err := json.Marshal(fee)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO fee_configs (scope, config, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (scope) DO UPDATE SET config = EXCLUDED.config, updated_at = now()`, scope, payload)
	return err
}

func (r *PGFeeRepository) DeleteScope(ctx context.Context, scope string) error {
	if scope == FeeScopeDefault {
		return fmt.Errorf("the default fee scope cannot be removed")
	}
	_, err := r.db.Exec(ctx, `DELETE FROM fee_configs WHERE scope=$1`, scope)
	return err
}

// ValidateFeeScope accepts the three route scopes and airline:<XX> keys with
// two-letter carrier codes.
func ValidateFeeScope(scope string) error {
	switch scope {
	case FeeScopeDefault, FeeScopeDomestic, FeeScopeInternational:
		return nil
	}
	code, ok := strings.CutPrefix(scope, feeScopeAirlinePrefix)
	if !ok || len(code) != 2 || code != strings.ToUpper(code) {
		return fmt.Errorf("invalid fee scope %q", scope)
	}
	return nil
}

// AirlineFeeScope builds the storage key for a carrier override.
func AirlineFeeScope(code string) string {
	return feeScopeAirlinePrefix + strings.ToUpper(code)
}

var _ FeeRepository = (*PGFeeRepository)(nil)
