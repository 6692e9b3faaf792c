package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewFeeRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewFeeRepository(pool)
	assert.NotNil(t, repo)
}

func TestValidateFeeScope(t *testing.T) {
	assert.NoError(t, ValidateFeeScope("default"))
	assert.NoError(t, ValidateFeeScope("domestic"))
	assert.NoError(t, ValidateFeeScope("international"))
	assert.NoError(t, ValidateFeeScope("airline:VN"))
	assert.NoError(t, ValidateFeeScope("airline:QH"))

	assert.Error(t, ValidateFeeScope("airline:vn"))
	assert.Error(t, ValidateFeeScope("airline:VNA"))
	assert.Error(t, ValidateFeeScope("regional"))
	assert.Error(t, ValidateFeeScope(""))
}

func TestAirlineFeeScope(t *testing.T) {
	assert.Equal(t, "airline:VJ", AirlineFeeScope("vj"))
}
