package inventory_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/inventory"
)

func TestEqualShare_DivideEntreOrdenes(t *testing.T) {
	share, err := inventory.EqualShare(decimal.NewFromInt(100), 2)
	require.NoError(t, err)
	assert.True(t, share.Equal(decimal.NewFromInt(50)), "100 / 2 debe ser 50, obtuvo %s", share)
}

func TestEqualShare_Fraccional(t *testing.T) {
	share, err := inventory.EqualShare(decimal.NewFromInt(10), 4)
	require.NoError(t, err)
	assert.Equal(t, "2.5", share.String())
}

func TestEqualShare_RedondeaAEscalaDeAlmacenamiento(t *testing.T) {
	share, err := inventory.EqualShare(decimal.NewFromInt(100), 3)
	require.NoError(t, err)
	assert.Equal(t, "33.3333", share.String())
	assert.Equal(t, "99.9999", share.Mul(decimal.NewFromInt(3)).String())

	share, err = inventory.EqualShare(decimal.NewFromInt(200), 3)
	require.NoError(t, err)
	assert.Equal(t, "66.6667", share.String())
}

func TestRoundQuantity(t *testing.T) {
	assert.Equal(t, "1.2346", inventory.RoundQuantity(decimal.RequireFromString("1.23456")).String())
	assert.Equal(t, "-0.5", inventory.RoundQuantity(decimal.RequireFromString("-0.5")).String())
}

func TestEqualShare_SinOrdenes_EsInvariante(t *testing.T) {
	_, err := inventory.EqualShare(decimal.NewFromInt(10), 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvariantViolation))
}

func TestNextBalance(t *testing.T) {
	got := inventory.NextBalance(decimal.NewFromInt(-50), decimal.Zero, decimal.NewFromInt(50))
	assert.Equal(t, "-100", got.String())

	got = inventory.NextBalance(decimal.Zero, decimal.NewFromInt(100), decimal.Zero)
	assert.Equal(t, "100", got.String())
}
