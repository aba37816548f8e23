package valueobject_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneta-app/moneta/internal/domain/valueobject"
)

func TestNewSpotRate_Valid(t *testing.T) {
	rate, err := valueobject.NewSpotRate(decimal.NewFromFloat(1.0850))

	require.NoError(t, err)
	assert.True(t, rate.Rate().Equal(decimal.NewFromFloat(1.0850)))
}

func TestNewSpotRate_Invalid(t *testing.T) {
	_, err := valueobject.NewSpotRate(decimal.Zero)
	require.Error(t, err)

	_, err = valueobject.NewSpotRate(decimal.NewFromInt(-2))
	require.Error(t, err)
}

func TestSpotRate_Convert(t *testing.T) {
	rate, err := valueobject.NewSpotRate(decimal.NewFromInt(2))
	require.NoError(t, err)

	got := rate.Convert(decimal.NewFromInt(100))
	assert.True(t, got.Equal(decimal.NewFromInt(200)))
}

func TestSpotRate_Inverse(t *testing.T) {
	rate, err := valueobject.NewSpotRate(decimal.NewFromInt(4))
	require.NoError(t, err)

	inv := rate.Inverse()
	assert.True(t, inv.Rate().Equal(decimal.NewFromFloat(0.25)))
	// Converting back and forth is the identity.
	amount := decimal.NewFromInt(100)
	assert.True(t, inv.Convert(rate.Convert(amount)).Equal(amount))
}
