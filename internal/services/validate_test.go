package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMaxCharge = int64(100_000)

func TestValidateCharge(t *testing.T) {
	tests := []struct {
		name    string
		amount  int64
		wantErr error
	}{
		{"zero", 0, ErrInvalidAmount},
		{"negative", -5, ErrInvalidAmount},
		{"above limit", testMaxCharge + 1, ErrInvalidAmount},
		{"minimum", 1, nil},
		{"at limit", testMaxCharge, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCharge(tt.amount, testMaxCharge)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUse(t *testing.T) {
	assert.ErrorIs(t, validateUse(0), ErrInvalidAmount)
	assert.ErrorIs(t, validateUse(-1), ErrInvalidAmount)
	assert.NoError(t, validateUse(1))
	// use has no upper bound; sufficiency is checked against the balance
	assert.NoError(t, validateUse(math.MaxInt64))
}

func TestComputeNewBalance(t *testing.T) {
	t.Run("charge adds", func(t *testing.T) {
		got, err := computeNewBalance(1000, 500)
		require.NoError(t, err)
		assert.Equal(t, int64(1500), got)
	})

	t.Run("use subtracts", func(t *testing.T) {
		got, err := computeNewBalance(1000, -400)
		require.NoError(t, err)
		assert.Equal(t, int64(600), got)
	})

	t.Run("exact drain to zero", func(t *testing.T) {
		got, err := computeNewBalance(1000, -1000)
		require.NoError(t, err)
		assert.Equal(t, int64(0), got)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		_, err := computeNewBalance(1000, -2000)
		assert.ErrorIs(t, err, ErrInsufficientPoints)
	})

	t.Run("use from empty balance", func(t *testing.T) {
		_, err := computeNewBalance(0, -1)
		assert.ErrorIs(t, err, ErrInsufficientPoints)
	})

	t.Run("overflow near max", func(t *testing.T) {
		_, err := computeNewBalance(math.MaxInt64-1000, 2000)
		assert.ErrorIs(t, err, ErrPointOverflow)
	})

	t.Run("overflow is not reported as insufficient", func(t *testing.T) {
		// the wrapped sum is negative; the overflow check must win
		_, err := computeNewBalance(math.MaxInt64, math.MaxInt64)
		assert.ErrorIs(t, err, ErrPointOverflow)
		assert.NotErrorIs(t, err, ErrInsufficientPoints)
	})

	t.Run("addition up to max", func(t *testing.T) {
		got, err := computeNewBalance(math.MaxInt64-1000, 1000)
		require.NoError(t, err)
		assert.Equal(t, int64(math.MaxInt64), got)
	})
}
