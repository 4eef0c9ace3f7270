package rider_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rider"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRider(t *testing.T) {
	t.Run("creates a rider with trimmed fields", func(t *testing.T) {
		r, err := rider.NewRider(kernel.NewUUID(), "  Sam Porter  ", " (555) 000-0000 ")
		require.NoError(t, err)

		assert.Equal(t, "Sam Porter", r.Name())
		assert.Equal(t, "(555) 000-0000", r.Phone())
		assert.WithinDuration(t, time.Now().UTC(), r.CreatedAt(), time.Second)
	})

	t.Run("rejects blank name or phone before any claim is attempted", func(t *testing.T) {
		_, err := rider.NewRider(kernel.NewUUID(), "   ", "(555) 000-0000")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = rider.NewRider(kernel.NewUUID(), "Sam Porter", "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects an invalid id", func(t *testing.T) {
		_, err := rider.NewRider(kernel.UUID{}, "Sam Porter", "(555) 000-0000")
		require.Error(t, err)
	})
}

func TestRestoreRider(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r, err := rider.RestoreRider(kernel.NewUUID(), "Sam Porter", "(555) 000-0000", createdAt)
	require.NoError(t, err)
	assert.Equal(t, createdAt, r.CreatedAt())
}

func TestRider_Validate(t *testing.T) {
	t.Run("zero value is not constructed", func(t *testing.T) {
		var r rider.Rider
		require.ErrorIs(t, r.Validate(), rider.ErrRiderIsNotConstructed)
	})

	t.Run("nil rider is not constructed", func(t *testing.T) {
		var r *rider.Rider
		require.ErrorIs(t, r.Validate(), rider.ErrRiderIsNotConstructed)
	})
}
