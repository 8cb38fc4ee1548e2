package rider_test

import (
	"testing"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/rider"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocation(t *testing.T) {
	point, _ := kernel.NewGeoPoint(23.75, 90.37)
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	orderID := kernel.NewUUID()

	l, err := rider.NewLocation("rider-1", point, at, &orderID)
	require.NoError(t, err)
	require.NoError(t, l.Validate())
	assert.Equal(t, at, l.RecordedAt())
	require.NotNil(t, l.OrderID())
	assert.True(t, l.OrderID().IsEqual(orderID))

	_, err = rider.NewLocation("", kernel.GeoPoint{}, time.Time{}, nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "rider_id")
	assert.Contains(t, err.Error(), "timestamp")
}

func TestLocation_AgeAndStale(t *testing.T) {
	point, _ := kernel.NewGeoPoint(0, 0)
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	l, _ := rider.NewLocation("rider-1", point, at, nil)

	assert.Equal(t, 90*time.Second, l.Age(at.Add(90*time.Second)))
	assert.Zero(t, l.Age(at.Add(-time.Second)))
	assert.False(t, l.IsStale(at.Add(time.Minute), 2*time.Minute))
	assert.True(t, l.IsStale(at.Add(3*time.Minute), 2*time.Minute))
	assert.False(t, l.IsStale(at.Add(time.Hour), 0))
}

func TestLocation_Supersedes(t *testing.T) {
	point, _ := kernel.NewGeoPoint(0, 0)
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	older, _ := rider.NewLocation("rider-1", point, at, nil)
	same, _ := rider.NewLocation("rider-1", point, at, nil)
	newer, _ := rider.NewLocation("rider-1", point, at.Add(time.Millisecond), nil)

	assert.True(t, newer.Supersedes(older))
	assert.False(t, older.Supersedes(newer))
	assert.False(t, same.Supersedes(older))
}

func TestLocation_CheckClock(t *testing.T) {
	point, _ := kernel.NewGeoPoint(0, 0)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	withinSkew, _ := rider.NewLocation("rider-1", point, now.Add(rider.MaxClockSkew), nil)
	require.NoError(t, withinSkew.CheckClock(now, rider.MaxClockSkew))

	past, _ := rider.NewLocation("rider-1", point, now.Add(-time.Hour), nil)
	require.NoError(t, past.CheckClock(now, rider.MaxClockSkew))

	future, _ := rider.NewLocation("rider-1", point, now.Add(rider.MaxClockSkew+time.Second), nil)
	err := future.CheckClock(now, rider.MaxClockSkew)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.Contains(t, err.Error(), "timestamp")
}
