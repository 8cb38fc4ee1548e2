package kernel_test

import (
	"math"
	"testing"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	tests := []struct {
		name     string
		lat, lng float64
		wantErr  string
	}{
		{name: "valid", lat: 23.8103, lng: 90.4125},
		{name: "bounds", lat: kernel.MaxLatitude, lng: kernel.MinLongitude},
		{name: "latitude too large", lat: 90.1, lng: 0, wantErr: "latitude"},
		{name: "longitude too small", lat: 0, lng: -180.5, wantErr: "longitude"},
		{name: "nan latitude", lat: math.NaN(), lng: 0, wantErr: "latitude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := kernel.NewGeoPoint(tt.lat, tt.lng)
			if tt.wantErr != "" {
				require.Error(t, err)
				require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, p.Validate())
			assert.InDelta(t, tt.lat, p.Latitude(), 1e-9)
			assert.InDelta(t, tt.lng, p.Longitude(), 1e-9)
		})
	}

	t.Run("reports both bad coordinates", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(100, 200)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "latitude")
		assert.Contains(t, err.Error(), "longitude")
	})
}

func TestGeoPoint_DistanceKm(t *testing.T) {
	dhaka, _ := kernel.NewGeoPoint(23.8103, 90.4125)
	chittagong, _ := kernel.NewGeoPoint(22.3569, 91.7832)

	t.Run("zero for same point", func(t *testing.T) {
		d, err := dhaka.DistanceKm(dhaka)
		require.NoError(t, err)
		assert.InDelta(t, 0, d, 1e-9)
	})

	t.Run("symmetric and plausible", func(t *testing.T) {
		d1, err := dhaka.DistanceKm(chittagong)
		require.NoError(t, err)
		d2, _ := chittagong.DistanceKm(dhaka)

		assert.InDelta(t, d1, d2, 1e-9)
		assert.InDelta(t, 214, d1, 5)
	})

	t.Run("zero value is rejected", func(t *testing.T) {
		_, err := dhaka.DistanceKm(kernel.GeoPoint{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
