package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	locModel "hadirku_backend/internals/features/attendance/locations/model"
)

// offsetNorth menggeser koordinat ±meter ke utara (1 derajat lat ≈ 111.32 km).
func offsetNorth(c Coordinate, meters float64) Coordinate {
	return Coordinate{
		Latitude:  c.Latitude + meters/111320.0,
		Longitude: c.Longitude,
	}
}

func testLocation(radius float64) *locModel.InstitutionLocationModel {
	return &locModel.InstitutionLocationModel{
		InstitutionLocationName:      "Kampus A",
		InstitutionLocationLatitude:  -6.200000,
		InstitutionLocationLongitude: 106.816666,
		InstitutionLocationRadiusM:   radius,
	}
}

func TestHaversineDistanceM(t *testing.T) {
	center := Coordinate{Latitude: -6.2, Longitude: 106.816666}

	t.Run("jarak ke diri sendiri nol", func(t *testing.T) {
		assert.Zero(t, HaversineDistanceM(center, center))
	})

	t.Run("simetris", func(t *testing.T) {
		p := offsetNorth(center, 500)
		assert.InDelta(t, HaversineDistanceM(center, p), HaversineDistanceM(p, center), 1e-9)
	})

	t.Run("offset 50m ≈ 50m", func(t *testing.T) {
		p := offsetNorth(center, 50)
		assert.InDelta(t, 50, HaversineDistanceM(center, p), 0.5)
	})
}

func TestWithinGeofence(t *testing.T) {
	loc := testLocation(100)
	center := Coordinate{
		Latitude:  loc.InstitutionLocationLatitude,
		Longitude: loc.InstitutionLocationLongitude,
	}

	t.Run("50m dari titik radius 100m, akurasi 10m → valid", func(t *testing.T) {
		res, err := WithinGeofence(offsetNorth(center, 50), 10, loc)
		require.NoError(t, err)
		assert.True(t, res.Valid)
		assert.InDelta(t, 50, res.DistanceM, 1)
	})

	t.Run("150m dari titik radius 100m, akurasi 10m → tidak valid", func(t *testing.T) {
		res, err := WithinGeofence(offsetNorth(center, 150), 10, loc)
		require.NoError(t, err)
		assert.False(t, res.Valid)
		assert.InDelta(t, 150, res.DistanceM, 1.5)
	})

	t.Run("akurasi jadi slack di batas", func(t *testing.T) {
		// 105m dari pusat: gagal tanpa slack, lolos dengan akurasi 10m
		p := offsetNorth(center, 105)
		res, err := WithinGeofence(p, 0, loc)
		require.NoError(t, err)
		assert.False(t, res.Valid)

		res, err = WithinGeofence(p, 10, loc)
		require.NoError(t, err)
		assert.True(t, res.Valid)
	})

	t.Run("akurasi negatif tidak mengurangi radius", func(t *testing.T) {
		res, err := WithinGeofence(offsetNorth(center, 90), -500, loc)
		require.NoError(t, err)
		assert.True(t, res.Valid)
	})

	t.Run("monotonik terhadap radius", func(t *testing.T) {
		p := offsetNorth(center, 120)
		small, err := WithinGeofence(p, 0, testLocation(100))
		require.NoError(t, err)
		big, err := WithinGeofence(p, 0, testLocation(200))
		require.NoError(t, err)
		// memperbesar radius tidak pernah membalik valid → invalid
		assert.False(t, small.Valid)
		assert.True(t, big.Valid)
	})

	t.Run("koordinat malformed ditolak", func(t *testing.T) {
		_, err := WithinGeofence(Coordinate{Latitude: 91, Longitude: 0}, 0, loc)
		assert.ErrorIs(t, err, ErrInvalidCoordinate)

		_, err = WithinGeofence(Coordinate{Latitude: 0, Longitude: -181}, 0, loc)
		assert.ErrorIs(t, err, ErrInvalidCoordinate)
	})
}
