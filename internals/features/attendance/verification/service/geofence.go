// file: internals/features/attendance/verification/service/geofence.go
//
// Evaluator geodesi murni: jarak great-circle (haversine) + toleransi radius.
// Akurasi GPS yang dilaporkan ditambahkan sebagai slack supaya fix yang noisy
// di dekat batas tidak ditolak tidak adil.
package service

import (
	"errors"
	"fmt"
	"math"

	locModel "hadirku_backend/internals/features/attendance/locations/model"
)

const earthRadiusM = 6371000.0

var ErrInvalidCoordinate = errors.New("koordinat di luar rentang valid")

// Coordinate: pasangan lat/lng derajat (WGS84).
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c Coordinate) validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: latitude %.6f", ErrInvalidCoordinate, c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: longitude %.6f", ErrInvalidCoordinate, c.Longitude)
	}
	return nil
}

// GeofenceResult: hasil evaluasi satu titik terhadap satu lokasi.
type GeofenceResult struct {
	Valid     bool    `json:"valid"`
	DistanceM float64 `json:"distance_m"`
}

// HaversineDistanceM: jarak great-circle antar dua koordinat, meter.
func HaversineDistanceM(a, b Coordinate) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusM * math.Asin(math.Sqrt(h))
}

// WithinGeofence: valid kalau jarak <= radius + max(akurasi, 0).
func WithinGeofence(submitted Coordinate, accuracyM float64, loc *locModel.InstitutionLocationModel) (GeofenceResult, error) {
	if err := submitted.validate(); err != nil {
		return GeofenceResult{}, err
	}
	center := Coordinate{
		Latitude:  loc.InstitutionLocationLatitude,
		Longitude: loc.InstitutionLocationLongitude,
	}
	if err := center.validate(); err != nil {
		return GeofenceResult{}, err
	}

	slack := accuracyM
	if slack < 0 {
		slack = 0
	}

	dist := HaversineDistanceM(submitted, center)
	return GeofenceResult{
		Valid:     dist <= loc.InstitutionLocationRadiusM+slack,
		DistanceM: dist,
	}, nil
}
