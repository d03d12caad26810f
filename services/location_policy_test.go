package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"Sistem-Absensi-Karyawan/config"
	"Sistem-Absensi-Karyawan/models"
)

func TestAllowAllPolicy(t *testing.T) {
	policy := AllowAllPolicy{}

	assert.True(t, policy.Allow(nil))
	assert.True(t, policy.Allow(&models.Location{City: "Medan"}))
}

func TestCityAllowlistPolicy(t *testing.T) {
	policy := CityAllowlistPolicy{Cities: []string{"Jakarta", "Bandung"}}

	tests := []struct {
		name string
		loc  *models.Location
		want bool
	}{
		{"kota terdaftar", &models.Location{City: "Jakarta"}, true},
		{"case insensitive", &models.Location{City: "bandung"}, true},
		{"kota tidak terdaftar", &models.Location{City: "Medan"}, false},
		{"tanpa kota", &models.Location{Latitude: -6.2, Longitude: 106.8}, false},
		{"tanpa lokasi", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Allow(tt.loc))
		})
	}
}

func TestGeofencePolicy(t *testing.T) {
	// Titik kantor di Monas, Jakarta.
	policy := GeofencePolicy{Latitude: -6.1754, Longitude: 106.8272, RadiusMeters: 500}

	assert.True(t, policy.Allow(&models.Location{Latitude: -6.1754, Longitude: 106.8272}), "titik kantor sendiri")
	assert.True(t, policy.Allow(&models.Location{Latitude: -6.1760, Longitude: 106.8275}), "sekitar 80 meter")
	assert.False(t, policy.Allow(&models.Location{Latitude: -6.2000, Longitude: 106.8272}), "sekitar 2.7 km")
	assert.False(t, policy.Allow(nil))
}

func TestHaversineMeters(t *testing.T) {
	// Jakarta (Monas) ke Bandung (Gedung Sate), kira-kira 118 km.
	d := haversineMeters(-6.1754, 106.8272, -6.9025, 107.6186)
	assert.InDelta(t, 118000, d, 5000)

	assert.Zero(t, haversineMeters(-6.2, 106.8, -6.2, 106.8))
}

func TestPolicyFromConfig(t *testing.T) {
	allowAll := PolicyFromConfig(config.AttendanceConfig{LocationPolicy: "off"})
	assert.IsType(t, AllowAllPolicy{}, allowAll)

	cities := PolicyFromConfig(config.AttendanceConfig{
		LocationPolicy: "cities",
		AllowedCities:  []string{"Jakarta"},
	})
	assert.IsType(t, CityAllowlistPolicy{}, cities)
	assert.True(t, cities.Allow(&models.Location{City: "Jakarta"}))

	radius := PolicyFromConfig(config.AttendanceConfig{
		LocationPolicy:  "radius",
		OfficeLatitude:  -6.1754,
		OfficeLongitude: 106.8272,
		RadiusMeters:    500,
	})
	assert.IsType(t, GeofencePolicy{}, radius)

	unknown := PolicyFromConfig(config.AttendanceConfig{LocationPolicy: "apapun"})
	assert.IsType(t, AllowAllPolicy{}, unknown)
}
