package services

import (
	"fmt"
	"math"
	"strings"

	"Sistem-Absensi-Karyawan/config"
	"Sistem-Absensi-Karyawan/models"
)

// LocationPolicy memutuskan apakah lokasi check-in/check-out diterima.
// Predikatnya pluggable: kebijakan kota, geofence radius, atau tanpa batasan.
type LocationPolicy interface {
	Allow(loc *models.Location) bool
	Describe() string
}

// AllowAllPolicy menerima lokasi apa pun, termasuk tanpa lokasi.
type AllowAllPolicy struct{}

func (AllowAllPolicy) Allow(*models.Location) bool { return true }
func (AllowAllPolicy) Describe() string            { return "semua lokasi" }

// CityAllowlistPolicy menerima lokasi yang kotanya ada di daftar.
// Tanpa lokasi atau tanpa kota berarti ditolak: kebijakan tidak bisa dicek.
type CityAllowlistPolicy struct {
	Cities []string
}

func (p CityAllowlistPolicy) Allow(loc *models.Location) bool {
	if loc == nil || loc.City == "" {
		return false
	}
	for _, city := range p.Cities {
		if strings.EqualFold(city, loc.City) {
			return true
		}
	}
	return false
}

func (p CityAllowlistPolicy) Describe() string {
	return "kota: " + strings.Join(p.Cities, ", ")
}

// GeofencePolicy menerima lokasi dalam radius tertentu dari titik kantor.
type GeofencePolicy struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

func (p GeofencePolicy) Allow(loc *models.Location) bool {
	if loc == nil {
		return false
	}
	return haversineMeters(p.Latitude, p.Longitude, loc.Latitude, loc.Longitude) <= p.RadiusMeters
}

func (p GeofencePolicy) Describe() string {
	return fmt.Sprintf("radius %.0f meter dari kantor", p.RadiusMeters)
}

// PolicyFromConfig memilih kebijakan lokasi dari konfigurasi env.
func PolicyFromConfig(cfg config.AttendanceConfig) LocationPolicy {
	switch cfg.LocationPolicy {
	case "cities":
		return CityAllowlistPolicy{Cities: cfg.AllowedCities}
	case "radius":
		return GeofencePolicy{
			Latitude:     cfg.OfficeLatitude,
			Longitude:    cfg.OfficeLongitude,
			RadiusMeters: cfg.RadiusMeters,
		}
	default:
		return AllowAllPolicy{}
	}
}

const earthRadiusMeters = 6371000

func haversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := rad(lat2 - lat1)
	dLng := rad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}
