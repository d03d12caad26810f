package config

import (
	"encoding/base64"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	util "Sistem-Absensi-Karyawan/pkg/utils"
)

type AppConfig struct {
	Port          string
	MONGOSTRING   string
	PASETO_SECRET string

	Attendance AttendanceConfig
}

// AttendanceConfig menampung aturan absensi yang bisa diubah lewat env.
type AttendanceConfig struct {
	ExpectedCheckIn  string // format 15:04, jam masuk standar
	ExpectedCheckOut string // format 15:04, jam pulang standar
	LateGraceMinutes int    // toleransi keterlambatan sebelum status "late"

	// LocationPolicy: "off", "cities", atau "radius"
	LocationPolicy  string
	AllowedCities   []string
	OfficeLatitude  float64
	OfficeLongitude float64
	RadiusMeters    float64
}

// LoadConfig loads configuration from .env file
func LoadConfig() *AppConfig {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: Error loading .env file (might not exist in production): %v", err)
	}

	secretBase64 := getEnv("PASETO_SECRET", "")
	if secretBase64 == "" {
		// Kunci ephemeral untuk development: token tidak valid lagi
		// setelah restart. Produksi wajib set PASETO_SECRET.
		generated, err := util.GenerateBase64Key(32)
		if err != nil {
			log.Fatalf("PASETO_SECRET tidak diset dan gagal membuat kunci sementara: %v", err)
		}
		log.Println("Warning: PASETO_SECRET tidak diset, memakai kunci sementara yang digenerate")
		secretBase64 = generated
	}

	// Lakukan decoding untuk validasi panjang byte
	secretBytes, err := base64.URLEncoding.DecodeString(secretBase64)
	if err != nil {
		log.Fatalf("PASETO_SECRET in .env is not a valid Base64 URL-encoded string: %v", err)
	}

	if len(secretBytes) != 32 {
		log.Fatalf("PASETO_SECRET (decoded) must be exactly 32 bytes long. Current length: %d", len(secretBytes))
	}

	return &AppConfig{
		Port:          getEnv("PORT", "3000"),
		MONGOSTRING:   getEnv("MONGOSTRING", ""),
		PASETO_SECRET: secretBase64,
		Attendance:    loadAttendanceConfig(),
	}
}

func loadAttendanceConfig() AttendanceConfig {
	cfg := AttendanceConfig{
		ExpectedCheckIn:  getEnv("EXPECTED_CHECK_IN", "09:30"),
		ExpectedCheckOut: getEnv("EXPECTED_CHECK_OUT", "18:00"),
		LateGraceMinutes: getEnvInt("LATE_GRACE_MINUTES", 15),
		LocationPolicy:   getEnv("LOCATION_POLICY", "off"),
		OfficeLatitude:   getEnvFloat("OFFICE_LATITUDE", 0),
		OfficeLongitude:  getEnvFloat("OFFICE_LONGITUDE", 0),
		RadiusMeters:     getEnvFloat("OFFICE_RADIUS_METERS", 500),
	}

	// ALLOWED_CITIES dipisah koma, contoh: "Mumbai,Jakarta"
	if raw := getEnv("ALLOWED_CITIES", ""); raw != "" {
		for _, city := range strings.Split(raw, ",") {
			city = strings.TrimSpace(city)
			if city != "" {
				cfg.AllowedCities = append(cfg.AllowedCities, city)
			}
		}
	}

	return cfg
}

// Helper function to get environment variable or fallback to default
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		log.Printf("Warning: %s bukan angka yang valid, memakai default %d", key, defaultValue)
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
		log.Printf("Warning: %s bukan angka yang valid, memakai default %v", key, defaultValue)
	}
	return defaultValue
}
