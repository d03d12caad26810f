// Package grading menghitung nilai kedisiplinan absensi.
// Semua fungsi murni: tidak ada side effect, waktu selalu dari parameter.
package grading

import (
	"fmt"
	"math"
	"time"
)

const (
	// Ambang penalti keterlambatan datang dan kepulangan lebih awal.
	// Perbandingan memakai strict > : tepat 15 atau 30 menit belum kena.
	LateMinorThreshold  = 15 * time.Minute
	LateMajorThreshold  = 30 * time.Minute
	EarlyMinorThreshold = 15 * time.Minute
	EarlyMajorThreshold = 30 * time.Minute

	LateMinorPenalty  = 30
	LateMajorPenalty  = 20
	EarlyMinorPenalty = 20
	EarlyMajorPenalty = 20
)

// Config menentukan jam kerja yang diharapkan pada satu hari.
type Config struct {
	ExpectedCheckIn  string // format 15:04
	ExpectedCheckOut string // format 15:04
	LateGraceMinutes int    // toleransi sebelum status menjadi "late"
}

func DefaultConfig() Config {
	return Config{
		ExpectedCheckIn:  "09:30",
		ExpectedCheckOut: "18:00",
		LateGraceMinutes: 15,
	}
}

// ParseTimeOnDate menggabungkan tanggal basis dengan string jam "15:04".
func ParseTimeOnDate(baseDate time.Time, timeStr string) (time.Time, error) {
	t, err := time.Parse("15:04", timeStr)
	if err != nil {
		t, err = time.Parse("15:04:05", timeStr)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("format jam tidak valid %q: %w", timeStr, err)
	}
	return time.Date(baseDate.Year(), baseDate.Month(), baseDate.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, baseDate.Location()), nil
}

// Grade menghitung nilai 0-100 dari waktu check-in dan (opsional) check-out.
// Dua tangga penalti independen yang saling menumpuk: sangat telat DAN
// pulang sangat awal menghasilkan nilai terburuk.
func Grade(cfg Config, checkIn time.Time, checkOut *time.Time) int {
	grade := 100

	expectedIn, err := ParseTimeOnDate(checkIn, cfg.ExpectedCheckIn)
	if err == nil {
		late := checkIn.Sub(expectedIn)
		if late > LateMinorThreshold {
			grade -= LateMinorPenalty
		}
		if late > LateMajorThreshold {
			grade -= LateMajorPenalty
		}
	}

	if checkOut != nil {
		expectedOut, err := ParseTimeOnDate(checkIn, cfg.ExpectedCheckOut)
		if err == nil {
			early := expectedOut.Sub(*checkOut)
			if early > EarlyMinorThreshold {
				grade -= EarlyMinorPenalty
			}
			if early > EarlyMajorThreshold {
				grade -= EarlyMajorPenalty
			}
		}
	}

	return clamp(grade, 0, 100)
}

// Status menentukan status kehadiran dari waktu check-in: "late" bila lewat
// dari jam masuk plus toleransi, selain itu "present".
func Status(cfg Config, checkIn time.Time) string {
	expectedIn, err := ParseTimeOnDate(checkIn, cfg.ExpectedCheckIn)
	if err != nil {
		return "present"
	}
	if checkIn.Sub(expectedIn) > time.Duration(cfg.LateGraceMinutes)*time.Minute {
		return "late"
	}
	return "present"
}

// TotalMinutes menghitung durasi kerja dalam menit, dibulatkan. Durasi
// negatif (clock skew) dikembalikan sebagai 0 dengan flag skewed=true agar
// pemanggil bisa mencatatnya tanpa menggagalkan request.
func TotalMinutes(checkIn, checkOut time.Time) (minutes int, skewed bool) {
	d := checkOut.Sub(checkIn)
	if d < 0 {
		return 0, true
	}
	return int(math.Round(d.Minutes())), false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
