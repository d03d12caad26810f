package grading

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(t *testing.T, clock string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", "2025-06-02 "+clock)
	require.NoError(t, err)
	return parsed
}

func TestGradeCheckInLadder(t *testing.T) {
	cfg := DefaultConfig() // masuk 09:30

	tests := []struct {
		name    string
		checkIn string
		want    int
	}{
		{"tepat waktu", "09:30", 100},
		{"telat tepat 15 menit belum kena penalti", "09:45", 100},
		{"telat 16 menit kena penalti pertama", "09:46", 70},
		{"telat tepat 30 menit masih penalti pertama", "10:00", 70},
		{"telat 31 menit kena kedua penalti", "10:01", 50},
		{"datang lebih awal tetap 100", "08:00", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Grade(cfg, at(t, tt.checkIn), nil)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGradeCheckOutLadder(t *testing.T) {
	cfg := DefaultConfig() // pulang 18:00
	checkIn := at(t, "09:30")

	tests := []struct {
		name     string
		checkOut string
		want     int
	}{
		{"pulang tepat waktu", "18:00", 100},
		{"pulang tepat 15 menit awal belum kena penalti", "17:45", 100},
		{"pulang 16 menit awal kena penalti pertama", "17:44", 80},
		{"pulang tepat 30 menit awal masih penalti pertama", "17:30", 80},
		{"pulang 31 menit awal kena kedua penalti", "17:29", 60},
		{"lembur tetap 100", "20:15", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkOut := at(t, tt.checkOut)
			got := Grade(cfg, checkIn, &checkOut)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGradePenaltiesStack(t *testing.T) {
	cfg := DefaultConfig()

	checkOut := at(t, "17:29")
	got := Grade(cfg, at(t, "10:01"), &checkOut)
	assert.Equal(t, 10, got, "sangat telat dan pulang sangat awal harus menumpuk")
}

func TestGradeStaysInBounds(t *testing.T) {
	cfg := Config{ExpectedCheckIn: "09:30", ExpectedCheckOut: "18:00", LateGraceMinutes: 15}

	checkOut := at(t, "10:05")
	got := Grade(cfg, at(t, "10:04"), &checkOut)
	assert.GreaterOrEqual(t, got, 0)
	assert.LessOrEqual(t, got, 100)
}

func TestStatusGrace(t *testing.T) {
	cfg := DefaultConfig() // toleransi 15 menit

	assert.Equal(t, "present", Status(cfg, at(t, "09:30")))
	assert.Equal(t, "present", Status(cfg, at(t, "09:45")), "tepat di batas toleransi tetap present")
	assert.Equal(t, "late", Status(cfg, at(t, "09:46")))
}

func TestTotalMinutes(t *testing.T) {
	minutes, skewed := TotalMinutes(at(t, "09:00"), at(t, "17:00"))
	assert.False(t, skewed)
	assert.Equal(t, 480, minutes)
}

func TestTotalMinutesRounds(t *testing.T) {
	in := at(t, "09:00")
	out := in.Add(7*time.Minute + 40*time.Second)
	minutes, skewed := TotalMinutes(in, out)
	assert.False(t, skewed)
	assert.Equal(t, 8, minutes)
}

func TestTotalMinutesClockSkew(t *testing.T) {
	minutes, skewed := TotalMinutes(at(t, "17:00"), at(t, "09:00"))
	assert.True(t, skewed)
	assert.Equal(t, 0, minutes, "durasi negatif dikembalikan sebagai 0")
}

func TestParseTimeOnDate(t *testing.T) {
	base := at(t, "00:00")

	parsed, err := ParseTimeOnDate(base, "09:30")
	require.NoError(t, err)
	assert.Equal(t, 9, parsed.Hour())
	assert.Equal(t, 30, parsed.Minute())
	assert.Equal(t, base.Year(), parsed.Year())
	assert.Equal(t, base.Month(), parsed.Month())
	assert.Equal(t, base.Day(), parsed.Day())

	_, err = ParseTimeOnDate(base, "bukan-jam")
	assert.Error(t, err)
}
