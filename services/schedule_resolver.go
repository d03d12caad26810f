package services

import (
	"context"
	"log"
	"time"

	"github.com/teambition/rrule-go"

	"Sistem-Absensi-Karyawan/config"
	"Sistem-Absensi-Karyawan/models"
	"Sistem-Absensi-Karyawan/pkg/grading"
)

// WorkScheduleSource menyediakan aturan jadwal kerja yang tersimpan.
type WorkScheduleSource interface {
	FindAll(ctx context.Context) ([]models.WorkSchedule, error)
}

// ScheduleResolver menentukan jam kerja yang berlaku pada satu tanggal:
// aturan jadwal (termasuk perulangan RRULE) bila ada, selain itu default
// dari konfigurasi.
type ScheduleResolver struct {
	source   WorkScheduleSource
	defaults grading.Config
}

func NewScheduleResolver(source WorkScheduleSource, cfg config.AttendanceConfig) *ScheduleResolver {
	return &ScheduleResolver{
		source: source,
		defaults: grading.Config{
			ExpectedCheckIn:  cfg.ExpectedCheckIn,
			ExpectedCheckOut: cfg.ExpectedCheckOut,
			LateGraceMinutes: cfg.LateGraceMinutes,
		},
	}
}

// ConfigFor mengembalikan jam kerja yang diharapkan untuk hari tersebut.
// Kegagalan membaca jadwal tidak menggagalkan absensi, hanya jatuh ke default.
func (r *ScheduleResolver) ConfigFor(ctx context.Context, day time.Time) grading.Config {
	if r == nil || r.source == nil {
		return r.defaultsOrZero()
	}

	rules, err := r.source.FindAll(ctx)
	if err != nil {
		log.Printf("Warning: gagal membaca jadwal kerja, memakai jam default: %v", err)
		return r.defaults
	}

	layout := "2006-01-02"
	dateStr := day.Format(layout)
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24*time.Hour - time.Second)

	for _, rule := range rules {
		if rule.RecurrenceRule == "" {
			if rule.Date == dateStr {
				return r.configFromRule(rule)
			}
			continue
		}

		rOption, err := rrule.StrToROption(rule.RecurrenceRule)
		if err != nil {
			continue
		}
		ruleStartDate, err := time.ParseInLocation(layout, rule.Date, day.Location())
		if err != nil {
			continue
		}
		rOption.Dtstart = ruleStartDate

		rr, err := rrule.NewRRule(*rOption)
		if err != nil {
			continue
		}

		if len(rr.Between(dayStart, dayEnd, true)) > 0 {
			return r.configFromRule(rule)
		}
	}

	return r.defaults
}

func (r *ScheduleResolver) configFromRule(rule models.WorkSchedule) grading.Config {
	return grading.Config{
		ExpectedCheckIn:  rule.StartTime,
		ExpectedCheckOut: rule.EndTime,
		LateGraceMinutes: r.defaults.LateGraceMinutes,
	}
}

func (r *ScheduleResolver) defaultsOrZero() grading.Config {
	if r == nil {
		return grading.DefaultConfig()
	}
	return r.defaults
}
