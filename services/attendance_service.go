package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"Sistem-Absensi-Karyawan/config"
	"Sistem-Absensi-Karyawan/models"
	"Sistem-Absensi-Karyawan/pkg/grading"
)

const DateLayout = "2006-01-02"

// AttendanceStore adalah kontrak penyimpanan record absensi.
// Implementasi wajib menjamin atomisitas kedua operasi tulis:
//   - UpsertCheckIn membuat record hari itu atau menulis check_in bila belum
//     ada; conflict=true berarti ada request lain yang menang balapan.
//   - ApplyCheckOut hanya menulis bila check_in sudah ada dan check_out
//     belum; applied=false berarti guard gagal pada saat tulis.
type AttendanceStore interface {
	FindByEmployeeAndDate(ctx context.Context, employeeID, date string) (*models.Attendance, error)
	UpsertCheckIn(ctx context.Context, record *models.Attendance) (conflict bool, err error)
	ApplyCheckOut(ctx context.Context, record *models.Attendance) (applied bool, err error)
	FindByEmployeeAndDateRange(ctx context.Context, employeeID, startDate, endDate string) ([]models.Attendance, error)
	FindByDateRange(ctx context.Context, startDate, endDate string) ([]models.Attendance, error)
}

// AttendanceService memegang aturan siklus hidup record harian:
// satu record per (karyawan, tanggal), check-in sebelum check-out,
// record terkunci setelah check-out.
type AttendanceService struct {
	store     AttendanceStore
	clock     Clock
	policy    LocationPolicy
	schedules *ScheduleResolver
	defaults  grading.Config
}

func NewAttendanceService(
	store AttendanceStore,
	clock Clock,
	policy LocationPolicy,
	schedules *ScheduleResolver,
	cfg config.AttendanceConfig,
) *AttendanceService {
	if clock == nil {
		clock = SystemClock()
	}
	if policy == nil {
		policy = AllowAllPolicy{}
	}
	return &AttendanceService{
		store:     store,
		clock:     clock,
		policy:    policy,
		schedules: schedules,
		defaults: grading.Config{
			ExpectedCheckIn:  cfg.ExpectedCheckIn,
			ExpectedCheckOut: cfg.ExpectedCheckOut,
			LateGraceMinutes: cfg.LateGraceMinutes,
		},
	}
}

// CheckIn mencatat kedatangan karyawan untuk tanggal server hari ini.
func (s *AttendanceService) CheckIn(ctx context.Context, employeeID string, loc *models.Location) (*models.Attendance, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return nil, fmt.Errorf("%w: employee_id wajib diisi", ErrValidation)
	}
	if !s.policy.Allow(loc) {
		return nil, fmt.Errorf("%w (kebijakan: %s)", ErrLocationRejected, s.policy.Describe())
	}

	now := s.clock.Now()
	date := now.Format(DateLayout)

	existing, err := s.store.FindByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.CheckIn != nil {
		return nil, ErrAlreadyCheckedIn
	}

	cfg := s.configFor(ctx, now)

	// Record lengkap dihitung di memori lalu ditulis sekali.
	record := &models.Attendance{
		EmployeeID: employeeID,
		Date:       date,
		Status:     models.StatusAbsent,
		CreatedAt:  now,
	}
	if existing != nil {
		record = existing
	}
	record.CheckIn = &models.CheckEvent{Time: now, Location: loc}
	record.Status = grading.Status(cfg, now)
	record.Grade = grading.Grade(cfg, now, nil)
	record.TotalTimeSpent = 0
	record.UpdatedAt = now

	conflict, err := s.store.UpsertCheckIn(ctx, record)
	if err != nil {
		return nil, err
	}
	if conflict {
		// Request lain sudah check-in lebih dulu untuk (karyawan, tanggal) ini.
		return nil, ErrAlreadyCheckedIn
	}

	return record, nil
}

// CheckOut mencatat kepulangan dan mengunci record hari itu.
func (s *AttendanceService) CheckOut(ctx context.Context, employeeID string, loc *models.Location) (*models.Attendance, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return nil, fmt.Errorf("%w: employee_id wajib diisi", ErrValidation)
	}
	if !s.policy.Allow(loc) {
		return nil, fmt.Errorf("%w (kebijakan: %s)", ErrLocationRejected, s.policy.Describe())
	}

	now := s.clock.Now()
	date := now.Format(DateLayout)

	record, err := s.store.FindByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}
	if record == nil || record.CheckIn == nil {
		return nil, ErrCheckInRequired
	}
	if record.CheckOut != nil {
		return nil, ErrAlreadyCheckedOut
	}

	total, skewed := grading.TotalMinutes(record.CheckIn.Time, now)
	if skewed {
		// Jam server mundur relatif terhadap check-in; data tetap disimpan
		// dengan durasi 0, cukup dicatat untuk ditelusuri.
		log.Printf("Warning: durasi negatif untuk %s tanggal %s (check-in %s, check-out %s)",
			employeeID, date, record.CheckIn.Time.Format(time.RFC3339), now.Format(time.RFC3339))
	}

	cfg := s.configFor(ctx, record.CheckIn.Time)
	checkOutTime := now

	record.CheckOut = &models.CheckEvent{Time: now, Location: loc}
	record.TotalTimeSpent = total
	record.Grade = grading.Grade(cfg, record.CheckIn.Time, &checkOutTime)
	record.UpdatedAt = now

	applied, err := s.store.ApplyCheckOut(ctx, record)
	if err != nil {
		return nil, err
	}
	if !applied {
		// Guard gagal saat tulis: baca ulang untuk membedakan penyebabnya.
		fresh, err := s.store.FindByEmployeeAndDate(ctx, employeeID, date)
		if err != nil {
			return nil, err
		}
		if fresh == nil || fresh.CheckIn == nil {
			return nil, ErrCheckInRequired
		}
		return nil, ErrAlreadyCheckedOut
	}

	return record, nil
}

// GetToday mengambil record satu karyawan pada satu tanggal.
// Mengembalikan nil tanpa error bila tidak ada record (bukan status absent).
func (s *AttendanceService) GetToday(ctx context.Context, employeeID, date string) (*models.Attendance, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return nil, fmt.Errorf("%w: employee_id wajib diisi", ErrValidation)
	}
	if date == "" {
		date = s.clock.Now().Format(DateLayout)
	} else if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: format tanggal harus %s", ErrValidation, DateLayout)
	}
	return s.store.FindByEmployeeAndDate(ctx, employeeID, date)
}

// GetWeekly mengambil record [startDate, startDate+6 hari] urut tanggal naik.
// startDate diharapkan hari Senin, tapi tidak dipaksakan; pemanggil yang
// menentukan awal minggunya.
func (s *AttendanceService) GetWeekly(ctx context.Context, employeeID, startDate string) ([]models.Attendance, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return nil, fmt.Errorf("%w: employee_id wajib diisi", ErrValidation)
	}
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: format start_date harus %s", ErrValidation, DateLayout)
	}
	end := start.AddDate(0, 0, 6)
	return s.store.FindByEmployeeAndDateRange(ctx, employeeID, startDate, end.Format(DateLayout))
}

// GetMonthly mengambil record satu bulan kalender penuh, urut tanggal naik.
func (s *AttendanceService) GetMonthly(ctx context.Context, employeeID string, year, month int) ([]models.Attendance, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return nil, fmt.Errorf("%w: employee_id wajib diisi", ErrValidation)
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: bulan harus 1-12", ErrValidation)
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return s.store.FindByEmployeeAndDateRange(ctx, employeeID,
		first.Format(DateLayout), last.Format(DateLayout))
}

// GetRange mengambil record semua karyawan dalam rentang inklusif,
// urut tanggal naik. Pengelompokan per karyawan urusan pemanggil.
func (s *AttendanceService) GetRange(ctx context.Context, startDate, endDate string) ([]models.Attendance, error) {
	if _, err := time.Parse(DateLayout, startDate); err != nil {
		return nil, fmt.Errorf("%w: format start_date harus %s", ErrValidation, DateLayout)
	}
	if _, err := time.Parse(DateLayout, endDate); err != nil {
		return nil, fmt.Errorf("%w: format end_date harus %s", ErrValidation, DateLayout)
	}
	return s.store.FindByDateRange(ctx, startDate, endDate)
}

func (s *AttendanceService) configFor(ctx context.Context, day time.Time) grading.Config {
	if s.schedules == nil {
		return s.defaults
	}
	return s.schedules.ConfigFor(ctx, day)
}
