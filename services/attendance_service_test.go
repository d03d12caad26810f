package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Sistem-Absensi-Karyawan/config"
	"Sistem-Absensi-Karyawan/models"
)

// fakeClock mengembalikan waktu tetap agar hasil grading deterministik.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

// fakeStore adalah penyimpanan in-memory dengan semantik guard yang sama
// seperti implementasi MongoDB: satu record per (employee_id, date),
// UpsertCheckIn menolak bila check_in sudah ada, ApplyCheckOut hanya
// menulis bila check_in ada dan check_out belum.
type fakeStore struct {
	records map[string]*models.Attendance
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[string]*models.Attendance)}
}

func (s *fakeStore) key(employeeID, date string) string { return employeeID + "|" + date }

func (s *fakeStore) FindByEmployeeAndDate(_ context.Context, employeeID, date string) (*models.Attendance, error) {
	rec, ok := s.records[s.key(employeeID, date)]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (s *fakeStore) UpsertCheckIn(_ context.Context, record *models.Attendance) (bool, error) {
	k := s.key(record.EmployeeID, record.Date)
	if existing, ok := s.records[k]; ok && existing.CheckIn != nil {
		return true, nil
	}
	cp := *record
	s.records[k] = &cp
	return false, nil
}

func (s *fakeStore) ApplyCheckOut(_ context.Context, record *models.Attendance) (bool, error) {
	k := s.key(record.EmployeeID, record.Date)
	existing, ok := s.records[k]
	if !ok || existing.CheckIn == nil || existing.CheckOut != nil {
		return false, nil
	}
	cp := *record
	s.records[k] = &cp
	return true, nil
}

func (s *fakeStore) FindByEmployeeAndDateRange(_ context.Context, employeeID, startDate, endDate string) ([]models.Attendance, error) {
	var out []models.Attendance
	for _, rec := range s.records {
		if rec.EmployeeID == employeeID && rec.Date >= startDate && rec.Date <= endDate {
			out = append(out, *rec)
		}
	}
	sortByDate(out)
	return out, nil
}

func (s *fakeStore) FindByDateRange(_ context.Context, startDate, endDate string) ([]models.Attendance, error) {
	var out []models.Attendance
	for _, rec := range s.records {
		if rec.Date >= startDate && rec.Date <= endDate {
			out = append(out, *rec)
		}
	}
	sortByDate(out)
	return out, nil
}

func sortByDate(records []models.Attendance) {
	for i := 1; i < len(records); i++ {
		for j := i; j > 0 && records[j].Date < records[j-1].Date; j-- {
			records[j], records[j-1] = records[j-1], records[j]
		}
	}
}

func testConfig() config.AttendanceConfig {
	return config.AttendanceConfig{
		ExpectedCheckIn:  "09:30",
		ExpectedCheckOut: "18:00",
		LateGraceMinutes: 15,
	}
}

func newTestService(store AttendanceStore, clock Clock, policy LocationPolicy) *AttendanceService {
	return NewAttendanceService(store, clock, policy, nil, testConfig())
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", value)
	require.NoError(t, err)
	return parsed
}

func TestCheckInCreatesRecord(t *testing.T) {
	store := newFakeStore()
	clock := &fakeClock{now: mustTime(t, "2025-06-02 09:20")}
	svc := newTestService(store, clock, nil)

	rec, err := svc.CheckIn(context.Background(), "EMP-001", nil)
	require.NoError(t, err)

	assert.Equal(t, "EMP-001", rec.EmployeeID)
	assert.Equal(t, "2025-06-02", rec.Date)
	require.NotNil(t, rec.CheckIn)
	assert.Equal(t, clock.now, rec.CheckIn.Time)
	assert.Nil(t, rec.CheckOut)
	assert.Equal(t, models.StatusPresent, rec.Status)
	assert.Equal(t, 100, rec.Grade)
	assert.Equal(t, 0, rec.TotalTimeSpent)
}

func TestCheckInLateStatusAndGrade(t *testing.T) {
	store := newFakeStore()
	clock := &fakeClock{now: mustTime(t, "2025-06-02 09:50")}
	svc := newTestService(store, clock, nil)

	rec, err := svc.CheckIn(context.Background(), "EMP-001", nil)
	require.NoError(t, err)

	assert.Equal(t, models.StatusLate, rec.Status)
	assert.Equal(t, 70, rec.Grade)
}

func TestCheckInRequiresEmployeeID(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeClock{now: mustTime(t, "2025-06-02 09:00")}, nil)

	_, err := svc.CheckIn(context.Background(), "   ", nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCheckInTwiceRejected(t *testing.T) {
	store := newFakeStore()
	clock := &fakeClock{now: mustTime(t, "2025-06-02 09:00")}
	svc := newTestService(store, clock, nil)

	first, err := svc.CheckIn(context.Background(), "EMP-001", nil)
	require.NoError(t, err)

	clock.now = mustTime(t, "2025-06-02 11:00")
	_, err = svc.CheckIn(context.Background(), "EMP-001", nil)
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)

	// Record pertama tidak boleh berubah.
	current, err := store.FindByEmployeeAndDate(context.Background(), "EMP-001", "2025-06-02")
	require.NoError(t, err)
	assert.Equal(t, first.CheckIn.Time, current.CheckIn.Time)
	assert.Equal(t, first.Grade, current.Grade)
}

// racingStore menyisipkan check-in pesaing di antara pembacaan awal dan
// upsert, meniru dua request yang lolos pemeriksaan baca bersamaan.
type racingStore struct {
	*fakeStore
	rival *models.Attendance
}

func (s *racingStore) FindByEmployeeAndDate(ctx context.Context, employeeID, date string) (*models.Attendance, error) {
	rec, err := s.fakeStore.FindByEmployeeAndDate(ctx, employeeID, date)
	if rec == nil && err == nil && s.rival != nil {
		_, _ = s.fakeStore.UpsertCheckIn(ctx, s.rival)
		s.rival = nil
	}
	return rec, err
}

func TestCheckInRaceLoserGetsConflict(t *testing.T) {
	clock := &fakeClock{now: mustTime(t, "2025-06-02 09:00")}
	store := &racingStore{
		fakeStore: newFakeStore(),
		rival: &models.Attendance{
			EmployeeID: "EMP-001",
			Date:       "2025-06-02",
			CheckIn:    &models.CheckEvent{Time: clock.now},
		},
	}
	svc := newTestService(store, clock, nil)

	_, err := svc.CheckIn(context.Background(), "EMP-001", nil)
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeClock{now: mustTime(t, "2025-06-02 17:00")}, nil)

	_, err := svc.CheckOut(context.Background(), "EMP-001", nil)
	assert.ErrorIs(t, err, ErrCheckInRequired)
}

func TestCheckOutTwiceRejected(t *testing.T) {
	store := newFakeStore()
	clock := &fakeClock{now: mustTime(t, "2025-06-02 09:00")}
	svc := newTestService(store, clock, nil)

	_, err := svc.CheckIn(context.Background(), "EMP-001", nil)
	require.NoError(t, err)

	clock.now = mustTime(t, "2025-06-02 18:00")
	_, err = svc.CheckOut(context.Background(), "EMP-001", nil)
	require.NoError(t, err)

	clock.now = mustTime(t, "2025-06-02 18:30")
	_, err = svc.CheckOut(context.Background(), "EMP-001", nil)
	assert.ErrorIs(t, err, ErrAlreadyCheckedOut)
}

func TestCheckOutComputesTotalAndGrade(t *testing.T) {
	store := newFakeStore()
	clock := &fakeClock{now: mustTime(t, "2025-06-02 09:00")}
	svc := newTestService(store, clock, nil)

	_, err := svc.CheckIn(context.Background(), "EMP-001", nil)
	require.NoError(t, err)

	clock.now = mustTime(t, "2025-06-02 17:00")
	rec, err := svc.CheckOut(context.Background(), "EMP-001", nil)
	require.NoError(t, err)

	require.NotNil(t, rec.CheckOut)
	assert.Equal(t, 480, rec.TotalTimeSpent)
	// Pulang 17:00 = 60 menit lebih awal dari 18:00: dua penalti kepulangan.
	assert.Equal(t, 60, rec.Grade)
	assert.Equal(t, models.StatusPresent, rec.Status, "status dari check-in tidak berubah saat check-out")
}

func TestCheckOutClockSkewClampsToZero(t *testing.T) {
	store := newFakeStore()
	clock := &fakeClock{now: mustTime(t, "2025-06-02 09:00")}
	svc := newTestService(store, clock, nil)

	_, err := svc.CheckIn(context.Background(), "EMP-001", nil)
	require.NoError(t, err)

	// Jam server mundur relatif terhadap check-in.
	clock.now = mustTime(t, "2025-06-02 08:30")
	rec, err := svc.CheckOut(context.Background(), "EMP-001", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.TotalTimeSpent)
}

func TestCheckInLocationRejected(t *testing.T) {
	store := newFakeStore()
	clock := &fakeClock{now: mustTime(t, "2025-06-02 09:00")}
	svc := newTestService(store, clock, CityAllowlistPolicy{Cities: []string{"Jakarta"}})

	_, err := svc.CheckIn(context.Background(), "EMP-001", &models.Location{City: "Medan"})
	assert.ErrorIs(t, err, ErrLocationRejected)
	assert.NotErrorIs(t, err, ErrValidation, "penolakan lokasi bukan error validasi")

	rec, err := store.FindByEmployeeAndDate(context.Background(), "EMP-001", "2025-06-02")
	require.NoError(t, err)
	assert.Nil(t, rec, "penolakan lokasi tidak boleh menulis record")
}

func TestGetTodayDefaultsToClockDate(t *testing.T) {
	store := newFakeStore()
	clock := &fakeClock{now: mustTime(t, "2025-06-02 09:00")}
	svc := newTestService(store, clock, nil)

	_, err := svc.CheckIn(context.Background(), "EMP-001", nil)
	require.NoError(t, err)

	rec, err := svc.GetToday(context.Background(), "EMP-001", "")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "2025-06-02", rec.Date)
}

func TestGetTodayMissingRecordIsNil(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeClock{now: mustTime(t, "2025-06-02 09:00")}, nil)

	rec, err := svc.GetToday(context.Background(), "EMP-001", "2025-06-02")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestGetTodayRejectsBadDate(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeClock{now: mustTime(t, "2025-06-02 09:00")}, nil)

	_, err := svc.GetToday(context.Background(), "EMP-001", "02-06-2025")
	assert.ErrorIs(t, err, ErrValidation)
}

func seedRecord(store *fakeStore, employeeID, date string) {
	store.records[store.key(employeeID, date)] = &models.Attendance{
		EmployeeID: employeeID,
		Date:       date,
		CheckIn:    &models.CheckEvent{},
		Status:     models.StatusPresent,
		Grade:      100,
	}
}

func TestGetWeeklyRangeBounds(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeClock{now: mustTime(t, "2025-06-10 09:00")}, nil)

	// Senin 2025-06-02 sampai Minggu 2025-06-08.
	seedRecord(store, "EMP-001", "2025-06-01") // di luar rentang
	seedRecord(store, "EMP-001", "2025-06-02")
	seedRecord(store, "EMP-001", "2025-06-05")
	seedRecord(store, "EMP-001", "2025-06-08")
	seedRecord(store, "EMP-001", "2025-06-09") // di luar rentang
	seedRecord(store, "EMP-002", "2025-06-04") // karyawan lain

	records, err := svc.GetWeekly(context.Background(), "EMP-001", "2025-06-02")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "2025-06-02", records[0].Date)
	assert.Equal(t, "2025-06-05", records[1].Date)
	assert.Equal(t, "2025-06-08", records[2].Date)
}

func TestGetMonthlyRangeBounds(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeClock{now: mustTime(t, "2025-07-01 09:00")}, nil)

	seedRecord(store, "EMP-001", "2025-05-31")
	seedRecord(store, "EMP-001", "2025-06-01")
	seedRecord(store, "EMP-001", "2025-06-30")
	seedRecord(store, "EMP-001", "2025-07-01")

	records, err := svc.GetMonthly(context.Background(), "EMP-001", 2025, 6)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2025-06-01", records[0].Date)
	assert.Equal(t, "2025-06-30", records[1].Date)
}

func TestGetMonthlyRejectsBadMonth(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeClock{now: mustTime(t, "2025-06-02 09:00")}, nil)

	_, err := svc.GetMonthly(context.Background(), "EMP-001", 2025, 13)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetRangeAllEmployees(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, &fakeClock{now: mustTime(t, "2025-06-10 09:00")}, nil)

	seedRecord(store, "EMP-001", "2025-06-02")
	seedRecord(store, "EMP-002", "2025-06-03")
	seedRecord(store, "EMP-001", "2025-06-20") // di luar rentang

	records, err := svc.GetRange(context.Background(), "2025-06-01", "2025-06-07")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2025-06-02", records[0].Date)
	assert.Equal(t, "2025-06-03", records[1].Date)
}

func TestGetRangeRejectsBadDates(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeClock{now: mustTime(t, "2025-06-02 09:00")}, nil)

	_, err := svc.GetRange(context.Background(), "juni", "2025-06-07")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.GetRange(context.Background(), "2025-06-01", "juli")
	assert.ErrorIs(t, err, ErrValidation)
}
