package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Sistem-Absensi-Karyawan/config"
	"Sistem-Absensi-Karyawan/models"
	"Sistem-Absensi-Karyawan/pkg/paseto"
	"Sistem-Absensi-Karyawan/services"
)

// memoryStore meniru guard atomik penyimpanan MongoDB untuk pengujian handler.
type memoryStore struct {
	records map[string]*models.Attendance
}

func newMemoryStore() *memoryStore {
	return &memoryStore{records: make(map[string]*models.Attendance)}
}

func (s *memoryStore) key(employeeID, date string) string { return employeeID + "|" + date }

func (s *memoryStore) FindByEmployeeAndDate(_ context.Context, employeeID, date string) (*models.Attendance, error) {
	rec, ok := s.records[s.key(employeeID, date)]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (s *memoryStore) UpsertCheckIn(_ context.Context, record *models.Attendance) (bool, error) {
	k := s.key(record.EmployeeID, record.Date)
	if existing, ok := s.records[k]; ok && existing.CheckIn != nil {
		return true, nil
	}
	cp := *record
	s.records[k] = &cp
	return false, nil
}

func (s *memoryStore) ApplyCheckOut(_ context.Context, record *models.Attendance) (bool, error) {
	k := s.key(record.EmployeeID, record.Date)
	existing, ok := s.records[k]
	if !ok || existing.CheckIn == nil || existing.CheckOut != nil {
		return false, nil
	}
	cp := *record
	s.records[k] = &cp
	return true, nil
}

func (s *memoryStore) FindByEmployeeAndDateRange(_ context.Context, employeeID, startDate, endDate string) ([]models.Attendance, error) {
	var out []models.Attendance
	for _, rec := range s.records {
		if rec.EmployeeID == employeeID && rec.Date >= startDate && rec.Date <= endDate {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (s *memoryStore) FindByDateRange(_ context.Context, startDate, endDate string) ([]models.Attendance, error) {
	var out []models.Attendance
	for _, rec := range s.records {
		if rec.Date >= startDate && rec.Date <= endDate {
			out = append(out, *rec)
		}
	}
	return out, nil
}

type stubClock struct {
	now time.Time
}

func (c *stubClock) Now() time.Time { return c.now }

func newTestApp(t *testing.T, store services.AttendanceStore, clock services.Clock, policy services.LocationPolicy) *fiber.App {
	t.Helper()

	svc := services.NewAttendanceService(store, clock, policy, nil, config.AttendanceConfig{
		ExpectedCheckIn:  "09:30",
		ExpectedCheckOut: "18:00",
		LateGraceMinutes: 15,
	})
	handler := NewAttendanceHandler(svc, nil)

	app := fiber.New()
	withClaims := func(c *fiber.Ctx) error {
		c.Locals("user", &paseto.Claims{EmployeeID: "EMP-001", Role: "karyawan"})
		return c.Next()
	}
	app.Post("/check-in", withClaims, handler.CheckIn)
	app.Post("/check-out", withClaims, handler.CheckOut)
	app.Post("/anon/check-in", handler.CheckIn)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCheckInHandlerFlow(t *testing.T) {
	clock := &stubClock{now: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)}
	app := newTestApp(t, newMemoryStore(), clock, nil)

	resp := postJSON(t, app, "/check-in", "")
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Idempoten: check-in kedua di hari yang sama ditolak 409.
	resp = postJSON(t, app, "/check-in", "")
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestCheckOutHandlerFlow(t *testing.T) {
	clock := &stubClock{now: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)}
	app := newTestApp(t, newMemoryStore(), clock, nil)

	// Check-out tanpa check-in.
	resp := postJSON(t, app, "/check-out", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, app, "/check-in", "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	clock.now = time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC)
	resp = postJSON(t, app, "/check-out", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Record sudah terkunci.
	resp = postJSON(t, app, "/check-out", "")
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestCheckInHandlerLocationRejected(t *testing.T) {
	clock := &stubClock{now: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)}
	policy := services.CityAllowlistPolicy{Cities: []string{"Jakarta"}}
	app := newTestApp(t, newMemoryStore(), clock, policy)

	resp := postJSON(t, app, "/check-in", `{"location":{"latitude":3.58,"longitude":98.67,"city":"Medan"}}`)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = postJSON(t, app, "/check-in", `{"location":{"latitude":-6.2,"longitude":106.8,"city":"Jakarta"}}`)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestCheckInHandlerWithoutClaims(t *testing.T) {
	clock := &stubClock{now: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)}
	app := newTestApp(t, newMemoryStore(), clock, nil)

	resp := postJSON(t, app, "/anon/check-in", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
