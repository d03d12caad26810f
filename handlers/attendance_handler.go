package handlers

import (
	"encoding/base64"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Absensi-Karyawan/models"
	"Sistem-Absensi-Karyawan/pkg/paseto"
	util "Sistem-Absensi-Karyawan/pkg/utils"
	"Sistem-Absensi-Karyawan/repository"
	"Sistem-Absensi-Karyawan/services"
)

type AttendanceHandler struct {
	service *services.AttendanceService
	repo    repository.AttendanceRepository
}

func NewAttendanceHandler(service *services.AttendanceService, repo repository.AttendanceRepository) *AttendanceHandler {
	return &AttendanceHandler{service: service, repo: repo}
}

// CheckIn godoc
// @Summary Check-in absensi
// @Description Mencatat kedatangan karyawan yang sedang login untuk hari ini
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CheckPayload false "Lokasi opsional"
// @Success 201 {object} models.AttendanceSuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse "Lokasi ditolak kebijakan"
// @Failure 409 {object} models.ErrorResponse "Sudah check-in hari ini"
// @Router /attendance/check-in [post]
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Tidak terautentikasi atau klaim token tidak valid"})
	}

	var payload models.CheckPayload
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload tidak valid: " + err.Error()})
		}
	}

	record, err := h.service.CheckIn(c.Context(), claims.EmployeeID, payload.Location)
	if err != nil {
		return attendanceErrorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Berhasil check-in pukul " + record.CheckIn.Time.Format("15:04"),
		"attendance": record,
	})
}

// CheckOut godoc
// @Summary Check-out absensi
// @Description Mencatat kepulangan dan mengunci record hari ini
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CheckPayload false "Lokasi opsional"
// @Success 200 {object} models.AttendanceSuccessResponse
// @Failure 400 {object} models.ErrorResponse "Belum check-in"
// @Failure 409 {object} models.ErrorResponse "Sudah check-out hari ini"
// @Router /attendance/check-out [post]
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Tidak terautentikasi atau klaim token tidak valid"})
	}

	var payload models.CheckPayload
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload tidak valid: " + err.Error()})
		}
	}

	record, err := h.service.CheckOut(c.Context(), claims.EmployeeID, payload.Location)
	if err != nil {
		return attendanceErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":    "Berhasil check-out pukul " + record.CheckOut.Time.Format("15:04"),
		"attendance": record,
	})
}

// GetToday mengambil record absensi satu karyawan pada satu tanggal
// (default hari ini). Tanpa record hasilnya null, bukan record "absent".
func (h *AttendanceHandler) GetToday(c *fiber.Ctx) error {
	employeeID := c.Params("employeeId")
	date := c.Query("date")

	record, err := h.service.GetToday(c.Context(), employeeID, date)
	if err != nil {
		return attendanceErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"attendance": record})
}

func (h *AttendanceHandler) GetWeekly(c *fiber.Ctx) error {
	employeeID := c.Params("employeeId")
	startDate := c.Query("start_date")

	records, err := h.service.GetWeekly(c.Context(), employeeID, startDate)
	if err != nil {
		return attendanceErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"attendances": records, "total": len(records)})
}

func (h *AttendanceHandler) GetMonthly(c *fiber.Ctx) error {
	employeeID := c.Query("employee_id")

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Parameter year harus angka"})
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Parameter month harus angka"})
	}

	records, err := h.service.GetMonthly(c.Context(), employeeID, year, month)
	if err != nil {
		return attendanceErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"attendances": records, "total": len(records)})
}

// GetRange mengembalikan record mentah semua karyawan dalam rentang tanggal
// inklusif, urut naik; pengelompokan per karyawan urusan pemanggil.
func (h *AttendanceHandler) GetRange(c *fiber.Ctx) error {
	records, err := h.service.GetRange(c.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return attendanceErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"attendances": records, "total": len(records)})
}

// GetRangeReport adalah tampilan admin: record dalam rentang tanggal
// digabung dengan detail karyawan, dengan filter status opsional.
func (h *AttendanceHandler) GetRangeReport(c *fiber.Ctx) error {
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	status := c.Query("status")

	if _, err := time.Parse(services.DateLayout, startDate); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format start_date harus " + services.DateLayout})
	}
	if _, err := time.Parse(services.DateLayout, endDate); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format end_date harus " + services.DateLayout})
	}

	records, err := h.repo.FindRangeWithEmployeeDetails(c.Context(), startDate, endDate, status)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil laporan kehadiran", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"attendances": records, "total": len(records)})
}

// UpdateStatus adalah koreksi manual admin; satu-satunya jalur yang bisa
// menulis status "absent" secara eksplisit.
func (h *AttendanceHandler) UpdateStatus(c *fiber.Ctx) error {
	attendanceID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID absensi tidak valid"})
	}

	var payload models.AttendanceStatusUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload tidak valid: " + err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	if err := h.repo.UpdateStatus(c.Context(), attendanceID, payload.Status); err != nil {
		if err.Error() == "absensi tidak ditemukan" {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Absensi tidak ditemukan"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal update status absensi", "details": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Status absensi berhasil diperbarui"})
}

func (h *AttendanceHandler) GetMyAttendanceHistory(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Tidak terautentikasi atau klaim token tidak valid"})
	}

	attendanceHistory, err := h.repo.FindAllByEmployee(c.Context(), claims.EmployeeID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil riwayat kehadiran"})
	}

	return c.Status(fiber.StatusOK).JSON(attendanceHistory)
}

// ScanQRCode adalah jalur absensi via QR harian: scan pertama menjadi
// check-in, scan berikutnya menjadi check-out. Aturan siklus hidup tetap
// ditegakkan oleh service yang sama dengan jalur biasa.
func (h *AttendanceHandler) ScanQRCode(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Tidak terautentikasi atau klaim token tidak valid"})
	}

	var payload models.QRCodeScanPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload tidak valid: " + err.Error()})
	}
	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	qrCode, err := h.repo.FindQRCodeByValue(c.Context(), payload.QRCodeValue)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memeriksa QR Code", "details": err.Error()})
	}
	if qrCode == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "QR Code tidak ditemukan atau tidak valid."})
	}

	if time.Now().After(qrCode.ExpiresAt) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "QR Code sudah kadaluarsa."})
	}

	today := time.Now().Format(services.DateLayout)
	if qrCode.Date != today {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "QR Code ini tidak berlaku untuk hari ini."})
	}

	existing, err := h.service.GetToday(c.Context(), claims.EmployeeID, today)
	if err != nil {
		return attendanceErrorResponse(c, err)
	}

	var record *models.Attendance
	var message string
	if existing != nil && existing.CheckIn != nil && existing.CheckOut == nil {
		record, err = h.service.CheckOut(c.Context(), claims.EmployeeID, payload.Location)
		if err != nil {
			return attendanceErrorResponse(c, err)
		}
		message = "Berhasil check-out pukul " + record.CheckOut.Time.Format("15:04")
	} else {
		record, err = h.service.CheckIn(c.Context(), claims.EmployeeID, payload.Location)
		if err != nil {
			return attendanceErrorResponse(c, err)
		}
		message = "Berhasil check-in pukul " + record.CheckIn.Time.Format("15:04")
	}

	if err := h.repo.MarkQRCodeAsUsed(c.Context(), qrCode.ID, claims.EmployeeID); err != nil {
		// Audit trail saja, absensi sudah tersimpan.
		c.Context().Logger().Printf("gagal menandai QR Code terpakai: %v", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": message, "attendance": record})
}

func (h *AttendanceHandler) GenerateQRCode(c *fiber.Ctx) error {
	today := time.Now()
	todayStr := today.Format(services.DateLayout)

	// QR harian dipakai bersama: bila masih ada yang aktif, pakai ulang.
	active, err := h.repo.FindActiveQRCodeByDate(c.Context(), todayStr)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memeriksa QR Code aktif.", "details": err.Error()})
	}

	uniqueCode := uuid.New().String()
	expiresAt := time.Date(today.Year(), today.Month(), today.Day(), 23, 0, 0, 0, today.Location())

	if active != nil {
		uniqueCode = active.Code
		expiresAt = active.ExpiresAt
	} else {
		newQRCode := &models.QRCode{
			ID:        primitive.NewObjectID(),
			Code:      uniqueCode,
			Date:      todayStr,
			ExpiresAt: expiresAt,
			UsedBy:    []string{},
			CreatedAt: today,
		}
		if err := h.repo.CreateQRCode(c.Context(), newQRCode); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menyimpan data QR Code."})
		}
	}

	png, err := qrcode.Encode(uniqueCode, qrcode.Medium, 256)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal membuat gambar QR Code."})
	}

	encodedString := base64.StdEncoding.EncodeToString(png)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":       "QR Code berhasil dibuat",
		"qr_code_image": "data:image/png;base64," + encodedString,
		"expires_at":    expiresAt,
	})
}

// attendanceErrorResponse memetakan taksonomi error service ke status HTTP.
func attendanceErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrLocationRejected):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrCheckInRequired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyCheckedIn), errors.Is(err, services.ErrAlreadyCheckedOut):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Terjadi kesalahan pada server", "details": err.Error()})
	}
}
