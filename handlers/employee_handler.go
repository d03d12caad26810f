package handlers

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"Sistem-Absensi-Karyawan/models"
	"Sistem-Absensi-Karyawan/pkg/password"
	util "Sistem-Absensi-Karyawan/pkg/utils"
	"Sistem-Absensi-Karyawan/repository"
	"Sistem-Absensi-Karyawan/services"
)

type EmployeeHandler struct {
	employeeRepo   *repository.EmployeeRepository
	attendanceRepo repository.AttendanceRepository
}

func NewEmployeeHandler(employeeRepo *repository.EmployeeRepository, attendanceRepo repository.AttendanceRepository) *EmployeeHandler {
	return &EmployeeHandler{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
	}
}

// CreateEmployee godoc
// @Summary Daftarkan Karyawan
// @Description Mendaftarkan karyawan baru (admin only)
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param employee body models.EmployeeRegisterPayload true "Data registrasi karyawan"
// @Success 201 {object} models.RegisterSuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /admin/employees [post]
func (h *EmployeeHandler) CreateEmployee(c *fiber.Ctx) error {
	var payload models.EmployeeRegisterPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	employeeID := payload.EmployeeID
	if employeeID == "" {
		employeeID = generateEmployeeID()
	} else {
		existing, err := h.employeeRepo.FindByEmployeeID(ctx, employeeID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal memeriksa employee_id: %v", err)})
		}
		if existing != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": fmt.Sprintf("Karyawan dengan employee_id %s sudah ada", employeeID)})
		}
	}

	hashedPassword, err := password.HashPassword(payload.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "gagal hash password"})
	}

	newEmployee := &models.Employee{
		EmployeeID: employeeID,
		Name:       payload.Name,
		Email:      payload.Email,
		Password:   hashedPassword,
		Role:       payload.Role,
		Position:   payload.Position,
		Department: payload.Department,
		Phone:      payload.Phone,
		Address:    payload.Address,
		JoinDate:   payload.JoinDate,
	}

	if err := h.employeeRepo.CreateEmployee(ctx, newEmployee); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendaftarkan karyawan: %v", err)})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Karyawan berhasil didaftarkan (oleh admin)",
		"employee_id": newEmployee.EmployeeID,
		"id":          newEmployee.ID,
	})
}

func (h *EmployeeHandler) GetEmployeeByID(c *fiber.Ctx) error {
	objectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format ID tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	employee, err := h.employeeRepo.FindByID(ctx, objectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mengambil karyawan: %v", err)})
	}
	if employee == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Karyawan tidak ditemukan"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"employee": employee})
}

func (h *EmployeeHandler) GetAllEmployees(c *fiber.Ctx) error {
	page, err := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.ParseInt(c.Query("limit", "20"), 10, 64)
	if err != nil || limit < 1 {
		limit = 20
	}

	filter := bson.M{}
	if department := c.Query("department"); department != "" {
		filter["department"] = department
	}
	if search := c.Query("search"); search != "" {
		filter["name"] = bson.M{"$regex": search, "$options": "i"}
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	employees, total, err := h.employeeRepo.GetAllEmployees(ctx, filter, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mengambil data karyawan: %v", err)})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":   "Data karyawan berhasil diambil",
		"employees": employees,
		"total":     total,
		"page":      page,
		"limit":     limit,
	})
}

func (h *EmployeeHandler) UpdateEmployee(c *fiber.Ctx) error {
	objectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format ID tidak valid"})
	}

	var payload models.EmployeeUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	updateData := bson.M{}
	if payload.Name != "" {
		updateData["name"] = payload.Name
	}
	if payload.Email != "" {
		updateData["email"] = payload.Email
	}
	if payload.Position != "" {
		updateData["position"] = payload.Position
	}
	if payload.Department != "" {
		updateData["department"] = payload.Department
	}
	if payload.Phone != "" {
		updateData["phone"] = payload.Phone
	}
	if payload.Address != "" {
		updateData["address"] = payload.Address
	}
	if payload.JoinDate != "" {
		updateData["join_date"] = payload.JoinDate
	}
	if payload.LeavingDate != "" {
		updateData["leaving_date"] = payload.LeavingDate
	}

	if len(updateData) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Tidak ada data untuk diupdate"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.employeeRepo.UpdateEmployee(ctx, objectID, updateData); err != nil {
		if err.Error() == "karyawan tidak ditemukan" {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Karyawan tidak ditemukan"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mengupdate karyawan: %v", err)})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Karyawan berhasil diupdate"})
}

func (h *EmployeeHandler) DeleteEmployee(c *fiber.Ctx) error {
	objectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format ID tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.employeeRepo.DeleteEmployee(ctx, objectID); err != nil {
		if err.Error() == "karyawan tidak ditemukan" {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Karyawan tidak ditemukan"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal menghapus karyawan: %v", err)})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Karyawan berhasil dihapus"})
}

func (h *EmployeeHandler) GetDashboardStats(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	total, err := h.employeeRepo.CountEmployees(ctx, bson.M{})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal menghitung karyawan: %v", err)})
	}

	active, err := h.employeeRepo.CountEmployees(ctx, bson.M{"role": "karyawan"})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal menghitung karyawan aktif: %v", err)})
	}

	today := time.Now().Format(services.DateLayout)
	presentToday, err := h.attendanceRepo.CountByDateAndStatus(ctx, today, models.StatusPresent)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal menghitung kehadiran: %v", err)})
	}
	lateToday, err := h.attendanceRepo.CountByDateAndStatus(ctx, today, models.StatusLate)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal menghitung keterlambatan: %v", err)})
	}

	stats := models.DashboardStats{
		TotalKaryawan:    total,
		KaryawanAktif:    active,
		HadirHariIni:     presentToday,
		TerlambatHariIni: lateToday,
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"stats": stats})
}

// generateEmployeeID membuat employee_id unik bila admin tidak mengisi.
func generateEmployeeID() string {
	return "EMP-" + time.Now().Format("2006") + "-" + uuid.New().String()[:8]
}
