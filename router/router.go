package router

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"Sistem-Absensi-Karyawan/config"
	"Sistem-Absensi-Karyawan/config/middleware"
	_ "Sistem-Absensi-Karyawan/docs"
	"Sistem-Absensi-Karyawan/handlers"
	"Sistem-Absensi-Karyawan/pkg/paseto"
	"Sistem-Absensi-Karyawan/repository"
	"Sistem-Absensi-Karyawan/services"
)

func SetupRoutes(app *fiber.App, cfg *config.AppConfig) {
	log.Println("Memulai pendaftaran rute aplikasi...")

	tokenMaker, err := paseto.NewMaker(cfg.PASETO_SECRET)
	if err != nil {
		log.Fatalf("gagal membuat token maker: %v", err)
	}

	// Inisialisasi Repositories
	employeeRepo := repository.NewEmployeeRepository()
	attendanceRepo := repository.NewAttendanceRepository()
	workScheduleRepo := repository.NewWorkScheduleRepository()

	// Inisialisasi Services
	scheduleResolver := services.NewScheduleResolver(workScheduleRepo, cfg.Attendance)
	attendanceService := services.NewAttendanceService(
		attendanceRepo,
		services.SystemClock(),
		services.PolicyFromConfig(cfg.Attendance),
		scheduleResolver,
		cfg.Attendance,
	)

	// Inisialisasi Handlers
	authHandler := handlers.NewAuthHandler(employeeRepo, tokenMaker)
	employeeHandler := handlers.NewEmployeeHandler(employeeRepo, attendanceRepo)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService, attendanceRepo)
	workScheduleHandler := handlers.NewWorkScheduleHandler(workScheduleRepo)

	// Health check & Docs
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Sistem Absensi Karyawan API",
			"status":  "running",
			"docs":    "/docs/index.html",
		})
	})
	app.Get("/docs/*", swagger.HandlerDefault)

	// API v1 group
	api := app.Group("/api/v1")

	// Authentication routes
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", middleware.AuthMiddleware(tokenMaker), authHandler.Logout)
	authGroup.Post("/change-password", middleware.AuthMiddleware(tokenMaker), authHandler.ChangePassword)

	// Employee routes (protected)
	employeeGroup := api.Group("/employees", middleware.AuthMiddleware(tokenMaker))
	employeeGroup.Get("/:id", employeeHandler.GetEmployeeByID)

	// Admin routes
	adminGroup := api.Group("/admin", middleware.AuthMiddleware(tokenMaker), middleware.AdminMiddleware())
	adminGroup.Post("/employees", employeeHandler.CreateEmployee)
	adminGroup.Get("/employees", employeeHandler.GetAllEmployees)
	adminGroup.Put("/employees/:id", employeeHandler.UpdateEmployee)
	adminGroup.Delete("/employees/:id", employeeHandler.DeleteEmployee)
	adminGroup.Get("/dashboard-stats", employeeHandler.GetDashboardStats)

	// Attendance routes
	attendanceGroup := api.Group("/attendance", middleware.AuthMiddleware(tokenMaker))
	attendanceGroup.Post("/check-in", attendanceHandler.CheckIn)
	attendanceGroup.Post("/check-out", attendanceHandler.CheckOut)
	attendanceGroup.Post("/scan", attendanceHandler.ScanQRCode)
	attendanceGroup.Get("/my-history", attendanceHandler.GetMyAttendanceHistory)
	attendanceGroup.Get("/today/:employeeId", attendanceHandler.GetToday)
	attendanceGroup.Get("/weekly/:employeeId", attendanceHandler.GetWeekly)
	attendanceGroup.Get("/monthly", attendanceHandler.GetMonthly)

	adminAttendanceGroup := attendanceGroup.Group("/", middleware.AdminMiddleware())
	adminAttendanceGroup.Get("/generate-qr", attendanceHandler.GenerateQRCode)
	adminAttendanceGroup.Get("/range", attendanceHandler.GetRange)
	adminAttendanceGroup.Get("/report", attendanceHandler.GetRangeReport)
	adminAttendanceGroup.Put("/:id/status", attendanceHandler.UpdateStatus)

	// Work schedule routes
	scheduleGroup := api.Group("/work-schedules", middleware.AuthMiddleware(tokenMaker))
	scheduleGroup.Get("/", workScheduleHandler.GetAllWorkSchedules)
	scheduleGroup.Get("/holidays", workScheduleHandler.GetHolidays)
	scheduleGroup.Get("/:id", workScheduleHandler.GetWorkScheduleById)

	adminScheduleGroup := scheduleGroup.Group("/", middleware.AdminMiddleware())
	adminScheduleGroup.Post("/", workScheduleHandler.CreateWorkSchedule)
	adminScheduleGroup.Put("/:id", workScheduleHandler.UpdateWorkSchedule)
	adminScheduleGroup.Delete("/:id", workScheduleHandler.DeleteWorkSchedule)

	log.Println("Semua rute aplikasi berhasil didaftarkan.")
	log.Println("Swagger documentation tersedia di: /docs/index.html")
}
