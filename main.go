package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"Sistem-Absensi-Karyawan/config"
	_ "Sistem-Absensi-Karyawan/docs" // Import docs untuk swagger
	"Sistem-Absensi-Karyawan/repository"
	"Sistem-Absensi-Karyawan/router"
	"Sistem-Absensi-Karyawan/seeder"
	_ "time/tzdata"
)

// @title Sistem Absensi Karyawan API
// @version 1.0
// @description API untuk sistem absensi karyawan: check-in/check-out harian, penilaian kedisiplinan, kebijakan lokasi, dan jadwal kerja
// @termsOfService https://github.com/your-repo/terms/
//
// @contact.name API Support
// @contact.url https://github.com/your-repo
// @contact.email support@example.com
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:3000
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and PASETO token.
//
// @tag.name Auth
// @tag.description Authentication endpoints
//
// @tag.name Employees
// @tag.description Employee management endpoints
//
// @tag.name Admin
// @tag.description Admin only endpoints
//
// @tag.name Attendance
// @tag.description Attendance check-in/check-out and reporting endpoints
//
// @tag.name Work Schedules
// @tag.description Work schedule management endpoints
func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file tidak ditemukan, menggunakan environment variables sistem")
	}

	cfg := config.LoadConfig()

	config.MongoConnect()
	config.InitDatabase()
	defer config.DisconnectDB()

	if os.Getenv("RUN_SEEDER") == "true" {
		seeder.SeedEmployees(repository.NewEmployeeRepository())
	}

	app := fiber.New()

	config.SetupCORS(app)
	app.Use(logger.New())

	router.SetupRoutes(app, cfg)

	log.Printf("Server running on port %s", cfg.Port)
	log.Printf("API Documentation: http://localhost:%s/docs/index.html", cfg.Port)
	log.Printf("Health Check: http://localhost:%s/", cfg.Port)
	log.Printf("CORS enabled for origins: %v", config.GetAllowedOrigins())
	log.Fatal(app.Listen(":" + cfg.Port))
}
