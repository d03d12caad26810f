package seeder

import (
	"context"
	"fmt"
	"log"
	"time"

	"Sistem-Absensi-Karyawan/models"
	"Sistem-Absensi-Karyawan/pkg/password"
	"Sistem-Absensi-Karyawan/repository"
)

// SeedEmployees memasukkan akun admin dan beberapa karyawan contoh.
// Aman dijalankan berulang: akun yang sudah ada dilewati.
func SeedEmployees(employeeRepo *repository.EmployeeRepository) {
	log.Println("🌱 Memulai seeding karyawan...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hashedPassword, err := password.HashPassword("Password123")
	if err != nil {
		log.Fatalf("❌ Gagal hash password: %v", err)
	}

	seedData := []models.Employee{
		{
			EmployeeID: "EMP-ADM-001",
			Name:       "Admin Utama",
			Email:      "admin.utama@gmail.com",
			Password:   hashedPassword,
			Role:       "admin",
			Position:   "Manajer Umum",
			Department: "Manajemen",
			Address:    "Jl. Administrasi No. 1, Jakarta",
			JoinDate:   "2023-01-02",
		},
		{
			EmployeeID: "EMP-2024-001",
			Name:       "Budi Santoso",
			Email:      "budi.santoso@gmail.com",
			Password:   hashedPassword,
			Role:       "karyawan",
			Position:   "Staff IT",
			Department: "Teknologi Informasi (IT)",
			Address:    "Jl. Melati No. 12, Bandung",
			JoinDate:   "2024-03-11",
		},
		{
			EmployeeID: "EMP-2024-002",
			Name:       "Siti Rahma",
			Email:      "siti.rahma@gmail.com",
			Password:   hashedPassword,
			Role:       "karyawan",
			Position:   "Staff Keuangan",
			Department: "Keuangan",
			Address:    "Jl. Kenanga No. 8, Surabaya",
			JoinDate:   "2024-07-01",
		},
	}

	for i := range seedData {
		emp := seedData[i]
		existing, err := employeeRepo.FindByEmail(ctx, emp.Email)
		if err == nil && existing != nil {
			fmt.Printf("Skipping: karyawan '%s' sudah ada.\n", emp.Email)
			continue
		}

		if err := employeeRepo.CreateEmployee(ctx, &emp); err != nil {
			log.Printf("❌ Gagal menyimpan karyawan '%s': %v\n", emp.Email, err)
		} else {
			fmt.Printf("✔ Karyawan '%s' (%s) berhasil ditambahkan.\n", emp.Name, emp.EmployeeID)
		}
	}

	log.Println("✅ Seeding karyawan selesai.")
}
