package models

type LoginSuccessResponse struct {
	Message      string `json:"message" example:"Login berhasil"`
	Token        string `json:"token" example:"v2.local.Ft9QcxZhJXEYyb7-bMM..."`
	EmployeeID   string `json:"employee_id" example:"EMP-2025-001"`
	Role         string `json:"role" example:"karyawan"`
	IsFirstLogin bool   `json:"is_first_login" example:"true"`
}

type RegisterSuccessResponse struct {
	Message    string `json:"message" example:"Karyawan berhasil didaftarkan (oleh admin)"`
	EmployeeID string `json:"employee_id" example:"EMP-2025-001"`
}

type ChangePasswordSuccessResponse struct {
	Message string `json:"message" example:"Password berhasil diubah."`
}

type AttendanceSuccessResponse struct {
	Message    string     `json:"message" example:"Berhasil check-in pukul 09:12"`
	Attendance Attendance `json:"attendance"`
}

type AttendanceListResponse struct {
	Message     string       `json:"message" example:"Data absensi berhasil diambil"`
	Attendances []Attendance `json:"attendances"`
	Total       int          `json:"total" example:"5"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid request body"`
	Details string `json:"details,omitempty" example:"validation failed"`
}

type UnauthorizedErrorResponse struct {
	Error string `json:"error" example:"Token tidak valid atau tidak ada"`
}

type ForbiddenErrorResponse struct {
	Error string `json:"error" example:"Akses ditolak. Hanya admin yang dapat mengakses endpoint ini"`
}

type NotFoundErrorResponse struct {
	Error string `json:"error" example:"Karyawan tidak ditemukan"`
}

type LogoutSuccessResponse struct {
	Message string `json:"message" example:"Logout berhasil. Silakan hapus token dari sisi client."`
}
