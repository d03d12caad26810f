package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Employee struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	EmployeeID   string             `json:"employee_id" bson:"employee_id,omitempty"`
	Name         string             `json:"name" bson:"name,omitempty"`
	Email        string             `json:"email" bson:"email,omitempty"`
	Password     string             `json:"-" bson:"password,omitempty"`
	Role         string             `json:"role" bson:"role,omitempty"`
	Position     string             `json:"position" bson:"position,omitempty"`
	Department   string             `json:"department" bson:"department,omitempty"`
	Phone        string             `json:"phone" bson:"phone,omitempty"`
	Address      string             `json:"address" bson:"address,omitempty"`
	JoinDate     string             `json:"join_date,omitempty" bson:"join_date,omitempty"`       // format 2006-01-02
	LeavingDate  string             `json:"leaving_date,omitempty" bson:"leaving_date,omitempty"` // format 2006-01-02
	IsFirstLogin bool               `json:"is_first_login" bson:"isFirstLogin,omitempty"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type EmployeeRegisterPayload struct {
	EmployeeID string `json:"employee_id"` // kosong = digenerate otomatis
	Name       string `json:"name" validate:"required,min=3,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8,max=50,hasuppercase"`
	Role       string `json:"role" validate:"required,oneof=admin karyawan"`
	Position   string `json:"position"`
	Department string `json:"department"`
	Phone      string `json:"phone" validate:"omitempty,min=8,max=20"`
	Address    string `json:"address" validate:"omitempty,min=5,max=255"`
	JoinDate   string `json:"join_date" validate:"omitempty,datetime=2006-01-02"`
}

type EmployeeLoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type EmployeeUpdatePayload struct {
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Position    string `json:"position,omitempty"`
	Department  string `json:"department,omitempty"`
	Phone       string `json:"phone,omitempty" validate:"omitempty,min=8,max=20"`
	Address     string `json:"address,omitempty" validate:"omitempty,min=5,max=255"`
	JoinDate    string `json:"join_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	LeavingDate string `json:"leaving_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type ChangePasswordPayload struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=50,hasuppercase"`
}

type DashboardStats struct {
	TotalKaryawan    int64 `json:"total_karyawan"`
	KaryawanAktif    int64 `json:"karyawan_aktif"`
	HadirHariIni     int64 `json:"hadir_hari_ini"`
	TerlambatHariIni int64 `json:"terlambat_hari_ini"`
}
