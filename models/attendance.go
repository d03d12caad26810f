package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status kehadiran. "absent" adalah nilai struktural: alur check-in hanya
// pernah menulis "present" atau "late", "absent" hanya muncul lewat
// koreksi manual admin.
const (
	StatusAbsent  = "absent"
	StatusPresent = "present"
	StatusLate    = "late"
)

// Location adalah bentuk kanonik lokasi check-in/check-out.
// City bersifat opsional, diisi hasil reverse-geocoding di sisi client.
type Location struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
	City      string  `json:"city,omitempty" bson:"city,omitempty"`
}

// CheckEvent merekam satu kejadian check-in atau check-out.
type CheckEvent struct {
	Time     time.Time `json:"time" bson:"time"`
	Location *Location `json:"location,omitempty" bson:"location,omitempty"`
}

// Attendance adalah record harian: maksimal satu per (employee_id, date).
type Attendance struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	EmployeeID     string             `json:"employee_id" bson:"employee_id"`
	Date           string             `json:"date" bson:"date"` // format 2006-01-02
	CheckIn        *CheckEvent        `json:"check_in,omitempty" bson:"check_in,omitempty"`
	CheckOut       *CheckEvent        `json:"check_out,omitempty" bson:"check_out,omitempty"`
	TotalTimeSpent int                `json:"total_time_spent" bson:"total_time_spent"` // menit, 0 sebelum check-out
	Status         string             `json:"status" bson:"status"`
	Grade          int                `json:"grade" bson:"grade"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

// CheckPayload adalah body untuk check-in dan check-out.
type CheckPayload struct {
	Location *Location `json:"location,omitempty"`
}

// AttendanceStatusUpdatePayload dipakai admin untuk koreksi status manual.
type AttendanceStatusUpdatePayload struct {
	Status string `json:"status" validate:"required,oneof=present absent late"`
}

// AttendanceWithEmployee adalah hasil $lookup untuk tampilan admin.
type AttendanceWithEmployee struct {
	ID                 primitive.ObjectID `json:"id" bson:"_id"`
	EmployeeID         string             `json:"employee_id" bson:"employee_id"`
	Date               string             `json:"date" bson:"date"`
	CheckIn            *CheckEvent        `json:"check_in,omitempty" bson:"check_in,omitempty"`
	CheckOut           *CheckEvent        `json:"check_out,omitempty" bson:"check_out,omitempty"`
	TotalTimeSpent     int                `json:"total_time_spent" bson:"total_time_spent"`
	Status             string             `json:"status" bson:"status"`
	Grade              int                `json:"grade" bson:"grade"`
	EmployeeName       string             `json:"employee_name" bson:"employee_name"`
	EmployeeEmail      string             `json:"employee_email" bson:"employee_email"`
	EmployeePosition   string             `json:"employee_position,omitempty" bson:"employee_position,omitempty"`
	EmployeeDepartment string             `json:"employee_department,omitempty" bson:"employee_department,omitempty"`
}
