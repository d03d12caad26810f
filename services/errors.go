package services

import "errors"

// Taksonomi error inti absensi. Handler memetakan tiap jenis ke status HTTP
// dan pesan untuk user; service hanya mengembalikan jenis + alasan.
var (
	ErrValidation        = errors.New("data tidak valid")
	ErrLocationRejected  = errors.New("lokasi di luar area yang diizinkan")
	ErrAlreadyCheckedIn  = errors.New("sudah melakukan check-in hari ini")
	ErrCheckInRequired   = errors.New("belum melakukan check-in hari ini")
	ErrAlreadyCheckedOut = errors.New("sudah melakukan check-out hari ini")
)
