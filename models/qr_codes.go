package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type QRCode struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Code      string             `json:"code" bson:"code,omitempty"`
	Date      string             `json:"date" bson:"date,omitempty"` // format 2006-01-02
	ExpiresAt time.Time          `json:"expires_at" bson:"expires_at,omitempty"`
	UsedBy    []string           `json:"used_by" bson:"used_by"` // employee_id yang sudah scan
	CreatedAt time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type QRCodeScanPayload struct {
	QRCodeValue string    `json:"qr_code_value" validate:"required"`
	Location    *Location `json:"location,omitempty"`
}
