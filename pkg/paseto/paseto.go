package paseto

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/o1egl/paseto"

	"Sistem-Absensi-Karyawan/models"
)

type Claims struct {
	EmployeeID   string `json:"employee_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	IsFirstLogin bool   `json:"is_first_login"`
}

type Maker struct {
	paseto       *paseto.V2
	symmetricKey []byte
}

// NewMaker membuat token maker dari secret Base64 URL-encoded 32 byte.
func NewMaker(secretBase64 string) (*Maker, error) {
	decodedKey, err := base64.URLEncoding.DecodeString(secretBase64)
	if err != nil {
		// coba varian standar untuk secret lama
		decodedKey, err = base64.StdEncoding.DecodeString(secretBase64)
		if err != nil {
			return nil, fmt.Errorf("gagal decode PASETO_SECRET: %w", err)
		}
	}

	if len(decodedKey) != 32 {
		return nil, fmt.Errorf("PASETO_SECRET harus tepat 32 byte setelah decode Base64, dapat %d byte", len(decodedKey))
	}

	return &Maker{
		paseto:       paseto.NewV2(),
		symmetricKey: decodedKey,
	}, nil
}

func (m *Maker) GenerateToken(employee *models.Employee) (string, error) {
	now := time.Now()
	exp := now.Add(24 * time.Hour)

	token := paseto.JSONToken{
		IssuedAt:   now,
		Expiration: exp,
		NotBefore:  now,
	}

	// Custom claims disimpan sebagai string
	token.Set("employee_id", employee.EmployeeID)
	token.Set("email", employee.Email)
	token.Set("role", employee.Role)
	token.Set("is_first_login", fmt.Sprintf("%v", employee.IsFirstLogin))

	return m.paseto.Encrypt(m.symmetricKey, token, "")
}

func (m *Maker) ValidateToken(tokenString string) (*Claims, error) {
	var token paseto.JSONToken
	var footer string

	err := m.paseto.Decrypt(tokenString, m.symmetricKey, &token, &footer)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt paseto token: %w", err)
	}

	if err := token.Validate(); err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	claims := &Claims{
		EmployeeID:   token.Get("employee_id"),
		Email:        token.Get("email"),
		Role:         token.Get("role"),
		IsFirstLogin: token.Get("is_first_login") == "true",
	}

	if claims.EmployeeID == "" {
		return nil, fmt.Errorf("token tidak memuat employee_id")
	}

	return claims, nil
}
