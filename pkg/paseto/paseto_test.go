package paseto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Sistem-Absensi-Karyawan/models"
)

func testSecret() string {
	return base64.URLEncoding.EncodeToString([]byte("01234567890123456789012345678901"))
}

func TestNewMakerRejectsBadSecret(t *testing.T) {
	_, err := NewMaker("bukan base64 !!!")
	assert.Error(t, err)

	short := base64.URLEncoding.EncodeToString([]byte("terlalu-pendek"))
	_, err = NewMaker(short)
	assert.Error(t, err)
}

func TestGenerateAndValidateToken(t *testing.T) {
	maker, err := NewMaker(testSecret())
	require.NoError(t, err)

	employee := &models.Employee{
		EmployeeID:   "EMP-2024-001",
		Email:        "budi.santoso@gmail.com",
		Role:         "karyawan",
		IsFirstLogin: true,
	}

	token, err := maker.GenerateToken(employee)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "EMP-2024-001", claims.EmployeeID)
	assert.Equal(t, "budi.santoso@gmail.com", claims.Email)
	assert.Equal(t, "karyawan", claims.Role)
	assert.True(t, claims.IsFirstLogin)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	maker, err := NewMaker(testSecret())
	require.NoError(t, err)

	_, err = maker.ValidateToken("v2.local.token-palsu")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	maker, err := NewMaker(testSecret())
	require.NoError(t, err)

	otherSecret := base64.URLEncoding.EncodeToString([]byte("10987654321098765432109876543210"))
	otherMaker, err := NewMaker(otherSecret)
	require.NoError(t, err)

	token, err := maker.GenerateToken(&models.Employee{EmployeeID: "EMP-001", Role: "karyawan"})
	require.NoError(t, err)

	_, err = otherMaker.ValidateToken(token)
	assert.Error(t, err)
}
