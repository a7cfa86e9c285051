package services

import (
	"testing"

	"github.com/estateflow/estateflow-backend/internal/models"
	"github.com/estateflow/estateflow-backend/internal/plan"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignUpAndLogin(t *testing.T) {
	db := testDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.SignUp("agent@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "agent@example.com", resp.User.Email)
	assert.Equal(t, string(plan.Free), resp.User.Plan)
	assert.False(t, resp.User.IsAdmin)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	// Passwords are stored hashed, never verbatim.
	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", resp.User.ID).Error)
	assert.NotEqual(t, "password123", stored.Password)

	login, err := svc.LogIn("agent@example.com", "password123", "")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	_, err = svc.LogIn("agent@example.com", "wrong-password", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignUpDuplicateEmailCaseInsensitive(t *testing.T) {
	db := testDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.SignUp("Agent@Example.com", "password123")
	require.NoError(t, err)

	_, err = svc.SignUp("agent@example.COM", "otherpassword")
	assert.ErrorIs(t, err, ErrEmailTaken)

	// The registry is unchanged by the rejected attempt.
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestMasterLoginPinProtocol(t *testing.T) {
	db := testDB(t)
	cfg := testConfig()
	svc := NewAuthService(db, cfg)

	_, err := svc.LogIn(cfg.MasterEmail, "wrong-password", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Correct password without a PIN: second factor signal, no session yet.
	_, err = svc.LogIn(cfg.MasterEmail, cfg.MasterPassword, "")
	assert.ErrorIs(t, err, ErrPinRequired)

	var sessions int64
	require.NoError(t, db.Model(&models.RefreshToken{}).Count(&sessions).Error)
	assert.EqualValues(t, 0, sessions)

	_, err = svc.LogIn(cfg.MasterEmail, cfg.MasterPassword, "0000")
	assert.ErrorIs(t, err, ErrInvalidPin)

	resp, err := svc.LogIn(cfg.MasterEmail, cfg.MasterPassword, cfg.MasterPIN)
	require.NoError(t, err)
	assert.True(t, resp.User.IsAdmin)
	assert.Equal(t, string(plan.Pro), resp.User.Plan)
}

func TestMasterLoginReassertsAdminFlags(t *testing.T) {
	db := testDB(t)
	cfg := testConfig()
	svc := NewAuthService(db, cfg)

	_, err := svc.LogIn(cfg.MasterEmail, cfg.MasterPassword, cfg.MasterPIN)
	require.NoError(t, err)

	// Tamper with the registry row, then log in again.
	require.NoError(t, db.Model(&models.User{}).
		Where("LOWER(email) = LOWER(?)", cfg.MasterEmail).
		Updates(map[string]interface{}{"is_admin": false, "plan": string(plan.Free)}).Error)

	resp, err := svc.LogIn(cfg.MasterEmail, cfg.MasterPassword, cfg.MasterPIN)
	require.NoError(t, err)
	assert.True(t, resp.User.IsAdmin)
	assert.Equal(t, string(plan.Pro), resp.User.Plan)
}

func TestAccessTokenClaims(t *testing.T) {
	db := testDB(t)
	cfg := testConfig()
	svc := NewAuthService(db, cfg)

	resp, err := svc.SignUp("claims@example.com", "password123")
	require.NoError(t, err)

	token, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, resp.User.ID.String(), claims["sub"])
	assert.Equal(t, "claims@example.com", claims["email"])
	assert.Equal(t, false, claims["is_admin"])

	// Plan is deliberately not a claim: it is read from the registry.
	_, hasPlan := claims["plan"]
	assert.False(t, hasPlan)
}

func TestRefreshRotatesToken(t *testing.T) {
	db := testDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.SignUp("rotate@example.com", "password123")
	require.NoError(t, err)

	rotated, err := svc.Refresh(resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, rotated.RefreshToken)

	// The old token is revoked after rotation.
	_, err = svc.Refresh(resp.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogOutIsIdempotent(t *testing.T) {
	db := testDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.SignUp("bye@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, svc.LogOut(resp.RefreshToken))
	require.NoError(t, svc.LogOut(resp.RefreshToken))
	require.NoError(t, svc.LogOut("never-issued"))

	_, err = svc.Refresh(resp.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
