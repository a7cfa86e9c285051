package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/estateflow/estateflow-backend/internal/config"
	"github.com/estateflow/estateflow-backend/internal/dto"
	"github.com/estateflow/estateflow-backend/internal/models"
	"github.com/estateflow/estateflow-backend/internal/plan"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPinRequired        = errors.New("security PIN required for admin access")
	ErrInvalidPin         = errors.New("invalid security PIN")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService is the identity and session manager: tenant registry, login
// with the master-admin PIN sub-protocol, and refresh-token sessions.
type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

func (s *AuthService) SignUp(email, password string) (*dto.AuthResponse, error) {
	email = strings.TrimSpace(email)
	if len(email) == 0 || len(password) < 8 {
		return nil, errors.New("email required and password must be at least 8 characters")
	}

	var existing models.User
	if err := s.db.Where("LOWER(email) = LOWER(?)", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hash),
		Plan:     string(plan.Free),
	}

	// Signing up with the full master credentials yields the admin identity.
	if s.isMasterEmail(email) && password == s.cfg.MasterPassword {
		user.IsAdmin = true
		user.Plan = string(plan.Pro)
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.generateTokenPair(&user)
}

// LogIn authenticates a tenant. The master-admin email takes the PIN path:
// correct password without a PIN yields ErrPinRequired (a signal, not a
// rejection); a full match upserts the master row and force-reasserts its
// admin flag and PRO plan.
func (s *AuthService) LogIn(email, password, pin string) (*dto.AuthResponse, error) {
	email = strings.TrimSpace(email)

	if s.isMasterEmail(email) {
		if password != s.cfg.MasterPassword {
			return nil, ErrInvalidCredentials
		}
		if pin == "" {
			return nil, ErrPinRequired
		}
		if pin != s.cfg.MasterPIN {
			return nil, ErrInvalidPin
		}

		user, err := s.ensureMaster()
		if err != nil {
			return nil, err
		}
		return s.generateTokenPair(user)
	}

	var user models.User
	if err := s.db.Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Refresh(refreshToken string) (*dto.AuthResponse, error) {
	tokenHash := hashToken(refreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	s.db.Model(&stored).Update("revoked", true)

	var user models.User
	if err := s.db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	return s.generateTokenPair(&user)
}

// LogOut revokes the refresh token; revoking an unknown token is a no-op.
func (s *AuthService) LogOut(refreshToken string) error {
	tokenHash := hashToken(refreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

// Me returns the live session projection of a tenant: the registry entry
// minus the secret. Plan is always read fresh from the registry so admin
// plan changes show up without a re-login.
func (s *AuthService) Me(userID uuid.UUID) (*dto.UserResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return projectUser(&user), nil
}

func (s *AuthService) isMasterEmail(email string) bool {
	return strings.EqualFold(email, s.cfg.MasterEmail)
}

// ensureMaster inserts the master identity on first PIN login, or reasserts
// is_admin and PRO on an existing row. Self-healing against registry
// tampering.
func (s *AuthService) ensureMaster() (*models.User, error) {
	var user models.User
	err := s.db.Where("LOWER(email) = LOWER(?)", s.cfg.MasterEmail).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(s.cfg.MasterPassword), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, fmt.Errorf("failed to hash master password: %w", hashErr)
		}
		user = models.User{
			ID:       uuid.New(),
			Email:    s.cfg.MasterEmail,
			Password: string(hash),
			Plan:     string(plan.Pro),
			IsAdmin:  true,
		}
		if createErr := s.db.Create(&user).Error; createErr != nil {
			return nil, fmt.Errorf("failed to create master account: %w", createErr)
		}
		slog.Info("master admin account created", "user_id", user.ID.String())
		return &user, nil
	}
	if err != nil {
		return nil, err
	}

	if !user.IsAdmin || user.Plan != string(plan.Pro) {
		if err := s.db.Model(&user).Updates(map[string]interface{}{
			"is_admin": true,
			"plan":     string(plan.Pro),
		}).Error; err != nil {
			return nil, err
		}
		user.IsAdmin = true
		user.Plan = string(plan.Pro)
	}
	return &user, nil
}

func (s *AuthService) generateTokenPair(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         *projectUser(user),
	}, nil
}

// The access token carries identity only. Plan is deliberately absent: it is
// read from the registry on every request so a plan toggle lands immediately.
func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"email":    user.Email,
		"is_admin": user.IsAdmin,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func projectUser(user *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Plan:      user.Plan,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
	}
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
