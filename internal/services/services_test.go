package services

import (
	"os"
	"testing"
	"time"

	"github.com/estateflow/estateflow-backend/internal/config"
	"github.com/estateflow/estateflow-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database-backed tests run against TEST_DATABASE_DSN and are skipped when it
// is not set, e.g.
//
//	TEST_DATABASE_DSN="host=localhost user=postgres dbname=estateflow_test sslmode=disable" go test ./...
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set; skipping database-backed test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Lead{},
		&models.SystemLog{},
	))

	require.NoError(t, db.Exec("DELETE FROM refresh_tokens").Error)
	require.NoError(t, db.Exec("DELETE FROM leads").Error)
	require.NoError(t, db.Exec("DELETE FROM users").Error)

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
		MasterEmail:      "Admin123!@gmail.com",
		MasterPassword:   "Admin123!",
		MasterPIN:        "8888",
		CheckoutDelay:    10 * time.Millisecond,
	}
}

func createTestUser(t *testing.T, db *gorm.DB, email, userPlan string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hash),
		Plan:     userPlan,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
