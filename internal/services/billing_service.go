package services

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/estateflow/estateflow-backend/internal/config"
	"github.com/estateflow/estateflow-backend/internal/dto"
	"github.com/estateflow/estateflow-backend/internal/models"
	"github.com/estateflow/estateflow-backend/internal/plan"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BillingService flips tenant plans. Checkout is a simulation: a fixed
// processing delay followed by the upgrade, no payment processor behind it.
type BillingService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewBillingService(db *gorm.DB, cfg *config.Config) *BillingService {
	return &BillingService{db: db, cfg: cfg}
}

// Checkout upgrades the tenant to PRO after the configured processing delay.
// The upgrade always lands once started, even if the client has already
// dismissed its checkout dialog.
func (s *BillingService) Checkout(userID uuid.UUID) (*dto.UserResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	time.Sleep(s.cfg.CheckoutDelay)

	if err := s.db.Model(&user).Update("plan", string(plan.Pro)).Error; err != nil {
		return nil, fmt.Errorf("failed to upgrade plan: %w", err)
	}
	user.Plan = string(plan.Pro)

	slog.Info("plan upgraded via checkout", "user_id", userID.String())
	return projectUser(&user), nil
}

// SetPlan writes the plan on the registry entry. Sessions read the plan
// fresh from the registry, so the change is visible to the target tenant
// immediately, without a re-login.
func (s *BillingService) SetPlan(userID uuid.UUID, p plan.Plan) (*dto.UserResponse, error) {
	if !plan.Valid(p) {
		return nil, fmt.Errorf("invalid plan %q", p)
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	if err := s.db.Model(&user).Update("plan", string(p)).Error; err != nil {
		return nil, fmt.Errorf("failed to set plan: %w", err)
	}
	user.Plan = string(p)

	return projectUser(&user), nil
}
