package dto

import (
	"time"

	"github.com/google/uuid"
)

// TenantResponse is a registry entry as seen from the admin directory.
type TenantResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Plan      string    `json:"plan"`
	IsAdmin   bool      `json:"is_admin"`
	LeadCount int64     `json:"lead_count"`
	CreatedAt time.Time `json:"created_at"`
}

type SetPlanRequest struct {
	Plan string `json:"plan"`
}
