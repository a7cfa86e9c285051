package services

import (
	"github.com/estateflow/estateflow-backend/internal/dto"
	"github.com/estateflow/estateflow-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DirectoryService is the master admin's read view over the whole tenant
// registry. The only cross-tenant mutation (plan toggling) lives in
// BillingService.
type DirectoryService struct {
	db *gorm.DB
}

func NewDirectoryService(db *gorm.DB) *DirectoryService {
	return &DirectoryService{db: db}
}

// ListTenants returns every registry entry, minus secrets, with lead counts.
func (s *DirectoryService) ListTenants() ([]dto.TenantResponse, error) {
	var users []models.User
	if err := s.db.Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}

	counts, err := s.leadCounts()
	if err != nil {
		return nil, err
	}

	tenants := make([]dto.TenantResponse, 0, len(users))
	for _, u := range users {
		tenants = append(tenants, dto.TenantResponse{
			ID:        u.ID,
			Email:     u.Email,
			Plan:      u.Plan,
			IsAdmin:   u.IsAdmin,
			LeadCount: counts[u.ID],
			CreatedAt: u.CreatedAt,
		})
	}
	return tenants, nil
}

func (s *DirectoryService) leadCounts() (map[uuid.UUID]int64, error) {
	type ownerCount struct {
		OwnerID uuid.UUID
		Count   int64
	}
	var rows []ownerCount
	err := s.db.Model(&models.Lead{}).
		Select("owner_id, COUNT(*) AS count").
		Group("owner_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		counts[r.OwnerID] = r.Count
	}
	return counts, nil
}
