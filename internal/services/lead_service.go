package services

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/estateflow/estateflow-backend/internal/dto"
	"github.com/estateflow/estateflow-backend/internal/models"
	"github.com/estateflow/estateflow-backend/internal/plan"
	"github.com/estateflow/estateflow-backend/internal/schedule"
	"github.com/estateflow/estateflow-backend/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrLeadNotFound  = errors.New("lead not found")
	ErrQuotaExceeded = errors.New("free plan lead limit reached")
)

// LeadService owns the tenant-scoped lead collections: CRUD, status
// transitions and follow-up completion. Quota enforcement lives here, not in
// the caller, so no client can insert past its plan limit.
type LeadService struct {
	db *gorm.DB
}

func NewLeadService(db *gorm.DB) *LeadService {
	return &LeadService{db: db}
}

// List returns the owner's leads, newest first.
func (s *LeadService) List(ownerID uuid.UUID) ([]models.Lead, error) {
	var leads []models.Lead
	err := s.db.Scopes(tenant.ForOwner(ownerID)).
		Order("created_at DESC").
		Find(&leads).Error
	return leads, err
}

func (s *LeadService) Get(ownerID, id uuid.UUID) (*models.Lead, error) {
	var lead models.Lead
	err := s.db.Scopes(tenant.ForOwner(ownerID)).First(&lead, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (s *LeadService) Create(ownerID uuid.UUID, req *dto.CreateLeadRequest) (*models.Lead, error) {
	if req.FullName == "" {
		return nil, errors.New("full name is required")
	}
	if !slices.Contains(models.LeadPurposes, req.Purpose) {
		return nil, fmt.Errorf("invalid purpose %q", req.Purpose)
	}
	if !slices.Contains(models.LeadSources, req.Source) {
		return nil, fmt.Errorf("invalid source %q", req.Source)
	}

	status := req.Status
	if status == "" {
		status = models.StatusNew
	}
	if !slices.Contains(models.LeadStatuses, status) {
		return nil, fmt.Errorf("invalid status %q", status)
	}

	recurrence := req.Recurrence
	if recurrence == "" {
		recurrence = string(schedule.None)
	}
	if !schedule.Valid(schedule.Recurrence(recurrence)) {
		return nil, fmt.Errorf("invalid recurrence %q", recurrence)
	}

	var followUp *time.Time
	if req.NextFollowUpDate != "" {
		t, err := schedule.ParseTime(req.NextFollowUpDate)
		if err != nil {
			return nil, err
		}
		followUp = &t
	}

	interval := req.RecurrenceInterval
	if interval < 1 {
		interval = 1
	}

	var owner models.User
	if err := s.db.First(&owner, "id = ?", ownerID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	var count int64
	if err := s.db.Model(&models.Lead{}).Scopes(tenant.ForOwner(ownerID)).Count(&count).Error; err != nil {
		return nil, err
	}
	if !plan.CanAdmit(plan.Plan(owner.Plan), count) {
		return nil, ErrQuotaExceeded
	}

	lead := models.Lead{
		ID:                 uuid.New(),
		OwnerID:            ownerID,
		FullName:           req.FullName,
		Phone:              req.Phone,
		Budget:             req.Budget,
		Area:               req.Area,
		Purpose:            req.Purpose,
		Source:             req.Source,
		Status:             status,
		Notes:              req.Notes,
		NextFollowUpDate:   followUp,
		Recurrence:         recurrence,
		RecurrenceInterval: interval,
	}
	applyTerminalStatus(&lead)

	if err := s.db.Create(&lead).Error; err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}
	return &lead, nil
}

// Update merges the present fields into the lead. A missing id is a
// NotFound failure, not a silent no-op.
func (s *LeadService) Update(ownerID, id uuid.UUID, req *dto.UpdateLeadRequest) (*models.Lead, error) {
	lead, err := s.Get(ownerID, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		lead.FullName = *req.FullName
	}
	if req.Phone != nil {
		lead.Phone = *req.Phone
	}
	if req.Budget != nil {
		lead.Budget = *req.Budget
	}
	if req.Area != nil {
		lead.Area = *req.Area
	}
	if req.Notes != nil {
		lead.Notes = *req.Notes
	}
	if req.Purpose != nil {
		if !slices.Contains(models.LeadPurposes, *req.Purpose) {
			return nil, fmt.Errorf("invalid purpose %q", *req.Purpose)
		}
		lead.Purpose = *req.Purpose
	}
	if req.Source != nil {
		if !slices.Contains(models.LeadSources, *req.Source) {
			return nil, fmt.Errorf("invalid source %q", *req.Source)
		}
		lead.Source = *req.Source
	}
	if req.Status != nil {
		if !slices.Contains(models.LeadStatuses, *req.Status) {
			return nil, fmt.Errorf("invalid status %q", *req.Status)
		}
		lead.Status = *req.Status
	}
	if req.Recurrence != nil {
		if !schedule.Valid(schedule.Recurrence(*req.Recurrence)) {
			return nil, fmt.Errorf("invalid recurrence %q", *req.Recurrence)
		}
		lead.Recurrence = *req.Recurrence
	}
	if req.RecurrenceInterval != nil {
		interval := *req.RecurrenceInterval
		if interval < 1 {
			interval = 1
		}
		lead.RecurrenceInterval = interval
	}
	if req.NextFollowUpDate != nil {
		if *req.NextFollowUpDate == "" {
			lead.NextFollowUpDate = nil
		} else {
			t, err := schedule.ParseTime(*req.NextFollowUpDate)
			if err != nil {
				return nil, err
			}
			lead.NextFollowUpDate = &t
		}
	}

	applyTerminalStatus(lead)

	if err := s.db.Save(lead).Error; err != nil {
		return nil, fmt.Errorf("failed to update lead: %w", err)
	}
	return lead, nil
}

func (s *LeadService) SetStatus(ownerID, id uuid.UUID, status string) (*models.Lead, error) {
	if !slices.Contains(models.LeadStatuses, status) {
		return nil, fmt.Errorf("invalid status %q", status)
	}

	lead, err := s.Get(ownerID, id)
	if err != nil {
		return nil, err
	}

	lead.Status = status
	applyTerminalStatus(lead)

	if err := s.db.Save(lead).Error; err != nil {
		return nil, fmt.Errorf("failed to update lead status: %w", err)
	}
	return lead, nil
}

// CompleteFollowUp advances a recurring lead's follow-up one hop: the next
// occurrence is computed from the current follow-up date (or now, if none is
// set) and written back; status is untouched. For a non-recurring lead
// nothing is mutated and the second return value is false, handing the next
// step to the client's edit flow.
func (s *LeadService) CompleteFollowUp(ownerID, id uuid.UUID) (*models.Lead, bool, error) {
	lead, err := s.Get(ownerID, id)
	if err != nil {
		return nil, false, err
	}

	base := time.Now()
	if lead.NextFollowUpDate != nil {
		base = *lead.NextFollowUpDate
	}

	next, ok := schedule.NextOccurrence(base, schedule.Recurrence(lead.Recurrence), lead.RecurrenceInterval)
	if !ok {
		return lead, false, nil
	}

	lead.NextFollowUpDate = &next
	if err := s.db.Save(lead).Error; err != nil {
		return nil, false, fmt.Errorf("failed to reschedule follow-up: %w", err)
	}
	return lead, true, nil
}

// Delete removes a lead irreversibly; there is no tombstone.
func (s *LeadService) Delete(ownerID, id uuid.UUID) error {
	result := s.db.Scopes(tenant.ForOwner(ownerID)).Delete(&models.Lead{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLeadNotFound
	}
	return nil
}

// Quota reports the advisory plan-admission state for the owner.
func (s *LeadService) Quota(ownerID uuid.UUID) (*dto.QuotaResponse, error) {
	var owner models.User
	if err := s.db.First(&owner, "id = ?", ownerID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	var count int64
	if err := s.db.Model(&models.Lead{}).Scopes(tenant.ForOwner(ownerID)).Count(&count).Error; err != nil {
		return nil, err
	}

	return &dto.QuotaResponse{
		Plan:   owner.Plan,
		Count:  count,
		Limit:  plan.FreeLeadLimit,
		CanAdd: plan.CanAdmit(plan.Plan(owner.Plan), count),
	}, nil
}

// Stats classifies the owner's pipeline against the wall clock at call time.
func (s *LeadService) Stats(ownerID uuid.UUID) (*dto.LeadStats, error) {
	leads, err := s.List(ownerID)
	if err != nil {
		return nil, err
	}

	stats := &dto.LeadStats{
		Total:    int64(len(leads)),
		ByStatus: make(map[string]int64, len(models.LeadStatuses)),
	}
	for _, lead := range leads {
		stats.ByStatus[lead.Status]++
		if lead.NextFollowUpDate == nil {
			continue
		}
		switch {
		case schedule.IsOverdue(*lead.NextFollowUpDate):
			stats.Overdue++
		case schedule.IsDueToday(*lead.NextFollowUpDate):
			stats.DueToday++
		}
	}
	return stats, nil
}

// applyTerminalStatus keeps the terminal-state invariant: a closed deal has
// no scheduled follow-up and no recurrence, whatever was set before.
func applyTerminalStatus(lead *models.Lead) {
	if lead.Status == models.StatusDealClosed {
		lead.NextFollowUpDate = nil
		lead.Recurrence = string(schedule.None)
	}
}
