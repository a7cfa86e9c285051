package dto

import "github.com/estateflow/estateflow-backend/internal/models"

type CreateLeadRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Budget   string `json:"budget"`
	Area     string `json:"area"`
	Purpose  string `json:"purpose"`
	Source   string `json:"source"`
	Status   string `json:"status"`
	Notes    string `json:"notes"`
	// RFC 3339, empty means no follow-up scheduled
	NextFollowUpDate   string `json:"next_follow_up_date"`
	Recurrence         string `json:"recurrence"`
	RecurrenceInterval int    `json:"recurrence_interval"`
}

// UpdateLeadRequest merges only the fields that are present. For
// NextFollowUpDate, an empty string clears the scheduled follow-up.
type UpdateLeadRequest struct {
	FullName           *string `json:"full_name"`
	Phone              *string `json:"phone"`
	Budget             *string `json:"budget"`
	Area               *string `json:"area"`
	Purpose            *string `json:"purpose"`
	Source             *string `json:"source"`
	Status             *string `json:"status"`
	Notes              *string `json:"notes"`
	NextFollowUpDate   *string `json:"next_follow_up_date"`
	Recurrence         *string `json:"recurrence"`
	RecurrenceInterval *int    `json:"recurrence_interval"`
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

type CompleteFollowUpResponse struct {
	Lead models.Lead `json:"lead"`
	// Rescheduled is false when the lead has no recurrence; the client is
	// expected to open the edit flow instead of assuming a new date.
	Rescheduled bool `json:"rescheduled"`
}

// LeadStats mirrors the pipeline dashboard: totals plus the two scheduling
// buckets, classified against "now" at request time.
type LeadStats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
	DueToday int64            `json:"due_today"`
	Overdue  int64            `json:"overdue"`
}

// QuotaResponse is the advisory plan-admission check the client consults
// before offering the "add lead" action. Create enforces the same rule.
type QuotaResponse struct {
	Plan   string `json:"plan"`
	Count  int64  `json:"count"`
	Limit  int    `json:"limit"`
	CanAdd bool   `json:"can_add"`
}

type ContactLinksResponse struct {
	Dial     string `json:"dial"`
	WhatsApp string `json:"whatsapp"`
}
