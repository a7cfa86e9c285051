package models

import (
	"time"

	"github.com/google/uuid"
)

// Lead pipeline statuses. DealClosed is terminal: reaching it clears the
// follow-up date and recurrence.
const (
	StatusNew        = "New"
	StatusContacted  = "Contacted"
	StatusVisitDone  = "Visit Done"
	StatusDealClosed = "Deal Closed"
	StatusLost       = "Lost"
)

const (
	PurposeBuy  = "Buy"
	PurposeRent = "Rent"
)

var (
	LeadStatuses = []string{StatusNew, StatusContacted, StatusVisitDone, StatusDealClosed, StatusLost}
	LeadSources  = []string{"WhatsApp", "Call", "Instagram", "Referral"}
	LeadPurposes = []string{PurposeBuy, PurposeRent}
)

// Lead is one prospective client interaction, exclusively owned by one
// tenant. ID and CreatedAt are immutable after creation. Leads are
// hard-deleted; there is no tombstone.
type Lead struct {
	ID                 uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerID            uuid.UUID  `gorm:"type:uuid;not null;index" json:"owner_id"`
	FullName           string     `gorm:"size:255;not null" json:"full_name"`
	Phone              string     `gorm:"size:50" json:"phone"`
	Budget             string     `gorm:"size:100" json:"budget"`
	Area               string     `gorm:"size:255" json:"area"`
	Purpose            string     `gorm:"size:20;not null" json:"purpose"`
	Source             string     `gorm:"size:20;not null" json:"source"`
	Status             string     `gorm:"size:20;not null;default:'New'" json:"status"`
	Notes              string     `gorm:"type:text" json:"notes"`
	NextFollowUpDate   *time.Time `gorm:"index" json:"next_follow_up_date"`
	Recurrence         string     `gorm:"size:10;not null;default:'none'" json:"recurrence"`
	RecurrenceInterval int        `gorm:"not null;default:1" json:"recurrence_interval"`
	CreatedAt          time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
