package model

import "time"

// AuditDetails records who created and last modified a record, and when.
// Embedded by every persisted entity.
type AuditDetails struct {
	CreatedBy      string    `json:"created_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	LastModifiedBy string    `json:"last_modified_by,omitempty"`
	LastModifiedAt time.Time `json:"last_modified_at"`
}

// NewAudit returns audit details for a freshly created record.
func NewAudit(userID string, now time.Time) AuditDetails {
	return AuditDetails{
		CreatedBy:      userID,
		CreatedAt:      now,
		LastModifiedBy: userID,
		LastModifiedAt: now,
	}
}

// Touch updates the modification half of the audit details.
func (a *AuditDetails) Touch(userID string, now time.Time) {
	a.LastModifiedBy = userID
	a.LastModifiedAt = now
}
