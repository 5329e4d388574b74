package models

import "time"

// ReviewAction enum values
const (
	ActionSubmitted = "SUBMITTED"
	ActionDrafted   = "DRAFTED"
	ActionApproved  = "APPROVED"
	ActionRejected  = "REJECTED"
)

// ReviewHistory is the audit log of approval transitions.
type ReviewHistory struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ContentKind ContentKind    `gorm:"type:varchar(16);not null;index:idx_review_content,priority:1" json:"content_kind"`
	ContentID   uint           `gorm:"not null;index:idx_review_content,priority:2" json:"content_id"`
	Action      string         `gorm:"type:varchar(16);not null" json:"action"`
	FromStatus  ApprovalStatus `gorm:"type:varchar(16)" json:"from_status"`
	ToStatus    ApprovalStatus `gorm:"type:varchar(16);not null" json:"to_status"`
	ActorID     uint           `json:"actor_id"` // 0 for the reviewer key
	CreatedAt   time.Time      `json:"created_at"`
}

func (ReviewHistory) TableName() string {
	return "review_histories"
}

// ActionFor names the audit action recorded for an event.
func ActionFor(event ApprovalEvent) string {
	switch event {
	case EventApprove:
		return ActionApproved
	case EventReject:
		return ActionRejected
	case EventDraft:
		return ActionDrafted
	default:
		return ActionSubmitted
	}
}
