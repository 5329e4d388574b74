package models

import "time"

// MediaType enum values
const (
	MediaImage = "image"
	MediaVideo = "video"
)

// Material is a teaching material whose bytes live in the teacher bucket.
type Material struct {
	ID             uint           `gorm:"primaryKey" json:"material_id"`
	Title          string         `gorm:"type:varchar(255);not null" json:"title"`
	MediaType      string         `gorm:"type:varchar(16);not null" json:"media_type"` // image, video
	Filename       string         `gorm:"type:varchar(255);not null" json:"filename"`
	Description    string         `gorm:"type:text" json:"description"`
	AuthorID       uint           `gorm:"not null;index" json:"author_id"`
	ApprovalStatus ApprovalStatus `gorm:"type:varchar(16);not null;default:'PENDING';index" json:"approval_status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (Material) TableName() string {
	return "materials"
}

func (m *Material) ContentKind() ContentKind      { return KindMaterial }
func (m *Material) ContentID() uint               { return m.ID }
func (m *Material) ContentTitle() string          { return m.Title }
func (m *Material) AuthorOf() uint                { return m.AuthorID }
func (m *Material) CurrentStatus() ApprovalStatus { return m.ApprovalStatus }
func (m *Material) setStatus(s ApprovalStatus, at time.Time) {
	m.ApprovalStatus = s
	m.UpdatedAt = at
}
