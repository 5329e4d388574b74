package models

import "time"

// ReactionArticle is an illustrated article whose image lives in the article bucket.
type ReactionArticle struct {
	ID             uint           `gorm:"primaryKey" json:"article_id"`
	Title          string         `gorm:"type:varchar(255);not null" json:"title"`
	Filename       string         `gorm:"type:varchar(255);not null" json:"filename"`
	Description    string         `gorm:"type:text" json:"description"`
	AuthorID       uint           `gorm:"not null;index" json:"author_id"`
	ApprovalStatus ApprovalStatus `gorm:"type:varchar(16);not null;default:'PENDING';index" json:"approval_status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (ReactionArticle) TableName() string {
	return "reaction_articles"
}

func (a *ReactionArticle) ContentKind() ContentKind      { return KindArticle }
func (a *ReactionArticle) ContentID() uint               { return a.ID }
func (a *ReactionArticle) ContentTitle() string          { return a.Title }
func (a *ReactionArticle) AuthorOf() uint                { return a.AuthorID }
func (a *ReactionArticle) CurrentStatus() ApprovalStatus { return a.ApprovalStatus }
func (a *ReactionArticle) setStatus(s ApprovalStatus, at time.Time) {
	a.ApprovalStatus = s
	a.UpdatedAt = at
}
