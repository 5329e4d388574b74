package models

import (
	"time"

	"gorm.io/datatypes"
)

// Difficulty enum values
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// MaxQuestionCount is the largest question_count an exercise may declare.
const MaxQuestionCount = 10

type Exercise struct {
	ID             uint           `gorm:"primaryKey" json:"exercise_id"`
	Title          string         `gorm:"type:varchar(255);not null" json:"title"`
	Difficulty     string         `gorm:"type:varchar(16);not null" json:"difficulty"`
	QuestionCount  int            `gorm:"not null" json:"question_count"`
	AuthorID       uint           `gorm:"not null;index" json:"author_id"`
	ApprovalStatus ApprovalStatus `gorm:"type:varchar(16);not null;default:'PENDING';index" json:"approval_status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (Exercise) TableName() string {
	return "exercises"
}

func (e *Exercise) ContentKind() ContentKind      { return KindExercise }
func (e *Exercise) ContentID() uint               { return e.ID }
func (e *Exercise) ContentTitle() string          { return e.Title }
func (e *Exercise) AuthorOf() uint                { return e.AuthorID }
func (e *Exercise) CurrentStatus() ApprovalStatus { return e.ApprovalStatus }
func (e *Exercise) setStatus(s ApprovalStatus, at time.Time) {
	e.ApprovalStatus = s
	e.UpdatedAt = at
}

// Question belongs to exactly one exercise. Options and answer keys are
// ordered lists stored as JSON.
type Question struct {
	ID           uint                        `gorm:"primaryKey" json:"question_id"`
	ExerciseID   uint                        `gorm:"not null;index" json:"exercise_id"`
	QuestionText string                      `gorm:"type:text;not null" json:"question_text"`
	OptionText   datatypes.JSONSlice[string] `json:"option_text"`
	AnswerKeys   datatypes.JSONSlice[string] `json:"answer_keys"`
}

func (Question) TableName() string {
	return "questions"
}
