package models

import (
	"time"

	"gorm.io/datatypes"
)

// StudentExerciseResult is the single graded submission of a student for an exercise.
type StudentExerciseResult struct {
	ID             uint      `gorm:"primaryKey" json:"result_id"`
	StudentID      uint      `gorm:"not null;uniqueIndex:uq_result_student_exercise,priority:1" json:"student_id"`
	ExerciseID     uint      `gorm:"not null;uniqueIndex:uq_result_student_exercise,priority:2;index" json:"exercise_id"`
	Score          float64   `gorm:"not null" json:"score"`
	CompletionDate time.Time `json:"completion_date"`
}

func (StudentExerciseResult) TableName() string {
	return "student_exercise_results"
}

// StudentAnswer keeps the selected options of one question with its precomputed correctness.
type StudentAnswer struct {
	ID             uint                        `gorm:"primaryKey" json:"answer_id"`
	ResultID       uint                        `gorm:"not null;uniqueIndex:uq_answer_result_question,priority:1" json:"result_id"`
	QuestionID     uint                        `gorm:"not null;uniqueIndex:uq_answer_result_question,priority:2" json:"question_id"`
	SelectedOption datatypes.JSONSlice[string] `json:"selected_option"`
	IsCorrect      bool                        `gorm:"not null;default:false" json:"is_correct"`
}

func (StudentAnswer) TableName() string {
	return "student_answers"
}
