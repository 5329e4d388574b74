package models

import (
	"time"

	"virtualab/apperror"
)

// ApprovalStatus is the review state of an authored content item.
type ApprovalStatus string

const (
	StatusDraft    ApprovalStatus = "DRAFT"
	StatusPending  ApprovalStatus = "PENDING"
	StatusApproved ApprovalStatus = "APPROVED"
	StatusRejected ApprovalStatus = "REJECTED"
)

func (s ApprovalStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// ApprovalEvent is something that moves a content item through review.
type ApprovalEvent string

const (
	EventEdit    ApprovalEvent = "EDIT"    // author changed content-bearing fields
	EventDraft   ApprovalEvent = "DRAFT"   // author is reworking questions, hide from review
	EventSubmit  ApprovalEvent = "SUBMIT"  // questions added, ready for review
	EventApprove ApprovalEvent = "APPROVE" // reviewer accepted
	EventReject  ApprovalEvent = "REJECT"  // reviewer refused
)

// ContentKind names the three reviewable content types.
type ContentKind string

const (
	KindMaterial ContentKind = "MATERIAL"
	KindExercise ContentKind = "EXERCISE"
	KindArticle  ContentKind = "ARTICLE"
)

// Approvable is implemented by every content row that goes through review.
type Approvable interface {
	ContentKind() ContentKind
	ContentID() uint
	ContentTitle() string
	AuthorOf() uint
	CurrentStatus() ApprovalStatus
	setStatus(status ApprovalStatus, at time.Time)
}

// Transition is the single review state machine shared by materials, exercises
// and articles.
//
//	DRAFT ──edit/submit──▶ PENDING ──approve──▶ APPROVED
//	                          └──────reject───▶ REJECTED
//
// Edits re-open review from any state; decisions are only taken on PENDING items.
func Transition(current ApprovalStatus, event ApprovalEvent) (ApprovalStatus, error) {
	if !current.Valid() {
		return current, apperror.InvalidState("Unknown approval status " + string(current) + "!")
	}

	switch event {
	case EventEdit, EventSubmit:
		return StatusPending, nil
	case EventDraft:
		return StatusDraft, nil
	case EventApprove, EventReject:
		if current != StatusPending {
			return current, apperror.InvalidState("Only pending content can be reviewed, current status is " + string(current) + "!")
		}
		if event == EventApprove {
			return StatusApproved, nil
		}
		return StatusRejected, nil
	default:
		return current, apperror.InvalidState("Unknown approval event " + string(event) + "!")
	}
}

// ApplyTransition moves item through event and stamps its update time.
func ApplyTransition(item Approvable, event ApprovalEvent, at time.Time) error {
	next, err := Transition(item.CurrentStatus(), event)
	if err != nil {
		return err
	}
	item.setStatus(next, at)
	return nil
}

// DecisionEvent maps the status a reviewer asks for onto its event.
func DecisionEvent(status string) (ApprovalEvent, error) {
	switch ApprovalStatus(status) {
	case StatusApproved:
		return EventApprove, nil
	case StatusRejected:
		return EventReject, nil
	default:
		return "", apperror.Validation("Invalid status!")
	}
}
