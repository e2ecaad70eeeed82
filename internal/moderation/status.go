// Package moderation holds the blog review lifecycle and the access rules
// that decide who may drive it.
package moderation

import (
	"errors"
	"fmt"
)

var (
	// ErrForbidden is returned when the actor is not allowed to perform an operation.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidTransition is returned when the blog is not in a state that accepts the event.
	// It wraps ErrForbidden so callers can treat both the same way.
	ErrInvalidTransition = fmt.Errorf("%w: invalid status transition", ErrForbidden)
)

// Status is the moderation state of a blog.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func (s Status) String() string { return string(s) }

// ParseStatus converts a raw string into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("unknown blog status %q", raw)
	}
	return s, nil
}

// Decision is the outcome an admin picks when reviewing a pending blog.
type Decision string

const (
	DecisionApprove Decision = Decision(StatusApproved)
	DecisionReject  Decision = Decision(StatusRejected)
)

// ParseDecision accepts only the two terminal review outcomes.
func ParseDecision(raw string) (Decision, error) {
	switch d := Decision(raw); d {
	case DecisionApprove, DecisionReject:
		return d, nil
	}
	return "", fmt.Errorf("review status must be %q or %q", StatusApproved, StatusRejected)
}

// Submit moves a draft into the review queue.
func Submit(current Status) (Status, error) {
	if current != StatusDraft {
		return current, fmt.Errorf("%w: only draft blogs can be submitted for review (status is %s)", ErrInvalidTransition, current)
	}
	return StatusPending, nil
}

// Review resolves a pending blog. Reviewing anything other than a pending
// blog is rejected so a published post cannot be silently pulled back.
func Review(current Status, decision Decision) (Status, error) {
	if current != StatusPending {
		return current, fmt.Errorf("%w: only pending blogs can be reviewed (status is %s)", ErrInvalidTransition, current)
	}
	switch decision {
	case DecisionApprove:
		return StatusApproved, nil
	case DecisionReject:
		return StatusRejected, nil
	}
	return current, fmt.Errorf("%w: unknown review decision %q", ErrInvalidTransition, decision)
}

// AfterEdit returns the status a blog lands in after its content was edited.
// A rejected blog edited by a non-admin goes back to draft and has to be
// resubmitted; every other edit keeps the status.
func AfterEdit(current Status, editor Role) Status {
	if current == StatusRejected && !editor.IsAdmin() {
		return StatusDraft
	}
	return current
}

// Publishes reports whether entering next stamps publishedAt.
func Publishes(next Status) bool {
	return next == StatusApproved
}

// CountsViews reports whether a read of a blog in status s bumps its view counter.
func CountsViews(s Status) bool {
	return s == StatusApproved
}
