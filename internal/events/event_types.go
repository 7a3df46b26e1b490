package events

import (
	"time"

	"github.com/Ru28/complaint-management-system/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventComplaintRaised   EventType = "complaint_raised"
	EventComplaintResolved EventType = "complaint_resolved"
	EventUserRoleChanged   EventType = "user_role_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ComplaintRaisedPayload payload.
type ComplaintRaisedPayload struct {
	ComplaintID string `json:"complaint_id"`
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
}

// ComplaintResolvedPayload payload.
type ComplaintResolvedPayload struct {
	ComplaintID  string `json:"complaint_id"`
	ResolutionID string `json:"resolution_id"`
	Response     string `json:"response"`
}

// UserRoleChangedPayload payload.
type UserRoleChangedPayload struct {
	UserID  string      `json:"user_id"`
	NewRole domain.Role `json:"new_role"`
}
