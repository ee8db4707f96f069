package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/lrms/workforce-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered      EventType = "user_registered"
	EventUserLoggedIn        EventType = "user_logged_in"
	EventUserLoginFailed     EventType = "user_login_failed"
	EventUserCreated         EventType = "user_created"
	EventUserRoleChanged     EventType = "user_role_changed"
	EventUserDeleted         EventType = "user_deleted"
	EventUserProfileUpdated  EventType = "user_profile_updated"
	EventUserPasswordChanged EventType = "user_password_changed"
)

// AllEventTypes lists every user lifecycle event.
func AllEventTypes() []EventType {
	return []EventType{
		EventUserRegistered,
		EventUserLoggedIn,
		EventUserLoginFailed,
		EventUserCreated,
		EventUserRoleChanged,
		EventUserDeleted,
		EventUserProfileUpdated,
		EventUserPasswordChanged,
	}
}

// Actor identifies who triggered an event. A zero ID means anonymous.
type Actor struct {
	UserID int64       `json:"user_id,omitempty"`
	Email  string      `json:"email,omitempty"`
	Role   domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	SubjectID int64     `json:"subject_id,omitempty"`
	Actor     Actor     `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// New stamps an event with an id and the current time.
func New(eventType EventType, subjectID int64, actor Actor, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// RoleChangedPayload payload.
type RoleChangedPayload struct {
	OldRole domain.Role `json:"old_role"`
	NewRole domain.Role `json:"new_role"`
}

// UserPayload carries the affected account.
type UserPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role,omitempty"`
}
