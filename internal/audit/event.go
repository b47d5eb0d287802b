package audit

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Action names a status mutation performed by an admin.
type Action string

// Audited actions.
const (
	ActionDocumentApprove Action = "document.approve"
	ActionDocumentReject  Action = "document.reject"
	ActionUserActivate    Action = "user.activate"
	ActionUserDeactivate  Action = "user.deactivate"
	ActionProfileUpdate   Action = "profile.update"
	ActionPasswordChange  Action = "password.change"
)

// Event records one confirmed admin mutation.
type Event struct {
	ID       string    `json:"id"`
	ActorID  int64     `json:"actor_id"`
	Actor    string    `json:"actor"`
	Action   Action    `json:"action"`
	Resource string    `json:"resource"`
	TargetID string    `json:"target_id"`
	Detail   string    `json:"detail,omitempty"`
	At       time.Time `json:"at"`
}

// NewEvent stamps a fresh id and time on an event.
func NewEvent(actorID int64, actor string, action Action, resource, targetID, detail string, at time.Time) Event {
	return Event{
		ID:       uuid.NewString(),
		ActorID:  actorID,
		Actor:    actor,
		Action:   action,
		Resource: resource,
		TargetID: targetID,
		Detail:   detail,
		At:       at.UTC(),
	}
}

// Valid reports whether the event carries the fields the log needs.
func (e Event) Valid() bool {
	return strings.TrimSpace(e.ID) != "" &&
		strings.TrimSpace(string(e.Action)) != "" &&
		strings.TrimSpace(e.TargetID) != ""
}
