package kafka

import (
	"strings"
	"time"

	"ruru-backoffice/internal/audit"
)

// EventDTO is the wire form of audit.Event on the audit topic.
type EventDTO struct {
	ID       string    `json:"id"`
	ActorID  int64     `json:"actor_id"`
	Actor    string    `json:"actor"`
	Action   string    `json:"action"`
	Resource string    `json:"resource"`
	TargetID string    `json:"target_id"`
	Detail   string    `json:"detail,omitempty"`
	At       time.Time `json:"at"`
}

// ToDomain converts EventDTO to audit.Event
func ToDomain(dto EventDTO) audit.Event {
	return audit.Event{
		ID:       strings.TrimSpace(dto.ID),
		ActorID:  dto.ActorID,
		Actor:    strings.TrimSpace(dto.Actor),
		Action:   audit.Action(strings.ToLower(strings.TrimSpace(dto.Action))),
		Resource: strings.TrimSpace(dto.Resource),
		TargetID: strings.TrimSpace(dto.TargetID),
		Detail:   dto.Detail,
		At:       dto.At,
	}
}

// FromDomain converts audit.Event to EventDTO
func FromDomain(e audit.Event) EventDTO {
	return EventDTO{
		ID:       e.ID,
		ActorID:  e.ActorID,
		Actor:    e.Actor,
		Action:   string(e.Action),
		Resource: e.Resource,
		TargetID: e.TargetID,
		Detail:   e.Detail,
		At:       e.At,
	}
}
