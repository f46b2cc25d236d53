// Package events publishes notifications about committed staff writes.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	TypeCreated    = "created"
	TypeUpdated    = "updated"
	TypeDeleted    = "deleted"
	TypeAssigned   = "assigned"
	TypeUnassigned = "unassigned"
)

// Resource names
const (
	ResourceDepartment = "department"
	ResourceEmployee   = "employee"
	ResourceProject    = "project"
)

// Event describes one committed change.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Resource   string    `json:"resource"`
	ResourceID int64     `json:"resource_id"`
	Payload    any       `json:"payload,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// New fills in the id and timestamp of an event.
func New(typ, resource string, resourceID int64, payload any) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       typ,
		Resource:   resource,
		ResourceID: resourceID,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
