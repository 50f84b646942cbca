package history

import (
	"time"

	"github.com/google/uuid"
)

// Status classifies a recorded invocation.
type Status string

const (
	// StatusOK means the trigger was handed to the automation daemon.
	StatusOK Status = "ok"

	// StatusFailed means the handoff failed; Error carries the cause.
	StatusFailed Status = "failed"
)

// Invocation is one fired binding, recorded after the fact. Events that
// only switched layers are not invocations and are not recorded.
type Invocation struct {
	ID           string    `json:"id"`
	Device       string    `json:"device"` // reported device name at fire time
	Layer        string    `json:"layer"`
	EventType    string    `json:"event_type"`
	EventValue   string    `json:"event_value"`
	TriggerType  string    `json:"trigger_type"`
	TriggerValue string    `json:"trigger_value"`
	Status       Status    `json:"status"`
	Error        string    `json:"error,omitempty"` // empty when Status is ok
	CreatedAt    time.Time `json:"created_at"`
}

// GenerateID creates a new unique invocation ID.
func GenerateID() string {
	return uuid.New().String()
}
