package notify

import (
	"encoding/json"
	"time"
)

const (
	ActionSchedule = "schedule"
	ActionCancel   = "cancel"
)

// Message is what goes over the wire to the delivery worker. Schedule
// messages carry the full payload; cancel messages carry only the tag.
type Message struct {
	Action    string    `json:"action"`
	Tag       string    `json:"tag"`
	DeliverAt time.Time `json:"deliver_at,omitempty"`
	Payload   *Payload  `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewScheduleMessage creates a schedule message
func NewScheduleMessage(at time.Time, payload Payload, tag string) *Message {
	return &Message{
		Action:    ActionSchedule,
		Tag:       tag,
		DeliverAt: at,
		Payload:   &payload,
		Timestamp: time.Now(),
	}
}

// NewCancelMessage creates a cancel-by-tag message
func NewCancelMessage(tag string) *Message {
	return &Message{
		Action:    ActionCancel,
		Tag:       tag,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// MessageFromJSON creates a message from JSON bytes
func MessageFromJSON(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
