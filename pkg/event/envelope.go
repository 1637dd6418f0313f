// Package event defines the wire contract shared by the upstream producers
// and the analytics consumer: the event envelope, the topic table, the typed
// per-domain payload shapes, and the producer emitter.
package event

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Envelope wraps every emitted domain event. One envelope is produced per
// committed write on the upstream store; entity_id doubles as the Kafka
// partition key, so events for the same entity are totally ordered.
type Envelope struct {
	Type      Type            `json:"event_type"`
	EventID   string          `json:"event_id"`
	EntityID  string          `json:"entity_id"`
	Timestamp Time            `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

var (
	ErrMissingType     = errors.New("envelope missing event_type")
	ErrMissingEntityID = errors.New("envelope missing entity_id")
)

// Decode parses a raw message body into an Envelope and checks the fields
// every producer is contractually required to set.
func Decode(raw []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal envelope: %w", err)
	}
	if env.Type == "" {
		return nil, ErrMissingType
	}
	if env.EntityID == "" {
		return nil, ErrMissingEntityID
	}
	return &env, nil
}

// DecodeData unmarshals the domain payload into the given typed value.
// An absent payload leaves v untouched so optional sub-objects degrade to
// their zero values instead of failing.
func (e *Envelope) DecodeData(v any) error {
	if len(e.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s payload: %w", e.Type, err)
	}
	return nil
}

// Encode serializes the envelope for the wire.
func (e *Envelope) Encode() ([]byte, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal envelope: %w", err)
	}
	return raw, nil
}

// NewEnvelope builds an envelope around a domain payload. eventID and the
// emission timestamp are filled by the emitter.
func NewEnvelope(eventType Type, eventID, entityID string, ts Time, data any) (*Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return &Envelope{
		Type:      eventType,
		EventID:   eventID,
		EntityID:  entityID,
		Timestamp: ts,
		Data:      raw,
	}, nil
}
