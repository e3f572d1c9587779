package mq

import (
	"log"
)

// Index describes a domain event: something happened to an entity.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityID   string `json:"entity_id"`
	By         string `json:"by,omitempty"`
}

var sink func(eventName string, content Index)

// SetSink registers the consumer for emitted events (the live activity hub).
func SetSink(fn func(eventName string, content Index)) {
	sink = fn
}

// Emit publishes an event to the registered sink. Emission is fire-and-forget;
// a missing sink just logs.
func Emit(eventName string, content Index) error {
	log.Println(eventName, "emitted", content.EntityType, content.EntityID)
	if sink != nil {
		sink(eventName, content)
	}
	return nil
}
