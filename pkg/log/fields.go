package log

const (
	// Event pipeline
	FieldEventType = "event_type"
	FieldEventID   = "event_id"
	FieldEntityID  = "entity_id"
	FieldTopic     = "topic"
	FieldPartition = "partition"
	FieldOffset    = "offset"

	// Service
	FieldService = "service"
)
