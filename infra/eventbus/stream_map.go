package eventbus

import (
	"fmt"
	"strings"
)

func streamNameFor(prefix, eventType string) string {
	return nameFor(prefix, "events", eventType)
}

// dlqStreamName returns the DLQ stream name for the given event type.
func dlqStreamName(prefix, eventType string) string {
	return nameFor(prefix, "dlq", eventType)
}

// groupNameFor returns the consumer group of the event type.
func groupNameFor(group, eventType string) string {
	return nameFor(group, "group", eventType)
}

func nameFor(prefix, kind, eventType string) string {
	parts := strings.Split(eventType, ".")
	if len(parts) == 2 {
		return fmt.Sprintf(
			"%s:%s:%s:%s",
			prefix,
			kind,
			strings.ToLower(parts[0]),
			strings.ToLower(parts[1]))
	}
	return fmt.Sprintf("%s:%s:%s", prefix, kind, strings.ToLower(eventType))
}
