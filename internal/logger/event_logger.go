package logger

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventDecisionRequested EventType = "decision_requested"
	EventDecisionCommitted EventType = "decision_committed"
	EventKafkaSent         EventType = "kafka_sent"
	EventKafkaReceived     EventType = "kafka_received"
	EventRedisSaved        EventType = "redis_saved"
	EventApprovalCreated   EventType = "approval_created"
	EventApprovalResolved  EventType = "approval_resolved"
	EventDocumentStored    EventType = "document_stored"
	EventFraudEscalated    EventType = "fraud_escalated"
)

// Event бизнес-событие конвейера проверки
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Service   string                 `json:"service"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
	Component string                 `json:"component"` // kafka, redis, sqlite, etc.
}

// EventLogger кольцевой буфер последних событий в памяти
type EventLogger struct {
	events  []Event
	mu      sync.RWMutex
	maxSize int
}

var globalLogger = NewEventLogger(1000) // Храним последние 1000 событий

func NewEventLogger(maxSize int) *EventLogger {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &EventLogger{
		events:  make([]Event, 0, maxSize),
		maxSize: maxSize,
	}
}

func LogEvent(eventType EventType, service string, component string, data map[string]interface{}) {
	globalLogger.LogEvent(eventType, service, component, data)
}

func (el *EventLogger) LogEvent(eventType EventType, service string, component string, data map[string]interface{}) {
	event := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Service:   service,
		Component: component,
		Timestamp: time.Now(),
		Data:      data,
	}

	el.mu.Lock()
	defer el.mu.Unlock()

	el.events = append(el.events, event)

	// Ограничиваем размер
	if len(el.events) > el.maxSize {
		el.events = el.events[len(el.events)-el.maxSize:]
	}
}

func GetEvents(limit int) []Event {
	return globalLogger.GetEvents(limit)
}

// GetEvents возвращает последние limit событий в порядке записи
func (el *EventLogger) GetEvents(limit int) []Event {
	el.mu.RLock()
	defer el.mu.RUnlock()

	if limit <= 0 || limit > len(el.events) {
		limit = len(el.events)
	}

	start := len(el.events) - limit
	result := make([]Event, limit)
	copy(result, el.events[start:])
	return result
}

func GetStats() map[string]interface{} {
	return globalLogger.GetStats()
}

func (el *EventLogger) GetStats() map[string]interface{} {
	el.mu.RLock()
	defer el.mu.RUnlock()

	componentStats := make(map[string]int)
	serviceStats := make(map[string]int)
	typeStats := make(map[string]int)

	for _, event := range el.events {
		componentStats[event.Component]++
		serviceStats[event.Service]++
		typeStats[string(event.Type)]++
	}

	return map[string]interface{}{
		"total_events": len(el.events),
		"components":   componentStats,
		"services":     serviceStats,
		"event_types":  typeStats,
	}
}

func Clear() {
	globalLogger.Clear()
}

// Clear удаляет все накопленные события
func (el *EventLogger) Clear() {
	el.mu.Lock()
	defer el.mu.Unlock()
	el.events = el.events[:0]
}

func (e Event) MarshalJSON() ([]byte, error) {
	type Alias Event
	return json.Marshal(&struct {
		Timestamp string `json:"timestamp"`
		*Alias
	}{
		Timestamp: e.Timestamp.Format(time.RFC3339),
		Alias:     (*Alias)(&e),
	})
}
