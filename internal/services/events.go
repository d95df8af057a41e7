package services

// EventPublisher publishes order lifecycle events to the message broker.
// Implemented by pkg/rabbitmq.Client; publishing is best-effort from the
// services' point of view and failures are only logged.
type EventPublisher interface {
	Publish(eventType string, body []byte) error
}
