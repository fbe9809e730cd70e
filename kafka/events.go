package kafka

import "time"

// FeedbackRecordedEvent is published whenever a user saves product feedback.
type FeedbackRecordedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	UserID    uint      `json:"user_id"`
	ProductID int       `json:"product_id"`
	Liked     *bool     `json:"liked,omitempty"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeFeedbackRecorded = "feedback.recorded"
)

// Kafka topics
const (
	TopicFeedbackRecorded = "feedback-recorded"
)
