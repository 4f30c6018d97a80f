package queue

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// TopicDispatch carries campaign activation jobs to the email dispatcher.
const TopicDispatch = "campaign_dispatch"

// DispatchJob is the payload of an activation: which campaign to send, and
// the fixed URL substituted into every message.
type DispatchJob struct {
	CampaignID string `json:"campaign_id"`
	FixedURL   string `json:"fixed_url"`
}

// Queue interface
type Queue interface {
	Publish(topic string, job DispatchJob) error
	Subscribe(topic string, handler func(job DispatchJob) error) error
}

// InMemoryQueue runs handlers in their own goroutine inside this process.
// Jobs are delivered once; failed handlers are logged, not retried.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(job DispatchJob) error
	log      zerolog.Logger
}

var _ Queue = (*InMemoryQueue)(nil)

func NewInMemoryQueue(log zerolog.Logger) *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(job DispatchJob) error),
		log:      log,
	}
}

// Publish hands the job to every subscriber of the topic and returns
// immediately; the handlers run in the background.
func (q *InMemoryQueue) Publish(topic string, job DispatchJob) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	for _, handler := range handlers {
		go func(h func(job DispatchJob) error) {
			if err := h(job); err != nil {
				q.log.Error().Err(err).
					Str("topic", topic).
					Str("campaign_id", job.CampaignID).
					Msg("job handler failed")
			}
		}(handler)
	}
	return nil
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(job DispatchJob) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}
