package notification

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SignalRepository defines the interface for in-app notification fan-out
type SignalRepository interface {
	// Subscribe subscribes to a topic and returns a channel for notifications
	Subscribe(topic string) (<-chan *Notification, func(), error)

	// Publish publishes a notification to a topic
	Publish(topic string, notification *Notification) error
}

// signalRepository implements SignalRepository
type signalRepository struct {
	mutex     sync.Mutex
	topics    map[string]map[string]chan *Notification
	topicSize int
}

// NewSignalRepository creates a new signal repository
func NewSignalRepository(topicSize int) SignalRepository {
	return &signalRepository{
		topics:    make(map[string]map[string]chan *Notification),
		topicSize: topicSize,
	}
}

// Subscribe subscribes to a topic
func (r *signalRepository) Subscribe(topic string) (<-chan *Notification, func(), error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.topics[topic]; !exists {
		r.topics[topic] = make(map[string]chan *Notification)
	}

	ch := make(chan *Notification, r.topicSize)
	subscriberID := uuid.New().String()
	r.topics[topic][subscriberID] = ch

	cancel := func() {
		r.mutex.Lock()
		defer r.mutex.Unlock()

		if topicMap, exists := r.topics[topic]; exists {
			delete(topicMap, subscriberID)
			if len(topicMap) == 0 {
				delete(r.topics, topic)
			}
		}

		close(ch)
	}

	return ch, cancel, nil
}

// Publish publishes a notification to a topic
func (r *signalRepository) Publish(topic string, notification *Notification) error {
	r.mutex.Lock()

	if _, exists := r.topics[topic]; !exists {
		r.mutex.Unlock()
		return nil // No subscribers yet, nothing to do
	}

	subscribers := make([]chan *Notification, 0, len(r.topics[topic]))
	for _, ch := range r.topics[topic] {
		subscribers = append(subscribers, ch)
	}
	r.mutex.Unlock()

	if len(subscribers) > 0 {
		logrus.WithFields(logrus.Fields{
			"notification_id": notification.ID,
			"topic":           topic,
			"subscribers":     len(subscribers),
		}).Debug("Publishing notification to subscribers")
	}

	// Publish to each subscriber in a non-blocking way
	for _, ch := range subscribers {
		go func(channel chan *Notification) {
			select {
			case channel <- notification:
			case <-time.After(100 * time.Millisecond):
				logrus.WithFields(logrus.Fields{
					"notification_id": notification.ID,
					"topic":           topic,
				}).Warn("Failed to deliver notification to subscriber (channel full or blocked)")
			}
		}(ch)
	}

	return nil
}
