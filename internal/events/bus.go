// Package events provides the in-process pub/sub bus that connects
// domain events and cron ticks to the notification dispatcher.
package events

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Topics raised by the domain and the cron jobs.
const (
	TopicSendOTP             = "send_otp"
	TopicNotification        = "notification"
	TopicSendReminder        = "sendReminder"
	TopicSendMorningReminder = "sendMorningReminder"
)

// Message is the payload carried by every event: a template id, the
// recipient and the data the template is rendered with.
type Message struct {
	TemplateID   string
	Email        string
	TemplateData map[string]string
}

type Handler func(Message)

// Bus is a topic to handler registry. Publishing runs the handlers
// synchronously; handlers are expected to swallow their own failures.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
	}
}

// Subscribe registers a handler for a topic.
func (b *Bus) Subscribe(topic string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[topic] = append(b.handlers[topic], handler)
}

// Publish delivers the message to all handlers subscribed to the topic.
// A topic without subscribers is logged and dropped.
func (b *Bus) Publish(topic string, message Message) {
	b.mu.RLock()
	handlers := b.handlers[topic]
	b.mu.RUnlock()

	if len(handlers) == 0 {
		log.Debug().Str("topic", topic).Str("template", message.TemplateID).Msg("event without subscribers")
		return
	}

	for _, handler := range handlers {
		handler(message)
	}
}
