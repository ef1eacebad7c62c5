package mail

import (
	"regexp"

	"github.com/budget-buddy/backend/internal/events"
	"github.com/rs/zerolog/log"
)

// Dispatcher consumes notification events, renders the selected template
// and hands the result to the mail transport.
//
// A transport failure is logged and swallowed. There is no retry and no
// dead-letter; the triggering request or cron tick has already moved on.
type Dispatcher struct {
	sender Sender
}

func NewDispatcher(sender Sender) *Dispatcher {
	return &Dispatcher{sender: sender}
}

// Register subscribes the dispatcher to all notification topics.
func (d *Dispatcher) Register(bus *events.Bus) {
	for _, topic := range []string{
		events.TopicSendOTP,
		events.TopicNotification,
		events.TopicSendReminder,
		events.TopicSendMorningReminder,
	} {
		bus.Subscribe(topic, d.Handle)
	}
}

// Handle renders and sends a single notification.
func (d *Dispatcher) Handle(message events.Message) {
	email := redactEmail(message.Email)
	log.Info().Str("template", message.TemplateID).Str("email", email).Msg("processing notification")

	subject, body, err := Render(message.TemplateID, message.TemplateData)
	if err != nil {
		log.Error().Err(err).Str("template", message.TemplateID).Msg("failed to render mail")
		return
	}

	if err := d.sender.Send(message.Email, subject, body); err != nil {
		log.Error().Err(err).Str("email", email).Msg("failed to send email")
		return
	}

	log.Info().Str("email", email).Msg("email sent")
}

var redactPattern = regexp.MustCompile(`^(..)[^@]*(@.*)$`)

// redactEmail hides most of the local part for logging.
func redactEmail(email string) string {
	return redactPattern.ReplaceAllString(email, "$1***$2")
}
