// Package notify sends out-of-band customer notifications.
package notify

import (
	"context"
	"fmt"
	"regexp"

	"booksales/internal/model"

	"github.com/rs/zerolog"
)

// Notifier tells a customer that a book they wished for can be bought.
// Implementations log failures and never return them to the caller.
type Notifier interface {
	NotifyRestock(ctx context.Context, phone string, book *model.Book)
}

// Nop is the notifier used when no SMS provider is configured.
type Nop struct{}

// NotifyRestock does nothing.
func (Nop) NotifyRestock(context.Context, string, *model.Book) {}

// Message is a single outbound SMS.
// Exactly one of From and MessagingServiceSID is set.
type Message struct {
	To                  string
	From                string
	MessagingServiceSID string
	Body                string
}

// MessageSender delivers a Message through an SMS provider and returns the provider's message id.
type MessageSender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

var e164 = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

// IsE164 reports whether phone is an E.164 formatted number.
func IsE164(phone string) bool {
	return e164.MatchString(phone)
}

// RestockMessage renders the SMS body for book.
func RestockMessage(book *model.Book) string {
	return fmt.Sprintf("Good news! '%s' is in stock now at BookSales. Price: $%s.", book.Title, book.Price.String())
}

// SMSNotifier sends restock notifications by SMS.
type SMSNotifier struct {
	sender              MessageSender
	from                string
	messagingServiceSID string
	logger              zerolog.Logger
}

// NewSMSNotifier creates an SMS notifier. messagingServiceSID takes precedence over from.
func NewSMSNotifier(sender MessageSender, from, messagingServiceSID string, logger zerolog.Logger) *SMSNotifier {
	return &SMSNotifier{
		sender:              sender,
		from:                from,
		messagingServiceSID: messagingServiceSID,
		logger:              logger.With().Str("component", "sms_notifier").Logger(),
	}
}

// NotifyRestock sends the restock SMS to phone.
func (n *SMSNotifier) NotifyRestock(ctx context.Context, phone string, book *model.Book) {
	if book == nil {
		return
	}

	if !IsE164(phone) {
		n.logger.Warn().Str("mobile", phone).Msg("mobile is not in E.164 format, skipping SMS")
		return
	}

	msg := Message{To: phone, Body: RestockMessage(book)}
	switch {
	case n.messagingServiceSID != "":
		msg.MessagingServiceSID = n.messagingServiceSID
	case n.from != "":
		msg.From = n.from
	default:
		n.logger.Warn().Msg("neither messaging service SID nor sender number configured, skipping SMS")
		return
	}

	sid, err := n.sender.Send(ctx, msg)
	if err != nil {
		n.logger.Error().Err(err).Str("book_id", book.ID).Msg("failed to send restock SMS")
		return
	}

	n.logger.Info().Str("book_id", book.ID).Str("message_sid", sid).Msg("restock SMS sent")
}
