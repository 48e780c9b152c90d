package utils

import (
	"context"
	"fmt"
	"html"

	"github.com/mailjet/mailjet-apiv3-go"

	"hotel-server/models"
	"hotel-server/services"
)

// Mailer sends guest e-mails through Mailjet.
type Mailer struct {
	client   *mailjet.Client
	from     string
	fromName string
}

func NewMailer(apiKey, apiSecret, from, fromName string) *Mailer {
	return &Mailer{
		client:   mailjet.NewMailjetClient(apiKey, apiSecret),
		from:     from,
		fromName: fromName,
	}
}

func (m *Mailer) BookingConfirmed(_ context.Context, user *models.User, booking *models.Booking, room *models.Room) error {
	name := fmt.Sprintf("%s %s", user.FirstName, user.LastName)
	messages := mailjet.MessagesV31{Info: []mailjet.InfoMessagesV31{
		{
			From: &mailjet.RecipientV31{Email: m.from, Name: m.fromName},
			To: &mailjet.RecipientsV31{
				mailjet.RecipientV31{Email: user.Email, Name: name},
			},
			Subject:  fmt.Sprintf("Booking #%d confirmed", booking.ID),
			TextPart: confirmationText(user, booking, room),
			HTMLPart: confirmationHTML(user, booking, room),
		},
	}}
	_, err := m.client.SendMailV31(&messages)
	return err
}

func confirmationText(user *models.User, booking *models.Booking, room *models.Room) string {
	return fmt.Sprintf(
		"Hello %s,\n\nyour booking #%d for room %s (%s) from %s to %s is confirmed.\nTotal: %s\n",
		user.FirstName, booking.ID, room.RoomNumber, room.RoomType,
		services.FormatDate(booking.CheckInDate), services.FormatDate(booking.CheckOutDate),
		booking.TotalAmount.StringFixed(2),
	)
}

func confirmationHTML(user *models.User, booking *models.Booking, room *models.Room) string {
	return fmt.Sprintf(
		"<p>Hello %s,</p><p>your booking <b>#%d</b> for room %s (%s) from %s to %s is confirmed.</p><p>Total: %s</p>",
		html.EscapeString(user.FirstName), booking.ID, html.EscapeString(room.RoomNumber), html.EscapeString(room.RoomType),
		services.FormatDate(booking.CheckInDate), services.FormatDate(booking.CheckOutDate),
		booking.TotalAmount.StringFixed(2),
	)
}

var _ services.Notifier = (*Mailer)(nil)
