package notify

import (
	"fmt"
	"log"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type Mailer struct {
	client   *sendgrid.Client
	fromName string
	fromAddr string
}

// NewMailer builds the sendgrid-backed mailer. With an empty API key the
// mailer only logs, so local environments never hit the network.
func NewMailer(apiKey, fromName, fromAddr string) *Mailer {
	m := &Mailer{
		fromName: fromName,
		fromAddr: fromAddr,
	}
	if apiKey != "" {
		m.client = sendgrid.NewSendClient(apiKey)
	}
	return m
}

func (m *Mailer) Send(msg Message) error {
	if m.client == nil {
		log.Printf("mail disabled, would send %q to %s", msg.Subject, msg.ToAddr)
		return nil
	}

	from := mail.NewEmail(m.fromName, m.fromAddr)
	to := mail.NewEmail(msg.ToName, msg.ToAddr)
	email := mail.NewSingleEmail(from, msg.Subject, to, msg.Body, "")

	res, err := m.client.Send(email)
	if err != nil {
		return err
	}
	if res.StatusCode >= 400 {
		return fmt.Errorf("sendgrid status %d", res.StatusCode)
	}
	return nil
}

func BookingConfirmed(toName, toAddr, serviceName string, start time.Time) Message {
	return Message{
		ToName:  toName,
		ToAddr:  toAddr,
		Subject: "Your appointment is booked",
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour %s appointment is confirmed for %s.\n\nSee you soon!",
			toName, serviceName, start.Format("Monday, 2 January 2006 at 15:04"),
		),
	}
}

func BookingCancelled(toName, toAddr, serviceName string, start time.Time) Message {
	return Message{
		ToName:  toName,
		ToAddr:  toAddr,
		Subject: "Your appointment was cancelled",
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour %s appointment on %s has been cancelled.",
			toName, serviceName, start.Format("Monday, 2 January 2006 at 15:04"),
		),
	}
}
