package mail

import (
	"fmt"
	"log"
	"net/smtp"
	"time"

	"github.com/garagehub/GarageHub/internal/pkg/env"
)

// SendMail sends an email via SMTP
func SendMail(to string, subject string, body string) error {
	host := env.GetEnv("SMTP_HOST", "")
	port := env.GetEnv("SMTP_PORT", "")
	username := env.GetEnv("SMTP_USERNAME", "")
	password := env.GetEnv("SMTP_PASSWORD", "")
	sender := env.GetEnv("SMTP_SENDER", "")

	if sender == "" {
		sender = fmt.Sprintf("no-reply@%s", "localhost")
		log.Printf("SMTP_SENDER not set, using default sender: %s", sender)
	}

	var auth smtp.Auth
	if username != "" && password != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	addr := fmt.Sprintf("%s:%s", host, port)

	msg := []byte(
		fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", sender, to, subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
			body,
	)

	err := smtp.SendMail(addr, auth, sender, []string{to}, msg)
	if err != nil {
		log.Printf("SMTP send error: %v", err)
	} else {
		log.Printf("Email sent to %s via %s", to, addr)
	}
	return err
}

// SendAppointmentReminder sends a service appointment reminder to a customer.
func SendAppointmentReminder(to string, customerName string, licensePlate string, scheduledAt time.Time) error {
	garageName := env.GetEnv("GARAGE_NAME", "GarageHub")

	subject := fmt.Sprintf("Reminder: service appointment on %s", scheduledAt.Format("02.01.2006"))
	body := fmt.Sprintf(
		"<p>Hi %s,</p>"+
			"<p>this is a reminder that your vehicle <strong>%s</strong> is booked for service on "+
			"<strong>%s</strong> at <strong>%s</strong>.</p>"+
			"<p>If you need to reschedule, please contact us.</p>"+
			"<p>%s</p>",
		customerName, licensePlate,
		scheduledAt.Format("02.01.2006"), scheduledAt.Format("15:04"),
		garageName,
	)

	return SendMail(to, subject, body)
}
