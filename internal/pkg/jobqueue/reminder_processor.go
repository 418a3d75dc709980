package jobqueue

import (
	"fmt"

	"github.com/gofiber/fiber/v2/log"

	"github.com/garagehub/GarageHub/internal/pkg/billing"
	"github.com/garagehub/GarageHub/internal/pkg/entitlements"
	"github.com/garagehub/GarageHub/internal/pkg/mail"
	"github.com/garagehub/GarageHub/internal/pkg/sms"
)

// processEmailReminderJob sends an appointment reminder email to the customer.
// The entitlement check happens again at send time because the plan can change
// between scheduling and dispatch.
func (q *Queue) processEmailReminderJob(job *Job) error {
	payload, err := ReminderJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid email reminder payload: %w", err)
	}

	if !billing.GetService().Evaluator().IsFeatureEnabled(entitlements.FeatureEmailReminders) {
		log.Infof("[JobQueue] Skipping email reminder for appointment %s: feature disabled on current plan", payload.AppointmentUUID)
		return nil
	}

	if payload.CustomerEmail == "" {
		log.Warnf("[JobQueue] Skipping email reminder for appointment %s: customer has no email address", payload.AppointmentUUID)
		return nil
	}

	return mail.SendAppointmentReminder(payload.CustomerEmail, payload.CustomerName, payload.LicensePlate, payload.ScheduledAt)
}

// processSMSReminderJob sends an appointment reminder text message via the SMS gateway.
func (q *Queue) processSMSReminderJob(job *Job) error {
	payload, err := ReminderJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid sms reminder payload: %w", err)
	}

	if !billing.GetService().Evaluator().IsFeatureEnabled(entitlements.FeatureSMSReminders) {
		log.Infof("[JobQueue] Skipping SMS reminder for appointment %s: feature disabled on current plan", payload.AppointmentUUID)
		return nil
	}

	if payload.CustomerPhone == "" {
		log.Warnf("[JobQueue] Skipping SMS reminder for appointment %s: customer has no phone number", payload.AppointmentUUID)
		return nil
	}

	message := fmt.Sprintf("Hi %s, reminder: your vehicle %s is booked for service on %s.",
		payload.CustomerName, payload.LicensePlate, payload.ScheduledAt.Format("02.01.2006 15:04"))

	return sms.Send(payload.CustomerPhone, message)
}
