package jobqueue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminderJobPayloadRoundTrip(t *testing.T) {
	scheduledAt := time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC)
	payload := ReminderJobPayload{
		AppointmentID:   42,
		AppointmentUUID: "b7a9e2c4-0000-0000-0000-000000000042",
		CustomerName:    "Max Schmidt",
		CustomerEmail:   "max@example.com",
		CustomerPhone:   "+49 170 1234567",
		LicensePlate:    "B-XY 9876",
		ScheduledAt:     scheduledAt,
	}

	decoded, err := ReminderJobPayloadFromMap(payload.ToMap())
	require.NoError(t, err)

	assert.Equal(t, payload.AppointmentID, decoded.AppointmentID)
	assert.Equal(t, payload.AppointmentUUID, decoded.AppointmentUUID)
	assert.Equal(t, payload.CustomerName, decoded.CustomerName)
	assert.Equal(t, payload.CustomerPhone, decoded.CustomerPhone)
	assert.True(t, decoded.ScheduledAt.Equal(scheduledAt))
}

func TestJobStatusTransitions(t *testing.T) {
	job := &Job{
		ID:         "test-job",
		Type:       JobTypeEmailReminder,
		Status:     JobStatusPending,
		MaxRetries: 2,
	}

	job.MarkAsProcessing()
	assert.Equal(t, JobStatusProcessing, job.Status)
	require.NotNil(t, job.ProcessedAt)

	job.MarkAsFailed("smtp timeout")
	assert.Equal(t, JobStatusFailed, job.Status)
	assert.Equal(t, "smtp timeout", job.ErrorMsg)
	assert.Equal(t, 1, job.RetryCount)
	assert.True(t, job.IsRetryable())

	job.MarkAsFailed("smtp timeout")
	assert.Equal(t, 2, job.RetryCount)
	assert.False(t, job.IsRetryable())
}

func TestJobCompletedClearsError(t *testing.T) {
	job := &Job{
		ID:       "test-job",
		Type:     JobTypeSMSReminder,
		Status:   JobStatusProcessing,
		ErrorMsg: "gateway unreachable",
	}

	job.MarkAsCompleted()
	assert.Equal(t, JobStatusCompleted, job.Status)
	assert.Empty(t, job.ErrorMsg)
	require.NotNil(t, job.CompletedAt)
}
