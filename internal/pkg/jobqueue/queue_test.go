package jobqueue

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagehub/GarageHub/internal/pkg/cache"
)

func setupTestQueue(t *testing.T) *Queue {
	t.Helper()

	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	return NewQueue(2)
}

// TestNewQueue tests the queue constructor
func TestNewQueue(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	tests := []struct {
		name            string
		workers         int
		expectedWorkers int
	}{
		{"Valid worker count", 5, 5},
		{"Zero workers", 0, 3},
		{"Negative workers", -1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queue := NewQueue(tt.workers)

			assert.NotNil(t, queue)
			assert.Equal(t, tt.expectedWorkers, queue.workers)
			assert.NotNil(t, queue.workerPool)
			assert.Equal(t, tt.expectedWorkers, cap(queue.workerPool))
			assert.NotNil(t, queue.stopCh)
			assert.False(t, queue.running)
		})
	}
}

func TestConstants(t *testing.T) {
	// Test Redis key constants
	assert.Equal(t, "job:", JobKeyPrefix)
	assert.Equal(t, "job_queue", JobQueueKey)
	assert.Equal(t, "job_processing", JobProcessingKey)
	assert.Equal(t, "job_stats", JobStatsKey)

	// Test job settings constants
	assert.Equal(t, 3, DefaultMaxRetries)
	assert.Equal(t, 24*time.Hour, JobTTL)
}

func TestEnqueueJobStoresJob(t *testing.T) {
	queue := setupTestQueue(t)
	ctx := context.Background()

	payload := ReminderJobPayload{
		AppointmentID:   7,
		AppointmentUUID: "b7a9e2c4-0000-0000-0000-000000000001",
		CustomerName:    "Erika Muster",
		CustomerEmail:   "erika@example.com",
		LicensePlate:    "M-AB 1234",
		ScheduledAt:     time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC),
	}

	job, err := queue.EnqueueJob(JobTypeEmailReminder, payload.ToMap())
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, JobStatusPending, job.Status)
	assert.Equal(t, DefaultMaxRetries, job.MaxRetries)

	size, err := queue.GetQueueSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), size)

	stored, err := queue.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, JobTypeEmailReminder, stored.Type)

	decoded, err := ReminderJobPayloadFromMap(stored.Payload)
	require.NoError(t, err)
	assert.Equal(t, "erika@example.com", decoded.CustomerEmail)
	assert.Equal(t, "M-AB 1234", decoded.LicensePlate)
	assert.True(t, decoded.ScheduledAt.Equal(payload.ScheduledAt))
}

func TestGetJobStats(t *testing.T) {
	queue := setupTestQueue(t)
	ctx := context.Background()

	_, err := queue.EnqueueJob(JobTypeSMSReminder, map[string]interface{}{"appointment_id": 1})
	require.NoError(t, err)
	_, err = queue.EnqueueJob(JobTypeSMSReminder, map[string]interface{}{"appointment_id": 2})
	require.NoError(t, err)

	stats, err := queue.GetJobStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats[JobStatusPending])
}
