package jobqueue

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/garagehub/GarageHub/app/models"
	"github.com/garagehub/GarageHub/app/repository"
	"github.com/garagehub/GarageHub/internal/pkg/cache"
	"github.com/garagehub/GarageHub/internal/pkg/env"
)

const (
	// ReminderSentKeyPrefix marks appointments whose reminder has already been
	// dispatched so the scheduler does not enqueue them twice.
	ReminderSentKeyPrefix = "reminders:sent:"
	reminderSentTTL       = 48 * time.Hour

	schedulerBatchSize = 200
)

// Manager manages the global job queue and the reminder scheduler
type Manager struct {
	queue           *Queue
	schedulerTicker *time.Ticker
	leadTime        time.Duration
	stopCh          chan struct{}
	wg              sync.WaitGroup
	mu              sync.Mutex
	running         bool
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// GetManager returns the global job queue manager (singleton)
func GetManager() *Manager {
	managerOnce.Do(func() {
		workerCount := 3
		if v, err := strconv.Atoi(env.GetEnv("REMINDER_WORKERS", "3")); err == nil && v > 0 {
			workerCount = v
		}

		leadHours := 24
		if v, err := strconv.Atoi(env.GetEnv("REMINDER_LEAD_HOURS", "24")); err == nil && v > 0 {
			leadHours = v
		}

		globalManager = &Manager{
			queue:    NewQueue(workerCount),
			leadTime: time.Duration(leadHours) * time.Hour,
			stopCh:   make(chan struct{}),
		}
	})
	return globalManager
}

// GetQueue returns the managed job queue
func (m *Manager) GetQueue() *Queue {
	return m.queue
}

// Start starts the job queue and the reminder scheduler
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}

	// Recreate stop channel for each start cycle so manager can be restarted safely.
	m.stopCh = make(chan struct{})
	m.running = true
	log.Info("[JobQueue Manager] Starting job queue and reminder scheduler")

	m.queue.Start()

	checkInterval := 5 * time.Minute
	if v, err := strconv.Atoi(env.GetEnv("REMINDER_CHECK_INTERVAL", "5")); err == nil && v > 0 {
		checkInterval = time.Duration(v) * time.Minute
	}

	m.schedulerTicker = time.NewTicker(checkInterval)
	m.wg.Add(1)
	go m.schedulerWorker()

	log.Info("[JobQueue Manager] Started successfully")
}

// Stop stops the job queue and the reminder scheduler
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	log.Info("[JobQueue Manager] Stopping job queue and reminder scheduler...")

	if m.schedulerTicker != nil {
		m.schedulerTicker.Stop()
	}

	close(m.stopCh)
	m.stopCh = nil
	m.running = false

	m.wg.Wait()
	m.queue.Stop()

	log.Info("[JobQueue Manager] Stopped successfully")
}

// schedulerWorker periodically scans upcoming appointments and enqueues reminder jobs
func (m *Manager) schedulerWorker() {
	defer m.wg.Done()
	log.Infof("[JobQueue Manager] Reminder scheduler started (lead time: %s)", m.leadTime)

	for {
		select {
		case <-m.stopCh:
			log.Info("[JobQueue Manager] Reminder scheduler stopping")
			return
		case <-m.schedulerTicker.C:
			if err := m.ScheduleDueReminders(); err != nil {
				log.Errorf("[JobQueue Manager] Reminder scheduling error: %v", err)
			}
		}
	}
}

// ScheduleDueReminders enqueues reminder jobs for appointments starting within
// the lead-time window. Each appointment and channel is dispatched at most once.
func (m *Manager) ScheduleDueReminders() error {
	repo := repository.GetGlobalFactory().GetAppointmentRepository()
	appointments, err := repo.ListUpcoming(schedulerBatchSize)
	if err != nil {
		return err
	}

	cutoff := time.Now().Add(m.leadTime)
	for _, appointment := range appointments {
		if appointment.ScheduledAt.After(cutoff) {
			// ListUpcoming is ordered by start time, nothing later is due either
			break
		}

		if appointment.EmailReminder {
			m.enqueueReminderOnce(JobTypeEmailReminder, &appointment)
		}
		if appointment.SMSReminder {
			m.enqueueReminderOnce(JobTypeSMSReminder, &appointment)
		}
	}

	return nil
}

// enqueueReminderOnce enqueues a reminder job unless one was already dispatched
// for this appointment and channel.
func (m *Manager) enqueueReminderOnce(jobType JobType, appointment *models.Appointment) {
	ctx := context.Background()
	client := cache.GetClient()

	sentKey := ReminderSentKeyPrefix + string(jobType) + ":" + appointment.UUID
	ok, err := client.SetNX(ctx, sentKey, "1", reminderSentTTL).Result()
	if err != nil {
		log.Errorf("[JobQueue Manager] Reminder dedupe check failed for %s: %v", appointment.UUID, err)
		return
	}
	if !ok {
		return
	}

	payload := ReminderJobPayload{
		AppointmentID:   appointment.ID,
		AppointmentUUID: appointment.UUID,
		CustomerName:    appointment.Customer.Name,
		CustomerEmail:   appointment.Customer.Email,
		CustomerPhone:   appointment.Customer.Phone,
		LicensePlate:    appointment.Vehicle.LicensePlate,
		ScheduledAt:     appointment.ScheduledAt,
	}

	if _, err := m.queue.EnqueueJob(jobType, payload.ToMap()); err != nil {
		log.Errorf("[JobQueue Manager] Failed to enqueue %s for appointment %s: %v", jobType, appointment.UUID, err)
		// Allow a later sweep to retry this appointment
		_ = client.Del(ctx, sentKey).Err()
	}
}

// IsRunning returns whether the manager is currently running
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}
