package tasks

import (
	"encoding/json"
	"time"

	"velora/config"
	"velora/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// reminderLead is how far ahead of the appointment the reminder fires.
const reminderLead = 24 * time.Hour

// ReminderPayload is the task body for an appointment reminder.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	ClientID      string `json:"clientId"`
	ServiceID     string `json:"serviceId"`
	StartTime     string `json:"startTime"` // RFC3339
}

// NewReminderTask builds the asynq task for an appointment reminder.
func NewReminderTask(payload ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}
	return task, opts, nil
}

// AsynqScheduler enqueues appointment reminders on the task queue. It
// satisfies the booking service's ReminderScheduler interface.
type AsynqScheduler struct {
	Client *asynq.Client
}

// NewAsynqScheduler creates a scheduler backed by the configured Redis
// queue.
func NewAsynqScheduler() *AsynqScheduler {
	return &AsynqScheduler{
		Client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		}),
	}
}

// ScheduleAppointmentReminder enqueues a reminder 24 hours before the
// appointment starts. Appointments starting sooner than that get no
// reminder.
func (s *AsynqScheduler) ScheduleAppointmentReminder(appt models.Appointment) error {
	fireAt := appt.StartTime.Add(-reminderLead)
	if fireAt.Before(time.Now()) {
		return nil
	}

	payload := ReminderPayload{
		AppointmentID: appt.ID,
		ClientID:      appt.ClientID,
		ServiceID:     appt.ServiceID,
		StartTime:     appt.StartTime.Format(time.RFC3339),
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	_, err = s.Client.Enqueue(task, opts...)
	return err
}
