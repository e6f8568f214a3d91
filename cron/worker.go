package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"velora/config"
	appointmentRepo "velora/database/repository/appointment"
	"velora/models"
	"velora/services/tasks"
	"velora/utils"

	"github.com/hibiken/asynq"
	cronv3 "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// InitReminderWorker runs the async reminder worker in the background.
func InitReminderWorker(repo appointmentRepo.AppointmentRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(repo))

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Printf("[ReminderWorker] worker stopped: %v", err)
		}
	}()
}

// handleReminderTask fires a due reminder. Delivery itself is handled
// outside this service; cancelled or rescheduled appointments make the
// reminder a no-op.
func handleReminderTask(repo appointmentRepo.AppointmentRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p tasks.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return err
		}

		appt, err := repo.GetByID(p.AppointmentID)
		if err != nil {
			logger.Warn("reminder for unknown appointment",
				zap.String("appointmentID", p.AppointmentID), zap.Error(err))
			return nil
		}
		if appt.Status != models.AppointmentConfirmed {
			return nil
		}
		if appt.StartTime.Format(time.RFC3339) != p.StartTime {
			// Rescheduled since the reminder was enqueued; the confirm
			// path scheduled a fresh one.
			return nil
		}

		logger.Info("appointment reminder due",
			zap.String("appointmentID", appt.ID),
			zap.String("clientID", appt.ClientID),
			zap.Time("startTime", appt.StartTime))
		return nil
	}
}

// InitCompletionSweep starts a periodic job that flips confirmed
// appointments to completed once their end time has passed.
func InitCompletionSweep(repo appointmentRepo.AppointmentRepository) *cronv3.Cron {
	c := cronv3.New()
	logger := utils.GetLogger()

	_, err := c.AddFunc("@every 15m", func() {
		count, err := repo.CompletePastConfirmed(time.Now())
		if err != nil {
			logger.Error("completion sweep failed", zap.Error(err))
			return
		}
		if count > 0 {
			logger.Info("completion sweep finished", zap.Int64("completed", count))
		}
	})
	if err != nil {
		logger.Error("failed to register completion sweep", zap.Error(err))
		return c
	}

	c.Start()
	return c
}
