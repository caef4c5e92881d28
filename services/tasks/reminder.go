package tasks

import (
	"encoding/json"
	"time"

	"frontdesk/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// Scheduler enqueues appointment reminder tasks.
type Scheduler interface {
	ScheduleReminder(payload models.ReminderPayload, fireAt time.Time) error
}

// AsynqScheduler enqueues reminders on the Redis-backed task queue.
type AsynqScheduler struct {
	client *asynq.Client
}

// NewAsynqScheduler returns a Scheduler using the given Redis connection.
func NewAsynqScheduler(redisOpt asynq.RedisClientOpt) *AsynqScheduler {
	return &AsynqScheduler{client: asynq.NewClient(redisOpt)}
}

// ScheduleReminder enqueues a reminder task to fire at the given time.
func (s *AsynqScheduler) ScheduleReminder(payload models.ReminderPayload, fireAt time.Time) error {
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	_, err = s.client.Enqueue(task, opts...)
	return err
}

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}
