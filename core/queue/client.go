package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"meetpoll-api/core/config"
	"meetpoll-api/core/constants"
	"meetpoll-api/core/logger"

	"github.com/hibiken/asynq"
)

// Enqueuer hands work to whatever consumes the task queue.
type Enqueuer interface {
	Enqueue(ctx context.Context, taskType string, payload any) error
}

type Client struct {
	client *asynq.Client
	queue  string
}

// NewClient creates an asynq client that enqueues onto queueName.
func NewClient(cfg config.RedisConfig, queueName string) *Client {
	if queueName == "" {
		queueName = constants.QueueDefault
	}
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Client{client: client, queue: queueName}
}

// Enqueue marshals payload to JSON and submits it as a taskType task.
func (c *Client) Enqueue(ctx context.Context, taskType string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", taskType, err)
	}

	info, err := c.client.EnqueueContext(ctx, asynq.NewTask(taskType, body),
		asynq.Queue(c.queue),
		asynq.MaxRetry(constants.TaskMaxRetry),
	)
	if err != nil {
		logger.Error("Queue:Enqueue", err, "task", taskType)
		return err
	}

	logger.Info("Queue:Enqueue:Success", "task", taskType, "task_id", info.ID, "queue", info.Queue)
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
