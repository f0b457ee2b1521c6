package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/postpilothq/postpilot/internal/service"
	"github.com/postpilothq/postpilot/internal/transfer"
)

type Worker struct {
	es service.EmailService
}

func NewWorker(es service.EmailService) *Worker {
	return &Worker{es: es}
}

func (w *Worker) HandleFailedPostTask(ctx context.Context, t *asynq.Task) error {
	var n transfer.FailedPostNotification
	if err := json.Unmarshal(t.Payload(), &n); err != nil {
		return fmt.Errorf("invalid failed-post payload: %w", err)
	}

	if !w.es.IsConfigured() {
		slog.Info("mail transport not configured, dropping failed-post notification")
		return nil
	}
	if n.UserEmail == "" {
		slog.Info("failed-post notification has no recipient, dropping")
		return nil
	}

	return w.es.SendFailedPostAlert(&n)
}

func (w *Worker) HandleTokenExpiryTask(ctx context.Context, t *asynq.Task) error {
	var n transfer.TokenExpirationNotification
	if err := json.Unmarshal(t.Payload(), &n); err != nil {
		return fmt.Errorf("invalid token-expiry payload: %w", err)
	}

	if !w.es.IsConfigured() {
		slog.Info("mail transport not configured, dropping token-expiry notification")
		return nil
	}
	if n.UserEmail == "" {
		slog.Info("token-expiry notification has no recipient, dropping")
		return nil
	}

	return w.es.SendTokenExpirationAlert(&n)
}
