package queue

import (
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"
	"github.com/postpilothq/postpilot/internal/transfer"
)

const (
	TaskTypeNotifyFailedPost  = "notify:failed_post"
	TaskTypeNotifyTokenExpiry = "notify:token_expiry"
)

// EnqueueFailedPostAlert queues a failed-post email. The external
// posting functions report failures through this path so slow mail
// servers never block them.
func EnqueueFailedPostAlert(client *asynq.Client, n transfer.FailedPostNotification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypeNotifyFailedPost, payload)
	_, err = client.Enqueue(task, asynq.MaxRetry(3))
	if err != nil {
		return err
	}

	log.Printf("Notification queued: failed post %s on %s", n.PostID, n.Platform)
	return nil
}

func EnqueueTokenExpiryAlert(client *asynq.Client, n transfer.TokenExpirationNotification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypeNotifyTokenExpiry, payload)
	_, err = client.Enqueue(task, asynq.MaxRetry(3))
	if err != nil {
		return err
	}

	log.Printf("Notification queued: token expiry for user %s on %s", n.UserID, n.Platform)
	return nil
}
