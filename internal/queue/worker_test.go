package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/postpilothq/postpilot/internal/transfer"
)

type fakeEmailService struct {
	configured  bool
	sendErr     error
	failedPosts []*transfer.FailedPostNotification
	tokenAlerts []*transfer.TokenExpirationNotification
}

func (f *fakeEmailService) IsConfigured() bool { return f.configured }

func (f *fakeEmailService) SendFailedPostAlert(n *transfer.FailedPostNotification) error {
	f.failedPosts = append(f.failedPosts, n)
	return f.sendErr
}

func (f *fakeEmailService) SendTokenExpirationAlert(n *transfer.TokenExpirationNotification) error {
	f.tokenAlerts = append(f.tokenAlerts, n)
	return f.sendErr
}

func failedPostTask(t *testing.T, n transfer.FailedPostNotification) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(n)
	if err != nil {
		t.Fatal(err)
	}
	return asynq.NewTask(TaskTypeNotifyFailedPost, payload)
}

func TestHandleFailedPostTaskDelivers(t *testing.T) {
	es := &fakeEmailService{configured: true}
	w := NewWorker(es)

	task := failedPostTask(t, transfer.FailedPostNotification{
		PostID:       "quick_42",
		Platform:     "twitter",
		Content:      "launch day",
		ErrorMessage: "rate limited",
		UserEmail:    "user@example.com",
	})

	if err := w.HandleFailedPostTask(context.Background(), task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(es.failedPosts) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(es.failedPosts))
	}
	if es.failedPosts[0].PostID != "quick_42" || es.failedPosts[0].ErrorMessage != "rate limited" {
		t.Errorf("payload did not survive the queue round trip: %+v", es.failedPosts[0])
	}
}

func TestHandleFailedPostTaskDropsWhenUnconfigured(t *testing.T) {
	es := &fakeEmailService{configured: false}
	w := NewWorker(es)

	task := failedPostTask(t, transfer.FailedPostNotification{UserEmail: "user@example.com"})

	// Dropping must look like success so asynq does not retry.
	if err := w.HandleFailedPostTask(context.Background(), task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(es.failedPosts) != 0 {
		t.Error("nothing should be sent without a configured transport")
	}
}

func TestHandleFailedPostTaskDropsWithoutRecipient(t *testing.T) {
	es := &fakeEmailService{configured: true}
	w := NewWorker(es)

	task := failedPostTask(t, transfer.FailedPostNotification{PostID: "quick_1"})

	if err := w.HandleFailedPostTask(context.Background(), task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(es.failedPosts) != 0 {
		t.Error("nothing should be sent without a recipient")
	}
}

func TestHandleFailedPostTaskBadPayload(t *testing.T) {
	w := NewWorker(&fakeEmailService{configured: true})

	task := asynq.NewTask(TaskTypeNotifyFailedPost, []byte("not json"))
	if err := w.HandleFailedPostTask(context.Background(), task); err == nil {
		t.Fatal("expected an error for a malformed payload")
	}
}

func TestHandleFailedPostTaskSendFailureSurfaces(t *testing.T) {
	sendErr := errors.New("smtp down")
	es := &fakeEmailService{configured: true, sendErr: sendErr}
	w := NewWorker(es)

	task := failedPostTask(t, transfer.FailedPostNotification{UserEmail: "user@example.com"})

	// The send error must surface so asynq retries the task.
	if err := w.HandleFailedPostTask(context.Background(), task); !errors.Is(err, sendErr) {
		t.Fatalf("expected the transport error, got %v", err)
	}
}

func TestHandleTokenExpiryTask(t *testing.T) {
	es := &fakeEmailService{configured: true}
	w := NewWorker(es)

	payload, _ := json.Marshal(transfer.TokenExpirationNotification{
		UserID:    "7",
		Platform:  "linkedin",
		UserEmail: "user@example.com",
	})

	task := asynq.NewTask(TaskTypeNotifyTokenExpiry, payload)
	if err := w.HandleTokenExpiryTask(context.Background(), task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(es.tokenAlerts) != 1 || es.tokenAlerts[0].Platform != "linkedin" {
		t.Errorf("unexpected deliveries: %+v", es.tokenAlerts)
	}
}
