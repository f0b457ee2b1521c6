package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/postpilothq/postpilot/internal/transfer"
)

type fakeEmailService struct {
	configured bool
	sendErr    error
	sent       int
}

func (f *fakeEmailService) IsConfigured() bool { return f.configured }

func (f *fakeEmailService) SendFailedPostAlert(n *transfer.FailedPostNotification) error {
	f.sent++
	return f.sendErr
}

func (f *fakeEmailService) SendTokenExpirationAlert(n *transfer.TokenExpirationNotification) error {
	f.sent++
	return f.sendErr
}

func newEmailTestApp(svc *fakeEmailService) *fiber.App {
	app := fiber.New()
	h := NewEmailHandler(svc)
	app.Get("/api/email/status", h.Status)
	app.Post("/api/email/failed-post", h.FailedPost)
	app.Post("/api/email/token-expiration", h.TokenExpiration)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	return body
}

func TestEmailStatus(t *testing.T) {
	app := newEmailTestApp(&fakeEmailService{configured: false})

	req := httptest.NewRequest(http.MethodGet, "/api/email/status", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["enabled"] != false {
		t.Errorf("expected enabled=false, got %v", body["enabled"])
	}
	if body["message"] == "" {
		t.Error("expected an explanatory message")
	}
}

func TestFailedPostMissingEmail(t *testing.T) {
	svc := &fakeEmailService{configured: true}
	app := newEmailTestApp(svc)

	resp := postJSON(t, app, "/api/email/failed-post", transfer.FailedPostNotification{
		PostID:   "quick_1",
		Platform: "twitter",
	})

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if svc.sent != 0 {
		t.Error("nothing should be sent without a recipient")
	}
}

func TestFailedPostUnconfiguredIs200(t *testing.T) {
	svc := &fakeEmailService{configured: false}
	app := newEmailTestApp(svc)

	resp := postJSON(t, app, "/api/email/failed-post", transfer.FailedPostNotification{
		PostID:    "quick_1",
		Platform:  "twitter",
		UserEmail: "user@example.com",
	})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unconfigured transport must not be an error status, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["success"] != false {
		t.Errorf("expected success=false, got %v", body["success"])
	}
	if svc.sent != 0 {
		t.Error("nothing should be sent while unconfigured")
	}
}

func TestFailedPostTransportFailureIs500(t *testing.T) {
	svc := &fakeEmailService{configured: true, sendErr: errors.New("connection refused")}
	app := newEmailTestApp(svc)

	resp := postJSON(t, app, "/api/email/failed-post", transfer.FailedPostNotification{
		PostID:    "quick_1",
		Platform:  "twitter",
		UserEmail: "user@example.com",
	})

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["details"] == nil {
		t.Error("expected failure details in the body")
	}
}

func TestTokenExpirationSuccess(t *testing.T) {
	svc := &fakeEmailService{configured: true}
	app := newEmailTestApp(svc)

	resp := postJSON(t, app, "/api/email/token-expiration", transfer.TokenExpirationNotification{
		UserID:    "9",
		Platform:  "linkedin",
		UserEmail: "user@example.com",
	})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["success"] != true {
		t.Errorf("expected success=true, got %v", body["success"])
	}
	if svc.sent != 1 {
		t.Errorf("expected 1 send, got %d", svc.sent)
	}
}
