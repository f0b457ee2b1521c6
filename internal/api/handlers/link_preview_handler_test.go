package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/postpilothq/postpilot/internal/transfer"
)

type fakeLinkPreviewService struct {
	preview *transfer.LinkPreview
}

func (f *fakeLinkPreviewService) FetchPreview(ctx context.Context, rawURL string) *transfer.LinkPreview {
	return f.preview
}

func newPreviewTestApp(svc *fakeLinkPreviewService) *fiber.App {
	app := fiber.New()
	h := NewLinkPreviewHandler(svc)
	app.Post("/api/link-preview", h.Preview)
	return app
}

func TestPreviewMissingURL(t *testing.T) {
	app := newPreviewTestApp(&fakeLinkPreviewService{})

	resp := postJSON(t, app, "/api/link-preview", transfer.LinkPreviewRequest{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestPreviewDegradedTargetIs200(t *testing.T) {
	app := newPreviewTestApp(&fakeLinkPreviewService{preview: &transfer.LinkPreview{
		URL:    "https://dead.example.com",
		Title:  "https://dead.example.com",
		Domain: "dead.example.com",
		Error:  true,
	}})

	resp := postJSON(t, app, "/api/link-preview", transfer.LinkPreviewRequest{
		URL: "https://dead.example.com",
	})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("a broken target must still be a 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["error"] != true {
		t.Errorf("expected error flag in degraded payload, got %v", body)
	}
	if body["title"] != "https://dead.example.com" {
		t.Errorf("degraded title must be the raw url, got %v", body["title"])
	}
}

func TestPreviewSuccess(t *testing.T) {
	app := newPreviewTestApp(&fakeLinkPreviewService{preview: &transfer.LinkPreview{
		URL:         "https://example.com/post",
		Title:       "Example Post",
		Description: "A page",
		Domain:      "example.com",
	}})

	resp := postJSON(t, app, "/api/link-preview", transfer.LinkPreviewRequest{
		URL: "https://example.com/post",
	})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["title"] != "Example Post" {
		t.Errorf("unexpected title %v", body["title"])
	}
}
