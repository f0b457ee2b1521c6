package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchPreviewOpenGraph(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>
			<title>Fallback Title</title>
			<meta property="og:title" content="OG Title">
			<meta property="og:description" content="OG Description">
			<meta property="og:image" content="https://cdn.example.com/img.png">
		</head><body></body></html>`))
	}))
	defer server.Close()

	s := NewLinkPreviewService(server.Client())
	preview := s.FetchPreview(context.Background(), server.URL)

	if preview.Error {
		t.Fatal("unexpected degraded preview")
	}
	if preview.Title != "OG Title" {
		t.Errorf("expected og:title, got %q", preview.Title)
	}
	if preview.Description != "OG Description" {
		t.Errorf("unexpected description %q", preview.Description)
	}
	if preview.Image != "https://cdn.example.com/img.png" {
		t.Errorf("unexpected image %q", preview.Image)
	}
}

func TestFetchPreviewTitleFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Plain Page</title></head><body><p>hi</p></body></html>`))
	}))
	defer server.Close()

	s := NewLinkPreviewService(server.Client())
	preview := s.FetchPreview(context.Background(), server.URL)

	if preview.Error {
		t.Fatal("unexpected degraded preview")
	}
	if preview.Title != "Plain Page" {
		t.Errorf("expected <title> fallback, got %q", preview.Title)
	}
}

func TestFetchPreviewTimeoutDegrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	s := NewLinkPreviewService(&http.Client{Timeout: 50 * time.Millisecond})
	preview := s.FetchPreview(context.Background(), server.URL)

	if !preview.Error {
		t.Fatal("expected degraded preview on timeout")
	}
	if preview.Title != server.URL {
		t.Errorf("degraded title must be the raw url, got %q", preview.Title)
	}
}

func TestFetchPreviewBadStatusDegrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	s := NewLinkPreviewService(server.Client())
	preview := s.FetchPreview(context.Background(), server.URL)

	if !preview.Error {
		t.Fatal("expected degraded preview for 404 target")
	}
}

func TestDomainOf(t *testing.T) {
	for _, tt := range []struct {
		url  string
		want string
	}{
		{"https://www.example.com/page", "example.com"},
		{"https://blog.example.com/x?y=1", "blog.example.com"},
		{"not a url", "not a url"},
	} {
		if got := domainOf(tt.url); got != tt.want {
			t.Errorf("domainOf(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
