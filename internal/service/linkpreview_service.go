package service

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/postpilothq/postpilot/internal/transfer"
	"golang.org/x/net/html"
)

// linkPreviewTimeout is the hard upper bound on fetching the target
// page. On timeout the caller gets a degraded preview, never an error.
const linkPreviewTimeout = 5 * time.Second

type LinkPreviewService interface {
	FetchPreview(ctx context.Context, rawURL string) *transfer.LinkPreview
}

type linkPreviewService struct {
	client *http.Client
}

func NewLinkPreviewService(client *http.Client) LinkPreviewService {
	if client == nil {
		client = &http.Client{Timeout: linkPreviewTimeout}
	}
	return &linkPreviewService{client: client}
}

// FetchPreview extracts Open Graph metadata (falling back to <title>)
// from the target page. A broken or slow target degrades to a preview
// built from the URL itself with the error flag set; this path must not
// surface an error for a bad external page.
func (s *linkPreviewService) FetchPreview(ctx context.Context, rawURL string) *transfer.LinkPreview {
	preview := &transfer.LinkPreview{
		URL:    rawURL,
		Title:  rawURL,
		Domain: domainOf(rawURL),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		slog.Info("link preview: bad url: " + err.Error())
		preview.Error = true
		return preview
	}
	req.Header.Set("User-Agent", "PostPilotBot/1.0 (+link-preview)")

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info("link preview: fetch failed: " + err.Error())
		preview.Error = true
		return preview
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Info("link preview: target returned " + resp.Status)
		preview.Error = true
		return preview
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		slog.Info("link preview: parse failed: " + err.Error())
		preview.Error = true
		return preview
	}

	meta := collectMeta(doc)

	if v := firstNonEmpty(meta["og:title"], meta["twitter:title"], meta["_title"]); v != "" {
		preview.Title = v
	}
	preview.Description = firstNonEmpty(meta["og:description"], meta["twitter:description"], meta["description"])
	preview.Image = firstNonEmpty(meta["og:image"], meta["twitter:image"])

	return preview
}

// collectMeta walks the document once and gathers og:/twitter:/name
// meta tags plus the <title> text (stored under "_title").
func collectMeta(doc *html.Node) map[string]string {
	meta := make(map[string]string)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if n.FirstChild != nil && meta["_title"] == "" {
					meta["_title"] = strings.TrimSpace(n.FirstChild.Data)
				}
			case "meta":
				var key, content string
				for _, attr := range n.Attr {
					switch attr.Key {
					case "property", "name":
						key = strings.ToLower(attr.Val)
					case "content":
						content = attr.Val
					}
				}
				if key != "" && content != "" && meta[key] == "" {
					meta[key] = strings.TrimSpace(content)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return meta
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return strings.TrimPrefix(u.Host, "www.")
}
