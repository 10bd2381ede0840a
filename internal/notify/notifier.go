// Package notify delivers best-effort alerts when sessions change. Delivery
// is fire-and-forget: a notifier may silently drop a notification and must
// never fail or block the mutation that triggered it.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Notification carries the alert payload. Tag deduplicates alerts about the
// same session on the receiving side.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Tag   string `json:"tag"`
}

// Notifier delivers a notification. Implementations swallow their own errors.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Nop discards every notification.
type Nop struct{}

func (Nop) Notify(context.Context, Notification) {}

// LogNotifier records notifications on the application log. It stands in for
// a desktop alert surface when no delivery channel is configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier constructs a log-backed notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, notification Notification) {
	n.logger.InfoContext(ctx, "notification",
		"title", notification.Title,
		"body", notification.Body,
		"tag", notification.Tag,
	)
}

// WebhookNotifier posts notifications as JSON to a configured URL. The post
// runs detached from the caller with its own timeout; failures are logged
// and dropped.
type WebhookNotifier struct {
	url     string
	client  *http.Client
	logger  *slog.Logger
	timeout time.Duration
}

// NewWebhookNotifier constructs a webhook notifier for the given URL.
func NewWebhookNotifier(url string, logger *slog.Logger) *WebhookNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebhookNotifier{
		url:     url,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
		timeout: 10 * time.Second,
	}
}

func (n *WebhookNotifier) Notify(ctx context.Context, notification Notification) {
	payload, err := json.Marshal(notification)
	if err != nil {
		n.logger.ErrorContext(ctx, "failed to encode notification", "error", err, "tag", notification.Tag)
		return
	}

	go func() {
		// Detached from the request context: the mutation has already
		// completed and must not be held up by delivery.
		postCtx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(postCtx, http.MethodPost, n.url, bytes.NewReader(payload))
		if err != nil {
			n.logger.Error("failed to build notification request", "error", err, "tag", notification.Tag)
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := n.client.Do(req)
		if err != nil {
			n.logger.Error("notification delivery failed", "error", err, "tag", notification.Tag)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 300 {
			n.logger.Error("notification rejected", "status", resp.StatusCode, "tag", notification.Tag)
		}
	}()
}

// Multi fans a notification out to several notifiers.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notification) {
	for _, notifier := range m {
		if notifier != nil {
			notifier.Notify(ctx, n)
		}
	}
}
