package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"virtualab/config"
)

// ReviewEvent is posted to REVIEW_WEBHOOK_URL whenever a reviewer decides on content.
type ReviewEvent struct {
	ContentKind string    `json:"content_kind"`
	ContentID   uint      `json:"content_id"`
	Title       string    `json:"title"`
	AuthorID    uint      `json:"author_id"`
	Status      string    `json:"status"`
	DecidedAt   time.Time `json:"decided_at"`
}

var webhookClient = resty.New().
	SetTimeout(10*time.Second).
	SetHeader("Content-Type", "application/json")

// PostReviewEvent delivers event to the configured webhook. It is a no-op when
// no URL is configured.
func PostReviewEvent(ctx context.Context, event ReviewEvent) error {
	url := config.AppConfig.ReviewWebhookURL
	if url == "" {
		return nil
	}

	resp, err := webhookClient.R().SetContext(ctx).SetBody(event).Post(url)
	if err != nil {
		return errors.Wrap(err, "post review webhook")
	}
	if resp.IsError() {
		return errors.Errorf("review webhook answered %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

// NotifyReview sends the webhook in the background and only logs failures.
func NotifyReview(event ReviewEvent) {
	if config.AppConfig.ReviewWebhookURL == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := PostReviewEvent(ctx, event); err != nil {
			log.Printf("[WEBHOOK] %s %d: %v", event.ContentKind, event.ContentID, err)
			return
		}
		log.Printf("[WEBHOOK] %s %d marked %s", event.ContentKind, event.ContentID, event.Status)
	}()
}
