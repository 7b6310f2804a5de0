package shopify

import (
	"context"
	"strings"

	"shopsvc/internal/logger"
)

// WebhookService manages webhook subscriptions over the REST accessor.
type WebhookService struct {
	rest   *Client
	logger *logger.Logger
}

func NewWebhookService(rest *Client, log *logger.Logger) *WebhookService {
	return &WebhookService{
		rest:   rest,
		logger: log,
	}
}

// EnsureWebhook returns the existing subscription for topic, or creates one
// pointing at callbackURL. Plain-http callbacks are upgraded to https before
// registration.
func (s *WebhookService) EnsureWebhook(ctx context.Context, callbackURL, topic string) (*Webhook, error) {
	var hooks []Webhook
	if _, err := s.rest.ListEntities(ctx, EntityWebhook, nil, &hooks); err != nil {
		return nil, err
	}
	for i := range hooks {
		if hooks[i].Topic == topic {
			return &hooks[i], nil
		}
	}

	var created Webhook
	err := s.rest.CreateEntity(ctx, EntityWebhook, map[string]interface{}{
		"address": strings.ReplaceAll(callbackURL, "http://", "https://"),
		"topic":   topic,
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteWebhook removes a subscription. Accessor failures are logged and
// swallowed; only a missing id is an error.
func (s *WebhookService) DeleteWebhook(ctx context.Context, id int64) error {
	if id == 0 {
		return statusErrorf(StatusInvalidInput, "webhook id is mandatory")
	}

	if err := s.rest.DeleteEntity(ctx, EntityWebhook, id); err != nil {
		s.logger.Error("Failed to delete webhook %d: %v", id, err)
	}
	return nil
}
