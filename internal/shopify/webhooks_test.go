package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shopsvc/internal/logger"
)

func newWebhookTestServer(t *testing.T, existing []Webhook, deleteStatus int) (*WebhookService, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{method: r.Method, path: r.URL.Path}
		if r.Body != nil {
			var body map[string]json.RawMessage
			_ = json.NewDecoder(r.Body).Decode(&body)
			rec.body = body
		}
		requests = append(requests, rec)

		switch {
		case r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"webhooks": existing})
		case r.Method == http.MethodPost:
			var payload struct {
				Webhook Webhook `json:"webhook"`
			}
			raw, _ := json.Marshal(rec.body)
			_ = json.Unmarshal(raw, &payload)
			payload.Webhook.ID = 99
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"webhook": payload.Webhook})
		case r.Method == http.MethodDelete:
			w.WriteHeader(deleteStatus)
			_, _ = w.Write([]byte(`{}`))
		}
	}))
	t.Cleanup(server.Close)

	rest := NewClient(server.URL, Credentials{AccessToken: "shpat_test"}, server.Client())
	return NewWebhookService(rest, logger.New("error")), &requests
}

func TestEnsureWebhookReturnsExisting(t *testing.T) {
	existing := []Webhook{
		{ID: 1, Topic: "orders/create", Address: "https://app.example.com/orders"},
		{ID: 2, Topic: "products/update", Address: "https://app.example.com/products"},
	}
	svc, requests := newWebhookTestServer(t, existing, http.StatusOK)

	hook, err := svc.EnsureWebhook(context.Background(), "https://app.example.com/products", "products/update")
	if err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	if hook.ID != 2 {
		t.Errorf("hook id = %d, want existing subscription 2", hook.ID)
	}
	for _, req := range *requests {
		if req.method == http.MethodPost {
			t.Error("create was issued despite existing subscription")
		}
	}
}

func TestEnsureWebhookCreatesAndUpgradesScheme(t *testing.T) {
	svc, requests := newWebhookTestServer(t, nil, http.StatusOK)

	hook, err := svc.EnsureWebhook(context.Background(), "http://app.example.com/orders", "orders/create")
	if err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	if hook.ID != 99 {
		t.Errorf("hook id = %d, want created subscription", hook.ID)
	}

	var created map[string]json.RawMessage
	for _, req := range *requests {
		if req.method == http.MethodPost {
			created = req.body
		}
	}
	if created == nil {
		t.Fatal("no create request was issued")
	}
	var payload struct {
		Address string `json:"address"`
		Topic   string `json:"topic"`
	}
	if err := json.Unmarshal(created["webhook"], &payload); err != nil {
		t.Fatalf("decode create payload: %v", err)
	}
	if payload.Address != "https://app.example.com/orders" {
		t.Errorf("address = %q, want https scheme", payload.Address)
	}
	if payload.Topic != "orders/create" {
		t.Errorf("topic = %q", payload.Topic)
	}
}

func TestDeleteWebhookRequiresID(t *testing.T) {
	svc, requests := newWebhookTestServer(t, nil, http.StatusOK)

	if err := svc.DeleteWebhook(context.Background(), 0); !IsInvalidInput(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(*requests) != 0 {
		t.Error("delete request was issued for zero id")
	}
}

func TestDeleteWebhookSwallowsAccessorFailure(t *testing.T) {
	svc, requests := newWebhookTestServer(t, nil, http.StatusInternalServerError)

	if err := svc.DeleteWebhook(context.Background(), 5); err != nil {
		t.Fatalf("expected swallowed failure, got %v", err)
	}
	if len(*requests) != 1 {
		t.Errorf("delete calls = %d, want 1", len(*requests))
	}
}
