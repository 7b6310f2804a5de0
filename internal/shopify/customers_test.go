package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shopsvc/internal/logger"
)

func newCustomerTestService(t *testing.T, handler http.Handler) *CustomerService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	rest := NewClient(server.URL, Credentials{AccessToken: "shpat_test"}, server.Client())
	return NewCustomerService(rest, logger.New("error"))
}

func TestCustomerExistsByEmail(t *testing.T) {
	var gotQuery string
	svc := newCustomerTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"customers": [{"id": 7}]}`))
	}))

	exists, err := svc.CustomerExists(context.Background(), "email", "jo@example.com")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if !exists {
		t.Error("expected customer to exist")
	}
	if gotQuery != "email=jo%40example.com&fields=id" {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestCustomerExistsByIDMisses(t *testing.T) {
	svc := newCustomerTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("ids") != "7" {
			t.Errorf("ids param = %q", r.URL.Query().Get("ids"))
		}
		_, _ = w.Write([]byte(`{"customers": []}`))
	}))

	exists, err := svc.CustomerExists(context.Background(), "id", "7")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if exists {
		t.Error("expected no customer")
	}
}

func TestCustomerExistsRejectsUnknownLabel(t *testing.T) {
	svc := newCustomerTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))

	if _, err := svc.CustomerExists(context.Background(), "phone", "123"); !IsInvalidInput(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestMergeCustomers(t *testing.T) {
	var updateBody map[string]json.RawMessage
	var deletedPath string
	svc := newCustomerTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			_ = json.NewDecoder(r.Body).Decode(&updateBody)
			_, _ = w.Write([]byte(`{"customer": {"id": 1, "tags": "vip,newsletter", "accepts_marketing": true}}`))
		case http.MethodDelete:
			deletedPath = r.URL.Path
			_, _ = w.Write([]byte(`{}`))
		}
	}))

	origin := Customer{ID: 1, Tags: "vip"}
	duplicate := Customer{ID: 2, Tags: "newsletter", AcceptsMarketing: true}

	merged, err := svc.MergeCustomers(context.Background(), origin, duplicate, "")
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if merged.ID != 1 {
		t.Errorf("merged id = %d, want origin", merged.ID)
	}

	var payload struct {
		Tags             string `json:"tags"`
		AcceptsMarketing bool   `json:"accepts_marketing"`
	}
	if err := json.Unmarshal(updateBody["customer"], &payload); err != nil {
		t.Fatalf("decode update payload: %v", err)
	}
	if payload.Tags != "vip,newsletter" {
		t.Errorf("merged tags = %q, want bare-comma concatenation", payload.Tags)
	}
	if !payload.AcceptsMarketing {
		t.Error("accepts_marketing not OR-merged")
	}
	if deletedPath != "/customers/2.json" {
		t.Errorf("deleted path = %q, want the duplicate", deletedPath)
	}
}

func TestMergeCustomersFieldSelection(t *testing.T) {
	var updateBody map[string]json.RawMessage
	svc := newCustomerTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			_ = json.NewDecoder(r.Body).Decode(&updateBody)
		}
		_, _ = w.Write([]byte(`{"customer": {"id": 1}}`))
	}))

	origin := Customer{ID: 1, Tags: "vip"}
	duplicate := Customer{ID: 2, Tags: "newsletter", AcceptsMarketing: true}

	if _, err := svc.MergeCustomers(context.Background(), origin, duplicate, "tags"); err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(updateBody["customer"], &fields); err != nil {
		t.Fatalf("decode update payload: %v", err)
	}
	if _, ok := fields["accepts_marketing"]; ok {
		t.Error("accepts_marketing merged despite field selection")
	}
	if fields["tags"] != "vip,newsletter" {
		t.Errorf("tags = %v", fields["tags"])
	}
}
