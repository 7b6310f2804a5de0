package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tomnomnom/linkheader"
)

// EntityType enumerates the resource kinds the keyed REST accessor can
// address. Unknown kinds are rejected at the boundary instead of being
// resolved dynamically.
type EntityType string

const (
	EntityProduct        EntityType = "Product"
	EntityProductVariant EntityType = "ProductVariant"
	EntityCustomer       EntityType = "Customer"
	EntityOrder          EntityType = "Order"
	EntityWebhook        EntityType = "Webhook"
)

type resource struct {
	path     string
	singular string
	plural   string
}

var resources = map[EntityType]resource{
	EntityProduct:        {"products", "product", "products"},
	EntityProductVariant: {"variants", "variant", "variants"},
	EntityCustomer:       {"customers", "customer", "customers"},
	EntityOrder:          {"orders", "order", "orders"},
	EntityWebhook:        {"webhooks", "webhook", "webhooks"},
}

// ParseEntityType maps a runtime string like "product" or "ProductVariant"
// onto the enumeration, rejecting anything else with a validation error.
func ParseEntityType(s string) (EntityType, error) {
	for et := range resources {
		if strings.EqualFold(s, string(et)) {
			return et, nil
		}
	}
	return "", statusErrorf(StatusInvalidInput, "unsupported entity type %q", s)
}

// PageParams is the opaque next-page parameter bag returned by a listing
// call. Empty means last page. It is consumed by the next listing call and
// never retained as accessor state.
type PageParams url.Values

func (p PageParams) Empty() bool {
	return len(p) == 0
}

// Credentials selects between access-token and basic api-key/password auth,
// mirroring the two Admin API credential shapes.
type Credentials struct {
	AccessToken string
	APIKey      string
	Password    string
}

// Client is the keyed REST accessor over the Admin API.
type Client struct {
	baseURL    string
	creds      Credentials
	httpClient *http.Client
}

func NewClient(baseURL string, creds Credentials, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		creds:      creds,
		httpClient: httpClient,
	}
}

// GetEntity fetches a single record and decodes the unwrapped payload into out.
func (c *Client) GetEntity(ctx context.Context, et EntityType, id int64, params url.Values, out interface{}) error {
	res, err := resourceFor(et)
	if err != nil {
		return err
	}
	body, _, err := c.get(ctx, fmt.Sprintf("%s/%d.json", res.path, id), params)
	if err != nil {
		return err
	}
	return unwrap(body, res.singular, out)
}

// ListEntities fetches a listing page and returns the next-page parameters
// alongside the decoded records.
func (c *Client) ListEntities(ctx context.Context, et EntityType, params url.Values, out interface{}) (PageParams, error) {
	res, err := resourceFor(et)
	if err != nil {
		return nil, err
	}
	body, next, err := c.get(ctx, res.path+".json", params)
	if err != nil {
		return nil, err
	}
	if err := unwrap(body, res.plural, out); err != nil {
		return nil, err
	}
	return next, nil
}

// UpdateEntity PUTs fields wrapped under the singular resource key. The
// updated record is decoded into out when out is non-nil.
func (c *Client) UpdateEntity(ctx context.Context, et EntityType, id int64, fields interface{}, out interface{}) error {
	res, err := resourceFor(et)
	if err != nil {
		return err
	}
	body, err := c.send(ctx, http.MethodPut, fmt.Sprintf("%s/%d.json", res.path, id), map[string]interface{}{res.singular: fields})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return unwrap(body, res.singular, out)
}

func (c *Client) CreateEntity(ctx context.Context, et EntityType, fields interface{}, out interface{}) error {
	res, err := resourceFor(et)
	if err != nil {
		return err
	}
	body, err := c.send(ctx, http.MethodPost, res.path+".json", map[string]interface{}{res.singular: fields})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return unwrap(body, res.singular, out)
}

func (c *Client) DeleteEntity(ctx context.Context, et EntityType, id int64) error {
	res, err := resourceFor(et)
	if err != nil {
		return err
	}
	_, err = c.send(ctx, http.MethodDelete, fmt.Sprintf("%s/%d.json", res.path, id), nil)
	return err
}

// DeleteEntities removes a batch of records of one kind, stopping at the
// first failure.
func (c *Client) DeleteEntities(ctx context.Context, et EntityType, ids []int64) error {
	for _, id := range ids {
		if err := c.DeleteEntity(ctx, et, id); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) CountEntities(ctx context.Context, et EntityType, params url.Values) (int, error) {
	res, err := resourceFor(et)
	if err != nil {
		return 0, err
	}
	body, _, err := c.get(ctx, res.path+"/count.json", params)
	if err != nil {
		return 0, err
	}
	var counted struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(body, &counted); err != nil {
		return 0, fmt.Errorf("failed to decode count response: %w", err)
	}
	return counted.Count, nil
}

// EntityTags fetches only the tags field of a record.
func (c *Client) EntityTags(ctx context.Context, et EntityType, id int64) (string, error) {
	res, err := resourceFor(et)
	if err != nil {
		return "", err
	}
	body, _, err := c.get(ctx, fmt.Sprintf("%s/%d.json", res.path, id), url.Values{"fields": {"tags"}})
	if err != nil {
		return "", err
	}
	var tagged struct {
		Tags string `json:"tags"`
	}
	if err := unwrap(body, res.singular, &tagged); err != nil {
		return "", err
	}
	return tagged.Tags, nil
}

// UpdateEntityTags writes back the tags field through a full-entity update.
func (c *Client) UpdateEntityTags(ctx context.Context, et EntityType, id int64, tags string) error {
	return c.UpdateEntity(ctx, et, id, map[string]interface{}{"id": id, "tags": tags}, nil)
}

// ListMetafields reads the metafields of a record of any enumerated kind.
func (c *Client) ListMetafields(ctx context.Context, et EntityType, id int64, params url.Values) ([]Metafield, error) {
	res, err := resourceFor(et)
	if err != nil {
		return nil, err
	}
	body, _, err := c.get(ctx, fmt.Sprintf("%s/%d/metafields.json", res.path, id), params)
	if err != nil {
		return nil, err
	}
	var metafields []Metafield
	if err := unwrap(body, "metafields", &metafields); err != nil {
		return nil, err
	}
	return metafields, nil
}

func (c *Client) CreateMetafield(ctx context.Context, et EntityType, id int64, metafield Metafield) (*Metafield, error) {
	res, err := resourceFor(et)
	if err != nil {
		return nil, err
	}
	body, err := c.send(ctx, http.MethodPost, fmt.Sprintf("%s/%d/metafields.json", res.path, id), map[string]interface{}{"metafield": metafield})
	if err != nil {
		return nil, err
	}
	var created Metafield
	if err := unwrap(body, "metafield", &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// AdjustInventoryLevel issues a relative stock mutation.
func (c *Client) AdjustInventoryLevel(ctx context.Context, adj InventoryAdjustment) error {
	_, err := c.send(ctx, http.MethodPost, "inventory_levels/adjust.json", adj)
	return err
}

// SetInventoryLevel issues an absolute stock mutation.
func (c *Client) SetInventoryLevel(ctx context.Context, set InventoryLevelSet) error {
	_, err := c.send(ctx, http.MethodPost, "inventory_levels/set.json", set)
	return err
}

// UpdateInventoryItem PUTs fields on an inventory item.
func (c *Client) UpdateInventoryItem(ctx context.Context, inventoryItemID int64, fields interface{}) error {
	_, err := c.send(ctx, http.MethodPut, fmt.Sprintf("inventory_items/%d.json", inventoryItemID), map[string]interface{}{"inventory_item": fields})
	return err
}

func resourceFor(et EntityType) (resource, error) {
	res, ok := resources[et]
	if !ok {
		return resource{}, statusErrorf(StatusInvalidInput, "unsupported entity type %q", et)
	}
	return res, nil
}

func unwrap(body []byte, key string, out interface{}) error {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	raw, ok := envelope[key]
	if !ok {
		return fmt.Errorf("response missing %q payload", key)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", key, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, PageParams, error) {
	endpoint := c.baseURL + "/" + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, fmt.Errorf("API request failed: %d - %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nextPageParams(resp.Header.Get("Link")), nil
}

func (c *Client) send(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API request failed: %d - %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.creds.AccessToken != "" {
		req.Header.Set("X-Shopify-Access-Token", c.creds.AccessToken)
		return
	}
	req.SetBasicAuth(c.creds.APIKey, c.creds.Password)
}

// nextPageParams extracts the rel="next" cursor from a listing response's
// Link header into the parameter bag for the following call.
func nextPageParams(link string) PageParams {
	if link == "" {
		return nil
	}
	for _, l := range linkheader.Parse(link).FilterByRel("next") {
		u, err := url.Parse(l.URL)
		if err != nil {
			continue
		}
		if params := u.Query(); len(params) > 0 {
			return PageParams(params)
		}
	}
	return nil
}
