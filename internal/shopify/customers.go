package shopify

import (
	"context"
	"net/url"
	"strings"

	"shopsvc/internal/logger"
)

// CustomerService layers customer operations over the REST accessor.
type CustomerService struct {
	rest   *Client
	logger *logger.Logger
}

func NewCustomerService(rest *Client, log *logger.Logger) *CustomerService {
	return &CustomerService{
		rest:   rest,
		logger: log,
	}
}

func (s *CustomerService) ListCustomers(ctx context.Context, params url.Values) ([]Customer, PageParams, error) {
	var customers []Customer
	next, err := s.rest.ListEntities(ctx, EntityCustomer, params, &customers)
	if err != nil {
		return nil, nil, err
	}
	return customers, next, nil
}

// CustomerExists checks for a customer by "id" or "email"; any other label
// is rejected before the network call.
func (s *CustomerService) CustomerExists(ctx context.Context, label, value string) (bool, error) {
	var params url.Values
	switch label {
	case "id":
		params = url.Values{"ids": {value}, "fields": {"id"}}
	case "email":
		params = url.Values{"email": {value}, "fields": {"id"}}
	default:
		return false, statusErrorf(StatusInvalidInput, "only `id` or `email` are available as lookup labels, got %q", label)
	}

	var customers []Customer
	if _, err := s.rest.ListEntities(ctx, EntityCustomer, params, &customers); err != nil {
		return false, err
	}
	return len(customers) >= 1, nil
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id int64, fields interface{}) (*Customer, error) {
	var customer Customer
	if err := s.rest.UpdateEntity(ctx, EntityCustomer, id, fields, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// MergeCustomers folds a duplicate customer into the origin one and deletes
// the duplicate. fields selects what gets merged: tags are concatenated with
// a bare comma, accepts_marketing is OR-merged.
func (s *CustomerService) MergeCustomers(ctx context.Context, origin, duplicate Customer, fields string) (*Customer, error) {
	if fields == "" {
		fields = "tags,accepts_marketing"
	}

	updateData := map[string]interface{}{}
	if strings.Contains(fields, "tags") {
		updateData["tags"] = origin.Tags + "," + duplicate.Tags
	}
	if strings.Contains(fields, "accepts_marketing") && duplicate.AcceptsMarketing {
		updateData["accepts_marketing"] = true
	}

	customer, err := s.UpdateCustomer(ctx, origin.ID, updateData)
	if err != nil {
		return nil, err
	}

	if err := s.rest.DeleteEntity(ctx, EntityCustomer, duplicate.ID); err != nil {
		return nil, err
	}

	s.logger.Info("Merged customer %d into %d", duplicate.ID, origin.ID)
	return customer, nil
}
