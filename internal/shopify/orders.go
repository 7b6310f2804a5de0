package shopify

import (
	"context"
	"net/url"
)

// OrderService layers order operations over the REST accessor and the
// resolver's name lookup.
type OrderService struct {
	rest     *Client
	resolver *Resolver
}

func NewOrderService(rest *Client, resolver *Resolver) *OrderService {
	return &OrderService{
		rest:     rest,
		resolver: resolver,
	}
}

func (s *OrderService) GetOrder(ctx context.Context, id int64, params url.Values) (*Order, error) {
	var order Order
	if err := s.rest.GetEntity(ctx, EntityOrder, id, params, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, params url.Values) ([]Order, PageParams, error) {
	var orders []Order
	next, err := s.rest.ListEntities(ctx, EntityOrder, params, &orders)
	if err != nil {
		return nil, nil, err
	}
	return orders, next, nil
}

func (s *OrderService) CountOrders(ctx context.Context, params url.Values) (int, error) {
	return s.rest.CountEntities(ctx, EntityOrder, params)
}

func (s *OrderService) OrderIDByName(ctx context.Context, name string) (string, error) {
	return s.resolver.OrderIDByName(ctx, name)
}
