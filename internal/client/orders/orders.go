// Package orders places and lists the signed-in user's orders.
package orders

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/yndnr/shopfront-go/internal/client/apiclient"
	"github.com/yndnr/shopfront-go/internal/telemetry/logger"
)

// Item is one order line. Price is the unit price at order time.
type Item struct {
	ArticleID string  `json:"article_id"`
	Name      string  `json:"name,omitempty"`
	Qty       int     `json:"qty"`
	Price     float64 `json:"price"`
	ImagePath string  `json:"image_path,omitempty" table:"-"`
	Group     string  `json:"product_group_name,omitempty" table:"wide"`
}

// Order is a placed order.
type Order struct {
	ID            int     `json:"order_id"`
	CreatedAt     string  `json:"created_at"`
	TotalAmount   float64 `json:"total_amount"`
	PaymentMethod string  `json:"payment_method"`
	PaymentStatus string  `json:"payment_status"`
	Items         []Item  `json:"items" table:"-"`
}

// Receipt is returned when an order is placed.
type Receipt struct {
	OrderID       int     `json:"order_id"`
	TotalAmount   float64 `json:"total_amount"`
	PaymentMethod string  `json:"payment_method,omitempty"`
	PaymentStatus string  `json:"payment_status,omitempty"`
	CreatedAt     string  `json:"created_at,omitempty"`
	Message       string  `json:"message"`
	Items         []Item  `json:"items" table:"-"`
}

// CheckoutRequest turns the cart into an order.
type CheckoutRequest struct {
	Address       string `json:"address" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"required"`
}

// BuyNowRequest orders a single article without touching the cart.
// Replaying a request with the same ClientOrderID returns the original
// order instead of placing a new one.
type BuyNowRequest struct {
	ArticleID     string `json:"article_id" validate:"required"`
	Qty           int    `json:"qty" validate:"gte=1"`
	ClientOrderID string `json:"client_order_id,omitempty"`
}

// Service calls the order endpoints.
type Service struct {
	api      *apiclient.Client
	validate *validator.Validate
}

// NewService creates an orders Service.
func NewService(api *apiclient.Client) *Service {
	return &Service{api: api, validate: validator.New()}
}

// List returns the user's orders, newest first.
func (s *Service) List(ctx context.Context) ([]Order, error) {
	var out struct {
		Orders []Order `json:"orders"`
	}
	if err := s.api.GetJSON(ctx, "/orders/", &out); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return out.Orders, nil
}

// Get returns one order.
func (s *Service) Get(ctx context.Context, id int) (*Order, error) {
	if id <= 0 {
		return nil, fmt.Errorf("get order: invalid id %d", id)
	}
	var o Order
	if err := s.api.GetJSON(ctx, Path(id), &o); err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return &o, nil
}

// Checkout places an order for everything in the cart. The backend empties
// the cart on success.
func (s *Service) Checkout(ctx context.Context, req CheckoutRequest) (*Receipt, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}
	var r Receipt
	if err := s.api.PostJSON(ctx, "/orders/checkout", req, &r); err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}
	return &r, nil
}

// BuyNow places a single-article order. An empty ClientOrderID is filled
// with a fresh ULID so a retried call cannot order twice; the id used is
// returned on req.
func (s *Service) BuyNow(ctx context.Context, req *BuyNowRequest) (*Receipt, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("buy now: %w", err)
	}
	if req.ClientOrderID == "" {
		req.ClientOrderID = logger.NewRequestID()
	}
	var r Receipt
	if err := s.api.PostJSON(ctx, "/orders/buy_now", req, &r); err != nil {
		return nil, fmt.Errorf("buy now: %w", err)
	}
	return &r, nil
}

// Path is the page path of an order.
func Path(id int) string {
	return fmt.Sprintf("/orders/%d", id)
}
