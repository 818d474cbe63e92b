// Package cart manages the signed-in user's shopping cart.
package cart

import (
	"context"
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"

	"github.com/yndnr/shopfront-go/internal/client/apiclient"
)

// Item is one cart line.
type Item struct {
	ID        int     `json:"id" table:"-"`
	ArticleID string  `json:"article_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImagePath string  `json:"image_path,omitempty" table:"-"`
	Group     string  `json:"product_group_name,omitempty" table:"wide"`
}

// Cart is the cart contents with its total price.
type Cart struct {
	Items []Item  `json:"items"`
	Total float64 `json:"total"`
}

// AddResult is the backend answer to an add. Quantity is the line's new
// quantity, which includes what was already in the cart.
type AddResult struct {
	Message    string `json:"message"`
	CartItemID int    `json:"cart_item_id"`
	Quantity   int    `json:"quantity"`
}

type addRequest struct {
	ArticleID string `json:"article_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// Service calls the cart endpoints. Every call requires a session.
type Service struct {
	api      *apiclient.Client
	validate *validator.Validate
}

// NewService creates a cart Service.
func NewService(api *apiclient.Client) *Service {
	return &Service{api: api, validate: validator.New()}
}

// Get returns the cart.
func (s *Service) Get(ctx context.Context) (*Cart, error) {
	var c Cart
	if err := s.api.GetJSON(ctx, "/cart/", &c); err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return &c, nil
}

// Add puts quantity units of an article in the cart.
func (s *Service) Add(ctx context.Context, articleID string, quantity int) (*AddResult, error) {
	req := addRequest{ArticleID: articleID, Quantity: quantity}
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("add to cart: %w", err)
	}
	var out AddResult
	if err := s.api.PostJSON(ctx, "/cart/add", req, &out); err != nil {
		return nil, fmt.Errorf("add to cart: %w", err)
	}
	return &out, nil
}

// Remove drops the line for articleID.
func (s *Service) Remove(ctx context.Context, articleID string) error {
	if err := s.validate.Var(articleID, "required"); err != nil {
		return fmt.Errorf("remove from cart: %w", err)
	}
	if _, err := s.api.Post(ctx, "/cart/remove/"+url.PathEscape(articleID), nil); err != nil {
		return fmt.Errorf("remove from cart: %w", err)
	}
	return nil
}

// Clear empties the cart and returns the number of lines removed.
func (s *Service) Clear(ctx context.Context) (int, error) {
	var out struct {
		ItemsRemoved int `json:"items_removed"`
	}
	if err := s.api.PostJSON(ctx, "/cart/clear", nil, &out); err != nil {
		return 0, fmt.Errorf("clear cart: %w", err)
	}
	return out.ItemsRemoved, nil
}
