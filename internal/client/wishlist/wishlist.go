// Package wishlist manages the signed-in user's wishlist.
package wishlist

import (
	"context"
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"

	"github.com/yndnr/shopfront-go/internal/client/apiclient"
)

// Item is a saved product.
type Item struct {
	ID        int     `json:"id" table:"-"`
	ArticleID string  `json:"article_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImagePath string  `json:"image_path,omitempty" table:"-"`
	Group     string  `json:"product_group_name,omitempty" table:"wide"`
}

// AddResult is the backend answer to an add. Adding a saved article is
// not an error; Message says so.
type AddResult struct {
	Message string `json:"message"`
	ItemID  int    `json:"wishlist_item_id"`
}

// Service calls the wishlist endpoints.
type Service struct {
	api      *apiclient.Client
	validate *validator.Validate
}

// NewService creates a wishlist Service.
func NewService(api *apiclient.Client) *Service {
	return &Service{api: api, validate: validator.New()}
}

// Items returns the saved products.
func (s *Service) Items(ctx context.Context) ([]Item, error) {
	var out struct {
		Items []Item `json:"items"`
	}
	if err := s.api.GetJSON(ctx, "/wishlist/", &out); err != nil {
		return nil, fmt.Errorf("get wishlist: %w", err)
	}
	return out.Items, nil
}

// Add saves articleID.
func (s *Service) Add(ctx context.Context, articleID string) (*AddResult, error) {
	if err := s.validate.Var(articleID, "required"); err != nil {
		return nil, fmt.Errorf("add to wishlist: %w", err)
	}
	var out AddResult
	body := map[string]string{"article_id": articleID}
	if err := s.api.PostJSON(ctx, "/wishlist/add", body, &out); err != nil {
		return nil, fmt.Errorf("add to wishlist: %w", err)
	}
	return &out, nil
}

// Remove drops articleID.
func (s *Service) Remove(ctx context.Context, articleID string) error {
	if err := s.validate.Var(articleID, "required"); err != nil {
		return fmt.Errorf("remove from wishlist: %w", err)
	}
	if _, err := s.api.Post(ctx, "/wishlist/remove/"+url.PathEscape(articleID), nil); err != nil {
		return fmt.Errorf("remove from wishlist: %w", err)
	}
	return nil
}
