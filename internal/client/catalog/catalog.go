// Package catalog fetches product categories and builds the navigation bar.
package catalog

import (
	"context"
	"fmt"
	"net/url"

	"github.com/yndnr/shopfront-go/internal/client/apiclient"
)

const (
	// DefaultPageSize is used when no limit is given.
	DefaultPageSize = 50
	// MaxPageSize is the largest page the backend serves; larger limits
	// are clamped to it.
	MaxPageSize = 100
)

// Category is a product group with its product count.
type Category struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Product is a catalog entry as listed under a category.
type Product struct {
	ArticleID        string  `json:"article_id"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	PrimaryColor     string  `json:"primary_color"`
	Colors           string  `json:"colors" table:"wide"`
	Group            string  `json:"product_group_name" table:"wide"`
	ImagePath        string  `json:"image_path" table:"-"`
	ColorDescription string  `json:"color_description" table:"-"`
	Description      string  `json:"description" table:"-"`
}

// ProductPage is one page of a category listing.
type ProductPage struct {
	Category string    `json:"category"`
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

// Service reads the catalog through the shared API client.
type Service struct {
	api *apiclient.Client
}

// NewService creates a catalog Service.
func NewService(api *apiclient.Client) *Service {
	return &Service{api: api}
}

// Categories returns all categories in the order the backend ranks them
// (most products first).
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	var out struct {
		Categories []Category `json:"categories"`
	}
	if err := s.api.GetJSON(ctx, "/categories/", &out); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out.Categories, nil
}

// Products lists one page of products in category.
func (s *Service) Products(ctx context.Context, category string, skip, limit int) (*ProductPage, error) {
	if category == "" {
		return nil, fmt.Errorf("list products: category is required")
	}
	if skip < 0 {
		skip = 0
	}
	switch {
	case limit <= 0:
		limit = DefaultPageSize
	case limit > MaxPageSize:
		limit = MaxPageSize
	}

	q := url.Values{}
	q.Set("skip", fmt.Sprint(skip))
	q.Set("limit", fmt.Sprint(limit))
	path := "/categories/" + url.PathEscape(category) + "/products?" + q.Encode()

	var page ProductPage
	if err := s.api.GetJSON(ctx, path, &page); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return &page, nil
}

// CategoryPath is the page path of a category.
func CategoryPath(name string) string {
	return "/categories/" + url.PathEscape(name)
}
