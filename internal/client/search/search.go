// Package search runs product searches and prefix suggestions.
package search

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yndnr/shopfront-go/internal/client/apiclient"
)

const (
	// DefaultLimit and MaxLimit bound search result pages.
	DefaultLimit = 50
	MaxLimit     = 100

	// DefaultSuggestions and MaxSuggestions bound suggestion lists.
	DefaultSuggestions = 5
	MaxSuggestions     = 10
)

// Product is a search hit. MatchedColor is set when the query named a
// color the product carries.
type Product struct {
	ArticleID        string  `json:"article_id"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	PrimaryColor     string  `json:"primary_color"`
	MatchedColor     string  `json:"matched_color,omitempty" table:"wide"`
	Group            string  `json:"product_group_name,omitempty" table:"wide"`
	Colors           string  `json:"colors" table:"wide"`
	DepartmentNo     int     `json:"department_no,omitempty" table:"-"`
	ColorDescription string  `json:"color_description" table:"-"`
	Description      string  `json:"description,omitempty" table:"-"`
	ImagePath        string  `json:"image_path,omitempty" table:"-"`
}

// Results is one search answer. SearchType is "ai" or "basic".
type Results struct {
	Query            string    `json:"query"`
	InterpretedQuery string    `json:"interpreted_query,omitempty"`
	Products         []Product `json:"products"`
	Total            int       `json:"total"`
	SearchType       string    `json:"search_type"`
	MatchedColor     string    `json:"matched_color,omitempty"`
}

// Query is a search request. Basic disables natural-language
// interpretation on the backend.
type Query struct {
	Text  string `validate:"required"`
	Limit int
	Basic bool
}

// Service calls the search endpoints. Neither endpoint needs a session.
type Service struct {
	api      *apiclient.Client
	validate *validator.Validate
}

// NewService creates a search Service.
func NewService(api *apiclient.Client) *Service {
	return &Service{api: api, validate: validator.New()}
}

// Search runs q.
func (s *Service) Search(ctx context.Context, q Query) (*Results, error) {
	q.Text = strings.TrimSpace(q.Text)
	if err := s.validate.Struct(q); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	v := url.Values{}
	v.Set("q", q.Text)
	v.Set("limit", strconv.Itoa(clamp(q.Limit, DefaultLimit, MaxLimit)))
	v.Set("use_ai", strconv.FormatBool(!q.Basic))

	var r Results
	if err := s.api.GetJSON(ctx, "/search/?"+v.Encode(), &r); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return &r, nil
}

// Suggest returns product names starting with prefix. The prefix needs at
// least two characters.
func (s *Service) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	prefix = strings.TrimSpace(prefix)
	if err := s.validate.Var(prefix, "min=2"); err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}

	v := url.Values{}
	v.Set("q", prefix)
	v.Set("limit", strconv.Itoa(clamp(limit, DefaultSuggestions, MaxSuggestions)))

	var out struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := s.api.GetJSON(ctx, "/search/suggestions?"+v.Encode(), &out); err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	return out.Suggestions, nil
}

func clamp(n, def, ceil int) int {
	switch {
	case n <= 0:
		return def
	case n > ceil:
		return ceil
	}
	return n
}
