package catalog

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yndnr/shopfront-go/internal/client/tokenstore"
)

// DefaultNavCategories is how many categories the bar shows.
const DefaultNavCategories = 6

// NavItem is one link in the navigation bar.
type NavItem struct {
	Label  string `json:"label"`
	Path   string `json:"path"`
	Active bool   `json:"active"`
}

// NavBar is the rendered state of the navigation bar.
type NavBar struct {
	Items         []NavItem `json:"items"`
	Authenticated bool      `json:"authenticated"`
	// Degraded is set when categories could not be loaded; the bar is
	// still usable without them.
	Degraded bool `json:"degraded,omitempty"`
}

var (
	memberLinks = []NavItem{
		{Label: "Cart", Path: "/cart"},
		{Label: "Wishlist", Path: "/wishlist"},
		{Label: "Orders", Path: "/orders"},
		{Label: "For You", Path: "/foryou"},
		{Label: "Account", Path: "/account"},
		{Label: "Logout", Path: "/logout"},
	}
	guestLinks = []NavItem{
		{Label: "Login", Path: "/login"},
		{Label: "Sign up", Path: "/signup"},
	}
)

// NavBuilder assembles the navigation bar.
type NavBuilder struct {
	catalog       *Service
	tokens        tokenstore.Store
	maxCategories int
}

// NewNavBuilder creates a NavBuilder showing up to maxCategories
// categories (DefaultNavCategories when <= 0).
func NewNavBuilder(catalog *Service, tokens tokenstore.Store, maxCategories int) *NavBuilder {
	if maxCategories <= 0 {
		maxCategories = DefaultNavCategories
	}
	return &NavBuilder{catalog: catalog, tokens: tokens, maxCategories: maxCategories}
}

// Build fetches categories and returns the bar for currentPath. A failed
// category fetch degrades the bar instead of failing it; the error is
// returned alongside so callers can report it.
func (b *NavBuilder) Build(ctx context.Context, currentPath string) (*NavBar, error) {
	bar := &NavBar{}
	bar.Items = append(bar.Items, NavItem{Label: "Home", Path: "/"})

	categories, fetchErr := b.catalog.Categories(ctx)
	if fetchErr != nil {
		bar.Degraded = true
	}
	for i, c := range categories {
		if i == b.maxCategories {
			break
		}
		bar.Items = append(bar.Items, NavItem{Label: c.Name, Path: CategoryPath(c.Name)})
	}

	// Read after the fetch: a 401 during the fetch has already cleared it.
	if b.tokens != nil {
		token, err := b.tokens.Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("navbar: read session: %w", err)
		}
		bar.Authenticated = token != ""
	}

	if bar.Authenticated {
		bar.Items = append(bar.Items, memberLinks...)
	} else {
		bar.Items = append(bar.Items, guestLinks...)
	}

	for i := range bar.Items {
		bar.Items[i].Active = isActive(bar.Items[i].Path, currentPath)
	}
	return bar, fetchErr
}

func isActive(itemPath, current string) bool {
	if itemPath == "/" {
		return current == "/" || current == ""
	}
	return current == itemPath || strings.HasPrefix(current, itemPath+"/")
}

// Render writes the bar as a single line, the active item in brackets.
func (n *NavBar) Render(w io.Writer) error {
	labels := make([]string, 0, len(n.Items))
	for _, item := range n.Items {
		if item.Active {
			labels = append(labels, "["+item.Label+"]")
			continue
		}
		labels = append(labels, item.Label)
	}
	_, err := fmt.Fprintln(w, strings.Join(labels, " | "))
	return err
}
