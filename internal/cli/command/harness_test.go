package command

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// backend is a fake storefront API.
type backend struct {
	mu         sync.Mutex
	validToken string
	healthBody string
	reloadAuth []string
	cart       map[string]int
	buyKeys    []string
}

func (b *backend) authed(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("Authorization") == "Bearer "+b.validToken {
		return true
	}
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	return false
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/categories/":
		_, _ = w.Write([]byte(`{"categories":[{"name":"Garment Upper body","count":120},{"name":"Shoes","count":12},{"name":"Accessories","count":3}]}`))
	case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/products"):
		cat := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/categories/"), "/products")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"category": cat,
			"products": []map[string]any{{"article_id": "0108775015", "name": "Strap top", "price": 8.25}},
			"total":    1,
			"skip":     0,
			"limit":    20,
		})
	case r.Method == http.MethodPost && r.URL.Path == "/auth/login":
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Incorrect email or password"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"` + b.validToken + `","token_type":"bearer"}`))
	case r.Method == http.MethodGet && r.URL.Path == "/auth/me":
		if !b.authed(w, r) {
			return
		}
		_, _ = w.Write([]byte(`{"id":7,"email":"ada@example.com","name":"Ada"}`))
	case strings.HasPrefix(r.URL.Path, "/cart/") || strings.HasPrefix(r.URL.Path, "/orders/"):
		if b.authed(w, r) {
			b.serveShop(w, r)
		}
	case r.Method == http.MethodGet && r.URL.Path == "/search/":
		_ = json.NewEncoder(w).Encode(map[string]any{
			"query":       r.URL.Query().Get("q"),
			"products":    []map[string]any{{"article_id": "0108775015", "name": "Strap top", "price": 8.25, "primary_color": "Black", "colors": "Black"}},
			"total":       1,
			"search_type": map[bool]string{true: "ai", false: "basic"}[r.URL.Query().Get("use_ai") == "true"],
		})
	case r.Method == http.MethodPost && r.URL.Path == "/recommend/reload":
		b.reloadAuth = append(b.reloadAuth, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"status":"success","message":"Model reloaded","model_path":"/models/als.pkl"}`))
	case r.Method == http.MethodGet && r.URL.Path == "/recommend/health":
		_, _ = w.Write([]byte(b.healthBody))
	default:
		http.NotFound(w, r)
	}
}

// serveShop handles the cart and order routes for an authenticated caller.
func (b *backend) serveShop(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/cart/":
		items := []map[string]any{}
		total := 0.0
		for id, qty := range b.cart {
			items = append(items, map[string]any{"article_id": id, "name": "Strap top", "price": 8.25, "quantity": qty})
			total += 8.25 * float64(qty)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": items, "total": total})
	case r.Method == http.MethodPost && r.URL.Path == "/cart/add":
		var in struct {
			ArticleID string `json:"article_id"`
			Quantity  int    `json:"quantity"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)
		b.cart[in.ArticleID] += in.Quantity
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "Item added to cart", "cart_item_id": 1, "quantity": b.cart[in.ArticleID]})
	case r.Method == http.MethodPost && r.URL.Path == "/orders/buy_now":
		var in struct {
			ArticleID     string `json:"article_id"`
			Qty           int    `json:"qty"`
			ClientOrderID string `json:"client_order_id"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)
		b.buyKeys = append(b.buyKeys, in.ClientOrderID)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"order_id":     len(b.buyKeys),
			"total_amount": 8.25 * float64(in.Qty),
			"items":        []map[string]any{{"article_id": in.ArticleID, "qty": in.Qty, "price": 8.25}},
			"message":      "Order placed successfully",
		})
	default:
		http.NotFound(w, r)
	}
}

func (b *backend) setToken(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.validToken = token
}

type harness struct {
	t        *testing.T
	backend  *backend
	url      string
	stateDir string
	cfgPath  string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	b := &backend{
		validToken: "tok-1",
		healthBody: `{"status":"healthy","model_loaded":true}`,
		cart:       map[string]int{},
	}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	return &harness{
		t:        t,
		backend:  b,
		url:      srv.URL,
		stateDir: filepath.Join(dir, "state"),
		cfgPath:  filepath.Join(dir, "cli.yaml"),
	}
}

// run executes one shopctl invocation with input on stdin.
func (h *harness) run(input string, args ...string) (stdout, stderr string, err error) {
	h.t.Helper()
	var out, errOut bytes.Buffer

	app := App()
	app.Reader = strings.NewReader(input)
	app.Writer = &out
	app.ErrWriter = &errOut

	argv := []string{"shopctl", "--config", h.cfgPath, "--state-dir", h.stateDir, "--api-url", h.url}
	err = app.RunContext(context.Background(), append(argv, args...))
	return out.String(), errOut.String(), err
}
