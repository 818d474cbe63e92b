// Package recommend drives the recommendation model lifecycle endpoints:
// hot reload of the model file and the health check used by deploys.
package recommend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/yndnr/shopfront-go/internal/client/apiclient"
)

const (
	reloadPath = "/recommend/reload"
	healthPath = "/recommend/health"
)

// healthMarkers are the substrings that make a health body pass.
var healthMarkers = [][]byte{[]byte("healthy"), []byte("ok")}

// ReloadResult is the backend answer to a reload request. Status is
// "success" or "error"; the HTTP status is 200 in both cases.
type ReloadResult struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	ModelPath string `json:"model_path,omitempty"`
	LoadedAt  string `json:"loaded_at,omitempty"`

	Raw []byte `json:"-"`
}

// OK reports whether the backend loaded the model.
func (r *ReloadResult) OK() bool {
	return r.Status == "success"
}

// Health is the parsed health payload.
type Health struct {
	Status        string  `json:"status"`
	ModelLoaded   bool    `json:"model_loaded"`
	ModelPath     string  `json:"model_path"`
	ModelExists   bool    `json:"model_exists"`
	ModelLoadedAt *string `json:"model_loaded_at"`
	FallbackMode  string  `json:"fallback_mode"`

	Raw []byte `json:"-"`
}

// Healthy applies IsHealthy to the raw body.
func (h *Health) Healthy() bool {
	return IsHealthy(h.Raw)
}

// IsHealthy reports whether body contains "healthy" or "ok".
func IsHealthy(body []byte) bool {
	for _, m := range healthMarkers {
		if bytes.Contains(body, m) {
			return true
		}
	}
	return false
}

// Ops calls the recommendation endpoints.
type Ops struct {
	api *apiclient.Client
}

// New creates Ops over api. Reload is authenticated when api carries a
// token store holding a token.
func New(api *apiclient.Client) *Ops {
	return &Ops{api: api}
}

// Reload asks the backend to reload the model from disk.
func (o *Ops) Reload(ctx context.Context) (*ReloadResult, error) {
	resp, err := o.api.Post(ctx, reloadPath, nil)
	if err != nil {
		return nil, fmt.Errorf("reload model: %w", err)
	}
	res := &ReloadResult{Raw: resp.Body}
	if err := resp.Decode(res); err != nil {
		return res, fmt.Errorf("reload model: %w", err)
	}
	return res, nil
}

// Health fetches the health payload. A body that is not JSON is still
// returned in Raw together with the parse error.
func (o *Ops) Health(ctx context.Context) (*Health, error) {
	resp, err := o.api.Get(ctx, healthPath)
	if err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}
	h := &Health{Raw: resp.Body}
	if err := resp.Decode(h); err != nil {
		return h, fmt.Errorf("health check: %w", err)
	}
	return h, nil
}

// Check reloads the model, then checks health, writing each raw body to
// w. A failed reload is reported but does not stop the health check. The
// result is the verdict of IsHealthy on the health body.
func (o *Ops) Check(ctx context.Context, w io.Writer) (bool, error) {
	fmt.Fprintln(w, "Reloading model...")
	reload, err := o.Reload(ctx)
	writeBody(w, rawOf(reload, err), err)

	fmt.Fprintln(w, "Checking health...")
	health, err := o.Health(ctx)
	body := rawOf(health, err)
	writeBody(w, body, err)

	if err != nil && body == nil {
		return false, err
	}
	return IsHealthy(body), nil
}

func rawOf(v any, err error) []byte {
	switch r := v.(type) {
	case *ReloadResult:
		if r != nil {
			return r.Raw
		}
	case *Health:
		if r != nil {
			return r.Raw
		}
	}
	var httpErr *apiclient.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Body
	}
	return nil
}

func writeBody(w io.Writer, body []byte, err error) {
	switch {
	case len(body) > 0:
		fmt.Fprintln(w, string(body))
	case err != nil:
		fmt.Fprintln(w, err.Error())
	}
}
