package tlsroots

import (
	"crypto/tls"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func newTLSBackend(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	}))
	t.Cleanup(srv.Close)

	caFile := filepath.Join(t.TempDir(), "shop-ca.pem")
	data := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: srv.Certificate().Raw})
	if err := os.WriteFile(caFile, data, 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return srv, caFile
}

func TestNewPool(t *testing.T) {
	if NewPool().Pool() == nil {
		t.Fatal("Pool() returned nil")
	}
	if NewEmptyPool().Added() != 0 {
		t.Fatal("empty pool reports added certificates")
	}
}

func TestAddCertPEM_NoCerts(t *testing.T) {
	pool := NewEmptyPool()

	if err := pool.AddCertPEM(nil); !errors.Is(err, ErrNoCertsFound) {
		t.Errorf("AddCertPEM(nil) error = %v, want %v", err, ErrNoCertsFound)
	}

	key := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: []byte("not a cert")})
	if err := pool.AddCertPEM(key); !errors.Is(err, ErrNoCertsFound) {
		t.Errorf("AddCertPEM(key only) error = %v, want %v", err, ErrNoCertsFound)
	}
}

func TestAddCertPEM_InvalidCert(t *testing.T) {
	bad := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: []byte("garbage")})
	if err := NewEmptyPool().AddCertPEM(bad); err == nil {
		t.Error("AddCertPEM() expected parse error")
	}
}

func TestAddCertFile(t *testing.T) {
	_, caFile := newTLSBackend(t)

	pool := NewEmptyPool()
	if err := pool.AddCertFile(caFile); err != nil {
		t.Fatalf("AddCertFile() error = %v", err)
	}
	if pool.Added() != 1 {
		t.Errorf("Added() = %d, want 1", pool.Added())
	}

	if err := pool.AddCertFile(filepath.Join(t.TempDir(), "missing.pem")); err == nil {
		t.Error("AddCertFile() expected error for missing file")
	}
}

func TestTLSConfig(t *testing.T) {
	pool := NewEmptyPool()

	cfg := pool.TLSConfig()
	if cfg.RootCAs != pool.Pool() {
		t.Error("TLSConfig().RootCAs != pool.Pool()")
	}
	if cfg.MinVersion != tls.VersionTLS12 {
		t.Errorf("TLSConfig().MinVersion = %v, want TLS 1.2", cfg.MinVersion)
	}
}

func TestTransport_Default(t *testing.T) {
	rt, err := Transport("")
	if err != nil {
		t.Fatalf("Transport(\"\") error = %v", err)
	}
	if rt != http.DefaultTransport {
		t.Error("Transport(\"\") should return http.DefaultTransport")
	}
}

func TestTransport_PrivateCA(t *testing.T) {
	srv, caFile := newTLSBackend(t)

	if _, err := http.Get(srv.URL); err == nil {
		t.Fatal("default transport should not trust the test CA")
	}

	rt, err := Transport(caFile)
	if err != nil {
		t.Fatalf("Transport() error = %v", err)
	}
	resp, err := (&http.Client{Transport: rt}).Get(srv.URL)
	if err != nil {
		t.Fatalf("GET with private CA error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestTransport_BadFile(t *testing.T) {
	if _, err := Transport("/nonexistent/ca.pem"); err == nil {
		t.Error("Transport() expected error for missing CA file")
	}
}
