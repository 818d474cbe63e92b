package repl

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHistory_Add(t *testing.T) {
	h := NewHistory("")
	h.Add("categories")
	h.Add("categories")
	h.Add("whoami")

	if got := h.Entries(); len(got) != 2 {
		t.Fatalf("Entries() = %v, repeats should collapse", got)
	}
	if h.Get(0) != "whoami" || h.Get(1) != "categories" {
		t.Errorf("Get() order wrong: %q, %q", h.Get(0), h.Get(1))
	}
	if h.Get(5) != "" || h.Get(-1) != "" {
		t.Error("out of range Get() should be empty")
	}
}

func TestHistory_MaxSize(t *testing.T) {
	h := NewHistory("")
	h.maxSize = 3
	for _, cmd := range []string{"a", "b", "c", "d"} {
		h.Add(cmd)
	}
	got := h.Entries()
	if len(got) != 3 || got[0] != "b" {
		t.Errorf("Entries() = %v, want [b c d]", got)
	}
}

func TestHistory_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "history")

	h := NewHistory(path)
	h.Add("login --email ana@example.com")
	h.Add("categories")
	if err := h.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("permissions = %o, want 600", info.Mode().Perm())
	}

	loaded := NewHistory(path)
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Get(0) != "categories" || len(loaded.Entries()) != 2 {
		t.Errorf("Load() = %v", loaded.Entries())
	}
}

func TestHistory_NoFile(t *testing.T) {
	h := NewHistory("")
	if err := h.Load(); err != nil {
		t.Errorf("Load() error = %v", err)
	}
	if err := h.Save(); err != nil {
		t.Errorf("Save() error = %v", err)
	}

	missing := NewHistory(filepath.Join(t.TempDir(), "absent"))
	if err := missing.Load(); err != nil {
		t.Errorf("Load() of missing file error = %v", err)
	}
}
