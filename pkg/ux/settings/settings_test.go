package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenMissingFile(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "settings.toml"))
	if err != nil {
		t.Fatalf("Open on missing file returned error: %v", err)
	}
	if got := s.Get("idle_to", 42); got != 42 {
		t.Fatalf("expected default 42, got %d", got)
	}
}

func TestOpenParsesValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	content := "idle_to = 3600\nterms_ok = true\nnick = \"alice\"\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if got := s.Get("idle_to", 0); got != 3600 {
		t.Fatalf("idle_to = %d, want 3600", got)
	}
	if !s.GetBool("terms_ok", false) {
		t.Fatal("terms_ok should be true")
	}
	if got := s.GetString("nick", ""); got != "alice" {
		t.Fatalf("nick = %q, want alice", got)
	}
}

func TestGetWrongTypeFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte("idle_to = \"soon\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Get("idle_to", 99); got != 99 {
		t.Fatalf("expected default on type mismatch, got %d", got)
	}
}

func TestSetSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Set("idle_to", int64(120))
	s.Set("nick", "bob")
	if err := s.Save(); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	reloaded, err := Open(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	if got := reloaded.Get("idle_to", 0); got != 120 {
		t.Fatalf("idle_to = %d after reload, want 120", got)
	}
	if got := reloaded.GetString("nick", ""); got != "bob" {
		t.Fatalf("nick = %q after reload, want bob", got)
	}
}

func TestDelete(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "settings.toml"))
	if err != nil {
		t.Fatal(err)
	}
	s.Set("idle_to", int64(10))
	s.Delete("idle_to")
	if got := s.Get("idle_to", 7); got != 7 {
		t.Fatalf("expected default after Delete, got %d", got)
	}
}
