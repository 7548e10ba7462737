package secrets

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	s := Open(t.TempDir())
	if err := s.Set("https://API.example.test/graphql", "tok-1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := s.Get("https://api.example.test/other")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "tok-1" {
		t.Fatalf("token = %q, want tok-1", got)
	}

	raw, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read store: %v", err)
	}
	if strings.Contains(string(raw), "tok-1") {
		t.Fatalf("token stored in plain text")
	}
	info, err := os.Stat(s.Path())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("perm = %o, want 600", perm)
	}
}

func TestStoreMissingAndDelete(t *testing.T) {
	s := Open(t.TempDir())
	if _, err := s.Get("https://a.test"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on empty store = %v, want ErrNotFound", err)
	}
	if err := s.Delete("https://a.test"); err != nil {
		t.Fatalf("Delete missing: %v", err)
	}
	if err := s.Set("https://a.test", "x"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set("https://b.test", "y"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Delete("https://a.test"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get("https://a.test"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted token still present: %v", err)
	}
	if got, _ := s.Get("https://b.test"); got != "y" {
		t.Fatalf("other host lost its token, got %q", got)
	}
}

func TestStoreRejectsBadInput(t *testing.T) {
	s := Open(t.TempDir())
	if err := s.Set("not a url", "x"); err == nil {
		t.Fatalf("expected error for endpoint without host")
	}
	if err := s.Set("https://a.test", "  "); err == nil {
		t.Fatalf("expected error for empty token")
	}
}
