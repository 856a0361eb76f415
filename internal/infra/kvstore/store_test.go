package kvstore_test

import (
	"testing"

	"github.com/sage-journal/sage/internal/infra/kvstore"
)

func testStore(t *testing.T) *kvstore.Store {
	t.Helper()
	s, err := kvstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_MissingKey(t *testing.T) {
	s := testStore(t)

	_, ok, err := s.Get("level")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Error("expected missing key")
	}
}

func TestStore_SetGet(t *testing.T) {
	s := testStore(t)

	if err := s.Set("level", `{"current_level":3}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := s.Get("level")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || v != `{"current_level":3}` {
		t.Errorf("got %q ok=%v", v, ok)
	}
}

func TestStore_Overwrite(t *testing.T) {
	s := testStore(t)

	_ = s.Set("streaks", "old")
	if err := s.Set("streaks", "new"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, _, _ := s.Get("streaks")
	if v != "new" {
		t.Errorf("expected overwrite, got %q", v)
	}
}

func TestStore_Delete(t *testing.T) {
	s := testStore(t)

	_ = s.Set("quests", "{}")
	if err := s.Delete("quests"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, ok, _ := s.Get("quests")
	if ok {
		t.Error("expected key gone after delete")
	}
}
