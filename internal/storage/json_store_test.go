package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestJSONStoreLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	store := NewJSONStore(path)

	if _, err := store.Get("k", &sample{}); err != ErrNotLoaded {
		t.Fatalf("Get() before Init error = %v, want ErrNotLoaded", err)
	}

	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := store.Set("k", sample{Name: "a", Count: 1}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	var got sample
	ok, err := reopened.Get("k", &got)
	if err != nil || !ok {
		t.Fatalf("Get() = (%v, %v)", ok, err)
	}
	if diff := cmp.Diff(sample{Name: "a", Count: 1}, got); diff != "" {
		t.Errorf("Get() mismatch (-want +got):\n%s", diff)
	}

	// Init on an existing file keeps its contents.
	again := NewJSONStore(path)
	if err := again.Init(); err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
	if ok, _ := again.Get("k", &got); !ok {
		t.Error("Init() discarded existing data")
	}

	if err := reopened.Delete("k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	keys, _ := reopened.Keys()
	if len(keys) != 0 {
		t.Errorf("Keys() after Delete = %v", keys)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}
}

func TestJSONStoreMalformedValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	doc := `{"version":1,"values":{"k":{"name":42}}}`
	if err := os.WriteFile(path, []byte(doc), 0600); err != nil {
		t.Fatal(err)
	}
	store := NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	ok, err := store.Get("k", &sample{})
	if !ok || err == nil {
		t.Errorf("Get() = (%v, %v), want present with decode error", ok, err)
	}
}

func TestJSONStoreLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if err := NewJSONStore(filepath.Join(dir, "missing.json")).Load(); err == nil {
		t.Error("Load() on missing file should fail")
	}

	corrupt := filepath.Join(dir, "corrupt.json")
	if err := os.WriteFile(corrupt, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := NewJSONStore(corrupt).Load(); err == nil {
		t.Error("Load() on corrupt file should fail")
	}
}

func TestJSONStoreSubscribe(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "store.json"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	var seen []string
	unsubscribe := store.Subscribe(func(key string) { seen = append(seen, key) })

	_ = store.Set("a", 1)
	_ = store.Delete("a")
	_ = store.Delete("never-set")
	unsubscribe()
	unsubscribe()
	_ = store.Set("b", 2)

	if diff := cmp.Diff([]string{"a", "a"}, seen); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONStoreSubscriberPanicIsContained(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "store.json"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	called := false
	store.Subscribe(func(string) { panic("boom") })
	store.Subscribe(func(string) { called = true })

	if err := store.Set("a", 1); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if !called {
		t.Error("second subscriber was not called")
	}
}

func TestJSONStoreReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	mine := NewJSONStore(path)
	if err := mine.Init(); err != nil {
		t.Fatal(err)
	}
	_ = mine.Set("a", 1)
	_ = mine.Set("b", 2)

	// Our own write is not reported as a change.
	if changed, err := mine.Reload(); err != nil || len(changed) != 0 {
		t.Fatalf("Reload() after own write = (%v, %v)", changed, err)
	}

	other := NewJSONStore(path)
	if err := other.Load(); err != nil {
		t.Fatal(err)
	}
	_ = other.Set("b", 3)
	_ = other.Delete("a")
	_ = other.Set("c", 4)

	var notified []string
	mine.Subscribe(func(key string) { notified = append(notified, key) })

	changed, err := mine.Reload()
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	want := []string{"a", "b", "c"}
	if diff := cmp.Diff(want, changed); diff != "" {
		t.Errorf("changed keys mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, notified); diff != "" {
		t.Errorf("notified keys mismatch (-want +got):\n%s", diff)
	}

	var b int
	if _, err := mine.Get("b", &b); err != nil || b != 3 {
		t.Errorf("Get(b) = %d, %v; want 3", b, err)
	}
}
