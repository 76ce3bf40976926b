package store

import (
	"reflect"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	t.Run("Get missing key", func(t *testing.T) {
		s := NewMemoryStore(nil)
		if _, found, err := s.Get("missing"); err != nil || found {
			t.Errorf("expected missing key, got found=%v err=%v", found, err)
		}
	})

	t.Run("Set then Get", func(t *testing.T) {
		s := NewMemoryStore(nil)
		if err := s.Set(KeyAuthToken, "abc"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		v, found, err := s.Get(KeyAuthToken)
		if err != nil || !found || v != "abc" {
			t.Errorf("Get() = %q, %v, %v", v, found, err)
		}
	})

	t.Run("Remove is idempotent", func(t *testing.T) {
		s := NewMemoryStore(map[string]string{KeyUserData: "{}"})
		if err := s.Remove(KeyUserData); err != nil {
			t.Fatalf("Remove() error = %v", err)
		}
		if err := s.Remove(KeyUserData); err != nil {
			t.Fatalf("second Remove() error = %v", err)
		}
		if _, found, _ := s.Get(KeyUserData); found {
			t.Error("expected key to be removed")
		}
	})

	t.Run("seed is copied", func(t *testing.T) {
		seed := map[string]string{"a": "1"}
		s := NewMemoryStore(seed)
		seed["b"] = "2"
		if got := s.Keys(); !reflect.DeepEqual(got, []string{"a"}) {
			t.Errorf("Keys() = %v, want [a]", got)
		}
	})
}
