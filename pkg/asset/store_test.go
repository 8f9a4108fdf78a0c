package asset

import "testing"

func TestRegisterResolve(t *testing.T) {
	s := NewStore[string]()
	h := s.Register("hello")
	if !h.Valid() {
		t.Fatal("Register returned the null handle")
	}
	v, ok := s.Resolve(h)
	if !ok || v != "hello" {
		t.Errorf("Resolve = (%q, %v), want (hello, true)", v, ok)
	}
}

func TestResolveNullHandle(t *testing.T) {
	s := NewStore[int]()
	if _, ok := s.Resolve(0); ok {
		t.Error("Resolve(0) reported presence")
	}
}

func TestUpdate(t *testing.T) {
	s := NewStore[int]()
	h := s.Register(1)
	got := s.Update(h, 2)
	if got != h {
		t.Errorf("Update returned %v, want original handle %v", got, h)
	}
	v, _ := s.Resolve(h)
	if v != 2 {
		t.Errorf("Resolve after Update = %d, want 2", v)
	}

	// Updating through the null handle registers a fresh value.
	h2 := s.Update(0, 3)
	if h2 == h || !h2.Valid() {
		t.Errorf("Update(0) returned %v", h2)
	}
}

func TestRemove(t *testing.T) {
	s := NewStore[int]()
	h := s.Register(1)
	s.Remove(h)
	if _, ok := s.Resolve(h); ok {
		t.Error("Resolve after Remove reported presence")
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
	s.Remove(h) // removing twice is fine
}

func TestHandlesNotReused(t *testing.T) {
	s := NewStore[int]()
	a := s.Register(1)
	s.Remove(a)
	b := s.Register(2)
	if a == b {
		t.Errorf("handle %v reused after Remove", a)
	}
}
