package idset

import "testing"

func TestAddRemoveRoundTrip(t *testing.T) {
	s := New()
	if !s.Add(1) {
		t.Fatal("Add(1) = false on empty set")
	}
	if s.Add(1) {
		t.Fatal("Add(1) = true on duplicate insert")
	}
	if !s.Remove(1) {
		t.Fatal("Remove(1) = false, want true")
	}
	if s.Remove(1) {
		t.Fatal("Remove(1) = true on already-removed element")
	}
	if s.Size() != 0 {
		t.Fatalf("Size() = %d, want 0", s.Size())
	}
}

func TestSwapBackKeepsRemainingElements(t *testing.T) {
	s := New()
	for _, v := range []int32{1, 2, 3, 4, 5} {
		s.Add(v)
	}
	s.Remove(2)

	want := map[int32]bool{1: true, 3: true, 4: true, 5: true}
	if s.Size() != len(want) {
		t.Fatalf("Size() = %d, want %d", s.Size(), len(want))
	}
	for _, v := range s.Elements() {
		if !want[v] {
			t.Errorf("unexpected element %d survived Remove", v)
		}
		delete(want, v)
	}
	if len(want) != 0 {
		t.Errorf("missing elements after Remove: %v", want)
	}
}

func TestPickUniformCoversAllElements(t *testing.T) {
	s := New()
	for _, v := range []int32{10, 20, 30} {
		s.Add(v)
	}
	seen := make(map[int32]bool)
	for i := 0; i < s.Size(); i++ {
		seen[s.PickUniform(i)] = true
	}
	if len(seen) != 3 {
		t.Fatalf("PickUniform over all indices saw %d distinct elements, want 3", len(seen))
	}
}

func TestContains(t *testing.T) {
	s := New()
	s.Add(5)
	if !s.Contains(5) {
		t.Error("Contains(5) = false after Add(5)")
	}
	if s.Contains(6) {
		t.Error("Contains(6) = true before any insert")
	}
}
