package steps

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/widthpoints/maybe"
)

func TestEmptySteps(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "widthpoints.steps")
	defer teardown()
	//
	s := Steps[int]{}
	if !s.IsEmpty() || s.Len() != 0 {
		t.Errorf("expected zero value to be an empty step map, is %v", s)
	}
	if _, ok := s.At(10); ok {
		t.Error("expected lookup in empty step map to fail")
	}
}

func TestFindInNode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "widthpoints.steps")
	defer teardown()
	//
	s := Of(Entry[int]{1, 1}, Entry[int]{3, 3}, Entry[int]{5, 5})
	for i, x := range []struct {
		key   float64
		found bool
		at    int
	}{
		{0, false, 0},
		{1, true, 0},
		{2, false, 1},
		{5, true, 2},
		{7, false, 3},
	} {
		found, at := s.findSlot(x.key)
		if found != x.found || at != x.at {
			t.Errorf("%d: expected findSlot(%v) = (%v,%d), is (%v,%d)", i, x.key, x.found, x.at, found, at)
		}
	}
}

func TestStepLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "widthpoints.steps")
	defer teardown()
	//
	s := Steps[int]{}.With(0, 200).With(100, 100).With(300, 200)
	for i, x := range []struct {
		b float64
		v int
	}{
		{0, 200}, {50, 200}, {99.9, 200}, {100, 100}, {299, 100}, {300, 200}, {1e9, 200},
	} {
		v, ok := s.At(x.b)
		if !ok || v != x.v {
			t.Errorf("%d: expected At(%v) = %d, is %d (ok=%v)", i, x.b, x.v, v, ok)
		}
	}
	if _, ok := s.At(-1); ok {
		t.Error("expected lookup below first key to fail")
	}
	if v := s.Lookup(150); v.WithDefault(-1) != 100 {
		t.Errorf("expected Lookup(150) to be Just(100), is %v", v)
	}
	if v := s.Lookup(-1); !v.IsNothing() {
		t.Errorf("expected Lookup(-1) to be Nothing, is %v", v)
	}
}

func TestWithIsPersistent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "widthpoints.steps")
	defer teardown()
	//
	s1 := Steps[string]{}.With(0, "a")
	s2 := s1.With(10, "b")
	s3 := s2.With(0, "c")
	if s1.Len() != 1 || s2.Len() != 2 || s3.Len() != 2 {
		t.Fatalf("unexpected lengths %d, %d, %d", s1.Len(), s2.Len(), s3.Len())
	}
	if v, _ := s2.At(0); v != "a" {
		t.Errorf("expected s2 to be unchanged by replacement in s3, s2[0] = %q", v)
	}
	if v, _ := s3.At(0); v != "c" {
		t.Errorf("expected s3[0] = c, is %q", v)
	}
	s4, _ := s3.WithDeletedRange(10, maybe.Nothing[float64]())
	if s4.Len() != 1 || s3.Len() != 2 {
		t.Errorf("expected deletion to leave s3 unchanged, s3=%v s4=%v", s3, s4)
	}
	if s5, deleted := s4.WithDeletedRange(99, maybe.Just(99.0)); s5.Len() != 1 || len(deleted) != 0 {
		t.Errorf("expected deletion of unknown key to be a no-op, is %v", s5)
	}
}

func TestDeletedRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "widthpoints.steps")
	defer teardown()
	//
	s := Of(Entry[int]{0, 0}, Entry[int]{100, 1}, Entry[int]{200, 2}, Entry[int]{300, 3})
	r, deleted := s.WithDeletedRange(100, maybe.Just(200.0))
	if len(deleted) != 2 || deleted[0].Key != 100 || deleted[1].Key != 200 {
		t.Errorf("expected keys 100 and 200 to be deleted, deleted = %v", deleted)
	}
	if r.Len() != 2 || s.Len() != 4 {
		t.Errorf("expected 2 remaining keys and s unchanged, r=%v s=%v", r, s)
	}
	r, deleted = s.WithDeletedRange(150, maybe.Nothing[float64]())
	if len(deleted) != 2 || r.Len() != 2 {
		t.Errorf("expected open range to delete keys 200 and 300, deleted=%v", deleted)
	}
	r, deleted = s.WithDeletedRange(110, maybe.Just(190.0))
	if len(deleted) != 0 || r.Len() != 4 {
		t.Errorf("expected empty range to delete nothing, deleted=%v", deleted)
	}
	if _, got := s.WithDeletedRange(0, maybe.Just(100.0)); len(got) != 2 {
		t.Errorf("expected range [0,100] to have 2 entries, has %v", got)
	}
}

func TestCoalesced(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "widthpoints.steps")
	defer teardown()
	//
	s := Of(Entry[int]{0, 1}, Entry[int]{10, 1}, Entry[int]{20, 2}, Entry[int]{30, 2}, Entry[int]{40, 1})
	c := s.Coalesced(func(a, b int) bool { return a == b })
	keys := c.Keys()
	if len(keys) != 3 || keys[0] != 0 || keys[1] != 20 || keys[2] != 40 {
		t.Errorf("expected coalesced keys [0 20 40], are %v", keys)
	}
}

func TestUnionKeys(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "widthpoints.steps")
	defer teardown()
	//
	a := Of(Entry[int]{0, 0}, Entry[int]{100, 0}, Entry[int]{300, 0})
	b := Of(Entry[string]{0, ""}, Entry[string]{200, ""}, Entry[string]{300, ""}, Entry[string]{400, ""})
	keys := UnionKeys(a, b)
	expected := []float64{0, 100, 200, 300, 400}
	if len(keys) != len(expected) {
		t.Fatalf("expected union %v, is %v", expected, keys)
	}
	for i := range keys {
		if keys[i] != expected[i] {
			t.Errorf("expected union %v, is %v", expected, keys)
			break
		}
	}
	f := FromKeys(keys, func(k float64) float64 { return k / 100 })
	if v, _ := f.At(250); v != 2 {
		t.Errorf("expected FromKeys(…).At(250) = 2, is %v", v)
	}
	g := Map(f, func(k float64, v float64) int { return int(v) * 10 })
	if v, _ := g.At(400); v != 40 {
		t.Errorf("expected Map(…) at 400 = 40, is %v", v)
	}
}
