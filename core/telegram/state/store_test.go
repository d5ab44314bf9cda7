package state

import (
	"errors"
	"sync"
	"testing"
)

type session struct {
	Step  string
	Count int
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	s := NewStore[session]()
	seeds := 0
	seed := func() *session {
		seeds++
		return &session{Step: "start"}
	}

	first := s.GetOrCreate(7, seed)
	second := s.GetOrCreate(7, seed)
	if first != second {
		t.Fatal("GetOrCreate must return the same pointer")
	}
	if seeds != 1 {
		t.Fatalf("seed called %d times, want 1", seeds)
	}
	if first.Step != "start" {
		t.Fatalf("unexpected seeded value: %+v", first)
	}
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
}

func TestGetOrCreateNilSeed(t *testing.T) {
	s := NewStore[session]()
	v := s.GetOrCreate(1, nil)
	if v == nil || v.Step != "" {
		t.Fatalf("expected zero session, got %+v", v)
	}
	w := s.GetOrCreate(2, func() *session { return nil })
	if w == nil {
		t.Fatal("nil seed result must fall back to zero value")
	}
}

func TestUpdateReturnsFnError(t *testing.T) {
	s := NewStore[session]()
	boom := errors.New("boom")
	err := s.Update(3, nil, func(v *session) error {
		v.Step = "partial"
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}
	snap, ok := s.Snapshot(3)
	if !ok || snap.Step != "partial" {
		t.Fatalf("unexpected snapshot: %+v ok=%v", snap, ok)
	}
}

func TestSnapshotUnknownUser(t *testing.T) {
	s := NewStore[session]()
	if _, ok := s.Snapshot(42); ok {
		t.Fatal("unknown user should have no snapshot")
	}
	if s.Len() != 0 {
		t.Fatal("Snapshot must not create sessions")
	}
}

func TestUpdateSerializesPerUser(t *testing.T) {
	s := NewStore[session]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.Update(1, nil, func(v *session) error { v.Count++; return nil })
		}()
		go func() {
			defer wg.Done()
			_ = s.Update(2, nil, func(v *session) error { v.Count++; return nil })
		}()
	}
	wg.Wait()

	for _, id := range []int64{1, 2} {
		snap, _ := s.Snapshot(id)
		if snap.Count != 50 {
			t.Fatalf("user %d count = %d, want 50", id, snap.Count)
		}
	}
}

func TestRangeVisitsEverySession(t *testing.T) {
	s := NewStore[session]()
	for _, id := range []int64{1, 2, 3} {
		id := id
		_ = s.Update(id, nil, func(v *session) error { v.Count = int(id); return nil })
	}
	sum := 0
	s.Range(func(_ int64, v session) { sum += v.Count })
	if sum != 6 {
		t.Fatalf("sum = %d, want 6", sum)
	}
}
