package event

import "testing"

func TestSource_Dispatch_Order(t *testing.T) {
	var s Source[int]
	var got []string

	s.AddHandler(func(v int) { got = append(got, "a") })
	s.AddHandler(func(v int) { got = append(got, "b") })
	s.Dispatch(1)

	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("expected [a b], got %v", got)
	}
}

func TestSource_RemoveHandler(t *testing.T) {
	var s Source[int]
	calls := 0

	h := s.AddHandler(func(int) { calls++ })
	s.Dispatch(1)
	s.RemoveHandler(h)
	s.Dispatch(2)

	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	if s.HandlerCount() != 0 {
		t.Errorf("expected no handlers, got %d", s.HandlerCount())
	}

	// Removing twice is harmless
	s.RemoveHandler(h)
}

func TestSource_RemoveDuringDispatch(t *testing.T) {
	var s Source[int]
	var second Handle
	secondCalls := 0

	s.AddHandler(func(int) { s.RemoveHandler(second) })
	second = s.AddHandler(func(int) { secondCalls++ })

	s.Dispatch(1)
	if secondCalls != 0 {
		t.Errorf("expected removed handler not to fire, got %d calls", secondCalls)
	}
}

func TestSource_AddDuringDispatch(t *testing.T) {
	var s Source[int]
	lateCalls := 0
	added := false

	s.AddHandler(func(int) {
		if !added {
			added = true
			s.AddHandler(func(int) { lateCalls++ })
		}
	})

	s.Dispatch(1)
	if lateCalls != 0 {
		t.Errorf("expected handler added mid-dispatch to wait, got %d calls", lateCalls)
	}
	s.Dispatch(2)
	if lateCalls != 1 {
		t.Errorf("expected 1 call after next dispatch, got %d", lateCalls)
	}
}

func TestSource_ZeroValueDispatch(t *testing.T) {
	var s Source[string]
	s.Dispatch("nothing registered")
	s.RemoveHandler(42)
}
