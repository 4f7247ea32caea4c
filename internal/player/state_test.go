package player

import "testing"

func TestWrapIndex(t *testing.T) {
	tests := []struct {
		i, total, want int
	}{
		{0, 5, 0},
		{4, 5, 4},
		{5, 5, 0},
		{7, 5, 2},
		{-1, 5, 4},
		{-6, 5, 4},
		{3, 0, 0},
	}
	for _, tt := range tests {
		if got := WrapIndex(tt.i, tt.total); got != tt.want {
			t.Errorf("WrapIndex(%d, %d) = %d, want %d", tt.i, tt.total, got, tt.want)
		}
	}
}

func TestState_Navigate_Wraps(t *testing.T) {
	s := NewState(3, 26, 180)

	if got := s.Navigate(-1); got != 2 {
		t.Errorf("decrement from 0: got %d, want 2", got)
	}
	if got := s.Navigate(1); got != 0 {
		t.Errorf("increment from 2: got %d, want 0", got)
	}
	if got := s.Navigate(1); got != 1 {
		t.Errorf("increment from 0: got %d, want 1", got)
	}
}

func TestState_RequestNavigate_Accumulates(t *testing.T) {
	s := NewState(4, 26, 180)

	if got := s.RequestNavigate(1); got != 1 {
		t.Errorf("first request: got %d, want 1", got)
	}
	if got := s.RequestNavigate(1); got != 2 {
		t.Errorf("second request: got %d, want 2", got)
	}
	if s.Index() != 0 {
		t.Errorf("index changed before TakePending: got %d", s.Index())
	}

	idx, ok := s.TakePending()
	if !ok || idx != 2 {
		t.Errorf("TakePending() = %d, %v, want 2, true", idx, ok)
	}
	if _, ok := s.TakePending(); ok {
		t.Error("second TakePending reported a pending index")
	}
}

func TestState_Navigate_ClearsPending(t *testing.T) {
	s := NewState(4, 26, 180)

	s.RequestNavigate(1)
	s.Navigate(-1)
	if _, ok := s.TakePending(); ok {
		t.Error("pending index survived an immediate navigation")
	}
}

func TestState_AdjustBrightness_Clamps(t *testing.T) {
	s := NewState(3, 26, 180)

	if got := s.AdjustBrightness(26); got != 52 {
		t.Errorf("step up: got %d, want 52", got)
	}
	if got := s.AdjustBrightness(-200); got != 0 {
		t.Errorf("clamp low: got %d, want 0", got)
	}
	if got := s.AdjustBrightness(-26); got != 0 {
		t.Errorf("step below zero: got %d, want 0", got)
	}
	if got := s.AdjustBrightness(1000); got != 180 {
		t.Errorf("clamp high: got %d, want 180", got)
	}
	if s.Index() != 0 {
		t.Errorf("brightness change moved index to %d", s.Index())
	}
}
