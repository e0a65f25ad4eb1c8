package carousel

import (
	"testing"
	"time"

	"pgregory.net/rapid"
)

func TestGotoPage(t *testing.T) {
	tests := []struct {
		name      string
		current   int
		requested int
		count     int
		want      int
		moved     bool
	}{
		{"negative ignored", 0, -1, 5, 0, false},
		{"past end ignored", 0, 5, 5, 0, false},
		{"last page", 0, 4, 5, 4, true},
		{"first page", 3, 0, 5, 0, true},
		{"same page", 2, 2, 5, 2, true},
		{"empty carousel", 0, 0, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, moved := GotoPage(tt.current, tt.requested, tt.count)
			if got != tt.want || moved != tt.moved {
				t.Errorf("GotoPage(%d, %d, %d) = %d, %v; want %d, %v",
					tt.current, tt.requested, tt.count, got, moved, tt.want, tt.moved)
			}
		})
	}
}

func TestNextPreviousFlip(t *testing.T) {
	if got, _ := Next(0, 3); got != 1 {
		t.Errorf("Next(0, 3) = %d, want 1", got)
	}
	if got, moved := Next(2, 3); got != 2 || moved {
		t.Errorf("Next(2, 3) = %d, %v; want 2, false", got, moved)
	}
	if got, moved := Previous(0, 3); got != 0 || moved {
		t.Errorf("Previous(0, 3) = %d, %v; want 0, false", got, moved)
	}
	if got, _ := Flip(1, 3, 5); got != 4 {
		t.Errorf("Flip(1, 3, 5) = %d, want 4", got)
	}
	if got, moved := Flip(1, -2, 5); got != 1 || moved {
		t.Errorf("Flip(1, -2, 5) = %d, %v; want 1, false", got, moved)
	}
}

func TestNextPreviousInverseProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(2, 50).Draw(t, "n")
		p := rapid.IntRange(0, n-2).Draw(t, "p")

		next, moved := Next(p, n)
		if !moved {
			t.Fatalf("Next(%d, %d) did not move", p, n)
		}
		if back, _ := Previous(next, n); back != p {
			t.Fatalf("Previous(Next(%d)) = %d", p, back)
		}
	})
}

func TestGotoPageStaysInRangeProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 20).Draw(t, "n")
		current := rapid.IntRange(0, n-1).Draw(t, "current")
		offset := rapid.IntRange(-30, 30).Draw(t, "offset")

		got, moved := Flip(current, offset, n)
		if got < 0 || got >= n {
			t.Fatalf("Flip(%d, %d, %d) = %d out of range", current, offset, n, got)
		}
		if !moved && got != current {
			t.Fatalf("ignored flip changed position to %d", got)
		}
	})
}

func TestButtonVisibility(t *testing.T) {
	tests := []struct {
		name     string
		got      bool
		expected bool
	}{
		{"next at 1.4 of 3", NextButtonVisible(1.4, 3), true},
		{"next at 1.5 of 3", NextButtonVisible(1.5, 3), true},
		{"next at 1.6 of 3", NextButtonVisible(1.6, 3), false},
		{"next on single page", NextButtonVisible(0, 1), false},
		{"previous at 0.4", PreviousButtonVisible(0.4), false},
		{"previous at 0.5", PreviousButtonVisible(0.5), true},
		{"previous at 0.6", PreviousButtonVisible(0.6), true},
		{"previous at 0", PreviousButtonVisible(0), false},
	}
	for _, tt := range tests {
		if tt.got != tt.expected {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.expected)
		}
	}
}

func TestCarousel_ImmediateScroll(t *testing.T) {
	c := New(5, 0)

	if c.Index() != 0 || c.Position() != 0 {
		t.Fatalf("expected start at 0, got %d/%v", c.Index(), c.Position())
	}
	if c.PreviousVisible() {
		t.Error("previous should be hidden on first page")
	}
	if !c.NextVisible() {
		t.Error("next should show on first page")
	}

	if !c.ScrollTo(4) {
		t.Fatal("expected ScrollTo(4) to move")
	}
	if c.Position() != 4 || c.Animating() {
		t.Errorf("expected immediate jump to 4, got %v", c.Position())
	}
	if c.NextVisible() {
		t.Error("next should be hidden on last page")
	}

	if c.Next() {
		t.Error("Next past the end should be ignored")
	}
	if c.ScrollTo(-1) || c.ScrollTo(5) {
		t.Error("out of range ScrollTo should be ignored")
	}
	if c.Index() != 4 {
		t.Errorf("expected to stay at 4, got %d", c.Index())
	}

	c.Flip(-3)
	if c.Index() != 1 {
		t.Errorf("expected Flip(-3) to land on 1, got %d", c.Index())
	}
	c.Previous()
	if c.Index() != 0 {
		t.Errorf("expected Previous to land on 0, got %d", c.Index())
	}
}

func TestCarousel_AnimatedScroll(t *testing.T) {
	c := New(3, 100*time.Millisecond)

	c.Next()
	if c.Index() != 1 {
		t.Fatalf("expected target 1, got %d", c.Index())
	}
	if !c.Animating() || c.Position() != 0 {
		t.Fatalf("expected animation to start at 0, got %v", c.Position())
	}
	if c.PreviousVisible() {
		t.Error("previous should stay hidden until the midpoint")
	}

	if !c.Step(50 * time.Millisecond) {
		t.Fatal("expected animation still running halfway")
	}
	mid := c.Position()
	if mid <= 0 || mid >= 1 {
		t.Fatalf("expected fractional position, got %v", mid)
	}
	// Ease-out is past the midpoint at half time.
	if !c.PreviousVisible() {
		t.Errorf("previous should show past the midpoint, position %v", mid)
	}

	if c.Step(60 * time.Millisecond) {
		t.Error("expected animation to finish")
	}
	if c.Position() != 1 || c.Animating() {
		t.Errorf("expected to settle on 1, got %v", c.Position())
	}
	if c.Step(time.Second) {
		t.Error("Step without animation should report false")
	}
}

func TestCarousel_RetargetDuringAnimation(t *testing.T) {
	c := New(5, 100*time.Millisecond)

	c.Next()
	c.Step(50 * time.Millisecond)
	c.Next()
	if c.Index() != 2 {
		t.Errorf("expected second Next to target 2, got %d", c.Index())
	}

	for c.Step(10 * time.Millisecond) {
	}
	if c.Position() != 2 {
		t.Errorf("expected to settle on 2, got %v", c.Position())
	}
}

func TestCarousel_SetCount(t *testing.T) {
	c := New(5, 0)
	c.ScrollTo(4)

	c.SetCount(3)
	if c.Index() != 2 || c.Position() != 2 {
		t.Errorf("expected clamp to last page 2, got %d/%v", c.Index(), c.Position())
	}

	c.SetCount(10)
	if c.Index() != 2 {
		t.Errorf("expected growing to keep page 2, got %d", c.Index())
	}

	c.SetCount(0)
	if c.Index() != -1 {
		t.Errorf("expected -1 for empty carousel, got %d", c.Index())
	}
	if c.NextVisible() || c.PreviousVisible() {
		t.Error("buttons should be hidden on an empty carousel")
	}
	if c.Next() || c.ScrollTo(0) {
		t.Error("navigation on an empty carousel should be ignored")
	}

	var zero Carousel
	if zero.Count() != 0 || zero.Index() != -1 {
		t.Error("zero value should be an empty carousel")
	}
}

func TestCarousel_Jump(t *testing.T) {
	c := New(4, time.Second)

	if !c.Jump(3) {
		t.Fatal("expected jump to page 3")
	}
	if c.Animating() || c.Position() != 3 {
		t.Errorf("jump should not animate, got position %v", c.Position())
	}
	if c.Jump(4) || c.Index() != 3 {
		t.Errorf("out of range jump should be ignored, index %d", c.Index())
	}
}
