// Package carousel implements page navigation for the tour: bounds checked
// jumps, relative flips, the animated scroll position and the visibility of
// the previous and next buttons.
package carousel

import "time"

// GotoPage validates a jump from current to requested in a carousel of
// count pages. Out of range requests are ignored: the result is current
// and false.
func GotoPage(current, requested, count int) (int, bool) {
	if requested < 0 || requested >= count {
		return current, false
	}
	return requested, true
}

// Next moves one page forward.
func Next(current, count int) (int, bool) {
	return GotoPage(current, current+1, count)
}

// Previous moves one page back.
func Previous(current, count int) (int, bool) {
	return GotoPage(current, current-1, count)
}

// Flip moves by a signed offset.
func Flip(current, offset, count int) (int, bool) {
	return GotoPage(current, current+offset, count)
}

// NextButtonVisible reports whether the next button shows at a scroll
// position. The position is fractional while a scroll is animating; the
// button flips at the midpoint between the last two pages.
func NextButtonVisible(position float64, count int) bool {
	return position+0.5 <= float64(count-1)
}

// PreviousButtonVisible reports whether the previous button shows at a
// scroll position.
func PreviousButtonVisible(position float64) bool {
	return position >= 0.5
}

// Carousel tracks the current page and the animated scroll position.
// The zero value is an empty carousel that jumps without animation.
type Carousel struct {
	count    int
	index    int
	position float64

	duration time.Duration
	from     float64
	elapsed  time.Duration
}

// New returns a carousel of count pages at the first page. Scrolls take
// duration; zero jumps immediately.
func New(count int, duration time.Duration) Carousel {
	c := Carousel{duration: duration}
	c.SetCount(count)
	return c
}

// Count returns the number of pages.
func (c Carousel) Count() int {
	return c.count
}

// Index returns the page the carousel is at or scrolling to, or -1 when
// the carousel is empty.
func (c Carousel) Index() int {
	if c.count == 0 {
		return -1
	}
	return c.index
}

// Position returns the scroll position. It equals Index unless a scroll is
// in progress.
func (c Carousel) Position() float64 {
	return c.position
}

// Animating reports whether a scroll is in progress.
func (c Carousel) Animating() bool {
	return c.position != float64(c.index)
}

// SetCount changes the number of pages, keeping the current page when it
// is still valid and moving to the last page otherwise.
func (c *Carousel) SetCount(count int) {
	if count < 0 {
		count = 0
	}
	c.count = count
	switch {
	case count == 0:
		c.index = 0
	case c.index >= count:
		c.index = count - 1
	}
	c.position = float64(c.index)
	c.elapsed = 0
}

// ScrollTo starts a scroll to page i. Out of range requests are ignored
// and reported with false.
func (c *Carousel) ScrollTo(i int) bool {
	target, ok := GotoPage(c.index, i, c.count)
	if !ok {
		return false
	}
	c.from = c.position
	c.index = target
	c.elapsed = 0
	if c.duration <= 0 {
		c.position = float64(target)
	}
	return true
}

// Jump moves to page i without animating. Out of range requests are
// ignored and reported with false.
func (c *Carousel) Jump(i int) bool {
	target, ok := GotoPage(c.index, i, c.count)
	if !ok {
		return false
	}
	c.index = target
	c.position = float64(target)
	c.elapsed = 0
	return true
}

// Next scrolls one page forward.
func (c *Carousel) Next() bool {
	return c.ScrollTo(c.index + 1)
}

// Previous scrolls one page back.
func (c *Carousel) Previous() bool {
	return c.ScrollTo(c.index - 1)
}

// Flip scrolls by offset pages.
func (c *Carousel) Flip(offset int) bool {
	return c.ScrollTo(c.index + offset)
}

// Step advances the scroll animation by dt and reports whether it is still
// in progress.
func (c *Carousel) Step(dt time.Duration) bool {
	if !c.Animating() {
		return false
	}
	c.elapsed += dt
	if c.duration <= 0 || c.elapsed >= c.duration {
		c.position = float64(c.index)
		return false
	}
	t := float64(c.elapsed) / float64(c.duration)
	eased := 1 - (1-t)*(1-t)*(1-t)
	c.position = c.from + (float64(c.index)-c.from)*eased
	return true
}

// NextVisible reports whether the next button shows at the current scroll
// position.
func (c Carousel) NextVisible() bool {
	return c.count > 0 && NextButtonVisible(c.position, c.count)
}

// PreviousVisible reports whether the previous button shows at the current
// scroll position.
func (c Carousel) PreviousVisible() bool {
	return c.count > 0 && PreviousButtonVisible(c.position)
}
