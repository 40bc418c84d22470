package pdf

// cursor tracks the vertical writing position across pages. All values are in
// document units (mm). bottom is the page height minus the bottom margin; the
// cursor must never pass it after an ensure call.
type cursor struct {
	y      float64
	top    float64
	bottom float64

	// onBreak runs whenever a new page is started.
	onBreak func()
	breaks  int
}

func newCursor(start, top, bottom float64) *cursor {
	return &cursor{y: start, top: top, bottom: bottom}
}

// ensure starts a new page and resets the cursor to the top margin when
// placing height would cross the bottom margin. Reports whether a break
// happened.
func (c *cursor) ensure(height float64) bool {
	if c.y+height > c.bottom {
		if c.onBreak != nil {
			c.onBreak()
		}
		c.y = c.top
		c.breaks++
		return true
	}
	return false
}

// advance moves the cursor down after content has been placed.
func (c *cursor) advance(height float64) {
	c.y += height
}
