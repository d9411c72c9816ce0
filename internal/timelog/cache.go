package timelog

import (
	"time"
)

type windowKey struct {
	min time.Time
	max time.Time
}

func (k windowKey) equal(other windowKey) bool {
	return k.min.Equal(other.min) && k.max.Equal(other.max)
}

// windowCache remembers the most recently built window. Any write to the
// log must invalidate it.
type windowCache struct {
	key    windowKey
	window *TimeWindow
	valid  bool
}

func (c *windowCache) get(key windowKey) (*TimeWindow, bool) {
	if !c.valid || !c.key.equal(key) {
		return nil, false
	}
	return c.window, true
}

func (c *windowCache) put(key windowKey, w *TimeWindow) {
	c.key = key
	c.window = w
	c.valid = true
}

func (c *windowCache) invalidate() {
	c.key = windowKey{}
	c.window = nil
	c.valid = false
}
