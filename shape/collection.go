package shape

import (
	"sort"

	"github.com/kelibst/praise-present-v2-sub002/geometry"
)

// Collection is an ordered, identity-indexed set of shapes. Iteration order
// is always ascending z-index; for equal z-indexes insertion order is kept.
// The sorted view is cached and rebuilt lazily after any mutation that can
// change paint order.
type Collection struct {
	byID  map[string]*Shape
	order []*Shape // insertion order, the stable secondary sort key

	sorted []*Shape
	stale  bool
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{byID: map[string]*Shape{}}
}

// Len returns the number of shapes.
func (c *Collection) Len() int { return len(c.byID) }

// Add inserts the shape, replacing any existing shape with the same id.
func (c *Collection) Add(s *Shape) {
	if s == nil || s.ID == "" {
		return
	}
	if _, exists := c.byID[s.ID]; exists {
		c.Remove(s.ID)
	}
	c.byID[s.ID] = s
	c.order = append(c.order, s)
	c.stale = true
}

// Get returns the shape with the given id, or nil.
func (c *Collection) Get(id string) *Shape { return c.byID[id] }

// Remove deletes the shape with the given id and reports whether it existed.
func (c *Collection) Remove(id string) bool {
	s, ok := c.byID[id]
	if !ok {
		return false
	}
	delete(c.byID, id)
	for i, candidate := range c.order {
		if candidate == s {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.stale = true
	return true
}

// Clear removes every shape.
func (c *Collection) Clear() {
	c.byID = map[string]*Shape{}
	c.order = c.order[:0]
	c.sorted = nil
	c.stale = false
}

// SetZIndex changes a shape's z-index and invalidates the paint order.
// Mutating ZIndex directly on a shape requires a subsequent Invalidate call;
// this helper does both.
func (c *Collection) SetZIndex(id string, z int) bool {
	s, ok := c.byID[id]
	if !ok {
		return false
	}
	s.ZIndex = z
	c.stale = true
	return true
}

// Invalidate discards the cached paint order. Call it after mutating a
// shape's ZIndex field directly.
func (c *Collection) Invalidate() { c.stale = true }

// All returns the shapes in paint order (ascending z-index). The returned
// slice is the cache itself; callers must not modify it.
func (c *Collection) All() []*Shape {
	if c.stale || c.sorted == nil {
		c.sorted = make([]*Shape, len(c.order))
		copy(c.sorted, c.order)
		sort.SliceStable(c.sorted, func(i, j int) bool {
			return c.sorted[i].ZIndex < c.sorted[j].ZIndex
		})
		c.stale = false
	}
	return c.sorted
}

// HitTest returns the shapes whose bounds contain the point, topmost first.
// Invisible shapes are skipped.
func (c *Collection) HitTest(p geometry.Point) []*Shape {
	ordered := c.All()
	var hits []*Shape
	for i := len(ordered) - 1; i >= 0; i-- {
		s := ordered[i]
		if !s.Visible {
			continue
		}
		if s.Bounds().Contains(p) {
			hits = append(hits, s)
		}
	}
	return hits
}

// HitRegion returns the shapes whose bounds intersect the rectangle,
// topmost first. Invisible shapes are skipped.
func (c *Collection) HitRegion(r geometry.Rect) []*Shape {
	ordered := c.All()
	var hits []*Shape
	for i := len(ordered) - 1; i >= 0; i-- {
		s := ordered[i]
		if !s.Visible {
			continue
		}
		if s.Bounds().Intersects(r) {
			hits = append(hits, s)
		}
	}
	return hits
}
