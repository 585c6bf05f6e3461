package render

import (
	"sort"

	"github.com/kelibst/praise-present-v2-sub002/geometry"
)

// Region is a screen rectangle known to need a repaint, together with the
// shapes responsible for it.
type Region struct {
	Bounds   geometry.Rect
	Shapes   map[string]struct{}
	Priority int    // higher repaints first
	Cause    string // diagnostic tag: "text-edit", "bounds", "resize", ...
}

// NewRegion builds a region over the given shape ids.
func NewRegion(bounds geometry.Rect, priority int, cause string, shapeIDs ...string) Region {
	shapes := make(map[string]struct{}, len(shapeIDs))
	for _, id := range shapeIDs {
		shapes[id] = struct{}{}
	}
	return Region{Bounds: bounds, Shapes: shapes, Priority: priority, Cause: cause}
}

// regionSet accumulates dirty regions between renders, keeping the merge
// invariant: no two stored regions overlap.
type regionSet struct {
	minArea    float64
	maxRegions int
	regions    []Region
	overflowed bool
}

// Add merges the region into the set. Regions below the area threshold are
// discarded outright: repainting them costs more than they save. When the
// merged set would exceed the region cap the set flips to overflowed and the
// caller must fall back to a full repaint.
func (rs *regionSet) Add(r Region) {
	if r.Bounds.Area() < rs.minArea {
		return
	}
	// Merging can cascade: the union of two regions may now overlap a
	// third, so keep folding until the new region is disjoint from the rest.
	merged := r
	for {
		collided := false
		for i := 0; i < len(rs.regions); i++ {
			if !rs.regions[i].Bounds.Intersects(merged.Bounds) {
				continue
			}
			existing := rs.regions[i]
			merged = mergeRegions(existing, merged)
			rs.regions = append(rs.regions[:i], rs.regions[i+1:]...)
			collided = true
			break
		}
		if !collided {
			break
		}
	}
	rs.regions = append(rs.regions, merged)
	if rs.maxRegions > 0 && len(rs.regions) > rs.maxRegions {
		rs.overflowed = true
	}
}

func mergeRegions(a, b Region) Region {
	out := Region{
		Bounds:   a.Bounds.Union(b.Bounds),
		Shapes:   make(map[string]struct{}, len(a.Shapes)+len(b.Shapes)),
		Priority: a.Priority,
		Cause:    a.Cause,
	}
	if b.Priority > a.Priority {
		out.Priority = b.Priority
		out.Cause = b.Cause
	}
	for id := range a.Shapes {
		out.Shapes[id] = struct{}{}
	}
	for id := range b.Shapes {
		out.Shapes[id] = struct{}{}
	}
	return out
}

// Sorted returns the regions in descending priority order.
func (rs *regionSet) Sorted() []Region {
	out := make([]Region, len(rs.regions))
	copy(out, rs.regions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out
}

func (rs *regionSet) Len() int { return len(rs.regions) }

func (rs *regionSet) Clear() {
	rs.regions = rs.regions[:0]
	rs.overflowed = false
}
