// Package schedule batches and dispatches update requests for one or more
// rendering engines: five priority tiers with debounce delays, coalescing
// of requests that target the same entity, prerequisite ordering, and
// bounded retry with exponential backoff. Submission is fire-and-forget;
// failures surface through metrics, never through callbacks.
package schedule

import (
	"fmt"
	"time"
)

// Priority orders update requests. Immediate requests dispatch
// synchronously on submission; the other tiers are debounced by their
// configured delay.
type Priority int

const (
	Immediate Priority = iota
	High
	Medium
	Low
	Background
)

var priorityNames = [...]string{
	Immediate:  "immediate",
	High:       "high",
	Medium:     "medium",
	Low:        "low",
	Background: "background",
}

func (p Priority) String() string {
	if p < 0 || int(p) >= len(priorityNames) {
		return fmt.Sprintf("Priority(%d)", int(p))
	}
	return priorityNames[p]
}

// Type tags the kind of update a request carries.
type Type int

const (
	ContentChange Type = iota
	TextEdit
	PropertyChange
	LayoutChange
	ConfigChange
)

var typeNames = [...]string{
	ContentChange:  "content-change",
	TextEdit:       "text-edit",
	PropertyChange: "property-change",
	LayoutChange:   "layout-change",
	ConfigChange:   "config-change",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// TextEditPayload carries a text mutation for one shape.
type TextEditPayload struct {
	ShapeID string
	NewText string
	OldText string
}

// Request is one queued update. Payload is Type-specific: TextEditPayload
// for TextEdit, map[string]any for PropertyChange and ConfigChange,
// arbitrary content for ContentChange and LayoutChange.
type Request struct {
	ID       string
	Type     Type
	Viewport string
	Priority Priority
	Payload  any
	// DependsOn lists request ids that must finish first. Well-formed
	// callers never introduce cycles; the scheduler does not detect them
	// and a cyclic chain would simply starve.
	DependsOn []string

	retries   int
	notBefore time.Time
}

// coalesceKey identifies requests that may merge. Text edits include the
// shape id so edits to different shapes on one viewport stay separate.
type coalesceKey struct {
	typ      Type
	viewport string
	entity   string
}

func (r *Request) key() coalesceKey {
	k := coalesceKey{typ: r.Type, viewport: r.Viewport}
	if r.Type == TextEdit {
		if p, ok := r.Payload.(TextEditPayload); ok {
			k.entity = p.ShapeID
		}
	}
	return k
}

// merge folds an incoming request into the pending one sharing its key.
// Text edits and property changes keep the newest payload (a text merge
// preserves the pending request's OldText so the edit still describes the
// full change); config changes deep-merge their maps, newest values
// winning. Other types keep the newest payload too.
func (r *Request) merge(incoming *Request) {
	switch r.Type {
	case TextEdit:
		prev, okPrev := r.Payload.(TextEditPayload)
		next, okNext := incoming.Payload.(TextEditPayload)
		if okPrev && okNext {
			next.OldText = prev.OldText
			r.Payload = next
		} else {
			r.Payload = incoming.Payload
		}
	case ConfigChange:
		prev, okPrev := r.Payload.(map[string]any)
		next, okNext := incoming.Payload.(map[string]any)
		if okPrev && okNext {
			r.Payload = deepMerge(prev, next)
		} else {
			r.Payload = incoming.Payload
		}
	default:
		r.Payload = incoming.Payload
	}
	if len(incoming.DependsOn) > 0 {
		r.DependsOn = append(r.DependsOn, incoming.DependsOn...)
	}
}

func deepMerge(base, overlay map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		if subOverlay, ok := v.(map[string]any); ok {
			if subBase, ok := out[k].(map[string]any); ok {
				out[k] = deepMerge(subBase, subOverlay)
				continue
			}
		}
		out[k] = v
	}
	return out
}
