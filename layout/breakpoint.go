package layout

// Breakpoint names a container-size range with a partial layout override.
// Nil bounds are open-ended.
type Breakpoint struct {
	Name      string   `json:"name"`
	MinWidth  *float64 `json:"minWidth,omitempty"`
	MaxWidth  *float64 `json:"maxWidth,omitempty"`
	MinHeight *float64 `json:"minHeight,omitempty"`
	MaxHeight *float64 `json:"maxHeight,omitempty"`
	Override  Override `json:"override"`
}

// Override is a partial Config; nil fields leave the base config untouched.
type Override struct {
	Mode        *Mode       `json:"mode,omitempty"`
	Padding     *EdgeValues `json:"padding,omitempty"`
	Margin      *EdgeValues `json:"margin,omitempty"`
	AspectRatio *float64    `json:"aspectRatio,omitempty"`
	MinWidth    *float64    `json:"minWidth,omitempty"`
	MaxWidth    *float64    `json:"maxWidth,omitempty"`
	MinHeight   *float64    `json:"minHeight,omitempty"`
	MaxHeight   *float64    `json:"maxHeight,omitempty"`
}

// Matches reports whether the container falls inside the breakpoint bounds.
func (b Breakpoint) Matches(c Container) bool {
	if b.MinWidth != nil && c.Width < *b.MinWidth {
		return false
	}
	if b.MaxWidth != nil && c.Width > *b.MaxWidth {
		return false
	}
	if b.MinHeight != nil && c.Height < *b.MinHeight {
		return false
	}
	if b.MaxHeight != nil && c.Height > *b.MaxHeight {
		return false
	}
	return true
}

// Current returns the first breakpoint, in declaration order, whose bounds
// contain the container, or nil when none match. When callers declare
// overlapping ranges the earliest declaration wins; that tie-break is
// defined behavior, not an accident of iteration.
func Current(breakpoints []Breakpoint, c Container) *Breakpoint {
	for i := range breakpoints {
		if breakpoints[i].Matches(c) {
			return &breakpoints[i]
		}
	}
	return nil
}

// Merge layers the override over the base config and returns the result.
func (o Override) Merge(base Config) Config {
	out := base
	if o.Mode != nil {
		out.Mode = *o.Mode
	}
	if o.Padding != nil {
		out.Padding = *o.Padding
	}
	if o.Margin != nil {
		out.Margin = *o.Margin
	}
	if o.AspectRatio != nil {
		out.AspectRatio = o.AspectRatio
	}
	if o.MinWidth != nil {
		out.MinWidth = o.MinWidth
	}
	if o.MaxWidth != nil {
		out.MaxWidth = o.MaxWidth
	}
	if o.MinHeight != nil {
		out.MinHeight = o.MinHeight
	}
	if o.MaxHeight != nil {
		out.MaxHeight = o.MaxHeight
	}
	return out
}

// EffectiveConfig resolves the current breakpoint for the container and
// merges its override over the base config.
func EffectiveConfig(base Config, breakpoints []Breakpoint, c Container) Config {
	bp := Current(breakpoints, c)
	if bp == nil {
		return base
	}
	return bp.Override.Merge(base)
}
