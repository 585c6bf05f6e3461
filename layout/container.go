package layout

// DefaultBaseFontSize is the root font size assumed when a container does
// not specify one.
const DefaultBaseFontSize = 16.0

// Container describes the surface a shape tree is laid out into. Width and
// Height are logical pixels; PixelDensity scales logical pixels to device
// pixels and only matters to the drawing backend.
type Container struct {
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	PixelDensity float64 `json:"pixelDensity,omitempty"`
	BaseFontSize float64 `json:"baseFontSize,omitempty"` // root font size for rem
	FontSize     float64 `json:"fontSize,omitempty"`     // local font size for em
}

func (c Container) rootFontSize() float64 {
	if c.BaseFontSize > 0 {
		return c.BaseFontSize
	}
	return DefaultBaseFontSize
}

func (c Container) localFontSize() float64 {
	if c.FontSize > 0 {
		return c.FontSize
	}
	return c.rootFontSize()
}

// WithFontSize returns the container with the local font size replaced,
// used when resolving em values for a specific text shape.
func (c Container) WithFontSize(size float64) Container {
	c.FontSize = size
	return c
}

// Signature is the comparable identity of a container for caching purposes:
// two containers with equal signatures resolve every flexible value to the
// same pixels.
type Signature struct {
	Width        float64
	Height       float64
	PixelDensity float64
	BaseFontSize float64
	FontSize     float64
}

// Signature returns the container's cache signature.
func (c Container) Signature() Signature {
	return Signature{
		Width:        c.Width,
		Height:       c.Height,
		PixelDensity: c.PixelDensity,
		BaseFontSize: c.BaseFontSize,
		FontSize:     c.FontSize,
	}
}
