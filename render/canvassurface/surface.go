// Package canvassurface implements render.Surface on top of
// github.com/tdewolff/canvas. Each shape is vector-drawn onto a canvas,
// rasterized, and composited into a persistent framebuffer through the
// active clip stack; one canvas unit equals one framebuffer pixel.
package canvassurface

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/kelibst/praise-present-v2-sub002/fonts"
	"github.com/kelibst/praise-present-v2-sub002/geometry"
	"github.com/kelibst/praise-present-v2-sub002/logx"
	"github.com/kelibst/praise-present-v2-sub002/render"
	"github.com/kelibst/praise-present-v2-sub002/shape"
)

// Canvas font sizes are points; surface coordinates are pixels at 1 dpmm.
const ptPerPixel = 72.0 / 25.4

// Options configures a Surface.
type Options struct {
	// BaseDir roots relative image paths. Empty forbids path lookups.
	BaseDir string
	// Images are decoded on demand and addressed as builtin:<name>.
	Images map[string][]byte
}

// Surface rasterizes shapes into an RGBA framebuffer.
type Surface struct {
	width  float64
	height float64
	opts   Options

	base  *image.RGBA
	clips []geometry.Rect

	fontMu   sync.Mutex
	families map[string]*canvas.FontFamily

	imageMu sync.Mutex
	images  map[string]image.Image
}

var _ render.Surface = (*Surface)(nil)

// New creates a surface of the given pixel dimensions.
func New(width, height float64, opts Options) *Surface {
	s := &Surface{
		width:    width,
		height:   height,
		opts:     opts,
		families: map[string]*canvas.FontFamily{},
		images:   map[string]image.Image{},
	}
	s.base = image.NewRGBA(image.Rect(0, 0, pixelDim(width), pixelDim(height)))
	return s
}

func pixelDim(v float64) int {
	n := int(math.Ceil(v))
	if n < 1 {
		n = 1
	}
	return n
}

func (s *Surface) BeginFrame() error {
	if s.width <= 0 || s.height <= 0 {
		return fmt.Errorf("surface has no drawable area (%gx%g)", s.width, s.height)
	}
	return nil
}

func (s *Surface) EndFrame() error { return nil }

// Clear erases to transparent; the slide's background shape supplies the
// visible base color.
func (s *Surface) Clear(region *geometry.Rect) {
	target := s.base.Bounds()
	if region != nil {
		target = s.imageRect(*region)
	}
	draw.Draw(s.base, target, image.Transparent, image.Point{}, draw.Src)
}

func (s *Surface) PushClip(region geometry.Rect) {
	s.clips = append(s.clips, region)
}

func (s *Surface) PopClip() {
	if len(s.clips) > 0 {
		s.clips = s.clips[:len(s.clips)-1]
	}
}

func (s *Surface) Resize(width, height float64) {
	s.width, s.height = width, height
	s.base = image.NewRGBA(image.Rect(0, 0, pixelDim(width), pixelDim(height)))
	s.clips = s.clips[:0]
}

func (s *Surface) Size() geometry.Size {
	return geometry.Sz(s.width, s.height)
}

// Image exposes the current framebuffer. The engine owns the frame cycle;
// read it between frames, not during one.
func (s *Surface) Image() *image.RGBA { return s.base }

// EncodePNG writes the framebuffer as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, s.base); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WritePNG saves the framebuffer to a file.
func (s *Surface) WritePNG(path string) error {
	var buf bytes.Buffer
	if err := s.EncodePNG(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write png %s: %w", path, err)
	}
	return nil
}

// DrawShape vector-draws one shape and composites it into the framebuffer
// through the clip stack.
func (s *Surface) DrawShape(sh *shape.Shape) error {
	if !sh.Visible || sh.Opacity <= 0 {
		return nil
	}

	c := canvas.New(s.width, s.height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)
	if sh.Rotation != 0 {
		center := geometry.RectFrom(sh.Pos, sh.Size).Center()
		deg := sh.Rotation * 180 / math.Pi
		ctx.ComposeView(canvas.Identity.
			Translate(center.X, center.Y).
			Rotate(deg).
			Translate(-center.X, -center.Y))
	}

	clamp, err := s.draw(ctx, sh)
	if err != nil {
		return err
	}

	img := rasterizer.Draw(c, canvas.DPMM(1.0), canvas.DefaultColorSpace)
	s.composite(img, sh.Opacity, clamp)
	return nil
}

// draw dispatches on the shape kind. The returned rectangle, when non-nil,
// bounds the composite (cover-fit images overflow their box and must not
// leak outside it).
func (s *Surface) draw(ctx *canvas.Context, sh *shape.Shape) (*geometry.Rect, error) {
	switch sh.Kind {
	case shape.KindBackground:
		return s.drawBackground(ctx, sh)
	case shape.KindRectangle:
		return nil, s.drawRectangle(ctx, sh)
	case shape.KindText:
		return nil, s.drawText(ctx, sh)
	case shape.KindImage:
		return s.drawImage(ctx, sh)
	default:
		return nil, fmt.Errorf("shape %s: unknown kind %v", sh.ID, sh.Kind)
	}
}

func (s *Surface) drawBackground(ctx *canvas.Context, sh *shape.Shape) (*geometry.Rect, error) {
	if sh.Background == nil {
		return nil, fmt.Errorf("shape %s: background payload missing", sh.ID)
	}
	box := geometry.RectFrom(sh.Pos, sh.Size)
	ctx.SetFillColor(sh.Background.Color.ToColor())
	ctx.SetStrokeColor(color.RGBA{})
	ctx.DrawPath(box.X, box.Y, canvas.Rectangle(box.Width, box.Height))

	if sh.Background.Image == "" {
		return nil, nil
	}
	img, err := s.loadImage(sh.Background.Image)
	if err != nil {
		// The color fill above already painted; the slide stays visible.
		logx.L().Warn("background image unavailable", "shape", sh.ID, "source", sh.Background.Image, "err", err)
		return nil, nil
	}
	drawImageFitted(ctx, img, box, shape.FitCover)
	return &box, nil
}

func (s *Surface) drawRectangle(ctx *canvas.Context, sh *shape.Shape) error {
	if sh.Rectangle == nil {
		return fmt.Errorf("shape %s: rectangle payload missing", sh.ID)
	}
	box := geometry.RectFrom(sh.Pos, sh.Size)
	path := canvas.Rectangle(box.Width, box.Height)
	if r := sh.Rectangle.Radius; r > 0 {
		path = canvas.RoundedRectangle(box.Width, box.Height, r)
	}

	// The rasterizer has no blur; the shadow draws as an offset pass at
	// reduced alpha.
	if shadow := sh.Style.Shadow; shadow != nil {
		col := shadow.Color
		col.A *= 0.5
		ctx.SetFillColor(col.ToColor())
		ctx.SetStrokeColor(color.RGBA{})
		ctx.DrawPath(box.X+shadow.OffsetX, box.Y+shadow.OffsetY, path)
	}

	if sh.Style.Fill != nil {
		ctx.SetFillColor(sh.Style.Fill.ToColor())
	} else {
		ctx.SetFillColor(color.RGBA{})
	}
	if sh.Style.Stroke != nil && sh.Style.StrokeWidth > 0 {
		ctx.SetStrokeColor(sh.Style.Stroke.ToColor())
		ctx.SetStrokeWidth(sh.Style.StrokeWidth)
	} else {
		ctx.SetStrokeColor(color.RGBA{})
	}
	ctx.DrawPath(box.X, box.Y, path)
	return nil
}

func (s *Surface) drawText(ctx *canvas.Context, sh *shape.Shape) error {
	if sh.Text == nil {
		return fmt.Errorf("shape %s: text payload missing", sh.ID)
	}
	st := sh.Text.Style
	face, err := s.fontFace(st)
	if err != nil {
		return fmt.Errorf("shape %s: %w", sh.ID, err)
	}

	box := geometry.RectFrom(sh.Pos, sh.Size)
	var textAlign canvas.TextAlign
	var anchorX float64
	switch strings.ToLower(st.Align) {
	case "center":
		textAlign = canvas.Center
		anchorX = box.X + box.Width/2
	case "right", "end":
		textAlign = canvas.Right
		anchorX = box.Right()
	default:
		textAlign = canvas.Left
		anchorX = box.X
	}

	metrics := face.Metrics()
	lineHeight := st.LineHeight
	if lineHeight <= 0 {
		lineHeight = metrics.LineHeight
	}

	cursorY := box.Y
	for _, line := range wrapText(face, sh.Text.Content, box.Width) {
		if line != "" {
			baseline := cursorY + metrics.Ascent
			ctx.DrawText(anchorX, baseline, canvas.NewTextLine(face, line, textAlign))
		}
		cursorY += lineHeight
	}
	return nil
}

func (s *Surface) drawImage(ctx *canvas.Context, sh *shape.Shape) (*geometry.Rect, error) {
	if sh.Image == nil {
		return nil, fmt.Errorf("shape %s: image payload missing", sh.ID)
	}
	box := geometry.RectFrom(sh.Pos, sh.Size)
	img, err := s.loadImage(sh.Image.Source)
	if err != nil {
		logx.L().Warn("image unavailable, drawing placeholder", "shape", sh.ID, "source", sh.Image.Source, "err", err)
		drawPlaceholder(ctx, box)
		return nil, nil
	}
	drawImageFitted(ctx, img, box, sh.Image.Fit)
	if sh.Image.Fit == shape.FitCover {
		return &box, nil
	}
	return nil, nil
}

// drawPlaceholder paints the tinted box shown where an image could not be
// resolved, with a diagonal so it reads as intentional.
func drawPlaceholder(ctx *canvas.Context, box geometry.Rect) {
	ctx.SetFillColor(geometry.RGBA(70, 70, 78, 1).ToColor())
	ctx.SetStrokeColor(geometry.RGBA(120, 120, 128, 1).ToColor())
	ctx.SetStrokeWidth(2)
	ctx.DrawPath(box.X, box.Y, canvas.Rectangle(box.Width, box.Height))

	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(box.Width, box.Height)
	ctx.SetFillColor(color.RGBA{})
	ctx.DrawPath(box.X, box.Y, p)
}

// drawImageFitted scales the image into the box per the fit mode: contain
// letterboxes, cover fills and overflows, stretch ignores aspect ratio.
func drawImageFitted(ctx *canvas.Context, img image.Image, box geometry.Rect, fit shape.FitMode) {
	iw := float64(img.Bounds().Dx())
	ih := float64(img.Bounds().Dy())
	if iw <= 0 || ih <= 0 || box.IsEmpty() {
		return
	}

	sx := box.Width / iw
	sy := box.Height / ih
	switch fit {
	case shape.FitStretch:
		// keep sx, sy
	case shape.FitCover:
		scale := math.Max(sx, sy)
		sx, sy = scale, scale
	default: // contain
		scale := math.Min(sx, sy)
		sx, sy = scale, scale
	}

	dstW, dstH := iw*sx, ih*sy
	x := box.X + (box.Width-dstW)/2
	y := box.Y + (box.Height-dstH)/2

	ctx.Push()
	ctx.ComposeView(canvas.Identity.Translate(x, y).Scale(sx, sy))
	ctx.DrawImage(0, 0, img, canvas.DPMM(1.0))
	ctx.Pop()
}

func (s *Surface) loadImage(source string) (image.Image, error) {
	s.imageMu.Lock()
	defer s.imageMu.Unlock()
	if img, ok := s.images[source]; ok {
		return img, nil
	}

	var data []byte
	if name, ok := strings.CutPrefix(source, "builtin:"); ok {
		blob, found := s.opts.Images[name]
		if !found {
			return nil, fmt.Errorf("image builtin:%s not provided", name)
		}
		data = blob
	} else {
		path := source
		if !filepath.IsAbs(path) {
			if s.opts.BaseDir == "" {
				return nil, fmt.Errorf("image %s: relative path without a base directory", source)
			}
			path = filepath.Join(s.opts.BaseDir, path)
		}
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read image %s: %w", source, err)
		}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", source, err)
	}
	s.images[source] = img
	return img, nil
}

func (s *Surface) fontFace(st shape.TextStyle) (*canvas.FontFace, error) {
	style := canvas.FontRegular
	if st.Bold {
		style = canvas.FontBold
	}
	if st.Italic {
		style |= canvas.FontItalic
	}

	family, err := s.fontFamily(st.Font, style)
	if err != nil {
		return nil, err
	}
	return family.Face(st.Size*ptPerPixel, st.Color.ToColor(), style, canvas.FontNormal), nil
}

// fontFamily resolves a registered font by name, falling back to any
// registered family so a misspelled name degrades instead of blanking the
// text layer. No registered fonts at all is an error.
func (s *Surface) fontFamily(name string, style canvas.FontStyle) (*canvas.FontFamily, error) {
	key := fmt.Sprintf("%s|%d", name, style)
	s.fontMu.Lock()
	defer s.fontMu.Unlock()
	if family, ok := s.families[key]; ok {
		return family, nil
	}

	data, err := fonts.Load(name)
	if err != nil {
		names := fonts.Names()
		if len(names) == 0 {
			return nil, err
		}
		name = names[0]
		if data, err = fonts.Load(name); err != nil {
			return nil, err
		}
	}

	family := canvas.NewFontFamily(name)
	if err := family.LoadFont(data, 0, style); err != nil {
		return nil, fmt.Errorf("load font %s: %w", name, err)
	}
	s.families[key] = family
	return family, nil
}

// composite blends the rasterized shape into the framebuffer, restricted
// to the clip stack intersection and the optional clamp rectangle.
func (s *Surface) composite(img image.Image, opacity float64, clamp *geometry.Rect) {
	region := geometry.Rect{Width: s.width, Height: s.height}
	for _, clip := range s.clips {
		region = region.Intersect(clip)
	}
	if clamp != nil {
		region = region.Intersect(*clamp)
	}
	if region.IsEmpty() {
		return
	}

	target := s.imageRect(region)
	if opacity >= 1 {
		draw.Draw(s.base, target, img, target.Min, draw.Over)
		return
	}
	mask := image.NewUniform(color.Alpha{A: uint8(opacity*255 + 0.5)})
	draw.DrawMask(s.base, target, img, target.Min, mask, image.Point{}, draw.Over)
}

func (s *Surface) imageRect(r geometry.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.Right())), int(math.Ceil(r.Bottom())),
	).Intersect(s.base.Bounds())
}
