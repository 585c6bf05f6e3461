package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kelibst/praise-present-v2-sub002/display"
	"github.com/kelibst/praise-present-v2-sub002/fonts"
	"github.com/kelibst/praise-present-v2-sub002/geometry"
	"github.com/kelibst/praise-present-v2-sub002/layout"
	"github.com/kelibst/praise-present-v2-sub002/logx"
	"github.com/kelibst/praise-present-v2-sub002/render/canvassurface"
	"github.com/kelibst/praise-present-v2-sub002/schedule"
	"github.com/kelibst/praise-present-v2-sub002/shape"
	"github.com/kelibst/praise-present-v2-sub002/styles"
)

func main() {
	output := flag.String("out", "output/slide.png", "PNG output path")
	width := flag.Float64("width", 1920, "viewport width in pixels")
	height := flag.Float64("height", 1080, "viewport height in pixels")
	text := flag.String("text", "Amazing grace, how sweet the sound", "slide text")
	background := flag.String("bg", "#101828", "background color (hex or rgb())")
	fontPath := flag.String("font", "", "TTF font file for the text layer")
	verbose := flag.Bool("v", false, "log rendering diagnostics")
	flag.Parse()

	if *verbose {
		logx.Set(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	if err := run(*output, *width, *height, *text, *background, *fontPath); err != nil {
		log.Fatalf("render slide: %v", err)
	}
	fmt.Printf("wrote %s\n", *output)
}

// run wires the demo pipeline: one canvas surface, one viewport, one
// immediate render of a lyric slide, exported as PNG.
func run(outputPath string, width, height float64, text, background, fontPath string) error {
	if fontPath != "" {
		if err := fonts.RegisterFile("sans", fontPath); err != nil {
			return err
		}
	}

	bg, err := styles.ParseColor(background)
	if err != nil {
		return fmt.Errorf("parse background color: %w", err)
	}

	surface := canvassurface.New(width, height, canvassurface.Options{})
	manager := display.NewManager(display.Options{
		Converter: display.ConverterFunc(func(content any, slideSize geometry.Size) ([]*layout.Responsive, error) {
			lyric, ok := content.(string)
			if !ok {
				return nil, fmt.Errorf("content is %T, want string", content)
			}
			return lyricSlide(lyric, bg, slideSize), nil
		}),
	})
	defer manager.Close()

	size := geometry.Sz(width, height)
	if err := manager.Register("main", surface, size, schedule.High, false); err != nil {
		return err
	}
	if _, err := manager.RequestRender("main", text, schedule.Immediate); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return surface.WritePNG(outputPath)
}

// lyricSlide builds the demo scene: a stretched background and a centered
// title that scales with the viewport.
func lyricSlide(lyric string, bg geometry.Color, slideSize geometry.Size) []*layout.Responsive {
	backdrop := shape.NewBackground("bg", slideSize, shape.BackgroundData{Color: bg})
	backdropWrap := layout.NewResponsive(backdrop)
	backdropWrap.SetSize(&layout.FlexSize{Width: layout.Percent(100), Height: layout.Percent(100)})
	backdropWrap.SetConfig(layout.Config{Mode: layout.ModeStretch})

	title := shape.NewText("title", geometry.Pt(0, 0), geometry.Sz(0, 0), shape.TextData{
		Content: lyric,
		Style:   shape.TextStyle{Font: "sans", Color: geometry.White, Align: "center"},
	})
	title.ZIndex = 10
	titleWrap := layout.NewResponsive(title)
	titleWrap.SetPosition(&layout.FlexPoint{X: layout.Percent(10), Y: layout.Percent(40)})
	titleWrap.SetSize(&layout.FlexSize{Width: layout.Percent(80), Height: layout.Percent(20)})
	titleWrap.SetConfig(layout.Config{Mode: layout.ModeCenter})
	titleWrap.Typography = &layout.TypographyConfig{
		BaseSize: layout.Px(64),
		Mode:     layout.ScaleLinear,
		MinSize:  16,
		MaxSize:  128,
	}

	return []*layout.Responsive{backdropWrap, titleWrap}
}
