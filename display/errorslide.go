package display

import (
	"github.com/kelibst/praise-present-v2-sub002/geometry"
	"github.com/kelibst/praise-present-v2-sub002/layout"
	"github.com/kelibst/praise-present-v2-sub002/shape"
)

// ErrorSlide builds the fallback slide shown when content conversion
// fails: a dark background, a fixed headline, and the failure detail. The
// text scales with the viewport like any other slide.
func ErrorSlide(detail string, slideSize geometry.Size) []*layout.Responsive {
	bg := shape.NewBackground("error-bg", slideSize, shape.BackgroundData{
		Color: geometry.RGB(24, 8, 8),
	})
	bgWrap := layout.NewResponsive(bg)
	bgWrap.SetSize(&layout.FlexSize{Width: layout.Percent(100), Height: layout.Percent(100)})
	bgWrap.SetConfig(layout.Config{Mode: layout.ModeStretch})

	title := shape.NewText("error-title", geometry.Pt(0, 0), geometry.Sz(0, 0), shape.TextData{
		Content: "Unable to display content",
		Style: shape.TextStyle{
			Font:  "sans",
			Color: geometry.RGB(255, 205, 205),
			Align: "center",
			Bold:  true,
		},
	})
	title.ZIndex = 10
	titleWrap := layout.NewResponsive(title)
	titleWrap.SetPosition(&layout.FlexPoint{X: layout.Percent(10), Y: layout.Percent(30)})
	titleWrap.SetSize(&layout.FlexSize{Width: layout.Percent(80), Height: layout.Percent(15)})
	titleWrap.Typography = &layout.TypographyConfig{
		BaseSize: layout.Px(48),
		Mode:     layout.ScaleLinear,
		MinSize:  16,
		MaxSize:  96,
	}

	message := shape.NewText("error-detail", geometry.Pt(0, 0), geometry.Sz(0, 0), shape.TextData{
		Content: detail,
		Style: shape.TextStyle{
			Font:  "sans",
			Color: geometry.RGB(220, 220, 220),
			Align: "center",
		},
	})
	message.ZIndex = 10
	messageWrap := layout.NewResponsive(message)
	messageWrap.SetPosition(&layout.FlexPoint{X: layout.Percent(15), Y: layout.Percent(50)})
	messageWrap.SetSize(&layout.FlexSize{Width: layout.Percent(70), Height: layout.Percent(25)})
	messageWrap.Typography = &layout.TypographyConfig{
		BaseSize: layout.Px(24),
		Mode:     layout.ScaleLinear,
		MinSize:  12,
		MaxSize:  48,
	}

	return []*layout.Responsive{bgWrap, titleWrap, messageWrap}
}
