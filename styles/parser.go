// Package styles parses CSS-like style value strings: colors in hex or
// rgb()/rgba() function form, and lengths carrying responsive units with
// optional min()/max() pixel clamps.
package styles

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/kelibst/praise-present-v2-sub002/geometry"
)

var (
	styleLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t]+`},
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{8}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{4}|[0-9A-Fa-f]{3})`},
		{Name: "Number", Pattern: `[-+]?(?:\d+\.\d+|\.\d+|\d+)(?:px|vmin|vmax|vw|vh|rem|em|%)?`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[(),]`},
	})

	colorParser = participle.MustBuild[colorExpr](
		participle.Lexer(styleLexer),
		participle.Elide("Whitespace"),
	)

	lengthParser = participle.MustBuild[lengthExpr](
		participle.Lexer(styleLexer),
		participle.Elide("Whitespace"),
	)
)

// colorExpr is the root of the color grammar: a hex literal or an
// rgb()/rgba() function call.
type colorExpr struct {
	Hex  string     `parser:"  @Color"`
	Func *colorFunc `parser:"| @@"`
}

type colorFunc struct {
	Name string   `parser:"@('rgb' | 'rgba')"`
	Args []number `parser:"'(' @Number (',' @Number)* ')'"`
}

// lengthExpr is the root of the length grammar: a number with an optional
// unit suffix plus optional min()/max() pixel clamps in either order.
type lengthExpr struct {
	Length scalar        `parser:"@Number"`
	Clamps []lengthClamp `parser:"@@*"`
}

type lengthClamp struct {
	Kind  string `parser:"@('min' | 'max')"`
	Value number `parser:"'(' @Number ')'"`
}

// number captures a bare numeric token; a unit suffix here is a parse error.
type number float64

func (n *number) Capture(values []string) error {
	f, err := strconv.ParseFloat(values[0], 64)
	if err != nil {
		return fmt.Errorf("expected a plain number, got %q", values[0])
	}
	*n = number(f)
	return nil
}

// scalar captures a numeric token together with its unit suffix.
type scalar struct {
	Value float64
	Unit  string
}

var unitSuffixes = []string{"vmin", "vmax", "rem", "px", "vw", "vh", "em", "%"}

func (s *scalar) Capture(values []string) error {
	raw := values[0]
	num := raw
	for _, suf := range unitSuffixes {
		if strings.HasSuffix(raw, suf) {
			s.Unit = suf
			num = strings.TrimSuffix(raw, suf)
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return fmt.Errorf("invalid length %q: %w", raw, err)
	}
	s.Value = f
	return nil
}

// Length is the parsed form of a flexible length string.
type Length struct {
	Value float64
	Unit  string // "", "px", "%", "vw", "vh", "vmin", "vmax", "rem", "em"
	Min   *float64
	Max   *float64
}

// ParseColor parses a color string in hex (#rgb, #rgba, #rrggbb, #rrggbbaa)
// or rgb(r,g,b) / rgba(r,g,b,a) form into the normalized component record.
// Channels are 0-255; the rgba alpha argument is a [0,1] fraction.
func ParseColor(input string) (geometry.Color, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return geometry.White, fmt.Errorf("empty color string")
	}
	expr, err := colorParser.ParseString("", input)
	if err != nil {
		return geometry.White, fmt.Errorf("parse color %q: %w", input, err)
	}
	if expr.Hex != "" {
		return parseHexColor(expr.Hex)
	}
	return expr.Func.toColor()
}

func (f *colorFunc) toColor() (geometry.Color, error) {
	switch f.Name {
	case "rgb":
		if len(f.Args) != 3 {
			return geometry.White, fmt.Errorf("rgb() wants 3 arguments, got %d", len(f.Args))
		}
		return geometry.RGB(int(f.Args[0]), int(f.Args[1]), int(f.Args[2])).Clamp(), nil
	case "rgba":
		if len(f.Args) != 4 {
			return geometry.White, fmt.Errorf("rgba() wants 4 arguments, got %d", len(f.Args))
		}
		return geometry.RGBA(int(f.Args[0]), int(f.Args[1]), int(f.Args[2]), float64(f.Args[3])).Clamp(), nil
	default:
		return geometry.White, fmt.Errorf("unknown color function %q", f.Name)
	}
}

func parseHexColor(hex string) (geometry.Color, error) {
	digits := strings.TrimPrefix(hex, "#")
	expand := func(s string) string {
		var b strings.Builder
		for _, r := range s {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		return b.String()
	}
	alpha := 1.0
	switch len(digits) {
	case 3:
		digits = expand(digits)
	case 4:
		a, err := strconv.ParseUint(expand(digits[3:]), 16, 16)
		if err != nil {
			return geometry.White, fmt.Errorf("invalid hex alpha in %q", hex)
		}
		alpha = float64(a) / 255
		digits = expand(digits[:3])
	case 6:
		// already full form
	case 8:
		a, err := strconv.ParseUint(digits[6:], 16, 16)
		if err != nil {
			return geometry.White, fmt.Errorf("invalid hex alpha in %q", hex)
		}
		alpha = float64(a) / 255
		digits = digits[:6]
	default:
		return geometry.White, fmt.Errorf("invalid hex color %q", hex)
	}
	c, ok := geometry.FromHex("#" + digits)
	if !ok {
		return geometry.White, fmt.Errorf("invalid hex color %q", hex)
	}
	return c.WithAlpha(alpha), nil
}

// ParseLength parses a flexible length string such as "12px", "80%",
// "10vw", "1.5em" or "5vmin min(16) max(48)". A bare number is unit-less;
// the caller decides what that means (usually absolute pixels).
func ParseLength(input string) (Length, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Length{}, fmt.Errorf("empty length string")
	}
	expr, err := lengthParser.ParseString("", input)
	if err != nil {
		return Length{}, fmt.Errorf("parse length %q: %w", input, err)
	}
	out := Length{Value: expr.Length.Value, Unit: expr.Length.Unit}
	for _, clamp := range expr.Clamps {
		v := float64(clamp.Value)
		switch clamp.Kind {
		case "min":
			out.Min = &v
		case "max":
			out.Max = &v
		}
	}
	return out, nil
}
