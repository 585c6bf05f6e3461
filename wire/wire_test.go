package wire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelibst/praise-present-v2-sub002/geometry"
	"github.com/kelibst/praise-present-v2-sub002/shape"
)

func sampleShapes() []*shape.Shape {
	fill := geometry.RGB(30, 60, 120)
	stroke := geometry.RGBA(255, 255, 255, 0.8)

	text := shape.NewText("title", geometry.Pt(192, 432), geometry.Sz(1536, 216), shape.TextData{
		Content: "Amazing Grace",
		Style: shape.TextStyle{
			Font: "serif", Size: 64, LineHeight: 89.6,
			Color: geometry.White, Align: "center", Bold: true,
		},
	})
	text.ZIndex = 10

	rect := shape.NewRectangle("panel", geometry.Pt(100, 100), geometry.Sz(400, 300), shape.RectangleData{Radius: 12})
	rect.Style.Fill = &fill
	rect.Style.Stroke = &stroke
	rect.Style.StrokeWidth = 2
	rect.Style.Shadow = &shape.Shadow{Color: geometry.Black, OffsetX: 4, OffsetY: 4, Blur: 8}
	rect.Rotation = 0.25

	bg := shape.NewBackground("bg", geometry.Sz(1920, 1080), shape.BackgroundData{
		Color: geometry.RGB(8, 8, 16), Image: "stars.png",
	})

	img := shape.NewImage("logo", geometry.Pt(1700, 40), geometry.Sz(180, 180), shape.ImageData{
		Source: "logo.png", Fit: shape.FitCover,
	})
	img.Opacity = 0.7

	return []*shape.Shape{text, rect, bg, img}
}

func TestSerializeRoundTripIsIdempotent(t *testing.T) {
	for _, s := range sampleShapes() {
		once := Serialize(s)
		twice := Serialize(Deserialize(once))
		assert.Equal(t, once, twice, "shape %s", s.ID)
	}
}

func TestTypeSpecificFieldsOnlyForMatchingType(t *testing.T) {
	for _, s := range sampleShapes() {
		rec := Serialize(s)
		data, err := json.Marshal(rec)
		require.NoError(t, err)
		var fields map[string]any
		require.NoError(t, json.Unmarshal(data, &fields))

		switch s.Kind {
		case shape.KindText:
			assert.Contains(t, fields, "textStyle")
			assert.NotContains(t, fields, "fill")
			assert.NotContains(t, fields, "source")
		case shape.KindRectangle:
			assert.Contains(t, fields, "fill")
			assert.NotContains(t, fields, "textStyle")
		case shape.KindBackground:
			assert.Contains(t, fields, "backgroundColor")
			assert.NotContains(t, fields, "fill")
		case shape.KindImage:
			assert.Contains(t, fields, "source")
			assert.NotContains(t, fields, "textStyle")
		}
	}
}

func TestColorDecodesFromEveryRepresentation(t *testing.T) {
	cases := []struct {
		name string
		json string
		want Color
	}{
		{"record", `{"r":10,"g":20,"b":30,"a":0.5}`, Color{10, 20, 30, 0.5}},
		{"record without alpha", `{"r":10,"g":20,"b":30}`, Color{10, 20, 30, 1}},
		{"hex", `"#1e3c78"`, Color{30, 60, 120, 1}},
		{"rgb string", `"rgb(30, 60, 120)"`, Color{30, 60, 120, 1}},
		{"rgba string", `"rgba(30, 60, 120, 0.5)"`, Color{30, 60, 120, 0.5}},
		{"garbage", `"chartreuse-ish"`, Color{255, 255, 255, 1}},
		{"wrong type", `42`, Color{255, 255, 255, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var c Color
			require.NoError(t, json.Unmarshal([]byte(tc.json), &c))
			assert.Equal(t, tc.want, c)
		})
	}
}

func TestColorAlwaysEncodesAsRecord(t *testing.T) {
	var c Color
	require.NoError(t, json.Unmarshal([]byte(`"#ff0000"`), &c))
	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"r":255,"g":0,"b":0,"a":1}`, string(data))
}

func TestSlideEnvelopeSplitsBackground(t *testing.T) {
	slide := SerializeSlide("slide-1", sampleShapes())

	require.NotNil(t, slide.Background)
	assert.Equal(t, "bg", slide.Background.ID)
	assert.Len(t, slide.Shapes, 3)
	assert.Equal(t, 4, slide.Metadata.ShapeCount)
	assert.Equal(t, "presentation", slide.Metadata.CoordinateSystem)
	assert.NotZero(t, slide.Metadata.Timestamp)

	back := DeserializeSlide(slide)
	require.Len(t, back, 4)
	assert.Equal(t, shape.KindBackground, back[0].Kind)
}

func TestSlideRoundTripThroughBytes(t *testing.T) {
	slide := SerializeSlide("slide-1", sampleShapes())
	data, err := Marshal(slide)
	require.NoError(t, err)

	decoded, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, slide, decoded)
}

func TestUnmarshalToleratesUnknownFields(t *testing.T) {
	payload := `{
		"id": "s1",
		"futureEnvelopeField": true,
		"shapes": [{
			"id": "t1", "type": "text", "x": 0, "y": 0,
			"width": 100, "height": 50, "opacity": 1, "zIndex": 0,
			"visible": true, "text": "hi",
			"textStyle": {"font": "sans", "size": 24, "lineHeight": 33.6, "color": "#ffffff"},
			"futureShapeField": "ignored"
		}],
		"metadata": {"coordinateSystem": "presentation", "timestamp": 1, "shapeCount": 1}
	}`
	slide, err := Unmarshal([]byte(payload))
	require.NoError(t, err)
	require.Len(t, slide.Shapes, 1)
	assert.Equal(t, "hi", slide.Shapes[0].Text)
	assert.Equal(t, Color{255, 255, 255, 1}, slide.Shapes[0].TextStyle.Color)
}

func TestUnknownShapeTypeSubstitutesHiddenShape(t *testing.T) {
	s := Deserialize(SerializedShape{ID: "x", Type: "hologram", Visible: true})
	assert.Equal(t, shape.KindRectangle, s.Kind)
	assert.False(t, s.Visible)
}
