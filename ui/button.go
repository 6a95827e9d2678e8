package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/OpticalFlyer/interfacer/style"
)

const (
	defaultButtonWidth  = 100
	defaultButtonHeight = 30
	disabledAlpha       = 175
)

var (
	_ Clickable = (*Button)(nil)
	_ Hoverable = (*Button)(nil)
)

// Button is a filled box with centered text, an optional background image
// and hover and pressed states.
type Button struct {
	Text

	enabled bool
	action  func()
	onHover func(hovered bool)

	bgColor    color.RGBA
	hoverColor color.RGBA
	pressColor color.RGBA
	border     *color.RGBA
	bgAlpha    int
	bgPath     string
	bgImage    *ebiten.Image

	// State
	isHovered bool
	isPressed bool
}

func NewButton(p Params) (Component, error) {
	b := &Button{}
	b.initText(p, color.RGBA{A: 255})
	b.initClickable(p)

	b.bgColor = style.MustColor(p.Props["bg_color"], color.RGBA{150, 150, 150, 255})
	b.hoverColor = style.MustColor(p.Props["hover_color"], color.RGBA{180, 180, 180, 255})
	b.pressColor = style.MustColor(p.Props["pressed_color"], color.RGBA{100, 100, 100, 255})
	b.border = parseOptionalColor(p.Props["border_color"])
	if b.border == nil && !p.Props.Has("bg_image") {
		b.border = &color.RGBA{A: 255}
	}
	b.bgAlpha = p.Props.Int("bg_alpha", 255)
	b.bgPath = p.Props.String("bg_image", "")
	if b.bgPath != "" {
		img, err := loadImage(b.bgPath)
		if err != nil {
			b.Logger().Warn("button background unavailable, using fill color",
				zapComponent(b), zapPath(b.bgPath), zapError(err))
		} else {
			b.bgImage = img
		}
	}

	colorAttr(&b.Accessors, "bg_color", &b.bgColor)
	colorAttr(&b.Accessors, "hover_color", &b.hoverColor)
	colorAttr(&b.Accessors, "pressed_color", &b.pressColor)
	b.Int("bg_alpha", &b.bgAlpha)
	return b, nil
}

func (b *Button) initClickable(p Params) {
	b.enabled = p.Props.Bool("enabled", true)
	b.Bool("enabled", &b.enabled)
	b.Define("hovered", func() any { return b.isHovered }, nil)
}

func (b *Button) Enabled() bool           { return b.enabled }
func (b *Button) SetEnabled(enabled bool) { b.enabled = enabled }
func (b *Button) SetAction(action func()) { b.action = action }
func (b *Button) Hovered() bool           { return b.isHovered }
func (b *Button) OnHover(fn func(bool))   { b.onHover = fn }
func (b *Button) Pressed() bool           { return b.isPressed }

// HandleClick runs the action when the button is enabled and (x, y) lies
// inside it. It reports whether the action ran.
func (b *Button) HandleClick(x, y float64) bool {
	if !b.enabled || b.action == nil || !b.Bounds().Contains(x, y) {
		return false
	}
	b.isPressed = true
	b.action()
	return true
}

// HandleHover updates the hovered state and always notifies the hover
// callback.
func (b *Button) HandleHover(x, y float64) {
	b.isHovered = b.Bounds().Contains(x, y)
	if b.onHover != nil {
		b.onHover(b.isHovered)
	}
}

func (b *Button) Update() error {
	nw, nh := float64(defaultButtonWidth), float64(defaultButtonHeight)
	if b.bgImage != nil {
		sz := b.bgImage.Bounds().Size()
		nw, nh = float64(sz.X), float64(sz.Y)
	}
	w, h := b.Size(nw, nh)
	canvas := b.Canvas(w, h)

	alpha := float32(b.bgAlpha) / 255
	if !b.enabled {
		alpha = disabledAlpha / 255.0
	}

	if b.bgImage != nil {
		sz := b.bgImage.Bounds().Size()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(w/float64(sz.X), h/float64(sz.Y))
		op.ColorScale.ScaleAlpha(alpha)
		canvas.DrawImage(b.bgImage, op)
	} else {
		// Colors
		bgColor := b.bgColor
		if b.isPressed {
			bgColor = b.pressColor
		} else if b.isHovered && b.enabled {
			bgColor = b.hoverColor
		}
		vector.DrawFilledRect(canvas, 0, 0, float32(w), float32(h), scaleAlpha(bgColor, alpha), true)
	}

	if b.border != nil {
		vector.StrokeRect(canvas, 0, 0, float32(w), float32(h), 1, *b.border, true)
	}

	tw, th := TextSize(b.text, b.fontSize)
	b.label.draw(canvas, b.text, (w-tw)/2, (h-th)/2, b.fontSize, b.fontColor)

	// the pressed color shows for a single frame per click
	b.isPressed = false
	return nil
}

func (b *Button) Release() {
	if b.bgImage != nil {
		b.bgImage.Deallocate()
		b.bgImage = nil
	}
	b.Text.Release()
}

var (
	_ Clickable = (*TextButton)(nil)
	_ Hoverable = (*TextButton)(nil)
)

// TextButton is clickable text that switches to focus_color while hovered.
type TextButton struct {
	Button
	focusColor *color.RGBA
	baseColor  color.RGBA
}

func NewTextButton(p Params) (Component, error) {
	t := &TextButton{}
	t.initText(p, color.RGBA{A: 255})
	t.initClickable(p)
	t.focusColor = parseOptionalColor(p.Props["focus_color"])
	t.baseColor = t.fontColor
	optionalColorAttr(&t.Accessors, "focus_color", &t.focusColor)
	return t, nil
}

func (t *TextButton) HandleHover(x, y float64) {
	wasHovered := t.isHovered
	t.Button.HandleHover(x, y)
	if t.focusColor == nil {
		return
	}
	switch {
	case t.isHovered && !wasHovered:
		t.baseColor = t.fontColor
		t.fontColor = *t.focusColor
	case !t.isHovered && wasHovered:
		t.fontColor = t.baseColor
	}
}

func (t *TextButton) Update() error {
	t.isPressed = false
	return t.Text.Update()
}

func scaleAlpha(c color.RGBA, a float32) color.RGBA {
	if a >= 1 {
		return c
	}
	// premultiplied
	return color.RGBA{
		R: uint8(float32(c.R) * a),
		G: uint8(float32(c.G) * a),
		B: uint8(float32(c.B) * a),
		A: uint8(float32(c.A) * a),
	}
}
