package ui

import (
	"image/color"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/OpticalFlyer/interfacer/style"
)

const (
	defaultInputWidth  = 200
	defaultInputHeight = 40
	inputPadding       = 15
)

var (
	_ TextInput = (*Input)(nil)
	_ Hoverable = (*Input)(nil)
)

// Input is a single-line text field. A click inside focuses it, a click
// anywhere else blurs it. Enter and Tab blur it, Backspace deletes the last
// rune.
type Input struct {
	Text

	hint      string
	maxLength int
	focused   bool
	hovered   bool

	bgColor     *color.RGBA
	bgFocus     *color.RGBA
	borderFocus *color.RGBA
	hintColor   color.RGBA
	hintLabel   label
}

func NewInput(p Params) (Component, error) {
	in := &Input{}
	in.initText(p, color.RGBA{A: 255})
	in.hint = p.Props.String("hint", "")
	in.maxLength = p.Props.Int("max_length", 0)
	in.bgColor = parseOptionalColor(p.Props["bg_color"])
	in.bgFocus = parseOptionalColor(p.Props["bg_focus_color"])
	in.borderFocus = parseOptionalColor(p.Props["border_focus_color"])
	in.hintColor = style.MustColor(p.Props["hint_color"], color.RGBA{128, 128, 128, 255})

	in.String("hint", &in.hint)
	in.Int("max_length", &in.maxLength)
	in.Define("focused", func() any { return in.focused }, nil)
	optionalColorAttr(&in.Accessors, "bg_color", &in.bgColor)
	optionalColorAttr(&in.Accessors, "bg_focus_color", &in.bgFocus)
	optionalColorAttr(&in.Accessors, "border_focus_color", &in.borderFocus)
	return in, nil
}

func (in *Input) Focused() bool { return in.focused }
func (in *Input) Focus()        { in.focused = true }
func (in *Input) Blur()         { in.focused = false }
func (in *Input) Hovered() bool { return in.hovered }

func (in *Input) HandleHover(x, y float64) {
	in.hovered = in.Bounds().Contains(x, y)
}

func (in *Input) HandleText(ev TextEvent) {
	if !in.focused {
		return
	}
	if !ev.IsKey {
		for _, r := range ev.Text {
			if in.maxLength > 0 && utf8.RuneCountInString(in.text) >= in.maxLength {
				return
			}
			in.text += string(r)
		}
		return
	}
	switch ev.Key {
	case ebiten.KeyBackspace:
		if _, size := utf8.DecodeLastRuneInString(in.text); size > 0 {
			in.text = in.text[:len(in.text)-size]
		}
	case ebiten.KeyEnter, ebiten.KeyNumpadEnter, ebiten.KeyTab:
		in.Blur()
	}
}

func (in *Input) Update() error {
	w, h := in.Size(defaultInputWidth, defaultInputHeight)
	canvas := in.Canvas(w, h)

	bg := in.bgColor
	if in.hovered && in.bgFocus != nil {
		bg = in.bgFocus
	}
	if bg != nil {
		vector.DrawFilledRect(canvas, 0, 0, float32(w), float32(h), *bg, true)
	}
	if in.focused && in.borderFocus != nil {
		vector.StrokeRect(canvas, 1, 1, float32(w)-2, float32(h)-2, 2, *in.borderFocus, true)
	}

	s, clr, lbl := in.text, in.fontColor, &in.label
	if s == "" && in.hint != "" {
		s, clr, lbl = in.hint, in.hintColor, &in.hintLabel
	}
	tw, th := TextSize(s, in.fontSize)
	// scroll left once the text outgrows the field
	x := float64(inputPadding)
	if tw > w-2*inputPadding {
		x = w - tw - inputPadding
	}
	lbl.draw(canvas, s, x, (h-th)/2, in.fontSize, clr)
	return nil
}

func (in *Input) Release() {
	in.hintLabel.release()
	in.Text.Release()
}
