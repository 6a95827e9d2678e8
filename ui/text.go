package ui

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/mattn/go-runewidth"

	"github.com/OpticalFlyer/interfacer/binding"
	"github.com/OpticalFlyer/interfacer/style"
)

// The debug font renders white glyphs in fixed 6x16 cells. Labels scale it
// to the requested font size and tint it with the font color.
const (
	glyphWidth      = 6
	glyphHeight     = 16
	defaultFontSize = 18
)

// label caches the rendered glyphs of a string.
type label struct {
	text  string
	img   *ebiten.Image
	valid bool
}

func textLines(s string) []string {
	return strings.Split(s, "\n")
}

// measureText returns the unscaled cell size of s.
func measureText(s string) (cols, rows int) {
	lines := textLines(s)
	for _, l := range lines {
		if w := runewidth.StringWidth(l); w > cols {
			cols = w
		}
	}
	return cols, len(lines)
}

// TextSize returns the pixel size of s rendered at fontSize.
func TextSize(s string, fontSize float64) (w, h float64) {
	cols, rows := measureText(s)
	scale := fontSize / glyphHeight
	return float64(cols*glyphWidth) * scale, float64(rows*glyphHeight) * scale
}

func (l *label) glyphs(s string) *ebiten.Image {
	if l.valid && l.text == s {
		return l.img
	}
	if l.img != nil {
		l.img.Deallocate()
	}
	cols, rows := measureText(s)
	l.img = ebiten.NewImage(max(1, cols*glyphWidth), max(1, rows*glyphHeight))
	ebitenutil.DebugPrintAt(l.img, s, 0, 0)
	l.text, l.valid = s, true
	return l.img
}

// draw renders s onto dst with its top-left corner at (x, y).
func (l *label) draw(dst *ebiten.Image, s string, x, y, fontSize float64, clr color.Color) {
	if s == "" {
		return
	}
	scale := fontSize / glyphHeight
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(l.glyphs(s), op)
}

func (l *label) release() {
	if l.img != nil {
		l.img.Deallocate()
		l.img = nil
	}
	l.valid = false
}

// colorAttr registers a color attribute that accepts any form ParseColor
// understands.
func colorAttr(acc *binding.Accessors, name string, p *color.RGBA) {
	acc.Define(name, func() any { return *p }, func(v any) error {
		c, err := style.ParseColor(v)
		if err != nil {
			return err
		}
		*p = c
		return nil
	})
}

// optionalColorAttr is colorAttr for colors that may be unset.
func optionalColorAttr(acc *binding.Accessors, name string, p **color.RGBA) {
	acc.Define(name, func() any {
		if *p == nil {
			return nil
		}
		return **p
	}, func(v any) error {
		if v == nil {
			*p = nil
			return nil
		}
		c, err := style.ParseColor(v)
		if err != nil {
			return err
		}
		*p = &c
		return nil
	})
}

func parseOptionalColor(v any) *color.RGBA {
	if v == nil {
		return nil
	}
	c, err := style.ParseColor(v)
	if err != nil {
		return nil
	}
	return &c
}

var _ Component = (*Text)(nil)

// Text is a single block of text sized to its content.
type Text struct {
	Base
	text      string
	fontSize  float64
	fontColor color.RGBA
	label     label
}

func NewText(p Params) (Component, error) {
	t := &Text{}
	t.initText(p, color.RGBA{A: 255})
	return t, nil
}

func (t *Text) initText(p Params, defaultColor color.RGBA) {
	t.Init(p)
	t.text = p.Props.String("text", "")
	t.fontSize = p.Props.Float("font_size", defaultFontSize)
	t.fontColor = style.MustColor(p.Props["font_color"], defaultColor)

	t.String("text", &t.text)
	t.Float("font_size", &t.fontSize)
	colorAttr(&t.Accessors, "font_color", &t.fontColor)
}

func (t *Text) Text() string { return t.text }

func (t *Text) SetText(s string) { t.text = s }

func (t *Text) Update() error {
	w, h := TextSize(t.text, t.fontSize)
	canvas := t.Canvas(w, h)
	t.label.draw(canvas, t.text, 0, 0, t.fontSize, t.fontColor)
	return nil
}

func (t *Text) Release() {
	t.label.release()
	t.Base.Release()
}

var _ Component = (*Paragraph)(nil)

// Paragraph renders a list of lines spaced by line_height.
type Paragraph struct {
	Text
	lines      []string
	lineHeight float64
	labels     []label
}

func NewParagraph(p Params) (Component, error) {
	para := &Paragraph{}
	para.initText(p, color.RGBA{A: 255})
	para.lines = p.Props.Strings("lines")
	if len(para.lines) == 0 && para.text != "" {
		para.lines = textLines(para.text)
	}
	para.lineHeight = p.Props.Float("line_height", para.fontSize)

	para.Float("line_height", &para.lineHeight)
	para.Define("lines", func() any { return append([]string(nil), para.lines...) }, func(v any) error {
		switch t := v.(type) {
		case []string:
			para.lines = append([]string(nil), t...)
		case []any:
			para.lines = para.lines[:0]
			for _, item := range t {
				s, _ := binding.Coerce(item, "")
				para.lines = append(para.lines, s.(string))
			}
		default:
			s, _ := binding.Coerce(v, "")
			para.lines = textLines(s.(string))
		}
		return nil
	})
	return para, nil
}

func (p *Paragraph) Update() error {
	var w float64
	for _, l := range p.lines {
		lw, _ := TextSize(l, p.fontSize)
		w = max(w, lw)
	}
	_, lh := TextSize("", p.fontSize)
	h := 0.0
	if n := len(p.lines); n > 0 {
		h = float64(n-1)*p.lineHeight + lh
	}

	canvas := p.Canvas(w, h)
	for len(p.labels) < len(p.lines) {
		p.labels = append(p.labels, label{})
	}
	for i, l := range p.lines {
		p.labels[i].draw(canvas, l, 0, float64(i)*p.lineHeight, p.fontSize, p.fontColor)
	}
	return nil
}

func (p *Paragraph) Release() {
	for i := range p.labels {
		p.labels[i].release()
	}
	p.Text.Release()
}
