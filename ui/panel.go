package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/OpticalFlyer/interfacer/style"
)

const (
	titleBarHeight = 20.0
	minPanelWidth  = 100.0
	minPanelHeight = 50.0
	previewAlpha   = 84
	panelAlpha     = 200
)

var _ Hoverable = (*Panel)(nil)

// Panel is a translucent box with a title bar, used as a backdrop for
// groups of components. While hovered it switches to the highlight colors.
type Panel struct {
	Base
	title      string
	titleColor color.RGBA
	bodyColor  color.RGBA
	barColor   color.RGBA
	hovered    bool
	highlight  bool
	label      label
}

func NewPanel(p Params) (Component, error) {
	pn := &Panel{}
	pn.Init(p)
	pn.title = p.Props.String("title", "")
	pn.titleColor = style.MustColor(p.Props["title_color"], color.RGBA{255, 255, 255, 255})
	pn.bodyColor = style.MustColor(p.Props["bg_color"], color.RGBA{100, 100, 100, panelAlpha})
	pn.barColor = style.MustColor(p.Props["title_bar_color"], color.RGBA{60, 60, 60, panelAlpha})
	pn.highlight = p.Props.Bool("highlight", true)

	pn.String("title", &pn.title)
	pn.Bool("highlight", &pn.highlight)
	colorAttr(&pn.Accessors, "title_color", &pn.titleColor)
	colorAttr(&pn.Accessors, "bg_color", &pn.bodyColor)
	colorAttr(&pn.Accessors, "title_bar_color", &pn.barColor)
	return pn, nil
}

func (p *Panel) Hovered() bool { return p.hovered }

func (p *Panel) HandleHover(x, y float64) {
	p.hovered = p.Bounds().Contains(x, y)
}

// InTitleBar reports whether (x, y) lies on the title bar.
func (p *Panel) InTitleBar(x, y float64) bool {
	r := p.Bounds()
	return r.Contains(x, y) && y < r.Y+titleBarHeight
}

func (p *Panel) Update() error {
	w, h := p.Size(200, 300)
	w, h = max(w, minPanelWidth), max(h, minPanelHeight)
	canvas := p.Canvas(w, h)

	// Set colors based on preview state
	bgColor, barColor := p.bodyColor, p.barColor
	if p.hovered && p.highlight {
		bgColor = color.RGBA{33, 150, 243, previewAlpha}
		barColor = color.RGBA{60, 60, 60, previewAlpha}
	}

	// Draw panel background
	vector.DrawFilledRect(canvas, 0, 0, float32(w), float32(h), bgColor, true)

	// Draw title bar
	vector.DrawFilledRect(canvas, 0, 0, float32(w), float32(titleBarHeight), barColor, true)

	if p.title != "" {
		const size = 14.0
		_, th := TextSize(p.title, size)
		p.label.draw(canvas, p.title, 6, (titleBarHeight-th)/2, size, p.titleColor)
	}
	return nil
}

func (p *Panel) Release() {
	p.label.release()
	p.Base.Release()
}
