package ui

import (
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/OpticalFlyer/interfacer/style"
)

func loadImage(path string) (*ebiten.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, err
	}
	return img, nil
}

var _ Component = (*Image)(nil)

// Image shows a picture from disk, scaled to width x height when both are
// declared. When the file cannot be loaded it renders a filled placeholder
// box of the declared size so the layout and hit area survive.
type Image struct {
	Base
	path        string
	src         *ebiten.Image
	placeholder color.RGBA
	loadErr     error
}

func NewImage(p Params) (Component, error) {
	img := &Image{}
	img.Init(p)
	img.placeholder = style.MustColor(p.Props["placeholder_color"], color.RGBA{A: 255})
	img.load(p.Props.String("path", ""))

	img.Define("path", func() any { return img.path }, func(v any) error {
		s, ok := v.(string)
		if !ok {
			return nil
		}
		img.load(s)
		return nil
	})
	colorAttr(&img.Accessors, "placeholder_color", &img.placeholder)
	return img, nil
}

func (i *Image) load(path string) {
	if i.src != nil {
		i.src.Deallocate()
		i.src = nil
	}
	i.path = path
	src, err := loadImage(path)
	if err != nil {
		i.loadErr = err
		i.Logger().Warn("image unavailable, rendering placeholder",
			zapComponent(i), zapPath(path), zapError(err))
		return
	}
	i.src, i.loadErr = src, nil
}

// LoadError returns the error of the last load attempt, or nil.
func (i *Image) LoadError() error { return i.loadErr }

func (i *Image) Update() error {
	if i.src == nil {
		w, h := i.Size(0, 0)
		i.Canvas(w, h).Fill(i.placeholder)
		return nil
	}

	sz := i.src.Bounds().Size()
	w, h := i.Size(float64(sz.X), float64(sz.Y))
	if int(w) == sz.X && int(h) == sz.Y {
		i.SetImage(i.src)
		i.Place(w, h)
		return nil
	}
	canvas := i.Canvas(w, h)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(sz.X), h/float64(sz.Y))
	op.Filter = ebiten.FilterLinear
	canvas.DrawImage(i.src, op)
	return nil
}

func (i *Image) Release() {
	i.Base.Release()
	if i.src != nil {
		i.src.Deallocate()
		i.src = nil
	}
}

// subImages cuts sheet into a row-major list of w x h frames.
func subImages(sheet *ebiten.Image, w, h int) []*ebiten.Image {
	if w <= 0 || h <= 0 {
		return nil
	}
	b := sheet.Bounds()
	var frames []*ebiten.Image
	for y := b.Min.Y; y+h <= b.Max.Y; y += h {
		for x := b.Min.X; x+w <= b.Max.X; x += w {
			frames = append(frames, sheet.SubImage(image.Rect(x, y, x+w, y+h)).(*ebiten.Image))
		}
	}
	return frames
}
