package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/OpticalFlyer/interfacer/style"
)

const defaultFrameDelay = 100 // milliseconds

var _ Animator = (*Animation)(nil)

// Animation cycles through a list of images, showing each for delay
// milliseconds. Frames that fail to load are replaced by placeholder boxes.
type Animation struct {
	Base

	frames     []*ebiten.Image
	ownsFrames bool
	frame      int
	delay      int
	elapsed    float64
	playing    bool
	loop       bool

	placeholder color.RGBA
}

func NewAnimation(p Params) (Component, error) {
	a := &Animation{}
	a.initAnimation(p)
	a.ownsFrames = true
	for _, path := range p.Props.Strings("images") {
		img, err := loadImage(path)
		if err != nil {
			a.Logger().Warn("animation frame unavailable, rendering placeholder",
				zapComponent(a), zapPath(path), zapError(err))
			img = nil
		}
		a.frames = append(a.frames, img)
	}
	a.limitFrames(p.Props.Int("frames", 0))
	return a, nil
}

func (a *Animation) initAnimation(p Params) {
	a.Init(p)
	a.delay = p.Props.Int("delay", defaultFrameDelay)
	a.playing = p.Props.Bool("playing", true)
	a.loop = p.Props.Bool("loop", true)
	a.placeholder = style.MustColor(p.Props["placeholder_color"], color.RGBA{A: 255})

	a.Int("frame", &a.frame)
	a.Int("delay", &a.delay)
	a.Bool("playing", &a.playing)
	a.Bool("loop", &a.loop)
	a.Define("frames", func() any { return len(a.frames) }, nil)
}

func (a *Animation) limitFrames(n int) {
	if n > 0 && n < len(a.frames) {
		a.frames = a.frames[:n]
	}
}

// Frame returns the index of the displayed frame.
func (a *Animation) Frame() int { return a.frame }

// Frames returns the number of frames.
func (a *Animation) Frames() int { return len(a.frames) }

// Advance moves the animation forward by dt seconds.
func (a *Animation) Advance(dt float64) {
	if !a.playing || len(a.frames) == 0 || a.delay <= 0 {
		return
	}
	a.elapsed += dt * 1000
	for a.elapsed >= float64(a.delay) {
		a.elapsed -= float64(a.delay)
		if a.frame+1 < len(a.frames) {
			a.frame++
			continue
		}
		if !a.loop {
			a.playing = false
			a.elapsed = 0
			return
		}
		a.frame = 0
	}
}

func (a *Animation) Update() error {
	if len(a.frames) == 0 {
		w, h := a.Size(0, 0)
		a.Canvas(w, h).Fill(a.placeholder)
		return nil
	}
	if a.frame < 0 || a.frame >= len(a.frames) {
		a.frame = 0
	}

	cur := a.frames[a.frame]
	if cur == nil {
		w, h := a.Size(0, 0)
		a.Canvas(w, h).Fill(a.placeholder)
		return nil
	}
	sz := cur.Bounds().Size()
	w, h := a.Size(float64(sz.X), float64(sz.Y))
	if int(w) == sz.X && int(h) == sz.Y {
		a.SetImage(cur)
		a.Place(w, h)
		return nil
	}
	canvas := a.Canvas(w, h)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(sz.X), h/float64(sz.Y))
	canvas.DrawImage(cur, op)
	return nil
}

func (a *Animation) Release() {
	a.Base.Release()
	if a.ownsFrames {
		for _, f := range a.frames {
			if f != nil {
				f.Deallocate()
			}
		}
	}
	a.frames = nil
}

// SpritesheetAnimation is an Animation whose frames are cut from one
// spritesheet image in row-major order.
type SpritesheetAnimation struct {
	Animation
	sheet *ebiten.Image
}

func NewSpritesheetAnimation(p Params) (Component, error) {
	s := &SpritesheetAnimation{}
	s.initAnimation(p)

	path := p.Props.String("spritesheet", "")
	sheet, err := loadImage(path)
	if err != nil {
		s.Logger().Warn("spritesheet unavailable, rendering placeholder",
			zapComponent(s), zapPath(path), zapError(err))
		return s, nil
	}
	s.sheet = sheet
	s.frames = subImages(sheet, p.Props.Int("sprite_width", 0), p.Props.Int("sprite_height", 0))
	s.limitFrames(p.Props.Int("frames", 0))
	return s, nil
}

func (s *SpritesheetAnimation) Release() {
	s.Animation.Release()
	if s.sheet != nil {
		s.sheet.Deallocate()
		s.sheet = nil
	}
}
