package ui

import (
	"maps"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/require"

	"github.com/OpticalFlyer/interfacer/descriptor"
)

// probe records what it was built from and how often it was updated.
type probe struct {
	Base
	props   map[string]any
	score   int
	updates int
	loaded  int
	log     *[]string
}

func newProbe(p Params) (Component, error) {
	pr := &probe{props: maps.Clone(p.Props)}
	pr.Init(p)
	pr.score = p.Props.Int("score", 0)
	pr.Int("score", &pr.score)
	pr.Define("updates", func() any { return pr.updates }, nil)
	return pr, nil
}

func (p *probe) Update() error {
	p.updates++
	p.Canvas(p.Size(10, 10))
	return nil
}

func (p *probe) AfterLoad(*Interface) { p.loaded++ }

func (p *probe) Image() *ebiten.Image {
	if p.log != nil {
		*p.log = append(*p.log, "component")
	}
	return p.Base.Image()
}

func parseDoc(t *testing.T, src string) *descriptor.Document {
	t.Helper()
	doc, err := descriptor.Parse([]byte(src))
	require.NoError(t, err)
	return doc
}

func newTestController(t *testing.T, opts ...Option) *Controller {
	t.Helper()
	c := NewController(append([]Option{WithSize(100, 100)}, opts...)...)
	c.RegisterComponentType("probe", newProbe)
	return c
}

func inject(t *testing.T, c *Controller, src string) *Interface {
	t.Helper()
	i, err := c.Inject(parseDoc(t, src))
	require.NoError(t, err)
	return i
}

func probeOf(t *testing.T, c Component) *probe {
	t.Helper()
	p, ok := c.(*probe)
	require.True(t, ok, "component %v is not a probe", c)
	return p
}
