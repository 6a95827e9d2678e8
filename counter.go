package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/OpticalFlyer/interfacer/ui"
)

const scoreGoal = 10

// scoreKeeper is an invisible component holding the counter value, so the
// score text can follow it through a binding.
type scoreKeeper struct {
	ui.Base
	score int
}

func newScoreKeeper(p ui.Params) (ui.Component, error) {
	s := &scoreKeeper{}
	s.Init(p)
	s.score = p.Props.Int("score", 0)
	s.Int("score", &s.score)
	return s, nil
}

func (s *scoreKeeper) Update() error {
	s.Canvas(1, 1)
	return nil
}

func (g *Interfacer) addScore(delta int) {
	c := g.ui.Component("score")
	if c == nil {
		return
	}
	v, _ := c.Attr("score")
	score, _ := v.(int)
	if err := c.SetAttr("score", score+delta); err != nil {
		g.logger.Warn("score not updated", zap.Error(err))
	}
}

// bindCounter maps the button actions and keys of the counter showcase.
// The mapping holds across reloads.
func (g *Interfacer) bindCounter() {
	g.ui.MapActions(map[string]func(){
		"play":      func() { g.ui.Focus("counter") },
		"quit":      func() { g.quit = true },
		"increment": func() { g.addScore(1) },
		"decrement": func() { g.addScore(-1) },
		"back":      func() { g.ui.Focus("menu") },
	})

	g.ui.BindKeys(map[ebiten.Key]ui.KeyBinding{
		ebiten.KeyEqual:          {OnPress: func() { g.addScore(1) }},
		ebiten.KeyNumpadAdd:      {OnPress: func() { g.addScore(1) }},
		ebiten.KeyMinus:          {OnPress: func() { g.addScore(-1) }},
		ebiten.KeyNumpadSubtract: {OnPress: func() { g.addScore(-1) }},
		ebiten.KeyEscape:         {OnPress: func() { g.ui.Focus("menu") }},
		ebiten.KeyF1:             {OnPress: func() { g.debugMode = !g.debugMode }},
		ebiten.KeyP: {OnPress: func() {
			if g.ui.Paused() {
				g.ui.Unpause()
			} else {
				g.ui.Pause()
			}
		}},
		ebiten.KeyF5: {OnPress: func() {
			g.ui.Unload(true)
			if err := g.ui.Reload(true); err != nil {
				g.logger.Warn("reload failed", zap.Error(err))
			}
			if err := g.bindScore(); err != nil {
				g.logger.Warn("score binding lost", zap.Error(err))
			}
		}},
		ebiten.KeyF6: {OnPress: g.saveSnapshot},
		ebiten.KeyF7: {OnPress: func() {
			g.loadSnapshot()
			if err := g.bindScore(); err != nil {
				g.logger.Warn("score binding lost", zap.Error(err))
			}
		}},
	})
}

// bindScore wires the score text and the goal message. Bindings belong to
// interfaces, so they are recreated whenever the interfaces are rebuilt.
func (g *Interfacer) bindScore() error {
	if _, err := g.ui.Bind("score", "score", "score-txt", "text"); err != nil {
		return err
	}
	_, err := g.ui.BindCallback("greeting", "text", func(any) any {
		player := g.ui.Component("player")
		if player == nil {
			return "Hello!"
		}
		name, _ := player.Attr("text")
		if s, _ := name.(string); s != "" {
			return fmt.Sprintf("Hello, %s!", s)
		}
		return "Hello!"
	})
	if err != nil {
		return err
	}

	score := g.ui.Component("score")
	_, err = g.ui.When("counter", func() bool {
		v, _ := score.Attr("score")
		n, _ := v.(int)
		return n >= scoreGoal
	}, func() {
		if msg := g.ui.Component("goal"); msg != nil {
			_ = msg.SetAttr("text", fmt.Sprintf("%d reached!", scoreGoal))
		}
	}, false)
	return err
}
