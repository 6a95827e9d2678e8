package main

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pumpInput feeds this frame's mouse, keyboard and text events to the
// controller.
func (g *Interfacer) pumpInput() {
	x, y := ebiten.CursorPosition()
	if x != g.lastMouseX || y != g.lastMouseY {
		g.ui.OnPointerMove(float64(x), float64(y))
		g.lastMouseX, g.lastMouseY = x, y
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.ui.OnPointerDown(float64(x), float64(y))
	}

	g.chars = ebiten.AppendInputChars(g.chars[:0])
	if len(g.chars) > 0 {
		g.ui.OnTextInput(string(g.chars))
	}

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		g.ui.OnKeyDown(k)
	}
	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		g.ui.OnKeyUp(k)
	}

	g.handleTouchEvents()
}

// handleTouchEvents maps touches onto the pointer entry points. A new touch
// hovers then clicks at its position, a moving one only hovers.
func (g *Interfacer) handleTouchEvents() {
	g.touches = ebiten.AppendTouchIDs(g.touches[:0])
	touches := g.touches

	if g.lastTouchX == nil {
		g.lastTouchX = make(map[ebiten.TouchID]float64)
		g.lastTouchY = make(map[ebiten.TouchID]float64)
	}

	for _, id := range touches {
		if _, exists := g.lastTouchX[id]; !exists {
			x, y := ebiten.TouchPosition(id)
			g.lastTouchX[id] = float64(x)
			g.lastTouchY[id] = float64(y)
			g.ui.OnPointerMove(float64(x), float64(y))
			g.ui.OnPointerDown(float64(x), float64(y))
		}
	}

	// forget lifted fingers
	for id := range g.lastTouchX {
		if !containsTouchID(touches, id) {
			delete(g.lastTouchX, id)
			delete(g.lastTouchY, id)
		}
	}

	for _, id := range touches {
		x, y := ebiten.TouchPosition(id)
		if float64(x) != g.lastTouchX[id] || float64(y) != g.lastTouchY[id] {
			g.ui.OnPointerMove(float64(x), float64(y))
		}
		g.lastTouchX[id] = float64(x)
		g.lastTouchY[id] = float64(y)
	}
}

func containsTouchID(ids []ebiten.TouchID, id ebiten.TouchID) bool {
	return slices.Contains(ids, id)
}
