package ui

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/OpticalFlyer/interfacer/descriptor"
	"github.com/OpticalFlyer/interfacer/layout"
)

const menuDoc = `
interface: menu
display: default
components:
  - {type: button, id: play, x: 50, y: 50, width: 20, height: 20, text: Play}
  - {type: input, id: name, x: 50, y: 80, width: 40, height: 10}
`

const gameDoc = `
interface: game
display: default
components:
  - {type: button, id: pause, x: 50, y: 50, width: 20, height: 20}
  - {type: probe, id: counter, score: 0}
  - {type: text, id: score-txt, text: ""}
`

func TestFocus(t *testing.T) {
	c := newTestController(t)
	menu := inject(t, c, menuDoc)
	game := inject(t, c, gameDoc)
	assert.Nil(t, c.Focused())

	c.Focus("menu")
	assert.Same(t, menu, c.Focused())
	assert.Equal(t, Active, menu.State())
	assert.Equal(t, Inactive, game.State())

	c.Focus("nowhere")
	assert.Same(t, menu, c.Focused(), "unknown names leave focus unchanged")

	c.Focus("game")
	assert.Equal(t, Inactive, menu.State())
	assert.Equal(t, Active, game.State())

	c.Focus("")
	assert.Nil(t, c.Focused())
	assert.Equal(t, Inactive, game.State())
}

func TestFocusIsolation(t *testing.T) {
	c := newTestController(t)
	inject(t, c, menuDoc)
	inject(t, c, gameDoc)

	var clicked []string
	c.MapActions(map[string]func(){
		"play":  func() { clicked = append(clicked, "play") },
		"pause": func() { clicked = append(clicked, "pause") },
	})

	c.Focus("game")
	c.Update(0)
	c.Focus("menu")
	c.Update(0)

	c.OnPointerDown(50, 50)
	assert.Equal(t, []string{"play"}, clicked)

	c.Focus("game")
	c.OnPointerDown(50, 50)
	assert.Equal(t, []string{"play", "pause"}, clicked)

	c.Focus("")
	c.OnPointerDown(50, 50)
	assert.Len(t, clicked, 2)
}

func TestMapActionsAppliesToLaterLoads(t *testing.T) {
	c := newTestController(t)
	fired := 0
	c.MapActions(map[string]func(){"play": func() { fired++ }})

	inject(t, c, menuDoc)
	c.Focus("menu")
	c.Update(0)
	c.OnPointerDown(50, 50)
	assert.Equal(t, 1, fired)
}

func TestBindScoreToText(t *testing.T) {
	c := newTestController(t)
	inject(t, c, gameDoc)
	c.Focus("game")

	_, err := c.Bind("counter", "score", "score-txt", "text")
	require.NoError(t, err)

	require.NoError(t, c.Component("counter").SetAttr("score", 3))
	c.Update(1.0 / 60)
	text, _ := c.Component("score-txt").Attr("text")
	assert.Equal(t, "3", text)

	_, err = c.Bind("counter", "score", "missing", "text")
	assert.ErrorIs(t, err, ErrUnknownComponent)
}

func TestBindCallbackAndWhen(t *testing.T) {
	c := newTestController(t)
	inject(t, c, gameDoc)
	c.Focus("game")

	_, err := c.BindCallback("score-txt", "text", func(v any) any { return "Score: 7" })
	require.NoError(t, err)
	fired := 0
	id, err := c.When("game", func() bool { return true }, func() { fired++ }, true)
	require.NoError(t, err)

	c.Update(0)
	text, _ := c.Component("score-txt").Attr("text")
	assert.Equal(t, "Score: 7", text)
	assert.Equal(t, 1, fired)

	assert.True(t, c.Unbind(id))
	assert.False(t, c.Unbind(id))
	c.Update(0)
	assert.Equal(t, 1, fired)

	_, err = c.When("nowhere", func() bool { return true }, func() {}, false)
	assert.ErrorIs(t, err, ErrInterfaceNotFound)
}

func TestDuplicateIDLastWins(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	c := newTestController(t, WithLogger(zap.New(core)))

	one := inject(t, c, `
interface: one
display: default
components:
  - {type: probe, id: score}
`)
	two := inject(t, c, `
interface: two
display: default
components:
  - {type: probe, id: score}
`)

	assert.Same(t, two.Component("score"), c.Component("score"))
	assert.NotNil(t, one.Component("score"))
	assert.NotSame(t, one.Component("score"), two.Component("score"))
	assert.Equal(t, 1, logs.FilterMessage("component id shadowed, last registration wins").Len())

	c.Focus("one")
	c.Update(0)
	assert.Equal(t, 1, probeOf(t, one.Component("score")).updates)
}

func TestStrictIDs(t *testing.T) {
	c := newTestController(t, WithStrictIDs(true))
	inject(t, c, `
interface: one
display: default
components:
  - {type: probe, id: score}
`)
	_, err := c.Inject(parseDoc(t, `
interface: two
display: default
components:
  - {type: probe, id: score}
`))
	assert.ErrorIs(t, err, ErrDuplicateComponentID)
	assert.Nil(t, c.Interface("two"))

	_, err = c.InjectComponent(map[string]any{"type": "probe", "id": "score"}, "one")
	assert.ErrorIs(t, err, ErrDuplicateComponentID)
	_, err = c.InjectComponent(map[string]any{"type": "probe"}, "nowhere")
	assert.ErrorIs(t, err, ErrInterfaceNotFound)
}

func TestDuplicateInterface(t *testing.T) {
	c := newTestController(t)
	inject(t, c, menuDoc)
	_, err := c.Inject(parseDoc(t, menuDoc))
	assert.ErrorIs(t, err, ErrDuplicateInterface)
	assert.Equal(t, []string{"menu"}, c.Interfaces())
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b-game.yaml"), []byte(gameDoc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a-menu.yml"), []byte(menuDoc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a document"), 0o644))

	c := newTestController(t)
	require.NoError(t, c.LoadAll(context.Background(), dir))
	assert.Equal(t, []string{"menu", "game"}, c.Interfaces())
	assert.NotNil(t, c.Component("counter"))

	assert.ErrorIs(t, c.Load(filepath.Join(dir, "a-menu.yml")), ErrDuplicateInterface)
}

func TestLoadAllIsAtomic(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a-menu.yaml"), []byte(menuDoc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b-broken.yaml"), []byte(`
interface: broken
display: grid
rows: 2
components: []
`), 0o644))

	c := newTestController(t)
	err := c.LoadAll(context.Background(), dir)
	assert.ErrorIs(t, err, descriptor.ErrIncompleteGrid)
	assert.Empty(t, c.Interfaces())
	assert.Nil(t, c.Component("play"))
}

func TestKeyBindings(t *testing.T) {
	c := newTestController(t)
	inject(t, c, menuDoc)
	c.Focus("menu")
	c.Update(0)

	var events []string
	c.BindKeys(map[ebiten.Key]KeyBinding{
		ebiten.KeyA: {
			OnPress:   func() { events = append(events, "press") },
			OnRelease: func() { events = append(events, "release") },
		},
		ebiten.KeyEscape: {OnPress: func() { events = append(events, "escape") }},
	})

	c.OnKeyDown(ebiten.KeyA)
	c.OnKeyUp(ebiten.KeyA)
	c.OnKeyUp(ebiten.KeyEscape)
	assert.Equal(t, []string{"press", "release"}, events)

	// a focused input swallows keys
	c.OnPointerDown(50, 80)
	require.True(t, c.IsInteractingWithUI())
	c.OnTextInput("ab")
	c.OnKeyDown(ebiten.KeyA)
	c.OnKeyDown(ebiten.KeyBackspace)
	text, _ := c.Component("name").Attr("text")
	assert.Equal(t, "a", text)
	assert.Equal(t, []string{"press", "release"}, events)

	c.OnKeyDown(ebiten.KeyEnter)
	assert.False(t, c.IsInteractingWithUI())
	c.OnKeyDown(ebiten.KeyEscape)
	assert.Equal(t, []string{"press", "release", "escape"}, events)
}

func TestTextInputFollowsFocus(t *testing.T) {
	c := newTestController(t)
	inject(t, c, menuDoc)
	inject(t, c, gameDoc)
	c.Focus("menu")
	c.Update(0)

	c.OnPointerDown(50, 80)
	require.True(t, c.IsInteractingWithUI())

	c.Focus("game")
	assert.False(t, c.IsInteractingWithUI(), "switching interfaces blurs the input")
	c.OnTextInput("x")
	text, _ := c.Component("name").Attr("text")
	assert.Equal(t, "", text)
}

func TestHoverFollowsPointer(t *testing.T) {
	c := newTestController(t)
	inject(t, c, menuDoc)
	c.Focus("menu")
	c.Update(0)

	c.OnPointerMove(50, 50)
	hovered, _ := c.Component("play").Attr("hovered")
	assert.Equal(t, true, hovered)
	c.OnPointerMove(0, 0)
	hovered, _ = c.Component("play").Attr("hovered")
	assert.Equal(t, false, hovered)
}

func TestPause(t *testing.T) {
	c := newTestController(t)
	inject(t, c, gameDoc)
	c.Focus("game")
	p := probeOf(t, c.Component("counter"))

	screen := ebiten.NewImage(100, 100)
	c.Tick(screen, 0)
	assert.Equal(t, 1, p.updates)

	c.Pause()
	assert.True(t, c.Paused())
	c.Tick(screen, 0)
	assert.Equal(t, 1, p.updates)

	c.Unpause()
	c.Tick(screen, 0)
	assert.Equal(t, 2, p.updates)
}

func TestUnloadAndRestore(t *testing.T) {
	c := newTestController(t)
	inject(t, c, gameDoc)
	c.Focus("game")

	counter := c.Component("counter")
	require.NoError(t, counter.SetAttr("score", 9))

	c.Unload(true)
	assert.Nil(t, c.Focused())
	assert.Nil(t, c.Component("counter"))
	assert.Empty(t, c.Interfaces())

	require.NoError(t, c.Reload(false))
	assert.Same(t, counter, c.Component("counter"))
	score, _ := c.Component("counter").Attr("score")
	assert.Equal(t, 9, score)
	require.NotNil(t, c.Focused())
	assert.Equal(t, "game", c.Focused().Name())

	assert.ErrorIs(t, c.Reload(false), ErrNoBackup)
}

func TestRawReloadDiscardsRuntimeState(t *testing.T) {
	c := newTestController(t)
	inject(t, c, gameDoc)
	c.Focus("game")
	fired := 0
	c.MapActions(map[string]func(){"pause": func() { fired++ }})

	old := c.Component("counter")
	require.NoError(t, old.SetAttr("score", 9))

	c.Unload(true)
	require.NoError(t, c.Reload(true))

	fresh := c.Component("counter")
	require.NotNil(t, fresh)
	assert.NotSame(t, old, fresh)
	score, _ := fresh.Attr("score")
	assert.Equal(t, 0, score)
	assert.True(t, old.(*probe).Detached())
	assert.Equal(t, "game", c.Focused().Name())

	c.Update(0)
	c.OnPointerDown(50, 50)
	assert.Equal(t, 1, fired, "actions survive a raw reload")
}

func TestUnloadWithoutBackup(t *testing.T) {
	c := newTestController(t)
	i := inject(t, c, gameDoc)
	c.Unload(false)
	assert.Equal(t, Unloaded, i.State())
	assert.ErrorIs(t, c.Reload(true), ErrNoBackup)
}

func TestSnapshotState(t *testing.T) {
	c := newTestController(t)
	inject(t, c, menuDoc)
	c.Focus("menu")
	b := c.SnapshotState()
	assert.Equal(t, "menu", b.Focus())

	inject(t, c, gameDoc)
	c.Focus("game")
	c.RestoreState(b)
	assert.Equal(t, []string{"menu"}, c.Interfaces())
	assert.Nil(t, c.Component("counter"))
	assert.Equal(t, "menu", c.Focused().Name())
}

func TestSnapshotFile(t *testing.T) {
	c := newTestController(t)
	inject(t, c, menuDoc)
	inject(t, c, gameDoc)
	c.Focus("game")
	_, err := c.InjectComponent(map[string]any{"type": "probe", "id": "extra"}, "game")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.SaveSnapshot(&buf))

	restored := newTestController(t)
	require.NoError(t, restored.LoadSnapshot(&buf))
	assert.Equal(t, []string{"menu", "game"}, restored.Interfaces())
	assert.Equal(t, "game", restored.Focused().Name())
	assert.NotNil(t, restored.Component("extra"))
}

func TestOverlayInterfaces(t *testing.T) {
	c := newTestController(t)
	var overlays []string
	c.OnOverlay(func(i *Interface) { overlays = append(overlays, i.Name()) })
	c.SetOverlayOpacity(2)

	inject(t, c, gameDoc)
	hud := inject(t, c, `
interface: hud
display: default
overlay: true
components:
  - {type: probe, id: fps}
`)
	assert.Equal(t, []string{"hud"}, overlays)
	assert.True(t, hud.Overlay())

	c.Focus("game")
	c.Tick(ebiten.NewImage(100, 100), 0)
	assert.Equal(t, 1, probeOf(t, c.Component("fps")).updates, "overlays update without focus")

	c.Focus("hud")
	c.Tick(ebiten.NewImage(100, 100), 0)
	assert.Equal(t, 2, probeOf(t, c.Component("fps")).updates)
}

func TestResizeAffectsLaterLoads(t *testing.T) {
	c := newTestController(t)
	before := inject(t, c, `
interface: before
display: default
components:
  - {type: probe, id: a, x: 50%, y: 50%}
`)
	c.Resize(200, 400)
	w, h := c.Size()
	assert.Equal(t, 200, w)
	assert.Equal(t, 400, h)

	after := inject(t, c, `
interface: after
display: default
components:
  - {type: probe, id: b, x: 50%, y: 50%}
`)

	x, _ := before.Component("a").Attr("x")
	assert.Equal(t, 50.0, x, "loaded interfaces keep their geometry")
	x, _ = after.Component("b").Attr("x")
	y, _ := after.Component("b").Attr("y")
	assert.Equal(t, 100.0, x)
	assert.Equal(t, 200.0, y)
}

func TestReloadDocuments(t *testing.T) {
	tests := []struct {
		name string
		docs func(t *testing.T) []*descriptor.Document
		err  error
	}{
		{
			name: "rebuilds from fresh documents",
			docs: func(t *testing.T) []*descriptor.Document {
				return []*descriptor.Document{parseDoc(t, menuDoc), parseDoc(t, gameDoc)}
			},
		},
		{
			name: "invalid display restores the session",
			docs: func(t *testing.T) []*descriptor.Document {
				return []*descriptor.Document{{
					Interface:  "broken",
					Display:    "bogus",
					Components: []map[string]any{},
				}}
			},
			err: descriptor.ErrInvalidDisplay,
		},
		{
			name: "cell out of range restores the session",
			docs: func(t *testing.T) []*descriptor.Document {
				return []*descriptor.Document{parseDoc(t, `
interface: broken
display: grid
rows: 1
columns: 1
components:
  - {type: probe, id: lost, grid_cell: 3}
`)}
			},
			err: layout.ErrCellOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(t)
			game := inject(t, c, gameDoc)
			c.Focus("game")
			fired := 0
			c.MapActions(map[string]func(){"pause": func() { fired++ }})
			old := c.Component("counter")

			err := c.ReloadDocuments(tt.docs(t))

			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				assert.Equal(t, []string{"game"}, c.Interfaces())
				assert.Same(t, game, c.Focused())
				assert.Equal(t, Active, game.State())
				assert.Same(t, old, c.Component("counter"))
				assert.Nil(t, c.Component("lost"))

				c.Unload(false)
				assert.ErrorIs(t, c.Reload(false), ErrNoBackup, "a failed reload leaves no backup")
				assert.Nil(t, c.Focused())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, []string{"menu", "game"}, c.Interfaces())
			require.NotNil(t, c.Focused())
			assert.Equal(t, "game", c.Focused().Name())
			assert.Equal(t, Unloaded, game.State())

			fresh := c.Component("counter")
			require.NotNil(t, fresh)
			assert.NotSame(t, old, fresh)
			assert.NotNil(t, c.Component("play"))

			c.Update(0)
			c.OnPointerDown(50, 50)
			assert.Equal(t, 1, fired, "actions survive the reload")
			assert.ErrorIs(t, c.Reload(false), ErrNoBackup)
		})
	}
}

func TestUnloadReplacesBackup(t *testing.T) {
	c := newTestController(t)
	game := inject(t, c, gameDoc)
	c.Unload(true)

	menu := inject(t, c, menuDoc)
	c.Unload(true)
	assert.Equal(t, Unloaded, game.State(), "the replaced backup is released")
	assert.Equal(t, Inactive, menu.State())

	require.NoError(t, c.Reload(false))
	assert.Equal(t, []string{"menu"}, c.Interfaces())
}

func TestUnloadDropsBackup(t *testing.T) {
	c := newTestController(t)
	game := inject(t, c, gameDoc)
	c.Unload(true)

	menu := inject(t, c, menuDoc)
	c.Unload(false)
	assert.Equal(t, Unloaded, game.State())
	assert.Equal(t, Unloaded, menu.State())
	assert.ErrorIs(t, c.Reload(false), ErrNoBackup)
}

func TestPauseKeepsOverlaysRunning(t *testing.T) {
	c := newTestController(t)
	inject(t, c, gameDoc)
	inject(t, c, `
interface: hud
display: default
overlay: true
components:
  - {type: probe, id: hud-probe}
`)
	c.Focus("game")
	counter := probeOf(t, c.Component("counter"))
	hud := probeOf(t, c.Component("hud-probe"))

	c.Pause()
	c.Tick(ebiten.NewImage(100, 100), 0)
	assert.Equal(t, 0, counter.updates)
	assert.Equal(t, 1, hud.updates)
}
