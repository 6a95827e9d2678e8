package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const menuDoc = `
interface: menu
display: grid
rows: 2
columns: 2
background: "#202020"
styles:
  - name: big
    font_size: 32
components:
  - type: text
    id: title
    text: Menu
    style: big
    grid_cell: 0
  - type: button
    width: 50%
    grid_cell: 1
`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(menuDoc))
	require.NoError(t, err)

	assert.Equal(t, "menu", doc.Interface)
	assert.Equal(t, DisplayGrid, doc.Display)
	assert.Equal(t, 2, doc.Rows)
	assert.Equal(t, 2, doc.Columns)
	assert.Equal(t, "#202020", doc.Background)
	require.Len(t, doc.Styles, 1)
	assert.Equal(t, "big", doc.Styles[0]["name"])
	require.Len(t, doc.Components, 2)

	title := Props(doc.Components[0])
	assert.Equal(t, "text", title.Type())
	assert.Equal(t, "title", title.ID())
	assert.Equal(t, 0, title.Int("grid_cell", -1))

	btn := Props(doc.Components[1])
	assert.Equal(t, Anonymous, btn.ID())
	assert.Equal(t, "50%", btn.String("width", ""))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{name: "empty document", src: "", want: ErrEmptyDocument},
		{name: "null document", src: "~\n", want: ErrEmptyDocument},
		{name: "empty mapping", src: "{}\n", want: ErrEmptyDocument},
		{name: "scalar document", src: "hello\n", want: ErrMalformed},
		{name: "missing components", src: "interface: a\ndisplay: default\n", want: ErrMissingComponents},
		{name: "missing interface", src: "display: default\ncomponents: []\n", want: ErrMissingInterface},
		{name: "missing display", src: "interface: a\ncomponents: []\n", want: ErrInvalidDisplay},
		{name: "unknown display", src: "interface: a\ndisplay: flex\ncomponents: []\n", want: ErrInvalidDisplay},
		{name: "grid without columns", src: "interface: a\ndisplay: grid\nrows: 2\ncomponents: []\n", want: ErrIncompleteGrid},
		{name: "grid without rows", src: "interface: a\ndisplay: grid\ncolumns: 2\ncomponents: []\n", want: ErrIncompleteGrid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseEmptyComponentsIsLegal(t *testing.T) {
	for _, src := range []string{
		"interface: a\ndisplay: default\ncomponents: []\n",
		"interface: a\ndisplay: default\ncomponents:\n",
	} {
		doc, err := Parse([]byte(src))
		require.NoError(t, err)
		assert.NotNil(t, doc.Components)
		assert.Empty(t, doc.Components)
	}
}

func TestClone(t *testing.T) {
	doc, err := Parse([]byte(menuDoc))
	require.NoError(t, err)

	c := doc.Clone()
	c.Components[0]["text"] = "changed"
	c.Styles[0]["font_size"] = 1
	c.Components = append(c.Components, map[string]any{"type": "text"})

	assert.Equal(t, "Menu", doc.Components[0]["text"])
	assert.Equal(t, 32, doc.Styles[0]["font_size"])
	assert.Len(t, doc.Components, 2)
}

func TestCloneNested(t *testing.T) {
	src := map[string]any{"frames": []any{"a.png", map[string]any{"k": 1}}}
	c := CloneMap(src)
	c["frames"].([]any)[1].(map[string]any)["k"] = 2

	assert.Equal(t, 1, src["frames"].([]any)[1].(map[string]any)["k"])
}
