package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCascadePrecedence(t *testing.T) {
	sheet, err := NewSheet([]map[string]any{
		{"name": "A", "color": "blue", "size": 10},
		{"name": "B", "color": "green", "weight": "bold"},
	})
	require.NoError(t, err)

	props := map[string]any{"style": []any{"A", "B"}, "color": "red"}
	missing := Cascade(props, sheet)

	assert.Empty(t, missing)
	assert.Equal(t, "red", props["color"])
	assert.Equal(t, 10, props["size"])
	assert.Equal(t, "bold", props["weight"])
	assert.NotContains(t, props, "name")
}

func TestCascadeOrder(t *testing.T) {
	sheet := Sheet{
		"first":  Class{"color": "blue"},
		"second": Class{"color": "green"},
	}

	tests := []struct {
		name  string
		style any
		want  string
	}{
		{name: "single class", style: "second", want: "green"},
		{name: "earlier class wins", style: []any{"first", "second"}, want: "blue"},
		{name: "reversed order", style: []string{"second", "first"}, want: "green"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props := map[string]any{"style": tt.style}
			Cascade(props, sheet)
			assert.Equal(t, tt.want, props["color"])
		})
	}
}

func TestCascadeMissingClass(t *testing.T) {
	props := map[string]any{"style": []any{"ghost", "real"}}
	missing := Cascade(props, Sheet{"real": Class{"size": 3}})

	assert.Equal(t, []string{"ghost"}, missing)
	assert.Equal(t, 3, props["size"])
}

func TestNewSheetRequiresName(t *testing.T) {
	_, err := NewSheet([]map[string]any{{"color": "red"}})
	assert.Error(t, err)
}
