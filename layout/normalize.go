package layout

import "fmt"

// Auto requests a component's natural sizing instead of the grid cell size.
const Auto = "auto"

const (
	keyX        = "x"
	keyY        = "y"
	keyWidth    = "width"
	keyHeight   = "height"
	keyGridCell = "grid_cell"
)

// Normalize rewrites the geometry fields of a component descriptor in place.
//
// When grid is non-nil and the descriptor names a grid_cell, x and y are
// replaced by the cell anchor, width and height default to the cell size and
// percentages resolve against the cell. Otherwise percentages resolve against
// the container. An explicit "auto" width or height is removed so the
// component falls back to its natural size.
func Normalize(props map[string]any, container Size, grid *Grid) error {
	refW, refH := container.Width, container.Height

	cell, inGrid, err := gridCell(props, grid)
	if err != nil {
		return err
	}
	if inGrid {
		refW, refH = grid.CellSize()
	}

	for _, f := range []struct {
		key string
		ref int
	}{
		{keyWidth, refW},
		{keyHeight, refH},
		{keyX, refW},
		{keyY, refH},
	} {
		if inGrid && (f.key == keyX || f.key == keyY) {
			continue
		}
		v, ok := props[f.key]
		if !ok {
			continue
		}
		resolved, err := Resolve(v, f.ref)
		if err != nil {
			return fmt.Errorf("%s: %w", f.key, err)
		}
		props[f.key] = resolved
	}

	if !inGrid {
		dropAuto(props)
		return nil
	}

	x, y, err := grid.Anchor(cell)
	if err != nil {
		return err
	}
	props[keyX] = x
	props[keyY] = y

	if _, ok := props[keyWidth]; !ok {
		props[keyWidth] = refW
	}
	if _, ok := props[keyHeight]; !ok {
		props[keyHeight] = refH
	}
	dropAuto(props)
	return nil
}

func gridCell(props map[string]any, grid *Grid) (int, bool, error) {
	if grid == nil {
		return 0, false, nil
	}
	raw, ok := props[keyGridCell]
	if !ok || raw == nil {
		return 0, false, nil
	}
	var cell int
	switch v := raw.(type) {
	case int:
		cell = v
	case int64:
		cell = int(v)
	case float64:
		cell = int(v)
	default:
		return 0, false, fmt.Errorf("%w: grid_cell %v", ErrCellOutOfRange, raw)
	}
	if err := grid.Validate(); err != nil {
		return 0, false, err
	}
	if cell < 0 || cell >= grid.Cells() {
		return 0, false, fmt.Errorf("%w: %d not in [0, %d)", ErrCellOutOfRange, cell, grid.Cells())
	}
	return cell, true, nil
}

func dropAuto(props map[string]any) {
	for _, key := range []string{keyWidth, keyHeight} {
		if s, ok := props[key].(string); ok && s == Auto {
			delete(props, key)
		}
	}
}
