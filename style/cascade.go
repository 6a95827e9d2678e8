// Package style implements named style classes and their cascade into
// component descriptors.
package style

import "fmt"

// Key is the descriptor field that references style classes.
const Key = "style"

const nameKey = "name"

// Class maps attribute names to values.
type Class map[string]any

// Sheet holds the style classes declared by one interface, keyed by name.
type Sheet map[string]Class

// NewSheet builds a sheet from raw class declarations. Each declaration must
// carry a "name" field; the name itself is not copied as an attribute.
// A later declaration with the same name replaces an earlier one.
func NewSheet(classes []map[string]any) (Sheet, error) {
	sheet := make(Sheet, len(classes))
	for i, raw := range classes {
		name, ok := raw[nameKey].(string)
		if !ok || name == "" {
			return nil, fmt.Errorf("style class %d: missing name", i)
		}
		class := make(Class, len(raw))
		for k, v := range raw {
			if k == nameKey {
				continue
			}
			class[k] = v
		}
		sheet[name] = class
	}
	return sheet, nil
}

// Names returns the class names referenced by a descriptor's style field,
// in declaration order. The field may be a single name or a list.
func Names(props map[string]any) []string {
	switch v := props[Key].(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []string:
		return v
	case []any:
		names := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				names = append(names, s)
			}
		}
		return names
	}
	return nil
}

// Cascade fills attributes missing from props with values from the classes
// it references. Classes are applied in listed order and never overwrite a
// field that is already set, so explicit fields win over every class and an
// earlier class wins over a later one.
//
// The returned slice names referenced classes the sheet does not define.
func Cascade(props map[string]any, sheet Sheet) []string {
	var missing []string
	for _, name := range Names(props) {
		class, ok := sheet[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		for k, v := range class {
			if _, set := props[k]; !set {
				props[k] = v
			}
		}
	}
	return missing
}
