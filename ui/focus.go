package ui

// InputFocus tracks the single text input allowed to receive keyboard
// text. Request and Release are the only way focus changes hands, so two
// inputs never believe they are focused at once.
type InputFocus struct {
	current TextInput
}

// Request focuses t, blurring the previously focused input.
func (f *InputFocus) Request(t TextInput) {
	if f.current != nil && f.current != t {
		f.current.Blur()
	}
	f.current = t
	t.Focus()
}

// Release blurs t if it holds focus.
func (f *InputFocus) Release(t TextInput) {
	if f.current == nil || f.current != t {
		return
	}
	f.current = nil
	t.Blur()
}

// Current returns the focused input, or nil. An input that blurred itself
// (for example on Enter) no longer counts as focused.
func (f *InputFocus) Current() TextInput {
	if f.current != nil && !f.current.Focused() {
		f.current = nil
	}
	return f.current
}

// Active reports whether any input is focused.
func (f *InputFocus) Active() bool { return f.Current() != nil }

// Clear blurs the focused input, if any.
func (f *InputFocus) Clear() {
	if f.current != nil {
		f.current.Blur()
		f.current = nil
	}
}
