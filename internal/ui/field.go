package ui

// FieldKind is the kind of form element a Field represents.
type FieldKind int

const (
	// KindInput is a single-line value field; the only kind a searchbox can attach to.
	KindInput FieldKind = iota
	// KindTextArea is a multi-line text field.
	KindTextArea
	// KindButton is a form action.
	KindButton
)

// String returns the string representation of a FieldKind.
func (k FieldKind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindTextArea:
		return "textarea"
	case KindButton:
		return "button"
	default:
		return "unknown"
	}
}

// Field is a named form element holding a plain string value. A searchbox
// attached to an input field keeps its value equal to the chip data.
type Field struct {
	ID    string
	Kind  FieldKind
	Label string
	value string
}

// NewField creates a field with an initial value.
func NewField(id string, kind FieldKind, value string) *Field {
	return &Field{ID: id, Kind: kind, value: value}
}

// Value returns the current plain value.
func (f *Field) Value() string {
	if f == nil {
		return ""
	}
	return f.value
}

// SetValue replaces the plain value.
func (f *Field) SetValue(v string) {
	if f == nil {
		return
	}
	f.value = v
}
