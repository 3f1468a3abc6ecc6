package model

// FieldKind identifies the field variant and, with it, the widget a renderer
// is expected to use and the built-in validation applied to values.
type FieldKind string

const (
	FieldKindChoice   FieldKind = "choice"
	FieldKindText     FieldKind = "text"
	FieldKindURL      FieldKind = "url"
	FieldKindLongText FieldKind = "longtext"
)

// Widget reports the default widget hint for the kind.
func (k FieldKind) Widget() string {
	switch k {
	case FieldKindChoice:
		return "select"
	case FieldKindURL:
		return "url"
	case FieldKindLongText:
		return "textarea"
	default:
		return "text"
	}
}

// ErrorKind names a class of validation failure. Fields may override the
// message shown for each kind.
type ErrorKind string

const (
	ErrorRequired  ErrorKind = "required"
	ErrorMinLength ErrorKind = "minlength"
	ErrorMaxLength ErrorKind = "maxlength"
	ErrorInvalid   ErrorKind = "invalid"
)
