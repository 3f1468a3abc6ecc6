package validation

import "github.com/goliatone/go-formdef/pkg/model"

// messageKey selects a default message. An empty field kind is the fallback
// for every kind.
type messageKey struct {
	field model.FieldKind
	err   model.ErrorKind
}

const (
	MessageRequired  = "This field is required."
	MessageMinLength = "Ensure this value has at least {{ minlength }} characters (it has {{ length }})."
	MessageMaxLength = "Ensure this value has at most {{ maxlength }} characters (it has {{ length }})."
	MessageInvalid   = "Enter a valid value."
	MessageURL       = "Enter a valid URL."
	MessageChoice    = "Select a valid choice."
)

func defaultMessages() map[messageKey]string {
	return map[messageKey]string{
		{err: model.ErrorRequired}:                              MessageRequired,
		{err: model.ErrorMinLength}:                             MessageMinLength,
		{err: model.ErrorMaxLength}:                             MessageMaxLength,
		{err: model.ErrorInvalid}:                               MessageInvalid,
		{field: model.FieldKindURL, err: model.ErrorInvalid}:    MessageURL,
		{field: model.FieldKindChoice, err: model.ErrorInvalid}: MessageChoice,
	}
}
