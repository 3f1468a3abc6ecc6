// Package description declares the form used to register a description: a
// Linked USDL document published in one of the marketplace's stores.
package description

import (
	"regexp"

	"github.com/goliatone/go-formdef/pkg/model"
)

// FormID identifies the form.
const FormID = "description_create_form"

// Submitted field names.
const (
	FieldStore   = "storeName"
	FieldName    = "displayName"
	FieldURL     = "url"
	FieldComment = "comment"
)

const (
	NameMinLength    = 3
	NameMaxLength    = 100
	CommentMaxLength = 200
	CommentRows      = 4

	// NameInvalidMessage is shown when the name contains characters outside
	// letters, digits, spaces, dots and hyphens.
	NameInvalidMessage = "This field only accepts letters, numbers, white spaces, dots and hyphens."

	// LinkedUSDLInfo is the informational link appended to the URL label.
	LinkedUSDLInfo = `<a target="_blank" href="http://linked-usdl.org/"><span class="fa fa-info-circle"></span></a>`
)

var namePattern = regexp.MustCompile(`(?i)^[a-zA-Z0-9. -]+$`)

// NewForm builds the description-create form. The Store field offers the
// choices supplied by stores, resolved whenever the form is described or
// validated.
func NewForm(stores model.ChoiceSource) (model.FormDefinition, error) {
	return model.NewForm(FormID,
		model.NewChoiceField(FieldStore, stores,
			model.WithLabel("Store"),
		),
		model.NewTextField(FieldName,
			model.WithLabel("Name"),
			model.WithLength(NameMinLength, NameMaxLength),
			model.WithRegexp(namePattern),
			model.WithErrorMessage(model.ErrorInvalid, NameInvalidMessage),
		),
		model.NewURLField(FieldURL,
			model.WithLabel("URL to Linked USDL file "+LinkedUSDLInfo),
		),
		model.NewLongTextField(FieldComment,
			model.WithLabel("Comment"),
			model.Optional(),
			model.WithMaxLength(CommentMaxLength),
			model.WithRows(CommentRows),
		),
	)
}
