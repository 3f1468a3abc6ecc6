package description

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/goliatone/go-formdef/pkg/validation"
)

// CreateRequest is the payload sent to the store-scoped descriptions
// endpoint once the form values pass validation.
type CreateRequest struct {
	Store       string `json:"-"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// NewCreateRequest maps validated form values onto the payload. It refuses
// an invalid result so callers cannot skip validation.
func NewCreateRequest(result validation.Result, values map[string]string) (CreateRequest, error) {
	if !result.Valid {
		return CreateRequest{}, fmt.Errorf("description: values are invalid: %s", result.Summary())
	}
	displayName := strings.TrimSpace(values[FieldName])
	return CreateRequest{
		Store:       strings.TrimSpace(values[FieldStore]),
		Name:        URLName(displayName),
		DisplayName: displayName,
		URL:         strings.TrimSpace(values[FieldURL]),
		Description: strings.TrimSpace(values[FieldComment]),
	}, nil
}

var (
	urlNameStrip    = regexp.MustCompile(`[^a-zA-Z0-9\s\-]+`)
	urlNameSeparate = regexp.MustCompile(`[\s\-]+`)
)

// URLName derives the URL-safe identifier of a description from its display
// name: accents are decomposed and dropped, characters other than letters,
// digits, whitespace and hyphens are removed, whitespace/hyphen runs become a
// single hyphen and the result is lower-cased.
func URLName(displayName string) string {
	decomposed := norm.NFD.String(displayName)
	ascii := strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, decomposed)
	ascii = urlNameStrip.ReplaceAllString(ascii, "")
	ascii = urlNameSeparate.ReplaceAllString(ascii, "-")
	return strings.ToLower(ascii)
}
