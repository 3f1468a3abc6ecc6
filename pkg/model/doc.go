// Package model defines the declarative form model: a FormDefinition holds an
// ordered, immutable list of fields, each one of the closed set of variants
// ChoiceField, TextField, URLField and LongTextField. Every variant carries
// its own constraint payload (length bounds, patterns, choice sources,
// control attributes) plus the shared label/required/error message settings.
//
// Definitions are built once with NewForm and then passed around by value.
// Describe produces a serialisable snapshot (Descriptor) that rendering layers
// and tooling consume without depending on the concrete field types.
package model
