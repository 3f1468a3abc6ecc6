package model

// Decorator enriches a form descriptor after the canonical snapshot has been
// built from the field definitions.
type Decorator interface {
	Decorate(*FormDescriptor) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormDescriptor) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(form *FormDescriptor) error {
	return fn(form)
}

// PlainLabels replaces each field's markup label with its plain-text form.
func PlainLabels() Decorator {
	return DecoratorFunc(func(form *FormDescriptor) error {
		for i := range form.Fields {
			form.Fields[i].Label = form.Fields[i].LabelText
		}
		return nil
	})
}
