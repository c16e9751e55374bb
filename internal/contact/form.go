// Package contact delivers contact form submissions through a mail relay and
// owns the transient notification shown after a successful send.
package contact

// Field names shared by every rendition of the contact form.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
)

// Fields is the contact form's field list in display order.
var Fields = []string{FieldName, FieldEmail, FieldMessage}

// Form is the live form a submission is taken from.
type Form interface {
	// Values snapshots the current field values.
	Values() map[string]string
	// Reset clears every field.
	Reset()
}

// FieldForm is an in-memory Form.
type FieldForm struct {
	names  []string
	values map[string]string
}

// NewFieldForm returns an empty form with the given fields.
func NewFieldForm(names ...string) *FieldForm {
	return &FieldForm{names: names, values: make(map[string]string, len(names))}
}

// Set stores a field value. Unknown fields are ignored.
func (f *FieldForm) Set(name, value string) {
	for _, n := range f.names {
		if n == name {
			f.values[name] = value
			return
		}
	}
}

func (f *FieldForm) Get(name string) string { return f.values[name] }

func (f *FieldForm) Values() map[string]string {
	out := make(map[string]string, len(f.names))
	for _, n := range f.names {
		out[n] = f.values[n]
	}
	return out
}

func (f *FieldForm) Reset() {
	for k := range f.values {
		delete(f.values, k)
	}
}
