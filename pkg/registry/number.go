package registry

import "github.com/tlqtangok/reg-api/internal/numtext"

// Number is the set of scalar types ReadNumber and WriteNumber accept.
type Number = numtext.Number

// ReadNumber parses the text under name as T. It returns def when no key
// is open, the value is absent or empty, or no number can be read. With
// Options.StrictNumbers, trailing characters also yield def.
func ReadNumber[T Number](r *Registry, name string, def T) T {
	text, err := r.readText(name)
	if err != nil {
		return def
	}
	if r.strict {
		return numtext.ParseStrict(text, def)
	}
	return numtext.Parse(text, def)
}

// WriteNumber stores v as trimmed fixed-point text.
func WriteNumber[T Number](r *Registry, name string, v T) bool {
	return r.WriteString(name, numtext.Format(v))
}
