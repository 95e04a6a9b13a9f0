package model

import "encoding/json"

// OptionalString is a three-valued JSON field for partial updates. It
// distinguishes a field that was omitted from one explicitly set to null:
//
//	{}                       -> unset, leave the current value alone
//	{"description": null}    -> set, clear the value
//	{"description": "text"}  -> set, replace the value
type OptionalString struct {
	set   bool
	value *string
}

// NewOptionalString returns a set value.
func NewOptionalString(v string) OptionalString {
	return OptionalString{set: true, value: &v}
}

// NewOptionalNull returns an explicit null.
func NewOptionalNull() OptionalString {
	return OptionalString{set: true}
}

// IsSet reports whether the field appeared in the payload at all.
func (o OptionalString) IsSet() bool {
	return o.set
}

// Value returns the new value, or nil for an explicit null. Only
// meaningful when IsSet is true.
func (o OptionalString) Value() *string {
	return o.value
}

// UnmarshalJSON is only invoked when the key is present, which is what
// makes the unset/null distinction observable.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.set = true
	if string(data) == "null" {
		o.value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.value = &s
	return nil
}
