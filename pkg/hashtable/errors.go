package hashtable

import "fmt"

// ErrRehashing is reported when the table is asked to mutate while
// a rehash is in flight
var ErrRehashing = fmt.Errorf("rehash in progress")

// ValidationError reports a put with a missing key or value
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s must not be empty", e.Field)
}

// validate returns a *ValidationError naming the empty fields, or nil
func validate(key, value string) error {
	switch {
	case key == "" && value == "":
		return &ValidationError{Field: "key and value"}
	case key == "":
		return &ValidationError{Field: "key"}
	case value == "":
		return &ValidationError{Field: "value"}
	default:
		return nil
	}
}
