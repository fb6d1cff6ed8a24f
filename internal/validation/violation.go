package validation

import (
	"fmt"
	"strings"
)

// Kind tags a Violation with the class of failure.
type Kind int

const (
	// MissingField means a required key is absent or empty.
	MissingField Kind = iota + 1

	// TooLong means a string exceeds its maximum length.
	TooLong

	// InvalidValue means a value is present but violates a constraint or has the wrong type.
	InvalidValue

	// InvalidInput means the document itself has the wrong shape (not an object,
	// not a list, empty batch, malformed JSON).
	InvalidInput
)

func (k Kind) String() string {
	switch k {
	case MissingField:
		return "missing_field"
	case TooLong:
		return "too_long"
	case InvalidValue:
		return "invalid_value"
	case InvalidInput:
		return "invalid_input"
	default:
		return "unknown"
	}
}

// Violation is a single validation failure.
//
// Item is the 1-based batch position for bulk operations, 0 otherwise.
type Violation struct {
	Kind    Kind
	Field   string
	Item    int
	Message string
}

// Missing builds a MissingField violation.
func Missing(field string) Violation {
	return Violation{
		Kind:    MissingField,
		Field:   field,
		Message: fmt.Sprintf("Missing required field: %s", field),
	}
}

// Invalid builds an InvalidValue violation.
func Invalid(field, message string) Violation {
	return Violation{Kind: InvalidValue, Field: field, Message: message}
}

// Input builds an InvalidInput violation.
func Input(message string) Violation {
	return Violation{Kind: InvalidInput, Message: message}
}

// Violations is the tagged error returned by services when input is rejected.
type Violations []Violation

func (v Violations) Error() string {
	messages := make([]string, 0, len(v))
	for _, violation := range v {
		messages = append(messages, violation.Message)
	}
	return strings.Join(messages, "; ")
}

// Has reports whether any violation is of kind k.
func (v Violations) Has(k Kind) bool {
	for _, violation := range v {
		if violation.Kind == k {
			return true
		}
	}
	return false
}

// Fields returns the field names of the violations of kind k, in order.
func (v Violations) Fields(k Kind) []string {
	var fields []string
	for _, violation := range v {
		if violation.Kind == k {
			fields = append(fields, violation.Field)
		}
	}
	return fields
}

// ForItem re-labels v as belonging to the 1-based batch position item.
//
// Missing fields are collapsed into one violation listing all of them:
// "Item #2 missing fields: title, year".
func (v Violations) ForItem(item int) Violations {
	out := make(Violations, 0, len(v))

	if missing := v.Fields(MissingField); len(missing) > 0 {
		out = append(out, Violation{
			Kind:    MissingField,
			Field:   strings.Join(missing, ","),
			Item:    item,
			Message: fmt.Sprintf("Item #%d missing fields: %s", item, strings.Join(missing, ", ")),
		})
	}

	for _, violation := range v {
		if violation.Kind == MissingField {
			continue
		}
		violation.Item = item
		violation.Message = fmt.Sprintf("Item #%d: %s", item, violation.Message)
		out = append(out, violation)
	}

	return out
}
