package validator

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Required fails when value is empty after trimming whitespace.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: ValidationError{
			Field:   field,
			Message: "field is required",
			Key:     "validation.required",
			Params:  map[string]any{"field": field},
		},
	}
}

// RequiredComparable fails when value is the zero value of its type.
func RequiredComparable[T comparable](field string, value T) Rule {
	var zero T
	return Rule{
		Check: func() bool { return value != zero },
		Error: ValidationError{
			Field:   field,
			Message: "field is required",
			Key:     "validation.required",
			Params:  map[string]any{"field": field},
		},
	}
}

// MinLen counts characters, not bytes.
func MinLen(field, value string, min int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) >= min },
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at least %d characters long", min),
			Key:     "validation.min_length",
			Params:  map[string]any{"field": field, "min": min},
		},
	}
}

func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= max },
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d characters long", max),
			Key:     "validation.max_length",
			Params:  map[string]any{"field": field, "max": max},
		},
	}
}

// Equal fails when value differs from other. Used for confirmation fields.
func Equal(field, value, other string) Rule {
	return Rule{
		Check: func() bool { return value == other },
		Error: ValidationError{
			Field:   field,
			Message: "values do not match",
			Key:     "validation.equal",
			Params:  map[string]any{"field": field},
		},
	}
}

// ValidEmail accepts a bare address (no display name) with a dotted domain.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != strings.TrimSpace(value) {
				return false
			}
			at := strings.LastIndexByte(addr.Address, '@')
			if at <= 0 {
				return false
			}
			domain := addr.Address[at+1:]
			if !strings.Contains(domain, ".") {
				return false
			}
			for part := range strings.SplitSeq(domain, ".") {
				if part == "" {
					return false
				}
			}
			return true
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid email address",
			Key:     "validation.email",
			Params:  map[string]any{"field": field},
		},
	}
}
