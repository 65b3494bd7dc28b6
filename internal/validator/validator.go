// Package validator checks request payload semantics before anything is
// persisted. Rules are pure functions of the payload so they can be tested
// without a database.
package validator

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/promptstash/promptstash/internal/i18n"
)

// Rule checks one field constraint and reports a violation as an error
type Rule func() error

// Validate evaluates rules in order and returns the first violation
func Validate(rules ...Rule) error {
	for _, rule := range rules {
		if err := rule(); err != nil {
			return err
		}
	}
	return nil
}

// Required fails when the value is empty or blank
func Required(field, value string) Rule {
	return func() error {
		if strings.TrimSpace(value) == "" {
			return i18n.NewErrorWithCode("ErrorRequiredField", i18n.ErrorBadRequest).
				WithParam("Field", field)
		}
		return nil
	}
}

// MaxLen fails when the value exceeds max runes
func MaxLen(field, value string, max int) Rule {
	return func() error {
		if utf8.RuneCountInString(value) > max {
			return i18n.NewErrorWithCode("ErrorInvalidFormat", i18n.ErrorBadRequest).
				WithParam("Field", field).
				WithParam("Max", max)
		}
		return nil
	}
}

// IntRange fails when a present value is outside [min, max]. A nil value
// passes; pair with Required-style checks when the field is mandatory.
func IntRange(field string, value *int, min, max int) Rule {
	return func() error {
		if value == nil {
			return nil
		}
		if *value < min || *value > max {
			return i18n.NewErrorWithCode("ErrorRatingOutOfRange", i18n.ErrorBadRequest).
				WithParam("Field", field).
				WithParam("Min", min).
				WithParam("Max", max)
		}
		return nil
	}
}

// OneOf fails when a non-empty value is not in the allowed set
func OneOf(field, value string, allowed ...string) Rule {
	return func() error {
		if value == "" {
			return nil
		}
		for _, a := range allowed {
			if value == a {
				return nil
			}
		}
		return i18n.NewErrorWithCode("ErrorInvalidValue", i18n.ErrorBadRequest).
			WithParam("Field", field).
			WithParam("Value", value)
	}
}

// AbsoluteURL fails when a non-empty value is not an absolute http(s) URL
func AbsoluteURL(field, value string) Rule {
	return func() error {
		if value == "" {
			return nil
		}
		u, err := url.Parse(value)
		if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
			return i18n.NewErrorWithCode("ErrorInvalidFormat", i18n.ErrorBadRequest).
				WithParam("Field", field)
		}
		return nil
	}
}

// PositiveIDs fails when any id in the slice is zero
func PositiveIDs(field string, ids []uint) Rule {
	return func() error {
		for _, id := range ids {
			if id == 0 {
				return i18n.NewErrorWithCode("ErrorInvalidValue", i18n.ErrorBadRequest).
					WithParam("Field", field).
					WithParam("Value", id)
			}
		}
		return nil
	}
}
