// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/hay-kot/criterio"
)

// Rule validates a single text value.
type Rule func(string) error

// Required fails when the value is empty after trimming whitespace.
func Required(msg string) Rule {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s", msg)
		}
		return nil
	}
}

// MinLength fails when the trimmed value has fewer than n characters.
// Empty values pass; combine with Required when the field is mandatory.
func MinLength(n int, msg string) Rule {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s != "" && utf8.RuneCountInString(s) < n {
			return fmt.Errorf("%s", msg)
		}
		return nil
	}
}

// MaxLength fails when the value has more than n characters.
func MaxLength(n int) Rule {
	return func(s string) error {
		if utf8.RuneCountInString(s) > n {
			return fmt.Errorf("maximum %d characters", n)
		}
		return nil
	}
}

// Matches fails when a non-empty value does not match re.
func Matches(re *regexp.Regexp, msg string) Rule {
	return func(s string) error {
		if s != "" && !re.MatchString(s) {
			return fmt.Errorf("%s", msg)
		}
		return nil
	}
}

// OneOf fails when the value is not one of allowed.
func OneOf(allowed ...string) Rule {
	return func(s string) error {
		if !slices.Contains(allowed, s) {
			return fmt.Errorf("must be one of %s", strings.Join(allowed, ", "))
		}
		return nil
	}
}

// All runs rules in order and returns the first failure.
func All(rules ...Rule) Rule {
	return func(s string) error {
		for _, r := range rules {
			if err := r(s); err != nil {
				return err
			}
		}
		return nil
	}
}

// Field runs rules against value and reports failures as criterio field
// errors keyed by field.
func Field(field, value string, rules ...Rule) error {
	check := All(rules...)
	return criterio.Run(field, value, func(s string) error { return check(s) })
}
