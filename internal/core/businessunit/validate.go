package businessunit

import (
	"errors"
	"regexp"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/unitdesk/internal/core/validate"
)

var (
	// RFC of a legal entity (3 letters) or an individual (4 letters),
	// followed by a yymmdd date and a 3 character homoclave.
	rfcPattern    = regexp.MustCompile(`^[A-ZÑ&]{3,4}\d{6}[A-Z0-9]{3}$`)
	seriesPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
)

func rfc(s string) error {
	if s != "" && !rfcPattern.MatchString(strings.ToUpper(strings.TrimSpace(s))) {
		return errors.New("enter a valid RFC")
	}
	return nil
}

func currencies() []string {
	out := make([]string, len(Currencies))
	for i, c := range Currencies {
		out[i] = string(c.Value)
	}
	return out
}

var rules = map[string][]validate.Rule{
	FieldName: {
		validate.Required("company name is required"),
		validate.MinLength(3, "name must be at least 3 characters"),
		validate.MaxLength(100),
	},
	FieldRFCEmitter: {
		validate.Required("emitter RFC is required"),
		validate.MaxLength(13),
		rfc,
	},
	FieldEmitterName: {
		validate.Required("legal emitter name is required"),
		validate.MinLength(3, "legal name must be at least 3 characters"),
		validate.MaxLength(150),
	},
	FieldDefaultCurrency: {
		validate.OneOf(currencies()...),
	},
	FieldSeries: {
		validate.Required("invoice series is required"),
		validate.MaxLength(5),
		validate.Matches(seriesPattern, "series may only contain letters and digits"),
	},
	FieldDescription: {
		validate.MinLength(10, "description must be at least 10 characters"),
		validate.MaxLength(500),
	},
}

// ValidateField checks a single field value and returns the first failing
// rule, or nil. Unknown fields always pass.
func ValidateField(field, value string) error {
	return validate.All(rules[field]...)(value)
}

// Validate checks every field. Failures are returned as
// criterio.FieldErrors keyed by field name, in form order.
func (u Unit) Validate() error {
	errs := make([]error, 0, len(Fields))
	for _, field := range Fields {
		errs = append(errs, validate.Field(field, u.Value(field), rules[field]...))
	}
	return criterio.ValidateStruct(errs...)
}

// FieldErrorMap flattens a validation error into field name to message.
// Errors that are not field errors are returned under the empty key.
func FieldErrorMap(err error) map[string]string {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return map[string]string{"": err.Error()}
	}

	out := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[fe.Field] = fe.Err.Error()
	}
	return out
}
