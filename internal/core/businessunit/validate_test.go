package businessunit

import (
	"errors"
	"strings"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validUnit() Unit {
	return Unit{
		Name:            "TechnoFuture Innovations",
		Description:     "Digital transformation consulting",
		RFCEmitter:      "TEF980523KL9",
		EmitterName:     "TechnoFuture Innovations S.A.P.I.",
		DefaultCurrency: CurrencyMXN,
		Series:          "TF",
	}
}

func TestValidateField(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		wantErr string
	}{
		{"name ok", FieldName, "Acme", ""},
		{"name empty", FieldName, "  ", "company name is required"},
		{"name short", FieldName, "Ab", "name must be at least 3 characters"},
		{"name too long", FieldName, strings.Repeat("a", 101), "maximum 100 characters"},
		{"rfc legal entity", FieldRFCEmitter, "TEF980523KL9", ""},
		{"rfc individual", FieldRFCEmitter, "TEFI980523KL9", ""},
		{"rfc lowercase accepted", FieldRFCEmitter, "tefi980523kl9", ""},
		{"rfc with enye", FieldRFCEmitter, "ÑAB980523KL9", ""},
		{"rfc empty", FieldRFCEmitter, "", "emitter RFC is required"},
		{"rfc malformed", FieldRFCEmitter, "TEFI98052KL9", "enter a valid RFC"},
		{"rfc too long", FieldRFCEmitter, "TEFI980523KL99", "maximum 13 characters"},
		{"emitter name ok", FieldEmitterName, "Acme S.A.", ""},
		{"emitter name empty", FieldEmitterName, "", "legal emitter name is required"},
		{"emitter name short", FieldEmitterName, "AB", "legal name must be at least 3 characters"},
		{"currency ok", FieldDefaultCurrency, "USD", ""},
		{"currency unknown", FieldDefaultCurrency, "GBP", "must be one of MXN, USD, EUR"},
		{"series ok", FieldSeries, "TF01", ""},
		{"series empty", FieldSeries, "", "invoice series is required"},
		{"series symbols", FieldSeries, "T-F", "series may only contain letters and digits"},
		{"series too long", FieldSeries, "ABCDEF", "maximum 5 characters"},
		{"description optional", FieldDescription, "", ""},
		{"description short", FieldDescription, "too short", "description must be at least 10 characters"},
		{"description ok", FieldDescription, "long enough text", ""},
		{"unknown field", "nope", "anything", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateField(tt.field, tt.value)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestUnit_Validate(t *testing.T) {
	t.Run("valid unit", func(t *testing.T) {
		assert.NoError(t, validUnit().Validate())
	})

	t.Run("reports every invalid field in form order", func(t *testing.T) {
		u := validUnit()
		u.Name = ""
		u.Series = "T F"
		u.DefaultCurrency = "JPY"

		err := u.Validate()

		var fieldErrs criterio.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		require.Len(t, fieldErrs, 3)
		assert.Equal(t, FieldName, fieldErrs[0].Field)
		assert.Equal(t, FieldDefaultCurrency, fieldErrs[1].Field)
		assert.Equal(t, FieldSeries, fieldErrs[2].Field)
	})
}

func TestFieldErrorMap(t *testing.T) {
	assert.Nil(t, FieldErrorMap(nil))

	u := validUnit()
	u.RFCEmitter = "bad"
	m := FieldErrorMap(u.Validate())
	assert.Equal(t, map[string]string{FieldRFCEmitter: "enter a valid RFC"}, m)

	assert.Equal(t, map[string]string{"": "boom"}, FieldErrorMap(errors.New("boom")))
}

func TestUnit_Normalize(t *testing.T) {
	u := Unit{
		Name:       "  Acme  ",
		RFCEmitter: " tef980523kl9 ",
		Series:     " TF ",
	}.Normalize()

	assert.Equal(t, "Acme", u.Name)
	assert.Equal(t, "TEF980523KL9", u.RFCEmitter)
	assert.Equal(t, "TF", u.Series)
	assert.Equal(t, CurrencyMXN, u.DefaultCurrency)
	assert.Equal(t, []FieldMapping{{}}, u.FieldMappings)
}

func TestFromValues_and_Value_round_trip(t *testing.T) {
	values := map[string]string{
		FieldName:            "Acme",
		FieldDescription:     "A description",
		FieldRFCEmitter:      "TEF980523KL9",
		FieldEmitterName:     "Acme S.A.",
		FieldDefaultCurrency: "EUR",
		FieldSeries:          "AC",
	}

	u := FromValues(values)
	for field, want := range values {
		assert.Equal(t, want, u.Value(field), field)
	}
}

func TestSuggestion(t *testing.T) {
	for _, field := range Fields {
		v, ok := Suggestion(field)
		require.True(t, ok, field)
		assert.NoError(t, ValidateField(field, v), "suggestion for %s must be valid", field)
	}

	_, ok := Suggestion("unknown")
	assert.False(t, ok)
}
