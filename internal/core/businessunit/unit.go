// Package businessunit defines the business unit domain types, their field
// validation rules, and the persistence interface.
package businessunit

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a business unit does not exist.
	ErrNotFound = errors.New("business unit not found")
	// ErrAlreadyExists is returned when creating a unit whose ID is taken.
	ErrAlreadyExists = errors.New("business unit already exists")
)

// Currency is an ISO 4217 code accepted as a unit's default currency.
type Currency string

const (
	CurrencyMXN Currency = "MXN"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// DefaultCurrency is preselected on new units.
const DefaultCurrency = CurrencyMXN

// CurrencyOption pairs a currency with its display label.
type CurrencyOption struct {
	Value Currency
	Label string
}

// Currencies lists the supported currencies in display order.
var Currencies = []CurrencyOption{
	{CurrencyMXN, "MXN - Mexican Peso"},
	{CurrencyUSD, "USD - US Dollar"},
	{CurrencyEUR, "EUR - Euro"},
}

// Field names, shared by validation errors, forms, and the JSON encoding.
const (
	FieldName            = "name"
	FieldDescription     = "description"
	FieldRFCEmitter      = "rfcEmitter"
	FieldEmitterName     = "emitterName"
	FieldDefaultCurrency = "defaultCurrency"
	FieldSeries          = "series"
)

// Fields lists the editable fields in form order.
var Fields = []string{
	FieldName,
	FieldRFCEmitter,
	FieldEmitterName,
	FieldDefaultCurrency,
	FieldSeries,
	FieldDescription,
}

// FieldMapping maps a field of an external source to a standard field.
type FieldMapping struct {
	SourceFieldName   string `json:"sourceFieldName"`
	StandardFieldName string `json:"standardFieldName"`
}

// Unit is a business unit: a client or tenant that issues invoices.
type Unit struct {
	ID              string         `json:"id,omitempty"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	RFCEmitter      string         `json:"rfcEmitter"`
	EmitterName     string         `json:"emitterName"`
	DefaultCurrency Currency       `json:"defaultCurrency"`
	Series          string         `json:"series"`
	FieldMappings   []FieldMapping `json:"fieldMappings"`
	CreatedAt       time.Time      `json:"createdAt,omitzero"`
	UpdatedAt       time.Time      `json:"updatedAt,omitzero"`
}

// Value returns the value of the named field.
func (u Unit) Value(field string) string {
	switch field {
	case FieldName:
		return u.Name
	case FieldDescription:
		return u.Description
	case FieldRFCEmitter:
		return u.RFCEmitter
	case FieldEmitterName:
		return u.EmitterName
	case FieldDefaultCurrency:
		return string(u.DefaultCurrency)
	case FieldSeries:
		return u.Series
	}
	return ""
}

// FromValues builds a unit from a field name to value map, as produced by
// a form. Unknown keys are ignored.
func FromValues(values map[string]string) Unit {
	return Unit{
		Name:            values[FieldName],
		Description:     values[FieldDescription],
		RFCEmitter:      values[FieldRFCEmitter],
		EmitterName:     values[FieldEmitterName],
		DefaultCurrency: Currency(values[FieldDefaultCurrency]),
		Series:          values[FieldSeries],
	}
}

// Normalize trims every text field, upper-cases the RFC, and fills in the
// default currency and the placeholder field mapping.
func (u Unit) Normalize() Unit {
	u.Name = strings.TrimSpace(u.Name)
	u.Description = strings.TrimSpace(u.Description)
	u.RFCEmitter = strings.ToUpper(strings.TrimSpace(u.RFCEmitter))
	u.EmitterName = strings.TrimSpace(u.EmitterName)
	u.Series = strings.TrimSpace(u.Series)
	if u.DefaultCurrency == "" {
		u.DefaultCurrency = DefaultCurrency
	}
	if len(u.FieldMappings) == 0 {
		u.FieldMappings = []FieldMapping{{}}
	}
	return u
}

// suggestions are offered when an empty field gains focus.
var suggestions = map[string]string{
	FieldName:            "TechnoFuture Innovations",
	FieldDescription:     "Advanced technology solutions and digital transformation consulting",
	FieldRFCEmitter:      "TEFI980523KL9",
	FieldEmitterName:     "TechnoFuture Innovations S.A.P.I.",
	FieldDefaultCurrency: string(DefaultCurrency),
	FieldSeries:          "TF",
}

// Suggestion returns the autofill value for field, if any.
func Suggestion(field string) (string, bool) {
	v, ok := suggestions[field]
	return v, ok
}

// Store persists business units.
type Store interface {
	Create(ctx context.Context, u Unit) (Unit, error)
	Get(ctx context.Context, id string) (Unit, error)
	Update(ctx context.Context, u Unit) (Unit, error)
	List(ctx context.Context) ([]Unit, error)
}
