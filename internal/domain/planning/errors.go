package planning

import (
	"errors"
	"fmt"

	"github.com/andrescamacho/planner-go/internal/domain/shared"
)

// Sentinel causes carried by ConfigurationError
var (
	ErrMaterialNotFound  = errors.New("material not found")
	ErrCommodityNotFound = errors.New("commodity not found")
	ErrDuplicateName     = errors.New("duplicate name")
	ErrOrphanUsageRate   = errors.New("usage rate without matching material")
	ErrMissingUsageRate  = errors.New("material without usage rate")
	ErrMissingField      = errors.New("required field missing")
)

// ErrReportNotFound is returned when a stored cycle report does not exist
var ErrReportNotFound = errors.New("cycle report not found")

// ConfigurationError is fatal for the current planning cycle.
// Entity is "material" or "commodity", Name identifies the offending record.
type ConfigurationError struct {
	*shared.DomainError
	Entity string
	Name   string
	Err    error
}

// NewConfigurationError wraps cause with the record that triggered it
func NewConfigurationError(entity, name string, cause error, detail string) *ConfigurationError {
	msg := fmt.Sprintf("configuration error in %s %q: %v", entity, name, cause)
	if detail != "" {
		msg = fmt.Sprintf("%s (%s)", msg, detail)
	}
	return &ConfigurationError{
		DomainError: shared.NewDomainError(msg),
		Entity:      entity,
		Name:        name,
		Err:         cause,
	}
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// DataRangeWarning rejects a single input record whose numeric field is out of range.
// It never aborts a cycle: the loader drops the record and reports the warning.
type DataRangeWarning struct {
	Record string
	Field  string
	Value  float64
	Rule   string
}

func (w *DataRangeWarning) Error() string {
	return fmt.Sprintf("rejected %s: field %s %s (got %v)", w.Record, w.Field, w.Rule, w.Value)
}

func newNegativeValueWarning(record, field string, value float64) *DataRangeWarning {
	return &DataRangeWarning{Record: record, Field: field, Value: value, Rule: "must be non-negative"}
}

// ErrInvalidPhaseTransition indicates the planner was driven out of order
type ErrInvalidPhaseTransition struct {
	From CyclePhase
	To   CyclePhase
}

func (e *ErrInvalidPhaseTransition) Error() string {
	return fmt.Sprintf("invalid planning phase transition: %s -> %s", e.From, e.To)
}

// IsConfigurationError reports whether err (or anything it wraps) is a ConfigurationError
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

// IsDataRangeWarning reports whether err (or anything it wraps) is a DataRangeWarning
func IsDataRangeWarning(err error) bool {
	var warning *DataRangeWarning
	return errors.As(err, &warning)
}
