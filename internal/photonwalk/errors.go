package photonwalk

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStillActive is returned when statistics are requested before the photon escaped.
var ErrStillActive = errors.New("simulation still active")

// ConfigurationError rejects one medium constant or config field.
type ConfigurationError struct {
	Key    string
	Reason string
	Value  any // nil when there is no offending value, e.g. a malformed override
}

func (e *ConfigurationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("invalid %s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("invalid %s %v: %s", e.Key, e.Value, e.Reason)
}

// AggregateError is returned when validation rejects more than one field.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "walk cannot start, %d invalid settings:", len(e.Errors))
	for _, err := range e.Errors {
		b.WriteString("\n  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}

func (e *AggregateError) Unwrap() []error { return e.Errors }

// ConfigurationErrors returns all failures if err is an AggregateError,
// the error itself if it is a single ConfigurationError, otherwise nil.
func ConfigurationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	var cfg *ConfigurationError
	if errors.As(err, &cfg) {
		return []error{cfg}
	}
	return nil
}

// aggregate returns nil, the only error, or an AggregateError.
func aggregate(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	}
	return &AggregateError{Errors: errs}
}
