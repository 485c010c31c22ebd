package parallel

import (
	"strings"

	"git.home.luguber.info/inful/sitebuilder/internal/errors"
)

// Collect folds a sequence of outcomes left to right into either the ordered
// list of produced values or a single aggregate failure.
//
// Failures are sticky and additive: once the accumulator is a failure it
// stays one, and each further failure appends its message with a
// comma-and-space separator. Value-less successes leave the accumulator
// unchanged; values are collected in input order.
func Collect[T any](outcomes []Outcome[T]) ([]T, error) {
	var values []T
	var messages []string

	for _, out := range outcomes {
		if out.Err != nil {
			messages = append(messages, out.Err.Error())
			continue
		}
		if len(messages) > 0 {
			// Failure is absorbing; later successes are discarded.
			continue
		}
		if out.HasValue {
			values = append(values, out.Value)
		}
	}

	if len(messages) > 0 {
		return nil, errors.Aggregate(strings.Join(messages, ", "))
	}
	return values, nil
}

// Wait folds value-less outcomes into a single ok-or-aggregate-failure
// result, using the same merge rule as Collect.
func Wait(outcomes []Outcome[struct{}]) error {
	_, err := Collect(outcomes)
	return err
}
