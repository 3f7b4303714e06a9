package splitter

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is returned before any splitting happens.
	ErrInvalidConfiguration = errors.New("invalid split configuration")
	// ErrStrategyFailure marks faults inside a strategy. The dispatcher
	// recovers from these by retrying with the recursive strategy.
	ErrStrategyFailure = errors.New("split strategy failed")
)

// StrategyError carries the strategy that failed and its cause.
type StrategyError struct {
	Strategy Strategy
	Err      error
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("%s strategy: %v", e.Strategy, e.Err)
}

func (e *StrategyError) Unwrap() []error {
	return []error{ErrStrategyFailure, e.Err}
}

func strategyErr(s Strategy, format string, args ...any) error {
	return &StrategyError{Strategy: s, Err: fmt.Errorf(format, args...)}
}
