package calculate

import "fmt"

// InsufficientDataError is returned when the series is shorter than the
// aggregate lookback of the configured indicators.
type InsufficientDataError struct {
	Have int
	Need int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: have %d bars, need at least %d", e.Have, e.Need)
}

// UndefinedIndicatorError is returned when an indicator's latest value is
// not finite, either because the series does not cover that indicator's own
// warm-up or because the input holds non-finite prices.
type UndefinedIndicatorError struct {
	Indicator string
	Have      int
	Need      int
}

func (e *UndefinedIndicatorError) Error() string {
	if e.Have >= e.Need {
		return fmt.Sprintf("indicator %s is undefined for %d bars of input", e.Indicator, e.Have)
	}
	return fmt.Sprintf("indicator %s is undefined: have %d bars, warm-up needs %d", e.Indicator, e.Have, e.Need)
}
