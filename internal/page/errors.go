// File: internal/page/errors.go
package page

import (
	"errors"
	"fmt"
	"time"
)

// TimeoutError is the only error category this layer raises for wait-based
// operations: the condition did not hold within the wait bound. It carries
// the locator and the bound so a failing step names exactly what was waited
// for and for how long. No retries happen here; retry policy, if any, belongs
// to the caller.
type TimeoutError struct {
	Locator   string
	Condition string
	Timeout   time.Duration
	Cause     error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %v waiting for element %s to be %s", e.Timeout, e.Locator, e.Condition)
}

func (e *TimeoutError) Unwrap() error { return e.Cause }

// IsTimeout reports whether err is (or wraps) a TimeoutError.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}
