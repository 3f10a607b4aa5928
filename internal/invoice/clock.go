package invoice

import "time"

// Clock supplies "today" to date validation.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}
