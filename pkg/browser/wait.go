package browser

import (
	"fmt"
	"time"
)

// NavigationTimeoutError means an expected page never appeared within the
// bounded polling window. It is fatal for the run.
type NavigationTimeoutError struct {
	URL      string
	Attempts int
}

func (e *NavigationTimeoutError) Error() string {
	return fmt.Sprintf("failed to reach %s after %d attempts", e.URL, e.Attempts)
}

// Waiter polls the session location until an expected URL appears, at a fixed
// interval up to a bounded attempt count.
type Waiter struct {
	Interval    time.Duration
	MaxAttempts int

	// Sleep is replaceable in tests; nil means time.Sleep.
	Sleep func(time.Duration)
}

// Await polls until the session is on url. Checks the location MaxAttempts
// times, sleeping Interval between checks, then returns a
// NavigationTimeoutError.
func (w Waiter) Await(s Session, url string) error {
	sleep := w.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	for attempt := 1; ; attempt++ {
		loc, err := s.Location()
		if err != nil {
			return err
		}
		if loc == url {
			return nil
		}
		if attempt >= w.MaxAttempts {
			return &NavigationTimeoutError{URL: url, Attempts: attempt}
		}
		sleep(w.Interval)
	}
}
