package browser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSession serves a scripted series of locations.
type stubSession struct {
	locations []string
	calls     int
}

func (s *stubSession) Location() (string, error) {
	i := s.calls
	if i >= len(s.locations) {
		i = len(s.locations) - 1
	}
	s.calls++
	return s.locations[i], nil
}

func (s *stubSession) Navigate(string) error        { return nil }
func (s *stubSession) Click(string) error           { return nil }
func (s *stubSession) ClickByText(string) error     { return nil }
func (s *stubSession) Clear(string) error           { return nil }
func (s *stubSession) SendText(string, string) error { return nil }
func (s *stubSession) SendEnter(string) error       { return nil }
func (s *stubSession) SendKeys(...string) error     { return nil }
func (s *stubSession) Close() error                 { return nil }

func TestAwaitSucceedsOnceLocationMatches(t *testing.T) {
	s := &stubSession{locations: []string{"about:blank", "about:blank", "https://bank/main"}}
	var slept int
	w := Waiter{Interval: time.Second, MaxAttempts: 10, Sleep: func(time.Duration) { slept++ }}

	err := w.Await(s, "https://bank/main")
	require.NoError(t, err)
	assert.Equal(t, 3, s.calls)
	assert.Equal(t, 2, slept)
}

func TestAwaitTimesOutAfterMaxAttempts(t *testing.T) {
	s := &stubSession{locations: []string{"about:blank"}}
	var slept int
	w := Waiter{Interval: time.Second, MaxAttempts: 10, Sleep: func(time.Duration) { slept++ }}

	err := w.Await(s, "https://bank/transfers/verify")
	var timeout *NavigationTimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, "https://bank/transfers/verify", timeout.URL)
	assert.Equal(t, 10, timeout.Attempts)
	assert.Equal(t, 10, s.calls)
	assert.Equal(t, 9, slept)
	assert.Contains(t, err.Error(), "failed to reach")
}

func TestPacerDelayWithinScaledWindow(t *testing.T) {
	p := NewPacer(2*time.Second, 5*time.Second, 0.5)
	for i := 0; i < 100; i++ {
		d := p.delay()
		assert.GreaterOrEqual(t, d, 1*time.Second)
		assert.LessOrEqual(t, d, 2500*time.Millisecond)
	}
}

func TestPacerZeroWindow(t *testing.T) {
	p := NewPacer(0, 0, 3.0)
	assert.Equal(t, time.Duration(0), p.delay())
}

func TestPacerPauseUsesSampledDelay(t *testing.T) {
	p := NewPacer(time.Second, time.Second, 2.0)
	var got time.Duration
	p.sleep = func(d time.Duration) { got = d }

	p.Pause()
	assert.Equal(t, 2*time.Second, got)
}
