// Package browser wraps the automation driver behind a small session
// interface: navigate, read the current location, find-and-click, type. The
// transfer executor only ever sees this interface.
package browser

import "github.com/chromedp/chromedp/kb"

// Key sequences for page-level keyboard navigation.
const (
	KeyTab   = kb.Tab
	KeyDown  = kb.ArrowDown
	KeyEnter = kb.Enter
)

// Session is one live browser session against the bank site. Element ids are
// DOM ids; ClickByText matches on visible element text. Implementations are
// not safe for concurrent use — the whole run is single-threaded by design.
type Session interface {
	// Navigate loads the given URL.
	Navigate(url string) error
	// Location reports the URL the browser is currently on.
	Location() (string, error)
	// Click clicks the element with the given id.
	Click(id string) error
	// ClickByText clicks the first element whose text contains the given string.
	ClickByText(text string) error
	// Clear empties the input with the given id.
	Clear(id string) error
	// SendText types text into the input with the given id.
	SendText(id, text string) error
	// SendEnter presses Enter inside the input with the given id.
	SendEnter(id string) error
	// SendKeys dispatches raw key presses to the page, with a short pause
	// between each.
	SendKeys(keys ...string) error
	// Close tears the session down. Safe to call more than once.
	Close() error
}
