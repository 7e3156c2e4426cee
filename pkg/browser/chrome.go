package browser

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/74.0.3729.169 Safari/537.36"

// ChromeSession drives a visible Chrome instance through chromedp.
type ChromeSession struct {
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewChromeSession launches Chrome and clears its cookies. driverPath may be
// empty to use the Chrome found on PATH.
func NewChromeSession(parent context.Context, driverPath string) (*ChromeSession, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", false),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-plugins-discovery", true),
		chromedp.Flag("profile-directory", "Default"),
		chromedp.Flag("start-maximized", true),
		chromedp.UserAgent(userAgent),
		chromedp.WindowSize(800, 800),
	)
	if driverPath != "" {
		opts = append(opts, chromedp.ExecPath(driverPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, opts...)
	ctx, ctxCancel := chromedp.NewContext(allocCtx)
	cancel := func() {
		ctxCancel()
		allocCancel()
	}

	s := &ChromeSession{ctx: ctx, cancel: cancel}
	if err := s.run(network.ClearBrowserCookies()); err != nil {
		cancel()
		return nil, fmt.Errorf("starting browser: %w", err)
	}
	return s, nil
}

func (s *ChromeSession) run(actions ...chromedp.Action) error {
	return chromedp.Run(s.ctx, actions...)
}

func (s *ChromeSession) Navigate(url string) error {
	return s.run(chromedp.Navigate(url))
}

func (s *ChromeSession) Location() (string, error) {
	var url string
	if err := s.run(chromedp.Location(&url)); err != nil {
		return "", err
	}
	return url, nil
}

func (s *ChromeSession) Click(id string) error {
	return s.run(chromedp.Click(id, chromedp.ByID))
}

func (s *ChromeSession) ClickByText(text string) error {
	xpath := fmt.Sprintf(`//*[contains(text(), %q)]`, text)
	return s.run(chromedp.Click(xpath, chromedp.BySearch))
}

func (s *ChromeSession) Clear(id string) error {
	return s.run(chromedp.Clear(id, chromedp.ByID))
}

func (s *ChromeSession) SendText(id, text string) error {
	return s.run(chromedp.SendKeys(id, text, chromedp.ByID))
}

func (s *ChromeSession) SendEnter(id string) error {
	return s.run(chromedp.SendKeys(id, KeyEnter, chromedp.ByID))
}

// SendKeys presses each key against the page with a 0.5–1s pause in between,
// mirroring how a person tabs through a form.
func (s *ChromeSession) SendKeys(keys ...string) error {
	actions := make([]chromedp.Action, 0, len(keys)*2)
	for _, k := range keys {
		actions = append(actions,
			chromedp.KeyEvent(k),
			chromedp.Sleep(500*time.Millisecond+time.Duration(rand.Int63n(int64(500*time.Millisecond)))),
		)
	}
	return s.run(actions...)
}

func (s *ChromeSession) Close() error {
	s.closeOnce.Do(s.cancel)
	return nil
}
