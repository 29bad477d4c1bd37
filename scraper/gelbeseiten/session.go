package gelbeseiten

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"gelbeseiten-scraper/config"
	"gelbeseiten-scraper/utils"

	"github.com/chromedp/chromedp"
)

// ErrSessionClosed is returned by a session used after Close.
var ErrSessionClosed = errors.New("browser session closed")

const selLoadMore = "#mod-LoadMore--button"

// Session drives one browser tab over the directory's results pages.
//
// AdvancePage reports false, not an error, when there is no "load more"
// control to click. Errors from any method mean the session is unusable.
type Session interface {
	Open(profession, location string) error
	Snapshot() (string, error)
	AdvancePage() (bool, error)
	Close() error
}

// ListingURL composes base/profession/location with escaped segments.
func ListingURL(base, profession, location string) (string, error) {
	u, err := url.JoinPath(base, profession, location)
	if err != nil {
		return "", fmt.Errorf("invalid listing url: %w", err)
	}
	return u, nil
}

// ChromeSession is a Session backed by a chromedp-controlled Chrome.
type ChromeSession struct {
	cfg *config.Config

	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	closeOnce sync.Once
}

var _ Session = (*ChromeSession)(nil)

// NewChromeSession launches Chrome and opens the tab the session works in.
func NewChromeSession(cfg *config.Config) (*ChromeSession, error) {
	utils.Info("Launching Chrome browser...")
	allocCtx, allocCancel := chromedp.NewExecAllocator(
		context.Background(),
		utils.BrowserOpts(cfg.Headless, cfg.UserAgent)...,
	)

	browserCtx, browserCancel := chromedp.NewContext(
		allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			utils.Debug("chrome: "+format, args...)
		}),
	)

	// An empty Run starts the browser so launch failures surface here.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	utils.Success("Browser ready")
	return &ChromeSession{
		cfg:           cfg,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

func (s *ChromeSession) Open(profession, location string) error {
	if err := s.browserCtx.Err(); err != nil {
		return ErrSessionClosed
	}

	target, err := ListingURL(s.cfg.BaseURL, profession, location)
	if err != nil {
		return err
	}
	utils.Debug("Navigating to %s", target)

	ctx, cancel := context.WithTimeout(s.browserCtx, s.cfg.NavigationTimeout+s.cfg.SettleDelay)
	defer cancel()

	if err := chromedp.Run(ctx,
		chromedp.Navigate(target),
		chromedp.Sleep(s.cfg.SettleDelay),
	); err != nil {
		return fmt.Errorf("navigation to %s failed: %w", target, err)
	}
	return nil
}

func (s *ChromeSession) Snapshot() (string, error) {
	if err := s.browserCtx.Err(); err != nil {
		return "", ErrSessionClosed
	}

	ctx, cancel := context.WithTimeout(s.browserCtx, s.cfg.NavigationTimeout)
	defer cancel()

	var markup string
	if err := chromedp.Run(ctx, chromedp.OuterHTML("html", &markup, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("failed to read page source: %w", err)
	}
	return markup, nil
}

func (s *ChromeSession) AdvancePage() (bool, error) {
	if err := s.browserCtx.Err(); err != nil {
		return false, ErrSessionClosed
	}

	waitCtx, cancel := context.WithTimeout(s.browserCtx, s.cfg.LoadMoreTimeout)
	defer cancel()

	err := chromedp.Run(waitCtx,
		chromedp.WaitVisible(selLoadMore, chromedp.ByID),
		chromedp.WaitEnabled(selLoadMore, chromedp.ByID),
		chromedp.ScrollIntoView(selLoadMore, chromedp.ByID),
		chromedp.Click(selLoadMore, chromedp.ByID),
	)
	if err != nil {
		if s.browserCtx.Err() != nil {
			return false, fmt.Errorf("browser gone while paginating: %w", err)
		}
		utils.Debug("No clickable 'Mehr anzeigen' button within %v: %v", s.cfg.LoadMoreTimeout, err)
		return false, nil
	}

	if err := chromedp.Run(s.browserCtx, chromedp.Sleep(s.cfg.ClickSettleDelay)); err != nil {
		return false, fmt.Errorf("browser gone after click: %w", err)
	}
	return true, nil
}

// Close shuts the browser down. Calls after the first are no-ops.
func (s *ChromeSession) Close() error {
	s.closeOnce.Do(func() {
		utils.Info("Closing browser...")
		s.browserCancel()
		s.allocCancel()
	})
	return nil
}
