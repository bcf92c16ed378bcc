package ui

import (
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/eventsqa/harness/internal/config"
)

// Session owns one browser and one page. Cleanup must always be deferred after Setup,
// including when Setup fails half way.
type Session struct {
	cfg     config.Browser
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
	log     *zap.SugaredLogger
}

func NewSession(cfg config.Browser) *Session {
	return &Session{cfg: cfg, log: zap.S().Named("browser")}
}

// Setup starts the driver, launches chromium and opens the base URL.
func (s *Session) Setup() (playwright.Page, error) {
	s.log.Infow("starting browser", "headless", s.cfg.Headless, "slow_mo_ms", s.cfg.SlowMo, "base_url", s.cfg.BaseURL)

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}
	s.pw = pw

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(s.cfg.Headless),
		SlowMo:   playwright.Float(float64(s.cfg.SlowMo)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to launch chromium: %w", err)
	}
	s.browser = browser

	page, err := browser.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	s.page = page
	if s.cfg.Timeout > 0 {
		page.SetDefaultTimeout(float64(s.cfg.Timeout.Milliseconds()))
	}

	if _, err := page.Goto(s.cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", s.cfg.BaseURL, err)
	}
	return page, nil
}

func (s *Session) Page() playwright.Page {
	return s.page
}

func (s *Session) BaseURL() string {
	return s.cfg.BaseURL
}

// Cleanup closes whatever Setup managed to open. It is safe to call more than once.
func (s *Session) Cleanup() error {
	var errs []error
	if s.page != nil {
		errs = append(errs, s.page.Close())
		s.page = nil
	}
	if s.browser != nil {
		errs = append(errs, s.browser.Close())
		s.browser = nil
	}
	if s.pw != nil {
		errs = append(errs, s.pw.Stop())
		s.pw = nil
	}
	err := errors.Join(errs...)
	if err != nil {
		s.log.Warnw("browser cleanup failed", "error", err)
	}
	return err
}
