// Package ui drives the Events Management web application through playwright.
//
// # Session
//
// Session owns the playwright driver, one chromium instance and one page, configured
// from config.Browser (HEADLESS, SLOW_MO, BASE_URL):
//
//	s := ui.NewSession(cfg.Browser)
//	defer s.Cleanup()
//	page, err := s.Setup()
//
// Cleanup closes the page, the browser and the driver in that order and tolerates
// a partially completed Setup.
//
// # Waits
//
// WaitForAngularReady and WaitForPageReady block until the page settles. They never
// fail the caller: a timeout is logged and reported as false.
//
// # Page objects
//
// One page object per entity screen. Actions (click, fill) return errors; checks on
// what the page shows (titles, URLs, visible buttons) are recorded on the
// SoftAssert passed in, so one run reports every UI problem it sees.
//
//	sa := softassert.New()
//	err := ui.NewAccountPage(page, baseURL, sa).CreateAccount("2030-01-01")
//	...
//	err = sa.AssertAll()
//
// # ScenarioRunner
//
// ScenarioRunner runs the page object scenario for a test type inside a fresh
// session. It is used by the controller when browser automation is enabled.
package ui
