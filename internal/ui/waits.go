package ui

import (
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

const angularReadyScript = `() => {
	if (!window.angular) return true;
	const scope = window.angular.element(document.body).scope();
	if (!scope) return true;
	if (scope.$$phase) return false;
	return !(scope.$http && scope.$http.pendingRequests.length > 0);
}`

const loadingIndicators = ".loading, .spinner, [data-loading]"

const loadingIndicatorTimeout = 5 * time.Second

func ms(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}

// WaitForAngularReady waits for network idle and, when AngularJS is on the page, for
// its digest cycle and pending requests to settle. Timeouts are logged and reported as false.
func WaitForAngularReady(page playwright.Page, timeout time.Duration) bool {
	log := zap.S().Named("waits")

	if err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: ms(timeout),
	}); err != nil {
		log.Warnw("angular wait timeout", "stage", "networkidle", "error", err)
		return false
	}

	if _, err := page.WaitForFunction(angularReadyScript, nil, playwright.PageWaitForFunctionOptions{
		Timeout: ms(timeout),
	}); err != nil {
		log.Warnw("angular wait timeout", "stage", "angular", "error", err)
		return false
	}

	log.Debug("angular is ready")
	return true
}

// WaitForPageReady waits for DOM content, network idle and Angular, then gives loading
// indicators a few seconds to disappear. Missing indicators are not an error.
func WaitForPageReady(page playwright.Page, timeout time.Duration) bool {
	log := zap.S().Named("waits")

	if err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateDomcontentloaded,
		Timeout: ms(timeout),
	}); err != nil {
		log.Warnw("page wait timeout", "stage", "domcontentloaded", "error", err)
		return false
	}

	if !WaitForAngularReady(page, timeout) {
		return false
	}

	if err := page.Locator(loadingIndicators).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateHidden,
		Timeout: ms(loadingIndicatorTimeout),
	}); err != nil {
		log.Debugw("loading indicator still visible", "error", err)
	}

	log.Debug("page is ready")
	return true
}
