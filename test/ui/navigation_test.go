//go:build e2e

package ui

import (
	"github.com/playwright-community/playwright-go"

	"github.com/eventsqa/harness/internal/ui"
	"github.com/eventsqa/harness/pkg/softassert"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Navigation", func() {
	It("shows the application title", func() {
		Expect(page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{State: playwright.LoadStateNetworkidle})).To(Succeed())

		title, err := page.Title()
		Expect(err).NotTo(HaveOccurred())
		Expect(title).To(Equal(ui.AppTitle))
	})

	It("shows every manage button on the home page", func() {
		sa := softassert.New()
		home := ui.NewHomePage(page, cfg.Browser.BaseURL, sa)

		Expect(home.GoHome()).To(Succeed())
		for _, name := range home.MissingManageButtons() {
			sa.Custom(false, "Button '"+name+"' is not visible")
		}

		Expect(sa.AssertAll()).To(Succeed())
	})

	It("opens the account list", func() {
		sa := softassert.New()
		home := ui.NewHomePage(page, cfg.Browser.BaseURL, sa)

		Expect(home.GoHome()).To(Succeed())
		Expect(home.GoAccounts()).To(Succeed())

		Expect(sa.AssertAll()).To(Succeed())
	})
})
