package ui_test

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/eventsqa/harness/internal/ui"
)

var _ = Describe("Waits", func() {
	var page *fakePage

	BeforeEach(func() {
		page = newFakePage()
	})

	Context("WaitForAngularReady", func() {
		It("should wait for network idle then the angular predicate", func() {
			Expect(ui.WaitForAngularReady(page, time.Second)).To(BeTrue())
			Expect(page.actions).To(Equal([]string{"wait networkidle", "wait function"}))
		})

		// Given a page whose network never goes idle
		// When we wait for angular
		// Then the timeout is reported as false instead of an error
		It("should return false on network timeout", func() {
			page.loadErr = errors.New("Timeout 1000ms exceeded")
			Expect(ui.WaitForAngularReady(page, time.Second)).To(BeFalse())
			Expect(page.actions).To(Equal([]string{"wait networkidle"}))
		})

		It("should return false when angular stays busy", func() {
			page.funcErr = errors.New("Timeout 1000ms exceeded")
			Expect(ui.WaitForAngularReady(page, time.Second)).To(BeFalse())
		})
	})

	Context("WaitForPageReady", func() {
		It("should wait for dom content, network, angular and loading indicators", func() {
			Expect(ui.WaitForPageReady(page, time.Second)).To(BeTrue())
			Expect(page.actions).To(Equal([]string{
				"wait domcontentloaded",
				"wait networkidle",
				"wait function",
				"wait hidden .loading, .spinner, [data-loading]",
			}))
		})

		It("should return false when angular times out", func() {
			page.funcErr = errors.New("timeout")
			Expect(ui.WaitForPageReady(page, time.Second)).To(BeFalse())
		})
	})
})
