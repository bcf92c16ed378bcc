package ui_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/playwright-community/playwright-go"

	"github.com/eventsqa/harness/internal/config"
	"github.com/eventsqa/harness/internal/models"
	"github.com/eventsqa/harness/internal/ui"
)

var _ = Describe("ScenarioRunner", func() {
	var (
		page     *fakePage
		released int
		cfg      config.Browser
	)

	BeforeEach(func() {
		page = newFakePage()
		page.navigateTo["button:Manage Accounts"] = baseURL + "/entity/Account"
		released = 0
		cfg = config.Browser{BaseURL: baseURL, Timeout: time.Second}
	})

	opener := func(err error) ui.OpenFunc {
		return func() (playwright.Page, func() error, error) {
			release := func() error { released++; return nil }
			if err != nil {
				return nil, release, err
			}
			return page, release, nil
		}
	}

	It("should run the account scenario and release the browser", func() {
		r := ui.NewScenarioRunnerWithOpener(cfg, opener(nil))

		result, err := r.Run(context.Background(), models.TestTypeAccount, map[string]any{"expired_at": "2030-01-01"})

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Status).To(Equal(models.StatusSuccess))
		Expect(result.Mode).To(Equal(models.ModeUI))
		Expect(page.actions).To(ContainElement("fill #expiredAt=2030-01-01"))
		Expect(released).To(Equal(1))
	})

	// Given a browser that fails to start
	// When a scenario runs
	// Then the error is returned and whatever was opened is still released
	It("should release the browser when setup fails", func() {
		r := ui.NewScenarioRunnerWithOpener(cfg, opener(errors.New("chromium not installed")))

		_, err := r.Run(context.Background(), models.TestTypeUser, map[string]any{})

		Expect(err).To(MatchError("chromium not installed"))
		Expect(released).To(Equal(1))
	})

	It("should fail with the aggregated soft assertions", func() {
		delete(page.navigateTo, "button:Manage Accounts")
		r := ui.NewScenarioRunnerWithOpener(cfg, opener(nil))

		_, err := r.Run(context.Background(), models.TestTypeAccount, map[string]any{})

		Expect(err).To(MatchError(ContainSubstring("URL does not match expected value")))
		Expect(released).To(Equal(1))
	})

	It("should map form field names for users", func() {
		r := ui.NewScenarioRunnerWithOpener(cfg, opener(nil))

		_, err := r.Run(context.Background(), models.TestTypeUser, map[string]any{
			"username": "jdoe", "email": "j@example.com", "first_name": "John",
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(page.actions).To(ContainElement("fill #firstName=John"))
	})

	It("should not open a browser for a cancelled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := ui.NewScenarioRunnerWithOpener(cfg, opener(nil)).Run(ctx, models.TestTypeAccount, nil)

		Expect(err).To(MatchError(context.Canceled))
		Expect(released).To(Equal(0))
	})
})

var _ = Describe("UserFromPayload", func() {
	It("should accept both field spellings", func() {
		Expect(ui.UserFromPayload(map[string]any{"lastName": "Doe", "birth": "1990-01-01"})).To(Equal(models.User{LastName: "Doe", Dob: "1990-01-01"}))
	})
})
