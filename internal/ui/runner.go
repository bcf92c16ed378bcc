package ui

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/eventsqa/harness/internal/config"
	"github.com/eventsqa/harness/internal/models"
	"github.com/eventsqa/harness/pkg/softassert"
)

// OpenFunc opens a page on the base URL and returns the function that releases it.
// The release function is valid even when err is non-nil.
type OpenFunc func() (playwright.Page, func() error, error)

// ScenarioRunner drives the page object scenario matching a test type.
type ScenarioRunner struct {
	cfg  config.Browser
	open OpenFunc
	log  *zap.SugaredLogger
}

func NewScenarioRunner(cfg config.Browser) *ScenarioRunner {
	return NewScenarioRunnerWithOpener(cfg, func() (playwright.Page, func() error, error) {
		s := NewSession(cfg)
		page, err := s.Setup()
		return page, s.Cleanup, err
	})
}

func NewScenarioRunnerWithOpener(cfg config.Browser, open OpenFunc) *ScenarioRunner {
	return &ScenarioRunner{cfg: cfg, open: open, log: zap.S().Named("ui_runner")}
}

func (r *ScenarioRunner) Run(ctx context.Context, testType models.TestType, data map[string]any) (*models.TestResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, release, err := r.open()
	defer func() { _ = release() }()
	if err != nil {
		return nil, err
	}

	if !WaitForPageReady(page, r.cfg.Timeout) {
		r.log.Warnw("page not ready, continuing", "url", r.cfg.BaseURL)
	}

	sa := softassert.New()
	if err := r.scenario(page, sa, testType, data); err != nil {
		return nil, err
	}
	if err := sa.AssertAll(); err != nil {
		return nil, err
	}

	return &models.TestResult{
		Status:   models.StatusSuccess,
		Message:  fmt.Sprintf("%s UI test passed", testType),
		Mode:     models.ModeUI,
		TestType: testType,
	}, nil
}

func (r *ScenarioRunner) scenario(page playwright.Page, sa *softassert.SoftAssert, testType models.TestType, data map[string]any) error {
	base := r.cfg.BaseURL
	switch testType {
	case models.TestTypeAccount:
		expiredAt, _ := data["expired_at"].(string)
		return NewAccountPage(page, base, sa).CreateAccount(expiredAt)
	case models.TestTypeUser:
		return NewUserPage(page, base, sa).CreateUser(UserFromPayload(data))
	case models.TestTypeProfile:
		var p models.Profile
		if err := models.FromMap(data, &p); err != nil {
			return err
		}
		return NewProfilePage(page, base, sa).CreateProfile(p)
	case models.TestTypeTagAffinity:
		var t models.TagAffinity
		if err := models.FromMap(data, &t); err != nil {
			return err
		}
		return NewAffinityPage(page, base, sa).CreateAffinity(t)
	case models.TestTypeEvent:
		var e models.Event
		if err := models.FromMap(data, &e); err != nil {
			return err
		}
		return NewEventPage(page, base, sa).CreateEvent(e)
	case models.TestTypeUserEvent:
		var ue models.UserEvent
		if err := models.FromMap(data, &ue); err != nil {
			return err
		}
		return NewUserEventPage(page, base, sa).CreateUserEvent(ue)
	default:
		home := NewHomePage(page, base, sa)
		if err := home.GoHome(); err != nil {
			return err
		}
		for _, name := range home.MissingManageButtons() {
			sa.Custom(false, fmt.Sprintf("Button '%s' is not visible", name))
		}
		return nil
	}
}

// UserFromPayload reads a user from either the HTTP form fields (first_name) or API fields (firstName).
func UserFromPayload(data map[string]any) models.User {
	str := func(keys ...string) string {
		for _, k := range keys {
			if s, ok := data[k].(string); ok && s != "" {
				return s
			}
		}
		return ""
	}
	return models.User{
		Username:  str("username"),
		Email:     str("email"),
		FirstName: str("first_name", "firstName"),
		LastName:  str("last_name", "lastName"),
		Gender:    str("gender"),
		Dob:       str("birth", "dob"),
	}
}
