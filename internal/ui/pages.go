package ui

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/eventsqa/harness/internal/models"
	"github.com/eventsqa/harness/pkg/softassert"
)

const (
	AppTitle     = "Events Management"
	homeLinkText = "Events Management"
)

// Manage buttons on the home page, one per entity.
const (
	ManageAccounts        = "Manage Accounts"
	ManageUsers           = "Manage Users"
	ManageUserProfiles    = "Manage User Profiles"
	ManageEventAffinity   = "Manage Event Affinity"
	ManageEvents          = "Manage Events"
	ManageEventAttendance = "Manage Event Attendance"
	ManageURLs            = "Manage URLs"
	ManageCrawls          = "Manage Crawls"
)

var ManageButtons = []string{
	ManageAccounts, ManageUsers, ManageUserProfiles, ManageEventAffinity,
	ManageEvents, ManageEventAttendance, ManageURLs, ManageCrawls,
}

// basePage holds the helpers shared by every page object.
type basePage struct {
	page    playwright.Page
	baseURL string
	sa      *softassert.SoftAssert
	log     *zap.SugaredLogger
}

func newBasePage(page playwright.Page, baseURL string, sa *softassert.SoftAssert, name string) basePage {
	if sa == nil {
		sa = softassert.New()
	}
	return basePage{page: page, baseURL: baseURL, sa: sa, log: zap.S().Named("page").Named(name)}
}

func (p basePage) button(name string) playwright.Locator {
	return p.page.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{Name: name})
}

func (p basePage) goHome() error {
	if _, err := p.page.Goto(p.baseURL); err != nil {
		return fmt.Errorf("failed to open %s: %w", p.baseURL, err)
	}
	return p.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{State: playwright.LoadStateNetworkidle})
}

func (p basePage) click(name string) error {
	if err := p.button(name).Click(); err != nil {
		return fmt.Errorf("failed to click %q: %w", name, err)
	}
	return nil
}

func (p basePage) fill(selector, value string) error {
	if err := p.page.Locator(selector).Fill(value); err != nil {
		return fmt.Errorf("failed to fill %s: %w", selector, err)
	}
	p.log.Debugw("filled field", "selector", selector, "value", value)
	return nil
}

// fillAll fills fields in order, skipping empty values.
func (p basePage) fillAll(fields [][2]string) error {
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		if err := p.fill(f[0], f[1]); err != nil {
			return err
		}
	}
	return nil
}

func (p basePage) visible(l playwright.Locator) bool {
	ok, err := l.IsVisible()
	return err == nil && ok
}

// openEntity goes home, checks the manage button is there and opens the entity list.
func (p basePage) openEntity(manage string) error {
	if err := p.goHome(); err != nil {
		return err
	}
	p.sa.True(p.visible(p.button(manage)), manage+" button is not visible")
	if err := p.click(manage); err != nil {
		return err
	}
	return p.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{State: playwright.LoadStateNetworkidle})
}

// submitAndReturn clicks Submit and follows the home link.
func (p basePage) submitAndReturn() error {
	if err := p.click("Submit"); err != nil {
		return err
	}
	p.log.Info("submitted form")
	if err := p.page.GetByText(homeLinkText).First().Click(); err != nil {
		return fmt.Errorf("failed to return home: %w", err)
	}
	return nil
}

type HomePage struct {
	basePage
}

func NewHomePage(page playwright.Page, baseURL string, sa *softassert.SoftAssert) *HomePage {
	return &HomePage{basePage: newBasePage(page, baseURL, sa, "home")}
}

// GoHome opens the base URL and checks the application title.
func (h *HomePage) GoHome() error {
	if err := h.goHome(); err != nil {
		return err
	}
	title, err := h.page.Title()
	h.sa.NoError(err, "read page title")
	h.sa.Equal(title, AppTitle, "Title does not match expected value")
	return nil
}

// GoAccounts opens the account list from the home page.
func (h *HomePage) GoAccounts() error {
	if err := h.click(ManageAccounts); err != nil {
		return err
	}
	if err := h.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{State: playwright.LoadStateNetworkidle}); err != nil {
		return err
	}
	h.sa.Equal(h.page.URL(), h.baseURL+"/entity/Account", "URL does not match expected value")
	h.sa.True(h.visible(h.page.GetByText("Accounts").First()), "Accounts page title is not visible")
	return nil
}

// MissingManageButtons returns the manage buttons that are not visible on the home page.
func (h *HomePage) MissingManageButtons() []string {
	var missing []string
	for _, name := range ManageButtons {
		if !h.visible(h.button(name)) {
			missing = append(missing, name)
		}
	}
	return missing
}

type AccountPage struct {
	basePage
	now func() time.Time
}

func NewAccountPage(page playwright.Page, baseURL string, sa *softassert.SoftAssert) *AccountPage {
	return &AccountPage{basePage: newBasePage(page, baseURL, sa, "account"), now: time.Now}
}

func (a *AccountPage) URL() string {
	return a.baseURL + "/entity/Account"
}

// CreateAccount creates an account expiring at expiredAt (YYYY-MM-DD). Empty means today.
func (a *AccountPage) CreateAccount(expiredAt string) error {
	if expiredAt == "" {
		expiredAt = a.now().Format(time.DateOnly)
	}
	if err := a.openEntity(ManageAccounts); err != nil {
		return err
	}
	a.sa.Equal(a.page.URL(), a.URL(), "URL does not match expected value")
	a.sa.True(a.visible(a.page.GetByText("Accounts").First()), "Accounts page title is not visible")

	if err := a.click("Create Account"); err != nil {
		return err
	}
	if err := a.fill("#expiredAt", expiredAt); err != nil {
		return err
	}
	return a.submitAndReturn()
}

type UserPage struct {
	basePage
}

func NewUserPage(page playwright.Page, baseURL string, sa *softassert.SoftAssert) *UserPage {
	return &UserPage{basePage: newBasePage(page, baseURL, sa, "user")}
}

func (u *UserPage) CreateUser(user models.User) error {
	if err := u.openEntity(ManageUsers); err != nil {
		return err
	}
	if err := u.click("Create User"); err != nil {
		return err
	}
	if err := u.fillAll([][2]string{
		{"#username", user.Username},
		{"#email", user.Email},
		{"#firstName", user.FirstName},
		{"#lastName", user.LastName},
	}); err != nil {
		return err
	}
	return u.submitAndReturn()
}

type ProfilePage struct {
	basePage
}

func NewProfilePage(page playwright.Page, baseURL string, sa *softassert.SoftAssert) *ProfilePage {
	return &ProfilePage{basePage: newBasePage(page, baseURL, sa, "profile")}
}

func (p *ProfilePage) CreateProfile(profile models.Profile) error {
	if err := p.openEntity(ManageUserProfiles); err != nil {
		return err
	}
	if err := p.click("Create Profile"); err != nil {
		return err
	}
	radius := ""
	if profile.RadiusMiles > 0 {
		radius = fmt.Sprint(profile.RadiusMiles)
	}
	if err := p.fillAll([][2]string{
		{"#name", profile.Name},
		{"#preferences", profile.Preferences},
		{"#radiusMiles", radius},
	}); err != nil {
		return err
	}
	return p.submitAndReturn()
}

type AffinityPage struct {
	basePage
}

func NewAffinityPage(page playwright.Page, baseURL string, sa *softassert.SoftAssert) *AffinityPage {
	return &AffinityPage{basePage: newBasePage(page, baseURL, sa, "affinity")}
}

func (a *AffinityPage) CreateAffinity(t models.TagAffinity) error {
	if err := a.openEntity(ManageEventAffinity); err != nil {
		return err
	}
	if err := a.click("Create Affinity"); err != nil {
		return err
	}
	if err := a.fillAll([][2]string{
		{"#tag", t.Tag},
		{"#affinity", fmt.Sprint(t.Affinity)},
	}); err != nil {
		return err
	}
	return a.submitAndReturn()
}

type EventPage struct {
	basePage
}

func NewEventPage(page playwright.Page, baseURL string, sa *softassert.SoftAssert) *EventPage {
	return &EventPage{basePage: newBasePage(page, baseURL, sa, "event")}
}

func (e *EventPage) CreateEvent(ev models.Event) error {
	if err := e.openEntity(ManageEvents); err != nil {
		return err
	}
	if err := e.click("Create Event"); err != nil {
		return err
	}
	if err := e.fillAll([][2]string{
		{"#url", ev.URL},
		{"#title", ev.Title},
		{"#dateTime", ev.DateTime},
		{"#location", ev.Location},
	}); err != nil {
		return err
	}
	return e.submitAndReturn()
}

type UserEventPage struct {
	basePage
}

func NewUserEventPage(page playwright.Page, baseURL string, sa *softassert.SoftAssert) *UserEventPage {
	return &UserEventPage{basePage: newBasePage(page, baseURL, sa, "user_event")}
}

func (u *UserEventPage) CreateUserEvent(ue models.UserEvent) error {
	if err := u.openEntity(ManageEventAttendance); err != nil {
		return err
	}
	if err := u.click("Create User Event"); err != nil {
		return err
	}
	rating := ""
	if ue.Rating > 0 {
		rating = fmt.Sprint(ue.Rating)
	}
	if err := u.fillAll([][2]string{
		{"#rating", rating},
		{"#note", ue.Note},
	}); err != nil {
		return err
	}
	return u.submitAndReturn()
}
