// File: internal/pages/login.go
// Package pages holds the concrete page objects. Each page is a plain
// record of locators plus methods written purely in terms of the
// interaction contract; pages compose the contract, they do not extend
// anything.
package pages

import (
	"strings"

	"go.uber.org/zap"

	"github.com/xkilldash9x/stagehand/internal/config"
	"github.com/xkilldash9x/stagehand/internal/driver"
	"github.com/xkilldash9x/stagehand/internal/page"
)

// Login page locators. Immutable; shared by every instance.
var (
	loginEmailField       = page.ByID("email")
	loginPasswordField    = page.ByID("password")
	loginButton           = page.ByID("login-button")
	loginRememberMe       = page.ByID("remember-me")
	loginForgotPassword   = page.ByLinkText("Forgot Password")
	loginErrorMessage     = page.ByClassName("error-message")
	loginValidationError  = page.ByClassName("validation-error")
	loginEmailFormatError = page.ByClassName("email-format-error")
	loginWelcomeMessage   = page.ByClassName("welcome-message")
	loginForm             = page.ByID("login-form")
	loginPageTitle        = page.ByTagName("h1")
)

// LoginPage drives the login screen through the interaction contract.
type LoginPage struct {
	page    *page.Page
	handle  *driver.Handle
	baseURL string
	logger  *zap.Logger
}

// NewLoginPage binds a login page object to the given session handle.
func NewLoginPage(h *driver.Handle, cfg *config.Config, logger *zap.Logger) *LoginPage {
	return &LoginPage{
		page:    page.New(h, logger),
		handle:  h,
		baseURL: cfg.BaseURL(),
		logger:  logger.Named("login_page"),
	}
}

// Open navigates to the login page and waits for it to finish loading.
func (p *LoginPage) Open() error {
	url := strings.TrimRight(p.baseURL, "/") + "/login"
	p.logger.Info("Opening login page.", zap.String("url", url))
	if err := p.handle.NavigateTo(url); err != nil {
		return err
	}
	return p.page.WaitPageLoad()
}

func (p *LoginPage) EnterEmail(email string) error {
	return p.page.Type(loginEmailField, email)
}

func (p *LoginPage) EnterPassword(password string) error {
	return p.page.Type(loginPasswordField, password)
}

func (p *LoginPage) ClickLogin() error {
	return p.page.Click(loginButton)
}

func (p *LoginPage) CheckRememberMe() error {
	return p.page.Check(loginRememberMe)
}

func (p *LoginPage) UncheckRememberMe() error {
	return p.page.Uncheck(loginRememberMe)
}

func (p *LoginPage) ClickForgotPassword() error {
	return p.page.Click(loginForgotPassword)
}

// EmailFieldValue returns the current content of the email field.
func (p *LoginPage) EmailFieldValue() (string, error) {
	return p.page.Attribute(loginEmailField, "value")
}

// PasswordFieldValue returns the current content of the password field.
func (p *LoginPage) PasswordFieldValue() (string, error) {
	return p.page.Attribute(loginPasswordField, "value")
}

// IsRememberMeChecked reports the checkbox state. An absent or unreadable
// checked attribute reads as false.
func (p *LoginPage) IsRememberMeChecked() bool {
	checked, err := p.page.Attribute(loginRememberMe, "checked")
	if err != nil {
		return false
	}
	return checked == "true" || checked == "checked"
}

func (p *LoginPage) IsErrorMessageDisplayed() bool {
	return p.page.IsDisplayed(loginErrorMessage)
}

func (p *LoginPage) ErrorMessage() (string, error) {
	return p.page.Text(loginErrorMessage)
}

func (p *LoginPage) IsValidationErrorDisplayed() bool {
	return p.page.IsDisplayed(loginValidationError)
}

func (p *LoginPage) ValidationError() (string, error) {
	return p.page.Text(loginValidationError)
}

func (p *LoginPage) IsEmailFormatErrorDisplayed() bool {
	return p.page.IsDisplayed(loginEmailFormatError)
}

func (p *LoginPage) EmailFormatError() (string, error) {
	return p.page.Text(loginEmailFormatError)
}

func (p *LoginPage) IsWelcomeMessageDisplayed() bool {
	return p.page.IsDisplayed(loginWelcomeMessage)
}

func (p *LoginPage) WelcomeMessage() (string, error) {
	return p.page.Text(loginWelcomeMessage)
}

func (p *LoginPage) IsLoginFormDisplayed() bool {
	return p.page.IsDisplayed(loginForm)
}

// Title returns the login page's h1 heading text.
func (p *LoginPage) Title() (string, error) {
	return p.page.Text(loginPageTitle)
}

func (p *LoginPage) IsEmailFieldEnabled() bool {
	return p.page.IsEnabled(loginEmailField)
}

func (p *LoginPage) IsPasswordFieldEnabled() bool {
	return p.page.IsEnabled(loginPasswordField)
}

func (p *LoginPage) IsLoginButtonEnabled() bool {
	return p.page.IsEnabled(loginButton)
}

// ClearAll empties both credential fields and unchecks remember-me, leaving
// the form in its initial state.
func (p *LoginPage) ClearAll() error {
	if err := p.page.Clear(loginEmailField); err != nil {
		return err
	}
	if err := p.page.Clear(loginPasswordField); err != nil {
		return err
	}
	return p.page.Uncheck(loginRememberMe)
}

// WaitForForm blocks until the login form is visible.
func (p *LoginPage) WaitForForm() error {
	_, err := p.page.WaitVisible(loginForm)
	return err
}

// WaitForErrorMessage blocks until the error banner is visible.
func (p *LoginPage) WaitForErrorMessage() error {
	_, err := p.page.WaitVisible(loginErrorMessage)
	return err
}

// WaitForWelcomeMessage blocks until the welcome banner is visible.
func (p *LoginPage) WaitForWelcomeMessage() error {
	_, err := p.page.WaitVisible(loginWelcomeMessage)
	return err
}

// IsLoginPage reports whether the current URL looks like the login page.
func (p *LoginPage) IsLoginPage() bool {
	url, err := p.handle.CurrentURL()
	if err != nil {
		return false
	}
	return strings.Contains(url, "/login") || strings.Contains(url, "login")
}
