// File: internal/steps/login.go
package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"
)

func (s *Suite) registerLoginSteps(sc *godog.ScenarioContext) {
	sc.Step(`^I am on the login page$`, s.iAmOnTheLoginPage)
	sc.Step(`^I enter "([^"]*)" in the email field$`, s.iEnterInTheEmailField)
	sc.Step(`^I enter "([^"]*)" in the password field$`, s.iEnterInThePasswordField)
	sc.Step(`^I click the login button$`, s.iClickTheLoginButton)
	sc.Step(`^I click the login button without entering credentials$`, s.iClickTheLoginButton)
	sc.Step(`^I check the "([^"]*)" checkbox$`, s.iCheckTheCheckbox)
	sc.Step(`^I click the "([^"]*)" link$`, s.iClickTheLink)
	sc.Step(`^I logout and return to the login page$`, s.iLogoutAndReturnToTheLoginPage)
	sc.Step(`^I should be redirected to the dashboard$`, s.iShouldBeRedirectedToTheDashboard)
	sc.Step(`^I should see the welcome message$`, s.iShouldSeeTheWelcomeMessage)
	sc.Step(`^I should see an error message$`, s.iShouldSeeAnErrorMessage)
	sc.Step(`^I should remain on the login page$`, s.iShouldRemainOnTheLoginPage)
	sc.Step(`^I should see validation error messages$`, s.iShouldSeeValidationErrors)
	sc.Step(`^I should see an email format error message$`, s.iShouldSeeAnEmailFormatError)
	sc.Step(`^the email field should be pre-filled with "([^"]*)"$`, s.theEmailFieldShouldBePreFilledWith)
	sc.Step(`^I should be redirected to the forgot password page$`, s.iShouldBeOnTheForgotPasswordPage)
}

func (s *Suite) iAmOnTheLoginPage(ctx context.Context) error {
	p, err := s.loginPage(ctx)
	if err != nil {
		return err
	}
	return p.Open()
}

func (s *Suite) iEnterInTheEmailField(ctx context.Context, email string) error {
	p, err := s.loginPage(ctx)
	if err != nil {
		return err
	}
	return p.EnterEmail(email)
}

func (s *Suite) iEnterInThePasswordField(ctx context.Context, password string) error {
	p, err := s.loginPage(ctx)
	if err != nil {
		return err
	}
	return p.EnterPassword(password)
}

func (s *Suite) iClickTheLoginButton(ctx context.Context) error {
	p, err := s.loginPage(ctx)
	if err != nil {
		return err
	}
	return p.ClickLogin()
}

func (s *Suite) iCheckTheCheckbox(ctx context.Context, name string) error {
	p, err := s.loginPage(ctx)
	if err != nil {
		return err
	}
	switch name {
	case "Remember me":
		return p.CheckRememberMe()
	default:
		return fmt.Errorf("unknown checkbox %q", name)
	}
}

func (s *Suite) iClickTheLink(ctx context.Context, text string) error {
	p, err := s.loginPage(ctx)
	if err != nil {
		return err
	}
	switch text {
	case "Forgot Password":
		return p.ClickForgotPassword()
	default:
		return fmt.Errorf("unknown link %q", text)
	}
}

func (s *Suite) iLogoutAndReturnToTheLoginPage(ctx context.Context) error {
	h, err := s.session(ctx)
	if err != nil {
		return err
	}
	if err := h.NavigateTo(strings.TrimRight(s.cfg.BaseURL(), "/") + "/logout"); err != nil {
		return err
	}
	p, err := s.loginPage(ctx)
	if err != nil {
		return err
	}
	return p.Open()
}

func (s *Suite) iShouldBeRedirectedToTheDashboard(ctx context.Context) error {
	h, err := s.session(ctx)
	if err != nil {
		return err
	}
	return s.contract(h).WaitURLContains("dashboard")
}

func (s *Suite) iShouldSeeTheWelcomeMessage(ctx context.Context) error {
	p, err := s.loginPage(ctx)
	if err != nil {
		return err
	}
	return p.WaitForWelcomeMessage()
}

func (s *Suite) iShouldSeeAnErrorMessage(ctx context.Context) error {
	p, err := s.loginPage(ctx)
	if err != nil {
		return err
	}
	return p.WaitForErrorMessage()
}

func (s *Suite) iShouldRemainOnTheLoginPage(ctx context.Context) error {
	p, err := s.loginPage(ctx)
	if err != nil {
		return err
	}
	if !p.IsLoginPage() {
		url, urlErr := s.currentURL(ctx)
		if urlErr != nil {
			return urlErr
		}
		return fmt.Errorf("expected to remain on the login page, but current URL is %q", url)
	}
	return nil
}

func (s *Suite) iShouldSeeValidationErrors(ctx context.Context) error {
	p, err := s.loginPage(ctx)
	if err != nil {
		return err
	}
	if !p.IsValidationErrorDisplayed() {
		return fmt.Errorf("expected a validation error message, none is displayed")
	}
	return nil
}

func (s *Suite) iShouldSeeAnEmailFormatError(ctx context.Context) error {
	p, err := s.loginPage(ctx)
	if err != nil {
		return err
	}
	if !p.IsEmailFormatErrorDisplayed() {
		return fmt.Errorf("expected an email format error message, none is displayed")
	}
	return nil
}

func (s *Suite) theEmailFieldShouldBePreFilledWith(ctx context.Context, expected string) error {
	p, err := s.loginPage(ctx)
	if err != nil {
		return err
	}
	actual, err := p.EmailFieldValue()
	if err != nil {
		return err
	}
	if actual != expected {
		return fmt.Errorf("email field contains %q, expected %q", actual, expected)
	}
	return nil
}

func (s *Suite) iShouldBeOnTheForgotPasswordPage(ctx context.Context) error {
	h, err := s.session(ctx)
	if err != nil {
		return err
	}
	return s.contract(h).WaitURLContains("forgot-password")
}

func (s *Suite) currentURL(ctx context.Context) (string, error) {
	h, err := s.session(ctx)
	if err != nil {
		return "", err
	}
	return h.CurrentURL()
}
