// File: internal/steps/common.go
package steps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/xkilldash9x/stagehand/internal/driver"
	"github.com/xkilldash9x/stagehand/internal/page"
)

func (s *Suite) registerCommonSteps(sc *godog.ScenarioContext) {
	sc.Step(`^I am on the "([^"]*)" page$`, s.iAmOnThePage)
	sc.Step(`^I navigate to "([^"]*)"$`, s.iNavigateTo)
	sc.Step(`^I wait for (\d+) seconds?$`, s.iWaitForSeconds)
	sc.Step(`^I refresh the page$`, s.iRefreshThePage)
	sc.Step(`^I navigate back$`, s.iNavigateBack)
	sc.Step(`^I navigate forward$`, s.iNavigateForward)
	sc.Step(`^the page title should contain "([^"]*)"$`, s.thePageTitleShouldContain)
	sc.Step(`^the URL should contain "([^"]*)"$`, s.theURLShouldContain)
	sc.Step(`^I should see the page loaded successfully$`, s.thePageShouldBeLoaded)
}

func (s *Suite) iAmOnThePage(ctx context.Context, pageName string) error {
	h, err := s.session(ctx)
	if err != nil {
		return err
	}
	url := strings.TrimRight(s.cfg.BaseURL(), "/")
	if pageName != "" && !strings.EqualFold(pageName, "home") {
		url += "/" + strings.ToLower(pageName)
	}
	return h.NavigateTo(url)
}

func (s *Suite) iNavigateTo(ctx context.Context, url string) error {
	h, err := s.session(ctx)
	if err != nil {
		return err
	}
	return h.NavigateTo(url)
}

func (s *Suite) iWaitForSeconds(ctx context.Context, seconds int) error {
	select {
	case <-time.After(time.Duration(seconds) * time.Second):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Suite) iRefreshThePage(ctx context.Context) error {
	h, err := s.session(ctx)
	if err != nil {
		return err
	}
	return h.Refresh()
}

func (s *Suite) iNavigateBack(ctx context.Context) error {
	h, err := s.session(ctx)
	if err != nil {
		return err
	}
	return h.Back()
}

func (s *Suite) iNavigateForward(ctx context.Context) error {
	h, err := s.session(ctx)
	if err != nil {
		return err
	}
	return h.Forward()
}

func (s *Suite) thePageTitleShouldContain(ctx context.Context, expected string) error {
	h, err := s.session(ctx)
	if err != nil {
		return err
	}
	title, err := h.Title()
	if err != nil {
		return err
	}
	if !strings.Contains(title, expected) {
		return fmt.Errorf("page title %q does not contain %q", title, expected)
	}
	return nil
}

func (s *Suite) theURLShouldContain(ctx context.Context, expected string) error {
	h, err := s.session(ctx)
	if err != nil {
		return err
	}
	url, err := h.CurrentURL()
	if err != nil {
		return err
	}
	if !strings.Contains(url, expected) {
		return fmt.Errorf("current URL %q does not contain %q", url, expected)
	}
	return nil
}

func (s *Suite) thePageShouldBeLoaded(ctx context.Context) error {
	h, err := s.session(ctx)
	if err != nil {
		return err
	}
	return s.contract(h).WaitPageLoad()
}

func (s *Suite) contract(h *driver.Handle) *page.Page {
	return page.New(h, s.logger)
}
