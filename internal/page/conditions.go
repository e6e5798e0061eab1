// File: internal/page/conditions.go
// Wait conditions for the interaction contract. The distinguished states are
// "present" (exists in the DOM), "visible" (present and rendered), and
// "clickable" (visible and not disabled). Every DOM operation resolves one of
// these before acting, re-locating through the Locator on each poll so a
// mutated document never leaves us holding a stale element reference.
package page

import (
	"strings"

	"github.com/tebeka/selenium"
)

const (
	condPresent   = "present"
	condVisible   = "visible"
	condClickable = "clickable"
	condGone      = "gone"
)

// waitFor polls cond at the handle's wait interval until it holds or the
// wait bound expires, in which case the failure surfaces as a TimeoutError
// carrying the locator and the bound.
func (p *Page) waitFor(locator Locator, condition string, cond selenium.Condition) error {
	err := p.wd.WaitWithTimeoutAndInterval(cond, p.wait.Timeout, p.wait.Interval)
	if err != nil {
		return &TimeoutError{
			Locator:   locator.String(),
			Condition: condition,
			Timeout:   p.wait.Timeout,
			Cause:     err,
		}
	}
	return nil
}

// WaitPresent blocks until the locator resolves to an element in the DOM and
// returns a fresh reference to it.
func (p *Page) WaitPresent(locator Locator) (selenium.WebElement, error) {
	err := p.waitFor(locator, condPresent, func(wd selenium.WebDriver) (bool, error) {
		_, findErr := wd.FindElement(locator.Strategy, locator.Value)
		return findErr == nil, nil
	})
	if err != nil {
		return nil, err
	}
	return p.wd.FindElement(locator.Strategy, locator.Value)
}

// WaitVisible blocks until the element is present and rendered.
func (p *Page) WaitVisible(locator Locator) (selenium.WebElement, error) {
	err := p.waitFor(locator, condVisible, func(wd selenium.WebDriver) (bool, error) {
		el, findErr := wd.FindElement(locator.Strategy, locator.Value)
		if findErr != nil {
			return false, nil
		}
		displayed, dispErr := el.IsDisplayed()
		return dispErr == nil && displayed, nil
	})
	if err != nil {
		return nil, err
	}
	return p.wd.FindElement(locator.Strategy, locator.Value)
}

// WaitClickable blocks until the element is visible and enabled.
func (p *Page) WaitClickable(locator Locator) (selenium.WebElement, error) {
	err := p.waitFor(locator, condClickable, func(wd selenium.WebDriver) (bool, error) {
		el, findErr := wd.FindElement(locator.Strategy, locator.Value)
		if findErr != nil {
			return false, nil
		}
		displayed, dispErr := el.IsDisplayed()
		if dispErr != nil || !displayed {
			return false, nil
		}
		enabled, enErr := el.IsEnabled()
		return enErr == nil && enabled, nil
	})
	if err != nil {
		return nil, err
	}
	return p.wd.FindElement(locator.Strategy, locator.Value)
}

// WaitGone blocks until the locator no longer resolves to a visible element.
func (p *Page) WaitGone(locator Locator) error {
	return p.waitFor(locator, condGone, func(wd selenium.WebDriver) (bool, error) {
		el, findErr := wd.FindElement(locator.Strategy, locator.Value)
		if findErr != nil {
			return true, nil
		}
		displayed, dispErr := el.IsDisplayed()
		if dispErr != nil {
			return true, nil
		}
		return !displayed, nil
	})
}

// WaitTextPresent blocks until the element's text contains the given string.
func (p *Page) WaitTextPresent(locator Locator, text string) error {
	return p.waitFor(locator, "containing text "+text, func(wd selenium.WebDriver) (bool, error) {
		el, findErr := wd.FindElement(locator.Strategy, locator.Value)
		if findErr != nil {
			return false, nil
		}
		actual, textErr := el.Text()
		return textErr == nil && strings.Contains(actual, text), nil
	})
}

// WaitURLContains blocks until the current URL contains the given fragment.
func (p *Page) WaitURLContains(fragment string) error {
	err := p.wd.WaitWithTimeoutAndInterval(func(wd selenium.WebDriver) (bool, error) {
		url, urlErr := wd.CurrentURL()
		return urlErr == nil && strings.Contains(url, fragment), nil
	}, p.wait.Timeout, p.wait.Interval)
	if err != nil {
		return &TimeoutError{
			Locator:   "url",
			Condition: "containing " + fragment,
			Timeout:   p.wait.Timeout,
			Cause:     err,
		}
	}
	return nil
}

// WaitTitleContains blocks until the page title contains the given fragment.
func (p *Page) WaitTitleContains(fragment string) error {
	err := p.wd.WaitWithTimeoutAndInterval(func(wd selenium.WebDriver) (bool, error) {
		title, titleErr := wd.Title()
		return titleErr == nil && strings.Contains(title, fragment), nil
	}, p.wait.Timeout, p.wait.Interval)
	if err != nil {
		return &TimeoutError{
			Locator:   "title",
			Condition: "containing " + fragment,
			Timeout:   p.wait.Timeout,
			Cause:     err,
		}
	}
	return nil
}

// WaitPageLoad blocks until document.readyState reports "complete".
func (p *Page) WaitPageLoad() error {
	p.logger.Debug("Waiting for page to load.")
	err := p.wd.WaitWithTimeoutAndInterval(func(wd selenium.WebDriver) (bool, error) {
		state, scriptErr := wd.ExecuteScript("return document.readyState", nil)
		if scriptErr != nil {
			return false, nil
		}
		s, ok := state.(string)
		return ok && s == "complete", nil
	}, p.wait.Timeout, p.wait.Interval)
	if err != nil {
		return &TimeoutError{
			Locator:   "document",
			Condition: "ready",
			Timeout:   p.wait.Timeout,
			Cause:     err,
		}
	}
	return nil
}

// WaitAlert blocks until an alert is present.
func (p *Page) waitAlert() error {
	err := p.wd.WaitWithTimeoutAndInterval(func(wd selenium.WebDriver) (bool, error) {
		_, alertErr := wd.AlertText()
		return alertErr == nil, nil
	}, p.wait.Timeout, p.wait.Interval)
	if err != nil {
		return &TimeoutError{
			Locator:   "alert",
			Condition: condPresent,
			Timeout:   p.wait.Timeout,
			Cause:     err,
		}
	}
	return nil
}
