// File: internal/page/page.go
// Package page implements the interaction contract every concrete page
// object is built on: locate, wait-for-state, click, type, read, select,
// drag. Operations take a Locator and act against the calling context's
// current session handle. Each DOM-touching operation resolves a wait
// condition first and re-locates the element through its Locator; element
// references are never reused across operations.
package page

import (
	"fmt"
	"strings"

	"github.com/tebeka/selenium"
	"go.uber.org/zap"

	"github.com/xkilldash9x/stagehand/internal/driver"
)

// Page is the shared vocabulary of element-level operations, bound to one
// session handle. Concrete pages embed or wrap it and speak only in terms of
// its methods plus their own locators.
type Page struct {
	wd     selenium.WebDriver
	wait   driver.WaitPolicy
	logger *zap.Logger
}

// New binds the interaction contract to a session handle.
func New(h *driver.Handle, logger *zap.Logger) *Page {
	return &Page{
		wd:     h.WebDriver,
		wait:   h.Wait,
		logger: logger.Named("page"),
	}
}

// -- Actions --

// Click waits for the element to be clickable and clicks it.
func (p *Page) Click(locator Locator) error {
	p.logger.Info("Clicking element.", zap.Stringer("locator", locator))
	el, err := p.WaitClickable(locator)
	if err != nil {
		return err
	}
	return el.Click()
}

// ClickJS clicks the element through script execution. Useful for elements
// the driver refuses to click because something overlaps them.
func (p *Page) ClickJS(locator Locator) error {
	p.logger.Info("Clicking element with JavaScript.", zap.Stringer("locator", locator))
	el, err := p.WaitPresent(locator)
	if err != nil {
		return err
	}
	_, err = p.wd.ExecuteScript("arguments[0].click();", []interface{}{el})
	return err
}

// Type clears the element's existing content and sends the text.
func (p *Page) Type(locator Locator, text string) error {
	p.logger.Info("Typing into element.", zap.Stringer("locator", locator), zap.String("text", text))
	el, err := p.WaitVisible(locator)
	if err != nil {
		return err
	}
	if err := el.Clear(); err != nil {
		return fmt.Errorf("failed to clear element %s: %w", locator, err)
	}
	return el.SendKeys(text)
}

// TypeWithoutClear appends the text to the element's existing content.
func (p *Page) TypeWithoutClear(locator Locator, text string) error {
	p.logger.Info("Typing into element without clearing.", zap.Stringer("locator", locator), zap.String("text", text))
	el, err := p.WaitVisible(locator)
	if err != nil {
		return err
	}
	return el.SendKeys(text)
}

// Clear empties the element's content.
func (p *Page) Clear(locator Locator) error {
	p.logger.Info("Clearing element.", zap.Stringer("locator", locator))
	el, err := p.WaitVisible(locator)
	if err != nil {
		return err
	}
	return el.Clear()
}

// -- Reads --

// Text waits for visibility and returns the element's rendered text.
func (p *Page) Text(locator Locator) (string, error) {
	p.logger.Debug("Reading text from element.", zap.Stringer("locator", locator))
	el, err := p.WaitVisible(locator)
	if err != nil {
		return "", err
	}
	return el.Text()
}

// Attribute waits for presence and returns the named attribute's value.
func (p *Page) Attribute(locator Locator, name string) (string, error) {
	p.logger.Debug("Reading attribute from element.", zap.Stringer("locator", locator), zap.String("attribute", name))
	el, err := p.WaitPresent(locator)
	if err != nil {
		return "", err
	}
	return el.GetAttribute(name)
}

// FindAll returns every element currently matching the locator, without
// waiting. An empty result is valid.
func (p *Page) FindAll(locator Locator) ([]selenium.WebElement, error) {
	p.logger.Debug("Finding elements.", zap.Stringer("locator", locator))
	return p.wd.FindElements(locator.Strategy, locator.Value)
}

// -- Predicates --
// These are queries, not assertions: a wait timeout converts to false rather
// than propagating, so callers can probe for optional elements.

// IsDisplayed reports whether the element becomes visible within the wait
// bound.
func (p *Page) IsDisplayed(locator Locator) bool {
	el, err := p.WaitVisible(locator)
	if err != nil {
		p.logger.Warn("Element not displayed.", zap.Stringer("locator", locator))
		return false
	}
	displayed, err := el.IsDisplayed()
	return err == nil && displayed
}

// IsEnabled reports whether the element becomes visible and enabled within
// the wait bound.
func (p *Page) IsEnabled(locator Locator) bool {
	el, err := p.WaitVisible(locator)
	if err != nil {
		p.logger.Warn("Element not enabled.", zap.Stringer("locator", locator))
		return false
	}
	enabled, err := el.IsEnabled()
	return err == nil && enabled
}

// -- Dropdowns --
// The three addressing modes are equivalent at the contract level; they
// differ only in how the option element is resolved under the select.

// SelectByText selects the dropdown option with the given visible text.
func (p *Page) SelectByText(locator Locator, text string) error {
	p.logger.Info("Selecting option by visible text.", zap.Stringer("locator", locator), zap.String("text", text))
	sel, err := p.WaitVisible(locator)
	if err != nil {
		return err
	}
	option, err := sel.FindElement(selenium.ByXPATH,
		fmt.Sprintf(".//option[normalize-space(.)=%s]", xpathLiteral(text)))
	if err != nil {
		return fmt.Errorf("option with text %q not found in %s: %w", text, locator, err)
	}
	return option.Click()
}

// SelectByValue selects the dropdown option with the given value attribute.
func (p *Page) SelectByValue(locator Locator, value string) error {
	p.logger.Info("Selecting option by value.", zap.Stringer("locator", locator), zap.String("value", value))
	sel, err := p.WaitVisible(locator)
	if err != nil {
		return err
	}
	option, err := sel.FindElement(selenium.ByXPATH,
		fmt.Sprintf(".//option[@value=%s]", xpathLiteral(value)))
	if err != nil {
		return fmt.Errorf("option with value %q not found in %s: %w", value, locator, err)
	}
	return option.Click()
}

// SelectByIndex selects the dropdown option at the given zero-based index.
func (p *Page) SelectByIndex(locator Locator, index int) error {
	p.logger.Info("Selecting option by index.", zap.Stringer("locator", locator), zap.Int("index", index))
	sel, err := p.WaitVisible(locator)
	if err != nil {
		return err
	}
	options, err := sel.FindElements(selenium.ByTagName, "option")
	if err != nil {
		return fmt.Errorf("failed to list options in %s: %w", locator, err)
	}
	if index < 0 || index >= len(options) {
		return fmt.Errorf("option index %d out of range for %s (%d options)", index, locator, len(options))
	}
	return options[index].Click()
}

// -- Checkboxes --
// Click only when the current state differs from the requested one.

// Check ensures the checkbox is selected.
func (p *Page) Check(locator Locator) error {
	p.logger.Info("Checking checkbox.", zap.Stringer("locator", locator))
	el, err := p.WaitClickable(locator)
	if err != nil {
		return err
	}
	selected, err := el.IsSelected()
	if err != nil {
		return err
	}
	if !selected {
		return el.Click()
	}
	return nil
}

// Uncheck ensures the checkbox is not selected.
func (p *Page) Uncheck(locator Locator) error {
	p.logger.Info("Unchecking checkbox.", zap.Stringer("locator", locator))
	el, err := p.WaitClickable(locator)
	if err != nil {
		return err
	}
	selected, err := el.IsSelected()
	if err != nil {
		return err
	}
	if selected {
		return el.Click()
	}
	return nil
}

// -- Pointer gestures --

// Hover moves the pointer over the element.
func (p *Page) Hover(locator Locator) error {
	p.logger.Info("Hovering over element.", zap.Stringer("locator", locator))
	el, err := p.WaitVisible(locator)
	if err != nil {
		return err
	}
	return el.MoveTo(0, 0)
}

// RightClick context-clicks the element.
func (p *Page) RightClick(locator Locator) error {
	p.logger.Info("Right clicking element.", zap.Stringer("locator", locator))
	el, err := p.WaitVisible(locator)
	if err != nil {
		return err
	}
	if err := el.MoveTo(0, 0); err != nil {
		return err
	}
	return p.wd.Click(selenium.RightButton)
}

// DoubleClick double-clicks the element.
func (p *Page) DoubleClick(locator Locator) error {
	p.logger.Info("Double clicking element.", zap.Stringer("locator", locator))
	el, err := p.WaitVisible(locator)
	if err != nil {
		return err
	}
	if err := el.MoveTo(0, 0); err != nil {
		return err
	}
	return p.wd.DoubleClick()
}

// DragAndDrop drags the source element onto the target element.
func (p *Page) DragAndDrop(source, target Locator) error {
	p.logger.Info("Dragging element.", zap.Stringer("source", source), zap.Stringer("target", target))
	src, err := p.WaitVisible(source)
	if err != nil {
		return err
	}
	tgt, err := p.WaitVisible(target)
	if err != nil {
		return err
	}
	if err := src.MoveTo(0, 0); err != nil {
		return err
	}
	if err := p.wd.ButtonDown(); err != nil {
		return err
	}
	if err := tgt.MoveTo(0, 0); err != nil {
		// Never leave the button held down.
		_ = p.wd.ButtonUp()
		return err
	}
	return p.wd.ButtonUp()
}

// -- Scrolling --

// ScrollTo scrolls the element into view.
func (p *Page) ScrollTo(locator Locator) error {
	p.logger.Info("Scrolling to element.", zap.Stringer("locator", locator))
	el, err := p.WaitPresent(locator)
	if err != nil {
		return err
	}
	_, err = p.wd.ExecuteScript("arguments[0].scrollIntoView(true);", []interface{}{el})
	return err
}

// ScrollToBottom scrolls to the bottom of the page.
func (p *Page) ScrollToBottom() error {
	p.logger.Info("Scrolling to bottom of page.")
	_, err := p.wd.ExecuteScript("window.scrollTo(0, document.body.scrollHeight);", nil)
	return err
}

// ScrollToTop scrolls to the top of the page.
func (p *Page) ScrollToTop() error {
	p.logger.Info("Scrolling to top of page.")
	_, err := p.wd.ExecuteScript("window.scrollTo(0, 0);", nil)
	return err
}

// -- Alerts --

// AcceptAlert waits for an alert and accepts it.
func (p *Page) AcceptAlert() error {
	p.logger.Info("Accepting alert.")
	if err := p.waitAlert(); err != nil {
		return err
	}
	return p.wd.AcceptAlert()
}

// DismissAlert waits for an alert and dismisses it.
func (p *Page) DismissAlert() error {
	p.logger.Info("Dismissing alert.")
	if err := p.waitAlert(); err != nil {
		return err
	}
	return p.wd.DismissAlert()
}

// AlertText waits for an alert and returns its text.
func (p *Page) AlertText() (string, error) {
	p.logger.Info("Reading alert text.")
	if err := p.waitAlert(); err != nil {
		return "", err
	}
	return p.wd.AlertText()
}

// -- Frames and windows --
// These mutate which document subsequent locator resolutions target.

// SwitchFrame switches to the frame at the given index.
func (p *Page) SwitchFrame(index int) error {
	p.logger.Info("Switching to frame by index.", zap.Int("index", index))
	return p.wd.SwitchFrame(index)
}

// SwitchFrameName switches to the frame with the given name or id.
func (p *Page) SwitchFrameName(nameOrID string) error {
	p.logger.Info("Switching to frame.", zap.String("frame", nameOrID))
	return p.wd.SwitchFrame(nameOrID)
}

// SwitchToDefaultContent switches back to the top-level document.
func (p *Page) SwitchToDefaultContent() error {
	p.logger.Info("Switching to default content.")
	return p.wd.SwitchFrame(nil)
}

// SwitchWindowByTitle scans all open windows in open order and switches to
// the first whose title contains the given string. When no window matches,
// the original window is restored; the context is never left on an undefined
// window.
func (p *Page) SwitchWindowByTitle(title string) error {
	p.logger.Info("Switching to window by title.", zap.String("title", title))
	original, err := p.wd.CurrentWindowHandle()
	if err != nil {
		return fmt.Errorf("failed to get current window handle: %w", err)
	}
	handles, err := p.wd.WindowHandles()
	if err != nil {
		return fmt.Errorf("failed to list window handles: %w", err)
	}

	for _, handle := range handles {
		if err := p.wd.SwitchWindow(handle); err != nil {
			continue
		}
		current, titleErr := p.wd.Title()
		if titleErr == nil && strings.Contains(current, title) {
			return nil
		}
	}

	if err := p.wd.SwitchWindow(original); err != nil {
		return fmt.Errorf("no window titled %q and failed to restore original window: %w", title, err)
	}
	return fmt.Errorf("no open window with title containing %q", title)
}

// xpathLiteral quotes s as an XPath string literal, falling back to concat()
// when s contains both quote characters.
func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	quoted := make([]string, 0, len(parts)*2)
	for i, part := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		quoted = append(quoted, "'"+part+"'")
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}
