// File: internal/page/helpers_test.go
package page

import (
	"fmt"
	"sync"
	"time"

	"github.com/tebeka/selenium"
	"go.uber.org/zap"

	"github.com/xkilldash9x/stagehand/internal/driver"
)

// fakeElement satisfies selenium.WebElement by embedding the interface and
// overriding only what the contract exercises.
type fakeElement struct {
	selenium.WebElement

	mu        sync.Mutex // guards displayed/enabled for tests that flip them mid-poll
	displayed bool
	enabled   bool
	selected  bool
	text      string
	attrs     map[string]string

	clicks     int
	clears     int
	sentKeys   []string
	children   map[string]*fakeElement // keyed by "strategy|value"
	childLists map[string][]selenium.WebElement
}

func newFakeElement() *fakeElement {
	return &fakeElement{
		displayed:  true,
		enabled:    true,
		attrs:      map[string]string{},
		children:   map[string]*fakeElement{},
		childLists: map[string][]selenium.WebElement{},
	}
}

func (e *fakeElement) Click() error { e.clicks++; return nil }
func (e *fakeElement) Clear() error { e.clears++; return nil }

func (e *fakeElement) SendKeys(keys string) error {
	e.sentKeys = append(e.sentKeys, keys)
	return nil
}

func (e *fakeElement) IsDisplayed() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.displayed, nil
}

func (e *fakeElement) IsEnabled() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enabled, nil
}

func (e *fakeElement) setDisplayed(v bool) {
	e.mu.Lock()
	e.displayed = v
	e.mu.Unlock()
}

func (e *fakeElement) setEnabled(v bool) {
	e.mu.Lock()
	e.enabled = v
	e.mu.Unlock()
}

func (e *fakeElement) IsSelected() (bool, error) { return e.selected, nil }
func (e *fakeElement) Text() (string, error)      { return e.text, nil }

func (e *fakeElement) GetAttribute(name string) (string, error) {
	v, ok := e.attrs[name]
	if !ok {
		return "", fmt.Errorf("no attribute %q", name)
	}
	return v, nil
}

func (e *fakeElement) MoveTo(x, y int) error { return nil }

func (e *fakeElement) FindElement(by, value string) (selenium.WebElement, error) {
	if child, ok := e.children[by+"|"+value]; ok {
		return child, nil
	}
	return nil, fmt.Errorf("no such element: %s=%s", by, value)
}

func (e *fakeElement) FindElements(by, value string) ([]selenium.WebElement, error) {
	return e.childLists[by+"|"+value], nil
}

// fakeDriver satisfies selenium.WebDriver the same way. Elements are keyed
// by "strategy|value"; lookups fail until an element is registered, which
// lets tests script an element appearing after a few polls.
type fakeDriver struct {
	selenium.WebDriver

	elements map[string]*fakeElement
	title    string
	url      string

	windows       []string
	currentWindow string
	windowTitles  map[string]string
	switchedTo    []string

	scripts    []string
	scriptRet  interface{}
	alertText  string
	hasAlert   bool
	buttonDown int
	buttonUp   int
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		elements:     map[string]*fakeElement{},
		windowTitles: map[string]string{},
	}
}

func (f *fakeDriver) register(l Locator, el *fakeElement) {
	f.elements[l.Strategy+"|"+l.Value] = el
}

func (f *fakeDriver) FindElement(by, value string) (selenium.WebElement, error) {
	if el, ok := f.elements[by+"|"+value]; ok {
		return el, nil
	}
	return nil, fmt.Errorf("no such element: %s=%s", by, value)
}

func (f *fakeDriver) FindElements(by, value string) ([]selenium.WebElement, error) {
	if el, ok := f.elements[by+"|"+value]; ok {
		return []selenium.WebElement{el}, nil
	}
	return nil, nil
}

func (f *fakeDriver) WaitWithTimeoutAndInterval(cond selenium.Condition, timeout, interval time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		done, err := cond(f)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("timeout after %v", timeout)
		}
		time.Sleep(interval)
	}
}

func (f *fakeDriver) ExecuteScript(script string, args []interface{}) (interface{}, error) {
	f.scripts = append(f.scripts, script)
	return f.scriptRet, nil
}

func (f *fakeDriver) Title() (string, error) {
	if title, ok := f.windowTitles[f.currentWindow]; ok {
		return title, nil
	}
	return f.title, nil
}

func (f *fakeDriver) CurrentURL() (string, error) { return f.url, nil }

func (f *fakeDriver) CurrentWindowHandle() (string, error) { return f.currentWindow, nil }
func (f *fakeDriver) WindowHandles() ([]string, error)     { return f.windows, nil }

func (f *fakeDriver) SwitchWindow(name string) error {
	f.currentWindow = name
	f.switchedTo = append(f.switchedTo, name)
	return nil
}

func (f *fakeDriver) SwitchFrame(frame interface{}) error { return nil }

func (f *fakeDriver) AlertText() (string, error) {
	if !f.hasAlert {
		return "", fmt.Errorf("no alert open")
	}
	return f.alertText, nil
}

func (f *fakeDriver) AcceptAlert() error  { return nil }
func (f *fakeDriver) DismissAlert() error { return nil }

func (f *fakeDriver) Click(button int) error { return nil }
func (f *fakeDriver) DoubleClick() error     { return nil }
func (f *fakeDriver) ButtonDown() error      { f.buttonDown++; return nil }
func (f *fakeDriver) ButtonUp() error        { f.buttonUp++; return nil }

// newTestPage builds a Page over the fake with a short wait bound so timeout
// paths run quickly.
func newTestPage(f *fakeDriver, timeout time.Duration) *Page {
	return &Page{
		wd:     f,
		wait:   driver.WaitPolicy{Timeout: timeout, Interval: 10 * time.Millisecond},
		logger: zap.NewNop(),
	}
}
