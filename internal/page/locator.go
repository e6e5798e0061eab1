// File: internal/page/locator.go
package page

import (
	"fmt"

	"github.com/tebeka/selenium"
)

// Locator is an immutable (strategy, value) pair identifying zero or more
// elements in the current document. Concrete pages define their locators
// statically and pass them into every interaction; element references are
// never cached across calls, the locator is re-resolved each time.
type Locator struct {
	Strategy string
	Value    string
}

func (l Locator) String() string {
	return fmt.Sprintf("%s=%q", l.Strategy, l.Value)
}

// Constructors mirroring the WebDriver locator strategies.

func ByID(value string) Locator        { return Locator{Strategy: selenium.ByID, Value: value} }
func ByName(value string) Locator      { return Locator{Strategy: selenium.ByName, Value: value} }
func ByCSS(value string) Locator       { return Locator{Strategy: selenium.ByCSSSelector, Value: value} }
func ByXPath(value string) Locator     { return Locator{Strategy: selenium.ByXPATH, Value: value} }
func ByLinkText(value string) Locator  { return Locator{Strategy: selenium.ByLinkText, Value: value} }
func ByClassName(value string) Locator { return Locator{Strategy: selenium.ByClassName, Value: value} }
func ByTagName(value string) Locator   { return Locator{Strategy: selenium.ByTagName, Value: value} }

func ByPartialLinkText(value string) Locator {
	return Locator{Strategy: selenium.ByPartialLinkText, Value: value}
}
