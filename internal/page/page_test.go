// File: internal/page/page_test.go
package page

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tebeka/selenium"
)

func TestClickWaitsForClickable(t *testing.T) {
	f := newFakeDriver()
	loc := ByID("login-button")
	el := newFakeElement()
	el.enabled = false
	f.register(loc, el)

	p := newTestPage(f, 500*time.Millisecond)

	// Enable the element after a couple of polls.
	go func() {
		time.Sleep(50 * time.Millisecond)
		el.setEnabled(true)
	}()

	require.NoError(t, p.Click(loc))
	assert.Equal(t, 1, el.clicks)
}

func TestClickTimesOutWithLocatorAndBound(t *testing.T) {
	f := newFakeDriver()
	p := newTestPage(f, 100*time.Millisecond)
	loc := ByCSS(".never-appears")

	err := p.Click(loc)
	require.Error(t, err)

	var te *TimeoutError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, loc.String(), te.Locator)
	assert.Equal(t, 100*time.Millisecond, te.Timeout)
	assert.Contains(t, err.Error(), loc.String())
	assert.Contains(t, err.Error(), "100ms")
	assert.True(t, IsTimeout(err))
}

func TestTypeClearsFirst(t *testing.T) {
	f := newFakeDriver()
	loc := ByID("email")
	el := newFakeElement()
	f.register(loc, el)

	p := newTestPage(f, time.Second)
	require.NoError(t, p.Type(loc, "user@example.test"))

	assert.Equal(t, 1, el.clears)
	assert.Equal(t, []string{"user@example.test"}, el.sentKeys)
}

func TestTypeWithoutClearAppends(t *testing.T) {
	f := newFakeDriver()
	loc := ByID("email")
	el := newFakeElement()
	f.register(loc, el)

	p := newTestPage(f, time.Second)
	require.NoError(t, p.TypeWithoutClear(loc, "more"))

	assert.Equal(t, 0, el.clears)
	assert.Equal(t, []string{"more"}, el.sentKeys)
}

func TestTextAndAttribute(t *testing.T) {
	f := newFakeDriver()
	loc := ByClassName("error-message")
	el := newFakeElement()
	el.text = "Invalid credentials"
	el.attrs["role"] = "alert"
	f.register(loc, el)

	p := newTestPage(f, time.Second)

	text, err := p.Text(loc)
	require.NoError(t, err)
	assert.Equal(t, "Invalid credentials", text)

	attr, err := p.Attribute(loc, "role")
	require.NoError(t, err)
	assert.Equal(t, "alert", attr)
}

func TestIsDisplayedConvertsTimeoutToFalse(t *testing.T) {
	f := newFakeDriver()
	p := newTestPage(f, 200*time.Millisecond)

	start := time.Now()
	displayed := p.IsDisplayed(ByID("ghost"))
	elapsed := time.Since(start)

	assert.False(t, displayed)
	// The predicate honors the wait bound: neither immediate nor unbounded.
	assert.GreaterOrEqual(t, elapsed, 200*time.Millisecond)
	assert.Less(t, elapsed, 2*time.Second)
}

func TestIsEnabledConvertsTimeoutToFalse(t *testing.T) {
	f := newFakeDriver()
	loc := ByID("disabled-button")
	el := newFakeElement()
	el.displayed = false
	f.register(loc, el)

	p := newTestPage(f, 100*time.Millisecond)
	assert.False(t, p.IsEnabled(loc))
}

func TestIsDisplayedTrue(t *testing.T) {
	f := newFakeDriver()
	loc := ByID("welcome")
	f.register(loc, newFakeElement())

	p := newTestPage(f, time.Second)
	assert.True(t, p.IsDisplayed(loc))
}

func TestSelectByTextClicksMatchingOption(t *testing.T) {
	f := newFakeDriver()
	loc := ByID("country")
	sel := newFakeElement()
	option := newFakeElement()
	sel.children[selenium.ByXPATH+"|"+".//option[normalize-space(.)='Sweden']"] = option
	f.register(loc, sel)

	p := newTestPage(f, time.Second)
	require.NoError(t, p.SelectByText(loc, "Sweden"))
	assert.Equal(t, 1, option.clicks)
}

func TestSelectByValueClicksMatchingOption(t *testing.T) {
	f := newFakeDriver()
	loc := ByID("country")
	sel := newFakeElement()
	option := newFakeElement()
	sel.children[selenium.ByXPATH+"|"+".//option[@value='se']"] = option
	f.register(loc, sel)

	p := newTestPage(f, time.Second)
	require.NoError(t, p.SelectByValue(loc, "se"))
	assert.Equal(t, 1, option.clicks)
}

func TestSelectByIndex(t *testing.T) {
	f := newFakeDriver()
	loc := ByID("country")
	sel := newFakeElement()
	first := newFakeElement()
	second := newFakeElement()
	sel.childLists[selenium.ByTagName+"|option"] = []selenium.WebElement{first, second}
	f.register(loc, sel)

	p := newTestPage(f, time.Second)
	require.NoError(t, p.SelectByIndex(loc, 1))
	assert.Equal(t, 0, first.clicks)
	assert.Equal(t, 1, second.clicks)

	err := p.SelectByIndex(loc, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestCheckOnlyClicksWhenUnselected(t *testing.T) {
	f := newFakeDriver()
	loc := ByID("remember-me")
	el := newFakeElement()
	f.register(loc, el)

	p := newTestPage(f, time.Second)

	require.NoError(t, p.Check(loc))
	assert.Equal(t, 1, el.clicks)

	el.selected = true
	require.NoError(t, p.Check(loc))
	assert.Equal(t, 1, el.clicks, "already-selected checkbox must not be clicked again")

	require.NoError(t, p.Uncheck(loc))
	assert.Equal(t, 2, el.clicks)

	el.selected = false
	require.NoError(t, p.Uncheck(loc))
	assert.Equal(t, 2, el.clicks)
}

func TestWaitGone(t *testing.T) {
	f := newFakeDriver()
	loc := ByID("spinner")
	el := newFakeElement()
	f.register(loc, el)

	p := newTestPage(f, 500*time.Millisecond)

	go func() {
		time.Sleep(50 * time.Millisecond)
		el.setDisplayed(false)
	}()

	require.NoError(t, p.WaitGone(loc))
}

func TestWaitURLAndTitleContains(t *testing.T) {
	f := newFakeDriver()
	f.url = "https://example.test/dashboard"
	f.title = "Dashboard - Example"

	p := newTestPage(f, 100*time.Millisecond)

	require.NoError(t, p.WaitURLContains("/dashboard"))
	require.NoError(t, p.WaitTitleContains("Dashboard"))

	err := p.WaitURLContains("/missing")
	require.Error(t, err)
	assert.True(t, IsTimeout(err))
}

func TestWaitPageLoad(t *testing.T) {
	f := newFakeDriver()
	f.scriptRet = "complete"

	p := newTestPage(f, time.Second)
	require.NoError(t, p.WaitPageLoad())
	assert.Contains(t, f.scripts, "return document.readyState")
}

func TestSwitchWindowByTitleFindsMatch(t *testing.T) {
	f := newFakeDriver()
	f.currentWindow = "w1"
	f.windows = []string{"w1", "w2", "w3"}
	f.windowTitles = map[string]string{
		"w1": "Login",
		"w2": "Dashboard - Example",
		"w3": "Help",
	}

	p := newTestPage(f, time.Second)
	require.NoError(t, p.SwitchWindowByTitle("Dashboard"))
	assert.Equal(t, "w2", f.currentWindow)
}

func TestSwitchWindowByTitleRestoresOriginalOnMiss(t *testing.T) {
	f := newFakeDriver()
	f.currentWindow = "w1"
	f.windows = []string{"w1", "w2"}
	f.windowTitles = map[string]string{"w1": "Login", "w2": "Help"}

	p := newTestPage(f, time.Second)
	err := p.SwitchWindowByTitle("Dashboard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Dashboard")
	// The context is never left on an undefined window.
	assert.Equal(t, "w1", f.currentWindow)
}

func TestAlertOperationsWaitForAlert(t *testing.T) {
	f := newFakeDriver()
	f.hasAlert = true
	f.alertText = "Are you sure?"

	p := newTestPage(f, time.Second)

	text, err := p.AlertText()
	require.NoError(t, err)
	assert.Equal(t, "Are you sure?", text)
	require.NoError(t, p.AcceptAlert())
	require.NoError(t, p.DismissAlert())
}

func TestAlertTimesOutWhenAbsent(t *testing.T) {
	f := newFakeDriver()
	p := newTestPage(f, 100*time.Millisecond)

	err := p.AcceptAlert()
	require.Error(t, err)

	var te *TimeoutError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "alert", te.Locator)
}

func TestDragAndDropNeverLeavesButtonDown(t *testing.T) {
	f := newFakeDriver()
	src := ByID("card")
	dst := ByID("column")
	f.register(src, newFakeElement())
	f.register(dst, newFakeElement())

	p := newTestPage(f, time.Second)
	require.NoError(t, p.DragAndDrop(src, dst))
	assert.Equal(t, 1, f.buttonDown)
	assert.Equal(t, 1, f.buttonUp)
}

func TestTimeoutErrorUnwraps(t *testing.T) {
	cause := errors.New("timeout after 2s")
	te := &TimeoutError{Locator: "id=\"x\"", Condition: "visible", Timeout: 2 * time.Second, Cause: cause}
	assert.ErrorIs(t, te, cause)
}

func TestXPathLiteral(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"plain", "'plain'"},
		{`with "quotes"`, `'with "quotes"'`},
		{"it's", `"it's"`},
		{`both "and" it's`, `concat('both "and" it', "'", 's')`},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, xpathLiteral(tc.in), "input %q", tc.in)
	}
}
