// File: internal/driver/factory.go
package driver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/firefox"
	"go.uber.org/zap"

	"github.com/xkilldash9x/stagehand/internal/config"
)

// Supported browser tags. The factory dispatches on this closed set; anything
// else fails with UnsupportedBrowserError.
const (
	BrowserChrome  = "chrome"
	BrowserFirefox = "firefox"
	BrowserEdge    = "edge"
	BrowserSafari  = "safari"
)

// ValidateBrowser reports whether the tag names a supported browser. It lets
// callers reject a bad tag up front instead of at first session creation.
func ValidateBrowser(browser string) error {
	switch strings.ToLower(browser) {
	case BrowserChrome, BrowserFirefox, BrowserEdge, BrowserSafari:
		return nil
	default:
		return &UnsupportedBrowserError{Browser: browser}
	}
}

// Factory constructs a live WebDriver session for a browser tag. The returned
// Service is non-nil only when the factory started a local driver process
// that the caller owns and must stop on teardown.
type Factory func(browser string, cfg *config.Config, logger *zap.Logger) (selenium.WebDriver, *selenium.Service, error)

// NewSession is the production Factory. It builds browser-specific
// capabilities, connects to the configured WebDriver endpoint (starting a
// local driver service when none is configured), and applies the standard
// timeouts from the configuration. It is a pure construction step: it does
// not touch the registry.
func NewSession(browser string, cfg *config.Config, logger *zap.Logger) (selenium.WebDriver, *selenium.Service, error) {
	caps, err := capabilitiesFor(browser, cfg)
	if err != nil {
		return nil, nil, err
	}

	urlPrefix := cfg.SeleniumURL()
	var service *selenium.Service
	if urlPrefix == "" {
		service, urlPrefix, err = startService(browser, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to start driver service for %s: %w", browser, err)
		}
	}

	logger.Info("Creating browser session.",
		zap.String("browser", browser), zap.String("endpoint", urlPrefix))

	wd, err := selenium.NewRemote(caps, urlPrefix)
	if err != nil {
		if service != nil {
			// Best effort; the session never came up.
			_ = service.Stop()
		}
		return nil, nil, fmt.Errorf("failed to create %s session: %w", browser, err)
	}

	if err := applyTimeouts(wd, cfg); err != nil {
		_ = wd.Quit()
		if service != nil {
			_ = service.Stop()
		}
		return nil, nil, err
	}

	// Safari ignores --start-maximized style arguments; ask the driver
	// directly instead. Failures here are cosmetic.
	if err := wd.MaximizeWindow(""); err != nil {
		logger.Debug("Could not maximize window.", zap.Error(err))
	}

	return wd, service, nil
}

// capabilitiesFor builds the desired capabilities for a browser tag,
// including the standard startup flags (maximized window, suppressed
// notification and popup prompts).
func capabilitiesFor(browser string, cfg *config.Config) (selenium.Capabilities, error) {
	switch strings.ToLower(browser) {
	case BrowserChrome:
		caps := selenium.Capabilities{"browserName": "chrome"}
		caps.AddChrome(chrome.Capabilities{
			Args: chromiumArgs(cfg),
			Prefs: map[string]interface{}{
				// 2 == block notification prompts.
				"profile.default_content_setting_values.notifications": 2,
			},
		})
		return caps, nil

	case BrowserFirefox:
		args := []string{"--start-maximized"}
		if cfg.Headless() {
			args = append(args, "-headless")
		}
		caps := selenium.Capabilities{"browserName": "firefox"}
		caps.AddFirefox(firefox.Capabilities{
			Args: args,
			Prefs: map[string]interface{}{
				"dom.webnotifications.enabled": false,
			},
		})
		return caps, nil

	case BrowserEdge:
		// Chromium-based Edge takes chromium arguments via ms:edgeOptions.
		return selenium.Capabilities{
			"browserName": "MicrosoftEdge",
			"ms:edgeOptions": map[string]interface{}{
				"args": chromiumArgs(cfg),
			},
		}, nil

	case BrowserSafari:
		return selenium.Capabilities{"browserName": "safari"}, nil

	default:
		return nil, &UnsupportedBrowserError{Browser: browser}
	}
}

// chromiumArgs are the shared startup flags for chromium-family browsers.
func chromiumArgs(cfg *config.Config) []string {
	args := []string{
		"--start-maximized",
		"--disable-notifications",
		"--disable-popup-blocking",
	}
	if cfg.Headless() {
		args = append(args, "--headless=new", "--window-size="+windowSizeArg(cfg.WindowSize()))
	}
	return args
}

// windowSizeArg converts the config's "1920x1080" form into the
// comma-separated form chromium expects.
func windowSizeArg(size string) string {
	parts := strings.SplitN(strings.ToLower(size), "x", 2)
	if len(parts) != 2 {
		return "1920,1080"
	}
	w, errW := strconv.Atoi(strings.TrimSpace(parts[0]))
	h, errH := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return "1920,1080"
	}
	return fmt.Sprintf("%d,%d", w, h)
}

// startService launches the local driver binary for the browser and returns
// the service together with the endpoint URL sessions should connect to.
//
// Safari is the exception: safaridriver ships with macOS, must be enabled by
// the user (safaridriver --enable), and is expected to already be listening
// on driver.port.
func startService(browser string, cfg *config.Config) (*selenium.Service, string, error) {
	port := cfg.DriverPort()
	path := cfg.DriverPath()

	switch strings.ToLower(browser) {
	case BrowserChrome:
		if path == "" {
			path = "chromedriver"
		}
		service, err := selenium.NewChromeDriverService(path, port)
		if err != nil {
			return nil, "", err
		}
		return service, fmt.Sprintf("http://localhost:%d/wd/hub", port), nil

	case BrowserFirefox:
		if path == "" {
			path = "geckodriver"
		}
		service, err := selenium.NewGeckoDriverService(path, port)
		if err != nil {
			return nil, "", err
		}
		return service, fmt.Sprintf("http://localhost:%d", port), nil

	case BrowserEdge:
		// msedgedriver is chromedriver-compatible, including --url-base.
		if path == "" {
			path = "msedgedriver"
		}
		service, err := selenium.NewChromeDriverService(path, port)
		if err != nil {
			return nil, "", err
		}
		return service, fmt.Sprintf("http://localhost:%d/wd/hub", port), nil

	case BrowserSafari:
		return nil, fmt.Sprintf("http://localhost:%d", port), nil

	default:
		return nil, "", &UnsupportedBrowserError{Browser: browser}
	}
}

// applyTimeouts applies the standard session timeouts from configuration:
// implicit wait, page-load timeout, and script timeout.
func applyTimeouts(wd selenium.WebDriver, cfg *config.Config) error {
	if err := wd.SetImplicitWaitTimeout(cfg.ImplicitWait()); err != nil {
		return fmt.Errorf("failed to set implicit wait: %w", err)
	}
	if err := wd.SetPageLoadTimeout(cfg.PageLoadTimeout()); err != nil {
		return fmt.Errorf("failed to set page load timeout: %w", err)
	}
	if err := wd.SetAsyncScriptTimeout(cfg.ScriptTimeout()); err != nil {
		return fmt.Errorf("failed to set script timeout: %w", err)
	}
	return nil
}
