// File: internal/driver/registry.go
// The registry maps execution contexts (one per running scenario) to their
// browser session. It replaces the usual thread-local driver holder with an
// explicit context-keyed map, which keeps the dependency visible and testable
// without spinning real scenario workers.
package driver

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tebeka/selenium"
	"go.uber.org/zap"

	"github.com/xkilldash9x/stagehand/internal/config"
)

// DefaultPollInterval is how often wait conditions are re-evaluated.
const DefaultPollInterval = 100 * time.Millisecond

// WaitPolicy is the explicit-wait bound attached 1:1 to a session handle at
// creation. A different policy requires a new session.
type WaitPolicy struct {
	Timeout  time.Duration
	Interval time.Duration
}

// Handle is one active browser session: the WebDriver connection, the driver
// service owning the OS process (nil for remote sessions), and the wait
// policy every interaction against this session uses.
type Handle struct {
	ID        string
	Browser   string
	WebDriver selenium.WebDriver
	Wait      WaitPolicy

	service *selenium.Service
	logger  *zap.Logger
}

// Registry owns the context-to-session mapping. The map itself is the only
// shared mutable structure; each handle is private to the context that
// created it.
type Registry struct {
	cfg     *config.Config
	factory Factory
	logger  *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Handle
}

// NewRegistry creates a session registry backed by the given factory.
// Production callers pass NewSession; tests inject a fake.
func NewRegistry(cfg *config.Config, factory Factory, logger *zap.Logger) *Registry {
	return &Registry{
		cfg:      cfg,
		factory:  factory,
		logger:   logger.Named("registry"),
		sessions: make(map[string]*Handle),
	}
}

// Initialize constructs a session for the given browser and associates it
// with the execution context. Initializing a context that already holds a
// live session is a logic error in the caller; the registry recovers by
// releasing the prior session and replacing it, so a session is never leaked.
func (r *Registry) Initialize(contextID, browser string) (*Handle, error) {
	wd, service, err := r.factory(browser, r.cfg, r.logger)
	if err != nil {
		return nil, err
	}

	h := &Handle{
		ID:        uuid.New().String(),
		Browser:   browser,
		WebDriver: wd,
		Wait: WaitPolicy{
			Timeout:  r.cfg.ExplicitWait(),
			Interval: DefaultPollInterval,
		},
		service: service,
	}
	h.logger = r.logger.With(zap.String("session_id", h.ID), zap.String("browser", browser))

	r.mu.Lock()
	prior := r.sessions[contextID]
	r.sessions[contextID] = h
	r.mu.Unlock()

	if prior != nil {
		r.logger.Warn("Initialize called twice without teardown; replacing and releasing prior session.",
			zap.String("context_id", contextID), zap.String("prior_session_id", prior.ID))
		prior.release()
	}

	h.logger.Info("Session initialized.", zap.String("context_id", contextID))
	return h, nil
}

// Current returns the live handle for the execution context, or
// NotInitializedError when none exists. Repeated calls between Initialize and
// Teardown return the same handle.
func (r *Registry) Current(contextID string) (*Handle, error) {
	r.mu.Lock()
	h := r.sessions[contextID]
	r.mu.Unlock()

	if h == nil {
		return nil, &NotInitializedError{ContextID: contextID}
	}
	return h, nil
}

// Teardown releases the context's session and clears the association. It is
// idempotent, and release failures are logged rather than propagated:
// teardown is best effort and always completes.
func (r *Registry) Teardown(contextID string) {
	r.mu.Lock()
	h := r.sessions[contextID]
	delete(r.sessions, contextID)
	r.mu.Unlock()

	if h == nil {
		return
	}
	h.release()
	h.logger.Info("Session torn down.", zap.String("context_id", contextID))
}

// release quits the browser and stops the owned driver service. Both calls
// are best effort: a crashed browser must not keep the process or the OS
// resource alive.
func (h *Handle) release() {
	if h.WebDriver != nil {
		if err := h.WebDriver.Quit(); err != nil {
			h.logger.Warn("Failed to quit webdriver cleanly.", zap.Error(err))
		}
	}
	if h.service != nil {
		if err := h.service.Stop(); err != nil {
			h.logger.Warn("Failed to stop driver service.", zap.Error(err))
		}
	}
}

// -- Navigation pass-throughs --
// Thin conveniences over the underlying WebDriver, kept on the handle so
// step definitions do not reach for the raw connection.

func (h *Handle) NavigateTo(url string) error {
	h.logger.Info("Navigating.", zap.String("url", url))
	return h.WebDriver.Get(url)
}

func (h *Handle) Title() (string, error)      { return h.WebDriver.Title() }
func (h *Handle) CurrentURL() (string, error) { return h.WebDriver.CurrentURL() }
func (h *Handle) Refresh() error              { return h.WebDriver.Refresh() }
func (h *Handle) Back() error                 { return h.WebDriver.Back() }
func (h *Handle) Forward() error              { return h.WebDriver.Forward() }

// Screenshot captures the current viewport as PNG bytes.
func (h *Handle) Screenshot() ([]byte, error) { return h.WebDriver.Screenshot() }
