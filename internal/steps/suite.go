// File: internal/steps/suite.go
// Package steps wires Gherkin phrases to the page objects. One Suite serves
// the whole run; per-scenario state lives in the session registry keyed by
// the scenario ID, which the hooks thread through the step context.
package steps

import (
	"context"
	"errors"
	"time"

	"github.com/cucumber/godog"
	"go.uber.org/zap"

	"github.com/xkilldash9x/stagehand/internal/config"
	"github.com/xkilldash9x/stagehand/internal/driver"
	"github.com/xkilldash9x/stagehand/internal/lifecycle"
	"github.com/xkilldash9x/stagehand/internal/pages"
)

type ctxKey int

const (
	contextIDKey ctxKey = iota
	startedAtKey
)

// Suite holds the run-wide collaborators every step definition closes over.
type Suite struct {
	cfg      *config.Config
	reg      *driver.Registry
	listener *lifecycle.Listener
	logger   *zap.Logger
}

// NewSuite builds the step suite over the shared registry and listener.
func NewSuite(cfg *config.Config, reg *driver.Registry, listener *lifecycle.Listener, logger *zap.Logger) *Suite {
	return &Suite{
		cfg:      cfg,
		reg:      reg,
		listener: listener,
		logger:   logger.Named("steps"),
	}
}

// InitializeScenario registers the lifecycle hooks and every step definition
// on the scenario context. This is the godog ScenarioInitializer.
func (s *Suite) InitializeScenario(sc *godog.ScenarioContext) {
	sc.Before(s.beforeScenario)
	sc.After(s.afterScenario)
	s.registerCommonSteps(sc)
	s.registerLoginSteps(sc)
}

func (s *Suite) beforeScenario(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
	s.listener.Handle(lifecycle.Outcome{
		Event:     lifecycle.ScenarioStarted,
		Scenario:  sc.Name,
		ContextID: sc.Id,
	})

	if _, err := s.reg.Initialize(sc.Id, s.cfg.Browser()); err != nil {
		return ctx, err
	}

	ctx = context.WithValue(ctx, contextIDKey, sc.Id)
	ctx = context.WithValue(ctx, startedAtKey, time.Now())
	return ctx, nil
}

func (s *Suite) afterScenario(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
	outcome := lifecycle.Outcome{
		Scenario:  sc.Name,
		ContextID: sc.Id,
		Err:       err,
		Duration:  s.elapsed(ctx),
	}
	switch {
	case err == nil:
		outcome.Event = lifecycle.ScenarioPassed
	case errors.Is(err, godog.ErrPending) || errors.Is(err, godog.ErrSkip):
		outcome.Event = lifecycle.ScenarioSkipped
	default:
		outcome.Event = lifecycle.ScenarioFailed
	}

	if shot := s.listener.Handle(outcome); shot != nil {
		ctx = godog.Attach(ctx, godog.Attachment{
			Body:      shot,
			FileName:  "screenshot.png",
			MediaType: "image/png",
		})
	}

	s.reg.Teardown(sc.Id)
	return ctx, nil
}

func (s *Suite) elapsed(ctx context.Context) time.Duration {
	started, ok := ctx.Value(startedAtKey).(time.Time)
	if !ok {
		return 0
	}
	return time.Since(started)
}

// contextID extracts the scenario's registry key from the step context.
func contextID(ctx context.Context) string {
	id, _ := ctx.Value(contextIDKey).(string)
	return id
}

// session returns the calling scenario's live handle.
func (s *Suite) session(ctx context.Context) (*driver.Handle, error) {
	return s.reg.Current(contextID(ctx))
}

// loginPage binds a login page object to the calling scenario's session.
func (s *Suite) loginPage(ctx context.Context) (*pages.LoginPage, error) {
	h, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	return pages.NewLoginPage(h, s.cfg, s.logger), nil
}
