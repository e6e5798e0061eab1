// File: internal/lifecycle/listener.go
// Package lifecycle observes scenario transitions and produces failure
// artifacts. The listener is stateless: scenario identity, result, and
// timing all arrive in the Outcome, and artifacts go to a Sink.
package lifecycle

import (
	"time"

	"go.uber.org/zap"

	"github.com/xkilldash9x/stagehand/internal/config"
	"github.com/xkilldash9x/stagehand/internal/driver"
)

// Event is a scenario lifecycle transition. The set is closed: these four
// are the only transitions the listener reacts to.
type Event int

const (
	ScenarioStarted Event = iota
	ScenarioPassed
	ScenarioFailed
	ScenarioSkipped
)

func (e Event) String() string {
	switch e {
	case ScenarioStarted:
		return "started"
	case ScenarioPassed:
		return "passed"
	case ScenarioFailed:
		return "failed"
	case ScenarioSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Outcome describes one lifecycle transition of one scenario.
type Outcome struct {
	Event     Event
	Scenario  string
	ContextID string
	Err       error
	Duration  time.Duration
}

// Sink receives failure artifacts. Implementations decide where they land.
type Sink interface {
	Attach(scenario, name, mime string, data []byte) error
}

// Listener logs scenario transitions and, on failure, captures a screenshot
// from the scenario's session and hands it to the sink.
type Listener struct {
	cfg    *config.Config
	reg    *driver.Registry
	sink   Sink
	logger *zap.Logger
}

// NewListener creates a lifecycle listener. A nil sink disables artifact
// capture without disabling event logging.
func NewListener(cfg *config.Config, reg *driver.Registry, sink Sink, logger *zap.Logger) *Listener {
	return &Listener{
		cfg:    cfg,
		reg:    reg,
		sink:   sink,
		logger: logger.Named("lifecycle"),
	}
}

// Handle processes one lifecycle transition. On a failed scenario with
// screenshot capture enabled it returns the captured PNG so the caller can
// also attach it to the run report; otherwise it returns nil. Capture and
// sink failures are logged and swallowed: reporting must never fail a run
// that already has a verdict.
func (l *Listener) Handle(o Outcome) []byte {
	switch o.Event {
	case ScenarioStarted:
		l.logger.Info("Scenario started.",
			zap.String("scenario", o.Scenario), zap.String("context_id", o.ContextID))
		return nil
	case ScenarioPassed:
		l.logger.Info("Scenario passed.",
			zap.String("scenario", o.Scenario), zap.Duration("duration", o.Duration))
		return nil
	case ScenarioSkipped:
		l.logger.Warn("Scenario skipped.", zap.String("scenario", o.Scenario))
		return nil
	case ScenarioFailed:
		l.logger.Error("Scenario failed.",
			zap.String("scenario", o.Scenario),
			zap.Duration("duration", o.Duration),
			zap.Error(o.Err))
		return l.captureFailure(o)
	default:
		return nil
	}
}

func (l *Listener) captureFailure(o Outcome) []byte {
	if !l.cfg.ScreenshotOnFailure() {
		return nil
	}

	h, err := l.reg.Current(o.ContextID)
	if err != nil {
		l.logger.Warn("No session to screenshot for failed scenario.",
			zap.String("scenario", o.Scenario), zap.Error(err))
		return nil
	}

	shot, err := h.Screenshot()
	if err != nil {
		l.logger.Error("Failed to capture screenshot.",
			zap.String("scenario", o.Scenario), zap.Error(err))
		return nil
	}

	if l.sink != nil {
		if err := l.sink.Attach(o.Scenario, "screenshot", "image/png", shot); err != nil {
			l.logger.Error("Failed to store screenshot.",
				zap.String("scenario", o.Scenario), zap.Error(err))
		}
	}
	return shot
}
