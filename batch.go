package doc2pdf

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Reporter receives per-item results as they happen.
type Reporter interface {
	Outcome(o Outcome)
	InputError(err error)
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Outcome(Outcome)  {}
func (NopReporter) InputError(error) {}

// Runner drives a batch: it connects to the engine once, resolves the
// inputs up front and converts the work list strictly in order, one file at
// a time, until the list is exhausted or the run is cancelled.
type Runner struct {
	Connector Connector
	Session   *Session
	Reporter  Reporter
	Logger    zerolog.Logger
}

// NewRunner creates a Runner. A nil reporter discards reports.
func NewRunner(connector Connector, session *Session, reporter Reporter) *Runner {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Runner{
		Connector: connector,
		Session:   session,
		Reporter:  reporter,
		Logger:    zerolog.Nop(),
	}
}

// Run converts inputs and returns the outcomes in work-list order.
//
// The only error returned is fatal (engine connection). Per-input and
// per-file failures are reported through the Reporter and the outcomes.
//
// Cancellation is checked between files: by the session's cancel flag
// (operator answered Cancel) and by ctx (interrupt signal). Items after the
// stop point are never attempted and get no outcome. A file already being
// converted is not interrupted.
func (r *Runner) Run(ctx context.Context, inputs []string) (outcomes []Outcome, err error) {
	if r.Connector == nil {
		return nil, ErrNilConnector
	}
	if r.Session == nil {
		r.Session = NewSession(Options{})
	}
	if r.Reporter == nil {
		r.Reporter = NopReporter{}
	}

	engine, err := r.Connector.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineConnect, err)
	}
	if engine == nil {
		return nil, fmt.Errorf("%w: %w", ErrEngineConnect, ErrNilEngine)
	}
	defer func() {
		if rerr := engine.Release(); rerr != nil {
			r.Logger.Warn().Err(fmt.Errorf("%w: %v", ErrEngineRelease, rerr)).Msg("releasing engine")
		}
	}()

	opts := r.Session.Options()
	items, errs := Resolve(inputs, opts.Recursive, r.Session.Formats().Source)
	for _, e := range errs {
		r.Reporter.InputError(e)
	}
	r.Logger.Debug().Int("items", len(items)).Int("inputErrors", len(errs)).Msg("inputs resolved")

	// In-flight conversions run to completion even after an interrupt.
	convCtx := context.WithoutCancel(ctx)

	outcomes = make([]Outcome, 0, len(items))
	for i, item := range items {
		if ctx.Err() != nil {
			r.Logger.Warn().Int("remaining", len(items)-i).Msg("interrupted")
			break
		}

		o := r.Session.Convert(convCtx, engine, string(item))
		outcomes = append(outcomes, o)
		r.Reporter.Outcome(o)

		if r.Session.Cancelled() {
			r.Logger.Info().Int("remaining", len(items)-i-1).Msg("cancelled by operator")
			break
		}
	}

	return outcomes, nil
}
