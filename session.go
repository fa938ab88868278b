package doc2pdf

import (
	"github.com/rs/zerolog"
)

// Session carries the mutable state of one batch run: the options (whose
// overwrite policy may be resolved by the operator mid-run), the prompter
// used to ask about existing outputs, and the cancel flag.
//
// A Session is owned by the Runner and passed by pointer to every
// transaction. It is not safe for concurrent use; runs are sequential.
type Session struct {
	opts      Options
	formats   Formats
	prompter  Prompter
	logger    zerolog.Logger
	cancelled bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithFormats sets the source and target extensions.
func WithFormats(f Formats) SessionOption {
	return func(s *Session) {
		if f.Source != "" {
			s.formats.Source = f.Source
		}
		if f.Target != "" {
			s.formats.Target = f.Target
		}
	}
}

// WithPrompter sets the overwrite prompter.
func WithPrompter(p Prompter) SessionOption {
	return func(s *Session) {
		if p != nil {
			s.prompter = p
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l zerolog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = l
	}
}

// NewSession creates a Session for one run.
// Without WithPrompter, existing outputs are skipped when the policy is unset.
func NewSession(opts Options, options ...SessionOption) *Session {
	s := &Session{
		opts:     opts,
		formats:  DefaultFormats(),
		prompter: StaticPrompter(AnswerNo),
		logger:   zerolog.Nop(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Options returns the current options, including any policy resolved so far.
func (s *Session) Options() Options {
	return s.opts
}

// Formats returns the source and target extensions.
func (s *Session) Formats() Formats {
	return s.formats
}

// Cancel raises the cancel flag. The flag is terminal for the run.
func (s *Session) Cancel() {
	s.cancelled = true
}

// Cancelled reports whether the operator cancelled the run.
func (s *Session) Cancelled() bool {
	return s.cancelled
}
