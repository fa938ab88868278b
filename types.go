package doc2pdf

import (
	"fmt"
	"strings"
	"time"
)

// Default file extensions.
const (
	DefaultSourceExt = ".html"
	DefaultTargetExt = ".pdf"
)

// OverwriteState is the run-wide policy for outputs that already exist.
// It only moves from OverwriteUnset to a resolved state, never back.
type OverwriteState int

const (
	OverwriteUnset  OverwriteState = iota // ask the operator
	OverwriteAlways                       // overwrite without asking
	OverwriteNever                        // skip without asking
)

// String returns the config spelling of the state.
func (s OverwriteState) String() string {
	switch s {
	case OverwriteUnset:
		return "ask"
	case OverwriteAlways:
		return "always"
	case OverwriteNever:
		return "never"
	default:
		return fmt.Sprintf("OverwriteState(%d)", int(s))
	}
}

// Resolved reports whether the policy no longer needs a prompt.
func (s OverwriteState) Resolved() bool {
	return s == OverwriteAlways || s == OverwriteNever
}

// ParseOverwriteState parses "ask", "always" or "never" (case-insensitive).
// An empty string means "ask".
func ParseOverwriteState(s string) (OverwriteState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ask":
		return OverwriteUnset, nil
	case "always":
		return OverwriteAlways, nil
	case "never":
		return OverwriteNever, nil
	default:
		return OverwriteUnset, fmt.Errorf("%w: %q (must be ask, always, or never)", ErrInvalidPolicy, s)
	}
}

// Options holds the conversion options threaded through a run.
type Options struct {
	Recursive bool
	Overwrite OverwriteState
}

// Formats names the source and target file extensions, dot included.
type Formats struct {
	Source string
	Target string
}

// DefaultFormats returns the formats handled by the bundled engine.
func DefaultFormats() Formats {
	return Formats{Source: DefaultSourceExt, Target: DefaultTargetExt}
}

// WorkItem is a resolved absolute source-file path.
type WorkItem string

// Decision is the overwrite policy verdict for one output path.
type Decision int

const (
	Proceed Decision = iota
	Skip
	Cancel
)

func (d Decision) String() string {
	switch d {
	case Proceed:
		return "proceed"
	case Skip:
		return "skip"
	case Cancel:
		return "cancel"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// Answer is an operator reply to an overwrite prompt.
type Answer int

const (
	AnswerYes      Answer = iota + 1 // overwrite this file
	AnswerNo                         // skip this file
	AnswerCancel                     // stop the batch
	AnswerYesToAll                   // overwrite this and every later file
	AnswerNoToAll                    // skip this and every later existing file
)

func (a Answer) String() string {
	switch a {
	case AnswerYes:
		return "yes"
	case AnswerNo:
		return "no"
	case AnswerCancel:
		return "cancel"
	case AnswerYesToAll:
		return "yes-to-all"
	case AnswerNoToAll:
		return "no-to-all"
	default:
		return fmt.Sprintf("Answer(%d)", int(a))
	}
}

// valid reports whether a is one of the five recognized answers.
func (a Answer) valid() bool {
	return a >= AnswerYes && a <= AnswerNoToAll
}

// OutcomeKind classifies what happened to one work item.
type OutcomeKind int

const (
	Converted OutcomeKind = iota
	SkippedExists
	Cancelled
	Failed
)

func (k OutcomeKind) String() string {
	switch k {
	case Converted:
		return "converted"
	case SkippedExists:
		return "skipped"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Outcome holds the result of one conversion transaction.
type Outcome struct {
	Kind     OutcomeKind
	Source   string
	Output   string
	Err      error // set only when Kind is Failed
	Duration time.Duration
}

// Summary counts outcomes by kind.
type Summary struct {
	Converted int
	Skipped   int
	Cancelled int
	Failed    int
}

// Total returns the number of attempted items.
func (s Summary) Total() int {
	return s.Converted + s.Skipped + s.Cancelled + s.Failed
}

// Summarize tallies outcomes by kind.
func Summarize(outcomes []Outcome) Summary {
	var s Summary
	for _, o := range outcomes {
		switch o.Kind {
		case Converted:
			s.Converted++
		case SkippedExists:
			s.Skipped++
		case Cancelled:
			s.Cancelled++
		case Failed:
			s.Failed++
		}
	}
	return s
}
