package doc2pdf

import (
	"errors"
	"io/fs"
	"os"
)

// Prompter asks the operator what to do with an output that already exists.
// It blocks until an answer is available; it is the only place a run waits
// on a human.
type Prompter interface {
	PromptOverwrite(outputPath string) (Answer, error)
}

// PrompterFunc adapts a function to the Prompter interface.
type PrompterFunc func(outputPath string) (Answer, error)

// PromptOverwrite calls f(outputPath).
func (f PrompterFunc) PromptOverwrite(outputPath string) (Answer, error) {
	return f(outputPath)
}

// StaticPrompter answers every prompt with the same answer.
func StaticPrompter(a Answer) Prompter {
	return PrompterFunc(func(string) (Answer, error) { return a, nil })
}

// Decide applies the overwrite policy to outputPath. It prompts only when
// the output exists and the policy is still unset; a "to all" answer
// resolves the policy for the remainder of the run.
//
// A prompter error cancels: with no operator able to answer, the run stops
// rather than guess.
func (s *Session) Decide(outputPath string) (Decision, error) {
	if !outputExists(outputPath) {
		return Proceed, nil
	}

	switch s.opts.Overwrite {
	case OverwriteAlways:
		return Proceed, nil
	case OverwriteNever:
		return Skip, nil
	}

	for {
		answer, err := s.prompter.PromptOverwrite(outputPath)
		if err != nil {
			s.logger.Warn().Err(err).Str("output", outputPath).Msg("overwrite prompt failed, cancelling")
			return Cancel, err
		}
		if !answer.valid() {
			s.logger.Debug().Int("answer", int(answer)).Msg("ignoring unrecognized answer")
			continue
		}

		switch answer {
		case AnswerYes:
			return Proceed, nil
		case AnswerNo:
			return Skip, nil
		case AnswerCancel:
			return Cancel, nil
		case AnswerYesToAll:
			s.resolvePolicy(OverwriteAlways)
			return Proceed, nil
		case AnswerNoToAll:
			s.resolvePolicy(OverwriteNever)
			return Skip, nil
		}
	}
}

// resolvePolicy moves an unset policy to state. Resolved policies stay put.
func (s *Session) resolvePolicy(state OverwriteState) {
	if s.opts.Overwrite.Resolved() {
		return
	}
	s.opts.Overwrite = state
	s.logger.Info().Stringer("policy", state).Msg("overwrite policy resolved for the rest of the run")
}

// outputExists reports whether something occupies path. Stat failures other
// than not-exist count as existing so they never turn into a silent overwrite.
func outputExists(path string) bool {
	_, err := os.Stat(path)
	if err == nil {
		return true
	}
	return !errors.Is(err, fs.ErrNotExist)
}
