package main

import (
	"errors"

	"github.com/alnah/go-doc2pdf/internal/console"
	"github.com/alnah/go-doc2pdf/internal/fileutil"
)

// promptInputs asks the operator for one file or directory and, for a
// directory, whether to descend into child directories. ok is false when
// the operator backed out (ESC, Ctrl-C, or closed input).
func promptInputs(c *console.Console, sourceExt string) (path string, recursive, ok bool, err error) {
	accept := func(p string) bool {
		return fileutil.DirExists(p) || fileutil.FileExists(p)
	}

	path, err = c.PromptPath(sourceExt, accept)
	if err != nil {
		if isOperatorExit(err) {
			return "", false, false, nil
		}
		return "", false, false, err
	}

	if !fileutil.DirExists(path) {
		return path, false, true, nil
	}

	recursive, ok, err = c.PromptRecursive()
	if err != nil {
		if isOperatorExit(err) {
			return "", false, false, nil
		}
		return "", false, false, err
	}
	return path, recursive, ok, nil
}

// isOperatorExit reports whether err means the operator left the prompt.
func isOperatorExit(err error) bool {
	return errors.Is(err, console.ErrInputClosed) || errors.Is(err, console.ErrInterrupted)
}
