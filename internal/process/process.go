// Package process holds best-effort cleanup for processes the engine
// launched and may have left behind.
package process

import "errors"

// ErrInvalidPID is returned for pids that would address the caller's own
// process group.
var ErrInvalidPID = errors.New("invalid pid")
