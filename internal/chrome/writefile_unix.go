//go:build !windows

package chrome

import (
	"io"

	"github.com/google/renameio/v2"
)

// writeFileAtomic copies r to path through a pending file that is synced
// and renamed into place, so readers see the old file or the whole new one.
func writeFileAtomic(path string, r io.Reader) error {
	f, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return err
	}
	defer func() { _ = f.Cleanup() }()

	if _, err := io.Copy(f, r); err != nil {
		return err
	}
	return f.CloseAtomicallyReplace()
}
