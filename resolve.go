package doc2pdf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alnah/go-doc2pdf/internal/fileutil"
)

// Resolve expands inputs into the ordered list of source files to convert.
//
// A file input is kept when its extension matches sourceExt (ignoring case).
// A directory input contributes its matching files in listing order and,
// when recursive is set, then descends into each subdirectory in listing
// order. Paths are made absolute.
//
// Errors are per input: a missing input or a file with another extension is
// reported and the remaining inputs are still resolved. An empty result is
// not an error.
func Resolve(inputs []string, recursive bool, sourceExt string) ([]WorkItem, []error) {
	var (
		items []WorkItem
		errs  []error
	)

	for _, input := range inputs {
		found, err := resolveInput(input, recursive, sourceExt)
		items = append(items, found...)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return items, errs
}

// resolveInput classifies one input and expands it.
func resolveInput(input string, recursive bool, sourceExt string) ([]WorkItem, error) {
	info, err := os.Stat(input)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, input)
		}
		return nil, fmt.Errorf("reading %s: %w", input, err)
	}

	abs, err := filepath.Abs(input)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", input, err)
	}

	if !info.IsDir() {
		if !fileutil.HasExt(abs, sourceExt) {
			return nil, fmt.Errorf("%w: %s (want %s)", ErrUnsupportedExtension, input, sourceExt)
		}
		return []WorkItem{WorkItem(abs)}, nil
	}

	var items []WorkItem
	err = walkDir(abs, recursive, sourceExt, &items)
	return items, err
}

// walkDir appends matching files of dir, then recurses into subdirectories.
// An unreadable subdirectory is reported and its siblings are still scanned.
func walkDir(dir string, recursive bool, sourceExt string, items *[]WorkItem) error {
	entries, err := os.ReadDir(dir) // sorted by file name
	if err != nil {
		return fmt.Errorf("scanning %s: %w", dir, err)
	}

	var subdirs []string
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if e.IsDir() {
			subdirs = append(subdirs, path)
			continue
		}
		if fileutil.HasExt(path, sourceExt) {
			*items = append(*items, WorkItem(path))
		}
	}

	if !recursive {
		return nil
	}

	var errs []error
	for _, sub := range subdirs {
		if err := walkDir(sub, recursive, sourceExt, items); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
