// Package console talks to the operator: the overwrite prompt, the path
// prompt and the recursion prompt of interactive mode.
//
// On a terminal a prompt reads a single key without waiting for Enter.
// Otherwise (pipes, files, tests) it reads a line and uses its first
// character.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	doc2pdf "github.com/alnah/go-doc2pdf"
)

// Sentinel errors for operator input.
var (
	ErrInputClosed = errors.New("operator input closed")
	ErrInterrupted = errors.New("interrupted at prompt")
)

const (
	keyEsc   = 0x1b
	keyCtrlC = 0x03
	keyCtrlD = 0x04

	// keyUnknown stands for a keystroke no prompt accepts: arrow and
	// function keys, pastes, invalid UTF-8.
	keyUnknown = utf8.RuneError
)

// maxKeystroke bounds the bytes one key press can produce. Escape
// sequences for arrow and function keys fit well within it.
const maxKeystroke = 32

// Console reads operator answers from in and writes prompts to out.
type Console struct {
	in  *bufio.Reader
	raw io.Reader
	out io.Writer
	fd  int
	tty bool

	ctx     context.Context
	pending chan lineResult
}

type lineResult struct {
	line string
	err  error
}

// fder is satisfied by *os.File.
type fder interface {
	Fd() uintptr
}

// New creates a Console. Single-key mode is used when in is a terminal.
func New(in io.Reader, out io.Writer) *Console {
	c := &Console{in: bufio.NewReader(in), raw: in, out: out, fd: -1}
	if f, ok := in.(fder); ok && isatty.IsTerminal(f.Fd()) {
		c.fd = int(f.Fd())
		c.tty = true
	}
	return c
}

// Interactive reports whether single-key prompts are available.
func (c *Console) Interactive() bool { return c.tty }

// WithContext makes line-mode prompts give up with ErrInterrupted once ctx
// is done. A line read still in flight is picked up by the next prompt.
func (c *Console) WithContext(ctx context.Context) *Console {
	c.ctx = ctx
	return c
}

// nextLine reads one line, abandoning the wait when the context ends.
func (c *Console) nextLine() (string, error) {
	if c.ctx == nil {
		return c.in.ReadString('\n')
	}
	if c.pending == nil {
		if c.ctx.Err() != nil {
			return "", ErrInterrupted
		}
		ch := make(chan lineResult, 1)
		go func() {
			line, err := c.in.ReadString('\n')
			ch <- lineResult{line, err}
		}()
		c.pending = ch
	}
	select {
	case r := <-c.pending:
		c.pending = nil
		return r.line, r.err
	case <-c.ctx.Done():
		return "", ErrInterrupted
	}
}

// readKey returns one key, lower-cased. In line mode it is the first
// non-blank character of the next line, or '\n' for a blank line.
func (c *Console) readKey() (rune, error) {
	if c.tty {
		return c.readRawKey()
	}

	line, err := c.nextLine()
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		if errors.Is(err, io.EOF) {
			return 0, ErrInputClosed
		}
		if errors.Is(err, ErrInterrupted) {
			return 0, err
		}
		return 0, fmt.Errorf("reading answer: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return '\n', nil
	}
	if line[0] == keyEsc && len(line) > 1 {
		return keyUnknown, nil
	}
	return unicode.ToLower([]rune(line)[0]), nil
}

func (c *Console) readRawKey() (rune, error) {
	state, err := term.MakeRaw(c.fd)
	if err != nil {
		return 0, fmt.Errorf("entering raw mode: %w", err)
	}
	key, err := c.readKeystroke()
	_ = term.Restore(c.fd, state)
	if err != nil {
		return 0, err
	}
	if key != keyUnknown && unicode.IsPrint(key) {
		fmt.Fprintf(c.out, "%c", key)
	}
	fmt.Fprintln(c.out)
	return key, nil
}

// readKeystroke reads one key press with a single Read, so the bytes of an
// escape sequence arrive together and count as one key.
func (c *Console) readKeystroke() (rune, error) {
	buf := make([]byte, maxKeystroke)
	var (
		n   int
		err error
	)
	if c.in.Buffered() > 0 {
		n, err = c.in.Read(buf)
	} else {
		n, err = c.raw.Read(buf)
	}
	if n == 0 {
		if err == nil || errors.Is(err, io.EOF) {
			return 0, ErrInputClosed
		}
		return 0, fmt.Errorf("reading key: %w", err)
	}
	return decodeKeystroke(buf[:n])
}

// decodeKeystroke maps the bytes of one key press to a lower-cased rune.
// Anything longer than a single character is keyUnknown, except that a
// lone ESC is the escape key.
func decodeKeystroke(b []byte) (rune, error) {
	switch {
	case len(b) == 1 && b[0] == keyCtrlC:
		return 0, ErrInterrupted
	case len(b) == 1 && b[0] == keyCtrlD:
		return 0, ErrInputClosed
	case len(b) == 1 && b[0] == keyEsc:
		return keyEsc, nil
	case b[0] == keyEsc:
		return keyUnknown, nil
	}
	r, size := utf8.DecodeRune(b)
	if r == utf8.RuneError || size != len(b) {
		return keyUnknown, nil
	}
	return unicode.ToLower(r), nil
}

// readLine returns the next line without its line ending.
func (c *Console) readLine() (string, error) {
	line, err := c.nextLine()
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		if errors.Is(err, ErrInterrupted) {
			return "", err
		}
		return "", fmt.Errorf("reading line: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// PromptOverwrite asks what to do with an existing output. It implements
// doc2pdf.Prompter. An unrecognized key yields an invalid Answer so the
// caller asks again.
func (c *Console) PromptOverwrite(outputPath string) (doc2pdf.Answer, error) {
	fmt.Fprintf(c.out, "\nWarning! '%s' already exists.\n", outputPath)
	fmt.Fprintln(c.out, "Do you want to continue and overwrite the existing file?")
	fmt.Fprintln(c.out, "Y = Yes, N = No, C = Cancel, A = Yes to All, O = No To All")

	key, err := c.readKey()
	if err != nil {
		return 0, err
	}
	return overwriteAnswer(key), nil
}

func overwriteAnswer(key rune) doc2pdf.Answer {
	switch key {
	case 'y':
		return doc2pdf.AnswerYes
	case 'n':
		return doc2pdf.AnswerNo
	case 'c':
		return doc2pdf.AnswerCancel
	case 'a':
		return doc2pdf.AnswerYesToAll
	case 'o':
		return doc2pdf.AnswerNoToAll
	default:
		return 0
	}
}

// PromptPath asks for a file or directory until accept returns true for
// the trimmed answer.
func (c *Console) PromptPath(sourceExt string, accept func(string) bool) (string, error) {
	for {
		fmt.Fprintf(c.out, "Enter path of a %s document file or a directory to convert\n", sourceExt)
		line, err := c.readLine()
		if err != nil {
			return "", err
		}
		path := strings.Trim(strings.TrimSpace(line), `"'`)
		if path != "" && accept(path) {
			return path, nil
		}
	}
}

// PromptRecursive asks whether child directories should be converted too.
// ok is false when the operator pressed ESC.
func (c *Console) PromptRecursive() (recursive, ok bool, err error) {
	for {
		fmt.Fprintln(c.out, "Do you want to convert all files in child directories?")
		fmt.Fprintln(c.out, "Y = Yes, N = No, ESC = Cancel")

		key, err := c.readKey()
		if err != nil {
			return false, false, err
		}
		switch key {
		case 'y':
			return true, true, nil
		case 'n':
			return false, true, nil
		case keyEsc:
			return false, false, nil
		}
	}
}
