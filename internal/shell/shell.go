// Package shell implements the interactive prompt loop that asks for an
// action, a message and a key and prints the result of running the cipher.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/charmap"

	"github.com/dcrodman/konami/internal/konami"
)

// Action is one of the operations the shell can run.
type Action string

const (
	Encrypt Action = "encrypt"
	Decrypt Action = "decrypt"
)

// OffsetSource turns a key into cipher offsets. *core.KeyCache satisfies it.
type OffsetSource interface {
	Offsets(key string) ([]byte, error)
}

type decodeKey struct{}

func (decodeKey) Offsets(key string) ([]byte, error) {
	return konami.DecodeKey(key)
}

// Shell reads requests from one stream and writes prompts and results to
// another until the input is exhausted.
type Shell struct {
	in          *bufio.Reader
	lines       chan readResult
	startReader sync.Once
	out         io.Writer
	logger      *logrus.Logger
	keys        OffsetSource
	dumpOffsets bool
	fold        cases.Caser
}

// Option configures optional Shell behaviour.
type Option func(*Shell)

// WithOffsetSource decodes keys through src instead of decoding them anew
// on every request.
func WithOffsetSource(src OffsetSource) Option {
	return func(s *Shell) { s.keys = src }
}

// WithOffsetDump logs a dump of the decoded key offsets for every request.
func WithOffsetDump(enabled bool) Option {
	return func(s *Shell) { s.dumpOffsets = enabled }
}

// New returns a Shell reading from in and writing to out.
func New(in io.Reader, out io.Writer, logger *logrus.Logger, opts ...Option) *Shell {
	s := &Shell{
		in:     bufio.NewReader(in),
		lines:  make(chan readResult, 1),
		out:    out,
		logger: logger,
		keys:   decodeKey{},
		fold:   cases.Fold(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run loops over requests until the input ends or ctx is cancelled. Cipher
// errors are printed and the loop continues; only I/O errors and ctx.Err()
// are returned. Cancelling ctx interrupts a prompt that is waiting for input.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.handleRequest(ctx); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func (s *Shell) handleRequest(ctx context.Context) error {
	action, err := s.readAction(ctx)
	if err != nil {
		return err
	}

	message, err := s.prompt(ctx, fmt.Sprintf("Enter the message you would like to %s: ", action))
	if err != nil {
		return err
	}
	key, err := s.prompt(ctx, "Enter your key: ")
	if err != nil {
		return err
	}

	output, err := s.execute(action, message, key)
	if err != nil {
		s.logger.WithError(err).WithField("action", action).Debug("request failed")
		_, err = fmt.Fprintf(s.out, "Error calculating output: %v\n\n", err)
		return err
	}
	_, err = fmt.Fprintf(s.out, "Output: %s\n\n", output)
	return err
}

// readAction prompts until it gets a valid action.
func (s *Shell) readAction(ctx context.Context) (Action, error) {
	for {
		line, err := s.prompt(ctx, "Do you want to encrypt or decrypt? ")
		if err != nil {
			return "", err
		}
		if action, ok := s.parseAction(line); ok {
			return action, nil
		}
		if _, err := fmt.Fprintln(s.out, "Please enter either encrypt or decrypt"); err != nil {
			return "", err
		}
	}
}

func (s *Shell) parseAction(line string) (Action, bool) {
	switch Action(s.fold.String(line)) {
	case Encrypt:
		return Encrypt, true
	case Decrypt:
		return Decrypt, true
	}
	return "", false
}

func (s *Shell) execute(action Action, message, key string) (string, error) {
	offsets, err := s.keys.Offsets(key)
	if err != nil {
		return "", err
	}

	entry := s.logger.WithFields(logrus.Fields{
		"action":  action,
		"length":  len(message),
		"offsets": len(offsets),
	})
	if s.dumpOffsets {
		entry.Debugf("key offsets:\n%s", spew.Sdump(offsets))
	}
	entry.Debug("running cipher")

	if action == Encrypt {
		return konami.EncryptWithOffsets([]byte(message), offsets)
	}

	decrypted, err := konami.DecryptWithOffsets(message, offsets)
	if err != nil {
		return "", err
	}
	return displayBytes(decrypted)
}

// displayBytes renders each byte as the character with the same value so
// that decrypted bytes outside of ASCII are still printable.
func displayBytes(b []byte) (string, error) {
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(s), nil
}

type readResult struct {
	line string
	err  error
}

// readLines feeds lines from the input to s.lines. The channel is closed
// after the first read error has been delivered.
func (s *Shell) readLines() {
	defer close(s.lines)
	for {
		line, err := s.in.ReadString('\n')
		s.lines <- readResult{line: line, err: err}
		if err != nil {
			return
		}
	}
}

// prompt writes msg and returns the next line of input without trailing
// whitespace. A final line without a line ending is still returned; io.EOF is
// only returned once nothing is left to read.
func (s *Shell) prompt(ctx context.Context, msg string) (string, error) {
	if _, err := io.WriteString(s.out, msg); err != nil {
		return "", err
	}
	s.startReader.Do(func() { go s.readLines() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r, ok := <-s.lines:
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if !ok {
			return "", io.EOF
		}
		if r.err != nil && (!errors.Is(r.err, io.EOF) || r.line == "") {
			return "", r.err
		}
		return strings.TrimRightFunc(r.line, unicode.IsSpace), nil
	}
}
